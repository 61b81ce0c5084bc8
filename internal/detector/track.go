package detector

// Tracker assigns tracking states by comparing each face's landmark bounding
// box against the previous frame's boxes. It is used from the capture loop
// only, so it needs no locking.
type Tracker struct {
	iouThreshold float32
	previous     []Box
}

// NewTracker creates a tracker. Faces whose boxes overlap a previous-frame
// box with IoU above the threshold are marked StateTracked.
func NewTracker(iouThreshold float32) *Tracker {
	return &Tracker{iouThreshold: iouThreshold}
}

// Update sets the State of each face in place and remembers the frame's
// boxes for the next call.
func (t *Tracker) Update(faces []Face) {
	boxes := make([]Box, len(faces))
	for i := range faces {
		boxes[i] = faces[i].Bounds()

		faces[i].State = StateNew
		for _, prev := range t.previous {
			if IoU(boxes[i], prev) > t.iouThreshold {
				faces[i].State = StateTracked
				break
			}
		}
	}
	t.previous = boxes
}

// Reset forgets the previous frame, e.g. after the capture source changes.
func (t *Tracker) Reset() {
	t.previous = nil
}
