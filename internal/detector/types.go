// Package detector produces per-frame face landmark sets in normalized
// coordinates, plus a tracking state derived from frame-to-frame overlap.
package detector

import "github.com/dudu/starface/internal/overlay"

// TrackState describes how a face relates to the previous frame.
type TrackState int

const (
	// StateNew means the face did not overlap any face in the previous frame.
	StateNew TrackState = iota
	// StateTracked means the face continues a face from the previous frame.
	StateTracked
)

// String returns the state name.
func (s TrackState) String() string {
	if s == StateTracked {
		return "tracked"
	}
	return "new"
}

// Face is one detected face: an ordered landmark set in normalized [0,1]
// coordinates, a confidence score, and a tracking state.
type Face struct {
	Landmarks overlay.LandmarkSet
	Score     float32
	State     TrackState
}

// Box is a normalized bounding box in corner form.
type Box struct {
	X1, Y1 float32
	X2, Y2 float32
}

// Area returns the box area.
func (b Box) Area() float32 {
	return (b.X2 - b.X1) * (b.Y2 - b.Y1)
}

// Bounds computes the tight bounding box around the face's landmarks.
func (f Face) Bounds() Box {
	if len(f.Landmarks) == 0 {
		return Box{}
	}
	first := f.Landmarks[0]
	box := Box{X1: first.X, Y1: first.Y, X2: first.X, Y2: first.Y}
	for _, p := range f.Landmarks[1:] {
		if p.X < box.X1 {
			box.X1 = p.X
		}
		if p.X > box.X2 {
			box.X2 = p.X
		}
		if p.Y < box.Y1 {
			box.Y1 = p.Y
		}
		if p.Y > box.Y2 {
			box.Y2 = p.Y
		}
	}
	return box
}

// IoU calculates Intersection over Union of two boxes.
func IoU(a, b Box) float32 {
	x1 := max32(a.X1, b.X1)
	y1 := max32(a.Y1, b.Y1)
	x2 := min32(a.X2, b.X2)
	y2 := min32(a.Y2, b.Y2)

	if x1 >= x2 || y1 >= y2 {
		return 0
	}

	intersection := (x2 - x1) * (y2 - y1)
	union := a.Area() + b.Area() - intersection

	if union <= 0 {
		return 0
	}

	return intersection / union
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
