package overlay

import (
	"errors"
	"fmt"
)

// ErrInvalidDimension is returned when an image or surface dimension is not
// strictly positive. The caller should skip drawing for that frame.
var ErrInvalidDimension = errors.New("overlay: image and surface dimensions must be positive")

// MalformedLandmarkSetError reports a connection table referencing a landmark
// index that is out of range for the supplied set. The affected face's
// overlay is dropped; remaining faces are still processed.
type MalformedLandmarkSetError struct {
	Face  int    // position in the input face sequence
	Label string // connection table that referenced the index
	Index int    // offending landmark index
	Len   int    // number of landmarks actually supplied
}

// Error implements the error interface.
func (e *MalformedLandmarkSetError) Error() string {
	return fmt.Sprintf("overlay: face %d: table %q references landmark %d but set has %d points",
		e.Face, e.Label, e.Index, e.Len)
}
