// Package overlay converts normalized face-landmark coordinates into
// drawable geometry positioned inside an arbitrarily sized display surface.
// It is pure computation: no I/O, no shared state between calls.
package overlay

// Point is a 2D point. Depending on context its coordinates are either
// normalized to [0,1] (detector space) or pixels (surface space).
type Point struct {
	X, Y float32
}

// Size holds a width/height pair in pixels.
type Size struct {
	Width, Height float32
}

// Rect is an axis-aligned rectangle with origin at the top-left corner.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// MaxX returns the right edge of the rectangle.
func (r Rect) MaxX() float32 {
	return r.X + r.Width
}

// MaxY returns the bottom edge of the rectangle.
func (r Rect) MaxY() float32 {
	return r.Y + r.Height
}

// Empty reports whether the rectangle has no drawable area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// LandmarkSet is the ordered landmark list for one detected face, in
// normalized coordinates. Index meaning (which index is which anatomical
// point) is a contract with the detector, not owned by this package.
type LandmarkSet []Point

// ContentMode is the policy for fitting a source image of one aspect ratio
// into a surface of another.
type ContentMode int

const (
	// ContentModeFill scales the image to cover the surface, cropping overflow.
	ContentModeFill ContentMode = iota
	// ContentModeFit scales the image to fit entirely within the surface,
	// letterboxing the remainder.
	ContentModeFit
	// ContentModeNone applies no scaling; the image is centered at 1:1.
	ContentModeNone
)

// String returns the mode name as used in configuration.
func (m ContentMode) String() string {
	switch m {
	case ContentModeFill:
		return "fill"
	case ContentModeFit:
		return "fit"
	default:
		return "none"
	}
}

// ParseContentMode maps a configuration string to a ContentMode.
// Unrecognized values map to ContentModeNone.
func ParseContentMode(s string) ContentMode {
	switch s {
	case "fill":
		return ContentModeFill
	case "fit":
		return ContentModeFit
	default:
		return ContentModeNone
	}
}

// Connection identifies one edge to draw, as a pair of landmark indices.
type Connection struct {
	Start, End int
}

// ConnectionTable is a named, ordered list of connections describing the
// contour of one facial region.
type ConnectionTable struct {
	Label       string
	Connections []Connection
}

// Segment is a resolved drawable line in surface coordinates.
type Segment struct {
	From, To Point
}

// RegionGroup is the ordered segments of one named region.
type RegionGroup struct {
	Label    string
	Segments []Segment
}

// FaceOverlay is the complete drawable geometry for one detected face:
// one surface-space dot per landmark, in landmark order, plus the region
// contours in table order.
type FaceOverlay struct {
	Dots    []Point
	Regions []RegionGroup
}

// FitTransform maps normalized image coordinates into surface coordinates.
// It is computed once per draw call and shared across all faces in the call.
type FitTransform struct {
	XOffset float32
	YOffset float32
	Scale   float32
}

// Apply projects a normalized point into surface space:
// surface = normalized * image * scale + offset.
func (t FitTransform) Apply(p Point, image Size) Point {
	return Point{
		X: p.X*image.Width*t.Scale + t.XOffset,
		Y: p.Y*image.Height*t.Scale + t.YOffset,
	}
}
