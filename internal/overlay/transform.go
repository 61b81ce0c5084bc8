package overlay

// Orientation tags which way the capture device was rotated relative to the
// sensor. Landmark coordinates arrive in sensor space and must be remapped
// into display space before projection.
type Orientation int

const (
	// OrientationUp is the default; coordinates pass through unchanged.
	OrientationUp Orientation = iota
	// OrientationLeft is a 90° counter-clockwise device rotation.
	OrientationLeft
	// OrientationRight is a 90° clockwise device rotation.
	OrientationRight
)

// String returns the orientation name as used in configuration.
func (o Orientation) String() string {
	switch o {
	case OrientationLeft:
		return "left"
	case OrientationRight:
		return "right"
	default:
		return "up"
	}
}

// ParseOrientation maps a configuration string to an Orientation.
// Unrecognized values map to OrientationUp.
func ParseOrientation(s string) Orientation {
	switch s {
	case "left":
		return OrientationLeft
	case "right":
		return OrientationRight
	default:
		return OrientationUp
	}
}

// Remap converts a normalized point from sensor space into display space for
// this orientation. Left and Right are inverses of each other.
func (o Orientation) Remap(p Point) Point {
	switch o {
	case OrientationLeft:
		return Point{X: p.Y, Y: 1 - p.X}
	case OrientationRight:
		return Point{X: 1 - p.Y, Y: p.X}
	default:
		return p
	}
}

// ComputeFitTransform derives the scale and centering offsets that map the
// source image into the destination surface under the given content mode.
//
// Example:
//
//	image 100x100, surface 200x50, ContentModeFit
//	→ widthScale 2.0, heightScale 0.5 → scale 0.5
//	→ scaled size 50x50 → offsets (75, 0)
func ComputeFitTransform(image, surface Size, mode ContentMode) (FitTransform, error) {
	if image.Width <= 0 || image.Height <= 0 || surface.Width <= 0 || surface.Height <= 0 {
		return FitTransform{}, ErrInvalidDimension
	}

	widthScale := surface.Width / image.Width
	heightScale := surface.Height / image.Height

	var scale float32
	switch mode {
	case ContentModeFill:
		scale = widthScale
		if heightScale > scale {
			scale = heightScale
		}
	case ContentModeFit:
		scale = widthScale
		if heightScale < scale {
			scale = heightScale
		}
	default:
		scale = 1.0
	}

	scaledWidth := image.Width * scale
	scaledHeight := image.Height * scale

	return FitTransform{
		XOffset: (surface.Width - scaledWidth) / 2,
		YOffset: (surface.Height - scaledHeight) / 2,
		Scale:   scale,
	}, nil
}
