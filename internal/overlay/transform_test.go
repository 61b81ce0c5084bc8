package overlay

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-4

func approxEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < epsilon
}

func TestComputeFitTransform(t *testing.T) {
	tests := []struct {
		name    string
		image   Size
		surface Size
		mode    ContentMode
		want    FitTransform
	}{
		{
			name:    "fit letterboxes wide surface",
			image:   Size{Width: 100, Height: 100},
			surface: Size{Width: 200, Height: 50},
			mode:    ContentModeFit,
			want:    FitTransform{XOffset: 75, YOffset: 0, Scale: 0.5},
		},
		{
			name:    "fill covers wide surface",
			image:   Size{Width: 100, Height: 100},
			surface: Size{Width: 200, Height: 50},
			mode:    ContentModeFill,
			want:    FitTransform{XOffset: 0, YOffset: -75, Scale: 2},
		},
		{
			name:    "none centers at unit scale",
			image:   Size{Width: 100, Height: 100},
			surface: Size{Width: 200, Height: 50},
			mode:    ContentModeNone,
			want:    FitTransform{XOffset: 50, YOffset: -25, Scale: 1},
		},
		{
			name:    "identical sizes are identity",
			image:   Size{Width: 640, Height: 480},
			surface: Size{Width: 640, Height: 480},
			mode:    ContentModeFit,
			want:    FitTransform{XOffset: 0, YOffset: 0, Scale: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeFitTransform(tt.image, tt.surface, tt.mode)
			if err != nil {
				t.Fatalf("ComputeFitTransform() error = %v", err)
			}
			if !approxEqual(got.Scale, tt.want.Scale) {
				t.Errorf("Scale = %v, want %v", got.Scale, tt.want.Scale)
			}
			if !approxEqual(got.XOffset, tt.want.XOffset) {
				t.Errorf("XOffset = %v, want %v", got.XOffset, tt.want.XOffset)
			}
			if !approxEqual(got.YOffset, tt.want.YOffset) {
				t.Errorf("YOffset = %v, want %v", got.YOffset, tt.want.YOffset)
			}
		})
	}
}

func TestComputeFitTransformInvalidDimension(t *testing.T) {
	tests := []struct {
		name    string
		image   Size
		surface Size
	}{
		{"zero image width", Size{0, 100}, Size{200, 50}},
		{"negative image height", Size{100, -1}, Size{200, 50}},
		{"zero surface width", Size{100, 100}, Size{0, 50}},
		{"zero surface height", Size{100, 100}, Size{200, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeFitTransform(tt.image, tt.surface, ContentModeFit)
			if !errors.Is(err, ErrInvalidDimension) {
				t.Errorf("error = %v, want ErrInvalidDimension", err)
			}
		})
	}
}

// Fit must never overflow the surface; Fill must always cover it.
func TestFitFillScaleProperties(t *testing.T) {
	sizes := []struct {
		image   Size
		surface Size
	}{
		{Size{100, 100}, Size{200, 50}},
		{Size{1280, 720}, Size{390, 844}},
		{Size{720, 1280}, Size{844, 390}},
		{Size{1920, 1080}, Size{1920, 1080}},
		{Size{3, 7}, Size{1000, 13}},
	}

	for _, s := range sizes {
		fit, err := ComputeFitTransform(s.image, s.surface, ContentModeFit)
		if err != nil {
			t.Fatalf("fit: %v", err)
		}
		if s.image.Width*fit.Scale > s.surface.Width+epsilon ||
			s.image.Height*fit.Scale > s.surface.Height+epsilon {
			t.Errorf("fit %v into %v: scaled size %vx%v exceeds surface",
				s.image, s.surface, s.image.Width*fit.Scale, s.image.Height*fit.Scale)
		}

		fill, err := ComputeFitTransform(s.image, s.surface, ContentModeFill)
		if err != nil {
			t.Fatalf("fill: %v", err)
		}
		if s.image.Width*fill.Scale < s.surface.Width-epsilon ||
			s.image.Height*fill.Scale < s.surface.Height-epsilon {
			t.Errorf("fill %v into %v: scaled size %vx%v does not cover surface",
				s.image, s.surface, s.image.Width*fill.Scale, s.image.Height*fill.Scale)
		}
	}
}

// Corner round-trip: (0,0) lands on the offset, (1,1) on offset + scaled size.
func TestApplyCorners(t *testing.T) {
	image := Size{Width: 100, Height: 100}
	surface := Size{Width: 200, Height: 50}

	transform, err := ComputeFitTransform(image, surface, ContentModeFit)
	if err != nil {
		t.Fatalf("ComputeFitTransform() error = %v", err)
	}

	origin := transform.Apply(Point{0, 0}, image)
	if !approxEqual(origin.X, transform.XOffset) || !approxEqual(origin.Y, transform.YOffset) {
		t.Errorf("Apply(0,0) = %v, want (%v, %v)", origin, transform.XOffset, transform.YOffset)
	}

	far := transform.Apply(Point{1, 1}, image)
	wantX := transform.XOffset + image.Width*transform.Scale
	wantY := transform.YOffset + image.Height*transform.Scale
	if !approxEqual(far.X, wantX) || !approxEqual(far.Y, wantY) {
		t.Errorf("Apply(1,1) = %v, want (%v, %v)", far, wantX, wantY)
	}

	center := transform.Apply(Point{0.5, 0.5}, image)
	if !approxEqual(center.X, 100) || !approxEqual(center.Y, 25) {
		t.Errorf("Apply(0.5,0.5) = %v, want (100, 25)", center)
	}
}

func TestOrientationRemap(t *testing.T) {
	tests := []struct {
		name   string
		orient Orientation
		in     Point
		want   Point
	}{
		{"up is identity", OrientationUp, Point{0.2, 0.7}, Point{0.2, 0.7}},
		{"left rotates", OrientationLeft, Point{0.2, 0.7}, Point{0.7, 0.8}},
		{"right rotates", OrientationRight, Point{0.2, 0.7}, Point{0.3, 0.2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.orient.Remap(tt.in)
			if !approxEqual(got.X, tt.want.X) || !approxEqual(got.Y, tt.want.Y) {
				t.Errorf("Remap(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// Right undoes Left, so a Left remap followed by a Right remap is identity.
func TestOrientationLeftRightRoundTrip(t *testing.T) {
	points := []Point{{0, 0}, {1, 1}, {0.25, 0.75}, {0.5, 0.5}}
	for _, p := range points {
		got := OrientationRight.Remap(OrientationLeft.Remap(p))
		if !approxEqual(got.X, p.X) || !approxEqual(got.Y, p.Y) {
			t.Errorf("Right(Left(%v)) = %v, want original", p, got)
		}
	}
}

func TestParseContentMode(t *testing.T) {
	if ParseContentMode("fill") != ContentModeFill {
		t.Error(`ParseContentMode("fill") != ContentModeFill`)
	}
	if ParseContentMode("fit") != ContentModeFit {
		t.Error(`ParseContentMode("fit") != ContentModeFit`)
	}
	if ParseContentMode("stretch") != ContentModeNone {
		t.Error(`ParseContentMode("stretch") should fall back to ContentModeNone`)
	}
}
