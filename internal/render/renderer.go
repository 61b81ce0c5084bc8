// Package render paints face overlays onto frames and manages the preview
// window. It consumes the geometry the overlay engine produces; everything
// decorative (colors, star glyphs) lives here, not in the engine.
package render

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/dudu/starface/internal/overlay"
)

// Style controls how overlays are painted.
type Style struct {
	DotColor     color.RGBA
	SegmentColor color.RGBA
	StarColor    color.RGBA
	DotRadius    int
	LineWidth    int
	DrawDots     bool
	DrawStars    bool
	EdgeOffset   float32
}

// DefaultStyle returns the stock look: green contours, yellow stars.
func DefaultStyle() Style {
	return Style{
		DotColor:     color.RGBA{R: 0, G: 255, B: 0, A: 255},
		SegmentColor: color.RGBA{R: 0, G: 200, B: 0, A: 255},
		StarColor:    color.RGBA{R: 255, G: 220, B: 0, A: 255},
		DotRadius:    1,
		LineWidth:    2,
		DrawDots:     false,
		DrawStars:    true,
	}
}

// Renderer paints FaceOverlay geometry onto a Mat.
type Renderer struct {
	style   Style
	surface overlay.Size
}

// New creates a renderer for a surface of the given size.
func New(surface overlay.Size, style Style) *Renderer {
	return &Renderer{style: style, surface: surface}
}

// SetStyle replaces the style; call from the render goroutine only.
func (r *Renderer) SetStyle(style Style) {
	r.style = style
}

// SetSurface updates the surface size after a window resize.
func (r *Renderer) SetSurface(surface overlay.Size) {
	r.surface = surface
}

// Draw paints one face's overlay onto the frame.
func (r *Renderer) Draw(frame *gocv.Mat, ov overlay.FaceOverlay) {
	if r.style.DrawDots {
		for _, dot := range ov.Dots {
			gocv.Circle(frame, image.Pt(int(dot.X), int(dot.Y)), r.style.DotRadius,
				r.style.DotColor, -1)
		}
	}

	for _, region := range ov.Regions {
		for _, seg := range region.Segments {
			gocv.Line(frame,
				image.Pt(int(seg.From.X), int(seg.From.Y)),
				image.Pt(int(seg.To.X), int(seg.To.Y)),
				r.style.SegmentColor, r.style.LineWidth)
		}

		if r.style.DrawStars {
			r.drawRegionStar(frame, region)
		}
	}
}

// DrawAll paints every face overlay onto the frame.
func (r *Renderer) DrawAll(frame *gocv.Mat, overlays []overlay.FaceOverlay) {
	for _, ov := range overlays {
		r.Draw(frame, ov)
	}
}

// drawRegionStar places a star glyph over the region, clipped so the glyph's
// bounding rect stays on the surface minus the configured margin.
func (r *Renderer) drawRegionStar(frame *gocv.Mat, region overlay.RegionGroup) {
	bounds := region.BoundingRect()
	if bounds.Empty() {
		return
	}

	// Pad beyond the eye contour so the glyph clears the lids.
	pad := bounds.Width * 0.4
	rect := overlay.Rect{
		X:      bounds.X - pad,
		Y:      bounds.Y - pad,
		Width:  bounds.Width + 2*pad,
		Height: bounds.Height + 2*pad,
	}

	rect = overlay.ClipOverlayRect(rect, r.surface, r.style.EdgeOffset)
	if rect.Empty() {
		return
	}

	center := image.Pt(int(rect.X+rect.Width/2), int(rect.Y+rect.Height/2))
	radius := rect.Width
	if rect.Height < radius {
		radius = rect.Height
	}
	drawStar(frame, center, float64(radius/2), r.style.StarColor, r.style.LineWidth)
}
