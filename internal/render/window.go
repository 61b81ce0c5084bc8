package render

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"gocv.io/x/gocv"

	"github.com/dudu/starface/internal/overlay"
)

// fpsMeter tracks the display rate over one-second windows.
type fpsMeter struct {
	since  time.Time
	frames int
	rate   float64
}

func (m *fpsMeter) tick(now time.Time) {
	m.frames++
	if elapsed := now.Sub(m.since); elapsed >= time.Second {
		m.rate = float64(m.frames) / elapsed.Seconds()
		m.frames = 0
		m.since = now
	}
}

// Window is the local preview surface. It carries the size the overlay
// geometry is computed against, so callers resize the window and the
// renderer with one call.
type Window struct {
	win   *gocv.Window
	size  overlay.Size
	meter fpsMeter
}

// NewWindow opens a preview window sized to the overlay surface.
func NewWindow(title string, size overlay.Size) *Window {
	win := gocv.NewWindow(title)
	win.ResizeWindow(int(size.Width), int(size.Height))
	win.MoveWindow(100, 100)
	return &Window{
		win:   win,
		size:  size,
		meter: fpsMeter{since: time.Now()},
	}
}

// Size reports the current surface size.
func (w *Window) Size() overlay.Size {
	return w.size
}

// Resize changes the window to a new surface size. The caller is expected
// to push the same size into its Renderer so the clip bounds stay in step.
func (w *Window) Resize(size overlay.Size) {
	w.size = size
	w.win.ResizeWindow(int(size.Width), int(size.Height))
}

// Show displays a frame with the measured rate stamped in the corner.
func (w *Window) Show(frame *gocv.Mat) {
	w.meter.tick(time.Now())
	label := fmt.Sprintf("FPS: %.1f", w.meter.rate)
	gocv.PutText(frame, label, image.Pt(10, 30),
		gocv.FontHersheyPlain, 2, color.RGBA{G: 255, A: 255}, 2)
	w.win.IMShow(*frame)
}

// WaitKey pumps window events and returns the pressed key code or -1.
func (w *Window) WaitKey(delayMs int) int {
	return w.win.WaitKey(delayMs)
}

// FPS returns the display rate measured over the last second.
func (w *Window) FPS() float64 {
	return w.meter.rate
}

func (w *Window) Close() error {
	if w.win == nil {
		return nil
	}
	return w.win.Close()
}
