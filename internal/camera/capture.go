// Package camera manages webcam capture. Frames are tagged with the device
// orientation and a capture timestamp, the contract the overlay engine's
// callers rely on.
package camera

import (
	"fmt"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/dudu/starface/internal/overlay"
)

// Frame is one captured video frame plus its capture metadata.
type Frame struct {
	Mat         *gocv.Mat
	Orientation overlay.Orientation
	Timestamp   time.Time
}

// Capture manages webcam capture.
type Capture struct {
	webcam      *gocv.VideoCapture
	deviceID    int
	width       int
	height      int
	orientation overlay.Orientation
	mu          sync.Mutex
}

// NewCapture opens the camera at the given device index with the requested
// resolution and frame rate. The camera may negotiate different dimensions;
// Width/Height report what it actually delivers.
func NewCapture(deviceID, targetFPS, width, height int) (*Capture, error) {
	webcam, err := gocv.OpenVideoCapture(deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to open camera %d: %w", deviceID, err)
	}

	webcam.Set(gocv.VideoCaptureFrameWidth, float64(width))
	webcam.Set(gocv.VideoCaptureFrameHeight, float64(height))
	webcam.Set(gocv.VideoCaptureFPS, float64(targetFPS))

	actualWidth := int(webcam.Get(gocv.VideoCaptureFrameWidth))
	actualHeight := int(webcam.Get(gocv.VideoCaptureFrameHeight))

	return &Capture{
		webcam:      webcam,
		deviceID:    deviceID,
		width:       actualWidth,
		height:      actualHeight,
		orientation: overlay.OrientationUp,
	}, nil
}

// SetOrientation records the device orientation tagged onto subsequent frames.
func (c *Capture) SetOrientation(o overlay.Orientation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orientation = o
}

// Read captures the next frame into the provided Mat and returns it wrapped
// with orientation and timestamp. ok is false when the camera produced
// nothing.
func (c *Capture) Read(mat *gocv.Mat) (Frame, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.webcam == nil || !c.webcam.Read(mat) {
		return Frame{}, false
	}

	return Frame{
		Mat:         mat,
		Orientation: c.orientation,
		Timestamp:   time.Now(),
	}, true
}

// Width returns the negotiated frame width.
func (c *Capture) Width() int {
	return c.width
}

// Height returns the negotiated frame height.
func (c *Capture) Height() int {
	return c.height
}

// Size returns the frame dimensions as an overlay.Size.
func (c *Capture) Size() overlay.Size {
	return overlay.Size{Width: float32(c.width), Height: float32(c.height)}
}

// Close releases the camera.
func (c *Capture) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.webcam != nil {
		err := c.webcam.Close()
		c.webcam = nil
		return err
	}
	return nil
}
