package render

import (
	"image"

	"gocv.io/x/gocv"

	"github.com/dudu/starface/internal/overlay"
)

// Compose places the camera frame into the destination canvas using the same
// fit transform the overlay engine applies to landmarks, so contours line up
// with the pixels underneath. The canvas must match the renderer's surface
// size; areas the scaled frame does not cover are left as-is (letterbox).
func (r *Renderer) Compose(frame *gocv.Mat, imageSize overlay.Size, mode overlay.ContentMode, canvas *gocv.Mat) error {
	transform, err := overlay.ComputeFitTransform(imageSize, r.surface, mode)
	if err != nil {
		return err
	}

	scaledW := int(imageSize.Width * transform.Scale)
	scaledH := int(imageSize.Height * transform.Scale)
	if scaledW <= 0 || scaledH <= 0 {
		return nil
	}

	scaled := gocv.NewMat()
	defer scaled.Close()
	gocv.Resize(*frame, &scaled, image.Pt(scaledW, scaledH), 0, 0, gocv.InterpolationLinear)

	// Intersect the scaled frame with the canvas; under Fill the offsets go
	// negative and the overflow is cropped.
	srcX, dstX := splitOffset(int(transform.XOffset))
	srcY, dstY := splitOffset(int(transform.YOffset))

	w := minInt(scaledW-srcX, canvas.Cols()-dstX)
	h := minInt(scaledH-srcY, canvas.Rows()-dstY)
	if w <= 0 || h <= 0 {
		return nil
	}

	srcRegion := scaled.Region(image.Rect(srcX, srcY, srcX+w, srcY+h))
	defer srcRegion.Close()
	dstRegion := canvas.Region(image.Rect(dstX, dstY, dstX+w, dstY+h))
	defer dstRegion.Close()
	srcRegion.CopyTo(&dstRegion)

	return nil
}

// splitOffset converts a fit offset into a source crop and a destination
// position: negative offsets crop the source, positive ones shift into the
// canvas.
func splitOffset(offset int) (src, dst int) {
	if offset < 0 {
		return -offset, 0
	}
	return 0, offset
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
