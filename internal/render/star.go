package render

import (
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"
)

// drawStar draws a five-point star outline centered at the given point.
// outerRadius is the tip radius; the inner radius is the classic 0.382 ratio.
func drawStar(frame *gocv.Mat, center image.Point, outerRadius float64, c color.RGBA, width int) {
	const points = 5
	innerRadius := outerRadius * 0.382

	vertices := make([]image.Point, 0, points*2)
	for i := 0; i < points*2; i++ {
		radius := outerRadius
		if i%2 == 1 {
			radius = innerRadius
		}
		// Start at the top tip and walk clockwise.
		angle := -math.Pi/2 + float64(i)*math.Pi/points
		vertices = append(vertices, image.Pt(
			center.X+int(radius*math.Cos(angle)),
			center.Y+int(radius*math.Sin(angle)),
		))
	}

	for i := range vertices {
		next := vertices[(i+1)%len(vertices)]
		gocv.Line(frame, vertices[i], next, c, width)
	}
}
