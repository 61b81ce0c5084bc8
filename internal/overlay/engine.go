package overlay

import "errors"

// BuildFaceOverlays converts per-face normalized landmarks into drawable
// geometry for the given surface. The fit transform is computed once and
// shared across all faces in the call.
//
// Output order is stable: overlays match the input face order, dots match
// landmark order, regions and segments match connection-table order.
//
// A face with fewer landmarks than the tables reference is skipped and
// reported as a *MalformedLandmarkSetError; remaining faces are still
// processed and the per-face errors are joined. An empty input returns an
// empty (nil) slice and no error.
func BuildFaceOverlays(sets []LandmarkSet, image, surface Size, mode ContentMode,
	orient Orientation, tables []ConnectionTable) ([]FaceOverlay, error) {

	if len(sets) == 0 {
		return nil, nil
	}

	transform, err := ComputeFitTransform(image, surface, mode)
	if err != nil {
		return nil, err
	}

	required := requiredLandmarks(tables)
	badIdx, badLabel, tablesValid := validateConnections(tables)

	overlays := make([]FaceOverlay, 0, len(sets))
	var errs []error

	for faceIdx, set := range sets {
		if !tablesValid {
			errs = append(errs, &MalformedLandmarkSetError{
				Face:  faceIdx,
				Label: badLabel,
				Index: badIdx,
				Len:   len(set),
			})
			continue
		}
		if len(set) < required {
			errs = append(errs, &MalformedLandmarkSetError{
				Face:  faceIdx,
				Label: tableForIndex(tables, required-1),
				Index: required - 1,
				Len:   len(set),
			})
			continue
		}

		dots := make([]Point, len(set))
		for i, p := range set {
			dots[i] = transform.Apply(orient.Remap(p), image)
		}

		regions := make([]RegionGroup, 0, len(tables))
		for _, table := range tables {
			segments := make([]Segment, 0, len(table.Connections))
			for _, conn := range table.Connections {
				segments = append(segments, Segment{
					From: dots[conn.Start],
					To:   dots[conn.End],
				})
			}
			regions = append(regions, RegionGroup{
				Label:    table.Label,
				Segments: segments,
			})
		}

		overlays = append(overlays, FaceOverlay{Dots: dots, Regions: regions})
	}

	return overlays, errors.Join(errs...)
}

// requiredLandmarks returns the minimum landmark count the tables need,
// i.e. the highest referenced index plus one.
func requiredLandmarks(tables []ConnectionTable) int {
	maxIdx := -1
	for _, table := range tables {
		for _, conn := range table.Connections {
			if conn.Start > maxIdx {
				maxIdx = conn.Start
			}
			if conn.End > maxIdx {
				maxIdx = conn.End
			}
		}
	}
	return maxIdx + 1
}

// validateConnections reports the first negative landmark index in the
// tables; no set length can satisfy one, so affected faces never index into
// their landmarks.
func validateConnections(tables []ConnectionTable) (idx int, label string, ok bool) {
	for _, table := range tables {
		for _, conn := range table.Connections {
			if conn.Start < 0 {
				return conn.Start, table.Label, false
			}
			if conn.End < 0 {
				return conn.End, table.Label, false
			}
		}
	}
	return 0, "", true
}

// tableForIndex names the first table that references the given index, for
// error reporting.
func tableForIndex(tables []ConnectionTable, idx int) string {
	for _, table := range tables {
		for _, conn := range table.Connections {
			if conn.Start == idx || conn.End == idx {
				return table.Label
			}
		}
	}
	return ""
}

// BoundingRect returns the tight bounding rectangle of a region's segment
// endpoints. Used by renderers to place decorative glyphs over a region.
func (g RegionGroup) BoundingRect() Rect {
	if len(g.Segments) == 0 {
		return Rect{}
	}
	first := g.Segments[0].From
	minX, minY := first.X, first.Y
	maxX, maxY := first.X, first.Y
	for _, s := range g.Segments {
		for _, p := range []Point{s.From, s.To} {
			if p.X < minX {
				minX = p.X
			}
			if p.X > maxX {
				maxX = p.X
			}
			if p.Y < minY {
				minY = p.Y
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
