package overlay

// ClipOverlayRect constrains an overlay's bounding rectangle to the visible
// surface, keeping an edgeOffset margin from each edge.
//
// The top-overflow branch intentionally grows the height where the
// left-overflow branch shrinks the width; this asymmetry is long-standing
// rendering behavior and is pinned by tests. If the input rect lies entirely
// outside the surface, the result's width or height may come out non-positive;
// callers must treat a non-positive dimension as nothing to draw (Rect.Empty).
func ClipOverlayRect(r Rect, surface Size, edgeOffset float32) Rect {
	if r.X < 0 && r.MaxX() > edgeOffset {
		r.Width += r.X - edgeOffset
		r.X = edgeOffset
	}
	if r.Y < 0 && r.MaxY() > edgeOffset {
		r.Height -= r.Y - edgeOffset
		r.Y = edgeOffset
	}
	if r.MaxX() > surface.Width-edgeOffset {
		r.Width = surface.Width - edgeOffset - r.X
	}
	if r.MaxY() > surface.Height-edgeOffset {
		r.Height = surface.Height - edgeOffset - r.Y
	}
	return r
}
