package overlay

import (
	"errors"
	"testing"
)

// testTables references indices 0..3 so small hand-built landmark sets
// stay readable.
func testTables() []ConnectionTable {
	return []ConnectionTable{
		{Label: RegionLeftEye, Connections: []Connection{{0, 1}, {1, 2}}},
		{Label: RegionRightEye, Connections: []Connection{{2, 3}}},
	}
}

func squareFace(offset float32) LandmarkSet {
	return LandmarkSet{
		{0.1 + offset, 0.1}, {0.2 + offset, 0.1},
		{0.2 + offset, 0.2}, {0.1 + offset, 0.2},
	}
}

func TestBuildFaceOverlaysEmptyInput(t *testing.T) {
	overlays, err := BuildFaceOverlays(nil, Size{100, 100}, Size{100, 100},
		ContentModeFit, OrientationUp, testTables())
	if err != nil {
		t.Fatalf("error = %v, want nil", err)
	}
	if len(overlays) != 0 {
		t.Fatalf("len = %d, want 0", len(overlays))
	}
}

func TestBuildFaceOverlaysOrdering(t *testing.T) {
	sets := []LandmarkSet{squareFace(0), squareFace(0.3)}

	overlays, err := BuildFaceOverlays(sets, Size{100, 100}, Size{100, 100},
		ContentModeFit, OrientationUp, testTables())
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if len(overlays) != 2 {
		t.Fatalf("len = %d, want 2", len(overlays))
	}

	// Face order follows input order: the second face sits to the right.
	if overlays[1].Dots[0].X <= overlays[0].Dots[0].X {
		t.Errorf("face order not preserved: %v vs %v", overlays[0].Dots[0], overlays[1].Dots[0])
	}

	for i, ov := range overlays {
		if len(ov.Dots) != 4 {
			t.Errorf("face %d: dots = %d, want 4", i, len(ov.Dots))
		}
		if len(ov.Regions) != 2 {
			t.Fatalf("face %d: regions = %d, want 2", i, len(ov.Regions))
		}
		if ov.Regions[0].Label != RegionLeftEye || ov.Regions[1].Label != RegionRightEye {
			t.Errorf("face %d: region order = %q, %q", i, ov.Regions[0].Label, ov.Regions[1].Label)
		}
		if len(ov.Regions[0].Segments) != 2 || len(ov.Regions[1].Segments) != 1 {
			t.Errorf("face %d: segment counts = %d, %d, want 2, 1",
				i, len(ov.Regions[0].Segments), len(ov.Regions[1].Segments))
		}
	}

	// Segments follow table order and connect the projected endpoints.
	first := overlays[0].Regions[0].Segments[0]
	if first.From != overlays[0].Dots[0] || first.To != overlays[0].Dots[1] {
		t.Errorf("segment 0 = %v, want dots[0]→dots[1]", first)
	}
}

func TestBuildFaceOverlaysProjection(t *testing.T) {
	// One landmark at the image center, fit into a wide surface: the worked
	// example from the transform tests, end to end.
	sets := []LandmarkSet{{{0.5, 0.5}, {0.5, 0.5}, {0.5, 0.5}, {0.5, 0.5}}}

	overlays, err := BuildFaceOverlays(sets, Size{100, 100}, Size{200, 50},
		ContentModeFit, OrientationUp, testTables())
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	got := overlays[0].Dots[0]
	if !approxEqual(got.X, 100) || !approxEqual(got.Y, 25) {
		t.Errorf("dot = %v, want (100, 25)", got)
	}
}

func TestBuildFaceOverlaysOrientation(t *testing.T) {
	sets := []LandmarkSet{{{0.2, 0.7}, {0.2, 0.7}, {0.2, 0.7}, {0.2, 0.7}}}

	overlays, err := BuildFaceOverlays(sets, Size{100, 100}, Size{100, 100},
		ContentModeFit, OrientationLeft, testTables())
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	// Left: (0.2, 0.7) → (0.7, 0.8), identity fit → (70, 80).
	got := overlays[0].Dots[0]
	if !approxEqual(got.X, 70) || !approxEqual(got.Y, 80) {
		t.Errorf("dot = %v, want (70, 80)", got)
	}
}

func TestBuildFaceOverlaysMalformedFaceIsolated(t *testing.T) {
	sets := []LandmarkSet{
		squareFace(0),
		{{0.5, 0.5}}, // too short for tables referencing index 3
		squareFace(0.3),
	}

	overlays, err := BuildFaceOverlays(sets, Size{100, 100}, Size{100, 100},
		ContentModeFit, OrientationUp, testTables())
	if err == nil {
		t.Fatal("error = nil, want MalformedLandmarkSetError")
	}

	var malformed *MalformedLandmarkSetError
	if !errors.As(err, &malformed) {
		t.Fatalf("error = %v, want *MalformedLandmarkSetError", err)
	}
	if malformed.Face != 1 || malformed.Len != 1 {
		t.Errorf("error = %+v, want Face=1 Len=1", malformed)
	}

	// The two well-formed faces still come through, in order.
	if len(overlays) != 2 {
		t.Fatalf("len = %d, want 2", len(overlays))
	}
	if overlays[1].Dots[0].X <= overlays[0].Dots[0].X {
		t.Error("remaining face order not preserved")
	}
}

func TestBuildFaceOverlaysNegativeConnectionIndex(t *testing.T) {
	// A table with a negative index is structurally invalid for every face:
	// it must surface as a malformed-set error, never an index panic.
	tables := []ConnectionTable{
		{Label: RegionLeftEye, Connections: []Connection{{-1, 0}}},
	}
	sets := []LandmarkSet{squareFace(0), squareFace(0.3)}

	overlays, err := BuildFaceOverlays(sets, Size{100, 100}, Size{100, 100},
		ContentModeFit, OrientationUp, tables)
	if err == nil {
		t.Fatal("error = nil, want MalformedLandmarkSetError")
	}

	var malformed *MalformedLandmarkSetError
	if !errors.As(err, &malformed) {
		t.Fatalf("error = %v, want *MalformedLandmarkSetError", err)
	}
	if malformed.Index != -1 || malformed.Label != RegionLeftEye {
		t.Errorf("error = %+v, want Index=-1 Label=%q", malformed, RegionLeftEye)
	}
	if len(overlays) != 0 {
		t.Errorf("len = %d, want 0: no face can satisfy a negative index", len(overlays))
	}
}

func TestBuildFaceOverlaysInvalidDimensions(t *testing.T) {
	sets := []LandmarkSet{squareFace(0)}
	_, err := BuildFaceOverlays(sets, Size{0, 100}, Size{100, 100},
		ContentModeFit, OrientationUp, testTables())
	if !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("error = %v, want ErrInvalidDimension", err)
	}
}

func TestEyeTablesIndexMesh(t *testing.T) {
	for _, table := range EyeTables() {
		for _, conn := range table.Connections {
			if conn.Start < 0 || conn.Start >= MeshLandmarkCount ||
				conn.End < 0 || conn.End >= MeshLandmarkCount {
				t.Errorf("table %q: connection %v outside mesh schema", table.Label, conn)
			}
		}
	}
}

func TestRegionGroupBoundingRect(t *testing.T) {
	group := RegionGroup{
		Label: RegionLeftEye,
		Segments: []Segment{
			{From: Point{10, 20}, To: Point{30, 25}},
			{From: Point{30, 25}, To: Point{15, 40}},
		},
	}
	rect := group.BoundingRect()
	want := Rect{X: 10, Y: 20, Width: 20, Height: 20}
	if rect != want {
		t.Errorf("BoundingRect() = %v, want %v", rect, want)
	}

	if (RegionGroup{}).BoundingRect() != (Rect{}) {
		t.Error("empty group should produce zero rect")
	}
}
