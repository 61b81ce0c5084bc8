package overlay

// MeshLandmarkCount is the landmark count of the 468-point face mesh schema
// the default connection tables index into.
const MeshLandmarkCount = 468

// Region labels for the default tables.
const (
	RegionLeftEye  = "leftEye"
	RegionRightEye = "rightEye"
)

// LeftEyeConnections is the left-eye contour of the 468-point face mesh
// (lower lid first, then upper lid).
var LeftEyeConnections = []Connection{
	{263, 249}, {249, 390}, {390, 373}, {373, 374},
	{374, 380}, {380, 381}, {381, 382}, {382, 362},
	{263, 466}, {466, 388}, {388, 387}, {387, 386},
	{386, 385}, {385, 384}, {384, 398}, {398, 362},
}

// RightEyeConnections is the right-eye contour of the 468-point face mesh.
var RightEyeConnections = []Connection{
	{33, 7}, {7, 163}, {163, 144}, {144, 145},
	{145, 153}, {153, 154}, {154, 155}, {155, 133},
	{33, 246}, {246, 161}, {161, 160}, {160, 159},
	{159, 158}, {158, 157}, {157, 173}, {173, 133},
}

// EyeTables returns the default connection tables: both eye contours in
// left-then-right order. The slice is freshly allocated so callers may
// append or reorder without affecting others.
func EyeTables() []ConnectionTable {
	return []ConnectionTable{
		{Label: RegionLeftEye, Connections: LeftEyeConnections},
		{Label: RegionRightEye, Connections: RightEyeConnections},
	}
}
