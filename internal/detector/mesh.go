package detector

import (
	"encoding/binary"
	"fmt"
	"image"
	"math"

	ort "github.com/yalue/onnxruntime_go"
	"gocv.io/x/gocv"

	"github.com/dudu/starface/internal/inference"
	"github.com/dudu/starface/internal/overlay"
)

// Mesh runs a 468-point face mesh ONNX model over the full frame and emits
// landmarks normalized to [0,1] of the frame. The model predicts one face;
// frames with a score below the threshold produce no faces.
type Mesh struct {
	session        *inference.Session
	inputSize      int
	scoreThreshold float32
	tracker        *Tracker
}

// NewMesh creates a mesh landmark detector from an ONNX model path.
func NewMesh(modelPath string, scoreThreshold float32) (*Mesh, error) {
	inputNames := []string{"input"}
	outputNames := []string{"landmarks", "score"}

	session, err := inference.NewSession(modelPath, inputNames, outputNames)
	if err != nil {
		return nil, fmt.Errorf("failed to create mesh session: %w", err)
	}

	return &Mesh{
		session:        session,
		inputSize:      192,
		scoreThreshold: scoreThreshold,
		tracker:        NewTracker(0.3),
	}, nil
}

// Detect runs the model on a BGR frame and returns detected faces with
// normalized landmarks and tracking state.
func (m *Mesh) Detect(frame gocv.Mat) ([]Face, error) {
	if frame.Empty() {
		return nil, fmt.Errorf("empty frame")
	}

	floatData, err := m.preprocess(frame)
	if err != nil {
		return nil, err
	}

	inputTensor, err := inference.CreateTensor(
		[]int64{1, 3, int64(m.inputSize), int64(m.inputSize)}, floatData)
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}
	defer inputTensor.Destroy()

	landmarkTensor, err := inference.CreateEmptyTensor[float32]([]int64{1, overlay.MeshLandmarkCount * 3})
	if err != nil {
		return nil, fmt.Errorf("failed to create landmark tensor: %w", err)
	}
	defer landmarkTensor.Destroy()

	scoreTensor, err := inference.CreateEmptyTensor[float32]([]int64{1, 1})
	if err != nil {
		return nil, fmt.Errorf("failed to create score tensor: %w", err)
	}
	defer scoreTensor.Destroy()

	err = m.session.Run(
		[]ort.Value{inputTensor},
		[]ort.Value{landmarkTensor, scoreTensor},
	)
	if err != nil {
		return nil, fmt.Errorf("mesh inference failed: %w", err)
	}

	score := sigmoid(scoreTensor.GetData()[0])
	if score < m.scoreThreshold {
		m.tracker.Update(nil)
		return nil, nil
	}

	faces := []Face{{
		Landmarks: m.postprocess(landmarkTensor.GetData()),
		Score:     score,
	}}
	m.tracker.Update(faces)

	return faces, nil
}

// preprocess resizes to the model input, converts BGR to RGB, scales to
// [0,1] and lays the pixels out as an NCHW blob.
func (m *Mesh) preprocess(frame gocv.Mat) ([]float32, error) {
	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(frame, &resized, image.Pt(m.inputSize, m.inputSize), 0, 0, gocv.InterpolationLinear)

	rgb := gocv.NewMat()
	defer rgb.Close()
	gocv.CvtColor(resized, &rgb, gocv.ColorBGRToRGB)

	blob := gocv.BlobFromImage(rgb, 1.0/255.0, image.Pt(m.inputSize, m.inputSize),
		gocv.NewScalar(0, 0, 0, 0), false, false)
	defer blob.Close()

	return bytesToFloat32(blob.ToBytes()), nil
}

// postprocess converts model output (x,y,z per landmark, in input-pixel
// coordinates) to normalized 2D points; z is dropped at this boundary.
func (m *Mesh) postprocess(output []float32) overlay.LandmarkSet {
	size := float32(m.inputSize)
	landmarks := make(overlay.LandmarkSet, overlay.MeshLandmarkCount)
	for i := 0; i < overlay.MeshLandmarkCount; i++ {
		landmarks[i] = overlay.Point{
			X: output[i*3] / size,
			Y: output[i*3+1] / size,
		}
	}
	return landmarks
}

// Close releases detector resources.
func (m *Mesh) Close() error {
	return m.session.Destroy()
}

func sigmoid(x float32) float32 {
	return float32(1.0 / (1.0 + math.Exp(-float64(x))))
}

// bytesToFloat32 reinterprets a little-endian byte slice as float32 values.
func bytesToFloat32(data []byte) []float32 {
	result := make([]float32, len(data)/4)
	for i := range result {
		bits := binary.LittleEndian.Uint32(data[i*4:])
		result[i] = math.Float32frombits(bits)
	}
	return result
}
