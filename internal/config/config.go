// Package config provides environment-backed configuration and the
// runtime-mutable view settings the overlay pipeline reads every frame.
package config

import (
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"

	"github.com/dudu/starface/internal/overlay"
)

// Defaults.
const (
	DefaultCameraIndex = 0
	DefaultTargetFPS   = 30
	DefaultWidth       = 1280
	DefaultHeight      = 720
	DefaultModelPath   = "models/face_mesh.onnx"
	DefaultWebPort     = "8090"
	DefaultScoreThresh = 0.5
)

// App holds process-level configuration resolved once at startup.
type App struct {
	CameraIndex int
	TargetFPS   int
	Width       int
	Height      int
	ModelPath   string
	WebPort     string
	LogLevel    string
	ScoreThresh float32
}

// Load reads configuration from the environment, with an optional .env file
// (missing .env is not an error).
func Load() App {
	godotenv.Load()

	return App{
		CameraIndex: envInt("CAMERA_INDEX", DefaultCameraIndex),
		TargetFPS:   envInt("TARGET_FPS", DefaultTargetFPS),
		Width:       envInt("FRAME_WIDTH", DefaultWidth),
		Height:      envInt("FRAME_HEIGHT", DefaultHeight),
		ModelPath:   envString("MODEL_PATH", DefaultModelPath),
		WebPort:     envString("WEB_PORT", DefaultWebPort),
		LogLevel:    envString("LOG_LEVEL", "info"),
		ScoreThresh: envFloat("SCORE_THRESHOLD", DefaultScoreThresh),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float32) float32 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			return float32(f)
		}
	}
	return fallback
}

// View holds the runtime-mutable display settings. The capture loop reads a
// snapshot every time a configuration change is broadcast; the web dashboard
// may replace values from its own goroutine.
type View struct {
	ContentMode overlay.ContentMode
	Orientation overlay.Orientation
	EdgeOffset  float32
	DrawDots    bool
	DrawStars   bool
}

// DefaultView returns the initial display settings.
func DefaultView() View {
	return View{
		ContentMode: overlay.ContentModeFill,
		Orientation: overlay.OrientationUp,
		EdgeOffset:  0,
		DrawDots:    false,
		DrawStars:   true,
	}
}

// Settings is a mutex-guarded View snapshot shared between the capture loop
// and the dashboard.
type Settings struct {
	mu   sync.RWMutex
	view View
}

// NewSettings creates a Settings holding the given view.
func NewSettings(view View) *Settings {
	return &Settings{view: view}
}

// Get returns a copy of the current view settings.
func (s *Settings) Get() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// Update applies a mutation to the view settings under the lock and returns
// the resulting snapshot.
func (s *Settings) Update(mutate func(*View)) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	mutate(&s.view)
	return s.view
}
