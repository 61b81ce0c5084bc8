package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"gocv.io/x/gocv"

	"github.com/dudu/starface/internal/camera"
	"github.com/dudu/starface/internal/config"
	"github.com/dudu/starface/internal/detector"
	"github.com/dudu/starface/internal/inference"
	"github.com/dudu/starface/internal/log"
	"github.com/dudu/starface/internal/notify"
	"github.com/dudu/starface/internal/overlay"
	"github.com/dudu/starface/internal/render"
	"github.com/dudu/starface/internal/web"
)

func init() {
	// Required on macOS for OpenCV's highgui window creation.
	runtime.LockOSThread()
}

type Flags struct {
	CameraIndex   int
	ModelPath     string
	ContentMode   string
	Orientation   string
	EdgeOffset    float64
	DisplayWidth  int
	DisplayHeight int
	TargetFPS     int
	Web           bool
	Preview       bool
}

func main() {
	app := config.Load()
	flags := parseFlags(app)

	if err := run(app, flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(app config.App) Flags {
	flags := Flags{}

	flag.IntVar(&flags.CameraIndex, "camera", app.CameraIndex, "Camera device index")
	flag.IntVar(&flags.CameraIndex, "c", app.CameraIndex, "Camera device index (shorthand)")
	flag.StringVar(&flags.ModelPath, "model", app.ModelPath, "Face mesh ONNX model path")
	flag.StringVar(&flags.ModelPath, "m", app.ModelPath, "Face mesh ONNX model path (shorthand)")
	flag.StringVar(&flags.ContentMode, "mode", "fill", "Content mode: fill, fit or none")
	flag.StringVar(&flags.Orientation, "orientation", "up", "Device orientation: up, left or right")
	flag.Float64Var(&flags.EdgeOffset, "edge", 0, "Overlay margin from surface edges, pixels")
	flag.IntVar(&flags.DisplayWidth, "width", app.Width, "Display surface width")
	flag.IntVar(&flags.DisplayHeight, "height", app.Height, "Display surface height")
	flag.IntVar(&flags.TargetFPS, "fps", app.TargetFPS, "Target frames per second")
	flag.BoolVar(&flags.Web, "web", false, "Serve the debug dashboard")
	flag.BoolVar(&flags.Preview, "preview", true, "Show preview window")
	flag.BoolVar(&flags.Preview, "p", true, "Show preview window (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "starface - live camera feed with facial landmark overlays\n\n")
		fmt.Fprintf(os.Stderr, "Usage: starface [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  starface --mode fit\n")
		fmt.Fprintf(os.Stderr, "  starface --camera 1 --orientation left --web\n")
	}

	flag.Parse()
	return flags
}

func run(app config.App, flags Flags) error {
	log.Init(app.LogLevel)

	if flags.EdgeOffset < 0 {
		return fmt.Errorf("edge offset must be non-negative, got %v", flags.EdgeOffset)
	}

	view := config.DefaultView()
	view.ContentMode = overlay.ParseContentMode(flags.ContentMode)
	view.Orientation = overlay.ParseOrientation(flags.Orientation)
	view.EdgeOffset = float32(flags.EdgeOffset)
	settings := config.NewSettings(view)

	if err := inference.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize inference: %w", err)
	}
	defer inference.Shutdown()

	var faces detector.Handle
	mesh, err := detector.NewMesh(flags.ModelPath, app.ScoreThresh)
	if err != nil {
		return fmt.Errorf("failed to create detector: %w", err)
	}
	faces.Set(mesh)
	defer faces.CloseAndClear()

	log.Info("opening camera", "index", flags.CameraIndex)
	cam, err := camera.NewCapture(flags.CameraIndex, flags.TargetFPS, flags.DisplayWidth, flags.DisplayHeight)
	if err != nil {
		return fmt.Errorf("failed to open camera: %w", err)
	}
	defer cam.Close()
	cam.SetOrientation(view.Orientation)
	log.Info("camera opened", "width", cam.Width(), "height", cam.Height())

	surface := overlay.Size{
		Width:  float32(flags.DisplayWidth),
		Height: float32(flags.DisplayHeight),
	}

	style := render.DefaultStyle()
	style.EdgeOffset = view.EdgeOffset
	style.DrawDots = view.DrawDots
	style.DrawStars = view.DrawStars
	renderer := render.New(surface, style)

	changes := notify.NewBroadcaster()
	changed, unsubscribe := changes.Subscribe()
	defer unsubscribe()

	var dashboard *web.Server
	if flags.Web {
		dashboard = web.NewServer(app.WebPort, settings, changes)
		dashboard.StartAsync()
		defer dashboard.Shutdown()
	}

	var window *render.Window
	if flags.Preview {
		window = render.NewWindow("starface", surface)
		defer window.Close()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	return captureLoop(loopDeps{
		cam:       cam,
		faces:     &faces,
		renderer:  renderer,
		window:    window,
		dashboard: dashboard,
		settings:  settings,
		changes:   changes,
		changed:   changed,
		surface:   surface,
		sigChan:   sigChan,
	})
}

type loopDeps struct {
	cam       *camera.Capture
	faces     *detector.Handle
	renderer  *render.Renderer
	window    *render.Window
	dashboard *web.Server
	settings  *config.Settings
	changes   *notify.Broadcaster
	changed   <-chan notify.Change
	surface   overlay.Size
	sigChan   chan os.Signal
}

func captureLoop(deps loopDeps) error {
	tables := overlay.EyeTables()
	view := deps.settings.Get()

	frame := gocv.NewMat()
	defer frame.Close()
	canvas := gocv.NewMatWithSize(int(deps.surface.Height), int(deps.surface.Width), gocv.MatTypeCV8UC3)
	defer canvas.Close()

	log.Info("running", "quit", "q or ESC")

	for {
		select {
		case <-deps.sigChan:
			log.Info("shutting down")
			return nil
		case <-deps.changed:
			view = applyView(deps)
		default:
		}

		captured, ok := deps.cam.Read(&frame)
		if !ok || frame.Empty() {
			continue
		}
		imageSize := overlay.Size{
			Width:  float32(frame.Cols()),
			Height: float32(frame.Rows()),
		}

		var detected []detector.Face
		if svc := deps.faces.Current(); svc != nil {
			var err error
			detected, err = svc.Detect(frame)
			if err != nil {
				log.Warn("detection failed", "error", err)
				continue
			}
		}

		sets := make([]overlay.LandmarkSet, 0, len(detected))
		for _, face := range detected {
			sets = append(sets, face.Landmarks)
		}

		overlays, err := overlay.BuildFaceOverlays(sets, imageSize, deps.surface,
			view.ContentMode, captured.Orientation, tables)
		if err != nil {
			// Frame-scoped failures: skip affected faces (or the frame on
			// bad dimensions) and keep the feed running.
			log.Warn("overlay build incomplete", "error", err)
		}

		canvas.SetTo(gocv.NewScalar(0, 0, 0, 0))
		if err := deps.renderer.Compose(&frame, imageSize, view.ContentMode, &canvas); err != nil {
			log.Warn("compose failed", "error", err)
			continue
		}
		deps.renderer.DrawAll(&canvas, overlays)

		if deps.dashboard != nil {
			deps.dashboard.PublishOverlays(detected, overlays)
			publishFrame(deps.dashboard, &canvas)
			status := web.Status{
				CameraWidth:  deps.cam.Width(),
				CameraHeight: deps.cam.Height(),
				FaceCount:    len(overlays),
			}
			if deps.window != nil {
				status.FPS = deps.window.FPS()
			}
			deps.dashboard.UpdateStatus(status)
		}

		if deps.window != nil {
			deps.window.Show(&canvas)
			if quit := handleKey(deps, deps.window.WaitKey(1)); quit {
				return nil
			}
		}
	}
}

// applyView re-reads the settings snapshot after a change notification and
// pushes the pieces each collaborator owns.
func applyView(deps loopDeps) config.View {
	view := deps.settings.Get()
	deps.cam.SetOrientation(view.Orientation)

	style := render.DefaultStyle()
	style.EdgeOffset = view.EdgeOffset
	style.DrawDots = view.DrawDots
	style.DrawStars = view.DrawStars
	deps.renderer.SetStyle(style)

	log.Info("view settings applied",
		"content_mode", view.ContentMode.String(),
		"orientation", view.Orientation.String())
	return view
}

// handleKey maps preview-window keys to actions; returns true to quit.
func handleKey(deps loopDeps, key int) bool {
	switch key {
	case 'q', 27: // ESC
		log.Info("quitting")
		return true
	case 'd':
		deps.settings.Update(func(v *config.View) { v.DrawDots = !v.DrawDots })
		deps.changes.Publish(notify.Change{Key: "view"})
	case 's':
		deps.settings.Update(func(v *config.View) { v.DrawStars = !v.DrawStars })
		deps.changes.Publish(notify.Change{Key: "view"})
	case 'f':
		deps.settings.Update(func(v *config.View) {
			switch v.ContentMode {
			case overlay.ContentModeFill:
				v.ContentMode = overlay.ContentModeFit
			case overlay.ContentModeFit:
				v.ContentMode = overlay.ContentModeNone
			default:
				v.ContentMode = overlay.ContentModeFill
			}
		})
		deps.changes.Publish(notify.Change{Key: "view"})
	}
	return false
}

func publishFrame(dashboard *web.Server, canvas *gocv.Mat) {
	if !dashboard.WantsFrames() {
		return
	}
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, *canvas)
	if err != nil {
		log.Warn("frame encode failed", "error", err)
		return
	}
	defer buf.Close()
	dashboard.PublishFrame(buf.GetBytes())
}
