package web

import (
	"bytes"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/dudu/starface/internal/config"
	"github.com/dudu/starface/internal/detector"
	"github.com/dudu/starface/internal/log"
	"github.com/dudu/starface/internal/notify"
	"github.com/dudu/starface/internal/overlay"
)

// Status is the dashboard status payload.
type Status struct {
	CameraWidth  int     `json:"camera_width"`
	CameraHeight int     `json:"camera_height"`
	FPS          float64 `json:"fps"`
	FaceCount    int     `json:"face_count"`
}

// viewDTO is the wire form of the runtime view settings.
type viewDTO struct {
	ContentMode string  `json:"content_mode"`
	Orientation string  `json:"orientation"`
	EdgeOffset  float32 `json:"edge_offset"`
	DrawDots    bool    `json:"draw_dots"`
	DrawStars   bool    `json:"draw_stars"`
}

// segmentDTO is one drawable line in surface coordinates.
type segmentDTO struct {
	FromX float32 `json:"fx"`
	FromY float32 `json:"fy"`
	ToX   float32 `json:"tx"`
	ToY   float32 `json:"ty"`
}

// regionDTO is one region's segments.
type regionDTO struct {
	Label    string       `json:"label"`
	Segments []segmentDTO `json:"segments"`
}

// faceDTO is one face's overlay summary.
type faceDTO struct {
	Score   float32     `json:"score"`
	State   string      `json:"state"`
	Regions []regionDTO `json:"regions"`
}

// overlayFrameDTO is the per-frame overlay summary streamed to the dashboard.
type overlayFrameDTO struct {
	Timestamp int64     `json:"ts"`
	Faces     []faceDTO `json:"faces"`
}

// Server is the debug dashboard server.
type Server struct {
	app  *fiber.App
	port string

	settings  *config.Settings
	broadcast *notify.Broadcaster

	status   Status
	statusMu sync.RWMutex

	overlayHub *hub
	cameraHub  *hub
}

// NewServer creates the dashboard server. Config changes applied through the
// API are written to settings and published on the broadcaster.
func NewServer(port string, settings *config.Settings, broadcast *notify.Broadcaster) *Server {
	s := &Server{
		port:       port,
		settings:   settings,
		broadcast:  broadcast,
		overlayHub: newHub("overlays"),
		cameraHub:  newHub("camera"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "starface dashboard",
		DisableStartupMessage: true,
	})

	// Local development tooling; allow any origin.
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/config", s.handleGetConfig)
	api.Post("/config", s.handleSetConfig)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/overlays", websocket.New(s.handleOverlayWS))
	app.Get("/ws/camera", websocket.New(s.handleCameraWS))

	s.app = app
	return s
}

// StartAsync runs the server in its own goroutines.
func (s *Server) StartAsync() {
	go s.overlayHub.run()
	go s.cameraHub.run()
	go func() {
		log.Info("dashboard listening", "port", s.port)
		if err := s.app.Listen(":" + s.port); err != nil {
			log.Error("dashboard server stopped", "error", err)
		}
	}()
}

// Shutdown gracefully stops the server and terminates the hub loops.
func (s *Server) Shutdown() error {
	s.overlayHub.stop()
	s.cameraHub.stop()
	return s.app.Shutdown()
}

// UpdateStatus replaces the reported status.
func (s *Server) UpdateStatus(status Status) {
	s.statusMu.Lock()
	s.status = status
	s.statusMu.Unlock()
}

// PublishOverlays streams the frame's overlay geometry to dashboard clients.
// Encoding is skipped entirely when nobody is connected.
func (s *Server) PublishOverlays(faces []detector.Face, overlays []overlay.FaceOverlay) {
	if s.overlayHub.clientCount() == 0 {
		return
	}

	frame := overlayFrameDTO{
		Timestamp: time.Now().UnixMilli(),
		Faces:     make([]faceDTO, 0, len(overlays)),
	}
	for i, ov := range overlays {
		face := faceDTO{Regions: make([]regionDTO, 0, len(ov.Regions))}
		if i < len(faces) {
			face.Score = faces[i].Score
			face.State = faces[i].State.String()
		}
		for _, region := range ov.Regions {
			dto := regionDTO{
				Label:    region.Label,
				Segments: make([]segmentDTO, 0, len(region.Segments)),
			}
			for _, seg := range region.Segments {
				dto.Segments = append(dto.Segments, segmentDTO{
					FromX: seg.From.X, FromY: seg.From.Y,
					ToX: seg.To.X, ToY: seg.To.Y,
				})
			}
			face.Regions = append(face.Regions, dto)
		}
		frame.Faces = append(frame.Faces, face)
	}

	if err := s.overlayHub.sendJSON(frame); err != nil {
		log.Warn("overlay encode failed", "error", err)
	}
}

// WantsFrames reports whether any client is watching the camera stream, so
// the capture loop can skip JPEG encoding when nobody is.
func (s *Server) WantsFrames() bool {
	return s.cameraHub.clientCount() > 0
}

// PublishFrame streams a JPEG-encoded camera frame to dashboard clients.
// The caller may reuse or free the backing buffer as soon as this returns;
// delivery happens asynchronously, so the hub gets its own copy.
func (s *Server) PublishFrame(jpeg []byte) {
	if s.cameraHub.clientCount() == 0 {
		return
	}
	s.cameraHub.sendBinary(bytes.Clone(jpeg))
}

func (s *Server) handleStatus(c *fiber.Ctx) error {
	s.statusMu.RLock()
	status := s.status
	s.statusMu.RUnlock()
	return c.JSON(status)
}

func (s *Server) handleGetConfig(c *fiber.Ctx) error {
	view := s.settings.Get()
	return c.JSON(viewDTO{
		ContentMode: view.ContentMode.String(),
		Orientation: view.Orientation.String(),
		EdgeOffset:  view.EdgeOffset,
		DrawDots:    view.DrawDots,
		DrawStars:   view.DrawStars,
	})
}

func (s *Server) handleSetConfig(c *fiber.Ctx) error {
	var dto viewDTO
	if err := c.BodyParser(&dto); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid config payload")
	}
	if dto.EdgeOffset < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "edge_offset must be non-negative")
	}

	view := s.settings.Update(func(v *config.View) {
		v.ContentMode = overlay.ParseContentMode(dto.ContentMode)
		v.Orientation = overlay.ParseOrientation(dto.Orientation)
		v.EdgeOffset = dto.EdgeOffset
		v.DrawDots = dto.DrawDots
		v.DrawStars = dto.DrawStars
	})
	s.broadcast.Publish(notify.Change{Key: "view"})

	log.Info("view settings updated",
		"content_mode", view.ContentMode.String(),
		"orientation", view.Orientation.String(),
		"edge_offset", view.EdgeOffset)

	return c.JSON(viewDTO{
		ContentMode: view.ContentMode.String(),
		Orientation: view.Orientation.String(),
		EdgeOffset:  view.EdgeOffset,
		DrawDots:    view.DrawDots,
		DrawStars:   view.DrawStars,
	})
}

func (s *Server) handleOverlayWS(conn *websocket.Conn) {
	newClient(s.overlayHub, conn).run()
}

func (s *Server) handleCameraWS(conn *websocket.Conn) {
	newClient(s.cameraHub, conn).run()
}
