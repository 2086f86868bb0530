// Package web provides a real-time dashboard and control API for a
// streaming analysis session.
package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/affectlab/facemeter/internal/log"
	"github.com/affectlab/facemeter/pkg/hub"
	"github.com/affectlab/facemeter/pkg/sample"
	"github.com/affectlab/facemeter/pkg/stream"
)

// LiveUpdate is the JSON payload broadcast on /ws/live after every tick.
type LiveUpdate struct {
	Sample sample.Sample   `json:"sample"`
	Window []sample.Sample `json:"window"`
}

// SourceOpener opens the live source for a new session.
// Injected so commands can choose the camera and tests can stub it.
type SourceOpener func() (stream.LiveSource, error)

// Server exposes the stream sampler over HTTP and websockets.
type Server struct {
	app  *fiber.App
	port string

	sampler    *stream.Sampler
	openSource SourceOpener
	outputDir  string

	// Hubs for websocket broadcast
	liveHub   *hub.Hub
	cameraHub *hub.Hub
}

// NewServer creates a dashboard server around the given sampler.
func NewServer(port, outputDir string, sampler *stream.Sampler, openSource SourceOpener) *Server {
	s := &Server{
		port:       port,
		sampler:    sampler,
		openSource: openSource,
		outputDir:  outputDir,
		liveHub:    hub.New("live"),
		cameraHub:  hub.New("camera"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Facemeter Dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	// Static files
	app.Static("/", "./web")

	// API routes
	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/stats", s.handleStats)
	api.Get("/window", s.handleWindow)
	api.Get("/report", s.handleReport)
	api.Post("/export", s.handleExport)
	api.Post("/start", s.handleStart)
	api.Post("/stop", s.handleStop)
	api.Post("/reset", s.handleReset)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	// WebSocket routes
	app.Get("/ws/live", websocket.New(s.handleLiveWS))
	app.Get("/ws/camera", websocket.New(s.handleCameraWS))

	s.app = app
	return s
}

// Start runs the hubs and the update pump, then serves.
// Blocks until the server stops.
func (s *Server) Start() error {
	log.Info("dashboard listening", "addr", "http://localhost:"+s.port)

	go s.liveHub.Run()
	go s.cameraHub.Run()
	go s.pump()

	return s.app.Listen(":" + s.port)
}

// StartAsync starts the web server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("web server error", "error", err)
		}
	}()
}

// Shutdown gracefully stops the web server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// pump forwards sampler updates to the websocket hubs.
func (s *Server) pump() {
	for u := range s.sampler.Subscribe() {
		s.liveHub.BroadcastJSON(LiveUpdate{Sample: u.Sample, Window: u.Window})
		if len(u.Frame) > 0 {
			s.cameraHub.BroadcastBinary(u.Frame)
		}
	}
}
