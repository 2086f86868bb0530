package web

import (
	"errors"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/affectlab/facemeter/pkg/hub"
	"github.com/affectlab/facemeter/pkg/report"
	"github.com/affectlab/facemeter/pkg/stats"
	"github.com/affectlab/facemeter/pkg/stream"
)

// handleStatus returns the sampler's current state.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"state":        s.sampler.State().String(),
		"session_id":   s.sampler.SessionID(),
		"live_clients": s.liveHub.ClientCount(),
	})
}

// handleStats returns the summary over the session history so far.
func (s *Server) handleStats(c *fiber.Ctx) error {
	summary, err := s.sampler.Summary()
	if errors.Is(err, stats.ErrEmptyInput) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "no samples collected yet",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(summary)
}

// handleWindow returns the current sliding-window contents.
func (s *Server) handleWindow(c *fiber.Ctx) error {
	return c.JSON(s.sampler.WindowSnapshot())
}

// handleReport returns the full session report.
func (s *Server) handleReport(c *fiber.Ctx) error {
	rep, err := s.sampler.SessionReport()
	if errors.Is(err, stats.ErrEmptyInput) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "no samples collected yet",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(rep)
}

// ExportRequest is the request body for /api/export.
type ExportRequest struct {
	Prefix string `json:"prefix"`
}

// handleExport writes the session history to a CSV file.
// Export failure does not invalidate in-memory results.
func (s *Server) handleExport(c *fiber.Ctx) error {
	var req ExportRequest
	if err := c.BodyParser(&req); err != nil || req.Prefix == "" {
		req.Prefix = "realtime_emotion_analysis"
	}

	path := filepath.Join(s.outputDir, report.DefaultCSVName(req.Prefix))
	if err := s.sampler.ExportCSV(path); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"path": path})
}

// handleStart opens the live source and starts a session.
func (s *Server) handleStart(c *fiber.Ctx) error {
	src, err := s.openSource()
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}

	if err := s.sampler.Start(src); err != nil {
		src.Close()
		if errors.Is(err, stream.ErrAlreadyRunning) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"session_id": s.sampler.SessionID()})
}

// handleStop ends the current session.
func (s *Server) handleStop(c *fiber.Ctx) error {
	if err := s.sampler.Stop(); err != nil {
		if errors.Is(err, stream.ErrNotRunning) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"state": s.sampler.State().String()})
}

// handleReset clears the window and history and re-anchors time.
func (s *Server) handleReset(c *fiber.Ctx) error {
	s.sampler.Reset()
	return c.JSON(fiber.Map{"state": s.sampler.State().String()})
}

// handleLiveWS streams JSON updates for the live dashboard.
func (s *Server) handleLiveWS(c *websocket.Conn) {
	client := hub.NewClient(s.liveHub, c)
	client.Run()
}

// handleCameraWS streams binary JPEG frames.
func (s *Server) handleCameraWS(c *websocket.Conn) {
	client := hub.NewClient(s.cameraHub, c)
	client.Run()
}
