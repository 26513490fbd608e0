package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/openrover/go-mvr/pkg/hub"
)

// handleStatus returns the latest controller state snapshot.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	s.stateMu.RLock()
	state := s.state
	s.stateMu.RUnlock()
	return c.JSON(state)
}

// handleGetLogs returns the buffered log entries.
func (s *Server) handleGetLogs(c *fiber.Ctx) error {
	s.logsMu.RLock()
	logs := make([]LogEntry, len(s.logs))
	copy(logs, s.logs)
	s.logsMu.RUnlock()
	return c.JSON(logs)
}

// handleStatusWS streams controller state, one message per frame.
func (s *Server) handleStatusWS(conn *websocket.Conn) {
	client := hub.NewClient(s.statusHub, conn)
	client.Run()
}

// handleLogsWS streams dashboard log entries.
func (s *Server) handleLogsWS(conn *websocket.Conn) {
	client := hub.NewClient(s.logHub, conn)
	client.Run()
}
