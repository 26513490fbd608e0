// Package web provides a real-time telemetry dashboard for the rover.
package web

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/openrover/go-mvr/internal/log"
	"github.com/openrover/go-mvr/pkg/control"
	"github.com/openrover/go-mvr/pkg/hub"
)

// RoverState is the per-frame controller state shown on the dashboard.
// The LED fields mirror the indicator outputs on the chassis.
type RoverState struct {
	Frame       uint64  `json:"frame"`
	HasTarget   bool    `json:"has_target"`
	Cx          float64 `json:"cx"`
	Cy          float64 `json:"cy"`
	Area        float64 `json:"area"`
	DeltaArea   float64 `json:"delta_area"`
	PanAngle    int     `json:"pan_angle"`
	TiltAngle   int     `json:"tilt_angle"`
	Decision    string  `json:"decision"`
	Parallel    bool    `json:"parallel"`
	PanLow      bool    `json:"pan_low"`
	PanHigh     bool    `json:"pan_high"`
	TiltExtreme bool    `json:"tilt_extreme"`

	CameraConnected bool `json:"camera_connected"`
	BridgeConnected bool `json:"bridge_connected"`
}

// LogEntry represents a log line for the dashboard.
type LogEntry struct {
	Time    string `json:"time"`
	Type    string `json:"type"` // info, decision, error
	Message string `json:"message"`
}

// Server is the dashboard server. It is observe-only: nothing it
// serves feeds back into the control loop.
type Server struct {
	app  *fiber.App
	port string

	// State
	state   RoverState
	stateMu sync.RWMutex

	// Log buffer (last 500 entries)
	logs   []LogEntry
	logsMu sync.RWMutex

	// Hubs for websocket broadcast
	statusHub *hub.Hub
	logHub    *hub.Hub
}

// NewServer creates a new dashboard server.
func NewServer(port string) *Server {
	s := &Server{
		port:      port,
		logs:      make([]LogEntry, 0, 500),
		statusHub: hub.New("status"),
		logHub:    hub.New("logs"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Rover Dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	// Static files
	app.Static("/", "./web")

	// API routes
	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/logs", s.handleGetLogs)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	// WebSocket routes
	app.Get("/ws/status", websocket.New(s.handleStatusWS))
	app.Get("/ws/logs", websocket.New(s.handleLogsWS))

	s.app = app
	return s
}

// Start starts the dashboard server. Blocks.
func (s *Server) Start() error {
	log.Info("dashboard listening", "addr", "http://localhost:"+s.port)

	go s.statusHub.Run()
	go s.logHub.Run()

	return s.app.Listen(":" + s.port)
}

// StartAsync starts the dashboard server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("dashboard server error", "err", err)
		}
	}()
}

// UpdateFrame publishes one control frame to the dashboard.
func (s *Server) UpdateFrame(f control.Frame) {
	s.stateMu.Lock()
	s.state.Frame = f.Seq
	s.state.HasTarget = f.HasTarget
	s.state.Cx = f.Cx
	s.state.Cy = f.Cy
	s.state.Area = f.Area
	s.state.DeltaArea = f.DeltaArea
	s.state.PanAngle = f.PanAngle
	s.state.TiltAngle = f.TiltAngle
	s.state.Decision = f.Decision.String()
	s.state.Parallel = f.Parallel
	s.state.PanLow = f.PanLow
	s.state.PanHigh = f.PanHigh
	s.state.TiltExtreme = f.TiltExtreme
	state := s.state // Copy for broadcast
	s.stateMu.Unlock()

	s.statusHub.BroadcastJSON(state)
}

// SetConnections updates the collaborator health flags.
func (s *Server) SetConnections(camera, bridge bool) {
	s.stateMu.Lock()
	s.state.CameraConnected = camera
	s.state.BridgeConnected = bridge
	state := s.state
	s.stateMu.Unlock()

	s.statusHub.BroadcastJSON(state)
}

// AddLog adds a log entry and broadcasts it to clients.
func (s *Server) AddLog(logType, message string) {
	entry := LogEntry{
		Time:    time.Now().Format("15:04:05"),
		Type:    logType,
		Message: message,
	}

	s.logsMu.Lock()
	s.logs = append(s.logs, entry)
	if len(s.logs) > 500 {
		s.logs = s.logs[1:]
	}
	s.logsMu.Unlock()

	s.logHub.BroadcastJSON(entry)
}

// Shutdown gracefully stops the dashboard server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
