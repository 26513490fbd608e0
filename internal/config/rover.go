// Package config provides configuration helpers for go-mvr commands.
package config

import (
	"fmt"
	"os"
)

// Default rover configuration.
const (
	DefaultBridgePort    = "8000"
	DefaultDashboardPort = "8090"
	DefaultCameraPath    = "/ws/blobs"
)

// RoverIP returns the rover bridge IP from ROVER_IP env var.
// Falls back to the provided default if not set.
func RoverIP(defaultIP string) string {
	if ip := os.Getenv("ROVER_IP"); ip != "" {
		return ip
	}
	return defaultIP
}

// RoverIPRequired returns the rover bridge IP from ROVER_IP env var.
// Exits if not set.
func RoverIPRequired() string {
	ip := os.Getenv("ROVER_IP")
	if ip == "" {
		fmt.Fprintln(os.Stderr, "Error: ROVER_IP environment variable is required")
		fmt.Fprintln(os.Stderr, "Usage: ROVER_IP=192.168.4.1 go run ./cmd/...")
		os.Exit(1)
	}
	return ip
}

// BridgeURL returns the rover actuator bridge HTTP URL.
func BridgeURL(roverIP string) string {
	return fmt.Sprintf("http://%s:%s", roverIP, DefaultBridgePort)
}

// CameraURL returns the blob stream websocket URL from CAMERA_URL env var.
// Falls back to the rover's own camera bridge if not set.
func CameraURL(roverIP string) string {
	if url := os.Getenv("CAMERA_URL"); url != "" {
		return url
	}
	return fmt.Sprintf("ws://%s:%s%s", roverIP, DefaultBridgePort, DefaultCameraPath)
}

// DashboardPort returns the dashboard listen port from DASHBOARD_PORT env var
// or the default.
func DashboardPort() string {
	if port := os.Getenv("DASHBOARD_PORT"); port != "" {
		return port
	}
	return DefaultDashboardPort
}

// LogLevel returns the log level from LOG_LEVEL env var or "info".
func LogLevel() string {
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		return lvl
	}
	return "info"
}
