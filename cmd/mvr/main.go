// Rover tracker - visual servoing for the MVR chassis
//
// Consumes blob detections from the camera, keeps the gimbal centered
// on the largest blob, and drives the chassis to hold standoff
// distance. Configuration comes from the environment:
//
//	ROVER_IP       rover daemon address (required for the http backend)
//	CAMERA_URL     blob stream websocket URL (default: rover bridge)
//	VISION_SOURCE  "stream" (default) or "camera"
//	CAMERA_DEVICE  gocv device for the camera source (default "0")
//	ACTUATORS      "http" (default) or "gpio"
//	DASHBOARD_PORT dashboard listen port (default 8090)
//	LOG_LEVEL      debug, info, warn, error
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/openrover/go-mvr/internal/config"
	"github.com/openrover/go-mvr/internal/log"
	"github.com/openrover/go-mvr/pkg/actuator"
	"github.com/openrover/go-mvr/pkg/control"
	"github.com/openrover/go-mvr/pkg/rover"
	"github.com/openrover/go-mvr/pkg/vision"
	"github.com/openrover/go-mvr/pkg/web"
)

func main() {
	log.Init(config.LogLevel())

	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("shutting down")
		cancel()
	}()

	source, err := openSource()
	if err != nil {
		log.Error("vision source", "err", err)
		os.Exit(1)
	}
	defer source.Close()

	rig, err := buildRig()
	if err != nil {
		log.Error("actuators", "err", err)
		os.Exit(1)
	}

	dashboard := web.NewServer(config.DashboardPort())
	dashboard.StartAsync()
	dashboard.SetConnections(true, true)
	defer dashboard.Shutdown()

	loop := rover.NewLoop(control.DefaultConfig(), source, rig)
	loop.SetPublisher(dashboard)

	if err := loop.Run(ctx); err != nil {
		dashboard.SetConnections(false, false)
		log.Error("control loop failed", "err", err)
		os.Exit(1)
	}
}

// openSource picks the vision source from the environment.
func openSource() (vision.Source, error) {
	if os.Getenv("VISION_SOURCE") == "camera" {
		device := os.Getenv("CAMERA_DEVICE")
		if device == "" {
			device = "0"
		}
		detector := vision.NewBlobDetector(vision.GreenBallThresholds(), 100)
		return vision.NewCameraSource(device, detector)
	}

	url := config.CameraURL(config.RoverIP("192.168.4.1"))
	log.Info("connecting to camera bridge", "url", url)
	return vision.NewStreamSource(url)
}

// buildRig picks the actuator backend from the environment.
func buildRig() (*actuator.Rig, error) {
	if os.Getenv("ACTUATORS") == "gpio" {
		motors, err := actuator.NewGPIOMotors(
			actuator.MotorPins{In1: 5, In2: 6, Enable: 13},
			actuator.MotorPins{In1: 16, In2: 20, Enable: 21},
		)
		if err != nil {
			return nil, err
		}
		return &actuator.Rig{
			Servos: actuator.NewPiBlasterServos("12", "18"),
			Motors: motors,
		}, nil
	}

	bridge := actuator.NewHTTPBridge(config.BridgeURL(config.RoverIPRequired()))
	return &actuator.Rig{
		Servos:     bridge,
		Motors:     bridge,
		Indicators: bridge,
	}, nil
}
