// Simulator - runs scripted detection sequences through the real
// controller with mock actuators and prints each frame's outcome.
// Useful for sanity-checking a calibration before putting the rover
// on the floor.
package main

import (
	"fmt"
	"image"

	"github.com/openrover/go-mvr/internal/log"
	"github.com/openrover/go-mvr/pkg/control"
	"github.com/openrover/go-mvr/pkg/vision"
)

// step is one scripted camera frame.
type step struct {
	name string
	dets []vision.Detection
}

func blob(cx, cy, area float64) []vision.Detection {
	return []vision.Detection{{
		Cx: cx, Cy: cy, Area: area,
		Rect: image.Rect(int(cx)-20, int(cy)-20, int(cx)+20, int(cy)+20),
	}}
}

func main() {
	log.Init("warn")

	script := []step{
		{"empty frame", nil},
		{"ball left of center", blob(100, 115, 9000)},
		{"ball centered, too far", blob(150, 115, 5000)},
		{"ball centered, in band", blob(150, 115, 9000)},
		{"ball centered, too close", blob(150, 115, 13000)},
		{"ball under the nose", blob(150, 230, 13000)},
		{"ball under the nose", blob(150, 230, 13000)},
		{"ball under the nose", blob(150, 230, 13000)},
		{"ball gone", nil},
	}

	tracker := control.NewTracker(control.DefaultConfig())

	fmt.Println("MVR controller simulation")
	fmt.Println("=========================")
	for _, s := range script {
		frame := tracker.Step(s.dets)
		fmt.Printf("%-24s pan=%3d tilt=%3d parallel=%-5v decision=%s\n",
			s.name, frame.PanAngle, frame.TiltAngle, frame.Parallel, frame.Decision)
	}
}
