package actuator

import (
	"fmt"

	"github.com/openrover/go-mvr/pkg/control"
)

// MapDecision translates a drive decision into per-motor commands.
//
//	Forward     both motors forward
//	Reverse     both motors backward
//	PivotRight  left backward, right forward
//	PivotLeft   left forward, right backward
//	Stop        both enables off
func MapDecision(d control.Decision) (left, right MotorCommand) {
	switch d {
	case control.Forward:
		return MotorCommand{Dir: DirForward, Enable: true},
			MotorCommand{Dir: DirForward, Enable: true}
	case control.Reverse:
		return MotorCommand{Dir: DirBackward, Enable: true},
			MotorCommand{Dir: DirBackward, Enable: true}
	case control.PivotRight:
		return MotorCommand{Dir: DirBackward, Enable: true},
			MotorCommand{Dir: DirForward, Enable: true}
	case control.PivotLeft:
		return MotorCommand{Dir: DirForward, Enable: true},
			MotorCommand{Dir: DirBackward, Enable: true}
	default:
		return MotorCommand{}, MotorCommand{}
	}
}

// Rig bundles the rover's output devices and applies one control frame
// to them. Servos and Motors are required; Indicators is optional.
type Rig struct {
	Servos     ServoDriver
	Motors     MotorDriver
	Indicators Indicators
}

// Apply issues the actuator commands for one frame: each servo at most
// once and only when its angle changed, both motors exactly once.
// Commands are fire-and-forget; a driver error aborts the frame and is
// fatal to the loop, since masking it risks uncontrolled motion.
func (r *Rig) Apply(f control.Frame) error {
	if r.Indicators != nil {
		r.Indicators.SetParallel(f.Parallel)
		r.Indicators.SetPanExtremes(f.PanLow, f.PanHigh)
	}

	if f.PanMoved {
		if err := r.Servos.SetPanAngle(f.PanAngle); err != nil {
			return fmt.Errorf("pan servo: %w", err)
		}
	}
	if f.TiltMoved {
		if err := r.Servos.SetTiltAngle(f.TiltAngle); err != nil {
			return fmt.Errorf("tilt servo: %w", err)
		}
	}

	left, right := MapDecision(f.Decision)
	if err := r.Motors.SetLeftMotor(left); err != nil {
		return fmt.Errorf("left motor: %w", err)
	}
	if err := r.Motors.SetRightMotor(right); err != nil {
		return fmt.Errorf("right motor: %w", err)
	}

	return nil
}
