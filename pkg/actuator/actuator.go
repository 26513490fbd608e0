// Package actuator provides the hardware output surface for the rover:
// gimbal servos, the differential drive motors, and the indicator LEDs.
//
// This package follows the Interface Segregation Principle (ISP) by
// defining small, focused interfaces that can be composed as needed.
// Consumers should depend only on the interfaces they actually use.
package actuator

// Direction is the rotation direction of one drive motor.
type Direction int

const (
	DirForward Direction = iota
	DirBackward
)

// String returns the direction name for logs and wire payloads.
func (d Direction) String() string {
	if d == DirBackward {
		return "backward"
	}
	return "forward"
}

// ServoDriver commands the gimbal servos. Angles are integer degrees,
// already clamped by the control layer; drivers may assume pan is in
// [0,179] and tilt in [0,149].
type ServoDriver interface {
	SetPanAngle(deg int) error
	SetTiltAngle(deg int) error
}

// MotorCommand is one motor's direction and enable state.
type MotorCommand struct {
	Dir    Direction
	Enable bool
}

// MotorDriver commands the drive motors. Disabling (Enable=false) is
// the designated safe state and must positively de-energize the motor.
type MotorDriver interface {
	SetLeftMotor(cmd MotorCommand) error
	SetRightMotor(cmd MotorCommand) error
}

// Indicators mirrors the controller's per-frame diagnostic state onto
// observable outputs (status LEDs on the rover, state on the
// dashboard). Best effort; indicator failures never stop the rover.
type Indicators interface {
	SetParallel(on bool)
	SetPanExtremes(low, high bool)
}
