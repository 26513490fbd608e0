package actuator

import (
	"fmt"
	"os"
)

// pi-blaster PWM parameters for the gimbal servos.
const (
	pwmFreq      = 50   // Hz
	servoMinPw   = 700  // Pulse width at 0 degrees (microseconds)
	servoMaxPw   = 2200 // Pulse width at full travel (microseconds)
	servoTravel  = 180  // Degrees from min to max pulse width
	piBlasterDev = "/dev/pi-blaster"
)

// PiBlasterServos drives the pan and tilt servos through the
// pi-blaster PWM daemon, one GPIO pin per servo.
type PiBlasterServos struct {
	PanPin  string
	TiltPin string

	// Device path, overridable for tests.
	Device string
}

// NewPiBlasterServos creates a servo driver on the given pi-blaster
// pin names (e.g. "17" and "18").
func NewPiBlasterServos(panPin, tiltPin string) *PiBlasterServos {
	return &PiBlasterServos{
		PanPin:  panPin,
		TiltPin: tiltPin,
		Device:  piBlasterDev,
	}
}

// SetPanAngle commands the pan servo.
func (s *PiBlasterServos) SetPanAngle(deg int) error {
	return s.writeAngle(s.PanPin, deg)
}

// SetTiltAngle commands the tilt servo.
func (s *PiBlasterServos) SetTiltAngle(deg int) error {
	return s.writeAngle(s.TiltPin, deg)
}

// writeAngle converts an angle to a PWM duty cycle and hands it to
// pi-blaster. The angle is already clamped by the control layer.
func (s *PiBlasterServos) writeAngle(pin string, deg int) error {
	pw := float64(servoMinPw) + float64(deg)*float64(servoMaxPw-servoMinPw)/float64(servoTravel)
	duty := pw * pwmFreq / 1e6

	line := []byte(fmt.Sprintf("%s=%f\n", pin, duty))
	if err := os.WriteFile(s.Device, line, 0o644); err != nil {
		return fmt.Errorf("pi-blaster write failed: %w", err)
	}
	return nil
}

var _ ServoDriver = (*PiBlasterServos)(nil)
