package actuator

import (
	"fmt"
	"os"
	"path/filepath"
)

// MotorPins is the h-bridge wiring for one drive motor: two direction
// inputs and the enable line.
type MotorPins struct {
	In1    int
	In2    int
	Enable int
}

// GPIOMotors drives both h-bridge channels through the sysfs GPIO
// interface. Forward sets In1 high / In2 low, backward the opposite;
// the enable line energizes the channel.
type GPIOMotors struct {
	Left  MotorPins
	Right MotorPins

	// Sysfs root, overridable for tests.
	Root string
}

// NewGPIOMotors exports the six h-bridge pins and configures them as
// outputs, all initially disabled.
func NewGPIOMotors(left, right MotorPins) (*GPIOMotors, error) {
	m := &GPIOMotors{Left: left, Right: right, Root: "/sys/class/gpio"}

	for _, pin := range []int{left.In1, left.In2, left.Enable, right.In1, right.In2, right.Enable} {
		if err := m.exportOutput(pin); err != nil {
			return nil, err
		}
	}

	if err := m.SetLeftMotor(MotorCommand{}); err != nil {
		return nil, err
	}
	if err := m.SetRightMotor(MotorCommand{}); err != nil {
		return nil, err
	}
	return m, nil
}

// SetLeftMotor commands the left h-bridge channel.
func (m *GPIOMotors) SetLeftMotor(cmd MotorCommand) error {
	return m.setMotor(m.Left, cmd)
}

// SetRightMotor commands the right h-bridge channel.
func (m *GPIOMotors) SetRightMotor(cmd MotorCommand) error {
	return m.setMotor(m.Right, cmd)
}

// setMotor writes the direction pair before touching the enable line,
// so a direction flip never passes through a half-set h-bridge state.
func (m *GPIOMotors) setMotor(pins MotorPins, cmd MotorCommand) error {
	if !cmd.Enable {
		// Disabling is the fail-safe: drop the enable line first and
		// leave the direction pins alone.
		return m.writeValue(pins.Enable, 0)
	}

	in1, in2 := 1, 0
	if cmd.Dir == DirBackward {
		in1, in2 = 0, 1
	}

	if err := m.writeValue(pins.In1, in1); err != nil {
		return err
	}
	if err := m.writeValue(pins.In2, in2); err != nil {
		return err
	}
	return m.writeValue(pins.Enable, 1)
}

// exportOutput exports a pin and sets its direction to out. An
// already-exported pin is fine.
func (m *GPIOMotors) exportOutput(pin int) error {
	gpioDir := filepath.Join(m.Root, fmt.Sprintf("gpio%d", pin))
	if _, err := os.Stat(gpioDir); os.IsNotExist(err) {
		exportPath := filepath.Join(m.Root, "export")
		if err := os.WriteFile(exportPath, []byte(fmt.Sprintf("%d", pin)), 0o644); err != nil {
			return fmt.Errorf("export gpio %d: %w", pin, err)
		}
	}

	dirPath := filepath.Join(gpioDir, "direction")
	if err := os.WriteFile(dirPath, []byte("out"), 0o644); err != nil {
		return fmt.Errorf("configure gpio %d: %w", pin, err)
	}
	return nil
}

// writeValue sets a pin's logic level.
func (m *GPIOMotors) writeValue(pin, value int) error {
	path := filepath.Join(m.Root, fmt.Sprintf("gpio%d", pin), "value")
	if err := os.WriteFile(path, []byte(fmt.Sprintf("%d", value)), 0o644); err != nil {
		return fmt.Errorf("write gpio %d: %w", pin, err)
	}
	return nil
}

var _ MotorDriver = (*GPIOMotors)(nil)
