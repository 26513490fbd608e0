package actuator

// MockServos records servo commands for tests.
type MockServos struct {
	PanAngles  []int
	TiltAngles []int

	// Err, when set, is returned by every command.
	Err error
}

func (m *MockServos) SetPanAngle(deg int) error {
	if m.Err != nil {
		return m.Err
	}
	m.PanAngles = append(m.PanAngles, deg)
	return nil
}

func (m *MockServos) SetTiltAngle(deg int) error {
	if m.Err != nil {
		return m.Err
	}
	m.TiltAngles = append(m.TiltAngles, deg)
	return nil
}

// MockMotors records the last command per motor and every command in
// order, for asserting on the per-frame drive output.
type MockMotors struct {
	Left     MotorCommand
	Right    MotorCommand
	History  []MotorCommand
	Err      error
	LeftSet  int
	RightSet int
}

func (m *MockMotors) SetLeftMotor(cmd MotorCommand) error {
	if m.Err != nil {
		return m.Err
	}
	m.Left = cmd
	m.LeftSet++
	m.History = append(m.History, cmd)
	return nil
}

func (m *MockMotors) SetRightMotor(cmd MotorCommand) error {
	if m.Err != nil {
		return m.Err
	}
	m.Right = cmd
	m.RightSet++
	m.History = append(m.History, cmd)
	return nil
}

// MockIndicators records the last indicator states.
type MockIndicators struct {
	Parallel bool
	PanLow   bool
	PanHigh  bool
}

func (m *MockIndicators) SetParallel(on bool) {
	m.Parallel = on
}

func (m *MockIndicators) SetPanExtremes(low, high bool) {
	m.PanLow = low
	m.PanHigh = high
}

var _ ServoDriver = (*MockServos)(nil)
var _ MotorDriver = (*MockMotors)(nil)
var _ Indicators = (*MockIndicators)(nil)
