package control

// AxisConfig holds the tunable parameters for one servo axis.
type AxisConfig struct {
	Target      int  // Pixel coordinate the axis centers on
	DeadZone    int  // Ignore errors smaller than this (pixels)
	StepDivisor int  // Proportional gain denominator (error / divisor per frame)
	Min         int  // Hard clamp, low side (degrees)
	Max         int  // Hard clamp, high side (degrees)
	Neutral     int  // Startup angle (degrees)
	ExtremeLow  int  // Below this the axis is near its low limit
	ExtremeHigh int  // Above this the axis is near its high limit
	InvertError bool // Increasing angle corresponds to decreasing pixel coordinate
}

// Config holds all tunable parameters for the rover controller.
// Values are fixed at startup; recalibration is a deployment concern.
type Config struct {
	Pan  AxisConfig
	Tilt AxisConfig

	// Standoff band. Areas inside [LowArea, HighArea] read as "object
	// at the right distance"; the band is what keeps measurement noise
	// from chattering the drive motors.
	LowArea  float64
	HighArea float64

	// MinDeltaArea is the smallest frame-to-frame area change worth
	// reporting. Diagnostic only; the drive decision never gates on it.
	MinDeltaArea float64

	// Parallel window. Drive commands are only meaningful when the pan
	// angle sits in [ParallelLow, ParallelHigh).
	ParallelLow  int
	ParallelHigh int
}

// DefaultConfig returns the calibration the rover demo runs with.
// The pixel targets and the area band assume a QVGA color camera.
func DefaultConfig() Config {
	return Config{
		Pan: AxisConfig{
			Target:      150,
			DeadZone:    20,
			StepDivisor: 12,
			Min:         0,
			Max:         179,
			Neutral:     90,
			ExtremeLow:  60,
			ExtremeHigh: 120,
		},
		Tilt: AxisConfig{
			Target:      115,
			DeadZone:    20,
			StepDivisor: 12,
			Min:         0,
			Max:         149,
			Neutral:     90,
			ExtremeLow:  60,
			ExtremeHigh: 120,
			InvertError: true, // Higher tilt angle looks further down the image
		},

		LowArea:      8000,
		HighArea:     11000,
		MinDeltaArea: 200,

		ParallelLow:  75,
		ParallelHigh: 105,
	}
}

// CloseStandoffConfig returns a calibration that follows the target
// more tightly, for small objects or short rooms.
func CloseStandoffConfig() Config {
	cfg := DefaultConfig()
	cfg.LowArea = 11000
	cfg.HighArea = 15000
	cfg.Pan.DeadZone = 12
	cfg.Tilt.DeadZone = 12
	return cfg
}

// FarStandoffConfig returns a calibration that keeps more distance and
// tolerates a sloppier center, for fast-moving targets.
func FarStandoffConfig() Config {
	cfg := DefaultConfig()
	cfg.LowArea = 5000
	cfg.HighArea = 8000
	cfg.Pan.DeadZone = 30
	cfg.Tilt.DeadZone = 30
	return cfg
}
