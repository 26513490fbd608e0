package control

// Decision is the discrete drive command chosen for one frame.
type Decision int

const (
	Stop Decision = iota
	Forward
	Reverse
	PivotLeft
	PivotRight
)

// String returns the decision name for logs and the dashboard.
func (d Decision) String() string {
	switch d {
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	case PivotLeft:
		return "pivot-left"
	case PivotRight:
		return "pivot-right"
	default:
		return "stop"
	}
}

// DistanceController keeps the rover at standoff distance using the
// target's apparent area. A larger area means the object fills more of
// the frame, i.e. the rover is too close.
type DistanceController struct {
	lowArea      float64
	highArea     float64
	minDeltaArea float64

	lastArea float64
}

// NewDistanceController creates a distance controller for the
// configured standoff band.
func NewDistanceController(cfg Config) *DistanceController {
	return &DistanceController{
		lowArea:      cfg.LowArea,
		highArea:     cfg.HighArea,
		minDeltaArea: cfg.MinDeltaArea,
	}
}

// Observe records this frame's area and returns the change since the
// previous frame. The delta is diagnostic context for noise during
// calibration; the drive decision uses only the band comparison below.
func (c *DistanceController) Observe(area float64) float64 {
	delta := c.lastArea - area
	c.lastArea = area
	return delta
}

// Significant reports whether an area delta exceeds the noise floor.
func (c *DistanceController) Significant(delta float64) bool {
	if delta < 0 {
		delta = -delta
	}
	return delta >= c.minDeltaArea
}

// Decide chooses a drive command from the target's area.
//
// Distance control only runs while the pan axis is parallel; mixing
// distance moves with angular correction makes the area reading lie.
// When the gate is closed no decision is issued and ok is false.
func (c *DistanceController) Decide(area float64, parallel bool) (Decision, bool) {
	if !parallel {
		return Stop, false
	}

	switch {
	case area > c.highArea:
		return Reverse, true // Too close, back away
	case area < c.lowArea:
		return Forward, true // Too far, close in
	default:
		return Stop, true // Inside the standoff band
	}
}

// Avoid returns the chassis move that relieves a servo near its limit.
//
// Pan extremes pivot the chassis so the apparent azimuth swings back
// toward center. A tilt extreme means the object is nearly underneath
// the rover, so it backs straight away; the tilt check runs last and
// unconditionally supersedes a pan pivot when both fire in one frame.
func Avoid(panLow, panHigh, tiltExtreme bool) (Decision, bool) {
	decision, ok := Stop, false

	if panLow {
		decision, ok = PivotRight, true
	} else if panHigh {
		decision, ok = PivotLeft, true
	}

	if tiltExtreme {
		decision, ok = Reverse, true
	}

	return decision, ok
}
