package control

// Axis maintains the commanded angle of one gimbal servo.
//
// Each frame the axis takes the target's pixel coordinate, applies a
// dead zone and a proportional step, and clamps the result to the
// servo's safe range. The clamp is a hard safety bound; the extreme
// window is a separate, narrower band used for behavioral decisions.
type Axis struct {
	cfg   AxisConfig
	angle int
}

// AxisUpdate is the result of one per-frame axis update.
type AxisUpdate struct {
	Angle int  // Commanded angle after this frame
	Moved bool // The angle changed and the servo needs the new value

	// Extreme flags, evaluated from the post-update angle every frame,
	// dead zone included.
	Low     bool // angle < ExtremeLow
	High    bool // angle > ExtremeHigh
	Outside bool // angle < ExtremeLow or angle >= ExtremeHigh
}

// NewAxis creates an axis at its neutral angle.
func NewAxis(cfg AxisConfig) *Axis {
	return &Axis{
		cfg:   cfg,
		angle: clampInt(cfg.Neutral, cfg.Min, cfg.Max),
	}
}

// Angle returns the current commanded angle.
func (a *Axis) Angle() int {
	return a.angle
}

// SetAngle forces the commanded angle, clamped to the safe range.
// Used at startup and by tests; normal operation goes through Update.
func (a *Axis) SetAngle(deg int) {
	a.angle = clampInt(deg, a.cfg.Min, a.cfg.Max)
}

// Update advances the axis one frame toward centering the measured
// coordinate on the axis target.
//
// The error convention is target − measured: a positive pan error means
// the object sits left of center. The step is the floor division of
// the error by the step divisor, matching the servo calibration this
// controller was tuned against; an inverted axis subtracts the step
// instead of adding it.
func (a *Axis) Update(measured int) AxisUpdate {
	err := a.cfg.Target - measured

	if abs(err) >= a.cfg.DeadZone {
		step := floorDiv(err, a.cfg.StepDivisor)
		before := a.angle
		if a.cfg.InvertError {
			a.angle -= step
		} else {
			a.angle += step
		}
		a.angle = clampInt(a.angle, a.cfg.Min, a.cfg.Max)
		return a.flags(a.angle != before)
	}

	return a.flags(false)
}

// flags evaluates the extreme window on the current angle.
func (a *Axis) flags(moved bool) AxisUpdate {
	return AxisUpdate{
		Angle:   a.angle,
		Moved:   moved,
		Low:     a.angle < a.cfg.ExtremeLow,
		High:    a.angle > a.cfg.ExtremeHigh,
		Outside: a.angle < a.cfg.ExtremeLow || a.angle >= a.cfg.ExtremeHigh,
	}
}

// floorDiv divides rounding toward negative infinity, so a negative
// error keeps stepping the angle down instead of truncating to zero.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// clampInt limits v to the range [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
