package control

import (
	"github.com/openrover/go-mvr/pkg/vision"
)

// Frame is the full outcome of one control cycle: the servo angles,
// the drive decision, and the indicator states a harness can assert on.
// It is a pure value; applying it to hardware is the actuator's job.
type Frame struct {
	Seq uint64

	// Target
	HasTarget bool
	Cx, Cy    float64
	Area      float64
	DeltaArea float64

	// Gimbal
	PanAngle  int
	TiltAngle int
	PanMoved  bool // Pan servo needs the new angle this frame
	TiltMoved bool // Tilt servo needs the new angle this frame

	// Indicators
	Parallel    bool
	PanLow      bool
	PanHigh     bool
	TiltExtreme bool

	// Drive
	Decision Decision
}

// Tracker runs the per-frame control cycle for the gimbal and the
// drive base. It owns all persistent control state: both axis angles
// and the area history. One Step per frame, single-threaded; the
// caller must finish applying a frame before starting the next.
type Tracker struct {
	cfg      Config
	pan      *Axis
	tilt     *Axis
	distance *DistanceController
	seq      uint64
}

// NewTracker creates a tracker with both axes at neutral.
func NewTracker(cfg Config) *Tracker {
	return &Tracker{
		cfg:      cfg,
		pan:      NewAxis(cfg.Pan),
		tilt:     NewAxis(cfg.Tilt),
		distance: NewDistanceController(cfg),
	}
}

// Pan returns the pan axis for inspection.
func (t *Tracker) Pan() *Axis { return t.pan }

// Tilt returns the tilt axis for inspection.
func (t *Tracker) Tilt() *Axis { return t.tilt }

// Distance returns the distance controller for inspection.
func (t *Tracker) Distance() *DistanceController { return t.distance }

// Step runs one control cycle over the frame's detections.
//
// The largest blob becomes the tracked target; an empty frame resolves
// to Stop with no axis movement. Axis updates run first so the
// parallel gate and the extreme flags see this frame's pan angle.
// Extreme avoidance outranks distance control, and with the gate
// closed and no extreme the frame defaults to Stop.
func (t *Tracker) Step(dets []vision.Detection) Frame {
	t.seq++
	frame := Frame{
		Seq:       t.seq,
		PanAngle:  t.pan.Angle(),
		TiltAngle: t.tilt.Angle(),
		Decision:  Stop,
	}

	target := vision.Largest(dets)
	if target == nil {
		// No target: full stop, indicators still reflect the held pose.
		frame.Parallel = t.isParallel()
		frame.PanLow = t.pan.Angle() < t.cfg.Pan.ExtremeLow
		frame.PanHigh = t.pan.Angle() > t.cfg.Pan.ExtremeHigh
		return frame
	}

	frame.HasTarget = true
	frame.Cx = target.Cx
	frame.Cy = target.Cy
	frame.Area = target.Area

	pan := t.pan.Update(int(target.Cx))
	tilt := t.tilt.Update(int(target.Cy))

	frame.PanAngle = pan.Angle
	frame.PanMoved = pan.Moved
	frame.PanLow = pan.Low
	frame.PanHigh = pan.High
	frame.TiltAngle = tilt.Angle
	frame.TiltMoved = tilt.Moved
	frame.TiltExtreme = tilt.Outside

	frame.Parallel = t.isParallel()
	frame.DeltaArea = t.distance.Observe(target.Area)

	if decision, ok := Avoid(pan.Low, pan.High, tilt.Outside); ok {
		frame.Decision = decision
	} else if decision, ok := t.distance.Decide(target.Area, frame.Parallel); ok {
		frame.Decision = decision
	}

	return frame
}

// isParallel reports whether the chassis forward axis is aligned with
// the tracked object, read from the persisted pan angle. Re-evaluated
// after the pan update so the gate sees this frame's adjustment.
func (t *Tracker) isParallel() bool {
	angle := t.pan.Angle()
	return angle >= t.cfg.ParallelLow && angle < t.cfg.ParallelHigh
}
