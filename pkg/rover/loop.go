// Package rover wires the vision source, the controller, and the
// actuators into the per-frame control loop.
package rover

import (
	"context"
	"errors"
	"fmt"

	"github.com/openrover/go-mvr/internal/log"
	"github.com/openrover/go-mvr/pkg/actuator"
	"github.com/openrover/go-mvr/pkg/control"
	"github.com/openrover/go-mvr/pkg/vision"
)

// StatePublisher receives each frame's outcome for display.
// Publishing is observe-only and best effort.
type StatePublisher interface {
	UpdateFrame(f control.Frame)
	AddLog(logType, message string)
}

// Loop runs the frame-driven control cycle: one vision frame in, one
// set of actuator commands out, repeated until the context ends.
type Loop struct {
	tracker *control.Tracker
	source  vision.Source
	rig     *actuator.Rig

	publisher    StatePublisher
	lastDecision control.Decision
}

// NewLoop creates a control loop over the given collaborators.
func NewLoop(cfg control.Config, source vision.Source, rig *actuator.Rig) *Loop {
	return &Loop{
		tracker: control.NewTracker(cfg),
		source:  source,
		rig:     rig,
	}
}

// SetPublisher attaches a dashboard publisher.
func (l *Loop) SetPublisher(p StatePublisher) {
	l.publisher = p
}

// Tracker returns the underlying tracker for inspection.
func (l *Loop) Tracker() *control.Tracker {
	return l.tracker
}

// Run processes frames until the context is canceled or a collaborator
// fails. A vision or actuator error is fatal: the loop stops rather
// than retrying, since masking a dead actuator risks uncontrolled
// motion. On any exit the motors are commanded to the safe state.
func (l *Loop) Run(ctx context.Context) error {
	log.Info("control loop started")
	defer l.failSafe()

	for {
		dets, err := l.source.NextFrame(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				log.Info("control loop stopped")
				return nil
			}
			return fmt.Errorf("vision source: %w", err)
		}

		frame := l.tracker.Step(dets)

		if err := l.rig.Apply(frame); err != nil {
			return fmt.Errorf("actuate frame %d: %w", frame.Seq, err)
		}

		l.publish(frame)
	}
}

// publish pushes the frame to the dashboard and logs transitions.
func (l *Loop) publish(frame control.Frame) {
	log.Debug("frame",
		"seq", frame.Seq,
		"target", frame.HasTarget,
		"area", frame.Area,
		"pan", frame.PanAngle,
		"tilt", frame.TiltAngle,
		"parallel", frame.Parallel,
		"decision", frame.Decision.String(),
	)

	if frame.HasTarget && l.tracker.Distance().Significant(frame.DeltaArea) {
		log.Debug("area shift above noise floor",
			"seq", frame.Seq,
			"delta", frame.DeltaArea,
		)
		if l.publisher != nil {
			l.publisher.AddLog("area", fmt.Sprintf("area delta %.0f", frame.DeltaArea))
		}
	}

	if frame.Decision != l.lastDecision {
		log.Info("drive decision changed",
			"from", l.lastDecision.String(),
			"to", frame.Decision.String(),
			"seq", frame.Seq,
		)
		if l.publisher != nil {
			l.publisher.AddLog("decision", frame.Decision.String())
		}
		l.lastDecision = frame.Decision
	}

	if l.publisher != nil {
		l.publisher.UpdateFrame(frame)
	}
}

// failSafe de-energizes both motors. Errors are logged, not returned:
// this runs on the way out and there is nothing left to abort.
func (l *Loop) failSafe() {
	if err := l.rig.Motors.SetLeftMotor(actuator.MotorCommand{}); err != nil {
		log.Error("failsafe left motor", "err", err)
	}
	if err := l.rig.Motors.SetRightMotor(actuator.MotorCommand{}); err != nil {
		log.Error("failsafe right motor", "err", err)
	}
}
