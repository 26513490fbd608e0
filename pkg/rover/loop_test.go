package rover

import (
	"context"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/openrover/go-mvr/pkg/actuator"
	"github.com/openrover/go-mvr/pkg/control"
	"github.com/openrover/go-mvr/pkg/vision"
)

// scriptSource plays back a fixed sequence of frames, then reports the
// context as canceled.
type scriptSource struct {
	frames [][]vision.Detection
	next   int
	cancel context.CancelFunc
}

func (s *scriptSource) NextFrame(ctx context.Context) ([]vision.Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.next >= len(s.frames) {
		s.cancel()
		return nil, context.Canceled
	}
	dets := s.frames[s.next]
	s.next++
	return dets, nil
}

func (s *scriptSource) Close() error { return nil }

// failSource errors on the first frame.
type failSource struct{}

func (failSource) NextFrame(ctx context.Context) ([]vision.Detection, error) {
	return nil, errors.New("camera bridge read failed")
}

func (failSource) Close() error { return nil }

func blobAt(cx, cy, area float64) []vision.Detection {
	return []vision.Detection{{
		Cx: cx, Cy: cy, Area: area,
		Rect: image.Rect(int(cx)-10, int(cy)-10, int(cx)+10, int(cy)+10),
	}}
}

func TestLoop_RunsScriptAndStopsClean(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	source := &scriptSource{
		frames: [][]vision.Detection{
			nil,                       // Stop
			blobAt(150, 115, 4000),    // Forward
			blobAt(150, 115, 9000),    // Stop
			blobAt(150, 115, 13000),   // Reverse
		},
		cancel: cancel,
	}

	motors := &actuator.MockMotors{}
	rig := &actuator.Rig{Servos: &actuator.MockServos{}, Motors: motors}

	loop := NewLoop(control.DefaultConfig(), source, rig)
	if err := loop.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Four frames, two commands per frame, plus the fail-safe pair
	if motors.LeftSet != 5 || motors.RightSet != 5 {
		t.Errorf("motor commands = (%d, %d), want (5, 5)", motors.LeftSet, motors.RightSet)
	}

	// The loop always leaves the motors de-energized
	if motors.Left.Enable || motors.Right.Enable {
		t.Errorf("motors still enabled after shutdown: %+v %+v", motors.Left, motors.Right)
	}
}

func TestLoop_VisionErrorIsFatal(t *testing.T) {
	motors := &actuator.MockMotors{}
	rig := &actuator.Rig{Servos: &actuator.MockServos{}, Motors: motors}

	loop := NewLoop(control.DefaultConfig(), failSource{}, rig)
	if err := loop.Run(context.Background()); err == nil {
		t.Fatal("Run returned nil, want vision error")
	}

	if motors.Left.Enable || motors.Right.Enable {
		t.Error("motors left enabled after fatal vision error")
	}
}

func TestLoop_ActuatorErrorIsFatal(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	source := &scriptSource{frames: [][]vision.Detection{nil}, cancel: cancel}

	wantErr := errors.New("daemon unreachable")
	rig := &actuator.Rig{
		Servos: &actuator.MockServos{},
		Motors: &actuator.MockMotors{Err: wantErr},
	}

	loop := NewLoop(control.DefaultConfig(), source, rig)
	err := loop.Run(ctx)
	if err == nil || !errors.Is(err, wantErr) {
		t.Fatalf("Run error = %v, want wrapped %v", err, wantErr)
	}
}

func TestLoop_PublisherSeesFrames(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	source := &scriptSource{
		frames: [][]vision.Detection{blobAt(150, 115, 13000)},
		cancel: cancel,
	}

	rig := &actuator.Rig{Servos: &actuator.MockServos{}, Motors: &actuator.MockMotors{}}
	loop := NewLoop(control.DefaultConfig(), source, rig)

	pub := &recordingPublisher{}
	loop.SetPublisher(pub)

	if err := loop.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(pub.frames) != 1 {
		t.Fatalf("published %d frames, want 1", len(pub.frames))
	}
	if pub.frames[0].Decision != control.Reverse {
		t.Errorf("published decision = %v, want Reverse", pub.frames[0].Decision)
	}
	if len(pub.logs) == 0 {
		t.Error("expected a decision-change log entry")
	}
}

func TestLoop_LogsSignificantAreaShifts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	source := &scriptSource{
		frames: [][]vision.Detection{
			blobAt(150, 115, 9000), // First reading, far above the noise floor
			blobAt(150, 115, 9100), // Delta 100, below the noise floor
		},
		cancel: cancel,
	}

	rig := &actuator.Rig{Servos: &actuator.MockServos{}, Motors: &actuator.MockMotors{}}
	loop := NewLoop(control.DefaultConfig(), source, rig)

	pub := &recordingPublisher{}
	loop.SetPublisher(pub)

	if err := loop.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var areaLogs int
	for _, entry := range pub.logs {
		if strings.HasPrefix(entry, "area:") {
			areaLogs++
		}
	}
	if areaLogs != 1 {
		t.Errorf("area log entries = %d (%v), want 1", areaLogs, pub.logs)
	}
}

type recordingPublisher struct {
	frames []control.Frame
	logs   []string
}

func (p *recordingPublisher) UpdateFrame(f control.Frame) {
	p.frames = append(p.frames, f)
}

func (p *recordingPublisher) AddLog(logType, message string) {
	p.logs = append(p.logs, logType+": "+message)
}
