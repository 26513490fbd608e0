package actuator

import (
	"errors"
	"testing"

	"github.com/openrover/go-mvr/pkg/control"
)

func TestMapDecision(t *testing.T) {
	cases := []struct {
		d           control.Decision
		left, right MotorCommand
	}{
		{control.Forward,
			MotorCommand{Dir: DirForward, Enable: true},
			MotorCommand{Dir: DirForward, Enable: true}},
		{control.Reverse,
			MotorCommand{Dir: DirBackward, Enable: true},
			MotorCommand{Dir: DirBackward, Enable: true}},
		{control.PivotRight,
			MotorCommand{Dir: DirBackward, Enable: true},
			MotorCommand{Dir: DirForward, Enable: true}},
		{control.PivotLeft,
			MotorCommand{Dir: DirForward, Enable: true},
			MotorCommand{Dir: DirBackward, Enable: true}},
		{control.Stop,
			MotorCommand{},
			MotorCommand{}},
	}
	for _, c := range cases {
		left, right := MapDecision(c.d)
		if left != c.left || right != c.right {
			t.Errorf("%v: got (%+v, %+v), want (%+v, %+v)", c.d, left, right, c.left, c.right)
		}
	}
}

func TestRig_StopDisablesBothMotors(t *testing.T) {
	motors := &MockMotors{}
	rig := &Rig{Servos: &MockServos{}, Motors: motors}

	if err := rig.Apply(control.Frame{Decision: control.Stop}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if motors.Left.Enable || motors.Right.Enable {
		t.Errorf("stop left motors enabled: left=%+v right=%+v", motors.Left, motors.Right)
	}
	if motors.LeftSet != 1 || motors.RightSet != 1 {
		t.Errorf("motor commands = (%d, %d), want one each", motors.LeftSet, motors.RightSet)
	}
}

func TestRig_ServoCommandedOnlyWhenMoved(t *testing.T) {
	servos := &MockServos{}
	rig := &Rig{Servos: servos, Motors: &MockMotors{}}

	frame := control.Frame{PanAngle: 94, TiltAngle: 90, PanMoved: true}
	if err := rig.Apply(frame); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if len(servos.PanAngles) != 1 || servos.PanAngles[0] != 94 {
		t.Errorf("pan commands = %v, want [94]", servos.PanAngles)
	}
	if len(servos.TiltAngles) != 0 {
		t.Errorf("tilt commands = %v, want none", servos.TiltAngles)
	}
}

func TestRig_IndicatorsMirrorFrame(t *testing.T) {
	ind := &MockIndicators{}
	rig := &Rig{Servos: &MockServos{}, Motors: &MockMotors{}, Indicators: ind}

	frame := control.Frame{Parallel: true, PanLow: true}
	if err := rig.Apply(frame); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if !ind.Parallel || !ind.PanLow || ind.PanHigh {
		t.Errorf("indicators = %+v, want parallel+panLow", ind)
	}
}

func TestRig_MotorErrorPropagates(t *testing.T) {
	wantErr := errors.New("h-bridge offline")
	rig := &Rig{Servos: &MockServos{}, Motors: &MockMotors{Err: wantErr}}

	err := rig.Apply(control.Frame{Decision: control.Forward})
	if err == nil || !errors.Is(err, wantErr) {
		t.Errorf("Apply error = %v, want wrapped %v", err, wantErr)
	}
}

func TestRig_ServoErrorPropagates(t *testing.T) {
	wantErr := errors.New("servo driver offline")
	rig := &Rig{Servos: &MockServos{Err: wantErr}, Motors: &MockMotors{}}

	err := rig.Apply(control.Frame{PanMoved: true, PanAngle: 94})
	if err == nil || !errors.Is(err, wantErr) {
		t.Errorf("Apply error = %v, want wrapped %v", err, wantErr)
	}
}
