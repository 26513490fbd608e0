package control

import (
	"testing"
)

func TestDistanceController_Band(t *testing.T) {
	c := NewDistanceController(DefaultConfig())

	cases := []struct {
		area   float64
		want   Decision
		wantOK bool
	}{
		{5000, Forward, true},
		{7999, Forward, true},
		{8000, Stop, true}, // Band is inclusive at both ends
		{9000, Stop, true},
		{11000, Stop, true},
		{11001, Reverse, true},
		{20000, Reverse, true},
	}
	for _, tc := range cases {
		got, ok := c.Decide(tc.area, true)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("Decide(%v, parallel) = (%v, %v), want (%v, %v)",
				tc.area, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestDistanceController_BandStopIdempotent(t *testing.T) {
	c := NewDistanceController(DefaultConfig())

	for i := 0; i < 10; i++ {
		got, ok := c.Decide(9500, true)
		if got != Stop || !ok {
			t.Fatalf("call %d: Decide(9500, parallel) = (%v, %v), want (Stop, true)", i, got, ok)
		}
	}
}

func TestDistanceController_GateClosed(t *testing.T) {
	c := NewDistanceController(DefaultConfig())

	// With the gate closed no decision is issued, whatever the area
	for _, area := range []float64{0, 5000, 9000, 20000} {
		got, ok := c.Decide(area, false)
		if ok {
			t.Errorf("Decide(%v, !parallel) issued %v, want no decision", area, got)
		}
		if got == Forward || got == Reverse {
			t.Errorf("Decide(%v, !parallel) = %v, drive must not fire", area, got)
		}
	}
}

func TestDistanceController_ObserveDelta(t *testing.T) {
	c := NewDistanceController(DefaultConfig())

	c.Observe(9000)
	delta := c.Observe(8500)
	if delta != 500 {
		t.Errorf("delta = %v, want 500", delta)
	}
	// A repeated reading shows the previous area was recorded
	if delta := c.Observe(8500); delta != 0 {
		t.Errorf("repeat delta = %v, want 0", delta)
	}

	if !c.Significant(500) {
		t.Error("Significant(500) = false, want true")
	}
	if c.Significant(100) {
		t.Error("Significant(100) = true, want false")
	}
	if !c.Significant(-300) {
		t.Error("Significant(-300) = false, want true")
	}
}

func TestAvoid_Priority(t *testing.T) {
	cases := []struct {
		name                       string
		panLow, panHigh, tiltOut   bool
		want                       Decision
		wantOK                     bool
	}{
		{"no extremes", false, false, false, Stop, false},
		{"pan low", true, false, false, PivotRight, true},
		{"pan high", false, true, false, PivotLeft, true},
		{"tilt only", false, false, true, Reverse, true},
		{"pan low and tilt", true, false, true, Reverse, true},
		{"pan high and tilt", false, true, true, Reverse, true},
	}
	for _, tc := range cases {
		got, ok := Avoid(tc.panLow, tc.panHigh, tc.tiltOut)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("%s: Avoid = (%v, %v), want (%v, %v)", tc.name, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestDecision_String(t *testing.T) {
	cases := map[Decision]string{
		Stop:       "stop",
		Forward:    "forward",
		Reverse:    "reverse",
		PivotLeft:  "pivot-left",
		PivotRight: "pivot-right",
	}
	for d, want := range cases {
		if got := d.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", d, got, want)
		}
	}
}
