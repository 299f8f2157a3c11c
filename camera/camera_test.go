// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gviegas/krystall/linear"
	"github.com/pkg/errors"
)

func near(a, b linear.V3) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > 1e-5 {
			return false
		}
	}
	return true
}

func TestNew(t *testing.T) {
	c := New()
	if c.Position != (linear.V3{0, 1.5, 3}) {
		t.Fatalf("New: Position\nhave %v\nwant [0 1.5 3]", c.Position)
	}
	if c.Yaw != -90 || c.Pitch != 0 {
		t.Fatalf("New: Yaw, Pitch\nhave %v, %v\nwant -90, 0", c.Yaw, c.Pitch)
	}
	if f := c.Forward(); !near(f, linear.V3{0, 0, -1}) {
		t.Fatalf("Camera.Forward\nhave %v\nwant [0 0 -1]", f)
	}
	if r := c.Right(); !near(r, linear.V3{1, 0, 0}) {
		t.Fatalf("Camera.Right\nhave %v\nwant [1 0 0]", r)
	}
}

func TestForward(t *testing.T) {
	c := New()
	for _, x := range [...][2]float32{
		{0, 0},
		{90, 0},
		{-90, 45},
		{30, -60},
		{720, 10},
	} {
		c.Yaw, c.Pitch = x[0], x[1]
		f := c.Forward()
		if l := f.Len(); math.Abs(float64(l-1)) > 1e-5 {
			t.Fatalf("Camera.Forward: Len\nhave %v\nwant 1", l)
		}
		y, p := float64(x[0])*DegToRad, float64(x[1])*DegToRad
		want := linear.V3{
			float32(math.Cos(p) * math.Cos(y)),
			float32(math.Sin(p)),
			float32(math.Cos(p) * math.Sin(y)),
		}
		if !near(f, want) {
			t.Fatalf("Camera.Forward(%v)\nhave %v\nwant %v", x, f, want)
		}
		// Right is orthogonal to the forward direction.
		r := c.Right()
		if d := r.Dot(&f); math.Abs(float64(d)) > 1e-5 {
			t.Fatalf("Camera.Right ⋅ Camera.Forward\nhave %v\nwant 0", d)
		}
	}
}

func TestView(t *testing.T) {
	c := New()
	c.Position = linear.V3{1, 2, 3}
	c.Yaw = 30
	c.SetPitch(20)
	v, err := c.View()
	if err != nil {
		t.Fatalf("Camera.View: unexpected error: %v", err)
	}
	f := c.Forward()
	var center linear.V3
	center.Add(&c.Position, &f)
	want := mgl32.LookAtV(mgl32.Vec3(c.Position), mgl32.Vec3(center), mgl32.Vec3{0, 1, 0})
	for i := range v {
		for j := range v[i] {
			if math.Abs(float64(v[i][j]-want[i*4+j])) > 1e-5 {
				t.Fatalf("Camera.View\nhave %v\nwant %v", v, want)
			}
		}
	}

	w, err := c.World()
	if err != nil {
		t.Fatalf("Camera.World: unexpected error: %v", err)
	}
	if tr := w.Translation(); !near(tr, c.Position) {
		t.Fatalf("Camera.World: translation\nhave %v\nwant %v", tr, c.Position)
	}

	// Pitch set directly, bypassing the clamp.
	c.Pitch = 90
	if _, err := c.View(); !errors.Is(err, linear.ErrDegenerateView) {
		t.Fatalf("Camera.View (pitch 90)\nhave %v\nwant %v", err, linear.ErrDegenerateView)
	}
	if _, err := c.World(); !errors.Is(err, linear.ErrDegenerateView) {
		t.Fatalf("Camera.World (pitch 90)\nhave %v\nwant %v", err, linear.ErrDegenerateView)
	}
}

func TestMove(t *testing.T) {
	c := New()
	c.MoveSpeed = 0.5
	start := c.Position
	for _, x := range [...]struct {
		dir  Direction
		want linear.V3
	}{
		{Forward, linear.V3{0, 1.5, 2.5}},
		{Backward, linear.V3{0, 1.5, 3}},
		{Right, linear.V3{0.5, 1.5, 3}},
		{Left, linear.V3{0, 1.5, 3}},
		{Ascend, linear.V3{0, 2, 3}},
		{Descend, linear.V3{0, 1.5, 3}},
		{Direction(-1), linear.V3{0, 1.5, 3}},
	} {
		c.Move(x.dir)
		if !near(c.Position, x.want) {
			t.Fatalf("Camera.Move(%v)\nhave %v\nwant %v", x.dir, c.Position, x.want)
		}
	}
	if !near(c.Position, start) {
		t.Fatalf("Camera.Move: round trip\nhave %v\nwant %v", c.Position, start)
	}

	// Pitch does not affect stepping.
	c.SetPitch(60)
	c.Move(Forward)
	if !near(c.Position, linear.V3{0, 1.5, 2.5}) {
		t.Fatalf("Camera.Move (pitched)\nhave %v\nwant [0 1.5 2.5]", c.Position)
	}

	c.Yaw = 0
	c.Move(Forward)
	if !near(c.Position, linear.V3{0.5, 1.5, 2.5}) {
		t.Fatalf("Camera.Move (yaw 0)\nhave %v\nwant [0.5 1.5 2.5]", c.Position)
	}
}

func TestTurn(t *testing.T) {
	c := New()
	c.Turn(1, 0)
	if c.Yaw != DefaultYaw+DefaultTurnSpeed {
		t.Fatalf("Camera.Turn: Yaw\nhave %v\nwant %v", c.Yaw, DefaultYaw+DefaultTurnSpeed)
	}
	c.Turn(0, -2)
	if c.Pitch != -2*DefaultTurnSpeed {
		t.Fatalf("Camera.Turn: Pitch\nhave %v\nwant %v", c.Pitch, -2*DefaultTurnSpeed)
	}
	c.Turn(0, 1000)
	if c.Pitch != MaxPitch {
		t.Fatalf("Camera.Turn: Pitch\nhave %v\nwant %v", c.Pitch, MaxPitch)
	}
	if _, err := c.View(); err != nil {
		t.Fatalf("Camera.View (clamped pitch): unexpected error: %v", err)
	}

	c = New()
	c.Sensitivity = 0.5
	c.Look(10, 20)
	if c.Yaw != -85 || c.Pitch != -10 {
		t.Fatalf("Camera.Look: Yaw, Pitch\nhave %v, %v\nwant -85, -10", c.Yaw, c.Pitch)
	}
	c.Look(0, 1e6)
	if c.Pitch != -MaxPitch {
		t.Fatalf("Camera.Look: Pitch\nhave %v\nwant %v", c.Pitch, -MaxPitch)
	}
}
