package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestOrbitBasis(t *testing.T) {
	cases := []struct {
		name    string
		yaw     float32
		forward mgl32.Vec3
		right   mgl32.Vec3
	}{
		{"zero", 0, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}},
		{"quarter", mgl32.DegToRad(90), mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{"half", mgl32.DegToRad(180), mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			o := NewOrbit(mgl32.Vec3{})
			o.Yaw = c.yaw
			if got := o.ForwardHorizontal(); !approx(got, c.forward) {
				t.Fatalf("forward: expected %v, got %v", c.forward, got)
			}
			if got := o.RightHorizontal(); !approx(got, c.right) {
				t.Fatalf("right: expected %v, got %v", c.right, got)
			}
			if got := o.BackwardHorizontal(); !approx(got, c.forward.Mul(-1)) {
				t.Fatalf("backward: expected %v, got %v", c.forward.Mul(-1), got)
			}
		})
	}
}

func TestOrbitTurnWraps(t *testing.T) {
	o := NewOrbit(mgl32.Vec3{})
	o.TurnSpeed = 1
	o.Turn(-1, 1)
	if o.Yaw < 0 || o.Yaw >= 2*3.1415927 {
		t.Fatalf("yaw should wrap into [0, 2pi), got %v", o.Yaw)
	}
}

func TestOrbitFollow(t *testing.T) {
	o := NewOrbit(mgl32.Vec3{})
	o.Smoothness = 0.5
	o.Follow(mgl32.Vec3{2, 0, 4})
	if o.Target != (mgl32.Vec3{1, 0, 2}) {
		t.Fatalf("expected half way target, got %v", o.Target)
	}

	o.Smoothness = 0
	o.Follow(mgl32.Vec3{2, 0, 4})
	if o.Target != (mgl32.Vec3{2, 0, 4}) {
		t.Fatalf("zero smoothness should snap, got %v", o.Target)
	}
}

func TestOrbitEye(t *testing.T) {
	o := NewOrbit(mgl32.Vec3{1, 0, 1})
	o.Distance = 8
	o.Height = 5
	if got, want := o.Eye(), (mgl32.Vec3{1, 5, -7}); !approx(got, want) {
		t.Fatalf("expected eye at %v, got %v", want, got)
	}
}

// approx compares by distance; ApproxEqual is relative per component and
// rejects tiny residues around zero.
func approx(a, b mgl32.Vec3) bool {
	return a.Sub(b).Len() < 1e-4
}
