package movement

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/cubeling/body"
	"github.com/milk9111/cubeling/event"
	"github.com/milk9111/cubeling/physics"
)

// fixedPose looks down +Z with +X to the right.
type fixedPose struct{}

func (fixedPose) ForwardHorizontal() mgl32.Vec3  { return mgl32.Vec3{0, 0, 1} }
func (fixedPose) RightHorizontal() mgl32.Vec3    { return mgl32.Vec3{1, 0, 0} }
func (fixedPose) BackwardHorizontal() mgl32.Vec3 { return mgl32.Vec3{0, 0, -1} }

func newBody(pos mgl32.Vec3, parts ...mgl32.Vec3) (*body.Assembly, *physics.RigidBody) {
	rb := physics.NewRigidBody(pos)
	a := body.NewAssembly(rb, nil)
	a.AttachParts(parts...)
	return a, rb
}

func TestSnapCardinal(t *testing.T) {
	cases := []struct {
		name string
		in   mgl32.Vec2
		want Cardinal
	}{
		{"mostly_right", mgl32.Vec2{0.9, 0.1}, CardinalRight},
		{"mostly_up", mgl32.Vec2{0.1, 0.9}, CardinalUp},
		{"left", mgl32.Vec2{-1, 0}, CardinalLeft},
		{"short_down", mgl32.Vec2{0, -0.5}, CardinalDown},
		{"zero", mgl32.Vec2{}, CardinalNone},
		{"tie_up_right", mgl32.Vec2{0.5, 0.5}, CardinalUp},
		{"tie_down_left", mgl32.Vec2{-0.5, -0.5}, CardinalDown},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := SnapCardinal(c.in); got != c.want {
				t.Fatalf("expected %s, got %s", c.want, got)
			}
		})
	}
}

func TestSnapHorizontal(t *testing.T) {
	cases := []struct {
		name string
		in   mgl32.Vec3
		want mgl32.Vec3
	}{
		{"right_ignores_y", mgl32.Vec3{0.9, 5, 0.1}, mgl32.Vec3{1, 0, 0}},
		{"back", mgl32.Vec3{0.2, 0, -0.8}, mgl32.Vec3{0, 0, -1}},
		{"forward", mgl32.Vec3{-0.3, -1, 0.7}, mgl32.Vec3{0, 0, 1}},
		{"vertical", mgl32.Vec3{0, 1, 0}, mgl32.Vec3{}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := SnapHorizontal(c.in); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestIsGrounded(t *testing.T) {
	cases := []struct {
		name  string
		pos   mgl32.Vec3
		layer physics.Mask
		trig  bool
		want  bool
	}{
		{"resting", mgl32.Vec3{0, 1, 0}, physics.LayerSolid, false, true},
		{"hovering", mgl32.Vec3{0, 1.2, 0}, physics.LayerSolid, false, false},
		{"corner_over_edge", mgl32.Vec3{0.9, 1, 0}, physics.LayerSolid, false, true},
		{"past_edge", mgl32.Vec3{1.4, 1, 0}, physics.LayerSolid, false, false},
		{"water_is_ground", mgl32.Vec3{0, 1, 0}, physics.LayerWater, false, true},
		{"trigger_ignored", mgl32.Vec3{0, 1, 0}, physics.LayerSolid, true, false},
		{"excluded_layer", mgl32.Vec3{0, 1, 0}, physics.LayerPlayer, false, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			world := physics.NewVoxelWorld()
			world.AddBlock(physics.Cell{0, 0, 0}, c.layer, c.trig)
			a, _ := newBody(c.pos, mgl32.Vec3{})

			s := NewGroundSensor(world, DefaultGroundConfig())
			if got := s.IsGrounded(a); got != c.want {
				t.Fatalf("expected grounded=%v, got %v", c.want, got)
			}
		})
	}
}

func TestIsGroundedAnyPart(t *testing.T) {
	world := physics.NewVoxelWorld()
	world.AddBlock(physics.Cell{0, 0, 3}, physics.LayerSolid, false)

	// Only the far part of the line sits over the block.
	a, _ := newBody(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, 2}, mgl32.Vec3{0, 0, 3})
	s := NewGroundSensor(world, DefaultGroundConfig())
	if !s.IsGrounded(a) {
		t.Fatalf("expected a single supported part to ground the body")
	}
}

func TestGroundSensorTransitions(t *testing.T) {
	world := physics.NewVoxelWorld()
	world.AddBlock(physics.Cell{0, 0, 0}, physics.LayerSolid, false)
	world.AddBlock(physics.Cell{4, 0, 0}, physics.LayerSolid, false)
	a, rb := newBody(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{})
	s := NewGroundSensor(world, DefaultGroundConfig())

	if _, ok := s.LastGroundedPosition(); ok {
		t.Fatalf("no grounded position before the first sample")
	}

	st := s.Sense(a)
	if !st.Grounded || st.Changed {
		t.Fatalf("first sample: expected grounded without change, got %+v", st)
	}
	if pos, ok := s.LastGroundedPosition(); !ok || pos != (mgl32.Vec3{0, 1, 0}) {
		t.Fatalf("first grounded sample should record the position, got %v ok=%v", pos, ok)
	}

	rb.SetPosition(mgl32.Vec3{2, 3, 0})
	st = s.Sense(a)
	if st.Grounded || !st.Changed {
		t.Fatalf("leaving ground: expected airborne with change, got %+v", st)
	}

	st = s.Sense(a)
	if st.Changed {
		t.Fatalf("staying airborne should not report a change")
	}

	rb.SetPosition(mgl32.Vec3{4, 1, 0})
	st = s.Sense(a)
	if !st.Grounded || !st.Changed {
		t.Fatalf("landing: expected grounded with change, got %+v", st)
	}
	if pos, _ := s.LastGroundedPosition(); pos != (mgl32.Vec3{4, 1, 0}) {
		t.Fatalf("landing should update the recorded position, got %v", pos)
	}
}

func TestLocomotionBumpSuppression(t *testing.T) {
	cases := []struct {
		name   string
		ground GroundState
		vy     float32
		want   float32
	}{
		{"leaving_ground_upward", GroundState{Grounded: false, Changed: true}, 2, 0},
		{"leaving_ground_downward", GroundState{Grounded: false, Changed: true}, -2, -2},
		{"already_airborne", GroundState{Grounded: false}, 2, 2},
		{"grounded_keeps_vertical", GroundState{Grounded: true}, 2, 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rb := physics.NewRigidBody(mgl32.Vec3{})
			rb.SetVelocity(mgl32.Vec3{0, c.vy, 0})
			l := NewLocomotion(rb, DefaultLocomotionConfig())

			l.Step(mgl32.Vec2{}, fixedPose{}, c.ground, mgl32.Vec3{}, false)
			if got := rb.Velocity().Y(); got != c.want {
				t.Fatalf("expected vy=%v, got %v", c.want, got)
			}
		})
	}
}

func TestLocomotionBlendsTowardCameraRelativeTarget(t *testing.T) {
	rb := physics.NewRigidBody(mgl32.Vec3{})
	cfg := DefaultLocomotionConfig()
	cfg.Speed = 4
	cfg.Friction = 0.5
	l := NewLocomotion(rb, cfg)

	l.Step(mgl32.Vec2{1, 1}, fixedPose{}, GroundState{Grounded: true}, mgl32.Vec3{}, false)
	if got := rb.Velocity(); !approx(got, mgl32.Vec3{2, 0, 2}) {
		t.Fatalf("expected half way to (4,0,4), got %v", got)
	}
	if l.Mode() != ModeGrounded {
		t.Fatalf("expected grounded mode, got %s", l.Mode())
	}

	l.Step(mgl32.Vec2{1, 1}, fixedPose{}, GroundState{Grounded: true}, mgl32.Vec3{}, false)
	if got := rb.Velocity(); !approx(got, mgl32.Vec3{3, 0, 3}) {
		t.Fatalf("expected (3,0,3) after two ticks, got %v", got)
	}
}

func TestLocomotionGravityToggle(t *testing.T) {
	cases := []struct {
		name    string
		move    mgl32.Vec2
		ground  bool
		gravity bool
	}{
		{"grounded_idle", mgl32.Vec2{}, true, false},
		{"grounded_moving", mgl32.Vec2{0, 1}, true, true},
		{"airborne_idle", mgl32.Vec2{}, false, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rb := physics.NewRigidBody(mgl32.Vec3{})
			l := NewLocomotion(rb, DefaultLocomotionConfig())
			l.Step(c.move, fixedPose{}, GroundState{Grounded: c.ground}, mgl32.Vec3{}, false)
			if rb.GravityEnabled() != c.gravity {
				t.Fatalf("expected gravity=%v, got %v", c.gravity, rb.GravityEnabled())
			}
		})
	}
}

func TestLocomotionFallRecovery(t *testing.T) {
	rb := physics.NewRigidBody(mgl32.Vec3{0, -31, 0})
	rb.SetVelocity(mgl32.Vec3{1, -20, 0})
	cfg := DefaultLocomotionConfig()
	l := NewLocomotion(rb, cfg)

	if l.Step(mgl32.Vec2{}, fixedPose{}, GroundState{}, mgl32.Vec3{}, false) {
		t.Fatalf("recovery needs a grounded position")
	}

	if !l.Step(mgl32.Vec2{}, fixedPose{}, GroundState{}, mgl32.Vec3{2, 1, 3}, true) {
		t.Fatalf("expected recovery below the fall threshold")
	}
	want := mgl32.Vec3{2, 1 + cfg.RecoveryOffset, 3}
	if rb.Position() != want {
		t.Fatalf("expected teleport to %v, got %v", want, rb.Position())
	}
	if rb.Velocity() != (mgl32.Vec3{}) {
		t.Fatalf("velocity should be cleared, got %v", rb.Velocity())
	}
}

func TestReorienterCompletesRotation(t *testing.T) {
	a, rb := newBody(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{})
	q := &event.Queue{}
	cfg := DefaultReorientConfig()
	cfg.RotationSpeed = 0.5
	r := NewReorienter(rb, a, physics.NewVoxelWorld(), q, cfg)

	if !r.Request(mgl32.Vec2{1, 0}, fixedPose{}) {
		t.Fatalf("expected rotation to start")
	}
	plan := r.Plan()
	if plan.Duration != 0.5 {
		t.Fatalf("expected duration 0.5 for a single part, got %v", plan.Duration)
	}
	if up := plan.End.Rotate(mgl32.Vec3{0, 1, 0}); !approx(up, mgl32.Vec3{1, 0, 0}) {
		t.Fatalf("rolling right should turn the top toward +X, got %v", up)
	}

	r.Step(0.25)
	if !r.Rotating() {
		t.Fatalf("expected rotation half way")
	}
	mid := mgl32.QuatSlerp(plan.Start, plan.End, 0.5)
	if !approxQuat(rb.Orientation(), mid) {
		t.Fatalf("expected slerp midpoint %v, got %v", mid, rb.Orientation())
	}

	if !r.Step(0.3) {
		t.Fatalf("expected rotation to complete")
	}
	if r.Rotating() || r.Plan().Timer != 1 {
		t.Fatalf("plan should be inert after completion, got %+v", r.Plan())
	}
	if up := rb.Orientation().Rotate(mgl32.Vec3{0, 1, 0}); !approx(up, mgl32.Vec3{1, 0, 0}) {
		t.Fatalf("expected final orientation to match the plan, top=%v", up)
	}

	events := q.Drain()
	if len(events) != 2 || events[0].Type != event.RotationStarted || events[1].Type != event.RotationCompleted {
		t.Fatalf("unexpected events %+v", events)
	}
}

func TestReorienterTargets(t *testing.T) {
	cases := []struct {
		name string
		move mgl32.Vec2
		// where the body's local +Y ends up
		up mgl32.Vec3
	}{
		{"roll_right", mgl32.Vec2{1, 0}, mgl32.Vec3{1, 0, 0}},
		{"roll_left", mgl32.Vec2{-0.8, 0.2}, mgl32.Vec3{-1, 0, 0}},
		{"tumble_forward", mgl32.Vec2{0, 1}, mgl32.Vec3{0, 0, 1}},
		{"tumble_back", mgl32.Vec2{0.1, -1}, mgl32.Vec3{0, 0, -1}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, rb := newBody(mgl32.Vec3{}, mgl32.Vec3{})
			r := NewReorienter(rb, a, nil, nil, DefaultReorientConfig())
			end, ok := r.TargetRotation(c.move, fixedPose{})
			if !ok {
				t.Fatalf("expected a target rotation")
			}
			if got := end.Rotate(mgl32.Vec3{0, 1, 0}); !approx(got, c.up) {
				t.Fatalf("expected top to face %v, got %v", c.up, got)
			}
		})
	}

	a, rb := newBody(mgl32.Vec3{}, mgl32.Vec3{})
	r := NewReorienter(rb, a, nil, nil, DefaultReorientConfig())
	if _, ok := r.TargetRotation(mgl32.Vec2{}, fixedPose{}); ok {
		t.Fatalf("zero input should not produce a rotation")
	}
}

func TestReorienterIgnoresRequestWhileRotating(t *testing.T) {
	a, rb := newBody(mgl32.Vec3{}, mgl32.Vec3{})
	r := NewReorienter(rb, a, physics.NewVoxelWorld(), nil, DefaultReorientConfig())

	if !r.Request(mgl32.Vec2{1, 0}, fixedPose{}) {
		t.Fatalf("expected rotation to start")
	}
	r.Step(0.01)
	before := r.Plan()

	if r.Request(mgl32.Vec2{0, 1}, fixedPose{}) {
		t.Fatalf("request during a rotation should be ignored")
	}
	after := r.Plan()
	if after.Start != before.Start || after.End != before.End || after.Timer != before.Timer {
		t.Fatalf("plan changed: before %+v after %+v", before, after)
	}
}

func TestReorienterBlockedByWall(t *testing.T) {
	world := physics.NewVoxelWorld()
	world.AddBlock(physics.Cell{0, 1, 0}, physics.LayerSolid, false)

	// Two parts along Z; tumbling forward swings the back part up into the
	// block above it.
	a, rb := newBody(mgl32.Vec3{}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 1})
	q := &event.Queue{}
	r := NewReorienter(rb, a, world, q, DefaultReorientConfig())
	orientation := rb.Orientation()
	before := r.Plan()

	if r.Request(mgl32.Vec2{0, 1}, fixedPose{}) {
		t.Fatalf("rotation into a wall should be refused")
	}
	if r.Rotating() || r.Plan().Timer != 1 {
		t.Fatalf("blocked rotation should leave the plan complete, got %+v", r.Plan())
	}
	if r.Plan().Start != before.Start || r.Plan().End != before.End {
		t.Fatalf("blocked rotation changed the plan: %+v", r.Plan())
	}
	if rb.Orientation() != orientation {
		t.Fatalf("orientation changed from %v to %v", orientation, rb.Orientation())
	}

	events := q.Drain()
	if len(events) != 1 || events[0].Type != event.RotationBlocked {
		t.Fatalf("expected a single blocked event, got %+v", events)
	}

	// Rolling sideways keeps both parts on the ground plane and is allowed.
	if !r.Request(mgl32.Vec2{1, 0}, fixedPose{}) {
		t.Fatalf("expected the sideways roll to start")
	}
}

func TestReorienterDurationScalesWithSize(t *testing.T) {
	a, rb := newBody(mgl32.Vec3{}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, 2})
	cfg := DefaultReorientConfig()
	cfg.RotationSpeed = 0.1
	r := NewReorienter(rb, a, physics.NewVoxelWorld(), nil, cfg)

	r.Request(mgl32.Vec2{1, 0}, fixedPose{})
	if got := r.Plan().Duration; mgl32.Abs(got-0.3) > 1e-5 {
		t.Fatalf("expected duration 0.3 for a three-part line, got %v", got)
	}
}

// approx compares by distance; ApproxEqual is relative per component and
// rejects tiny residues around zero.
func approx(a, b mgl32.Vec3) bool {
	return a.Sub(b).Len() < 1e-4
}

func approxQuat(a, b mgl32.Quat) bool {
	return a.V.Sub(b.V).Len() < 1e-4 && mgl32.Abs(a.W-b.W) < 1e-4
}
