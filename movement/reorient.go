package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/cubeling/body"
	"github.com/milk9111/cubeling/common"
	"github.com/milk9111/cubeling/event"
	"github.com/milk9111/cubeling/physics"
)

type ReorientConfig struct {
	// RotationSpeed is seconds per unit of the assembly's longest edge.
	RotationSpeed float32
	// CheckHalfExtent is the half size of the box tested at each part's
	// destination. It stays under 0.5 so touching neighbours do not block.
	CheckHalfExtent float32
	Exclude         physics.Mask
}

func DefaultReorientConfig() ReorientConfig {
	return ReorientConfig{
		RotationSpeed:   0.15,
		CheckHalfExtent: 0.45,
		Exclude:         physics.LayerPlayer,
	}
}

// RotationPlan is the in-flight slerp between two orientations. Timer is
// the completed fraction; a plan with Timer >= 1 is inert.
type RotationPlan struct {
	Start    mgl32.Quat
	End      mgl32.Quat
	Timer    float32
	Duration float32
}

func idlePlan() RotationPlan {
	return RotationPlan{
		Start: mgl32.QuatIdent(),
		End:   mgl32.QuatIdent(),
		Timer: 1,
	}
}

// Reorienter tips the body by 90 degrees at a time. While a plan is running
// it owns the body's orientation.
type Reorienter struct {
	rb       physics.Body
	assembly *body.Assembly
	world    physics.World
	sink     event.Sink
	cfg      ReorientConfig
	plan     RotationPlan
}

func NewReorienter(rb physics.Body, a *body.Assembly, world physics.World, sink event.Sink, cfg ReorientConfig) *Reorienter {
	if cfg.CheckHalfExtent <= 0 {
		cfg.CheckHalfExtent = DefaultReorientConfig().CheckHalfExtent
	}
	return &Reorienter{
		rb:       rb,
		assembly: a,
		world:    world,
		sink:     sink,
		cfg:      cfg,
		plan:     idlePlan(),
	}
}

func (r *Reorienter) SetConfig(cfg ReorientConfig) {
	if r == nil || cfg.CheckHalfExtent <= 0 {
		return
	}
	r.cfg = cfg
}

func (r *Reorienter) Plan() RotationPlan {
	if r == nil {
		return idlePlan()
	}
	return r.plan
}

func (r *Reorienter) Rotating() bool {
	return r != nil && r.plan.Timer < 1
}

// TargetRotation resolves move input into the orientation the body would
// end at. Left and right roll the body toward the snapped camera right
// axis. Up and down tip the snapped camera backward axis toward world up or
// down, tumbling the body away from or toward the camera.
func (r *Reorienter) TargetRotation(move mgl32.Vec2, cam CameraPose) (mgl32.Quat, bool) {
	if r == nil || r.rb == nil || cam == nil {
		return mgl32.QuatIdent(), false
	}

	var delta mgl32.Quat
	switch dir := SnapCardinal(move); dir {
	case CardinalLeft, CardinalRight:
		right := SnapHorizontal(cam.RightHorizontal())
		if right.Len() < common.Epsilon {
			return mgl32.QuatIdent(), false
		}
		if dir == CardinalLeft {
			right = right.Mul(-1)
		}
		delta = mgl32.QuatBetweenVectors(common.Up, right)
	case CardinalUp, CardinalDown:
		back := SnapHorizontal(cam.BackwardHorizontal())
		if back.Len() < common.Epsilon {
			return mgl32.QuatIdent(), false
		}
		to := common.Up
		if dir == CardinalDown {
			to = common.Down
		}
		delta = mgl32.QuatBetweenVectors(back, to)
	default:
		return mgl32.QuatIdent(), false
	}

	return delta.Mul(r.rb.Orientation()).Normalize(), true
}

// Blocked reports whether any part would overlap world geometry once the
// body is turned to end about its current position.
func (r *Reorienter) Blocked(end mgl32.Quat) bool {
	if r == nil || r.world == nil || r.rb == nil || r.assembly == nil {
		return false
	}
	pivot := r.rb.Position()
	h := r.cfg.CheckHalfExtent
	half := mgl32.Vec3{h, h, h}
	for _, p := range r.assembly.Parts() {
		center := pivot.Add(end.Rotate(p.Position))
		if r.world.OverlapBox(center, half, end, r.cfg.Exclude) > 0 {
			return true
		}
	}
	return false
}

// Request starts a rotation for the given input. It is dropped while a
// rotation is running and refused when the destination collides; in both
// cases the current plan is left as it is.
func (r *Reorienter) Request(move mgl32.Vec2, cam CameraPose) bool {
	if r == nil || r.Rotating() {
		return false
	}
	end, ok := r.TargetRotation(move, cam)
	if !ok {
		return false
	}
	start := r.rb.Orientation()

	if r.Blocked(end) {
		r.plan.Timer = 1
		event.Emit(r.sink, event.RotationBlocked, event.RotationEvent{Start: start, End: end})
		return false
	}

	r.plan = RotationPlan{
		Start:    start,
		End:      end,
		Timer:    0,
		Duration: r.assembly.Volume().Largest() * r.cfg.RotationSpeed,
	}
	event.Emit(r.sink, event.RotationStarted, event.RotationEvent{
		Start:    start,
		End:      end,
		Duration: r.plan.Duration,
	})
	return true
}

// Step advances the running plan by dt seconds. It reports whether the
// rotation finished on this tick.
func (r *Reorienter) Step(dt float32) bool {
	if !r.Rotating() || r.rb == nil {
		return false
	}

	if r.plan.Duration <= 0 {
		r.plan.Timer = 1
	} else {
		r.plan.Timer = min(r.plan.Timer+dt/r.plan.Duration, 1)
	}

	if r.plan.Timer < 1 {
		r.rb.SetOrientation(mgl32.QuatSlerp(r.plan.Start, r.plan.End, r.plan.Timer))
		return false
	}

	done := r.plan
	r.rb.SetOrientation(done.End)
	r.plan = idlePlan()
	event.Emit(r.sink, event.RotationCompleted, event.RotationEvent{
		Start:    done.Start,
		End:      done.End,
		Duration: done.Duration,
	})
	return true
}
