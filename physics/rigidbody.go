package physics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/cubeling/common"
)

const (
	// colliderHalf is slightly under half a unit so resting parts do not
	// register as overlapping their neighbours.
	colliderHalf = 0.49
	// maxSubstep bounds how far a body may travel along one axis per
	// collision check.
	maxSubstep = 0.25
)

// RigidBody is a minimal Body: gravity integration plus per-axis sweeps
// against a World. Rotation is kinematic and owned by the caller.
type RigidBody struct {
	position    mgl32.Vec3
	velocity    mgl32.Vec3
	orientation mgl32.Quat
	gravity     bool

	// Exclude lists layers the body passes through.
	Exclude Mask
}

func NewRigidBody(position mgl32.Vec3) *RigidBody {
	return &RigidBody{
		position:    position,
		orientation: mgl32.QuatIdent(),
		gravity:     true,
		Exclude:     LayerPlayer,
	}
}

func (rb *RigidBody) Velocity() mgl32.Vec3 { return rb.velocity }
func (rb *RigidBody) SetVelocity(v mgl32.Vec3) { rb.velocity = v }
func (rb *RigidBody) Orientation() mgl32.Quat { return rb.orientation }
func (rb *RigidBody) SetOrientation(q mgl32.Quat) { rb.orientation = q.Normalize() }
func (rb *RigidBody) Position() mgl32.Vec3 { return rb.position }
func (rb *RigidBody) SetPosition(p mgl32.Vec3) { rb.position = p }
func (rb *RigidBody) GravityEnabled() bool { return rb.gravity }
func (rb *RigidBody) SetGravityEnabled(enabled bool) { rb.gravity = enabled }

// Step advances the body by dt seconds. offsets are the world-space offsets
// of the body's unit colliders from its position.
func (rb *RigidBody) Step(dt float32, world World, offsets []mgl32.Vec3) {
	if rb == nil || dt <= 0 {
		return
	}
	if rb.gravity {
		rb.velocity[1] += common.Gravity * dt
	}

	for axis := 0; axis < 3; axis++ {
		delta := rb.velocity[axis] * dt
		if delta == 0 {
			continue
		}
		steps := int(mgl32.Abs(delta)/maxSubstep) + 1
		part := delta / float32(steps)
		for i := 0; i < steps; i++ {
			trial := rb.position
			trial[axis] += part
			if world != nil && rb.overlaps(world, trial, offsets) > rb.overlaps(world, rb.position, offsets) {
				rb.velocity[axis] = 0
				break
			}
			rb.position = trial
		}
	}
}

func (rb *RigidBody) overlaps(world World, at mgl32.Vec3, offsets []mgl32.Vec3) int {
	half := mgl32.Vec3{colliderHalf, colliderHalf, colliderHalf}
	n := 0
	for _, off := range offsets {
		n += world.OverlapBox(at.Add(off), half, rb.orientation, rb.Exclude)
	}
	return n
}
