package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/cubeling/common"
	"github.com/milk9111/cubeling/physics"
)

type LocomotionConfig struct {
	Speed float32
	// Friction is the per-tick blend factor toward the target velocity.
	Friction    float32
	IdleEpsilon float32
	// FallThreshold is the height below which the body is teleported back
	// to its last grounded position.
	FallThreshold  float32
	RecoveryOffset float32
}

func DefaultLocomotionConfig() LocomotionConfig {
	return LocomotionConfig{
		Speed:          5,
		Friction:       0.2,
		IdleEpsilon:    0.01,
		FallThreshold:  -30,
		RecoveryOffset: 2,
	}
}

// Locomotion owns the rigid body's linear velocity.
type Locomotion struct {
	rb   physics.Body
	cfg  LocomotionConfig
	mode Mode
}

func NewLocomotion(rb physics.Body, cfg LocomotionConfig) *Locomotion {
	return &Locomotion{rb: rb, cfg: cfg, mode: ModeAirborne}
}

func (l *Locomotion) SetConfig(cfg LocomotionConfig) {
	if l == nil {
		return
	}
	l.cfg = cfg
}

func (l *Locomotion) Mode() Mode {
	if l == nil {
		return ModeAirborne
	}
	return l.mode
}

// TargetVelocity maps move input onto the camera's horizontal basis.
func (l *Locomotion) TargetVelocity(move mgl32.Vec2, cam CameraPose) mgl32.Vec3 {
	if l == nil || cam == nil {
		return mgl32.Vec3{}
	}
	forward := common.Flatten(cam.ForwardHorizontal())
	right := common.Flatten(cam.RightHorizontal())
	return forward.Mul(move.Y()).Add(right.Mul(move.X())).Mul(l.cfg.Speed)
}

// Step runs once per physics tick. recovery is the last grounded position
// and is only used when ok is true. It reports whether the body was
// teleported by fall recovery.
func (l *Locomotion) Step(move mgl32.Vec2, cam CameraPose, ground GroundState, recovery mgl32.Vec3, ok bool) bool {
	if l == nil || l.rb == nil {
		return false
	}
	l.mode = ground.Mode()

	vel := l.rb.Velocity()
	if ground.Changed && !ground.Grounded && vel.Y() > 0 {
		vel[1] = 0
	}

	target := l.TargetVelocity(move, cam)
	horizontal := mgl32.Vec2{target.X(), target.Z()}.Len()
	target[1] = vel.Y()

	l.rb.SetVelocity(common.LerpVec3(vel, target, l.cfg.Friction))
	l.rb.SetGravityEnabled(!(ground.Grounded && horizontal < l.cfg.IdleEpsilon))

	if ok && l.rb.Position().Y() < l.cfg.FallThreshold {
		l.rb.SetPosition(recovery.Add(mgl32.Vec3{0, l.cfg.RecoveryOffset, 0}))
		l.rb.SetVelocity(mgl32.Vec3{})
		return true
	}
	return false
}
