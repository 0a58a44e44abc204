package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/cubeling/body"
	"github.com/milk9111/cubeling/physics"
)

// footprintCorners are the ray origins relative to each part center.
var footprintCorners = [4]mgl32.Vec3{
	{0.5, 0, 0.5},
	{-0.5, 0, 0.5},
	{0.5, 0, -0.5},
	{-0.5, 0, -0.5},
}

type GroundConfig struct {
	// RayLength is measured from the part center, so anything above 0.5
	// reaches past the bottom face.
	RayLength float32
	Exclude   physics.Mask
}

func DefaultGroundConfig() GroundConfig {
	return GroundConfig{
		RayLength: 0.6,
		Exclude:   physics.LayerPlayer,
	}
}

// GroundState is the result of one Sense call.
type GroundState struct {
	Grounded bool
	// Changed is set on the tick the grounded flag flips.
	Changed bool
}

// Mode maps the state onto a locomotion mode.
func (s GroundState) Mode() Mode {
	if s.Grounded {
		return ModeGrounded
	}
	return ModeAirborne
}

// GroundSensor casts rays below every part of an assembly.
type GroundSensor struct {
	world physics.World
	cfg   GroundConfig

	grounded bool
	sampled  bool

	lastGrounded    mgl32.Vec3
	hasLastGrounded bool
}

func NewGroundSensor(world physics.World, cfg GroundConfig) *GroundSensor {
	if cfg.RayLength <= 0 {
		cfg.RayLength = DefaultGroundConfig().RayLength
	}
	return &GroundSensor{world: world, cfg: cfg}
}

// SetConfig swaps tuning without resetting the sensor's history.
func (s *GroundSensor) SetConfig(cfg GroundConfig) {
	if s == nil || cfg.RayLength <= 0 {
		return
	}
	s.cfg = cfg
}

// IsGrounded casts one short ray down from each footprint corner of each
// part and stops at the first hit.
func (s *GroundSensor) IsGrounded(a *body.Assembly) bool {
	if s == nil || s.world == nil || a == nil {
		return false
	}
	for _, pos := range a.WorldPositions() {
		for _, corner := range footprintCorners {
			if s.world.RaycastDown(pos.Add(corner), s.cfg.RayLength, s.cfg.Exclude) {
				return true
			}
		}
	}
	return false
}

// Sense samples IsGrounded and reports transitions. Entering the grounded
// state records the body position for fall recovery.
func (s *GroundSensor) Sense(a *body.Assembly) GroundState {
	if s == nil {
		return GroundState{}
	}
	grounded := s.IsGrounded(a)
	state := GroundState{
		Grounded: grounded,
		Changed:  s.sampled && grounded != s.grounded,
	}

	if grounded && (!s.sampled || !s.grounded) {
		if rb := a.Body(); rb != nil {
			s.lastGrounded = rb.Position()
			s.hasLastGrounded = true
		}
	}

	s.grounded = grounded
	s.sampled = true
	return state
}

// Grounded returns the most recent sample.
func (s *GroundSensor) Grounded() bool {
	if s == nil {
		return false
	}
	return s.grounded
}

// LastGroundedPosition is where the body was when it last touched down.
func (s *GroundSensor) LastGroundedPosition() (mgl32.Vec3, bool) {
	if s == nil {
		return mgl32.Vec3{}, false
	}
	return s.lastGrounded, s.hasLastGrounded
}
