package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/cubeling/common"
)

// Orbit is a yaw-only follow camera. At zero yaw it looks down +Z with +X
// to its right.
type Orbit struct {
	// Yaw is in radians.
	Yaw    float32
	Target mgl32.Vec3

	Distance float32
	Height   float32
	// TurnSpeed is radians per second at full input.
	TurnSpeed float32
	// Smoothness is the per-frame blend toward the follow target; zero snaps.
	Smoothness float32
}

func NewOrbit(target mgl32.Vec3) *Orbit {
	return &Orbit{
		Target:     target,
		Distance:   8,
		Height:     5,
		TurnSpeed:  mgl32.DegToRad(120),
		Smoothness: 0.15,
	}
}

// Turn rotates the camera around its target.
func (o *Orbit) Turn(input, dt float32) {
	if o == nil || input == 0 {
		return
	}
	o.Yaw = wrapAngle(o.Yaw + input*o.TurnSpeed*dt)
}

// Follow moves the target toward pos.
func (o *Orbit) Follow(pos mgl32.Vec3) {
	if o == nil {
		return
	}
	if o.Smoothness <= 0 || o.Smoothness >= 1 {
		o.Target = pos
		return
	}
	o.Target = common.LerpVec3(o.Target, pos, o.Smoothness)
}

func (o *Orbit) ForwardHorizontal() mgl32.Vec3 {
	if o == nil {
		return common.Forward
	}
	s, c := math.Sincos(float64(o.Yaw))
	return common.Flatten(mgl32.Vec3{float32(s), 0, float32(c)})
}

func (o *Orbit) RightHorizontal() mgl32.Vec3 {
	if o == nil {
		return common.Right
	}
	s, c := math.Sincos(float64(o.Yaw))
	return common.Flatten(mgl32.Vec3{float32(c), 0, float32(-s)})
}

func (o *Orbit) BackwardHorizontal() mgl32.Vec3 {
	return o.ForwardHorizontal().Mul(-1)
}

// Eye is the camera position implied by target, yaw, distance and height.
func (o *Orbit) Eye() mgl32.Vec3 {
	if o == nil {
		return mgl32.Vec3{}
	}
	return o.Target.Sub(o.ForwardHorizontal().Mul(o.Distance)).Add(mgl32.Vec3{0, o.Height, 0})
}

func wrapAngle(a float32) float32 {
	const twoPi = 2 * math.Pi
	a = float32(math.Mod(float64(a), twoPi))
	if a < 0 {
		a += twoPi
	}
	return a
}
