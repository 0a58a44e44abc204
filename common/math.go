package common

import "github.com/go-gl/mathgl/mgl32"

const (
	// Gravity is the downward acceleration applied by the reference rigid body.
	Gravity float32 = -9.81

	// Epsilon is the tolerance used for near-zero comparisons.
	Epsilon float32 = 1e-5
)

var (
	Up      = mgl32.Vec3{0, 1, 0}
	Down    = mgl32.Vec3{0, -1, 0}
	Right   = mgl32.Vec3{1, 0, 0}
	Left    = mgl32.Vec3{-1, 0, 0}
	Forward = mgl32.Vec3{0, 0, 1}
	Back    = mgl32.Vec3{0, 0, -1}
)

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return mgl32.Vec3{
		Lerp(a[0], b[0], t),
		Lerp(a[1], b[1], t),
		Lerp(a[2], b[2], t),
	}
}

// Flatten drops the vertical component and normalizes what is left.
// A vertical or zero vector flattens to zero.
func Flatten(v mgl32.Vec3) mgl32.Vec3 {
	v[1] = 0
	l := v.Len()
	if l < Epsilon {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// MaxComponent returns the largest of the three components.
func MaxComponent(v mgl32.Vec3) float32 {
	return max(v[0], v[1], v[2])
}

func DistanceSqr(a, b mgl32.Vec3) float32 {
	d := a.Sub(b)
	return d.Dot(d)
}
