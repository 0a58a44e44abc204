package movement

import "github.com/go-gl/mathgl/mgl32"

// CameraPose provides the camera basis projected onto the horizontal plane.
// All three vectors are unit length with a zero Y component.
type CameraPose interface {
	ForwardHorizontal() mgl32.Vec3
	RightHorizontal() mgl32.Vec3
	BackwardHorizontal() mgl32.Vec3
}

// Mode is the locomotion mode chosen for the current tick.
type Mode int

const (
	ModeAirborne Mode = iota
	ModeGrounded
)

func (m Mode) String() string {
	switch m {
	case ModeGrounded:
		return "grounded"
	case ModeAirborne:
		return "airborne"
	default:
		return "unknown"
	}
}
