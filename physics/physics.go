package physics

import "github.com/go-gl/mathgl/mgl32"

// Mask is a bit set of collision layers.
type Mask uint32

const (
	LayerSolid Mask = 1 << iota
	LayerWater
	LayerPlayer
	LayerTrigger

	MaskNone Mask = 0
	MaskAll  Mask = ^Mask(0)
)

// Handle identifies a block owned by a World. Zero is never a valid handle.
type Handle uint64

func (h Handle) Valid() bool {
	return h > 0
}

// World is the narrow, read-only query surface the movement code needs from
// a physics engine. Queries are synchronous snapshots of world geometry.
type World interface {
	// RaycastDown reports whether a ray cast straight down from origin hits
	// non-trigger geometry outside exclude within maxDistance.
	RaycastDown(origin mgl32.Vec3, maxDistance float32, exclude Mask) bool

	// OverlapBox counts non-trigger blocks outside exclude overlapping the
	// oriented box.
	OverlapBox(center, halfExtent mgl32.Vec3, orientation mgl32.Quat, exclude Mask) int

	// OverlapRegion lists blocks on a layer in filter overlapping the
	// oriented box, triggers included.
	OverlapRegion(center, halfExtent mgl32.Vec3, orientation mgl32.Quat, filter Mask) []Handle
}

// Body is a handle to a rigid body owned by the physics engine.
type Body interface {
	Velocity() mgl32.Vec3
	SetVelocity(v mgl32.Vec3)
	Orientation() mgl32.Quat
	SetOrientation(q mgl32.Quat)
	Position() mgl32.Vec3
	SetPosition(p mgl32.Vec3)
	GravityEnabled() bool
	SetGravityEnabled(enabled bool)
}
