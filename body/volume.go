package body

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/cubeling/common"
)

// partPadding converts part-center coordinates into cube faces.
const partPadding float32 = 0.5

// Volume is the axis-aligned bounds of a set of unit parts.
type Volume struct {
	Min    mgl32.Vec3
	Max    mgl32.Vec3
	Center mgl32.Vec3
	// Size is the full edge length on each axis, never below one unit for a
	// non-empty set.
	Size mgl32.Vec3
}

// ComputeVolume takes the component-wise min and max over part centers and
// pads each corner by half a unit.
func ComputeVolume(positions []mgl32.Vec3) Volume {
	if len(positions) == 0 {
		return Volume{}
	}

	lo := positions[0]
	hi := positions[0]
	for _, p := range positions[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], p[i])
			hi[i] = max(hi[i], p[i])
		}
	}

	pad := mgl32.Vec3{partPadding, partPadding, partPadding}
	lo = lo.Sub(pad)
	hi = hi.Add(pad)

	return Volume{
		Min:    lo,
		Max:    hi,
		Center: lo.Add(hi).Mul(0.5),
		Size:   hi.Sub(lo),
	}
}

func (v Volume) HalfExtent() mgl32.Vec3 {
	return v.Size.Mul(0.5)
}

// Largest returns the longest edge of the volume.
func (v Volume) Largest() float32 {
	return common.MaxComponent(v.Size)
}

func (v Volume) Empty() bool {
	return v.Size == (mgl32.Vec3{})
}
