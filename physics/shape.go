package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// separationSlack lets boxes that exactly touch count as separated.
const separationSlack = 1e-4

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// NewAABBFromCenter creates an AABB from a center point and half extents.
func NewAABBFromCenter(center, half mgl32.Vec3) AABB {
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

func (a AABB) Center() mgl32.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

func (a AABB) HalfExtent() mgl32.Vec3 {
	return a.Max.Sub(a.Min).Mul(0.5)
}

// Overlaps checks if two AABBs overlap on all three axes.
func (a AABB) Overlaps(other AABB) bool {
	return a.Max.X() > other.Min.X() && a.Min.X() < other.Max.X() &&
		a.Max.Y() > other.Min.Y() && a.Min.Y() < other.Max.Y() &&
		a.Max.Z() > other.Min.Z() && a.Min.Z() < other.Max.Z()
}

// OBB is an oriented box.
type OBB struct {
	Center mgl32.Vec3
	Half   mgl32.Vec3
	Axes   [3]mgl32.Vec3
}

func NewOBB(center, half mgl32.Vec3, orientation mgl32.Quat) OBB {
	q := orientation.Normalize()
	return OBB{
		Center: center,
		Half:   half,
		Axes: [3]mgl32.Vec3{
			q.Rotate(mgl32.Vec3{1, 0, 0}),
			q.Rotate(mgl32.Vec3{0, 1, 0}),
			q.Rotate(mgl32.Vec3{0, 0, 1}),
		},
	}
}

// Bounds returns the tightest AABB enclosing the box.
func (o OBB) Bounds() AABB {
	var ext mgl32.Vec3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			ext[i] += mgl32.Abs(o.Axes[j][i]) * o.Half[j]
		}
	}
	return NewAABBFromCenter(o.Center, ext)
}

func (o OBB) projectedRadius(axis mgl32.Vec3) float32 {
	return mgl32.Abs(o.Axes[0].Dot(axis))*o.Half[0] +
		mgl32.Abs(o.Axes[1].Dot(axis))*o.Half[1] +
		mgl32.Abs(o.Axes[2].Dot(axis))*o.Half[2]
}

// IntersectsAABB runs a separating axis test against an axis-aligned box.
func (o OBB) IntersectsAABB(box AABB) bool {
	other := OBB{
		Center: box.Center(),
		Half:   box.HalfExtent(),
		Axes:   [3]mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	}
	t := other.Center.Sub(o.Center)

	separated := func(axis mgl32.Vec3) bool {
		if axis.Dot(axis) < 1e-8 {
			return false
		}
		axis = axis.Normalize()
		d := mgl32.Abs(t.Dot(axis))
		return d >= o.projectedRadius(axis)+other.projectedRadius(axis)-separationSlack
	}

	for i := 0; i < 3; i++ {
		if separated(o.Axes[i]) || separated(other.Axes[i]) {
			return false
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if separated(o.Axes[i].Cross(other.Axes[j])) {
				return false
			}
		}
	}
	return true
}

// cellRange returns the inclusive range of unit cells whose cubes touch box.
func cellRange(box AABB) (lo, hi Cell) {
	for i := 0; i < 3; i++ {
		lo[i] = int(math.Ceil(float64(box.Min[i]) - 0.5))
		hi[i] = int(math.Floor(float64(box.Max[i]) + 0.5))
	}
	return lo, hi
}
