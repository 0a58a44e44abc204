package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/cubeling/common"
)

// Cardinal is one of the four 2D input directions.
type Cardinal int

const (
	CardinalNone Cardinal = iota
	CardinalUp
	CardinalDown
	CardinalLeft
	CardinalRight
)

// cardinals is also the tie-break order for SnapCardinal.
var cardinals = [4]Cardinal{CardinalUp, CardinalDown, CardinalLeft, CardinalRight}

func (c Cardinal) Vector() mgl32.Vec2 {
	switch c {
	case CardinalUp:
		return mgl32.Vec2{0, 1}
	case CardinalDown:
		return mgl32.Vec2{0, -1}
	case CardinalLeft:
		return mgl32.Vec2{-1, 0}
	case CardinalRight:
		return mgl32.Vec2{1, 0}
	default:
		return mgl32.Vec2{}
	}
}

func (c Cardinal) String() string {
	switch c {
	case CardinalUp:
		return "up"
	case CardinalDown:
		return "down"
	case CardinalLeft:
		return "left"
	case CardinalRight:
		return "right"
	default:
		return "none"
	}
}

// Horizontal reports whether c lies on the x axis of the input.
func (c Cardinal) Horizontal() bool {
	return c == CardinalLeft || c == CardinalRight
}

// SnapCardinal returns the direction with the largest dot product against v.
func SnapCardinal(v mgl32.Vec2) Cardinal {
	if v.Len() < common.Epsilon {
		return CardinalNone
	}
	best := CardinalNone
	var bestDot float32
	for _, c := range cardinals {
		d := v.Dot(c.Vector())
		if best == CardinalNone || d > bestDot {
			best = c
			bestDot = d
		}
	}
	return best
}

var horizontalAxes = [4]mgl32.Vec3{
	common.Forward,
	common.Back,
	common.Right,
	common.Left,
}

// SnapHorizontal returns the world axis among +Z, -Z, +X and -X closest to v.
// The vertical component of v is ignored.
func SnapHorizontal(v mgl32.Vec3) mgl32.Vec3 {
	v[1] = 0
	if v.Len() < common.Epsilon {
		return mgl32.Vec3{}
	}
	best := horizontalAxes[0]
	bestDot := v.Dot(best)
	for _, axis := range horizontalAxes[1:] {
		if d := v.Dot(axis); d > bestDot {
			best = axis
			bestDot = d
		}
	}
	return best
}
