package input

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/cubeling/movement"
)

// Action is a logical button.
type Action int

const (
	// ActionMove is pressed while the move vector is non-zero. Its edge fires
	// when movement starts or changes cardinal direction.
	ActionMove Action = iota
	ActionRotate
	ActionAttach
	ActionDetach

	// ActionCount sizes per-action arrays.
	ActionCount
)

func (a Action) String() string {
	switch a {
	case ActionMove:
		return "move"
	case ActionRotate:
		return "rotate"
	case ActionAttach:
		return "attach"
	case ActionDetach:
		return "detach"
	default:
		return "unknown"
	}
}

// Source is sampled once per rendered frame.
type Source interface {
	ReadMoveVector() mgl32.Vec2
	WasPressedThisFrame(a Action) bool
	IsPressed(a Action) bool
}

// State holds one frame of sampled input plus the previous frame for edges.
// Devices embed it and call Set once per frame.
type State struct {
	move     mgl32.Vec2
	prevMove mgl32.Vec2
	held     [ActionCount]bool
	just     [ActionCount]bool
}

// Set records a new frame. just marks buttons that went down this frame;
// the move edge is derived from the vectors. move is clamped to unit length.
func (s *State) Set(move mgl32.Vec2, held, just [ActionCount]bool) {
	if s == nil {
		return
	}
	move = clampUnit(move)
	s.prevMove = s.move
	s.move = move
	s.held = held
	s.just = just

	moving := movement.SnapCardinal(move) != movement.CardinalNone
	s.held[ActionMove] = moving
	s.just[ActionMove] = moveEdge(s.prevMove, move)
}

// moveEdge reports whether movement started or changed cardinal direction.
func moveEdge(prev, cur mgl32.Vec2) bool {
	c := movement.SnapCardinal(cur)
	if c == movement.CardinalNone {
		return false
	}
	return c != movement.SnapCardinal(prev)
}

func (s *State) ReadMoveVector() mgl32.Vec2 {
	if s == nil {
		return mgl32.Vec2{}
	}
	return s.move
}

func (s *State) WasPressedThisFrame(a Action) bool {
	if s == nil || a < 0 || a >= ActionCount {
		return false
	}
	return s.just[a]
}

func (s *State) IsPressed(a Action) bool {
	if s == nil || a < 0 || a >= ActionCount {
		return false
	}
	return s.held[a]
}

// clampUnit scales v down to unit length when it is longer.
func clampUnit(v mgl32.Vec2) mgl32.Vec2 {
	if l := v.Len(); l > 1 {
		return v.Mul(1 / l)
	}
	return v
}
