package input

import "github.com/go-gl/mathgl/mgl32"

// Frame is one frame of scripted input. Held lists every button down in the
// frame; presses are derived by comparing with the previous frame.
type Frame struct {
	Move mgl32.Vec2
	Held []Action
}

// Script replays frames in order, then reports idle input.
type Script struct {
	State
	frames []Frame
	next   int
}

func NewScript(frames ...Frame) *Script {
	return &Script{frames: frames}
}

// Update advances to the next frame.
func (s *Script) Update() {
	if s == nil {
		return
	}
	var f Frame
	if s.next < len(s.frames) {
		f = s.frames[s.next]
		s.next++
	}

	var held, just [ActionCount]bool
	for _, a := range f.Held {
		if a < 0 || a >= ActionCount {
			continue
		}
		held[a] = true
		just[a] = !s.held[a]
	}
	s.Set(f.Move, held, just)
}

// Done reports whether every frame has been replayed.
func (s *Script) Done() bool {
	return s == nil || s.next >= len(s.frames)
}
