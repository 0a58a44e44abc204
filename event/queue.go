package event

import "github.com/go-gl/mathgl/mgl32"

// Type identifies an event kind.
type Type string

const (
	PartAttached      Type = "part_attached"
	PartDetached      Type = "part_detached"
	RotationStarted   Type = "rotation_started"
	RotationCompleted Type = "rotation_completed"
	RotationBlocked   Type = "rotation_blocked"
	Grounded          Type = "grounded"
	Airborne          Type = "airborne"
	CollectorComplete Type = "collector_complete"
)

// Event is a generic payload consumed by audio, camera and effects code.
type Event struct {
	Type Type
	Data any
}

// PartEvent is the payload of PartAttached and PartDetached.
type PartEvent struct {
	Part     uint32
	Position mgl32.Vec3
	Count    int
}

// RotationEvent is the payload of the rotation events.
type RotationEvent struct {
	Start    mgl32.Quat
	End      mgl32.Quat
	Duration float32
}

// Sink receives events. A nil Sink drops them.
type Sink interface {
	Push(evt Event)
}

// Queue is a simple FIFO queue.
type Queue struct {
	items []Event
}

// Push adds an event.
func (q *Queue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len reports how many events are waiting.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *Queue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Emit pushes evt to sink when one is wired.
func Emit(sink Sink, t Type, data any) {
	if sink == nil {
		return
	}
	sink.Push(Event{Type: t, Data: data})
}
