package body

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/cubeling/event"
	"github.com/milk9111/cubeling/physics"
)

type PartID uint32

// Part is one unit cube of the body. Position is in the assembly frame.
type Part struct {
	ID       PartID
	Position mgl32.Vec3
}

// Assembly owns the ordered set of body parts. The most recently attached
// part is the first to be detached, and the last remaining part can never
// be detached.
//
// After every change the parts are shifted so the assembly frame sits on the
// center of their bounds, and the rigid body is moved by the same amount in
// world space so nothing visibly jumps.
type Assembly struct {
	rb     physics.Body
	sink   event.Sink
	parts  []Part
	volume Volume
	nextID PartID
}

// NewAssembly creates an empty assembly whose world transform is rb.
func NewAssembly(rb physics.Body, sink event.Sink) *Assembly {
	return &Assembly{rb: rb, sink: sink}
}

// AttachPart adds a part at a local position. It always succeeds.
func (a *Assembly) AttachPart(position mgl32.Vec3) Part {
	if a == nil {
		return Part{}
	}
	a.nextID++
	a.parts = append(a.parts, Part{ID: a.nextID, Position: position})
	a.recalculate()

	p := a.parts[len(a.parts)-1]
	event.Emit(a.sink, event.PartAttached, event.PartEvent{
		Part:     uint32(p.ID),
		Position: a.WorldPosition(p),
		Count:    len(a.parts),
	})
	return p
}

// AttachParts adds several parts whose positions share one local frame and
// re-centers once after all of them are in. Calling AttachPart in a loop
// would read every later position in a frame already shifted by the earlier
// ones.
func (a *Assembly) AttachParts(positions ...mgl32.Vec3) []Part {
	if a == nil || len(positions) == 0 {
		return nil
	}
	first := len(a.parts)
	for _, pos := range positions {
		a.nextID++
		a.parts = append(a.parts, Part{ID: a.nextID, Position: pos})
	}
	a.recalculate()

	added := append([]Part(nil), a.parts[first:]...)
	for i, p := range added {
		event.Emit(a.sink, event.PartAttached, event.PartEvent{
			Part:     uint32(p.ID),
			Position: a.WorldPosition(p),
			Count:    first + i + 1,
		})
	}
	return added
}

// DetachLast removes the most recently attached part and returns it with the
// world position it occupied. It is a no-op when only one part remains.
func (a *Assembly) DetachLast() (Part, mgl32.Vec3, bool) {
	if a == nil || len(a.parts) <= 1 {
		return Part{}, mgl32.Vec3{}, false
	}
	last := a.parts[len(a.parts)-1]
	world := a.WorldPosition(last)
	a.parts = a.parts[:len(a.parts)-1]
	a.recalculate()

	event.Emit(a.sink, event.PartDetached, event.PartEvent{
		Part:     uint32(last.ID),
		Position: world,
		Count:    len(a.parts),
	})
	return last, world, true
}

func (a *Assembly) Len() int {
	if a == nil {
		return 0
	}
	return len(a.parts)
}

// Parts returns a copy of the parts in attachment order.
func (a *Assembly) Parts() []Part {
	if a == nil {
		return nil
	}
	return append([]Part(nil), a.parts...)
}

// Last returns the most recently attached part.
func (a *Assembly) Last() (Part, bool) {
	if a == nil || len(a.parts) == 0 {
		return Part{}, false
	}
	return a.parts[len(a.parts)-1], true
}

func (a *Assembly) Volume() Volume {
	if a == nil {
		return Volume{}
	}
	return a.volume
}

// Body returns the rigid body carrying the assembly frame.
func (a *Assembly) Body() physics.Body {
	if a == nil {
		return nil
	}
	return a.rb
}

func (a *Assembly) origin() (mgl32.Vec3, mgl32.Quat) {
	if a.rb == nil {
		return mgl32.Vec3{}, mgl32.QuatIdent()
	}
	return a.rb.Position(), a.rb.Orientation()
}

// WorldPosition maps a part's local position into world space.
func (a *Assembly) WorldPosition(p Part) mgl32.Vec3 {
	if a == nil {
		return p.Position
	}
	pos, rot := a.origin()
	return pos.Add(rot.Rotate(p.Position))
}

// WorldPositions returns every part's world position in attachment order.
func (a *Assembly) WorldPositions() []mgl32.Vec3 {
	if a == nil {
		return nil
	}
	out := make([]mgl32.Vec3, len(a.parts))
	for i, p := range a.parts {
		out[i] = a.WorldPosition(p)
	}
	return out
}

// WorldOffsets returns each part's world-space offset from the body origin.
func (a *Assembly) WorldOffsets() []mgl32.Vec3 {
	if a == nil {
		return nil
	}
	_, rot := a.origin()
	out := make([]mgl32.Vec3, len(a.parts))
	for i, p := range a.parts {
		out[i] = rot.Rotate(p.Position)
	}
	return out
}

func (a *Assembly) positions() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(a.parts))
	for i, p := range a.parts {
		out[i] = p.Position
	}
	return out
}

func (a *Assembly) recalculate() {
	a.volume = ComputeVolume(a.positions())
	center := a.volume.Center
	if center == (mgl32.Vec3{}) {
		return
	}

	for i := range a.parts {
		a.parts[i].Position = a.parts[i].Position.Sub(center)
	}
	a.volume.Min = a.volume.Min.Sub(center)
	a.volume.Max = a.volume.Max.Sub(center)
	a.volume.Center = mgl32.Vec3{}

	if a.rb != nil {
		a.rb.SetPosition(a.rb.Position().Add(a.rb.Orientation().Rotate(center)))
	}
}
