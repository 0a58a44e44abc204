package water

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/cubeling/physics"
)

// Water is an attachable block.
type Water struct {
	Handle   physics.Handle
	Position mgl32.Vec3
}

// Registry is the set of live water blocks for one session. It is not safe
// for concurrent use.
type Registry struct {
	items []*Water
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Add(w *Water) {
	if r == nil || w == nil {
		return
	}
	r.items = append(r.items, w)
}

// Remove drops one occurrence of w.
func (r *Registry) Remove(w *Water) bool {
	if r == nil || w == nil {
		return false
	}
	for i, it := range r.items {
		if it == w {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true
		}
	}
	return false
}

// All returns the registered blocks in insertion order.
func (r *Registry) All() []*Water {
	if r == nil {
		return nil
	}
	return append([]*Water(nil), r.items...)
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.items)
}

func (r *Registry) Find(h physics.Handle) (*Water, bool) {
	if r == nil || !h.Valid() {
		return nil, false
	}
	for _, it := range r.items {
		if it.Handle == h {
			return it, true
		}
	}
	return nil, false
}
