package water

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/cubeling/common"
	"github.com/milk9111/cubeling/event"
)

// Collector counts water within range of a point against a goal.
type Collector struct {
	Position mgl32.Vec3
	RangeSqr float32
	Needed   int
	// OnComplete runs once, the first time the goal is reached.
	OnComplete func()

	sink      event.Sink
	collected int
	complete  bool
}

func NewCollector(pos mgl32.Vec3, rangeSqr float32, needed int, sink event.Sink) *Collector {
	return &Collector{
		Position: pos,
		RangeSqr: rangeSqr,
		Needed:   needed,
		sink:     sink,
	}
}

// Count returns how many registered blocks lie strictly within range.
func (c *Collector) Count(reg *Registry) int {
	if c == nil {
		return 0
	}
	n := 0
	for _, w := range reg.All() {
		if common.DistanceSqr(w.Position, c.Position) < c.RangeSqr {
			n++
		}
	}
	return n
}

// Update recounts and reports whether the count changed. Completion is
// sticky once reached.
func (c *Collector) Update(reg *Registry) bool {
	if c == nil {
		return false
	}
	n := c.Count(reg)
	if n == c.collected {
		return false
	}
	c.collected = n

	if !c.complete && c.collected >= c.Needed {
		c.complete = true
		event.Emit(c.sink, event.CollectorComplete, c.collected)
		if c.OnComplete != nil {
			c.OnComplete()
		}
	}
	return true
}

func (c *Collector) Collected() int {
	if c == nil {
		return 0
	}
	return c.collected
}

func (c *Collector) Complete() bool {
	return c != nil && c.complete
}

func (c *Collector) Text() string {
	if c == nil {
		return ""
	}
	return fmt.Sprintf("%d / %d", c.collected, c.Needed)
}
