package water

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/cubeling/physics"
)

// Pool keeps the registry and the voxel world in step: every registered
// water has exactly one water block in the world.
type Pool struct {
	world *physics.VoxelWorld
	reg   *Registry
}

func NewPool(world *physics.VoxelWorld, reg *Registry) *Pool {
	if reg == nil {
		reg = NewRegistry()
	}
	return &Pool{world: world, reg: reg}
}

func (p *Pool) Registry() *Registry {
	if p == nil {
		return nil
	}
	return p.reg
}

// Spawn places a water block in the cell containing pos. It fails when the
// cell is already occupied.
func (p *Pool) Spawn(pos mgl32.Vec3) (physics.Handle, bool) {
	if p == nil || p.world == nil {
		return 0, false
	}
	cell := physics.CellOf(pos)
	h, ok := p.world.AddBlock(cell, physics.LayerWater, false)
	if !ok {
		log.Printf("water: cell %v occupied, not spawning", cell)
		return 0, false
	}
	p.reg.Add(&Water{Handle: h, Position: cell.Center()})
	return h, true
}

// Consume removes a water block from both the world and the registry.
func (p *Pool) Consume(h physics.Handle) bool {
	if p == nil {
		return false
	}
	w, ok := p.reg.Find(h)
	if !ok {
		return false
	}
	p.reg.Remove(w)
	if p.world != nil {
		p.world.RemoveBlock(h)
	}
	return true
}

func (p *Pool) Position(h physics.Handle) (mgl32.Vec3, bool) {
	if p == nil {
		return mgl32.Vec3{}, false
	}
	w, ok := p.reg.Find(h)
	if !ok {
		return mgl32.Vec3{}, false
	}
	return w.Position, true
}
