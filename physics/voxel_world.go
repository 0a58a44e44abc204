package physics

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Cell is an integer grid coordinate. The cube of cell c spans c±0.5.
type Cell [3]int

// CellOf returns the cell whose cube contains p.
func CellOf(p mgl32.Vec3) Cell {
	return Cell{
		int(math.Round(float64(p[0]))),
		int(math.Round(float64(p[1]))),
		int(math.Round(float64(p[2]))),
	}
}

func (c Cell) Center() mgl32.Vec3 {
	return mgl32.Vec3{float32(c[0]), float32(c[1]), float32(c[2])}
}

func (c Cell) Bounds() AABB {
	return NewAABBFromCenter(c.Center(), mgl32.Vec3{0.5, 0.5, 0.5})
}

// Block is one unit cube of world geometry.
type Block struct {
	Handle  Handle
	Cell    Cell
	Layer   Mask
	Trigger bool
}

func (b Block) Position() mgl32.Vec3 {
	return b.Cell.Center()
}

// VoxelWorld is an in-memory World made of unit blocks. It stands in for the
// engine's collision world in tests and in the demo.
type VoxelWorld struct {
	cells   map[Cell]*Block
	handles map[Handle]*Block
	next    Handle
}

func NewVoxelWorld() *VoxelWorld {
	return &VoxelWorld{
		cells:   make(map[Cell]*Block),
		handles: make(map[Handle]*Block),
	}
}

// AddBlock places a block in an empty cell. It returns false when the cell
// is already occupied.
func (w *VoxelWorld) AddBlock(c Cell, layer Mask, trigger bool) (Handle, bool) {
	if w == nil {
		return 0, false
	}
	if _, taken := w.cells[c]; taken {
		return 0, false
	}
	w.next++
	b := &Block{Handle: w.next, Cell: c, Layer: layer, Trigger: trigger}
	w.cells[c] = b
	w.handles[b.Handle] = b
	return b.Handle, true
}

// RemoveBlock deletes a block by handle.
func (w *VoxelWorld) RemoveBlock(h Handle) bool {
	if w == nil {
		return false
	}
	b, ok := w.handles[h]
	if !ok {
		return false
	}
	delete(w.handles, h)
	delete(w.cells, b.Cell)
	return true
}

func (w *VoxelWorld) Block(h Handle) (Block, bool) {
	if w == nil {
		return Block{}, false
	}
	b, ok := w.handles[h]
	if !ok {
		return Block{}, false
	}
	return *b, true
}

func (w *VoxelWorld) BlockAt(c Cell) (Block, bool) {
	if w == nil {
		return Block{}, false
	}
	b, ok := w.cells[c]
	if !ok {
		return Block{}, false
	}
	return *b, true
}

func (w *VoxelWorld) Len() int {
	if w == nil {
		return 0
	}
	return len(w.handles)
}

// Blocks returns every block ordered by handle.
func (w *VoxelWorld) Blocks() []Block {
	if w == nil {
		return nil
	}
	out := make([]Block, 0, len(w.handles))
	for _, b := range w.handles {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out
}

func (w *VoxelWorld) forEachIn(box AABB, fn func(b *Block)) {
	lo, hi := cellRange(box)
	for x := lo[0]; x <= hi[0]; x++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for z := lo[2]; z <= hi[2]; z++ {
				if b, ok := w.cells[Cell{x, y, z}]; ok {
					fn(b)
				}
			}
		}
	}
}

// RaycastDown implements World. Rays starting inside or on the surface of a
// block never hit that block.
func (w *VoxelWorld) RaycastDown(origin mgl32.Vec3, maxDistance float32, exclude Mask) bool {
	if w == nil || maxDistance <= 0 {
		return false
	}
	span := AABB{
		Min: origin.Sub(mgl32.Vec3{0, maxDistance, 0}),
		Max: origin,
	}
	hit := false
	w.forEachIn(span, func(b *Block) {
		if hit || b.Trigger || b.Layer&exclude != 0 {
			return
		}
		box := b.Cell.Bounds()
		if origin.X() < box.Min.X() || origin.X() > box.Max.X() ||
			origin.Z() < box.Min.Z() || origin.Z() > box.Max.Z() {
			return
		}
		top := box.Max.Y()
		if origin.Y() < top {
			return
		}
		if origin.Y()-top <= maxDistance {
			hit = true
		}
	})
	return hit
}

// OverlapBox implements World.
func (w *VoxelWorld) OverlapBox(center, halfExtent mgl32.Vec3, orientation mgl32.Quat, exclude Mask) int {
	if w == nil {
		return 0
	}
	obb := NewOBB(center, halfExtent, orientation)
	count := 0
	w.forEachIn(obb.Bounds(), func(b *Block) {
		if b.Trigger || b.Layer&exclude != 0 {
			return
		}
		if obb.IntersectsAABB(b.Cell.Bounds()) {
			count++
		}
	})
	return count
}

// OverlapRegion implements World.
func (w *VoxelWorld) OverlapRegion(center, halfExtent mgl32.Vec3, orientation mgl32.Quat, filter Mask) []Handle {
	if w == nil {
		return nil
	}
	obb := NewOBB(center, halfExtent, orientation)
	var out []Handle
	w.forEachIn(obb.Bounds(), func(b *Block) {
		if b.Layer&filter == 0 {
			return
		}
		if obb.IntersectsAABB(b.Cell.Bounds()) {
			out = append(out, b.Handle)
		}
	})
	return out
}
