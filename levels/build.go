package levels

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/cubeling/physics"
)

// WaterSpawner registers water blocks with whatever tracks them.
type WaterSpawner interface {
	Spawn(pos mgl32.Vec3) (physics.Handle, bool)
}

// Populate adds the level's solid blocks to world and spawns its water
// through waters. It returns the number of solid and water blocks placed.
func (l *Level) Populate(world *physics.VoxelWorld, waters WaterSpawner) (int, int, error) {
	if world == nil {
		return 0, 0, fmt.Errorf("levels: populate %s: nil world", l.Name)
	}

	solid, water := 0, 0
	for i := range l.Layers {
		y := l.LayerY(i)
		for z := 0; z < l.Depth; z++ {
			for x := 0; x < l.Width; x++ {
				cell := physics.Cell{x, y, z}
				switch l.Tile(i, x, z) {
				case TileSolid:
					if _, ok := world.AddBlock(cell, physics.LayerSolid, false); ok {
						solid++
					}
				case TileWater:
					if waters == nil {
						continue
					}
					if _, ok := waters.Spawn(cell.Center()); ok {
						water++
					}
				case TileEmpty:
				default:
					log.Printf("levels: %s: unknown tile %d at %v", l.Name, l.Tile(i, x, z), cell)
				}
			}
		}
	}
	return solid, water, nil
}

// Position returns the entity's cell center.
func (e Entity) Position() mgl32.Vec3 {
	return physics.Cell{e.X, e.Y, e.Z}.Center()
}
