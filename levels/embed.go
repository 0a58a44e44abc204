package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
)

//go:embed *.json
var LevelsFS embed.FS

// Tile values stored in Layers.
const (
	TileEmpty = 0
	TileSolid = 1
	TileWater = 2
)

// Level is a stack of horizontal layers. Each layer is a row-major
// Width x Depth grid indexed as z*Width+x.
type Level struct {
	Name      string      `json:"name"`
	Width     int         `json:"width"`
	Depth     int         `json:"depth"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`
}

type LayerMeta struct {
	// Y is the world cell height of the layer. Layers without meta sit at
	// their index.
	Y int `json:"y"`
}

type Entity struct {
	Type  string                 `json:"type"`
	X     int                    `json:"x"`
	Y     int                    `json:"y"`
	Z     int                    `json:"z"`
	Props map[string]interface{} `json:"props,omitempty"`
}

func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("level %s: %w", name, err)
	}
	return &lvl, nil
}

func (l *Level) Validate() error {
	if l.Width <= 0 || l.Depth <= 0 {
		return fmt.Errorf("invalid size %dx%d", l.Width, l.Depth)
	}
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Depth {
			return fmt.Errorf("layer %d has %d tiles, want %d", i, len(layer), l.Width*l.Depth)
		}
	}
	if _, ok := l.Entity("spawn"); !ok {
		return fmt.Errorf("missing spawn entity")
	}
	return nil
}

// LayerY returns the world height of layer i.
func (l *Level) LayerY(i int) int {
	if i < len(l.LayerMeta) {
		return l.LayerMeta[i].Y
	}
	return i
}

// Tile returns the tile at x, z of layer i, or TileEmpty when out of range.
func (l *Level) Tile(i, x, z int) int {
	if i < 0 || i >= len(l.Layers) || x < 0 || x >= l.Width || z < 0 || z >= l.Depth {
		return TileEmpty
	}
	return l.Layers[i][z*l.Width+x]
}

// Entity returns the first entity of the given type.
func (l *Level) Entity(typ string) (Entity, bool) {
	for _, e := range l.Entities {
		if e.Type == typ {
			return e, true
		}
	}
	return Entity{}, false
}

// IntProp reads a numeric prop, which JSON decodes as float64.
func (e Entity) IntProp(key string, fallback int) int {
	if v, ok := e.Props[key].(float64); ok {
		return int(v)
	}
	return fallback
}
