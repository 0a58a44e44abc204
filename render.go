package main

import (
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/cubeling/body"
	"github.com/milk9111/cubeling/physics"
	"github.com/milk9111/cubeling/prefabs"
	"golang.org/x/image/colornames"
)

// style holds the colors and scale of the top-down view.
type style struct {
	scale float32

	body           color.Color
	latest         color.Color
	candidate      color.Color
	water          color.Color
	waterHighlight color.Color
	solid          color.Color
	collector      color.Color
	collectorDone  color.Color
}

func newStyle(p *prefabs.PlayerSpec, c *prefabs.CollectorSpec, cam *prefabs.CameraSpec) style {
	s := style{scale: 24}
	if cam != nil {
		s.scale = cam.PixelsPerUnit
	}
	s.applyPlayer(p)
	s.applyCollector(c)
	return s
}

func (s *style) applyPlayer(p *prefabs.PlayerSpec) {
	var colors prefabs.PlayerColorSpec
	if p != nil {
		colors = p.Colors
	}
	s.body = colors.Body.Or(colornames.Orange)
	s.latest = colors.Latest.Or(colornames.Gold)
	s.candidate = colors.Candidate.Or(colornames.Lawngreen)
	s.water = colors.Water.Or(colornames.Royalblue)
	s.waterHighlight = colors.WaterHighlight.Or(colornames.Lightskyblue)
	s.solid = colors.Solid.Or(colornames.Dimgray)
}

func (s *style) applyCollector(c *prefabs.CollectorSpec) {
	var fill, done *prefabs.YAMLColor
	if c != nil {
		fill, done = c.Color, c.Done
	}
	s.collector = fill.Or(colornames.Seagreen)
	s.collectorDone = done.Or(colornames.Gold)
}

// screenPos maps a world point to the screen, looking straight down with
// the camera target at the center and +Z toward the top.
func (g *Game) screenPos(p mgl32.Vec3) (float32, float32) {
	rel := p.Sub(g.camera.Target)
	return baseWidth/2 + rel.X()*g.style.scale, baseHeight/2 - rel.Z()*g.style.scale
}

// cellRect fills or outlines a one unit square centered on p.
func (g *Game) cellRect(screen *ebiten.Image, p mgl32.Vec3, clr color.Color, fill bool) {
	x, y := g.screenPos(p)
	size := g.style.scale
	x -= size / 2
	y -= size / 2
	if fill {
		vector.FillRect(screen, x+1, y+1, size-2, size-2, clr, false)
		return
	}
	vector.StrokeRect(screen, x+1, y+1, size-2, size-2, 2, clr, false)
}

func (g *Game) drawWorld(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	// Lower layers first so walls and stacked water cover the floor.
	blocks := g.world.Blocks()
	sort.SliceStable(blocks, func(i, j int) bool { return blocks[i].Cell[1] < blocks[j].Cell[1] })

	highlighted, hasHighlight := g.player.Highlighted()
	for _, b := range blocks {
		switch {
		case b.Layer&physics.LayerWater != 0:
			clr := g.style.water
			if hasHighlight && b.Handle == highlighted {
				clr = g.style.waterHighlight
			}
			g.cellRect(screen, b.Position(), clr, true)
		case b.Layer&physics.LayerSolid != 0:
			g.cellRect(screen, b.Position(), g.style.solid, true)
			if b.Cell[1] > 0 {
				g.cellRect(screen, b.Position(), colornames.Black, false)
			}
		}
	}

	g.drawCollector(screen)
	g.drawPlayer(screen)
}

func (g *Game) drawCollector(screen *ebiten.Image) {
	if g.collector == nil {
		return
	}
	clr := g.style.collector
	if g.collector.Complete() {
		clr = g.style.collectorDone
	}

	r := float32(math.Sqrt(float64(g.collector.RangeSqr))) * g.style.scale
	x, y := g.screenPos(g.collector.Position)
	vector.StrokeRect(screen, x-r, y-r, 2*r, 2*r, 2, clr, false)
	g.cellRect(screen, g.collector.Position, clr, true)
	ebitenutil.DebugPrintAt(screen, g.collector.Text(), int(x-r), int(y-r)-16)
}

func (g *Game) drawPlayer(screen *ebiten.Image) {
	a := g.player.Assembly()
	latest, hasLatest := g.player.Latest()
	for _, p := range a.Parts() {
		clr := g.style.body
		if hasLatest && p.ID == latest.ID {
			clr = g.style.latest
		}
		g.cellRect(screen, a.WorldPosition(p), clr, true)
	}

	if cand, ok := g.player.Candidate(); ok {
		target := a.WorldPosition(body.Part{Position: cand.Position})
		g.cellRect(screen, target, g.style.candidate, false)
		if g.debug {
			from := a.WorldPosition(body.Part{Position: cand.Part.Position})
			x0, y0 := g.screenPos(from)
			x1, y1 := g.screenPos(target)
			vector.StrokeLine(screen, x0, y0, x1, y1, 2, g.style.candidate, true)
		}
	}

	// Camera eye and facing, so move input can be read against the view.
	ex, ey := g.screenPos(g.camera.Eye())
	tx, ty := g.screenPos(g.camera.Target)
	vector.StrokeLine(screen, ex, ey, tx, ty, 1, colornames.Lightgray, true)
	vector.FillRect(screen, ex-3, ey-3, 6, 6, colornames.White, false)
}

func drawStatus(screen *ebiten.Image, text string) {
	ebitenutil.DebugPrint(screen, text)
}
