package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/milk9111/cubeling/camera"
	"github.com/milk9111/cubeling/event"
	"github.com/milk9111/cubeling/input"
	"github.com/milk9111/cubeling/levels"
	"github.com/milk9111/cubeling/physics"
	"github.com/milk9111/cubeling/player"
	"github.com/milk9111/cubeling/prefabs"
	"github.com/milk9111/cubeling/sim"
	"github.com/milk9111/cubeling/water"
)

var tileGlyphs = map[int]byte{
	levels.TileEmpty: '.',
	levels.TileSolid: '#',
	levels.TileWater: '~',
}

// report summarizes a headless run of a level.
type report struct {
	Level    string
	Solid    int
	Water    int
	Ticks    int
	Grounded bool
	// SettledAt is the first tick the body was grounded, or -1.
	SettledAt int
	Collector string
}

// check loads a level, drops the default player at its spawn and runs
// ticks fixed steps with no input.
func check(name string, ticks int) (*report, *levels.Level, error) {
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	lvl, err := levels.LoadLevelFromFS(name)
	if err != nil {
		return nil, nil, err
	}

	world := physics.NewVoxelWorld()
	pool := water.NewPool(world, nil)
	solid, wet, err := lvl.Populate(world, pool)
	if err != nil {
		return nil, nil, err
	}

	cfg := player.DefaultConfig()
	if spec, err := prefabs.LoadPlayerSpec(); err == nil {
		cfg = player.ConfigFromSpec(spec)
	} else {
		log.Printf("levelcheck: using default tuning: %v", err)
	}

	spawn, _ := lvl.Entity("spawn")
	rb := physics.NewRigidBody(spawn.Position())
	events := &event.Queue{}
	ctrl := player.NewController(rb, world, input.NewScript(), camera.NewOrbit(spawn.Position()), pool, events, cfg)

	var collector *water.Collector
	if e, ok := lvl.Entity("collector"); ok {
		rangeSqr := float32(6.25)
		if spec, err := prefabs.LoadCollectorSpec(); err == nil {
			rangeSqr = spec.RangeSqr
		}
		collector = water.NewCollector(e.Position(), rangeSqr, e.IntProp("needed", 1), events)
	}

	loop := sim.NewLoop(sim.DefaultStep)
	sched := sim.NewScheduler(
		sim.SystemFunc(ctrl.FixedUpdate),
		sim.SystemFunc(func(dt float32) {
			rb.Step(dt, world, ctrl.Assembly().WorldOffsets())
		}),
		sim.SystemFunc(func(float32) {
			collector.Update(pool.Registry())
		}),
	)

	r := &report{Level: lvl.Name, Solid: solid, Water: wet, Ticks: ticks, SettledAt: -1}
	for i := 0; i < ticks; i++ {
		ctrl.Update()
		loop.Advance(loop.Step, sched.Update)
		if r.SettledAt < 0 && ctrl.Grounded() {
			r.SettledAt = i
		}
	}
	r.Grounded = ctrl.Grounded()
	if collector != nil {
		r.Collector = collector.Text()
	}
	events.Drain()
	return r, lvl, nil
}

// printLayers writes each layer top-down with +Z toward the bottom of the
// output.
func printLayers(w io.Writer, lvl *levels.Level) {
	for i := range lvl.Layers {
		fmt.Fprintf(w, "layer %d (y=%d)\n", i, lvl.LayerY(i))
		row := make([]byte, lvl.Width)
		for z := 0; z < lvl.Depth; z++ {
			for x := 0; x < lvl.Width; x++ {
				g, ok := tileGlyphs[lvl.Tile(i, x, z)]
				if !ok {
					g = '?'
				}
				row[x] = g
			}
			fmt.Fprintf(w, "  %s\n", row)
		}
	}
}

func main() {
	levelName := flag.String("level", "meadow", "level name in levels/ (basename, .json optional)")
	ticks := flag.Int("ticks", 100, "fixed steps to simulate")
	showMap := flag.Bool("map", false, "print the level layers")
	flag.Parse()

	r, lvl, err := check(*levelName, *ticks)
	if err != nil {
		log.Fatal(err)
	}
	if *showMap {
		printLayers(os.Stdout, lvl)
	}

	fmt.Printf("%s: %d solid, %d water\n", r.Level, r.Solid, r.Water)
	if r.Collector != "" {
		fmt.Printf("collector: %s\n", r.Collector)
	}
	if !r.Grounded {
		fmt.Printf("spawn did not settle in %d ticks\n", r.Ticks)
		os.Exit(1)
	}
	fmt.Printf("spawn settled at tick %d\n", r.SettledAt)
}
