package main

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/cubeling/camera"
	"github.com/milk9111/cubeling/event"
	"github.com/milk9111/cubeling/input/device"
	"github.com/milk9111/cubeling/levels"
	"github.com/milk9111/cubeling/physics"
	"github.com/milk9111/cubeling/player"
	"github.com/milk9111/cubeling/prefabs"
	"github.com/milk9111/cubeling/sim"
	"github.com/milk9111/cubeling/water"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type Game struct {
	frames int
	debug  bool
	last   time.Time

	level     *levels.Level
	world     *physics.VoxelWorld
	pool      *water.Pool
	collector *water.Collector
	rb        *physics.RigidBody
	player    *player.Controller
	input     *device.Keyboard
	camera    *camera.Orbit
	events    *event.Queue

	loop      *sim.Loop
	scheduler *sim.Scheduler
	watcher   *prefabs.Watcher

	style style
}

func NewGame(levelName string, debug, watch bool) (*Game, error) {
	if !strings.HasSuffix(levelName, ".json") {
		levelName += ".json"
	}
	lvl, err := levels.LoadLevelFromFS(levelName)
	if err != nil {
		return nil, err
	}

	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	collectorSpec, err := prefabs.LoadCollectorSpec()
	if err != nil {
		return nil, err
	}
	cameraSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return nil, err
	}

	world := physics.NewVoxelWorld()
	pool := water.NewPool(world, nil)
	solid, wet, err := lvl.Populate(world, pool)
	if err != nil {
		return nil, err
	}
	log.Printf("game: loaded %s with %d solid and %d water blocks", lvl.Name, solid, wet)

	events := &event.Queue{}

	spawn, _ := lvl.Entity("spawn")
	rb := physics.NewRigidBody(spawn.Position())

	cam := camera.NewOrbit(spawn.Position())
	applyCameraSpec(cam, cameraSpec)

	kb := device.NewKeyboard()
	ctrl := player.NewController(rb, world, kb, cam, pool, events, player.ConfigFromSpec(playerSpec))

	var collector *water.Collector
	if e, ok := lvl.Entity("collector"); ok {
		needed := e.IntProp("needed", collectorSpec.Needed)
		collector = water.NewCollector(e.Position(), collectorSpec.RangeSqr, needed, events)
		collector.OnComplete = func() {
			log.Printf("game: collector filled %s", collector.Text())
		}
	}

	g := &Game{
		debug:     debug,
		level:     lvl,
		world:     world,
		pool:      pool,
		collector: collector,
		rb:        rb,
		player:    ctrl,
		input:     kb,
		camera:    cam,
		events:    events,
		loop:      sim.NewLoop(sim.DefaultStep),
		style:     newStyle(playerSpec, collectorSpec, cameraSpec),
	}

	g.scheduler = sim.NewScheduler(
		sim.SystemFunc(ctrl.FixedUpdate),
		sim.SystemFunc(func(dt float32) {
			rb.Step(dt, world, ctrl.Assembly().WorldOffsets())
		}),
		sim.SystemFunc(func(dt float32) {
			collector.Update(pool.Registry())
		}),
	)

	if watch {
		w, err := prefabs.NewWatcher("prefabs")
		if err != nil {
			log.Printf("game: prefab watcher disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	return g, nil
}

func (g *Game) Update() error {
	g.frames++
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		return ebiten.Termination
	}

	now := time.Now()
	frame := sim.DefaultStep
	if !g.last.IsZero() {
		frame = now.Sub(g.last)
	}
	g.last = now

	g.input.Update()
	g.camera.Turn(g.input.CameraTurn(), float32(frame.Seconds()))
	g.player.Update()

	g.loop.Advance(frame, g.scheduler.Update)
	g.camera.Follow(g.rb.Position())

	g.drainEvents()
	g.reloadPrefabs()
	return nil
}

func (g *Game) drainEvents() {
	for _, evt := range g.events.Drain() {
		switch evt.Type {
		case event.CollectorComplete:
			log.Printf("game: %s with %v", evt.Type, evt.Data)
		case event.RotationBlocked:
			if g.debug {
				log.Printf("game: %s", evt.Type)
			}
		default:
			if g.debug {
				log.Printf("game: %s %+v", evt.Type, evt.Data)
			}
		}
	}
}

// reloadPrefabs applies any prefab files the watcher reported since the
// last frame. Start parts and the level are not reloaded.
func (g *Game) reloadPrefabs() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(filepath.Base(name))
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("game: prefab watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) reload(name string) {
	switch name {
	case "player.yaml":
		spec, err := prefabs.LoadPlayerSpec()
		if err != nil {
			log.Printf("game: reload %s: %v", name, err)
			return
		}
		g.player.SetConfig(player.ConfigFromSpec(spec))
		g.style.applyPlayer(spec)
	case "camera.yaml":
		spec, err := prefabs.LoadCameraSpec()
		if err != nil {
			log.Printf("game: reload %s: %v", name, err)
			return
		}
		applyCameraSpec(g.camera, spec)
		g.style.scale = spec.PixelsPerUnit
	case "collector.yaml":
		spec, err := prefabs.LoadCollectorSpec()
		if err != nil {
			log.Printf("game: reload %s: %v", name, err)
			return
		}
		if g.collector != nil {
			g.collector.RangeSqr = spec.RangeSqr
		}
		g.style.applyCollector(spec)
	default:
		return
	}
	log.Printf("game: reloaded %s", name)
}

func (g *Game) Close() error {
	if g == nil || g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawWorld(screen)

	status := fmt.Sprintf("%s    FPS: %.2f    Parts: %d    Mode: %s",
		g.level.Name, ebiten.ActualFPS(), g.player.Assembly().Len(), g.player.Mode())
	if g.player.Rotating() {
		status += "    rotating"
	}
	if g.collector != nil {
		status += "    Water: " + g.collector.Text()
	}
	if g.debug {
		p := g.rb.Position()
		status += fmt.Sprintf("\nPos: %.2f %.2f %.2f    Frames: %d", p.X(), p.Y(), p.Z(), g.frames)
	}
	drawStatus(screen, status)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func applyCameraSpec(cam *camera.Orbit, spec *prefabs.CameraSpec) {
	if cam == nil || spec == nil {
		return
	}
	if spec.Distance > 0 {
		cam.Distance = spec.Distance
	}
	if spec.Height > 0 {
		cam.Height = spec.Height
	}
	if spec.TurnSpeed > 0 {
		cam.TurnSpeed = spec.TurnSpeed
	}
	cam.Smoothness = mgl32.Clamp(spec.Smoothness, 0, 1)
}
