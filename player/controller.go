package player

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/cubeling/body"
	"github.com/milk9111/cubeling/common"
	"github.com/milk9111/cubeling/event"
	"github.com/milk9111/cubeling/input"
	"github.com/milk9111/cubeling/movement"
	"github.com/milk9111/cubeling/physics"
)

// attachFilter lists layers that may not occupy the cell a new part moves
// into. The water being absorbed is the one exception.
const attachFilter = physics.LayerSolid | physics.LayerWater

// placementHalf is the half size of the box tested before attaching.
const placementHalf = 0.45

// Attachables are the water blocks the body can absorb and leave behind.
type Attachables interface {
	Position(h physics.Handle) (mgl32.Vec3, bool)
	Consume(h physics.Handle) bool
	Spawn(pos mgl32.Vec3) (physics.Handle, bool)
}

// Controller drives one player body. Update runs once per rendered frame
// and handles discrete input; FixedUpdate runs once per physics tick.
type Controller struct {
	rb       physics.Body
	world    physics.World
	input    input.Source
	cam      movement.CameraPose
	waters   Attachables
	sink     event.Sink
	assembly *body.Assembly
	ground   *movement.GroundSensor
	loco     *movement.Locomotion
	reorient *movement.Reorienter

	state        movement.GroundState
	highlighted  physics.Handle
	candidate    body.Candidate
	hasCandidate bool
}

func NewController(rb physics.Body, world physics.World, src input.Source, cam movement.CameraPose, waters Attachables, sink event.Sink, cfg Config) *Controller {
	a := body.NewAssembly(rb, sink)
	a.AttachParts(cfg.StartParts...)

	return &Controller{
		rb:       rb,
		world:    world,
		input:    src,
		cam:      cam,
		waters:   waters,
		sink:     sink,
		assembly: a,
		ground:   movement.NewGroundSensor(world, cfg.Ground),
		loco:     movement.NewLocomotion(rb, cfg.Locomotion),
		reorient: movement.NewReorienter(rb, a, world, sink, cfg.Reorient),
	}
}

// SetConfig applies new tuning. Start parts are ignored.
func (c *Controller) SetConfig(cfg Config) {
	if c == nil {
		return
	}
	c.ground.SetConfig(cfg.Ground)
	c.loco.SetConfig(cfg.Locomotion)
	c.reorient.SetConfig(cfg.Reorient)
}

func (c *Controller) Update() {
	if c == nil || c.input == nil {
		return
	}

	if c.input.WasPressedThisFrame(input.ActionDetach) {
		c.detach()
	}

	c.updateCandidate()
	if c.hasCandidate && c.input.WasPressedThisFrame(input.ActionAttach) {
		c.attach()
	}

	if c.rotateTriggered() {
		c.reorient.Request(c.input.ReadMoveVector(), c.cam)
	}
}

func (c *Controller) FixedUpdate(dt float32) {
	if c == nil {
		return
	}

	st := c.ground.Sense(c.assembly)
	if st.Changed {
		t := event.Airborne
		if st.Grounded {
			t = event.Grounded
		}
		event.Emit(c.sink, t, c.rb.Position())
	}
	c.state = st

	var move mgl32.Vec2
	if c.input != nil {
		move = c.input.ReadMoveVector()
	}
	last, ok := c.ground.LastGroundedPosition()
	if c.loco.Step(move, c.cam, st, last, ok) {
		log.Printf("player: fell below %.1f, recovered at %v", c.rb.Position().Y(), c.rb.Position())
	}

	c.reorient.Step(dt)
}

// rotateTriggered fires when rotate goes down while moving, or when the move
// direction changes while rotate is held.
func (c *Controller) rotateTriggered() bool {
	in := c.input
	if in.WasPressedThisFrame(input.ActionRotate) && in.IsPressed(input.ActionMove) {
		return true
	}
	return in.WasPressedThisFrame(input.ActionMove) && in.IsPressed(input.ActionRotate)
}

// updateCandidate picks the nearest water touching the body's padded bounds
// and the face it would attach to.
func (c *Controller) updateCandidate() {
	c.hasCandidate = false
	c.highlighted = 0
	if c.world == nil || c.waters == nil {
		return
	}

	pos := c.rb.Position()
	half := c.assembly.Volume().Size.Add(mgl32.Vec3{1, 1, 1}).Mul(0.5)
	hits := c.world.OverlapRegion(pos, half, c.rb.Orientation(), physics.LayerWater)
	if len(hits) == 0 {
		return
	}

	var nearest physics.Handle
	var nearestPos mgl32.Vec3
	best := float32(-1)
	for _, h := range hits {
		p, ok := c.waters.Position(h)
		if !ok {
			continue
		}
		if d := common.DistanceSqr(p, pos); best < 0 || d < best {
			best = d
			nearest = h
			nearestPos = p
		}
	}
	if !nearest.Valid() {
		return
	}

	cand, ok := c.assembly.ComputeAttachmentCandidate(nearestPos)
	if !ok {
		return
	}
	c.highlighted = nearest
	c.candidate = cand
	c.hasCandidate = true
}

func (c *Controller) attach() {
	target := c.assembly.WorldPosition(body.Part{Position: c.candidate.Position})
	half := mgl32.Vec3{placementHalf, placementHalf, placementHalf}
	for _, h := range c.world.OverlapRegion(target, half, c.rb.Orientation(), attachFilter) {
		if h != c.highlighted {
			log.Printf("player: attach target %v is occupied", target)
			return
		}
	}

	water := c.highlighted
	part := c.assembly.AttachPart(c.candidate.Position)
	if !c.waters.Consume(water) {
		log.Printf("player: water %d vanished before it could be absorbed", water)
	}
	log.Printf("player: attached part %d, %d parts", part.ID, c.assembly.Len())

	c.hasCandidate = false
	c.highlighted = 0
}

func (c *Controller) detach() {
	part, pos, ok := c.assembly.DetachLast()
	if !ok {
		return
	}
	log.Printf("player: detached part %d, %d parts", part.ID, c.assembly.Len())
	if c.waters == nil {
		return
	}
	if _, ok := c.waters.Spawn(pos); !ok {
		log.Printf("player: no room for residue at %v", pos)
	}
}

func (c *Controller) Assembly() *body.Assembly {
	if c == nil {
		return nil
	}
	return c.assembly
}

func (c *Controller) Candidate() (body.Candidate, bool) {
	if c == nil {
		return body.Candidate{}, false
	}
	return c.candidate, c.hasCandidate
}

// Highlighted is the water block the next attach would absorb.
func (c *Controller) Highlighted() (physics.Handle, bool) {
	if c == nil || !c.highlighted.Valid() {
		return 0, false
	}
	return c.highlighted, true
}

// Latest is the part the next detach would remove.
func (c *Controller) Latest() (body.Part, bool) {
	if c == nil {
		return body.Part{}, false
	}
	return c.assembly.Last()
}

func (c *Controller) Grounded() bool {
	return c != nil && c.state.Grounded
}

func (c *Controller) Mode() movement.Mode {
	if c == nil {
		return movement.ModeAirborne
	}
	return c.loco.Mode()
}

func (c *Controller) Rotating() bool {
	return c != nil && c.reorient.Rotating()
}
