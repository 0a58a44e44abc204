package sim

// System runs once per fixed tick.
type System interface {
	Update(dt float32)
}

// SystemFunc adapts a function to System.
type SystemFunc func(dt float32)

func (f SystemFunc) Update(dt float32) {
	f(dt)
}

type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update runs every system in registration order.
func (s *Scheduler) Update(dt float32) {
	for _, system := range s.systems {
		system.Update(dt)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
