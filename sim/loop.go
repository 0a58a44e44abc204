package sim

import "time"

const (
	DefaultStep     = time.Second / 50
	DefaultMaxTicks = 5
)

// Loop turns variable frame times into fixed simulation ticks.
type Loop struct {
	Step time.Duration
	// MaxTicks caps ticks per frame; leftover time is dropped so a slow
	// frame cannot snowball.
	MaxTicks int

	acc time.Duration
}

func NewLoop(step time.Duration) *Loop {
	if step <= 0 {
		step = DefaultStep
	}
	return &Loop{Step: step, MaxTicks: DefaultMaxTicks}
}

// Delta is the tick length in seconds.
func (l *Loop) Delta() float32 {
	if l == nil {
		return 0
	}
	return float32(l.Step.Seconds())
}

// Advance adds frame to the accumulator and calls fn once per whole step.
// It returns the number of ticks run.
func (l *Loop) Advance(frame time.Duration, fn func(dt float32)) int {
	if l == nil || l.Step <= 0 || frame <= 0 {
		return 0
	}
	l.acc += frame

	dt := l.Delta()
	ticks := 0
	for l.acc >= l.Step {
		if l.MaxTicks > 0 && ticks >= l.MaxTicks {
			l.acc = 0
			break
		}
		fn(dt)
		l.acc -= l.Step
		ticks++
	}
	return ticks
}

// Alpha is the fraction of a step left in the accumulator.
func (l *Loop) Alpha() float32 {
	if l == nil || l.Step <= 0 {
		return 0
	}
	return float32(l.acc) / float32(l.Step)
}
