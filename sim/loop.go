package sim

import "time"

// maxCatchUpSteps bounds update steps per frame to avoid the
// spiral-of-death when the host stalls.
const maxCatchUpSteps = 5

// Loop is a fixed-timestep scheduler. The host calls Tick once per frame;
// the loop accumulates wall time, runs a bounded number of update steps,
// and then invokes the render callback with an interpolation fraction.
// Update steps never overlap and the render callback must treat state as
// read-only.
type Loop struct {
	step   float64
	update func(dt float64)
	render func(alpha float64)

	acc     float64
	last    time.Time
	hasLast bool
	running bool
}

// NewLoop creates a loop stepping at the given rate in Hz.
func NewLoop(rate float64, update func(dt float64), render func(alpha float64)) *Loop {
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return &Loop{
		step:   1 / rate,
		update: update,
		render: render,
	}
}

// Start begins scheduling. Calling Start on a running loop is a no-op.
func (l *Loop) Start() {
	if l == nil || l.running {
		return
	}
	l.running = true
	l.hasLast = false
	l.acc = 0
}

// Stop halts scheduling. It is safe to call from inside an update or
// render callback; remaining steps for the frame are skipped.
func (l *Loop) Stop() {
	if l == nil {
		return
	}
	l.running = false
}

// Running reports whether the loop is scheduling steps.
func (l *Loop) Running() bool {
	return l != nil && l.running
}

// Tick measures elapsed wall time and advances the loop.
func (l *Loop) Tick() {
	if l == nil || !l.running {
		return
	}
	now := time.Now()
	if !l.hasLast {
		l.last = now
		l.hasLast = true
		return
	}
	dt := now.Sub(l.last).Seconds()
	l.last = now
	l.Advance(dt)
}

// Advance feeds elapsed seconds into the accumulator and runs due update
// steps, then one render callback. Exposed separately so headless hosts
// can drive the loop with synthetic time.
func (l *Loop) Advance(elapsed float64) {
	if l == nil || !l.running {
		return
	}
	l.acc += elapsed

	steps := 0
	for l.acc >= l.step && steps < maxCatchUpSteps {
		if !l.running {
			return
		}
		if l.update != nil {
			l.update(l.step)
		}
		l.acc -= l.step
		steps++
	}
	if steps == maxCatchUpSteps && l.acc >= l.step {
		// Shed the backlog instead of spiraling.
		l.acc = 0
	}

	if l.running && l.render != nil {
		l.render(l.acc / l.step)
	}
}
