package sim

import (
	"sync"

	"github.com/jakecoffman/cp"
)

// InputFrame is one tick's worth of human (or remote) intent: a movement
// vector plus discrete action flags resolved against cooldown and
// eligibility state by the match director.
type InputFrame struct {
	Move cp.Vector // unit-ish movement intent

	Fire     bool
	AimAngle float64
	Slot     int // requested active slot, -1 to keep

	UseHealthKit bool
	UseAbility   bool
}

// InputProvider supplies a per-tick input frame. The simulation polls it
// once per tick and treats it as opaque.
type InputProvider interface {
	Poll() InputFrame
}

// InputFunc adapts a function to InputProvider.
type InputFunc func() InputFrame

func (f InputFunc) Poll() InputFrame {
	return f()
}

// RemoteBuffer buffers frames arriving from a remote peer between ticks
// and applies them atomically at the start of the next tick, preserving
// the fixed intra-tick ordering local input gets. Push is safe to call
// from a transport goroutine.
type RemoteBuffer struct {
	mu     sync.Mutex
	frames []InputFrame
	last   InputFrame
}

// Push queues a frame from the transport.
func (b *RemoteBuffer) Push(f InputFrame) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.frames = append(b.frames, f)
	b.mu.Unlock()
}

// Poll drains buffered frames, coalescing them into one: the newest
// movement and aim win, discrete flags latch if any buffered frame set
// them. With nothing buffered the previous movement is held with flags
// cleared.
func (b *RemoteBuffer) Poll() InputFrame {
	if b == nil {
		return InputFrame{Slot: -1}
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.frames) == 0 {
		held := b.last
		held.Fire = false
		held.UseHealthKit = false
		held.UseAbility = false
		held.Slot = -1
		return held
	}

	out := b.frames[len(b.frames)-1]
	for _, f := range b.frames[:len(b.frames)-1] {
		if f.Fire && !out.Fire {
			out.Fire = true
			out.AimAngle = f.AimAngle
		}
		if f.UseHealthKit {
			out.UseHealthKit = true
		}
		if f.UseAbility {
			out.UseAbility = true
		}
		if f.Slot >= 0 && out.Slot < 0 {
			out.Slot = f.Slot
		}
	}
	b.frames = b.frames[:0]
	b.last = out
	return out
}
