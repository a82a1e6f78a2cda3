package typing

import (
	"context"
	"sync"
	"time"
)

// Timer is a pending callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock schedules one-shot callbacks.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// RealClock schedules on the wall clock.
var RealClock Clock = realClock{}

// Runner steps a Machine on a clock. At most one timer is pending at any
// time; each transition re-arms it.
type Runner struct {
	m        *Machine
	clock    Clock
	onChange func(Frame)

	mu      sync.Mutex
	state   State
	timer   Timer
	seq     uint64
	started bool
	stopped bool
}

// NewRunner returns an idle Runner positioned at the initial state. onChange
// is called after every transition, outside the runner's lock.
func NewRunner(m *Machine, clock Clock, onChange func(Frame)) *Runner {
	if clock == nil {
		clock = RealClock
	}
	if onChange == nil {
		onChange = func(Frame) {}
	}
	return &Runner{
		m:        m,
		clock:    clock,
		onChange: onChange,
		state:    m.Initial(),
	}
}

// Start arms the first timer. It is a no-op on a started or stopped runner;
// a runner cannot be restarted.
func (r *Runner) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started || r.stopped {
		return
	}
	r.started = true
	r.armLocked()
}

// Stop cancels the pending timer. No transition is applied after Stop
// returns.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}
	r.stopped = true
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

// Frame returns the current display state.
func (r *Runner) Frame() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.m.Frame(r.state)
}

func (r *Runner) armLocked() {
	next, d := r.m.Next(r.state)
	r.seq++
	seq := r.seq
	r.timer = r.clock.AfterFunc(d, func() { r.fire(seq, next) })
}

func (r *Runner) fire(seq uint64, next State) {
	r.mu.Lock()
	// A timer that lost the race with Stop, or was superseded, is ignored.
	if r.stopped || seq != r.seq {
		r.mu.Unlock()
		return
	}
	r.state = next
	frame := r.m.Frame(next)
	r.armLocked()
	r.mu.Unlock()

	r.onChange(frame)
}

// Stream runs an animation for the lifetime of ctx and delivers frames on
// the returned channel, starting with the initial frame. A slow reader only
// sees the latest frame. The channel is closed once ctx is done.
func Stream(ctx context.Context, m *Machine, clock Clock) <-chan Frame {
	latest := make(chan Frame, 1)
	out := make(chan Frame)

	r := NewRunner(m, clock, func(f Frame) {
		select {
		case latest <- f:
		default:
			select {
			case <-latest:
			default:
			}
			select {
			case latest <- f:
			default:
			}
		}
	})
	latest <- r.Frame()
	r.Start()

	go func() {
		defer close(out)
		defer r.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case f := <-latest:
				select {
				case out <- f:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
