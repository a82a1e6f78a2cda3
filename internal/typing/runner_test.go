package typing

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"
)

// fakeClock is a virtual clock; timers fire only from Advance.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// pending returns the number of timers that are neither fired nor stopped.
func (c *fakeClock) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, firing due timers in order.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		var due []*fakeTimer
		for _, t := range c.timers {
			if !t.stopped && !t.fired && t.at <= target {
				due = append(due, t)
			}
		}
		if len(due) == 0 {
			c.now = target
			c.mu.Unlock()
			return
		}
		sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
		next := due[0]
		next.fired = true
		c.now = next.at
		c.mu.Unlock()

		next.f()
	}
}

func TestRunnerFollowsMachine(t *testing.T) {
	m, err := New([]string{"ab", "c"}, testTimings())
	if err != nil {
		t.Fatal(err)
	}
	clock := &fakeClock{}

	var mu sync.Mutex
	var texts []string
	r := NewRunner(m, clock, func(f Frame) {
		mu.Lock()
		texts = append(texts, f.Text)
		mu.Unlock()
	})
	r.Start()

	for elapsed := time.Duration(0); elapsed <= 130*time.Millisecond; elapsed += 10 * time.Millisecond {
		if got, want := r.Frame().Text, m.Text(m.At(elapsed)); got != want {
			t.Fatalf("at %v: runner shows %q, At shows %q", elapsed, got, want)
		}
		if n := clock.pending(); n != 1 {
			t.Fatalf("at %v: expected exactly one pending timer, got %d", elapsed, n)
		}
		clock.Advance(10 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(texts) == 0 || texts[0] != "a" {
		t.Errorf("expected first change to type %q, got %q", "a", texts)
	}
}

func TestRunnerStopCancelsPendingTimer(t *testing.T) {
	m, err := New([]string{"abc"}, testTimings())
	if err != nil {
		t.Fatal(err)
	}
	clock := &fakeClock{}

	calls := 0
	r := NewRunner(m, clock, func(Frame) { calls++ })
	r.Start()
	clock.Advance(10 * time.Millisecond)
	if calls != 1 {
		t.Fatalf("expected 1 change before stop, got %d", calls)
	}

	r.Stop()
	if n := clock.pending(); n != 0 {
		t.Fatalf("expected no pending timers after Stop, got %d", n)
	}

	clock.Advance(time.Second)
	if calls != 1 {
		t.Errorf("expected no changes after Stop, got %d", calls)
	}
	if got := r.Frame().Text; got != "a" {
		t.Errorf("expected frozen text %q, got %q", "a", got)
	}

	// Stopped runners stay stopped.
	r.Start()
	if n := clock.pending(); n != 0 {
		t.Errorf("restart armed %d timers", n)
	}
}

func TestRunnerIgnoresTimerThatRacedStop(t *testing.T) {
	m, err := New([]string{"abc"}, testTimings())
	if err != nil {
		t.Fatal(err)
	}
	clock := &fakeClock{}
	r := NewRunner(m, clock, nil)
	r.Start()

	clock.mu.Lock()
	late := clock.timers[0].f
	clock.mu.Unlock()

	r.Stop()
	late()

	if got := r.Frame(); got.Chars != 0 {
		t.Errorf("late timer applied a transition: %+v", got)
	}
}

func TestStreamClosesWhenContextEnds(t *testing.T) {
	m, err := New([]string{"ab"}, testTimings())
	if err != nil {
		t.Fatal(err)
	}
	clock := &fakeClock{}

	ctx, cancel := context.WithCancel(context.Background())
	frames := Stream(ctx, m, clock)

	first := <-frames
	if first.Text != "" || first.Mode != Typing {
		t.Fatalf("expected initial frame, got %+v", first)
	}

	clock.Advance(10 * time.Millisecond)
	select {
	case f := <-frames:
		if f.Text != "a" {
			t.Errorf("expected %q, got %q", "a", f.Text)
		}
	case <-time.After(time.Second):
		t.Fatal("no frame after advancing the clock")
	}

	cancel()
	select {
	case _, ok := <-frames:
		if ok {
			// A frame may already have been in flight; the channel must
			// still close.
			if _, ok := <-frames; ok {
				t.Fatal("stream kept delivering after cancel")
			}
		}
	case <-time.After(time.Second):
		t.Fatal("stream not closed after cancel")
	}

	deadline := time.Now().Add(time.Second)
	for clock.pending() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("runner timer still pending after cancel")
		}
		time.Sleep(time.Millisecond)
	}
}
