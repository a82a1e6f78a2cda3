// Package typing drives the hero's typing animation: a fixed list of phrases
// typed out one character at a time, held, deleted, and cycled forever.
package typing

import (
	"errors"
	"fmt"
	"time"
)

// Mode selects which transition rule fires next.
type Mode int

const (
	Typing Mode = iota
	HoldingFull
	Deleting
	HoldingEmpty
)

func (m Mode) String() string {
	switch m {
	case Typing:
		return "typing"
	case HoldingFull:
		return "holding-full"
	case Deleting:
		return "deleting"
	case HoldingEmpty:
		return "holding-empty"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// MarshalText encodes the mode by name in stream events and JSON.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// Timings holds the four delays of a phrase cycle.
type Timings struct {
	TypeDelay   time.Duration
	HoldFull    time.Duration
	DeleteDelay time.Duration
	HoldEmpty   time.Duration
}

// DefaultTimings returns the delays used on the live site.
func DefaultTimings() Timings {
	return Timings{
		TypeDelay:   100 * time.Millisecond,
		HoldFull:    2000 * time.Millisecond,
		DeleteDelay: 50 * time.Millisecond,
		HoldEmpty:   500 * time.Millisecond,
	}
}

// State is the animator position. Chars never exceeds the rune length of
// the phrase at index Phrase.
type State struct {
	Phrase int  `json:"phrase"`
	Chars  int  `json:"chars"`
	Mode   Mode `json:"mode"`
}

// ErrNoPhrases is returned when a Machine is built from an empty list.
var ErrNoPhrases = errors.New("typing: phrase list is empty")

// ErrZeroPeriod is returned when a cycle over every phrase adds up to no
// time. Such a machine would re-arm its timer without ever waiting.
var ErrZeroPeriod = errors.New("typing: a full cycle takes no time")

// Machine is the immutable transition table over a phrase list.
type Machine struct {
	phrases [][]rune
	timings Timings
	period  time.Duration
}

// New builds a Machine. The phrase list is copied.
func New(phrases []string, t Timings) (*Machine, error) {
	if len(phrases) == 0 {
		return nil, ErrNoPhrases
	}
	if t.TypeDelay < 0 || t.HoldFull < 0 || t.DeleteDelay < 0 || t.HoldEmpty < 0 {
		return nil, fmt.Errorf("typing: negative delay in %+v", t)
	}

	m := &Machine{
		phrases: make([][]rune, len(phrases)),
		timings: t,
	}
	for i, p := range phrases {
		m.phrases[i] = []rune(p)
		n := time.Duration(len(m.phrases[i]))
		m.period += n*t.TypeDelay + t.HoldFull + n*t.DeleteDelay + t.HoldEmpty
	}
	if m.period == 0 {
		return nil, ErrZeroPeriod
	}
	return m, nil
}

// Len returns the number of phrases.
func (m *Machine) Len() int { return len(m.phrases) }

// Phrase returns phrase i as a string.
func (m *Machine) Phrase(i int) string { return string(m.phrases[i]) }

// Timings returns the delays the machine was built with.
func (m *Machine) Timings() Timings { return m.timings }

// Initial is the state every animation starts from.
func (m *Machine) Initial() State {
	return State{Phrase: 0, Chars: 0, Mode: Typing}
}

// Period is the duration of one traversal of every phrase.
func (m *Machine) Period() time.Duration { return m.period }

// Text returns the visible prefix of the current phrase.
func (m *Machine) Text(s State) string {
	return string(m.phrases[s.Phrase][:s.Chars])
}

// Next applies one transition to s and returns the resulting state together
// with the delay that elapses before it takes effect.
func (m *Machine) Next(s State) (State, time.Duration) {
	n := len(m.phrases[s.Phrase])

	switch s.Mode {
	case Typing:
		if s.Chars < n {
			s.Chars++
			if s.Chars == n {
				s.Mode = HoldingFull
			}
			return s, m.timings.TypeDelay
		}
		s.Mode = Deleting
		return s, m.timings.HoldFull
	case HoldingFull:
		s.Mode = Deleting
		return s, m.timings.HoldFull
	case Deleting:
		if s.Chars > 0 {
			s.Chars--
			if s.Chars == 0 {
				s.Mode = HoldingEmpty
			}
			return s, m.timings.DeleteDelay
		}
	}

	// HoldingEmpty, or Deleting with nothing left to delete.
	return State{
		Phrase: (s.Phrase + 1) % len(m.phrases),
		Chars:  0,
		Mode:   Typing,
	}, m.timings.HoldEmpty
}

// At returns the state reached elapsed time after the initial state. It does
// not touch a clock, so the animation can be inspected at any instant.
func (m *Machine) At(elapsed time.Duration) State {
	s := m.Initial()
	if elapsed <= 0 || m.period == 0 {
		return s
	}
	elapsed %= m.period

	var acc time.Duration
	for {
		next, d := m.Next(s)
		if acc+d > elapsed {
			return s
		}
		acc += d
		s = next
	}
}

// Frame is one displayed state of the animation.
type Frame struct {
	State
	Text string `json:"text"`
}

// Frame pairs s with its visible text.
func (m *Machine) Frame(s State) Frame {
	return Frame{State: s, Text: m.Text(s)}
}
