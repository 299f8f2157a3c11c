// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package anim implements animation clocks.
//
// An Animation does not interpolate anything; it only
// tracks the playback time of a named, timed unit so
// that a layer that animates transforms can consume it.
package anim

import (
	"github.com/pkg/errors"
)

// State is the playback state of an Animation.
type State int

// Animation states.
const (
	Stopped State = iota
	Playing
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	}
	return "invalid"
}

// Animation is a named, timed playback unit.
// Times are in seconds.
type Animation struct {
	Name     string
	Duration float32

	elapsed float32
	state   State
}

// New creates a stopped animation.
func New(name string, duration float32) *Animation {
	return &Animation{Name: name, Duration: duration}
}

// Play starts playing a from the beginning.
// Calling Play on a playing animation restarts it.
func (a *Animation) Play() {
	a.elapsed = 0
	a.state = Playing
}

// Stop stops a without reporting completion.
func (a *Animation) Stop() { a.state = Stopped }

// Advance advances a by dt seconds.
// It returns true when this call completes the
// animation, which then becomes Stopped; every
// other call returns false. Stopped animations and
// negative values of dt are ignored.
func (a *Animation) Advance(dt float32) (done bool) {
	if a.state != Playing || dt < 0 {
		return
	}
	a.elapsed += dt
	if a.elapsed >= a.Duration {
		a.state = Stopped
		done = true
	}
	return
}

// State returns the playback state of a.
func (a *Animation) State() State { return a.state }

// Elapsed returns the time played since the last
// call to Play.
func (a *Animation) Elapsed() float32 { return a.elapsed }

// Progress returns Elapsed / Duration, clamped to
// [0, 1]. Animations of zero duration report 1.
func (a *Animation) Progress() float32 {
	if a.Duration <= 0 {
		return 1
	}
	return max(0, min(a.elapsed/a.Duration, 1))
}

// ErrUnknown means that no animation with a given
// name exists in a Set.
var ErrUnknown = errors.New("anim: unknown animation")

// Set is a collection of animations identified by name.
// The zero value for Set is an empty set ready to use.
type Set struct {
	anims []*Animation
	index map[string]int
}

// Add adds a to s, replacing any animation that has
// the same name.
func (s *Set) Add(a *Animation) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[a.Name]; ok {
		s.anims[i] = a
		return
	}
	s.index[a.Name] = len(s.anims)
	s.anims = append(s.anims, a)
}

// Get returns the animation with the given name,
// or nil if there is none.
func (s *Set) Get(name string) *Animation {
	if i, ok := s.index[name]; ok {
		return s.anims[i]
	}
	return nil
}

// Len returns the number of animations in s.
func (s *Set) Len() int { return len(s.anims) }

// Play plays the animation with the given name.
func (s *Set) Play(name string) error {
	a := s.Get(name)
	if a == nil {
		return errors.Wrapf(ErrUnknown, "%q", name)
	}
	a.Play()
	return nil
}

// Advance advances every animation in s by dt and
// appends to done the names of those that completed,
// in the order they were added.
func (s *Set) Advance(dt float32, done []string) []string {
	for _, a := range s.anims {
		if a.Advance(dt) {
			done = append(done, a.Name)
		}
	}
	return done
}
