// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package anim

import (
	"slices"
	"testing"

	"github.com/pkg/errors"
)

func TestAnimation(t *testing.T) {
	a := New("spin", 2)
	if s := a.State(); s != Stopped {
		t.Fatalf("New: State\nhave %v\nwant %v", s, Stopped)
	}
	if a.Advance(1) {
		t.Fatal("Animation.Advance (stopped)\nhave true\nwant false")
	}
	if e := a.Elapsed(); e != 0 {
		t.Fatalf("Animation.Advance (stopped): Elapsed\nhave %v\nwant 0", e)
	}

	a.Play()
	if s := a.State(); s != Playing {
		t.Fatalf("Animation.Play: State\nhave %v\nwant %v", s, Playing)
	}
	if a.Advance(2) != true {
		t.Fatal("Animation.Advance(Duration)\nhave false\nwant true")
	}
	if s := a.State(); s != Stopped {
		t.Fatalf("Animation.Advance(Duration): State\nhave %v\nwant %v", s, Stopped)
	}
	// Completion is reported exactly once.
	for _, dt := range [...]float32{0, 1, 100} {
		if a.Advance(dt) {
			t.Fatalf("Animation.Advance(%v) after completion\nhave true\nwant false", dt)
		}
	}
	if e := a.Elapsed(); e != 2 {
		t.Fatalf("Animation.Elapsed\nhave %v\nwant 2", e)
	}
	if p := a.Progress(); p != 1 {
		t.Fatalf("Animation.Progress\nhave %v\nwant 1", p)
	}
}

func TestRestart(t *testing.T) {
	a := New("wave", 1)
	a.Play()
	a.Advance(0.5)
	if p := a.Progress(); p != 0.5 {
		t.Fatalf("Animation.Progress\nhave %v\nwant 0.5", p)
	}
	a.Play()
	if e := a.Elapsed(); e != 0 {
		t.Fatalf("Animation.Play (restart): Elapsed\nhave %v\nwant 0", e)
	}
	if a.Advance(0.75) {
		t.Fatal("Animation.Advance after restart\nhave true\nwant false")
	}
	if a.Advance(-5) || a.Elapsed() != 0.75 {
		t.Fatalf("Animation.Advance(-5): Elapsed\nhave %v\nwant 0.75", a.Elapsed())
	}
	if !a.Advance(0.25) {
		t.Fatal("Animation.Advance\nhave false\nwant true")
	}

	a.Play()
	a.Stop()
	if a.Advance(10) {
		t.Fatal("Animation.Advance after Stop\nhave true\nwant false")
	}

	z := New("zero", 0)
	z.Play()
	if !z.Advance(0) {
		t.Fatal("Animation.Advance (zero duration)\nhave false\nwant true")
	}
}

func TestSet(t *testing.T) {
	var s Set
	if err := s.Play("x"); !errors.Is(err, ErrUnknown) {
		t.Fatalf("Set.Play (empty)\nhave %v\nwant %v", err, ErrUnknown)
	}
	s.Add(New("a", 1))
	s.Add(New("b", 3))
	s.Add(New("c", 2))
	if n := s.Len(); n != 3 {
		t.Fatalf("Set.Len\nhave %d\nwant 3", n)
	}
	for _, name := range [...]string{"a", "b", "c"} {
		if err := s.Play(name); err != nil {
			t.Fatalf("Set.Play(%q): unexpected error: %v", name, err)
		}
	}

	var done []string
	done = s.Advance(1, done[:0])
	if !slices.Equal(done, []string{"a"}) {
		t.Fatalf("Set.Advance\nhave %v\nwant [a]", done)
	}
	done = s.Advance(2, done[:0])
	if !slices.Equal(done, []string{"b", "c"}) {
		t.Fatalf("Set.Advance\nhave %v\nwant [b c]", done)
	}
	if done = s.Advance(1, done[:0]); len(done) != 0 {
		t.Fatalf("Set.Advance\nhave %v\nwant []", done)
	}

	// Replacing keeps the position.
	s.Add(New("a", 5))
	if a := s.Get("a"); a == nil || a.Duration != 5 {
		t.Fatalf("Set.Get after replace\nhave %v", a)
	}
	if n := s.Len(); n != 3 {
		t.Fatalf("Set.Len after replace\nhave %d\nwant 3", n)
	}
	if a := s.Get("nope"); a != nil {
		t.Fatalf("Set.Get\nhave %v\nwant nil", a)
	}
}
