// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package wsi

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// MaxDelta is the largest frame time that a Clock
// reports, in seconds.
const MaxDelta = 0.25

// Clock measures the time between frames.
type Clock struct {
	now  func() float64
	last float64
}

// NewClock creates a Clock that reads the GLFW timer.
// GLFW must have been initialized by NewWindow.
func NewClock() *Clock { return newClock(glfw.GetTime) }

func newClock(now func() float64) *Clock {
	return &Clock{now: now, last: now()}
}

// Tick returns the time elapsed since the previous call
// (or since the Clock was created), in seconds.
// The value is clamped to [0, MaxDelta].
func (c *Clock) Tick() float32 {
	t := c.now()
	dt := t - c.last
	c.last = t
	switch {
	case dt < 0:
		return 0
	case dt > MaxDelta:
		return MaxDelta
	}
	return float32(dt)
}
