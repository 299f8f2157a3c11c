// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package wsi

import (
	"github.com/gviegas/krystall/camera"
)

// moveKeys maps the keys that move the camera.
var moveKeys = [...]struct {
	key Key
	dir camera.Direction
}{
	{KeyW, camera.Forward},
	{KeyS, camera.Backward},
	{KeyA, camera.Left},
	{KeyD, camera.Right},
	{KeyQ, camera.Ascend},
	{KeyE, camera.Descend},
}

// Input accumulates keyboard and pointer events between
// frames.
// It implements KeyboardHandler and PointerHandler, and
// the methods that a scene reads once per frame.
//
// Movement and arrow keys act while held. Cursor motion
// is accumulated until read, and the first motion event
// only establishes the reference position. Esc requests
// that the application quit.
type Input struct {
	held    [KeyF12 + 1]bool
	dirs    []camera.Direction
	lastX   float64
	lastY   float64
	dx, dy  float64
	tracked bool
	quit    bool
}

// NewInput creates an Input and installs it as the global
// keyboard and pointer handler.
func NewInput() *Input {
	in := new(Input)
	SetKeyboardHandler(in)
	SetPointerHandler(in)
	return in
}

// KeyboardKey implements KeyboardHandler.
func (in *Input) KeyboardKey(key Key, pressed bool) {
	if key < 0 || int(key) >= len(in.held) {
		return
	}
	in.held[key] = pressed
	if key == KeyEsc && pressed {
		in.quit = true
	}
}

// PointerMotion implements PointerHandler.
func (in *Input) PointerMotion(x, y float64) {
	if in.tracked {
		in.dx += x - in.lastX
		in.dy += y - in.lastY
	}
	in.lastX, in.lastY = x, y
	in.tracked = true
}

// Held reports whether key is currently pressed.
func (in *Input) Held(key Key) bool {
	return key >= 0 && int(key) < len(in.held) && in.held[key]
}

// Directions returns one command per held movement key.
// The slice is reused by the next call.
func (in *Input) Directions() []camera.Direction {
	in.dirs = in.dirs[:0]
	for _, m := range moveKeys {
		if in.held[m.key] {
			in.dirs = append(in.dirs, m.dir)
		}
	}
	return in.dirs
}

// Turn returns the yaw and pitch steps requested by the
// arrow keys.
func (in *Input) Turn() (dyaw, dpitch float32) {
	if in.held[KeyLeft] {
		dyaw--
	}
	if in.held[KeyRight] {
		dyaw++
	}
	if in.held[KeyUp] {
		dpitch++
	}
	if in.held[KeyDown] {
		dpitch--
	}
	return
}

// CursorDelta returns the cursor motion accumulated since
// the previous call, in window coordinates (y grows
// downwards).
func (in *Input) CursorDelta() (dx, dy float32) {
	dx, dy = float32(in.dx), float32(in.dy)
	in.dx, in.dy = 0, 0
	return
}

// Quit reports whether Esc was pressed.
func (in *Input) Quit() bool { return in.quit }
