// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package wsi

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
)

// Window is a window with a current OpenGL 4.1 core
// context.
type Window struct {
	win   *glfw.Window
	title string
}

var windowCount int

// NewWindow creates a window and makes its context
// current.
// The cursor is captured for mouse look.
func NewWindow(width, height int, title string, vsync bool) (*Window, error) {
	if windowCount == 0 {
		if err := glfw.Init(); err != nil {
			return nil, errors.Wrap(err, "wsi: glfw.Init")
		}
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		if windowCount == 0 {
			glfw.Terminate()
		}
		return nil, errors.Wrap(err, "wsi: glfw.CreateWindow")
	}
	windowCount++
	win.MakeContextCurrent()
	if vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	w := &Window{win: win, title: title}
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Repeat || keyboardHandler == nil {
			return
		}
		keyboardHandler.KeyboardKey(keyFrom(key), action == glfw.Press)
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if pointerHandler != nil {
			pointerHandler.PointerMotion(x, y)
		}
	})
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if windowHandler != nil {
			windowHandler.WindowResize(w, width, height)
		}
	})
	win.SetCloseCallback(func(*glfw.Window) {
		if windowHandler != nil {
			windowHandler.WindowClose(w)
		}
	})
	return w, nil
}

// Dispatch dispatches queued events.
func Dispatch() { glfw.PollEvents() }

// ShouldClose reports whether the window was asked to
// close.
func (w *Window) ShouldClose() bool { return w.win.ShouldClose() }

// SetShouldClose sets the close flag.
func (w *Window) SetShouldClose(b bool) { w.win.SetShouldClose(b) }

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() { w.win.SwapBuffers() }

// FramebufferSize returns the size of the window's
// framebuffer in pixels.
func (w *Window) FramebufferSize() (width, height int) { return w.win.GetFramebufferSize() }

// Title returns the window's title.
func (w *Window) Title() string { return w.title }

// SetTitle sets the window's title.
func (w *Window) SetTitle(title string) {
	w.win.SetTitle(title)
	w.title = title
}

// Close destroys the window.
// GLFW is terminated when the last window is closed.
func (w *Window) Close() {
	if w.win == nil {
		return
	}
	w.win.Destroy()
	w.win = nil
	if windowCount--; windowCount == 0 {
		glfw.Terminate()
	}
}
