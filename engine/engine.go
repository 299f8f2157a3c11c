// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package engine implements the renderer on top of OpenGL.
//
// Every function in this package must be called from the
// thread that owns the current GL context, and only after
// Init has succeeded.
package engine

import (
	"log"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/pkg/errors"
)

// Init loads the GL function pointers for the current
// context and sets the fixed pipeline state.
func Init() error {
	if err := gl.Init(); err != nil {
		return errors.Wrap(err, "engine: gl.Init")
	}
	log.Printf("engine: OpenGL %s (%s)", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	return nil
}

// Viewport sets the viewport to cover a framebuffer of
// the given size.
func Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Clear clears the color and depth buffers.
func Clear(r, g, b float32) {
	gl.ClearColor(r, g, b, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}
