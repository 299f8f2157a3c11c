// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package render defines the contract between the scene
// graph and the code that issues draw calls.
package render

import (
	"github.com/gviegas/krystall/linear"
	"github.com/pkg/errors"
)

var (
	// ErrShaderCompile means that a shader stage failed
	// to compile.
	ErrShaderCompile = errors.New("render: shader compilation failed")

	// ErrShaderLink means that the shader program failed
	// to link.
	ErrShaderLink = errors.New("render: shader linking failed")

	// ErrNotInitialized means that a draw was requested
	// from a Renderer whose Init did not succeed.
	ErrNotInitialized = errors.New("render: renderer not initialized")
)

// Names of the uniforms that every program must declare.
const (
	UniformModel      = "model"
	UniformView       = "view"
	UniformProjection = "projection"
	UniformLightPos   = "lightPos"
	UniformLightColor = "lightColor"
)

// Drawable is an opaque handle to mesh data that a
// Renderer knows how to draw.
// Drawables are created by an asset loader and are
// shared by any number of nodes; nodes never own them.
type Drawable interface {
	// IndexCount returns the number of indices that a
	// draw call will consume.
	IndexCount() int
}

// Light is a point light.
// It is passed unchanged through a traversal.
type Light struct {
	Position linear.V3
	Color    linear.V3
}

// Renderer issues draw calls.
// It holds no scene state between calls to Draw; the
// only state it keeps is the compiled program.
type Renderer interface {
	// Init compiles and links the program from the
	// given vertex and fragment sources.
	// Failures wrap ErrShaderCompile or ErrShaderLink.
	Init(vertexSrc, fragmentSrc string) error

	// Initialized reports whether a call to Init has
	// succeeded.
	Initialized() bool

	// Draw draws d using model, view and proj as the
	// model, view and projection transforms and light
	// as the light source.
	// It must not be called if Initialized is false.
	Draw(d Drawable, model, view, proj *linear.M4, light *Light) error
}
