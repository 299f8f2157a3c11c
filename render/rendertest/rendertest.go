// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package rendertest provides a render.Renderer that
// records draw calls instead of issuing them.
package rendertest

import (
	"github.com/gviegas/krystall/linear"
	"github.com/gviegas/krystall/render"
	"github.com/pkg/errors"
)

// Call is a recorded call to Recorder.Draw.
type Call struct {
	Drawable render.Drawable
	Model    linear.M4
	View     linear.M4
	Proj     linear.M4
	Light    render.Light
}

// Recorder is a render.Renderer that appends every
// Draw call to Calls.
// The zero value is not initialized; call Init first.
type Recorder struct {
	Calls []Call

	// InitErr, if not nil, is returned by Init.
	InitErr error

	// FailAt, if greater than zero, makes the FailAt-th
	// call to Draw (1-based) fail with DrawErr.
	FailAt  int
	DrawErr error

	init bool
}

// Init records that the program has been created.
func (r *Recorder) Init(vertexSrc, fragmentSrc string) error {
	if r.InitErr != nil {
		r.init = false
		return r.InitErr
	}
	r.init = true
	return nil
}

// Initialized reports whether Init has succeeded.
func (r *Recorder) Initialized() bool { return r.init }

// Draw records a draw call.
func (r *Recorder) Draw(d render.Drawable, model, view, proj *linear.M4, light *render.Light) error {
	if !r.init {
		return render.ErrNotInitialized
	}
	if r.FailAt > 0 && len(r.Calls)+1 == r.FailAt {
		if r.DrawErr == nil {
			return errors.New("rendertest: draw failed")
		}
		return r.DrawErr
	}
	r.Calls = append(r.Calls, Call{
		Drawable: d,
		Model:    *model,
		View:     *view,
		Proj:     *proj,
		Light:    *light,
	})
	return nil
}

// Reset discards the recorded calls.
func (r *Recorder) Reset() { r.Calls = r.Calls[:0] }

// Mesh is a render.Drawable that only carries a name
// and an index count.
type Mesh struct {
	Name  string
	Count int
}

// IndexCount implements render.Drawable.
func (m *Mesh) IndexCount() int { return m.Count }
