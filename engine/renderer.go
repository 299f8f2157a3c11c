// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"log"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/gviegas/krystall/linear"
	"github.com/gviegas/krystall/render"
	"github.com/pkg/errors"
)

// uniforms holds the locations of the program's uniforms.
// A location of -1 is silently ignored by GL.
type uniforms struct {
	model      int32
	view       int32
	projection int32
	lightPos   int32
	lightColor int32
}

// Renderer is a render.Renderer that draws *Mesh values
// with a single GL program.
type Renderer struct {
	prog uint32
	loc  uniforms
}

var _ render.Renderer = &Renderer{}

// Init compiles and links the program.
// A previous program, if any, is replaced only when the
// new one links successfully.
func (r *Renderer) Init(vertexSrc, fragmentSrc string) error {
	prog, err := linkProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return err
	}
	if r.prog != 0 {
		gl.DeleteProgram(r.prog)
	}
	r.prog = prog
	r.loc = uniforms{
		model:      r.uniform(render.UniformModel),
		view:       r.uniform(render.UniformView),
		projection: r.uniform(render.UniformProjection),
		lightPos:   r.uniform(render.UniformLightPos),
		lightColor: r.uniform(render.UniformLightColor),
	}
	return nil
}

func (r *Renderer) uniform(name string) int32 {
	loc := gl.GetUniformLocation(r.prog, gl.Str(name+"\x00"))
	if loc < 0 {
		log.Printf("engine: program has no active uniform %q", name)
	}
	return loc
}

// Initialized reports whether r has a linked program.
func (r *Renderer) Initialized() bool { return r.prog != 0 }

// Draw draws d, which must be a *Mesh.
func (r *Renderer) Draw(d render.Drawable, model, view, proj *linear.M4, light *render.Light) error {
	if r.prog == 0 {
		return render.ErrNotInitialized
	}
	m, ok := d.(*Mesh)
	if !ok {
		return errors.Errorf("engine: cannot draw %T", d)
	}
	if m.vao == 0 {
		return errors.New("engine: mesh was destroyed")
	}

	gl.UseProgram(r.prog)
	gl.UniformMatrix4fv(r.loc.model, 1, false, &model[0][0])
	gl.UniformMatrix4fv(r.loc.view, 1, false, &view[0][0])
	gl.UniformMatrix4fv(r.loc.projection, 1, false, &proj[0][0])
	gl.Uniform3fv(r.loc.lightPos, 1, &light.Position[0])
	gl.Uniform3fv(r.loc.lightColor, 1, &light.Color[0])

	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, int32(m.count), gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
	return nil
}

// Destroy deletes the program.
// r can be initialized again afterwards.
func (r *Renderer) Destroy() {
	if r.prog != 0 {
		gl.DeleteProgram(r.prog)
		*r = Renderer{}
	}
}
