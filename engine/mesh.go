// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/gviegas/krystall/render"
	"github.com/pkg/errors"
)

// ErrMesh means that mesh data is not usable.
var ErrMesh = errors.New("engine: invalid mesh data")

// vertexSize is the size in bytes of an interleaved
// position/normal pair.
const vertexSize = 6 * 4

// Mesh is indexed triangle geometry stored in GPU buffers.
// It implements render.Drawable.
type Mesh struct {
	vao   uint32
	vbo   uint32
	ebo   uint32
	count int
}

var _ render.Drawable = &Mesh{}

// interleave packs positions and normals into a single
// vertex stream.
// normals may be nil, in which case zero normals are used.
func interleave(positions, normals [][3]float32) ([]float32, error) {
	if len(positions) == 0 {
		return nil, errors.Wrap(ErrMesh, "no positions")
	}
	if normals != nil && len(normals) != len(positions) {
		return nil, errors.Wrapf(ErrMesh, "%d normals for %d positions", len(normals), len(positions))
	}
	v := make([]float32, 0, 6*len(positions))
	for i, p := range positions {
		v = append(v, p[:]...)
		if normals != nil {
			v = append(v, normals[i][:]...)
		} else {
			v = append(v, 0, 0, 0)
		}
	}
	return v, nil
}

func checkIndices(indices []uint32, nvert int) error {
	switch {
	case len(indices) == 0:
		return errors.Wrap(ErrMesh, "no indices")
	case len(indices)%3 != 0:
		return errors.Wrapf(ErrMesh, "%d indices do not form triangles", len(indices))
	}
	for _, i := range indices {
		if int(i) >= nvert {
			return errors.Wrapf(ErrMesh, "index %d out of range [0, %d)", i, nvert)
		}
	}
	return nil
}

// NewMesh uploads triangle geometry to the GPU.
func NewMesh(positions, normals [][3]float32, indices []uint32) (*Mesh, error) {
	v, err := interleave(positions, normals)
	if err != nil {
		return nil, err
	}
	if err := checkIndices(indices, len(positions)); err != nil {
		return nil, err
	}

	m := &Mesh{count: len(indices)}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(v), gl.Ptr(v), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(attrPosition)
	gl.VertexAttribPointer(attrPosition, 3, gl.FLOAT, false, vertexSize, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(attrNormal)
	gl.VertexAttribPointer(attrNormal, 3, gl.FLOAT, false, vertexSize, gl.PtrOffset(3*4))

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 4*len(indices), gl.Ptr(indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return m, nil
}

// IndexCount implements render.Drawable.
func (m *Mesh) IndexCount() int { return m.count }

// Destroy releases the GPU buffers.
// Nodes referring to m must not be drawn afterwards.
func (m *Mesh) Destroy() {
	if m.vao == 0 {
		return
	}
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ebo)
	*m = Mesh{}
}
