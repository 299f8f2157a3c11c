// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package asset loads mesh geometry.
package asset

import (
	"log"
	"math"

	"github.com/gviegas/krystall/linear"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// ErrNoGeometry means that a file has no triangle
// geometry that can be loaded.
var ErrNoGeometry = errors.New("asset: no triangle geometry")

// Geometry is indexed triangle geometry in CPU memory.
// Normals has either the same length as Positions or
// is empty.
type Geometry struct {
	Positions [][3]float32
	Normals   [][3]float32
	Indices   []uint32
}

// LoadGLTF loads every triangle primitive of the glTF
// (.gltf or .glb) file at path and merges them into a
// single Geometry.
// Node transforms are not applied.
// If any primitive lacks normals, smooth normals are
// computed for the whole geometry.
func LoadGLTF(path string) (*Geometry, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "asset")
	}
	g := new(Geometry)
	missingNormals := false
	for _, mesh := range doc.Meshes {
		for i, prim := range mesh.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				log.Printf("asset: %s: mesh %q primitive %d is not a triangle list, skipping", path, mesh.Name, i)
				continue
			}
			pi, ok := prim.Attributes["POSITION"]
			if !ok {
				log.Printf("asset: %s: mesh %q primitive %d has no positions, skipping", path, mesh.Name, i)
				continue
			}
			pos, err := modeler.ReadPosition(doc, doc.Accessors[pi], nil)
			if err != nil {
				return nil, errors.Wrapf(err, "asset: %s: mesh %q positions", path, mesh.Name)
			}

			var nrm [][3]float32
			if ni, ok := prim.Attributes["NORMAL"]; ok {
				if nrm, err = modeler.ReadNormal(doc, doc.Accessors[ni], nil); err != nil {
					return nil, errors.Wrapf(err, "asset: %s: mesh %q normals", path, mesh.Name)
				}
			}
			if len(nrm) != len(pos) {
				missingNormals = true
				nrm = make([][3]float32, len(pos))
			}

			var idx []uint32
			if prim.Indices != nil {
				if idx, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil); err != nil {
					return nil, errors.Wrapf(err, "asset: %s: mesh %q indices", path, mesh.Name)
				}
			} else {
				idx = make([]uint32, len(pos))
				for i := range idx {
					idx[i] = uint32(i)
				}
			}
			if err := g.append(pos, nrm, idx); err != nil {
				return nil, errors.Wrapf(err, "asset: %s: mesh %q", path, mesh.Name)
			}
		}
	}
	if len(g.Indices) == 0 {
		return nil, errors.Wrapf(ErrNoGeometry, "%s", path)
	}
	if missingNormals {
		g.ComputeNormals()
	}
	return g, nil
}

// append adds a primitive to g, offsetting its indices.
func (g *Geometry) append(pos, nrm [][3]float32, idx []uint32) error {
	if len(idx)%3 != 0 {
		return errors.Errorf("%d indices do not form triangles", len(idx))
	}
	base := uint32(len(g.Positions))
	for _, i := range idx {
		if int(i) >= len(pos) {
			return errors.Errorf("index %d out of range [0, %d)", i, len(pos))
		}
		g.Indices = append(g.Indices, base+i)
	}
	g.Positions = append(g.Positions, pos...)
	g.Normals = append(g.Normals, nrm...)
	return nil
}

// ComputeNormals replaces g.Normals with area-weighted
// vertex normals.
// Vertices not referenced by any triangle get (0, 1, 0).
func (g *Geometry) ComputeNormals() {
	acc := make([]linear.V3, len(g.Positions))
	for i := 0; i+2 < len(g.Indices); i += 3 {
		a, b, c := g.Indices[i], g.Indices[i+1], g.Indices[i+2]
		pa := linear.V3(g.Positions[a])
		pb := linear.V3(g.Positions[b])
		pc := linear.V3(g.Positions[c])
		var e1, e2, n linear.V3
		e1.Sub(&pb, &pa)
		e2.Sub(&pc, &pa)
		n.Cross(&e1, &e2)
		for _, j := range [3]uint32{a, b, c} {
			acc[j].Add(&acc[j], &n)
		}
	}
	g.Normals = make([][3]float32, len(g.Positions))
	for i := range acc {
		if acc[i].Len() < 1e-12 {
			g.Normals[i] = [3]float32{0, 1, 0}
			continue
		}
		acc[i].Norm(&acc[i])
		g.Normals[i] = acc[i]
	}
}

// Bounds returns the minimum and maximum corners of the
// axis-aligned box that encloses g.
// It returns zero vectors if g has no positions.
func (g *Geometry) Bounds() (min, max linear.V3) {
	if len(g.Positions) == 0 {
		return
	}
	inf := float32(math.Inf(1))
	min = linear.V3{inf, inf, inf}
	max = linear.V3{-inf, -inf, -inf}
	for _, p := range g.Positions {
		for i := range p {
			min[i] = float32(math.Min(float64(min[i]), float64(p[i])))
			max[i] = float32(math.Max(float64(max[i]), float64(p[i])))
		}
	}
	return
}

// cubeFaces lists the outward normal and the four corner
// signs of each cube face, counter-clockwise when seen
// from outside.
var cubeFaces = [6]struct {
	n       [3]float32
	corners [4][3]float32
}{
	{[3]float32{1, 0, 0}, [4][3]float32{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}}},
	{[3]float32{-1, 0, 0}, [4][3]float32{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}}},
	{[3]float32{0, 1, 0}, [4][3]float32{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}}},
	{[3]float32{0, -1, 0}, [4][3]float32{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}},
	{[3]float32{0, 0, 1}, [4][3]float32{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}},
	{[3]float32{0, 0, -1}, [4][3]float32{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}}},
}

// Cube returns an axis-aligned cube centered at the
// origin with edges of the given length.
// Each face has its own four vertices so that normals
// are flat.
func Cube(size float32) *Geometry {
	h := size / 2
	g := &Geometry{
		Positions: make([][3]float32, 0, 24),
		Normals:   make([][3]float32, 0, 24),
		Indices:   make([]uint32, 0, 36),
	}
	for _, f := range cubeFaces {
		base := uint32(len(g.Positions))
		for _, c := range f.corners {
			g.Positions = append(g.Positions, [3]float32{c[0] * h, c[1] * h, c[2] * h})
			g.Normals = append(g.Normals, f.n)
		}
		g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return g
}
