// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package asset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gviegas/krystall/linear"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

func TestCube(t *testing.T) {
	g := Cube(2)
	if n := len(g.Positions); n != 24 {
		t.Fatalf("Cube: len(Positions)\nhave %d\nwant 24", n)
	}
	if n := len(g.Normals); n != 24 {
		t.Fatalf("Cube: len(Normals)\nhave %d\nwant 24", n)
	}
	if n := len(g.Indices); n != 36 {
		t.Fatalf("Cube: len(Indices)\nhave %d\nwant 36", n)
	}
	min, max := g.Bounds()
	if min != (linear.V3{-1, -1, -1}) || max != (linear.V3{1, 1, 1}) {
		t.Fatalf("Cube(2).Bounds\nhave %v, %v\nwant [-1 -1 -1], [1 1 1]", min, max)
	}
	// Triangles must wind counter-clockwise seen from
	// outside, so their geometric normal matches the
	// stored one.
	for i := 0; i < len(g.Indices); i += 3 {
		a := linear.V3(g.Positions[g.Indices[i]])
		b := linear.V3(g.Positions[g.Indices[i+1]])
		c := linear.V3(g.Positions[g.Indices[i+2]])
		var e1, e2, n linear.V3
		e1.Sub(&b, &a)
		e2.Sub(&c, &a)
		n.Cross(&e1, &e2)
		want := linear.V3(g.Normals[g.Indices[i]])
		if n.Dot(&want) <= 0 {
			t.Fatalf("Cube: triangle %d winds clockwise", i/3)
		}
	}
}

func TestComputeNormals(t *testing.T) {
	g := Cube(1)
	want := g.Normals
	g.Normals = nil
	g.ComputeNormals()
	// Cube faces do not share vertices, so smooth normals
	// equal the flat ones.
	for i := range want {
		if g.Normals[i] != want[i] {
			t.Fatalf("Geometry.ComputeNormals: [%d]\nhave %v\nwant %v", i, g.Normals[i], want[i])
		}
	}

	lone := &Geometry{Positions: [][3]float32{{0, 0, 0}}}
	lone.ComputeNormals()
	if lone.Normals[0] != [3]float32{0, 1, 0} {
		t.Fatalf("Geometry.ComputeNormals (unreferenced)\nhave %v\nwant [0 1 0]", lone.Normals[0])
	}
}

func TestBoundsEmpty(t *testing.T) {
	var g Geometry
	if min, max := g.Bounds(); min != (linear.V3{}) || max != (linear.V3{}) {
		t.Fatalf("Geometry.Bounds (empty)\nhave %v, %v", min, max)
	}
}

func writeGLB(t *testing.T, indexed bool) string {
	t.Helper()
	doc := gltf.NewDocument()
	var prim *gltf.Primitive
	if indexed {
		pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}})
		prim = &gltf.Primitive{
			Attributes: map[string]uint32{"POSITION": pos},
			Indices:    gltf.Index(modeler.WriteIndices(doc, []uint32{0, 1, 2, 0, 3, 1})),
		}
	} else {
		pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
		prim = &gltf.Primitive{Attributes: map[string]uint32{"POSITION": pos}}
	}
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: "tri", Primitives: []*gltf.Primitive{prim}})
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: "tri", Mesh: gltf.Index(0)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	path := filepath.Join(t.TempDir(), "tri.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadGLTF(t *testing.T) {
	g, err := LoadGLTF(writeGLB(t, true))
	if err != nil {
		t.Fatalf("LoadGLTF: unexpected error: %v", err)
	}
	if len(g.Positions) != 4 || len(g.Indices) != 6 {
		t.Fatalf("LoadGLTF\nhave %d positions, %d indices\nwant 4, 6", len(g.Positions), len(g.Indices))
	}
	if len(g.Normals) != len(g.Positions) {
		t.Fatalf("LoadGLTF: len(Normals)\nhave %d\nwant %d", len(g.Normals), len(g.Positions))
	}
	min, max := g.Bounds()
	if min != (linear.V3{}) || max != (linear.V3{1, 1, 1}) {
		t.Fatalf("LoadGLTF: Bounds\nhave %v, %v", min, max)
	}

	g, err = LoadGLTF(writeGLB(t, false))
	if err != nil {
		t.Fatalf("LoadGLTF (non-indexed): unexpected error: %v", err)
	}
	if want := []uint32{0, 1, 2}; len(g.Indices) != 3 || g.Indices[0] != want[0] || g.Indices[2] != want[2] {
		t.Fatalf("LoadGLTF (non-indexed): Indices\nhave %v\nwant %v", g.Indices, want)
	}
}

func TestLoadGLTFErrors(t *testing.T) {
	if _, err := LoadGLTF(filepath.Join(t.TempDir(), "missing.glb")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("LoadGLTF (missing)\nhave %v\nwant %v", err, os.ErrNotExist)
	}

	doc := gltf.NewDocument()
	path := filepath.Join(t.TempDir(), "empty.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadGLTF(path); !errors.Is(err, ErrNoGeometry) {
		t.Fatalf("LoadGLTF (empty)\nhave %v\nwant %v", err, ErrNoGeometry)
	}
}
