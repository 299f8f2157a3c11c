// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Krystall renders a small forest scene with a free-fly
// camera.
//
// Usage:
//
//	krystall [-config file.yaml]
//
// WASD moves, Q/E ascend and descend, the arrow keys and
// the mouse turn the camera and Esc quits.
package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"github.com/gviegas/krystall/asset"
	"github.com/gviegas/krystall/config"
	"github.com/gviegas/krystall/engine"
	"github.com/gviegas/krystall/linear"
	"github.com/gviegas/krystall/node"
	"github.com/gviegas/krystall/scene"
	"github.com/gviegas/krystall/wsi"
	"github.com/pkg/errors"
)

func init() {
	runtime.LockOSThread()
}

// treePositions are the positions of the trees in the
// world.
var treePositions = [...]linear.V3{
	{2, 0, -3},
	{-2.5, 0, -4},
	{1, 0, -6},
	{-1.5, 0, -7},
}

// nearDistance is the distance from the camera under
// which a tree is reported.
const nearDistance = 1.5

var skyColor = [3]float32{0.53, 0.8, 1}

func main() {
	cfgPath := flag.String("config", "", "path of a YAML configuration file")
	flag.Parse()

	if err := run(*cfgPath); err != nil {
		log.Printf("ERROR: %+v", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func loadShaders(a *config.Assets) (vs, fs string, err error) {
	vs, fs = engine.DefaultVertexShader, engine.DefaultFragmentShader
	if a.VertexShader != "" {
		b, err := os.ReadFile(a.VertexShader)
		if err != nil {
			return "", "", errors.Wrap(err, "vertex shader")
		}
		vs = string(b)
	}
	if a.FragmentShader != "" {
		b, err := os.ReadFile(a.FragmentShader)
		if err != nil {
			return "", "", errors.Wrap(err, "fragment shader")
		}
		fs = string(b)
	}
	return
}

func loadTree(path string) (*asset.Geometry, error) {
	if path == "" {
		return asset.Cube(0.5), nil
	}
	return asset.LoadGLTF(path)
}

// app handles window events.
type app struct {
	scn *scene.Scene
}

func (a *app) WindowClose(win *wsi.Window) { win.SetShouldClose(true) }

func (a *app) WindowResize(_ *wsi.Window, width, height int) {
	// Minimized windows report a zero size.
	if width <= 0 || height <= 0 {
		return
	}
	engine.Viewport(width, height)
	if err := a.scn.Resize(width, height); err != nil {
		log.Printf("resize: %v", err)
	}
}

func run(cfgPath string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	win, err := wsi.NewWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, cfg.Window.VSync)
	if err != nil {
		return err
	}
	defer win.Close()
	if err := engine.Init(); err != nil {
		return err
	}

	vs, fs, err := loadShaders(&cfg.Assets)
	if err != nil {
		return err
	}
	var r engine.Renderer
	if err := r.Init(vs, fs); err != nil {
		return err
	}
	defer r.Destroy()

	geom, err := loadTree(cfg.Assets.Mesh)
	if err != nil {
		return err
	}
	min, max := geom.Bounds()
	log.Printf("tree mesh: %d vertices, %d triangles, bounds %v %v", len(geom.Positions), len(geom.Indices)/3, min, max)
	tree, err := engine.NewMesh(geom.Positions, geom.Normals, geom.Indices)
	if err != nil {
		return err
	}
	defer tree.Destroy()
	cube := asset.Cube(1)
	block, err := engine.NewMesh(cube.Positions, cube.Normals, cube.Indices)
	if err != nil {
		return err
	}
	defer block.Destroy()

	scn, err := scene.New(cfg, &r)
	if err != nil {
		return err
	}
	defer scn.Close()
	trees, err := buildForest(scn, tree, block)
	if err != nil {
		return err
	}

	wsi.SetWindowHandler(&app{scn})
	in := wsi.NewInput()
	width, height := win.FramebufferSize()
	engine.Viewport(width, height)
	if err := scn.Resize(width, height); err != nil {
		return err
	}

	near := make([]bool, len(trees))
	clock := wsi.NewClock()
	for !win.ShouldClose() {
		wsi.Dispatch()
		if in.Quit() {
			break
		}
		engine.Clear(skyColor[0], skyColor[1], skyColor[2])
		if err := scn.Tick(clock.Tick(), in); err != nil {
			return err
		}
		for i, t := range trees {
			if n := scn.NearCamera(t, nearDistance); n != near[i] {
				near[i] = n
				if n {
					log.Printf("camera is near tree %d", i)
				}
			}
		}
		win.SwapBuffers()
	}
	log.Printf("%d frames", scn.Frame())
	return nil
}

// buildForest adds the ground and the trees to scn.
// Each tree has a crown one unit above its trunk.
// It returns the trunk nodes.
func buildForest(scn *scene.Scene, tree, block *engine.Mesh) ([]node.Node, error) {
	var ground linear.M4
	ground.Scale(200, 0.02, 200)
	if _, err := scn.Attach(scn.Root(), &ground, block); err != nil {
		return nil, err
	}

	var up linear.M4
	up.Translate(0, 1, 0)
	trunks := make([]node.Node, 0, len(treePositions))
	for _, p := range treePositions {
		var local linear.M4
		local.Translate(p[0], p[1], p[2])
		trunk, err := scn.Attach(scn.Root(), &local, tree)
		if err != nil {
			return nil, err
		}
		if _, err := scn.Attach(trunk, &up, tree); err != nil {
			return nil, err
		}
		trunks = append(trunks, trunk)
	}
	return trunks, nil
}
