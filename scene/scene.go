// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package scene provides functionality for creating and
// rendering scene graphs.
//
// A Scene is the simulation context of a running scene:
// it owns the node graph, the camera, the projection,
// the light and the animation clocks, and it advances
// all of them one frame at a time through Tick.
package scene

import (
	"log"

	"github.com/gviegas/krystall/anim"
	"github.com/gviegas/krystall/camera"
	"github.com/gviegas/krystall/config"
	"github.com/gviegas/krystall/linear"
	"github.com/gviegas/krystall/node"
	"github.com/gviegas/krystall/render"
	"github.com/pkg/errors"
)

// ErrClosed means that a Scene was used after Close.
var ErrClosed = errors.New("scene: scene is closed")

// Input supplies the commands consumed by a frame.
type Input interface {
	// Directions returns the movement commands queued
	// since the last frame.
	Directions() []camera.Direction

	// Turn returns the yaw and pitch change requested
	// since the last frame, in units of the camera's
	// turn speed.
	Turn() (dyaw, dpitch float32)

	// CursorDelta returns the cursor motion since the
	// last frame.
	CursorDelta() (dx, dy float32)
}

// Scene defines a scene graph and the state that
// drives its rendering.
type Scene struct {
	graph node.Graph
	root  node.Node

	cam   *camera.Camera
	proj  linear.M4
	fovY  float32
	near  float32
	far   float32
	light render.Light

	anims anim.Set
	done  []string

	r      render.Renderer
	frame  uint64
	closed bool
}

// New creates a scene from cfg that draws through r.
// r must have been initialized.
// The scene starts with a single node, the root, which
// has the identity transform and no drawable.
func New(cfg *config.Config, r render.Renderer) (*Scene, error) {
	if r == nil || !r.Initialized() {
		return nil, render.ErrNotInitialized
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Scene{
		cam:  cfg.NewCamera(),
		fovY: cfg.Projection.FovY * camera.DegToRad,
		near: cfg.Projection.Near,
		far:  cfg.Projection.Far,
		light: render.Light{
			Position: cfg.Light.Position,
			Color:    cfg.Light.Color,
		},
		r: r,
	}
	if err := s.proj.Perspective(s.fovY, cfg.Aspect(), s.near, s.far); err != nil {
		return nil, err
	}
	for _, a := range cfg.Animations {
		s.anims.Add(anim.New(a.Name, a.Duration))
		if a.Autoplay {
			s.anims.Play(a.Name)
		}
	}
	s.root = s.graph.New(nil, nil)
	return s, nil
}

// Root returns the root node.
func (s *Scene) Root() node.Node { return s.root }

// Graph returns the scene's node graph.
func (s *Scene) Graph() *node.Graph { return &s.graph }

// Camera returns the scene's camera.
func (s *Scene) Camera() *camera.Camera { return s.cam }

// Light returns the scene's light.
// Changes take effect on the next frame.
func (s *Scene) Light() *render.Light { return &s.light }

// Projection returns the current projection matrix.
func (s *Scene) Projection() linear.M4 { return s.proj }

// Animations returns the scene's animation clocks.
func (s *Scene) Animations() *anim.Set { return &s.anims }

// Frame returns the number of frames drawn.
func (s *Scene) Frame() uint64 { return s.frame }

// Completed returns the names of the animations that
// completed during the last frame.
// The slice is reused by the next call to Tick.
func (s *Scene) Completed() []string { return s.done }

// Attach creates a node and adds it as the last
// immediate descendant of parent.
func (s *Scene) Attach(parent node.Node, local *linear.M4, d render.Drawable) (node.Node, error) {
	if s.closed {
		return node.Nil, ErrClosed
	}
	n := s.graph.New(local, d)
	if err := s.graph.AddChild(parent, n); err != nil {
		s.graph.Destroy(n)
		return node.Nil, err
	}
	return n, nil
}

// Resize updates the projection to match a new
// framebuffer size.
// The projection is left unchanged on error.
func (s *Scene) Resize(width, height int) error {
	if height <= 0 {
		return errors.Wrapf(linear.ErrInvalidProjection, "framebuffer %dx%d", width, height)
	}
	return s.proj.Perspective(s.fovY, float32(width)/float32(height), s.near, s.far)
}

// Tick runs one frame: it applies the queued input to
// the camera, advances the animations by dt seconds
// and draws the whole graph.
// in may be nil.
func (s *Scene) Tick(dt float32, in Input) error {
	if s.closed {
		return ErrClosed
	}
	if in != nil {
		for _, d := range in.Directions() {
			s.cam.Move(d)
		}
		s.cam.Turn(in.Turn())
		s.cam.Look(in.CursorDelta())
	}

	s.done = s.anims.Advance(dt, s.done[:0])
	for _, name := range s.done {
		log.Printf("scene: animation %q completed", name)
	}

	view, err := s.cam.View()
	if err != nil {
		return err
	}
	var id linear.M4
	id.I()
	if err := s.graph.Draw(s.r, s.root, &id, &view, &s.proj, &s.light); err != nil {
		return errors.Wrapf(err, "scene: frame %d", s.frame)
	}
	s.frame++
	return nil
}

// Colliding reports whether the world positions of
// a and b are within threshold of each other.
func (s *Scene) Colliding(a, b node.Node, threshold float32) bool {
	return s.graph.Colliding(a, b, threshold)
}

// NearCamera reports whether the world position of n
// is within threshold of the camera's position.
func (s *Scene) NearCamera(n node.Node, threshold float32) bool {
	var cw linear.M4
	p := s.cam.Position
	cw.Translate(p[0], p[1], p[2])
	w := s.graph.World(n)
	return node.Colliding(&w, &cw, threshold)
}

// Close destroys every node in the scene.
// Drawables are not owned by the scene and must be
// released by the caller.
func (s *Scene) Close() {
	if s.closed {
		return
	}
	s.graph.Destroy(s.root)
	s.root = node.Nil
	s.closed = true
}
