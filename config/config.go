// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package config loads the settings of a scene from YAML.
package config

import (
	"bytes"
	"io"
	"math"
	"os"

	"github.com/gviegas/krystall/camera"
	"github.com/gviegas/krystall/linear"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalid means that a configuration has values
// that cannot be used.
var ErrInvalid = errors.New("config: invalid configuration")

// Window configures the window.
type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

// Camera configures the initial camera state.
// Angles are in degrees.
type Camera struct {
	Position    linear.V3 `yaml:"position,flow"`
	Yaw         float32   `yaml:"yaw"`
	Pitch       float32   `yaml:"pitch"`
	MoveSpeed   float32   `yaml:"moveSpeed"`
	TurnSpeed   float32   `yaml:"turnSpeed"`
	Sensitivity float32   `yaml:"sensitivity"`
}

// Projection configures the perspective projection.
// FovY is in degrees.
type Projection struct {
	FovY float32 `yaml:"fovY"`
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
}

// Light configures the scene's light.
type Light struct {
	Position linear.V3 `yaml:"position,flow"`
	Color    linear.V3 `yaml:"color,flow"`
}

// Assets names the files to load.
// Empty paths select the built-in assets.
type Assets struct {
	Mesh           string `yaml:"mesh"`
	VertexShader   string `yaml:"vertexShader"`
	FragmentShader string `yaml:"fragmentShader"`
}

// Animation configures an animation clock.
type Animation struct {
	Name     string  `yaml:"name"`
	Duration float32 `yaml:"duration"`
	Autoplay bool    `yaml:"autoplay"`
}

// Config is the configuration of a scene.
type Config struct {
	Window     Window      `yaml:"window"`
	Camera     Camera      `yaml:"camera"`
	Projection Projection  `yaml:"projection"`
	Light      Light       `yaml:"light"`
	Assets     Assets      `yaml:"assets"`
	Animations []Animation `yaml:"animations"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Window: Window{
			Width:  1024,
			Height: 768,
			Title:  "KrystallEngine",
			VSync:  true,
		},
		Camera: Camera{
			Position:    linear.V3{0, 1.5, 3},
			Yaw:         camera.DefaultYaw,
			Pitch:       camera.DefaultPitch,
			MoveSpeed:   camera.DefaultMoveSpeed,
			TurnSpeed:   camera.DefaultTurnSpeed,
			Sensitivity: camera.DefaultSensitivity,
		},
		Projection: Projection{
			FovY: 45,
			Near: 0.1,
			Far:  100,
		},
		Light: Light{
			Position: linear.V3{1, 5, 1},
			Color:    linear.V3{1, 1, 1},
		},
	}
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "config")
	}
	c, err := Parse(b)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return c, nil
}

// Parse decodes b over the default configuration and
// validates the result.
// Unknown fields are rejected.
func Parse(b []byte) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	// An empty document leaves the defaults in place.
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "config: decode")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that c can be used to create a scene.
func (c *Config) Validate() error {
	if w := c.Window; w.Width <= 0 || w.Height <= 0 {
		return errors.Wrapf(ErrInvalid, "window size %dx%d", w.Width, w.Height)
	}
	switch p := c.Projection; {
	case p.FovY <= 0 || p.FovY >= 180:
		return errors.Wrapf(ErrInvalid, "fovY %v", p.FovY)
	case p.Near <= 0 || p.Far <= p.Near:
		return errors.Wrapf(ErrInvalid, "near %v, far %v", p.Near, p.Far)
	}
	switch cam := c.Camera; {
	case cam.MoveSpeed < 0 || cam.TurnSpeed < 0 || cam.Sensitivity < 0:
		return errors.Wrap(ErrInvalid, "negative camera speed")
	case math.Abs(float64(cam.Pitch)) > camera.MaxPitch:
		return errors.Wrapf(ErrInvalid, "pitch %v", cam.Pitch)
	}
	seen := make(map[string]bool, len(c.Animations))
	for _, a := range c.Animations {
		switch {
		case a.Name == "":
			return errors.Wrap(ErrInvalid, "unnamed animation")
		case seen[a.Name]:
			return errors.Wrapf(ErrInvalid, "duplicate animation %q", a.Name)
		case a.Duration < 0:
			return errors.Wrapf(ErrInvalid, "animation %q duration %v", a.Name, a.Duration)
		}
		seen[a.Name] = true
	}
	return nil
}

// NewCamera creates a camera from c.Camera.
func (c *Config) NewCamera() *camera.Camera {
	return &camera.Camera{
		Position:    c.Camera.Position,
		Yaw:         c.Camera.Yaw,
		Pitch:       c.Camera.Pitch,
		MoveSpeed:   c.Camera.MoveSpeed,
		TurnSpeed:   c.Camera.TurnSpeed,
		Sensitivity: c.Camera.Sensitivity,
	}
}

// Aspect returns the window's aspect ratio.
func (c *Config) Aspect() float32 {
	return float32(c.Window.Width) / float32(c.Window.Height)
}
