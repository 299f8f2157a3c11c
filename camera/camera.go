// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package camera implements a first-person camera.
//
// A Camera can be driven in two ways: by orientation
// (Turn and Look change yaw/pitch, and View derives a
// view matrix from them) and by discrete steps (Move
// offsets the position along the ground plane).
package camera

import (
	"math"

	"github.com/gviegas/krystall/linear"
)

// DegToRad converts degrees to radians.
// Yaw and pitch are stored in degrees; every
// trigonometric function is applied to the angle
// times DegToRad.
const DegToRad = math.Pi / 180

// MaxPitch is the largest magnitude of pitch, in
// degrees. Pitch is clamped to [-MaxPitch, MaxPitch]
// so the view direction never becomes parallel to
// the world's up vector.
const MaxPitch = 89

// Default camera parameters.
const (
	DefaultYaw         = -90
	DefaultPitch       = 0
	DefaultMoveSpeed   = 0.1
	DefaultTurnSpeed   = 2
	DefaultSensitivity = 0.1
)

// Up is the world's up vector.
var Up = linear.V3{0, 1, 0}

// Direction is a discrete movement command.
type Direction int

// Movement directions.
const (
	Forward Direction = iota
	Backward
	Left
	Right
	Ascend
	Descend
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Left:
		return "left"
	case Right:
		return "right"
	case Ascend:
		return "ascend"
	case Descend:
		return "descend"
	}
	return "unknown"
}

// Camera is a first-person camera.
type Camera struct {
	Position linear.V3

	// Orientation, in degrees.
	// A yaw of -90 looks down the -z axis.
	Yaw   float32
	Pitch float32

	// Distance covered by a call to Move.
	MoveSpeed float32
	// Degrees turned per unit given to Turn.
	TurnSpeed float32
	// Degrees turned per unit of cursor motion
	// given to Look.
	Sensitivity float32
}

// New creates a camera at (0, 1.5, 3) looking down
// the -z axis.
func New() *Camera {
	return &Camera{
		Position:    linear.V3{0, 1.5, 3},
		Yaw:         DefaultYaw,
		Pitch:       DefaultPitch,
		MoveSpeed:   DefaultMoveSpeed,
		TurnSpeed:   DefaultTurnSpeed,
		Sensitivity: DefaultSensitivity,
	}
}

func sincos(deg float32) (s, c float32) {
	s64, c64 := math.Sincos(float64(deg) * DegToRad)
	return float32(s64), float32(c64)
}

// Forward returns the normalized view direction.
func (c *Camera) Forward() linear.V3 {
	sy, cy := sincos(c.Yaw)
	sp, cp := sincos(c.Pitch)
	f := linear.V3{cp * cy, sp, cp * sy}
	f.Norm(&f)
	return f
}

// Right returns the normalized right vector on the
// ground plane. It ignores pitch.
func (c *Camera) Right() linear.V3 {
	sy, cy := sincos(c.Yaw)
	return linear.V3{-sy, 0, cy}
}

// View returns the view matrix of c.
// It fails with linear.ErrDegenerateView if the view
// direction is parallel to Up, which cannot happen
// unless Pitch was set outside [-MaxPitch, MaxPitch].
func (c *Camera) View() (m linear.M4, err error) {
	f := c.Forward()
	var center linear.V3
	center.Add(&c.Position, &f)
	err = m.LookAt(&c.Position, &center, &Up)
	return
}

// World returns the inverse of the view matrix, that
// is, the transform that places the camera in world
// space.
func (c *Camera) World() (m linear.M4, err error) {
	v, err := c.View()
	if err != nil {
		return
	}
	m.Invert(&v)
	return
}

// Move moves the camera one step of MoveSpeed in the
// given direction.
// Forward/backward/left/right use the yaw only, so the
// camera stays on its current height; ascend/descend
// move along Up. Unknown directions are ignored.
func (c *Camera) Move(d Direction) {
	sy, cy := sincos(c.Yaw)
	var step linear.V3
	switch d {
	case Forward:
		step = linear.V3{cy, 0, sy}
	case Backward:
		step = linear.V3{-cy, 0, -sy}
	case Left:
		step = linear.V3{sy, 0, -cy}
	case Right:
		step = linear.V3{-sy, 0, cy}
	case Ascend:
		step = Up
	case Descend:
		step = linear.V3{0, -1, 0}
	default:
		return
	}
	step.Scale(c.MoveSpeed, &step)
	c.Position.Add(&c.Position, &step)
}

// Turn changes yaw and pitch by dyaw and dpitch
// times TurnSpeed.
func (c *Camera) Turn(dyaw, dpitch float32) {
	c.Yaw += dyaw * c.TurnSpeed
	c.SetPitch(c.Pitch + dpitch*c.TurnSpeed)
}

// Look changes yaw and pitch from a cursor motion of
// dx, dy (screen coordinates, y pointing down) scaled
// by Sensitivity.
func (c *Camera) Look(dx, dy float32) {
	c.Yaw += dx * c.Sensitivity
	c.SetPitch(c.Pitch - dy*c.Sensitivity)
}

// SetPitch sets the pitch, clamped to
// [-MaxPitch, MaxPitch].
func (c *Camera) SetPitch(deg float32) {
	c.Pitch = max(-MaxPitch, min(deg, MaxPitch))
}
