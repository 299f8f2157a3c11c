// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"math"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidProjection means that the parameters given
	// to M4.Perspective do not describe a valid frustum.
	ErrInvalidProjection = errors.New("linear: invalid projection")

	// ErrDegenerateView means that the parameters given
	// to M4.LookAt do not describe a valid orientation.
	ErrDegenerateView = errors.New("linear: degenerate view")
)

// M4 is a column-major 4x4 matrix of float32.
// The element at column c and row r is m[c][r].
type M4 [4]V4

// I makes m an identity matrix.
func (m *M4) I() { *m = M4{{1}, {0, 1}, {0, 0, 1}, {0, 0, 0, 1}} }

// Mul sets m to contain l ⋅ r.
// m may alias either operand.
func (m *M4) Mul(l, r *M4) {
	var n M4
	for i := range n {
		for j := range n {
			for k := range n {
				n[i][j] += l[k][j] * r[i][k]
			}
		}
	}
	*m = n
}

// Translate sets m to contain a translation by x, y, z.
func (m *M4) Translate(x, y, z float32) {
	m.I()
	m[3] = V4{x, y, z, 1}
}

// RotateY sets m to contain a right-handed rotation
// of rad radians about the y axis.
func (m *M4) RotateY(rad float32) {
	s, c := math.Sincos(float64(rad))
	*m = M4{
		{float32(c), 0, float32(-s)},
		{0, 1},
		{float32(s), 0, float32(c)},
		{0, 0, 0, 1},
	}
}

// Scale sets m to contain a scale by x, y, z.
func (m *M4) Scale(x, y, z float32) {
	*m = M4{{x}, {0, y}, {0, 0, z}, {0, 0, 0, 1}}
}

// Perspective sets m to contain a perspective projection.
// fovY is the vertical field of view in radians and
// aspect is the ratio of width to height.
// View-space points at z = -near map to clip-space
// depth -1 and points at z = -far map to 1 (after the
// division by w = -z).
// m is not modified if an error is returned.
func (m *M4) Perspective(fovY, aspect, near, far float32) error {
	tan := math.Tan(float64(fovY) / 2)
	switch {
	case aspect == 0 || tan == 0 || math.IsInf(tan, 0) || math.IsNaN(tan):
		return errors.Wrapf(ErrInvalidProjection, "fovY %v, aspect %v", fovY, aspect)
	case near <= 0 || far <= 0 || near == far:
		return errors.Wrapf(ErrInvalidProjection, "near %v, far %v", near, far)
	}
	nf := 1 / (near - far)
	*m = M4{
		{float32(1 / (float64(aspect) * tan))},
		{1: float32(1 / tan)},
		{2: (far + near) * nf, 3: -1},
		{2: 2 * far * near * nf},
	}
	return nil
}

// LookAt sets m to contain a right-handed view transform
// of an eye located at eye looking towards center.
// up must not be parallel to the view direction.
// m is not modified if an error is returned.
func (m *M4) LookAt(eye, center, up *V3) error {
	var f, s, u V3
	f.Sub(center, eye)
	if f.Len() == 0 {
		return errors.Wrap(ErrDegenerateView, "eye and center coincide")
	}
	f.Norm(&f)
	s.Cross(&f, up)
	if s.Len() < 1e-6 {
		return errors.Wrap(ErrDegenerateView, "view direction parallel to up")
	}
	s.Norm(&s)
	u.Cross(&s, &f)
	*m = M4{
		{s[0], u[0], -f[0]},
		{s[1], u[1], -f[1]},
		{s[2], u[2], -f[2]},
		{-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1},
	}
	return nil
}

// Translation returns the translation column of m.
func (m *M4) Translation() V3 { return V3{m[3][0], m[3][1], m[3][2]} }

// Invert sets m to contain the inverse of n.
// n must be invertible.
func (m *M4) Invert(n *M4) {
	s0 := n[0][0]*n[1][1] - n[0][1]*n[1][0]
	s1 := n[0][0]*n[1][2] - n[0][2]*n[1][0]
	s2 := n[0][0]*n[1][3] - n[0][3]*n[1][0]
	s3 := n[0][1]*n[1][2] - n[0][2]*n[1][1]
	s4 := n[0][1]*n[1][3] - n[0][3]*n[1][1]
	s5 := n[0][2]*n[1][3] - n[0][3]*n[1][2]
	c0 := n[2][0]*n[3][1] - n[2][1]*n[3][0]
	c1 := n[2][0]*n[3][2] - n[2][2]*n[3][0]
	c2 := n[2][0]*n[3][3] - n[2][3]*n[3][0]
	c3 := n[2][1]*n[3][2] - n[2][2]*n[3][1]
	c4 := n[2][1]*n[3][3] - n[2][3]*n[3][1]
	c5 := n[2][2]*n[3][3] - n[2][3]*n[3][2]
	idet := 1 / (s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0)
	var r M4
	r[0][0] = (c5*n[1][1] - c4*n[1][2] + c3*n[1][3]) * idet
	r[0][1] = (-c5*n[0][1] + c4*n[0][2] - c3*n[0][3]) * idet
	r[0][2] = (s5*n[3][1] - s4*n[3][2] + s3*n[3][3]) * idet
	r[0][3] = (-s5*n[2][1] + s4*n[2][2] - s3*n[2][3]) * idet
	r[1][0] = (-c5*n[1][0] + c2*n[1][2] - c1*n[1][3]) * idet
	r[1][1] = (c5*n[0][0] - c2*n[0][2] + c1*n[0][3]) * idet
	r[1][2] = (-s5*n[3][0] + s2*n[3][2] - s1*n[3][3]) * idet
	r[1][3] = (s5*n[2][0] - s2*n[2][2] + s1*n[2][3]) * idet
	r[2][0] = (c4*n[1][0] - c2*n[1][1] + c0*n[1][3]) * idet
	r[2][1] = (-c4*n[0][0] + c2*n[0][1] - c0*n[0][3]) * idet
	r[2][2] = (s4*n[3][0] - s2*n[3][1] + s0*n[3][3]) * idet
	r[2][3] = (-s4*n[2][0] + s2*n[2][1] - s0*n[2][3]) * idet
	r[3][0] = (-c3*n[1][0] + c1*n[1][1] - c0*n[1][2]) * idet
	r[3][1] = (c3*n[0][0] - c1*n[0][1] + c0*n[0][2]) * idet
	r[3][2] = (-s3*n[3][0] + s1*n[3][1] - s0*n[3][2]) * idet
	r[3][3] = (s3*n[2][0] - s1*n[2][1] + s0*n[2][2]) * idet
	*m = r
}
