package ornament

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Transform is the per-instance pose handed to a renderer each frame.
// It is rebuilt every frame and not meant to be retained.
type Transform struct {
	Position r3.Vector
	Rotation Euler
	Scale    float64
}

// MatrixSize is the number of float32 values AppendMatrix writes.
const MatrixSize = 16

// Quaternion returns the rotation as a unit quaternion, composing the Euler
// angles in X, Y, Z order.
func (t Transform) Quaternion() quat.Number {
	return eulerQuat(t.Rotation)
}

func eulerQuat(e Euler) quat.Number {
	sx, cx := math.Sincos(e.X / 2)
	sy, cy := math.Sincos(e.Y / 2)
	sz, cz := math.Sincos(e.Z / 2)
	qx := quat.Number{Real: cx, Imag: sx}
	qy := quat.Number{Real: cy, Jmag: sy}
	qz := quat.Number{Real: cz, Kmag: sz}
	return quat.Mul(quat.Mul(qx, qy), qz)
}

// AppendMatrix appends the column-major 4x4 model matrix
// (translate * rotate * scale) to dst and returns the extended slice.
func (t Transform) AppendMatrix(dst []float32) []float32 {
	q := t.Quaternion()
	x, y, z, w := q.Imag, q.Jmag, q.Kmag, q.Real
	x2, y2, z2 := x+x, y+y, z+z
	xx, xy, xz := x*x2, x*y2, x*z2
	yy, yz, zz := y*y2, y*z2, z*z2
	wx, wy, wz := w*x2, w*y2, w*z2
	s := t.Scale
	p := t.Position

	return append(dst,
		float32((1-(yy+zz))*s), float32((xy+wz)*s), float32((xz-wy)*s), 0,
		float32((xy-wz)*s), float32((1-(xx+zz))*s), float32((yz+wx)*s), 0,
		float32((xz+wy)*s), float32((yz-wx)*s), float32((1-(xx+yy))*s), 0,
		float32(p.X), float32(p.Y), float32(p.Z), 1,
	)
}

// Apply transforms a point from instance space into world space.
func (t Transform) Apply(v r3.Vector) r3.Vector {
	q := t.Quaternion()
	pv := quat.Number{Imag: v.X * t.Scale, Jmag: v.Y * t.Scale, Kmag: v.Z * t.Scale}
	r := quat.Mul(quat.Mul(q, pv), quat.Conj(q))
	return r3.Vector{X: r.Imag, Y: r.Jmag, Z: r.Kmag}.Add(t.Position)
}
