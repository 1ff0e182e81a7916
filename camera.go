package ornament

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// yawAnim holds an active orbit-to tween.
type yawAnim struct {
	tween *gween.Tween
}

// Camera is a perspective camera orbiting the ornament's vertical axis.
// Renderers use Project to map instance positions onto the screen.
type Camera struct {
	// Eye is the camera position before orbiting.
	Eye r3.Vector
	// Target is the point the camera looks at.
	Target r3.Vector
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Near is the closest depth that projects.
	Near float64
	// Yaw is the orbit angle in radians around the Y axis.
	Yaw float64
	// AutoRotateSpeed is the idle orbit rate in radians per second, applied
	// only while auto-rotation is allowed (pointer mode).
	AutoRotateSpeed float64
	// WorldOffset is added to every projected point; it lowers the ornament
	// so its middle sits near the look-at point.
	WorldOffset r3.Vector

	orbit *yawAnim
}

// NewCamera returns the default camera: eye at (0, 5, 20) looking at the
// origin with a 35° field of view.
func NewCamera() *Camera {
	return &Camera{
		Eye:             r3.Vector{Y: 5, Z: 20},
		FOV:             35,
		Near:            0.1,
		AutoRotateSpeed: 0.05,
		WorldOffset:     r3.Vector{Y: -5},
	}
}

// OrbitTo animates Yaw to yaw over duration seconds. Auto-rotation pauses
// while the animation runs.
func (c *Camera) OrbitTo(yaw float64, duration float32, easeFn ease.TweenFunc) {
	c.orbit = &yawAnim{tween: gween.New(float32(c.Yaw), float32(yaw), duration, easeFn)}
}

func (c *Camera) update(dt float64, autoRotate bool) {
	if c.orbit != nil {
		v, done := c.orbit.tween.Update(float32(dt))
		c.Yaw = float64(v)
		if done {
			c.orbit = nil
		}
		return
	}
	if autoRotate {
		c.Yaw = math.Mod(c.Yaw+c.AutoRotateSpeed*dt, 2*math.Pi)
	}
}

// Project maps a world point onto a w by h screen. depth is the distance
// along the view direction; ok is false for points at or behind Near.
func (c *Camera) Project(p r3.Vector, w, h float64) (sx, sy, depth float64, ok bool) {
	p = p.Add(c.WorldOffset)

	// Orbiting the camera by Yaw is rotating the world by -Yaw.
	sin, cos := math.Sincos(-c.Yaw)
	p = r3.Vector{X: cos*p.X + sin*p.Z, Y: p.Y, Z: -sin*p.X + cos*p.Z}

	forward := c.Target.Sub(c.Eye).Normalize()
	right := forward.Cross(r3.Vector{Y: 1}).Normalize()
	up := right.Cross(forward)

	v := p.Sub(c.Eye)
	depth = v.Dot(forward)
	if depth <= c.Near {
		return 0, 0, depth, false
	}
	focal := (h / 2) / math.Tan(c.FOV*math.Pi/360)
	sx = w/2 + v.Dot(right)*focal/depth
	sy = h/2 - v.Dot(up)*focal/depth
	return sx, sy, depth, true
}
