// Package geom provides the vector, rotation and box primitives used for
// region and structure placement.
// The ground plane is XZ; Y is up.
package geom

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a point or direction in chunk space. Arithmetic is delegated to
// mgl64; the named fields keep JSON output and call sites readable.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// V is a shorthand constructor for Vec3.
func V(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// FromMgl converts an mgl64 vector.
func FromMgl(m mgl64.Vec3) Vec3 {
	return Vec3{X: m[0], Y: m[1], Z: m[2]}
}

// Mgl returns v as an mgl64 vector.
func (v Vec3) Mgl() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// Up is the world up axis.
var Up = Vec3{0, 1, 0}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return FromMgl(v.Mgl().Add(w.Mgl()))
}

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return FromMgl(v.Mgl().Sub(w.Mgl()))
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return FromMgl(v.Mgl().Mul(s))
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 {
	return v.Scale(-1)
}

// Dot returns the dot product of v and w.
func (v Vec3) Dot(w Vec3) float64 {
	return v.Mgl().Dot(w.Mgl())
}

// SqrLength returns the squared Euclidean length.
func (v Vec3) SqrLength() float64 {
	return v.Dot(v)
}

// Length returns the Euclidean length.
func (v Vec3) Length() float64 {
	return v.Mgl().Len()
}

// Flat drops the vertical component.
func (v Vec3) Flat() Vec3 {
	return Vec3{v.X, 0, v.Z}
}

// WithY returns v with its vertical component replaced.
func (v Vec3) WithY(y float64) Vec3 {
	return Vec3{v.X, y, v.Z}
}

// PlanarSqrDistance returns the squared XZ distance between v and w.
func (v Vec3) PlanarSqrDistance(w Vec3) float64 {
	return v.Sub(w).Flat().SqrLength()
}

// PlanarDistance returns the XZ distance between v and w.
func (v Vec3) PlanarDistance(w Vec3) float64 {
	return v.Sub(w).Flat().Length()
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}

// Rotation is an orientation about the up axis. Yaw is in radians; yaw 0
// faces +Z with +X to the right.
type Rotation struct {
	Yaw float64 `json:"yaw"`
}

// Matrix returns the rotation as a 3x3 matrix about +Y.
func (r Rotation) Matrix() mgl64.Mat3 {
	return mgl64.Rotate3DY(r.Yaw)
}

// Forward returns the unit forward axis: +Z rotated by the yaw.
func (r Rotation) Forward() Vec3 {
	return FromMgl(r.Matrix().Mul3x1(mgl64.Vec3{0, 0, 1}))
}

// Right returns the unit right axis: +X rotated by the yaw.
func (r Rotation) Right() Vec3 {
	return FromMgl(r.Matrix().Mul3x1(mgl64.Vec3{1, 0, 0}))
}

// LookRotation returns the rotation whose forward axis points along dir
// projected on the ground plane. A vertical or zero dir gives yaw 0.
func LookRotation(dir Vec3) Rotation {
	if dir.X == 0 && dir.Z == 0 {
		return Rotation{}
	}
	return Rotation{Yaw: math.Atan2(dir.X, dir.Z)}
}

// PlanarOffset returns the point at the given angle and distance from
// center on the ground plane. Angle 0 is +X.
func PlanarOffset(center Vec3, angle, dist float64) Vec3 {
	return center.Add(V(math.Cos(angle), 0, math.Sin(angle)).Scale(dist))
}
