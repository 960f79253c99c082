package geom

import (
	"fmt"
	"math"
)

// boundaryEpsilon absorbs rounding on box faces so that corners and
// perimeter points count as inside.
const boundaryEpsilon = 1e-9

// Box is an oriented rectangular footprint. Dimensions are width (X, along
// Right), height (Y, along Up) and depth (Z, along Forward).
type Box struct {
	Center      Vec3     `json:"center"`
	Dimensions  Vec3     `json:"dimensions"`
	Orientation Rotation `json:"orientation"`
}

// NewBox returns a box, panicking on non-positive dimensions.
func NewBox(center, dims Vec3, orientation Rotation) Box {
	if dims.X <= 0 || dims.Y <= 0 || dims.Z <= 0 {
		panic(fmt.Sprintf("geom: box dimensions must be positive, got %v", dims))
	}
	return Box{Center: center, Dimensions: dims, Orientation: orientation}
}

// HalfExtents returns half of each dimension.
func (b Box) HalfExtents() Vec3 {
	return b.Dimensions.Scale(0.5)
}

// HalfDiagonal returns the distance from the center to a corner of the
// full box, the radius of its bounding sphere.
func (b Box) HalfDiagonal() float64 {
	return b.HalfExtents().Length()
}

// MinHalfDimension returns the radius of the largest sphere inscribed in
// the box.
func (b Box) MinHalfDimension() float64 {
	h := b.HalfExtents()
	return math.Min(h.X, math.Min(h.Y, h.Z))
}

// Moved returns a copy of the box centered at p.
func (b Box) Moved(p Vec3) Box {
	b.Center = p
	return b
}

// Rotated returns a copy of the box with orientation r.
func (b Box) Rotated(r Rotation) Box {
	b.Orientation = r
	return b
}

// CirclesOverlap reports whether two ground-plane circles touch or overlap.
func CirclesOverlap(c1 Vec3, r1 float64, c2 Vec3, r2 float64) bool {
	sum := r1 + r2
	return c1.PlanarSqrDistance(c2) <= sum*sum
}

// PointInCircle reports whether p lies within the ground-plane circle.
func PointInCircle(p, c Vec3, r float64) bool {
	return p.PlanarSqrDistance(c) <= r*r
}

// PointInOrientedBox reports whether p lies inside the box, boundary
// included.
func PointInOrientedBox(p Vec3, b Box) bool {
	d := p.Sub(b.Center)
	dist := d.SqrLength()
	if dist > b.HalfExtents().SqrLength()+boundaryEpsilon {
		return false
	}
	// Inside the inscribed sphere: no need to project.
	if inner := b.MinHalfDimension(); dist < inner*inner {
		return true
	}
	h := b.HalfExtents()
	if math.Abs(d.Dot(b.Orientation.Right())) > h.X+boundaryEpsilon {
		return false
	}
	if math.Abs(d.Dot(b.Orientation.Forward())) > h.Z+boundaryEpsilon {
		return false
	}
	if math.Abs(d.Dot(Up)) > h.Y+boundaryEpsilon {
		return false
	}
	return true
}

// OrientedBoxCorners returns the four footprint corners at the center's
// height, in order front-left, front-right, back-right, back-left.
func OrientedBoxCorners(center, dims Vec3, orientation Rotation) [4]Vec3 {
	fw := orientation.Forward().Scale(dims.Z / 2)
	rg := orientation.Right().Scale(dims.X / 2)

	frontRight := fw.Add(rg)
	frontLeft := fw.Sub(rg)

	return [4]Vec3{
		center.Add(frontLeft),
		center.Add(frontRight),
		center.Sub(frontLeft),
		center.Sub(frontRight),
	}
}

// Corners returns the box's footprint corners. See OrientedBoxCorners.
func (b Box) Corners() [4]Vec3 {
	return OrientedBoxCorners(b.Center, b.Dimensions, b.Orientation)
}

// Contains reports whether p lies inside the box.
func (b Box) Contains(p Vec3) bool {
	return PointInOrientedBox(p, b)
}

// PerimeterPoint maps t in [0, 1) to a point on the footprint perimeter,
// walking front-left → front-right → back-right → back-left. It also
// returns the outward normal of the edge the point lies on.
func (b Box) PerimeterPoint(t float64) (Vec3, Vec3) {
	w, d := b.Dimensions.X, b.Dimensions.Z
	fw := b.Orientation.Forward()
	rg := b.Orientation.Right()

	s := math.Mod(t, 1)
	if s < 0 {
		s++
	}
	s *= 2 * (w + d)

	var x, z float64
	var normal Vec3
	switch {
	case s < w:
		x, z = -w/2+s, d/2
		normal = fw
	case s < w+d:
		x, z = w/2, d/2-(s-w)
		normal = rg
	case s < 2*w+d:
		x, z = w/2-(s-w-d), -d/2
		normal = fw.Neg()
	default:
		x, z = -w/2, -d/2+(s-2*w-d)
		normal = rg.Neg()
	}
	return b.Center.Add(rg.Scale(x)).Add(fw.Scale(z)), normal
}
