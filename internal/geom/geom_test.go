package geom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const tolerance = 1e-9

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

func approxVec(a, b Vec3) bool {
	return approxEqual(a.X, b.X, 1e-6) && approxEqual(a.Y, b.Y, 1e-6) && approxEqual(a.Z, b.Z, 1e-6)
}

func TestRotationAxes(t *testing.T) {
	r := Rotation{}
	if !approxVec(r.Forward(), V(0, 0, 1)) {
		t.Errorf("yaw 0 forward = %v, want +Z", r.Forward())
	}
	if !approxVec(r.Right(), V(1, 0, 0)) {
		t.Errorf("yaw 0 right = %v, want +X", r.Right())
	}

	q := Rotation{Yaw: math.Pi / 2}
	if !approxVec(q.Forward(), V(1, 0, 0)) {
		t.Errorf("yaw pi/2 forward = %v, want +X", q.Forward())
	}
	if !approxVec(q.Right(), V(0, 0, -1)) {
		t.Errorf("yaw pi/2 right = %v, want -Z", q.Right())
	}
	if !approxEqual(q.Forward().Dot(q.Right()), 0, tolerance) {
		t.Error("forward and right should be orthogonal")
	}
}

func TestRotationMatrixKeepsUpAndLength(t *testing.T) {
	for _, yaw := range []float64{0, 0.3, math.Pi / 2, 2.5, -1.1} {
		m := Rotation{Yaw: yaw}.Matrix()
		if got := FromMgl(m.Mul3x1(Up.Mgl())); !approxVec(got, Up) {
			t.Errorf("yaw %v moves up to %v", yaw, got)
		}
		v := V(3, -2, 7)
		if got := FromMgl(m.Mul3x1(v.Mgl())).Length(); !approxEqual(got, v.Length(), 1e-9) {
			t.Errorf("yaw %v changes length %v to %v", yaw, v.Length(), got)
		}
	}
}

func TestVecArithmetic(t *testing.T) {
	a, b := V(1, 2, 3), V(-4, 0.5, 2)
	if got := a.Add(b); !approxVec(got, V(-3, 2.5, 5)) {
		t.Errorf("add = %v", got)
	}
	if got := a.Sub(b); !approxVec(got, V(5, 1.5, 1)) {
		t.Errorf("sub = %v", got)
	}
	if got := a.Scale(-2); !approxVec(got, a.Neg().Scale(2)) {
		t.Errorf("scale = %v", got)
	}
	if got := a.Dot(b); !approxEqual(got, 3, tolerance) {
		t.Errorf("dot = %v, want 3", got)
	}
	if got := V(3, 9, 4).PlanarDistance(V(0, -5, 0)); !approxEqual(got, 5, tolerance) {
		t.Errorf("planar distance = %v, want 5", got)
	}
	if got := FromMgl(mgl64.Vec3{1, 2, 3}); got != a {
		t.Errorf("FromMgl = %v, want %v", got, a)
	}
}

func TestLookRotation(t *testing.T) {
	dirs := []Vec3{V(1, 0, 0), V(0, 0, -1), V(-3, 5, 4), V(2, 0, 2)}
	for _, d := range dirs {
		fw := LookRotation(d).Forward()
		want := d.Flat().Scale(1 / d.Flat().Length())
		if !approxVec(fw, want) {
			t.Errorf("LookRotation(%v).Forward() = %v, want %v", d, fw, want)
		}
	}
	if LookRotation(V(0, 1, 0)).Yaw != 0 {
		t.Error("vertical direction should give yaw 0")
	}
}

func TestCirclesOverlap(t *testing.T) {
	tests := []struct {
		name   string
		c1     Vec3
		r1     float64
		c2     Vec3
		r2     float64
		want   bool
	}{
		{"apart", V(0, 0, 0), 5, V(20, 0, 0), 5, false},
		{"touching", V(0, 0, 0), 5, V(10, 0, 0), 5, true},
		{"overlapping", V(0, 0, 0), 5, V(3, 0, 4), 1, true},
		{"same center", V(7, 0, 7), 50, V(7, 0, 7), 50, true},
		{"height ignored", V(0, 0, 0), 1, V(0, 100, 0), 1, true},
	}
	for _, tt := range tests {
		if got := CirclesOverlap(tt.c1, tt.r1, tt.c2, tt.r2); got != tt.want {
			t.Errorf("%s: CirclesOverlap = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestPointInCircle(t *testing.T) {
	c := V(10, 0, 10)
	if !PointInCircle(V(13, 0, 14), c, 5) {
		t.Error("point on the boundary should be inside")
	}
	if PointInCircle(V(16, 0, 10), c, 5) {
		t.Error("point beyond radius should be outside")
	}
}

func TestPointInOrientedBox(t *testing.T) {
	axis := NewBox(V(0, 0, 0), V(8, 12, 4), Rotation{})
	turned := NewBox(V(0, 0, 0), V(8, 12, 4), Rotation{Yaw: math.Pi / 2})

	tests := []struct {
		name string
		box  Box
		p    Vec3
		want bool
	}{
		{"center", axis, V(0, 0, 0), true},
		{"inside along width", axis, V(3.9, 0, 0), true},
		{"outside along depth", axis, V(0, 0, 2.1), false},
		{"edge", axis, V(4, 0, 2), true},
		{"above", axis, V(0, 6.5, 0), false},
		{"turned width now along Z", turned, V(0, 0, 3.9), true},
		{"turned depth now along X", turned, V(2.1, 0, 0), false},
		{"far away", axis, V(100, 0, 100), false},
	}
	for _, tt := range tests {
		if got := PointInOrientedBox(tt.p, tt.box); got != tt.want {
			t.Errorf("%s: PointInOrientedBox(%v) = %v, want %v", tt.name, tt.p, got, tt.want)
		}
	}
}

func TestOrientedBoxCornersOrder(t *testing.T) {
	c := OrientedBoxCorners(V(10, 1, 10), V(4, 2, 6), Rotation{})
	want := [4]Vec3{
		V(8, 1, 13),  // front-left
		V(12, 1, 13), // front-right
		V(12, 1, 7),  // back-right
		V(8, 1, 7),   // back-left
	}
	for i := range c {
		if !approxVec(c[i], want[i]) {
			t.Errorf("corner %d = %v, want %v", i, c[i], want[i])
		}
	}
}

func TestCornersLieOnBoxBoundary(t *testing.T) {
	b := NewBox(V(3, 0, -2), V(8, 12, 8), Rotation{Yaw: 0.7})
	for i, c := range b.Corners() {
		if !b.Contains(c) {
			t.Errorf("corner %d %v should be contained by its own box", i, c)
		}
		nudged := c.Add(c.Sub(b.Center).Scale(0.01))
		if b.Contains(nudged) {
			t.Errorf("corner %d pushed outward should leave the box", i)
		}
	}
}

func TestPerimeterPoint(t *testing.T) {
	b := NewBox(V(0, 0, 0), V(8, 12, 4), Rotation{Yaw: 1.1})
	for i := 0; i < 40; i++ {
		p, n := b.PerimeterPoint(float64(i) / 40)
		if !b.Contains(p) {
			t.Fatalf("perimeter point %v lies outside box", p)
		}
		if b.Contains(p.Add(n.Scale(0.01))) {
			t.Errorf("normal %v at %v should point outward", n, p)
		}
	}
}

func TestNewBoxPanicsOnZeroDimension(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero-size box")
		}
	}()
	NewBox(V(0, 0, 0), V(0, 1, 1), Rotation{})
}
