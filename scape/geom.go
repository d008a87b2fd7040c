// Package scape implements a greedy-insertion triangulated irregular
// network (TIN) simplifier for regularly sampled height fields.
package scape

import (
	"github.com/arl/gogeo/f32/d3"
	"github.com/arl/math32"
)

// Point2 is a 2D point with float32 coordinates. Vertices of the
// subdivision always reference a grid sample, so their coordinates are
// integral values, but scan conversion also needs real-valued points
// (supersampled positions, swap-test midpoints), hence float32.
type Point2 struct {
	X, Y float32
}

// Pt2 returns the Point2 (x, y).
func Pt2(x, y float32) Point2 { return Point2{X: x, Y: y} }

// Approx reports whether p and q are within epsilon of each other on both
// axes; used by InsertSite to detect an attempt to insert at an existing
// vertex.
func (p Point2) Approx(q Point2, eps float32) bool {
	return math32.Abs(p.X-q.X) < eps && math32.Abs(p.Y-q.Y) < eps
}

// Vec3 is a 3D point or vector, aliasing the pack's own d3.Vec3 so that
// geometry built here composes directly with it (bounding boxes, candidate
// positions handed to a renderer).
type Vec3 = d3.Vec3

// NewVec3 returns a new Vec3 (x, y, z).
func NewVec3(x, y, z float32) Vec3 {
	return d3.NewVec3XYZ(x, y, z)
}

// TriArea returns twice the signed area of the oriented triangle (a, b, c):
// positive iff a, b, c are in counterclockwise order.
func TriArea(a, b, c Point2) float32 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// CcwStrict reports whether x lies strictly to the left of the directed
// line from a to b.
func CcwStrict(a, b, x Point2) bool {
	return TriArea(a, b, x) > 0
}

// Plane is the plane z = a*x + b*y + c, used to linearly interpolate an
// attribute (elevation, or a color channel) across a triangle.
type Plane struct {
	A, B, C float32
}

// FitPlane solves a*x + b*y + c = z at three points p, q, r (Cramer's
// rule). When the xy-projection of p, q, r is degenerate (signed area
// exactly zero), the plane degenerates to the flat average of the three
// z-values.
func FitPlane(p, q, r Vec3) Plane {
	area2 := TriArea(Pt2(p.X(), p.Y()), Pt2(q.X(), q.Y()), Pt2(r.X(), r.Y()))
	if area2 == 0 {
		return Plane{A: 0, B: 0, C: (p.Z() + q.Z() + r.Z()) / 3}
	}

	x1, y1, z1 := p.X(), p.Y(), p.Z()
	x2, y2, z2 := q.X(), q.Y(), q.Z()
	x3, y3, z3 := r.X(), r.Y(), r.Z()

	// a*x1+b*y1+c=z1, a*x2+b*y2+c=z2, a*x3+b*y3+c=z3
	denom := x1*(y2-y3) - y1*(x2-x3) + (x2*y3 - x3*y2)
	if denom == 0 {
		return Plane{A: 0, B: 0, C: (z1 + z2 + z3) / 3}
	}
	a := (z1*(y2-y3) - y1*(z2-z3) + (z2*y3 - z3*y2)) / denom
	b := (x1*(z2-z3) - z1*(x2-x3) + (x2*z3 - x3*z2)) / denom
	c := (x1*(y2*z3-y3*z2) - y1*(x2*z3-x3*z2) + z1*(x2*y3-x3*y2)) / denom
	return Plane{A: a, B: b, C: c}
}

// At evaluates the plane at real coordinates (x, y).
func (p Plane) At(x, y float32) float32 {
	return p.A*x + p.B*y + p.C
}

// AtInt evaluates the plane at integer grid coordinates (x, y).
func (p Plane) AtInt(x, y int32) float32 {
	return p.A*float32(x) + p.B*float32(y) + p.C
}

// Scaled returns the plane equation adjusted to compensate for its input
// coordinates having been multiplied by factor (used by supersampling,
// which evaluates the plane on a finer grid but must produce the same
// surface).
func (p Plane) Scaled(factor float32) Plane {
	return Plane{A: p.A / factor, B: p.B / factor, C: p.C}
}

// AABB is an axis-aligned bounding box over the 2D grid domain.
type AABB struct {
	Min, Max Point2
}

// NewAABB returns the bounding box [0,w-1]x[0,h-1].
func NewAABB(w, h int32) AABB {
	return AABB{Min: Pt2(0, 0), Max: Pt2(float32(w-1), float32(h-1))}
}

// Contains reports whether p lies within the box, inclusive of its edges.
func (b AABB) Contains(p Point2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// TriDiameter returns the diameter (longest edge length) of the triangle
// (a, b, c) in the xy-plane. Used by the shape-quality metric
// quality = area/diameter^2.
func TriDiameter(a, b, c Point2) float32 {
	d := func(p, q Point2) float32 {
		dx, dy := p.X-q.X, p.Y-q.Y
		return math32.Sqrt(dx*dx + dy*dy)
	}
	ab, bc, ca := d(a, b), d(b, c), d(c, a)
	m := ab
	if bc > m {
		m = bc
	}
	if ca > m {
		m = ca
	}
	return m
}

// TriQuality returns area/diameter^2 for the triangle (a, b, c): a shape
// metric that is large for well-formed triangles and 0 for degenerate
// slivers.
func TriQuality(a, b, c Point2) float32 {
	area := math32.Abs(TriArea(a, b, c)) / 2
	diam := TriDiameter(a, b, c)
	if diam <= 0 {
		return 0
	}
	return area / (diam * diam)
}

func divideSafe(a, b float32) float32 {
	if b != 0 {
		return a / b
	}
	return 0
}
