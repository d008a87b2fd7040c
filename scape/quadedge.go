package scape

import assert "github.com/arl/assertgo"

// A freshly made Triangle starts with heapIndex set to notInHeap (declared
// in heap.go) until it is pushed onto a heap; see candidateHeap.

// unscanned is the Triangle.err sentinel meaning "never scan-converted".
const unscanned float32 = -1

// QuadEdge is Guibas and Stolfi's quad-edge: a directed edge together with
// its dual (rotations), packed as four edge records that orbit one
// another. Ported from original_source/quadedge.H, itself derived from
// Dani Lischinski's Graphics Gems IV Delaunay triangulator.
type QuadEdge struct {
	e [4]Edge
}

// Edge is one of the four directed edge records composing a QuadEdge:
// e, e.Rot() (its dual, left to right), e.Sym() (its reverse) and
// e.Rot().Sym() (the dual reversed).
type Edge struct {
	num   int
	next  *Edge
	qe    *QuadEdge
	org   *Point2
	lface *Triangle
}

// MakeEdge creates an isolated edge, whose two endpoints are connected to
// nothing else and whose left and right faces are the same, ready to be
// spliced into a subdivision.
func MakeEdge() *Edge {
	qe := &QuadEdge{}
	for i := range qe.e {
		qe.e[i].num = i
		qe.e[i].qe = qe
	}
	qe.e[0].next = &qe.e[0]
	qe.e[1].next = &qe.e[3]
	qe.e[2].next = &qe.e[2]
	qe.e[3].next = &qe.e[1]
	return &qe.e[0]
}

// Qedge returns the QuadEdge this edge record belongs to.
func (e *Edge) Qedge() *QuadEdge { return e.qe }

// Rot returns the dual of e, directed from its right face to its left.
func (e *Edge) Rot() *Edge {
	if e.num < 3 {
		return &e.qe.e[e.num+1]
	}
	return &e.qe.e[e.num-3]
}

// InvRot returns the dual of e, directed from its left face to its right.
func (e *Edge) InvRot() *Edge {
	if e.num > 0 {
		return &e.qe.e[e.num-1]
	}
	return &e.qe.e[e.num+3]
}

// Sym returns the edge from e's destination to its origin.
func (e *Edge) Sym() *Edge {
	if e.num < 2 {
		return &e.qe.e[e.num+2]
	}
	return &e.qe.e[e.num-2]
}

// Onext returns the next ccw edge around e's origin.
func (e *Edge) Onext() *Edge { return e.next }

// Oprev returns the next cw edge around e's origin.
func (e *Edge) Oprev() *Edge { return e.Rot().Onext().Rot() }

// Dnext returns the next ccw edge around e's destination.
func (e *Edge) Dnext() *Edge { return e.Sym().Onext().Sym() }

// Dprev returns the next cw edge around e's destination.
func (e *Edge) Dprev() *Edge { return e.InvRot().Onext().InvRot() }

// Lnext returns the ccw edge around e's left face following e.
func (e *Edge) Lnext() *Edge { return e.InvRot().Onext().Rot() }

// Lprev returns the ccw edge around e's left face preceding e.
func (e *Edge) Lprev() *Edge { return e.Onext().Sym() }

// Rnext returns the ccw edge around e's right face following e.
func (e *Edge) Rnext() *Edge { return e.Rot().Onext().InvRot() }

// Rprev returns the ccw edge around e's right face preceding e.
func (e *Edge) Rprev() *Edge { return e.Sym().Onext() }

// Org returns e's origin point. Panics if e has no primal data attached
// (e.g. a dual edge accessed directly instead of through a primal edge).
func (e *Edge) Org() Point2 {
	assert.True(e.org != nil, "Org called on edge with no endpoint data")
	return *e.org
}

// Dest returns e's destination point.
func (e *Edge) Dest() Point2 { return e.Sym().Org() }

// setEndpoints assigns e's origin and e.Sym()'s origin (e's destination).
func (e *Edge) setEndpoints(org, dest Point2) {
	o, d := org, dest
	e.org = &o
	e.Sym().org = &d
}

// Lface returns the triangle bordering e on its left, or nil if e has not
// been assigned a face yet.
func (e *Edge) Lface() *Triangle { return e.lface }

func (e *Edge) setLface(t *Triangle) { e.lface = t }

// Splice is Guibas and Stolfi's topological swap: it alters the Onext
// rings of a and b, merging their origin rings if they were in different
// rings, or splitting them into two if they were in the same ring. It is
// the sole primitive from which Connect, DeleteEdge and Swap are built.
func Splice(a, b *Edge) {
	alpha := a.Onext().Rot()
	beta := b.Onext().Rot()

	a.next, b.next = b.next, a.next
	alpha.next, beta.next = beta.next, alpha.next
}

// Connect creates a new edge e from a.Dest to b.Org, adding it to the
// subdivision so that a, e and b border the same left face
// (a.Lnext() == e and e.Lnext() == b). It is
// used both to close off a newly inserted site's spokes and to close the
// quadrilateral after a Swap.
func Connect(a, b *Edge) *Edge {
	e := MakeEdge()
	e.setEndpoints(a.Dest(), b.Org())
	Splice(e, a.Lnext())
	Splice(e.Sym(), b)
	return e
}

// DeleteEdge removes e from the subdivision.
func DeleteEdge(e *Edge) {
	Splice(e, e.Oprev())
	Splice(e.Sym(), e.Sym().Oprev())
}

// Swap turns edge e 90 degrees counterclockwise inside its surrounding
// quadrilateral, flipping the diagonal of the two triangles it borders.
// Grounded on spec.md's description: a=e.Oprev, b=e.Sym.Oprev;
// Splice(e,a); Splice(e.Sym,b); Splice(e,a.Lnext); Splice(e.Sym,b.Lnext);
// set endpoints of e to (a.Dest, b.Dest).
func Swap(e *Edge) {
	a := e.Oprev()
	b := e.Sym().Oprev()
	Splice(e, a)
	Splice(e.Sym(), b)
	Splice(e, a.Lnext())
	Splice(e.Sym(), b.Lnext())
	e.setEndpoints(a.Dest(), b.Dest())
}

// Triangle is a face of the subdivision. Every face in this package is a
// triangle, so unlike original_source/quadedge.H's general Triangle (which
// supports arbitrary polygons as the unbounded outer face), point3 is
// always well-defined as anchor.Lnext().Dest.
type Triangle struct {
	anchor *Edge

	heapIndex int     // slot in the simplifier's candidateHeap, or notInHeap
	err       float32 // candidate (worst-sample) error; unscanned until scanned

	candX, candY int32 // proposed insertion point within this triangle

	dead bool // true once replaced by fresh faces after an insertion or swap
}

func newTriangle(anchor *Edge) *Triangle {
	return &Triangle{anchor: anchor, heapIndex: notInHeap, err: unscanned}
}

// Anchor returns one of the triangle's three edges.
func (t *Triangle) Anchor() *Edge { return t.anchor }

// Corner1, Corner2 and Corner3 return the triangle's three corners in the
// order encoded by its anchor edge.
func (t *Triangle) Corner1() Point2 { return t.anchor.Org() }
func (t *Triangle) Corner2() Point2 { return t.anchor.Dest() }
func (t *Triangle) Corner3() Point2 { return t.anchor.Lnext().Dest() }

// Scanned reports whether this triangle's error differs from the
// unscanned sentinel. A scan that finds no unused sample also records an
// error of -1, so such a triangle reports false as well.
func (t *Triangle) Scanned() bool { return t.err != unscanned }

// Err returns the triangle's current candidate (worst-sample) error.
func (t *Triangle) Err() float32 { return t.err }

// Candidate returns the triangle's proposed insertion point.
func (t *Triangle) Candidate() (x, y int32) { return t.candX, t.candY }

// SetCandidate records the triangle's worst-sample point and its error,
// called by scan conversion before the triangle is pushed onto the heap.
func (t *Triangle) SetCandidate(x, y int32, err float32) {
	t.candX, t.candY = x, y
	t.err = err
}

// Dead reports whether this triangle has been superseded by fresh faces
// following an insertion or swap; dead triangles are excluded by Faces and
// OverFaces but may still be referenced by a stale pointer the caller is
// about to discard.
func (t *Triangle) Dead() bool { return t.dead }
