package scape

// pointEps is the tolerance used to decide that a query point coincides
// with an existing vertex, or lies on an existing edge, during Locate and
// InsertSite. Grid coordinates are integral, so any value well under 1
// is safe.
const pointEps = 1e-3

func rightOf(x Point2, e *Edge) bool { return CcwStrict(e.Dest(), e.Org(), x) }
func leftOf(x Point2, e *Edge) bool  { return CcwStrict(e.Org(), e.Dest(), x) }

// onEdge reports whether x lies on the closed segment [e.Org, e.Dest],
// within pointEps.
func onEdge(x Point2, e *Edge) bool {
	a, b := e.Org(), e.Dest()
	if CcwStrict(a, b, x) || CcwStrict(b, a, x) {
		return false
	}
	minX, maxX := a.X, b.X
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := a.Y, b.Y
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return x.X >= minX-pointEps && x.X <= maxX+pointEps &&
		x.Y >= minY-pointEps && x.Y <= maxY+pointEps
}

// Subdivision is a dynamic planar triangulation of the [0,W-1]x[0,H-1]
// grid rectangle, stored as a quad-edge structure. It owns every QuadEdge
// and Triangle ever created; it grows only by InsertSite and Swap.
//
// Grounded on original_source/quadedge.H's Subdivision (starting edge,
// singly linked list of faces, Locate/InsertSite/OverEdges/OverFaces/vef);
// the linked list becomes a plain slice since Go has no manual teardown to
// coordinate and dead faces are filtered rather than unlinked.
type Subdivision struct {
	startingEdge *Edge
	bounds       AABB
	faces        []*Triangle
	numVerts     int
}

// NewSubdivision bootstraps a subdivision covering the grid rectangle
// [0,w-1]x[0,h-1] as two triangles sharing the diagonal from (0,0) to
// (w-1,h-1).
func NewSubdivision(w, h int32) *Subdivision {
	a := Pt2(0, 0)
	b := Pt2(float32(w-1), 0)
	c := Pt2(float32(w-1), float32(h-1))
	d := Pt2(0, float32(h-1))

	s := &Subdivision{bounds: NewAABB(w, h)}

	ea := MakeEdge()
	ea.setEndpoints(a, b)
	eb := MakeEdge()
	Splice(ea.Sym(), eb)
	eb.setEndpoints(b, c)
	ec := Connect(eb, ea) // c -> a, closes triangle a,b,c

	ed := MakeEdge()
	Splice(eb.Sym(), ed)
	ed.setEndpoints(c, d)
	Connect(ed, ec.Sym()) // d -> a, closes triangle a,c,d

	s.startingEdge = ea
	s.makeFace(ea)
	s.makeFace(ec.Sym())
	s.numVerts = 4

	return s
}

func (s *Subdivision) makeFace(anchor *Edge) *Triangle {
	t := newTriangle(anchor)
	s.faces = append(s.faces, t)
	anchor.setLface(t)
	anchor.Lnext().setLface(t)
	anchor.Lnext().Lnext().setLface(t)
	return t
}

// Locate performs the Guibas-Stolfi walk for the triangle containing x,
// starting from hint (or the subdivision's starting edge if hint is nil).
// The returned edge either has x on it or has the triangle containing x on
// its left. Returns ErrDomainError if x lies outside the grid rectangle.
func (s *Subdivision) Locate(x Point2, hint *Edge) (*Edge, error) {
	if !s.bounds.Contains(x) {
		return nil, ErrDomainError
	}
	e := hint
	if e == nil {
		e = s.startingEdge
	}
	for {
		if x.Approx(e.Org(), pointEps) || x.Approx(e.Dest(), pointEps) || onEdge(x, e) {
			return e, nil
		}
		switch {
		case rightOf(x, e) || e.Lface() == nil:
			e = e.Sym()
		case !rightOf(x, e.Onext()):
			e = e.Onext()
		case !rightOf(x, e.Dprev()):
			e = e.Dprev()
		default:
			return e, nil
		}
	}
}

// InsertSite inserts a new vertex at x. If tri is non-nil its anchor edge
// is used as the Locate hint; otherwise Locate starts from the
// subdivision's starting edge. Returns ErrDuplicateSite without modifying
// the subdivision if x coincides with an existing vertex. A point on a
// perimeter edge splits that edge, and only the triangle inside the
// rectangle is replaced.
//
// If delaunay is true, after the topological insertion the edges opposite
// the new vertex are walked and swapped while they violate the in-circle
// predicate, exactly as a standard incremental Delaunay insertion would;
// when false (purely data-dependent triangulation) this step is skipped
// and the caller is expected to drive swaps itself via Swap.
//
// The returned edge has the new vertex as its origin. destroyed lists the
// triangles removed by the insertion (the caller must evict them from any
// heap); created lists the fresh triangles spanning the new vertex.
func (s *Subdivision) InsertSite(x Point2, tri *Triangle, delaunay bool) (v *Edge, destroyed, created []*Triangle, err error) {
	var hint *Edge
	if tri != nil {
		hint = tri.anchor
	}
	e, err := s.Locate(x, hint)
	if err != nil {
		return nil, nil, nil, err
	}
	if x.Approx(e.Org(), pointEps) || x.Approx(e.Dest(), pointEps) {
		return nil, nil, nil, ErrDuplicateSite
	}

	var perim *Edge
	if onEdge(x, e) && !s.IsInterior(e) {
		// x splits a perimeter edge: keep that edge until the spokes are
		// built, then drop it together with the zero-area face it bounds.
		if e.Lface() == nil {
			e = e.Sym()
		}
		perim = e
	}
	if onEdge(x, e) && perim == nil {
		if lf := e.Lface(); lf != nil && !lf.dead {
			lf.dead = true
			destroyed = append(destroyed, lf)
		}
		if rf := e.Sym().Lface(); rf != nil && !rf.dead {
			rf.dead = true
			destroyed = append(destroyed, rf)
		}
		e = e.Oprev()
		DeleteEdge(e.Onext())
	} else if lf := e.Lface(); lf != nil && !lf.dead {
		lf.dead = true
		destroyed = append(destroyed, lf)
	}

	base := MakeEdge()
	base.setEndpoints(e.Org(), x)
	Splice(base, e)
	start := base
	for {
		base = Connect(e, base.Sym())
		e = base.Oprev()
		if e.Lnext() == start {
			break
		}
	}
	s.numVerts++

	// Walk the spokes radiating into the new vertex (start and each
	// "base" created above) and rebuild the triangle spanning each.
	spoke := start
	for {
		if lf := spoke.Lface(); lf != nil && !lf.dead {
			lf.dead = true
			destroyed = append(destroyed, lf)
		}
		created = append(created, s.makeFace(spoke))
		spoke = spoke.Dnext()
		if spoke == start {
			break
		}
	}

	if delaunay {
		d, c := s.delaunayFixup(start)
		destroyed = append(destroyed, d...)
		created = append(created, c...)
	}
	if perim != nil {
		perim.Lface().dead = true
		perim.Lnext().setLface(nil)
		perim.Lprev().setLface(nil)
		s.startingEdge = perim.Lprev()
		DeleteEdge(perim)
	}
	live := created[:0]
	for _, t := range created {
		if !t.dead {
			live = append(live, t)
		}
	}
	created = live

	return start.Sym(), destroyed, created, nil
}

// delaunayFixup walks the suspect edges opposite the newly inserted vertex
// (whose incoming spokes begin at start) and swaps any that violate the
// in-circle test, propagating to the newly exposed suspects, per the
// classic Guibas-Stolfi incremental insertion algorithm.
func (s *Subdivision) delaunayFixup(start *Edge) (destroyed, created []*Triangle) {
	v := start.Dest()
	e := start.Lprev()
	for {
		t := e.Oprev()
		if rightOf(t.Dest(), e) && inCircle(e.Org(), t.Dest(), e.Dest(), v) {
			d, c := s.Swap(e)
			destroyed = append(destroyed, d...)
			created = append(created, c...)
			e = e.Oprev()
		} else if e.Onext() == start {
			return destroyed, created
		} else {
			e = e.Onext().Lprev()
		}
	}
}

// Swap performs the Guibas-Stolfi edge swap on e and rebuilds the two
// triangles bordering it.
func (s *Subdivision) Swap(e *Edge) (destroyed, created []*Triangle) {
	if lf := e.Lface(); lf != nil && !lf.dead {
		lf.dead = true
		destroyed = append(destroyed, lf)
	}
	if rf := e.Sym().Lface(); rf != nil && !rf.dead {
		rf.dead = true
		destroyed = append(destroyed, rf)
	}

	a := e.Oprev()
	if s.startingEdge == e || s.startingEdge == e.Sym() {
		s.startingEdge = a
	}

	Swap(e)

	created = append(created, s.makeFace(e), s.makeFace(e.Sym()))
	return destroyed, created
}

// IsInterior reports whether e is not part of the outer bounding
// rectangle's perimeter (i.e. both its endpoints are strictly inside, or
// the edge is a diagonal rather than a boundary segment).
func (s *Subdivision) IsInterior(e *Edge) bool {
	return !s.edgeOnPerimeter(e.Org(), e.Dest())
}

// edgeOnPerimeter reports whether the segment a-b runs along one of the
// rectangle's four sides. Two corner vertices can each individually touch
// the boundary while the segment between them is a genuine interior
// diagonal, so the two endpoints must share the same boundary (both on
// the min/max X or min/max Y side), not merely each touch some side of
// their own.
func (s *Subdivision) edgeOnPerimeter(a, b Point2) bool {
	return (a.X == s.bounds.Min.X && b.X == s.bounds.Min.X) ||
		(a.X == s.bounds.Max.X && b.X == s.bounds.Max.X) ||
		(a.Y == s.bounds.Min.Y && b.Y == s.bounds.Min.Y) ||
		(a.Y == s.bounds.Max.Y && b.Y == s.bounds.Max.Y)
}

// Faces returns every live (non-dead) triangle in the subdivision.
func (s *Subdivision) Faces() []*Triangle {
	live := make([]*Triangle, 0, len(s.faces))
	for _, t := range s.faces {
		if !t.dead {
			live = append(live, t)
		}
	}
	return live
}

// OverFaces calls cb once for every live triangle.
func (s *Subdivision) OverFaces(cb func(*Triangle)) {
	for _, t := range s.faces {
		if !t.dead {
			cb(t)
		}
	}
}

// OverEdges calls cb once for one directed edge record per live triangle
// per side, i.e. up to three times per live triangle; a shared edge is
// visited once from each adjacent triangle.
func (s *Subdivision) OverEdges(cb func(*Edge)) {
	s.OverFaces(func(t *Triangle) {
		e := t.anchor
		cb(e)
		cb(e.Lnext())
		cb(e.Lnext().Lnext())
	})
}

// VEF returns the vertex, (undirected) edge and face counts of the live
// subdivision, satisfying Euler's formula v - e + f = 1: the bounding
// rectangle's perimeter is never closed off with an outer face, so the
// count stays one short of the closed-surface v - e + f = 2.
func (s *Subdivision) VEF() (nv, ne, nf int) {
	edgeSet := make(map[*QuadEdge]struct{})
	nf = len(s.Faces())
	s.OverEdges(func(e *Edge) {
		edgeSet[e.Qedge()] = struct{}{}
	})
	return s.numVerts, len(edgeSet), nf
}

// inCircle reports whether d lies strictly inside the circle through a, b
// and c (assumed counterclockwise), the Delaunay in-circle predicate.
func inCircle(a, b, c, d Point2) bool {
	adx, ady := a.X-d.X, a.Y-d.Y
	bdx, bdy := b.X-d.X, b.Y-d.Y
	cdx, cdy := c.X-d.X, c.Y-d.Y

	abdet := adx*bdy - bdx*ady
	bcdet := bdx*cdy - cdx*bdy
	cadet := cdx*ady - adx*cdy

	alift := adx*adx + ady*ady
	blift := bdx*bdx + bdy*bdy
	clift := cdx*cdx + cdy*cdy

	disc := alift*bcdet + blift*cadet + clift*abdet
	return disc > 0
}
