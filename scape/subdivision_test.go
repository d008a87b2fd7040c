package scape

import "testing"

func eulerCheck(t *testing.T, s *Subdivision) {
	t.Helper()
	nv, ne, nf := s.VEF()
	if nv-ne+nf != 1 {
		t.Fatalf("Euler's formula violated: v=%d e=%d f=%d, v-e+f=%d want 1", nv, ne, nf, nv-ne+nf)
	}
}

func TestNewSubdivisionBootstrap(t *testing.T) {
	s := NewSubdivision(4, 4)
	eulerCheck(t, s)
	if len(s.Faces()) != 2 {
		t.Fatalf("got %d faces want 2", len(s.Faces()))
	}
	if s.numVerts != 4 {
		t.Fatalf("got %d verts want 4", s.numVerts)
	}
}

func TestLocateOutOfBounds(t *testing.T) {
	s := NewSubdivision(4, 4)
	_, err := s.Locate(Pt2(100, 100), nil)
	if err != ErrDomainError {
		t.Fatalf("got %v want ErrDomainError", err)
	}
}

func TestLocateFindsContainingTriangle(t *testing.T) {
	s := NewSubdivision(4, 4)
	e, err := s.Locate(Pt2(1, 1), nil)
	check(t, err)
	if e == nil {
		t.Fatal("expected non-nil edge")
	}
}

func TestInsertSiteIncreasesVertsAndFaces(t *testing.T) {
	s := NewSubdivision(4, 4)
	before := len(s.Faces())
	_, destroyed, created, err := s.InsertSite(Pt2(1, 1), nil, false)
	check(t, err)
	if len(destroyed) == 0 || len(created) == 0 {
		t.Fatal("expected at least one destroyed and one created triangle")
	}
	if s.numVerts != 5 {
		t.Fatalf("got %d verts want 5", s.numVerts)
	}
	after := len(s.Faces())
	if after != before-len(destroyed)+len(created) {
		t.Fatalf("face bookkeeping mismatch: before=%d destroyed=%d created=%d after=%d",
			before, len(destroyed), len(created), after)
	}
	eulerCheck(t, s)
}

func TestInsertSiteDuplicateDetected(t *testing.T) {
	s := NewSubdivision(4, 4)
	if _, _, _, err := s.InsertSite(Pt2(0, 0), nil, false); err != ErrDuplicateSite {
		t.Fatalf("got %v want ErrDuplicateSite", err)
	}
}

func TestInsertSiteOnEdgeSplitsBothTriangles(t *testing.T) {
	s := NewSubdivision(4, 4)
	// (0,0)-(3,3) is the diagonal shared by the two bootstrap triangles;
	// a point on it must destroy both.
	_, destroyed, created, err := s.InsertSite(Pt2(1.5, 1.5), nil, false)
	check(t, err)
	if len(destroyed) != 2 {
		t.Fatalf("got %d destroyed want 2 (point lies on the shared diagonal)", len(destroyed))
	}
	if len(created) != 4 {
		t.Fatalf("got %d created want 4", len(created))
	}
	eulerCheck(t, s)
}

func TestSwapPreservesTopology(t *testing.T) {
	s := NewSubdivision(4, 4)
	var diag *Edge
	s.OverEdges(func(e *Edge) {
		if diag == nil && s.IsInterior(e) {
			diag = e
		}
	})
	if diag == nil {
		t.Fatal("expected an interior edge in the bootstrap subdivision")
	}
	destroyed, created := s.Swap(diag)
	if len(destroyed) != 2 || len(created) != 2 {
		t.Fatalf("got destroyed=%d created=%d want 2,2", len(destroyed), len(created))
	}
	eulerCheck(t, s)
	if len(s.Faces()) != 2 {
		t.Fatalf("got %d faces want 2 after swap", len(s.Faces()))
	}
}

func TestIsInteriorFalseOnPerimeter(t *testing.T) {
	s := NewSubdivision(4, 4)
	var perimeter *Edge
	s.OverEdges(func(e *Edge) {
		if perimeter == nil && !s.IsInterior(e) {
			perimeter = e
		}
	})
	if perimeter == nil {
		t.Fatal("expected at least one perimeter edge")
	}
}

func TestMultipleInsertionsMaintainEuler(t *testing.T) {
	s := NewSubdivision(10, 10)
	pts := []Point2{Pt2(2, 2), Pt2(5, 5), Pt2(7, 1), Pt2(1, 8), Pt2(8, 8)}
	for _, p := range pts {
		_, _, _, err := s.InsertSite(p, nil, true)
		check(t, err)
		eulerCheck(t, s)
	}
}
