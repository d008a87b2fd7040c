package scape

import "testing"

func TestEdgeRotationIdentities(t *testing.T) {
	e := MakeEdge()
	if e.Rot().Rot().Rot().Rot() != e {
		t.Fatal("Rot applied four times must return to e")
	}
	if e.Sym().Sym() != e {
		t.Fatal("Sym applied twice must return to e")
	}
	if e.Rot().Rot() != e.Sym() {
		t.Fatal("Rot applied twice must equal Sym")
	}
	if e.InvRot() != e.Rot().Rot().Rot() {
		t.Fatal("InvRot must equal Rot applied three times")
	}
}

func TestMakeEdgeSelfLoop(t *testing.T) {
	e := MakeEdge()
	p, q := Pt2(0, 0), Pt2(1, 1)
	e.setEndpoints(p, q)
	if e.Org() != p || e.Dest() != q {
		t.Fatalf("got org=%v dest=%v want %v %v", e.Org(), e.Dest(), p, q)
	}
	if e.Onext() != e {
		t.Fatal("a freshly made edge's Onext ring must contain only itself")
	}
}

func TestSpliceMergesAndSplitsRings(t *testing.T) {
	a := MakeEdge()
	a.setEndpoints(Pt2(0, 0), Pt2(1, 0))
	b := MakeEdge()
	b.setEndpoints(Pt2(0, 0), Pt2(0, 1))

	// Before splicing, each edge is alone in its own Onext ring.
	if a.Onext() != a || b.Onext() != b {
		t.Fatal("unspliced edges must each be alone in their Onext ring")
	}

	Splice(a, b)
	if a.Onext() == a {
		t.Fatal("after Splice, a and b must share a ring")
	}
	// The ring a -> ... -> a must include b.
	found := false
	for e := a.Onext(); e != a; e = e.Onext() {
		if e == b {
			found = true
			break
		}
	}
	if !found {
		t.Fatal("b must be reachable from a via Onext after Splice")
	}

	// Splicing the same pair again must split them back apart.
	Splice(a, b)
	if a.Onext() != a || b.Onext() != b {
		t.Fatal("re-applying Splice must undo the merge")
	}
}

func TestConnectClosesTriangle(t *testing.T) {
	a := Pt2(0, 0)
	b := Pt2(2, 0)
	c := Pt2(2, 2)

	ea := MakeEdge()
	ea.setEndpoints(a, b)
	eb := MakeEdge()
	Splice(ea.Sym(), eb)
	eb.setEndpoints(b, c)
	ec := Connect(eb, ea)

	if ec.Org() != c || ec.Dest() != a {
		t.Fatalf("got connect org=%v dest=%v want %v %v", ec.Org(), ec.Dest(), c, a)
	}
	if ea.Lnext() != eb {
		t.Fatalf("expected ea.Lnext() == eb after closing the triangle")
	}
	if eb.Lnext() != ec {
		t.Fatalf("expected eb.Lnext() == ec after closing the triangle")
	}
	if ec.Lnext() != ea {
		t.Fatalf("expected ec.Lnext() == ea after closing the triangle")
	}
}

func TestDeleteEdgeIsolatesEndpoints(t *testing.T) {
	a := MakeEdge()
	a.setEndpoints(Pt2(0, 0), Pt2(1, 0))
	b := MakeEdge()
	b.setEndpoints(Pt2(0, 0), Pt2(0, 1))
	Splice(a, b)

	DeleteEdge(a)
	if b.Onext() != b {
		t.Fatal("deleting a must leave b alone in its own ring again")
	}
}
