package scape

import (
	"testing"

	"github.com/arl/math32"
)

func check(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func TestFitPlaneFlat(t *testing.T) {
	p := FitPlane(NewVec3(0, 0, 5), NewVec3(1, 0, 5), NewVec3(0, 1, 5))
	if !math32.Approx(p.At(3, 4), 5) {
		t.Fatalf("got %v want 5", p.At(3, 4))
	}
}

func TestFitPlaneTilted(t *testing.T) {
	// z = 2x + 3y + 1
	f := func(x, y float32) float32 { return 2*x + 3*y + 1 }
	p := FitPlane(
		NewVec3(0, 0, f(0, 0)),
		NewVec3(1, 0, f(1, 0)),
		NewVec3(0, 1, f(0, 1)),
	)
	for _, pt := range [][2]float32{{2, 2}, {-3, 5}, {10, -1}} {
		got := p.At(pt[0], pt[1])
		want := f(pt[0], pt[1])
		if !math32.Approx(got, want) {
			t.Fatalf("At(%v,%v) = %v, want %v", pt[0], pt[1], got, want)
		}
	}
}

func TestFitPlaneDegenerate(t *testing.T) {
	// Three collinear points: the plane must degenerate to the flat
	// average of the three z-values rather than dividing by zero.
	p := FitPlane(NewVec3(0, 0, 1), NewVec3(1, 1, 3), NewVec3(2, 2, 5))
	want := float32(3) // (1+3+5)/3
	if !math32.Approx(p.At(0, 0), want) || !math32.Approx(p.At(100, -50), want) {
		t.Fatalf("degenerate FitPlane not flat: At(0,0)=%v At(100,-50)=%v want %v", p.At(0, 0), p.At(100, -50), want)
	}
}

func TestTriAreaOrientation(t *testing.T) {
	a, b, c := Pt2(0, 0), Pt2(1, 0), Pt2(0, 1)
	if TriArea(a, b, c) <= 0 {
		t.Fatal("expected positive (ccw) area")
	}
	if TriArea(a, c, b) >= 0 {
		t.Fatal("expected negative (cw) area")
	}
}

func TestTriQualityDegenerateIsZero(t *testing.T) {
	// Three collinear points: zero area, but TriQuality must not divide by
	// zero.
	q := TriQuality(Pt2(0, 0), Pt2(1, 0), Pt2(2, 0))
	if q != 0 {
		t.Fatalf("got %v want 0", q)
	}
}

func TestTriQualityEquilateralBeatsSliver(t *testing.T) {
	equilateral := TriQuality(Pt2(0, 0), Pt2(2, 0), Pt2(1, float32(math32.Sqrt(3))))
	sliver := TriQuality(Pt2(0, 0), Pt2(10, 0), Pt2(5, 0.1))
	if equilateral <= sliver {
		t.Fatalf("equilateral quality %v should exceed sliver quality %v", equilateral, sliver)
	}
}

func TestAABBContains(t *testing.T) {
	bb := NewAABB(10, 10)
	if !bb.Contains(Pt2(0, 0)) || !bb.Contains(Pt2(9, 9)) {
		t.Fatal("corners must be contained")
	}
	if bb.Contains(Pt2(9.0001, 0)) {
		t.Fatal("point just outside the box must not be contained")
	}
}
