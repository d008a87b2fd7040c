package scape

import "testing"

func TestNewTriPlanesFitsFlatPlane(t *testing.T) {
	hf := flatHeightField(t, 4, 4, 5)
	tp := newTriPlanes(hf, Pt2(0, 0), Pt2(3, 0), Pt2(0, 3))
	if tp.CErr != -1 {
		t.Fatalf("got CErr %v want sentinel -1 before scanning", tp.CErr)
	}
	if tp.Area <= 0 {
		t.Fatalf("expected positive area, got %v", tp.Area)
	}
	if got := tp.Z.At(1, 1); got != 5 {
		t.Fatalf("got z=%v want 5", got)
	}
}

func TestScanDataIndependentFlatFieldZeroError(t *testing.T) {
	hf := flatHeightField(t, 4, 4, 3)
	s := NewSubdivision(4, 4)
	settings := ScanSettings{Criterion: CriterionMAXINF, AreaThresh: 1e30}
	for _, face := range s.Faces() {
		scanDataIndependent(hf, face, alwaysUnused{}, settings)
		if face.Err() != 0 {
			t.Fatalf("flat field should scan to zero error, got %v", face.Err())
		}
	}
}

func TestScanDataIndependentSpikeDetected(t *testing.T) {
	w, h := int32(4), int32(4)
	elev := make([]uint16, w*h)
	// Spike strictly inside the lower-right bootstrap triangle (below the
	// (0,0)-(3,3) diagonal, so unambiguously in one face only).
	spikeX, spikeY := int32(2), int32(1)
	elev[spikeY*w+spikeX] = 100

	hf, err := NewHeightField(w, h, elev, nil)
	check(t, err)

	s := NewSubdivision(w, h)
	settings := ScanSettings{Criterion: CriterionMAXINF, AreaThresh: 1e30}

	var sawError bool
	for _, face := range s.Faces() {
		scanDataIndependent(hf, face, alwaysUnused{}, settings)
		if face.Err() > 0 {
			sawError = true
		}
	}
	if !sawError {
		t.Fatal("expected at least one bootstrap triangle to report a nonzero candidate error for the spike")
	}
}

func TestScanDataDependentDegenerateAreaIsNoop(t *testing.T) {
	hf := flatHeightField(t, 4, 4, 1)
	p, q, r := Pt2(0, 0), Pt2(1, 0), Pt2(2, 0) // collinear
	tp := newTriPlanes(hf, p, q, r)
	n := scanDataDependent(hf, p, q, r, tp, alwaysUnused{}, ScanSettings{AreaThresh: 1e30})
	if n != 0 {
		t.Fatalf("degenerate triangle should scan zero samples, got %d", n)
	}
	if !tp.Done {
		t.Fatal("degenerate triangle must be marked Done to avoid rescanning")
	}
}

func TestScanDataDependentFlatFieldZeroError(t *testing.T) {
	hf := flatHeightField(t, 6, 6, 9)
	p, q, r := Pt2(0, 0), Pt2(5, 0), Pt2(0, 5)
	tp := newTriPlanes(hf, p, q, r)
	n := scanDataDependent(hf, p, q, r, tp, alwaysUnused{}, ScanSettings{Criterion: CriterionMAXINF, AreaThresh: 1e30})
	if n == 0 {
		t.Fatal("expected a nonzero number of scanned samples")
	}
	if tp.Err != 0 {
		t.Fatalf("flat field should scan to zero error, got %v", tp.Err)
	}
}

func TestScanDataDependentSupersamplingTriggered(t *testing.T) {
	hf := flatHeightField(t, 6, 6, 9)
	p, q, r := Pt2(0, 0), Pt2(2, 0), Pt2(0, 2)
	tp := newTriPlanes(hf, p, q, r)
	// A tiny AreaThresh forces ss = ceil((dx+dy)/(2*area*thresh)) well above 1.
	n := scanDataDependent(hf, p, q, r, tp, alwaysUnused{}, ScanSettings{Criterion: CriterionMAXINF, AreaThresh: 0.01})
	if n == 0 {
		t.Fatal("expected samples to be scanned under supersampling")
	}
	if !tp.Done {
		t.Fatal("expected Done to be set after supersampled scan")
	}
	if tp.Err != 0 {
		t.Fatalf("flat field should still scan to zero error under supersampling, got %v", tp.Err)
	}
}

func TestScanDataDependentAlreadyDoneIsNoop(t *testing.T) {
	hf := flatHeightField(t, 4, 4, 1)
	p, q, r := Pt2(0, 0), Pt2(3, 0), Pt2(0, 3)
	tp := newTriPlanes(hf, p, q, r)
	tp.Done = true
	n := scanDataDependent(hf, p, q, r, tp, alwaysUnused{}, ScanSettings{AreaThresh: 1e30})
	if n != 0 {
		t.Fatalf("already-Done TriPlanes must not be rescanned, got %d samples", n)
	}
}
