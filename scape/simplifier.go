package scape

import (
	"errors"

	"github.com/arl/math32"
)

// swapHysteresis is the minimum cost improvement a diagonal swap must
// achieve before it is taken; spec.md requires the swap predicate to be
// deterministic and to never swap on an exact tie, so a fixed small
// margin (rather than a zero threshold subject to float roundoff) is
// used instead.
const swapHysteresis float32 = 1e-6

// usedBitmap tracks, per grid sample, whether it has already been
// promoted to a subdivision vertex (or is a NoData sample, which is
// never eligible). Owned exclusively by Simplifier, per spec.md §3's
// ownership rule.
type usedBitmap struct {
	w, h  int32
	flags []bool
}

func newUsedBitmap(hf *HeightField) *usedBitmap {
	b := &usedBitmap{w: hf.Width, h: hf.Height, flags: make([]bool, int(hf.Width)*int(hf.Height))}
	for y := int32(0); y < hf.Height; y++ {
		for x := int32(0); x < hf.Width; x++ {
			if hf.IsNoData(x, y) {
				b.flags[b.index(x, y)] = true
			}
		}
	}
	return b
}

func (b *usedBitmap) index(x, y int32) int { return int(y)*int(b.w) + int(x) }

func (b *usedBitmap) Used(x, y int32) bool {
	if x < 0 || x >= b.w || y < 0 || y >= b.h {
		return true
	}
	return b.flags[b.index(x, y)]
}

func (b *usedBitmap) UsedInterp(x, y float32) bool {
	rx, ry := math32.Floor(x+0.5), math32.Floor(y+0.5)
	if math32.Abs(x-rx) > 1e-4 || math32.Abs(y-ry) > 1e-4 {
		return false
	}
	return b.Used(int32(rx), int32(ry))
}

func (b *usedBitmap) MarkUsed(x, y int32) {
	if x >= 0 && x < b.w && y >= 0 && y < b.h {
		b.flags[b.index(x, y)] = true
	}
}

// alwaysUnused is a UsedGrid that never excludes a sample; it lets the
// error-reporting methods reuse the scan-conversion machinery to examine
// every sample in a triangle regardless of mesh state.
type alwaysUnused struct{}

func (alwaysUnused) Used(int32, int32) bool           { return false }
func (alwaysUnused) UsedInterp(float32, float32) bool { return false }

// Simplifier drives greedy-insertion TIN construction over a HeightField:
// it owns the subdivision, the candidate heap and the used bitmap, and
// exposes the refinement loop described by spec.md §3-4.
//
// Grounded on original_source/simplfield.H's SimplField; the staged
// construction and progress logging follow
// sample/solomesh/builder.go's SoloMesh.Build().
type Simplifier struct {
	hf   *HeightField
	cfg  Config
	sub  *Subdivision
	heap *candidateHeap
	used *usedBitmap
	ctx  *BuildContext

	numInserted int
}

// NewSimplifier validates cfg, bootstraps a subdivision covering hf's
// extent as two triangles, and scans them to seed the candidate heap.
func NewSimplifier(hf *HeightField, cfg Config, ctx *BuildContext) (*Simplifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = NewBuildContext(false, cfg.Debug)
	}

	s := &Simplifier{
		hf:   hf,
		cfg:  cfg,
		sub:  NewSubdivision(hf.Width, hf.Height),
		heap: newCandidateHeap(2*int(hf.Width)*int(hf.Height) + 4),
		used: newUsedBitmap(hf),
		ctx:  ctx,
	}

	// The four corners are already subdivision vertices.
	s.used.MarkUsed(0, 0)
	s.used.MarkUsed(hf.Width-1, 0)
	s.used.MarkUsed(hf.Width-1, hf.Height-1)
	s.used.MarkUsed(0, hf.Height-1)

	s.ctx.StartTimer(TimerScan)
	for _, t := range s.sub.Faces() {
		s.scanAndEnqueue(t)
	}
	s.ctx.StopTimer(TimerScan)

	return s, nil
}

// HeightField returns the height field being approximated.
func (s *Simplifier) HeightField() *HeightField { return s.hf }

// Subdivision returns the simplifier's current triangulation.
func (s *Simplifier) Subdivision() *Subdivision { return s.sub }

// NumInserted returns the number of vertices inserted so far, not
// counting the four initial corners.
func (s *Simplifier) NumInserted() int { return s.numInserted }

// IsUsedInterp reports whether the bilinearly-addressed position (x, y)
// coincides with an already-placed vertex.
func (s *Simplifier) IsUsedInterp(x, y float32) bool { return s.used.UsedInterp(x, y) }

func (s *Simplifier) scanAndEnqueue(t *Triangle) {
	s.ctx.DebugLogf(1, "scan converting %v %v %v", t.Corner1(), t.Corner2(), t.Corner3())
	n := scanDataIndependent(s.hf, t, s.used, s.cfg.scanSettings())
	s.ctx.DebugLogf(0, "  %d pixels, candidate err=%v", n, t.Err())
	s.heap.Insert(t, t.Err())
}

// SelectNewPoint pops the top candidate from the heap and inserts it into
// the subdivision, rescanning every newly exposed triangle and, when
// DataDependent is enabled, running the local edge-swap pass around the
// new vertex. Returns ErrHeapEmpty once the heap is exhausted or the top
// candidate's error falls at or below Thresh.
func (s *Simplifier) SelectNewPoint() (*Edge, error) {
	for {
		top := s.heap.Top()
		if top == nil {
			return nil, ErrHeapEmpty
		}
		if top.Err() <= s.cfg.Thresh {
			return nil, ErrHeapEmpty
		}
		s.heap.Extract()
		if top.Err() < 0 {
			// Every interior sample is already used; this triangle
			// can never yield a candidate again.
			continue
		}

		cx, cy := top.Candidate()
		x := Pt2(float32(cx), float32(cy))

		s.ctx.StartTimer(TimerInsert)
		v, destroyed, created, err := s.sub.InsertSite(x, top, !s.cfg.DataDependent)
		s.ctx.StopTimer(TimerInsert)

		if errors.Is(err, ErrDuplicateSite) {
			s.used.MarkUsed(cx, cy)
			continue
		}
		if err != nil {
			return nil, err
		}

		for _, d := range destroyed {
			s.heap.Kill(d)
		}
		s.used.MarkUsed(cx, cy)

		s.ctx.StartTimer(TimerScan)
		for _, f := range created {
			s.scanAndEnqueue(f)
		}
		s.ctx.StopTimer(TimerScan)

		if s.cfg.DataDependent {
			s.ctx.StartTimer(TimerSwap)
			s.swapPass(v)
			s.ctx.StopTimer(TimerSwap)
		}

		s.numInserted++
		s.ctx.Progressf("inserted (%d,%d), %d vertices so far", cx, cy, s.numInserted)
		return v, nil
	}
}

// SelectNewPoints calls SelectNewPoint until it has inserted limit new
// vertices (or, if limit<=0, until refinement terminates), also honoring
// Config.Limit as a hard overall cap. Returns the number of vertices
// actually inserted in this call.
func (s *Simplifier) SelectNewPoints(limit int) (int, error) {
	inserted := 0
	for limit <= 0 || inserted < limit {
		if s.cfg.Limit > 0 && s.numInserted >= s.cfg.Limit {
			return inserted, nil
		}
		_, err := s.SelectNewPoint()
		if err != nil {
			if errors.Is(err, ErrHeapEmpty) {
				return inserted, nil
			}
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

// swapCost combines u and v's aggregate error with their shape penalty,
// blended by QualThresh between a pure error-driven (0) and pure
// shape-driven (1) decision; Alpha scales the shape term within that
// blend. See DESIGN.md for why this formula reconciles spec.md's two
// separate descriptions of QualThresh and Alpha.
func (s *Simplifier) swapCost(u, v *TriPlanes) float32 {
	errTerm := u.Err + v.Err
	shapeTerm := (1 - u.Quality) + (1 - v.Quality)
	return (1-s.cfg.QualThresh)*errTerm + s.cfg.QualThresh*s.cfg.Alpha*shapeTerm
}

// trySwap evaluates whether flipping e's diagonal lowers swapCost, and
// performs the flip if so.
func (s *Simplifier) trySwap(e *Edge) (destroyed, created []*Triangle, swapped bool) {
	triA, triB := e.Lface(), e.Sym().Lface()
	if triA == nil || triB == nil || triA == triB {
		return nil, nil, false
	}

	p, q := e.Org(), e.Dest()
	apex1 := e.Lnext().Dest()
	apex2 := e.Sym().Lnext().Dest()

	settings := s.cfg.scanSettings()
	u := newTriPlanes(s.hf, p, q, apex1)
	v := newTriPlanes(s.hf, q, p, apex2)
	scanDataDependent(s.hf, p, q, apex1, u, s.used, settings)
	scanDataDependent(s.hf, q, p, apex2, v, s.used, settings)

	up := newTriPlanes(s.hf, apex1, apex2, p)
	vp := newTriPlanes(s.hf, apex2, apex1, q)
	scanDataDependent(s.hf, apex1, apex2, p, up, s.used, settings)
	scanDataDependent(s.hf, apex2, apex1, q, vp, s.used, settings)

	if s.swapCost(up, vp) >= s.swapCost(u, v)-swapHysteresis {
		return nil, nil, false
	}

	destroyed, created = s.sub.Swap(e)
	return destroyed, created, true
}

// swapPass runs the data-dependent local edge-swap pass around the
// spokes of the newly inserted vertex v, propagating to newly exposed
// suspect edges until no further swap improves the cost.
func (s *Simplifier) swapPass(v *Edge) {
	var queue []*Edge
	spoke := v
	for {
		queue = append(queue, spoke.Lnext())
		spoke = spoke.Onext()
		if spoke == v {
			break
		}
	}

	seen := make(map[*QuadEdge]bool)
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		if seen[e.Qedge()] {
			continue
		}
		seen[e.Qedge()] = true
		if !s.sub.IsInterior(e) {
			continue
		}

		destroyed, created, swapped := s.trySwap(e)
		if !swapped {
			continue
		}
		for _, d := range destroyed {
			s.heap.Kill(d)
		}
		for _, f := range created {
			s.scanAndEnqueue(f)
		}
		for _, f := range created {
			queue = append(queue, f.anchor.Lnext(), f.anchor.Lnext().Lnext())
		}
	}
}

// MaxError returns the largest single-sample elevation error of the
// current mesh against the original height field, independent of the
// configured criterion. Grounded on simplfield.H's max_error.
func (s *Simplifier) MaxError() float32 {
	var maxErr float32
	settings := ScanSettings{Criterion: CriterionMAXINF, AreaThresh: s.cfg.AreaThresh}
	for _, t := range s.sub.Faces() {
		p1, p2, p3 := t.Corner1(), t.Corner2(), t.Corner3()
		tp := newTriPlanes(s.hf, p1, p2, p3)
		scanDataDependent(s.hf, p1, p2, p3, tp, alwaysUnused{}, settings)
		if tp.Err > maxErr {
			maxErr = tp.Err
		}
	}
	return maxErr
}

// RMSError returns the exact root-mean-square elevation error of the
// current mesh against every sample of the original height field.
// Grounded on simplfield.H's rms_error.
func (s *Simplifier) RMSError() float32 {
	var sumSq float64
	var count int64
	settings := ScanSettings{Criterion: CriterionSUM2, AreaThresh: s.cfg.AreaThresh}
	for _, t := range s.sub.Faces() {
		p1, p2, p3 := t.Corner1(), t.Corner2(), t.Corner3()
		tp := newTriPlanes(s.hf, p1, p2, p3)
		n := scanDataDependent(s.hf, p1, p2, p3, tp, alwaysUnused{}, settings)
		sumSq += float64(tp.Err)
		count += int64(n)
	}
	if count == 0 {
		return 0
	}
	return math32.Sqrt(float32(sumSq / float64(count)))
}

// RMSErrorEstimate returns a cheap approximation of RMSError using each
// live triangle's last cached candidate (worst-sample) error, weighted by
// triangle area, instead of a full rescan. Grounded on simplfield.H's
// rms_error_estimate.
func (s *Simplifier) RMSErrorEstimate() float32 {
	var weighted, totalArea float64
	for _, t := range s.sub.Faces() {
		p1, p2, p3 := t.Corner1(), t.Corner2(), t.Corner3()
		area := float64(math32.Abs(TriArea(p1, p2, p3)) / 2)
		e := float64(t.Err())
		if e < 0 {
			e = 0
		}
		weighted += e * e * area
		totalArea += area
	}
	if totalArea == 0 {
		return 0
	}
	return math32.Sqrt(float32(weighted / totalArea))
}
