package scape

import "github.com/arl/math32"

// Criterion selects how a triangle's pointwise errors are aggregated into
// its overall error, per spec.md's criterion ∈ {SUMINF, MAXINF, SUM2, ABN}.
type Criterion int

// Error criteria.
const (
	// CriterionSUMINF and CriterionMAXINF both aggregate as the maximum of
	// the pointwise errors; they are kept as distinct values because the
	// configuration surface names them separately, but they behave
	// identically during scan accumulation.
	CriterionSUMINF Criterion = iota
	CriterionMAXINF
	// CriterionSUM2 aggregates as the sum of squared pointwise errors.
	CriterionSUM2
	// CriterionABN names the angle-between-normals criterion. The
	// upstream source declares it without consistently implementing it.
	// This package computes no facet-normal angle anywhere: scan
	// accumulation treats ABN like CriterionMAXINF, and the swap cost in
	// simplifier.go does not depend on the criterion.
	CriterionABN
)

// UsedGrid reports, for a sample position, whether it has already been
// promoted to a subdivision vertex and must be excluded from further
// candidate search. Implemented by Simplifier's bitmap; scan routines only
// read it.
type UsedGrid interface {
	Used(x, y int32) bool
	UsedInterp(x, y float32) bool
}

// ScanSettings configures scan conversion; a value, not a pointer, since it
// is small and never mutated by scan routines.
type ScanSettings struct {
	Emphasis   float32
	Criterion  Criterion
	AreaThresh float32
}

// TriPlanes holds the planes fitted through one candidate triangle plus
// its accumulated scan-conversion error and worst-sample candidate.
// Mirrors original_source/simplfield.H's FitPlane (renamed to avoid
// colliding with this package's FitPlane function).
type TriPlanes struct {
	Z, R, G, B Plane
	Area       float32
	Quality    float32
	CX, CY     int32
	CErr       float32
	Err        float32
	Done       bool
}

func newTriPlanes(hf *HeightField, p, q, r Point2) *TriPlanes {
	tp := &TriPlanes{CErr: -1}
	tp.fit(hf, p, q, r)
	return tp
}

func (tp *TriPlanes) fit(hf *HeightField, p, q, r Point2) {
	ev := func(pt Point2) Vec3 { return NewVec3(pt.X, pt.Y, hf.Eval(int32(pt.X), int32(pt.Y))) }
	tp.Z = FitPlane(ev(p), ev(q), ev(r))
	if hf.HasTexture() {
		cv := func(pt Point2, c func(Color) float32) Vec3 {
			return NewVec3(pt.X, pt.Y, c(hf.Color3(int32(pt.X), int32(pt.Y))))
		}
		tp.R = FitPlane(cv(p, func(c Color) float32 { return c.R }), cv(q, func(c Color) float32 { return c.R }), cv(r, func(c Color) float32 { return c.R }))
		tp.G = FitPlane(cv(p, func(c Color) float32 { return c.G }), cv(q, func(c Color) float32 { return c.G }), cv(r, func(c Color) float32 { return c.G }))
		tp.B = FitPlane(cv(p, func(c Color) float32 { return c.B }), cv(q, func(c Color) float32 { return c.B }), cv(r, func(c Color) float32 { return c.B }))
	}
	tp.Area = math32.Abs(TriArea(p, q, r)) / 2
	tp.Quality = TriQuality(p, q, r)
}

func orderByY(p, q, r Point2) [3]Point2 {
	pts := [3]Point2{p, q, r}
	if pts[0].Y > pts[1].Y {
		pts[0], pts[1] = pts[1], pts[0]
	}
	if pts[1].Y > pts[2].Y {
		pts[1], pts[2] = pts[2], pts[1]
	}
	if pts[0].Y > pts[1].Y {
		pts[0], pts[1] = pts[1], pts[0]
	}
	return pts
}

func accumulate(tp *TriPlanes, criterion Criterion, diff float32) {
	switch criterion {
	case CriterionSUM2:
		tp.Err += diff * diff
	default: // CriterionSUMINF, CriterionMAXINF, CriterionABN
		if diff > tp.Err {
			tp.Err = diff
		}
	}
}

func colorWeight(hf *HeightField, settings ScanSettings) (w1, w2 float32) {
	zrange := hf.ZMax()
	if zrange <= 0 {
		zrange = 1
	}
	return 1 - settings.Emphasis, settings.Emphasis * zrange / 3
}

// scanDataIndependent scan-converts tri against a single plane fitted
// through its three corners (the Delaunay / fixed-shape path) and records
// the worst-sample candidate on tri. Returns the number of samples
// examined. Grounded on original_source/scan.C's
// SimplField::scan_triangle_dataindep.
func scanDataIndependent(hf *HeightField, tri *Triangle, used UsedGrid, settings ScanSettings) int {
	p1, p2, p3 := tri.Corner1(), tri.Corner2(), tri.Corner3()
	useColor := settings.Emphasis > 0 && hf.HasTexture()

	ev := func(pt Point2) Vec3 { return NewVec3(pt.X, pt.Y, hf.Eval(int32(pt.X), int32(pt.Y))) }
	zPlane := FitPlane(ev(p1), ev(p2), ev(p3))
	var rPlane, gPlane, bPlane Plane
	if useColor {
		cv := func(pt Point2, ch func(Color) float32) Vec3 {
			return NewVec3(pt.X, pt.Y, ch(hf.Color3(int32(pt.X), int32(pt.Y))))
		}
		rPlane = FitPlane(cv(p1, func(c Color) float32 { return c.R }), cv(p2, func(c Color) float32 { return c.R }), cv(p3, func(c Color) float32 { return c.R }))
		gPlane = FitPlane(cv(p1, func(c Color) float32 { return c.G }), cv(p2, func(c Color) float32 { return c.G }), cv(p3, func(c Color) float32 { return c.G }))
		bPlane = FitPlane(cv(p1, func(c Color) float32 { return c.B }), cv(p2, func(c Color) float32 { return c.B }), cv(p3, func(c Color) float32 { return c.B }))
	}
	w1, w2 := colorWeight(hf, settings)

	by := orderByY(p1, p2, p3)
	maxVal, maxX, maxY := float32(-1), int32(0), int32(0)
	scanned := 0

	step := func(y int32, x1, x2 float32) {
		n, mv, mx, my := scanLineDataIndependent(hf, used, zPlane, rPlane, gPlane, bPlane, useColor, w1, w2, y, x1, x2)
		scanned += n
		if mv > maxVal {
			maxVal, maxX, maxY = mv, mx, my
		}
	}

	dx1 := divideSafe(by[1].X-by[0].X, by[1].Y-by[0].Y)
	dx2 := divideSafe(by[2].X-by[0].X, by[2].Y-by[0].Y)
	x1, x2 := by[0].X, by[0].X
	y := int32(by[0].Y)
	for ; y < int32(by[1].Y); y++ {
		step(y, x1, x2)
		x1 += dx1
		x2 += dx2
	}

	dx1 = divideSafe(by[2].X-by[1].X, by[2].Y-by[1].Y)
	x1 = by[1].X
	for ; y <= int32(by[2].Y); y++ {
		step(y, x1, x2)
		x1 += dx1
		x2 += dx2
	}

	tri.SetCandidate(maxX, maxY, maxVal)
	return scanned
}

func scanLineDataIndependent(hf *HeightField, used UsedGrid, zPlane, rPlane, gPlane, bPlane Plane, useColor bool, w1, w2 float32, y int32, x1, x2 float32) (count int, maxVal float32, maxX, maxY int32) {
	startx := int32(math32.Ceil(math32.Min(x1, x2)))
	endx := int32(math32.Floor(math32.Max(x1, x2)))
	maxVal = -1
	if startx > endx {
		return 0, maxVal, 0, 0
	}

	z := zPlane.AtInt(startx, y)
	var r, g, b float32
	if useColor {
		r, g, b = rPlane.AtInt(startx, y), gPlane.AtInt(startx, y), bPlane.AtInt(startx, y)
	}
	for x := startx; x <= endx; x++ {
		if !used.Used(x, y) {
			var diff float32
			if useColor {
				c := hf.Color3(x, y)
				diff = w1*math32.Abs(hf.Eval(x, y)-z) + w2*(math32.Abs(c.R-r)+math32.Abs(c.G-g)+math32.Abs(c.B-b))
			} else {
				diff = math32.Abs(hf.Eval(x, y) - z)
			}
			if diff > maxVal {
				maxVal, maxX, maxY = diff, x, y
			}
		}
		z += zPlane.A
		if useColor {
			r += rPlane.A
			g += gPlane.A
			b += bPlane.A
		}
		count++
	}
	return count, maxVal, maxX, maxY
}

// scanDataDependent scan-converts the triangle (p,q,r) against the single
// already-initialized plane set tp, deciding whether supersampling is
// required from the triangle's area and bounding-box dimensions. Returns
// the number of samples examined (pre-supersampling count). Grounded on
// scan.C's SimplField::scan_triangle_datadep.
func scanDataDependent(hf *HeightField, p, q, r Point2, tp *TriPlanes, used UsedGrid, settings ScanSettings) int {
	if tp.Done {
		return 0
	}
	w1, w2 := colorWeight(hf, settings)
	useColor := settings.Emphasis > 0 && hf.HasTexture()

	area := TriArea(p, q, r) / 2
	if math32.Abs(area) < 1e-5 {
		tp.Done = true
		return 0
	}

	dx, dy := bboxDims(p, q, r)
	thresh := settings.AreaThresh
	if thresh <= 0 {
		thresh = 1e30
	}
	ss := int32(math32.Ceil((dx + dy) / (2 * math32.Abs(area) * thresh)))
	if ss < 1 {
		ss = 1
	}

	var scanned int
	if ss == 1 {
		scanned = scanTriangleNormal(hf, p, q, r, tp, used, w1, w2, useColor, settings.Criterion)
	} else {
		scanned = scanTriangleSupersampled(hf, p, q, r, tp, used, w1, w2, useColor, settings.Criterion, ss) / int(ss*ss)
	}
	tp.Done = true
	return scanned
}

func bboxDims(p, q, r Point2) (dx, dy float32) {
	xmin, xmax := math32.Min(p.X, q.X), math32.Max(p.X, q.X)
	if r.X < xmin {
		xmin = r.X
	}
	if r.X > xmax {
		xmax = r.X
	}
	ymin, ymax := math32.Min(p.Y, q.Y), math32.Max(p.Y, q.Y)
	if r.Y < ymin {
		ymin = r.Y
	}
	if r.Y > ymax {
		ymax = r.Y
	}
	return xmax - xmin, ymax - ymin
}

func scanTriangleNormal(hf *HeightField, p, q, r Point2, tp *TriPlanes, used UsedGrid, w1, w2 float32, useColor bool, criterion Criterion) int {
	by := orderByY(p, q, r)
	scanned := 0

	dx1 := divideSafe(by[1].X-by[0].X, by[1].Y-by[0].Y)
	dx2 := divideSafe(by[2].X-by[0].X, by[2].Y-by[0].Y)
	y := int32(math32.Ceil(by[0].Y))
	frac := float32(y) - by[0].Y
	x1 := by[0].X + dx1*frac
	x2 := by[0].X + dx2*frac
	for ; y < int32(by[1].Y); y++ {
		scanned += scanLineDataDependent(hf, used, tp, y, x1, x2, w1, w2, useColor, criterion)
		x1 += dx1
		x2 += dx2
	}

	dx1 = divideSafe(by[2].X-by[1].X, by[2].Y-by[1].Y)
	frac = float32(y) - by[1].Y
	x1 = by[1].X + dx1*frac
	for ; y <= int32(by[2].Y); y++ {
		scanned += scanLineDataDependent(hf, used, tp, y, x1, x2, w1, w2, useColor, criterion)
		x1 += dx1
		x2 += dx2
	}
	return scanned
}

func scanLineDataDependent(hf *HeightField, used UsedGrid, tp *TriPlanes, y int32, x1, x2, w1, w2 float32, useColor bool, criterion Criterion) int {
	startx := int32(math32.Ceil(math32.Min(x1, x2)))
	endx := int32(math32.Floor(math32.Max(x1, x2)))
	if startx > endx {
		return 0
	}

	z := tp.Z.AtInt(startx, y)
	var r, g, b float32
	if useColor {
		r, g, b = tp.R.AtInt(startx, y), tp.G.AtInt(startx, y), tp.B.AtInt(startx, y)
	}
	for x := startx; x <= endx; x++ {
		if !used.Used(x, y) {
			var diff float32
			if useColor {
				c := hf.Color3(x, y)
				diff = w1*math32.Abs(hf.Eval(x, y)-z) + w2*(math32.Abs(c.R-r)+math32.Abs(c.G-g)+math32.Abs(c.B-b))
			} else {
				diff = math32.Abs(hf.Eval(x, y) - z)
			}
			if diff > tp.CErr {
				tp.CX, tp.CY, tp.CErr = x, y, diff
			}
			accumulate(tp, criterion, diff)
		}
		z += tp.Z.A
		if useColor {
			r += tp.R.A
			g += tp.G.A
			b += tp.B.A
		}
	}
	return int(endx - startx + 1)
}

// scanTriangleSupersampled is scanTriangleNormal's finer-resolution
// counterpart: it multiplies the triangle's coordinates by ss, scan
// converts at that resolution, and samples the height field (and texture)
// with bilinear interpolation, recording a candidate only at sub-pixel
// positions that map back to integer grid coordinates.
func scanTriangleSupersampled(hf *HeightField, p, q, r Point2, tp *TriPlanes, used UsedGrid, w1, w2 float32, useColor bool, criterion Criterion, ss int32) int {
	scale := float32(ss)
	by := orderByY(Pt2(p.X*scale, p.Y*scale), Pt2(q.X*scale, q.Y*scale), Pt2(r.X*scale, r.Y*scale))

	savedZ, savedR, savedG, savedB := tp.Z, tp.R, tp.G, tp.B
	tp.Z = tp.Z.Scaled(scale)
	if useColor {
		tp.R, tp.G, tp.B = tp.R.Scaled(scale), tp.G.Scaled(scale), tp.B.Scaled(scale)
	}

	scanned := 0
	dx1 := divideSafe(by[1].X-by[0].X, by[1].Y-by[0].Y)
	dx2 := divideSafe(by[2].X-by[0].X, by[2].Y-by[0].Y)
	y := int32(math32.Ceil(by[0].Y))
	frac := float32(y) - by[0].Y
	x1 := by[0].X + dx1*frac
	x2 := by[0].X + dx2*frac
	for ; y < int32(by[1].Y); y++ {
		scanned += scanLineSupersampled(hf, used, tp, y, x1, x2, w1, w2, useColor, criterion, ss)
		x1 += dx1
		x2 += dx2
	}

	dx1 = divideSafe(by[2].X-by[1].X, by[2].Y-by[1].Y)
	frac = float32(y) - by[1].Y
	x1 = by[1].X + dx1*frac
	for ; y <= int32(by[2].Y); y++ {
		scanned += scanLineSupersampled(hf, used, tp, y, x1, x2, w1, w2, useColor, criterion, ss)
		x1 += dx1
		x2 += dx2
	}

	if criterion == CriterionSUM2 {
		tp.Err /= scale * scale
	}

	tp.Z, tp.R, tp.G, tp.B = savedZ, savedR, savedG, savedB
	return scanned
}

func scanLineSupersampled(hf *HeightField, used UsedGrid, tp *TriPlanes, y int32, x1, x2, w1, w2 float32, useColor bool, criterion Criterion, ss int32) int {
	startx := int32(math32.Ceil(math32.Min(x1, x2)))
	endx := int32(math32.Floor(math32.Max(x1, x2)))
	if startx > endx {
		return 0
	}

	z := tp.Z.AtInt(startx, y)
	var r, g, b float32
	if useColor {
		r, g, b = tp.R.AtInt(startx, y), tp.G.AtInt(startx, y), tp.B.AtInt(startx, y)
	}
	scale := float32(ss)
	ry := float32(y) / scale
	for x := startx; x <= endx; x++ {
		rx := float32(x) / scale
		if !used.UsedInterp(rx, ry) {
			var diff float32
			if useColor {
				c := hf.ColorInterp(rx, ry)
				diff = w1*math32.Abs(hf.EvalInterp(rx, ry)-z) + w2*(math32.Abs(c.R-r)+math32.Abs(c.G-g)+math32.Abs(c.B-b))
			} else {
				diff = math32.Abs(hf.EvalInterp(rx, ry) - z)
			}
			if x%ss == 0 && y%ss == 0 && diff > tp.CErr {
				tp.CX, tp.CY, tp.CErr = x/ss, y/ss, diff
			}
			accumulate(tp, criterion, diff)
		}
		z += tp.Z.A
		if useColor {
			r += tp.R.A
			g += tp.G.A
			b += tp.B.A
		}
	}
	return int(endx - startx + 1)
}
