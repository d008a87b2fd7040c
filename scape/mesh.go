package scape

// TriMesh is the flat, indexed output mesh produced from a Subdivision's
// live interior faces: one vertex per distinct grid sample referenced by a
// triangle, plus per-triangle vertex index triples.
//
// Grounded on recast/polymesh.go's PolyMesh (flat Verts/Polys uint16
// arrays with NVerts/NPolys counters), generalized from fixed-size
// polygons over uint16 grid coordinates to triangles over float32 world
// coordinates plus an optional per-vertex color.
type TriMesh struct {
	Verts  []Vec3  // world-space vertex positions, length NVerts
	Colors []Color // per-vertex color, length NVerts if the source HeightField had a texture, else nil
	Tris   []int32 // vertex index triples, length 3*NTris

	NVerts int32
	NTris  int32

	BMin, BMax Vec3
}

// NewTriMesh walks sub's live faces and builds the indexed output mesh,
// sampling hf for each referenced grid sample's elevation and color.
func NewTriMesh(sub *Subdivision, hf *HeightField) *TriMesh {
	mesh := &TriMesh{}
	hasColor := hf.HasTexture()

	index := make(map[Point2]int32)
	vertexIndex := func(p Point2) int32 {
		if i, ok := index[p]; ok {
			return i
		}
		x, y := int32(p.X), int32(p.Y)
		v := hf.Vec3At(x, y)
		i := int32(len(mesh.Verts))
		mesh.Verts = append(mesh.Verts, v)
		if hasColor {
			mesh.Colors = append(mesh.Colors, hf.Color3(x, y))
		}
		index[p] = i
		return i
	}

	sub.OverFaces(func(t *Triangle) {
		i1 := vertexIndex(t.Corner1())
		i2 := vertexIndex(t.Corner2())
		i3 := vertexIndex(t.Corner3())
		mesh.Tris = append(mesh.Tris, i1, i2, i3)
	})

	mesh.NVerts = int32(len(mesh.Verts))
	mesh.NTris = int32(len(mesh.Tris) / 3)
	mesh.computeBounds()
	return mesh
}

func (mesh *TriMesh) computeBounds() {
	if len(mesh.Verts) == 0 {
		return
	}
	mesh.BMin = NewVec3(mesh.Verts[0].X(), mesh.Verts[0].Y(), mesh.Verts[0].Z())
	mesh.BMax = NewVec3(mesh.Verts[0].X(), mesh.Verts[0].Y(), mesh.Verts[0].Z())
	for _, v := range mesh.Verts[1:] {
		if v.X() < mesh.BMin.X() {
			mesh.BMin.SetX(v.X())
		}
		if v.Y() < mesh.BMin.Y() {
			mesh.BMin.SetY(v.Y())
		}
		if v.Z() < mesh.BMin.Z() {
			mesh.BMin.SetZ(v.Z())
		}
		if v.X() > mesh.BMax.X() {
			mesh.BMax.SetX(v.X())
		}
		if v.Y() > mesh.BMax.Y() {
			mesh.BMax.SetY(v.Y())
		}
		if v.Z() > mesh.BMax.Z() {
			mesh.BMax.SetZ(v.Z())
		}
	}
}

// TriCorners returns the three vertex positions of triangle i.
func (mesh *TriMesh) TriCorners(i int32) (a, b, c Vec3) {
	base := 3 * i
	return mesh.Verts[mesh.Tris[base]], mesh.Verts[mesh.Tris[base+1]], mesh.Verts[mesh.Tris[base+2]]
}
