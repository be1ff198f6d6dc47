package mesh

import (
	"fmt"
	"math"

	"github.com/simrego/nasToFoam/utils"
)

func sub(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func add(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func norm(a [3]float64) float64 {
	return math.Sqrt(dot(a, a))
}

func (m *PolyMesh) point(i int) [3]float64 {
	p := m.Points[i]
	return [3]float64{p[0], p[1], p[2]}
}

// FaceCentre is the average of the face's vertices.
func (m *PolyMesh) FaceCentre(face []int) [3]float64 {
	var c [3]float64
	for _, vi := range face {
		c = add(c, m.point(vi))
	}
	inv := 1.0 / float64(len(face))
	return [3]float64{c[0] * inv, c[1] * inv, c[2] * inv}
}

// FaceAreaVector is the face normal scaled by the face area, following
// the stored winding. Faces are fanned around their centre, which also
// handles the mildly non planar quads hex cells can produce.
func (m *PolyMesh) FaceAreaVector(face []int) [3]float64 {
	c := m.FaceCentre(face)
	var s [3]float64
	for i := range face {
		a := sub(m.point(face[i]), c)
		b := sub(m.point(face[(i+1)%len(face)]), c)
		t := cross(a, b)
		s = add(s, [3]float64{0.5 * t[0], 0.5 * t[1], 0.5 * t[2]})
	}
	return s
}

// CellVolumes integrates each cell volume over its faces. Face
// normals point out of the owner, so the owner gains the contribution
// and the neighbour loses it.
func (m *PolyMesh) CellVolumes() []float64 {
	vols := make([]float64, m.NumCells)
	for fi, face := range m.Faces {
		sf := m.FaceAreaVector(face)
		cf := m.FaceCentre(face)
		contrib := dot(cf, sf) / 3.0
		vols[m.Owner[fi]] += contrib
		if fi < len(m.Neighbour) {
			vols[m.Neighbour[fi]] -= contrib
		}
	}
	return vols
}

// Check validates the assembled geometry: every face needs a nonzero
// area and every cell a positive volume. A failure here means the deck
// declared degenerate or inverted elements.
func (m *PolyMesh) Check() error {
	badFaces := 0
	for _, face := range m.Faces {
		if norm(m.FaceAreaVector(face)) < utils.NODETOL {
			badFaces++
		}
	}
	badCells := 0
	for _, v := range m.CellVolumes() {
		if v < utils.NODETOL {
			badCells++
		}
	}
	if badFaces > 0 || badCells > 0 {
		return fmt.Errorf("mesh check failed: %d zero area faces, %d non positive volume cells", badFaces, badCells)
	}
	return nil
}
