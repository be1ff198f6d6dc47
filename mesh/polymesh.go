package mesh

import (
	"fmt"
	"sort"

	"github.com/simrego/nasToFoam/nastran"
	"github.com/simrego/nasToFoam/utils"
)

// PatchSpec is one boundary patch: a contiguous run of faces at the
// end of the face list.
type PatchSpec struct {
	Name  string
	Start int
	Size  int
}

// ZoneSpec is one cell zone.
type ZoneSpec struct {
	Name  string
	Cells []int
}

// PolyMesh is the face addressed mesh the converter writes out: shared
// points, faces with owner and neighbour cells, internal faces first
// in upper triangular order, then the boundary faces grouped by patch.
type PolyMesh struct {
	Points    [][]float64
	Faces     [][]int
	Owner     []int // owning cell per face
	Neighbour []int // internal faces only
	Boundary  []PatchSpec
	CellZones []ZoneSpec

	NumCells  int
	CellTypes []utils.ElementType
}

// firstSighting records the cell that first produced a face during
// matching, with the winding pointing out of that cell.
type firstSighting struct {
	cell  int
	verts []int
}

// NewPolyMesh assembles a face addressed mesh from bulk data. Cell
// faces are matched pairwise into internal faces; the declared
// boundary faces claim their matching free cell faces patch by patch,
// and whatever remains unclaimed ends up on the defaultFaces patch.
func NewPolyMesh(bd *nastran.BulkData) (*PolyMesh, error) {
	m := &PolyMesh{
		Points:   bd.Points,
		NumCells: len(bd.Cells),
	}
	for _, c := range bd.Cells {
		m.CellTypes = append(m.CellTypes, c.Type)
	}

	type internalFace struct {
		owner, neighbour int
		verts            []int
	}
	var internal []internalFace

	// First sighting of each face keyed by sorted vertices. A second
	// sighting closes the face; a third is a broken mesh.
	open := make(map[string]firstSighting, 4*len(bd.Cells))
	closed := make(map[string]bool)

	for cellID, cell := range bd.Cells {
		for _, fv := range utils.GetElementFaces(cell.Type, cell.Verts) {
			key := faceKey(fv)
			if closed[key] {
				return nil, fmt.Errorf("face %v is shared by more than two cells", fv)
			}
			prev, exists := open[key]
			if !exists {
				open[key] = firstSighting{cell: cellID, verts: fv}
				continue
			}
			// Cells are scanned in ascending order, so the first
			// sighting is the lower cell: it owns the face and its
			// winding already points out of the owner.
			internal = append(internal, internalFace{
				owner:     prev.cell,
				neighbour: cellID,
				verts:     prev.verts,
			})
			delete(open, key)
			closed[key] = true
		}
	}

	sort.Slice(internal, func(i, j int) bool {
		if internal[i].owner != internal[j].owner {
			return internal[i].owner < internal[j].owner
		}
		return internal[i].neighbour < internal[j].neighbour
	})
	for _, f := range internal {
		m.Faces = append(m.Faces, f.verts)
		m.Owner = append(m.Owner, f.owner)
		m.Neighbour = append(m.Neighbour, f.neighbour)
	}

	// Declared boundary faces, patch by patch in resolved order. The
	// stored winding comes from the owning cell, not from the card.
	for _, patch := range bd.Patches {
		start := len(m.Faces)
		for _, faceIdx := range patch.Faces {
			bf := bd.Faces[faceIdx]
			key := faceKey(bf.Verts)
			cf, exists := open[key]
			if !exists {
				return nil, fmt.Errorf("patch %q face %v does not match any free cell face", patch.Name, bf.Verts)
			}
			m.Faces = append(m.Faces, cf.verts)
			m.Owner = append(m.Owner, cf.cell)
			delete(open, key)
		}
		m.Boundary = append(m.Boundary, PatchSpec{Name: patch.Name, Start: start, Size: len(patch.Faces)})
	}

	// Remaining free faces, in cell scan order.
	start := len(m.Faces)
	for cellID, cell := range bd.Cells {
		for _, fv := range utils.GetElementFaces(cell.Type, cell.Verts) {
			key := faceKey(fv)
			if cf, exists := open[key]; exists && cf.cell == cellID {
				m.Faces = append(m.Faces, fv)
				m.Owner = append(m.Owner, cellID)
				delete(open, key)
			}
		}
	}
	if n := len(m.Faces) - start; n > 0 {
		m.Boundary = append(m.Boundary, PatchSpec{Name: "defaultFaces", Start: start, Size: n})
	}

	for _, z := range bd.Zones {
		m.CellZones = append(m.CellZones, ZoneSpec{Name: z.Name, Cells: z.Cells})
	}
	return m, nil
}

// faceKey builds a winding independent identity for a face.
func faceKey(verts []int) string {
	sorted := make([]int, len(verts))
	copy(sorted, verts)
	sort.Ints(sorted)
	return fmt.Sprintf("%v", sorted)
}

// NumInternalFaces is the count of faces with a cell on both sides.
func (m *PolyMesh) NumInternalFaces() int {
	return len(m.Neighbour)
}
