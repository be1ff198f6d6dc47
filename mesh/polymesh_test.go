package mesh

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simrego/nasToFoam/nastran"
	"github.com/simrego/nasToFoam/utils"
)

// buildMesh parses a deck and assembles it, failing the test on any
// error along the way
func buildMesh(t *testing.T, content string, opts nastran.Options) *PolyMesh {
	t.Helper()
	bd, err := nastran.ReadBulk(strings.NewReader(content), opts)
	require.NoError(t, err)
	m, err := NewPolyMesh(bd)
	require.NoError(t, err)
	return m
}

func TestTwoTetTopology(t *testing.T) {
	builder := nastran.NewBulkTestBuilder(nastran.Small)
	m := buildMesh(t, builder.BuildTwoTetTest(), nastran.Options{Format: nastran.Small})

	require.Equal(t, 2, m.NumCells)
	require.Len(t, m.Faces, 7, "two tets sharing one face have 7 distinct faces")
	require.Equal(t, 1, m.NumInternalFaces())

	// The shared face comes first, owned by the lower cell
	require.Equal(t, 0, m.Owner[0])
	require.Equal(t, 1, m.Neighbour[0])
	shared := append([]int(nil), m.Faces[0]...)
	sort.Ints(shared)
	require.Equal(t, []int{1, 2, 3}, shared, "the shared face is v1 v2 v3")

	require.Len(t, m.Boundary, 1)
	require.Equal(t, "defaultFaces", m.Boundary[0].Name)
	require.Equal(t, 1, m.Boundary[0].Start)
	require.Equal(t, 6, m.Boundary[0].Size)

	// Boundary faces are all owned by a real cell
	for i := m.NumInternalFaces(); i < len(m.Faces); i++ {
		require.GreaterOrEqual(t, m.Owner[i], 0)
		require.Less(t, m.Owner[i], m.NumCells)
	}

	require.NoError(t, m.Check())
}

func TestCubePatches(t *testing.T) {
	builder := nastran.NewBulkTestBuilder(nastran.Free)
	m := buildMesh(t, builder.BuildCubeTest(), nastran.Options{Format: nastran.Free})

	require.Equal(t, 1, m.NumCells)
	require.Len(t, m.Faces, 6)
	require.Equal(t, 0, m.NumInternalFaces())

	// All six faces are claimed, in ascending property ID order, so
	// there is no defaultFaces patch
	require.Len(t, m.Boundary, 3)
	require.Equal(t, PatchSpec{Name: "bottom", Start: 0, Size: 1}, m.Boundary[0])
	require.Equal(t, PatchSpec{Name: "top", Start: 1, Size: 1}, m.Boundary[1])
	require.Equal(t, PatchSpec{Name: "walls", Start: 2, Size: 4}, m.Boundary[2])

	require.Len(t, m.CellZones, 1)
	require.Equal(t, "interior", m.CellZones[0].Name)
	require.Equal(t, []int{0}, m.CellZones[0].Cells)

	require.NoError(t, m.Check())
}

func TestMixedElementMesh(t *testing.T) {
	builder := nastran.NewBulkTestBuilder(nastran.Large)
	m := buildMesh(t, builder.BuildMixedElementTest(), nastran.Options{Format: nastran.Large})

	require.Equal(t, 2, m.NumCells)
	require.Equal(t, []utils.ElementType{utils.Hex, utils.Pyramid}, m.CellTypes)

	// The pyramid sits on the hex top face: one internal quad, nine
	// free faces nobody claimed
	require.Equal(t, 1, m.NumInternalFaces())
	require.Len(t, m.Faces, 10)
	require.Equal(t, 0, m.Owner[0])
	require.Equal(t, 1, m.Neighbour[0])
	require.Len(t, m.Faces[0], 4, "the shared face is a quad")

	require.Len(t, m.Boundary, 1)
	require.Equal(t, "defaultFaces", m.Boundary[0].Name)
	require.Equal(t, 9, m.Boundary[0].Size)

	require.Len(t, m.CellZones, 2)
	require.Equal(t, "cellZone_0", m.CellZones[0].Name)
	require.Equal(t, "cellZone_1", m.CellZones[1].Name)

	require.NoError(t, m.Check())
}

// TestFaceSharedByThreeCells tests that an overconnected mesh is
// rejected during face matching
func TestFaceSharedByThreeCells(t *testing.T) {
	bd := &nastran.BulkData{
		Points: [][]float64{
			{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
			{0, 0, 1}, {0, 0, -1}, {1, 1, 1},
		},
		Cells: []nastran.Cell{
			{Type: utils.Tet, Verts: []int{0, 1, 2, 3}, PropID: 1},
			{Type: utils.Tet, Verts: []int{0, 1, 2, 4}, PropID: 1},
			{Type: utils.Tet, Verts: []int{0, 1, 2, 5}, PropID: 1},
		},
	}
	_, err := NewPolyMesh(bd)
	require.Error(t, err)
	require.Contains(t, err.Error(), "more than two cells")
}

// TestUnmatchedPatchFace tests that a declared boundary face with no
// matching free cell face is rejected
func TestUnmatchedPatchFace(t *testing.T) {
	bd := &nastran.BulkData{
		Points: [][]float64{
			{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {5, 5, 5},
		},
		Cells: []nastran.Cell{
			{Type: utils.Tet, Verts: []int{0, 1, 2, 3}, PropID: 1},
		},
		Faces: []nastran.Face{
			{Type: utils.Triangle, Verts: []int{0, 1, 4}, PropID: 7},
		},
		Patches: []nastran.Patch{
			{Name: "inlet", Faces: []int{0}},
		},
	}
	_, err := NewPolyMesh(bd)
	require.Error(t, err)
	require.Contains(t, err.Error(), `patch "inlet"`)
}

// TestClaimedFaceKeepsOwnerWinding tests that a claimed boundary face
// is stored with the owning cell's outward winding, whatever order the
// card listed the vertices in
func TestClaimedFaceKeepsOwnerWinding(t *testing.T) {
	deck := `BEGIN BULK
GRID,1,,0.,0.,0.
GRID,2,,1.,0.,0.
GRID,3,,0.,1.,0.
GRID,4,,0.,0.,1.
CTETRA,1,1,1,2,3,4
CTRIA3,2,10,2,1,3
ENDDATA
`
	m := buildMesh(t, deck, nastran.Options{Format: nastran.Free})
	require.Len(t, m.Boundary, 2)
	require.Equal(t, 1, m.Boundary[0].Size)

	// The claimed bottom face must point out of the tet, in -z
	sf := m.FaceAreaVector(m.Faces[m.Boundary[0].Start])
	require.InDelta(t, 0.0, sf[0], 1e-12)
	require.InDelta(t, 0.0, sf[1], 1e-12)
	require.InDelta(t, -0.5, sf[2], 1e-12)
}
