package nastran

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"

	"github.com/simrego/nasToFoam/utils"
)

// TestReadBulkFormatEquivalence renders the same mesh in all three
// column layouts and checks that the parsed content is identical
func TestReadBulkFormatEquivalence(t *testing.T) {
	var ref *BulkData
	for _, format := range []Format{Small, Large, Free} {
		builder := NewBulkTestBuilder(format)
		content := builder.BuildMixedElementTest()
		bd, err := ReadBulk(strings.NewReader(content), Options{Format: format})
		require.NoError(t, err, "format %s", format)

		if ref == nil {
			ref = bd
			continue
		}
		require.Equal(t, ref.Points, bd.Points, "points differ in %s format", format)
		require.Equal(t, ref.PointIDMap, bd.PointIDMap, "point IDs differ in %s format", format)
		require.Equal(t, ref.Cells, bd.Cells, "cells differ in %s format", format)
		require.Equal(t, ref.Faces, bd.Faces, "faces differ in %s format", format)
		require.Equal(t, ref.Patches, bd.Patches, "patches differ in %s format", format)
		require.Equal(t, ref.Zones, bd.Zones, "zones differ in %s format", format)
	}
}

func TestReadBulkCube(t *testing.T) {
	tm := utils.GetStandardTestMeshes()
	for _, format := range []Format{Small, Large, Free} {
		t.Run(format.String(), func(t *testing.T) {
			builder := NewBulkTestBuilder(format)
			bd, err := ReadBulk(strings.NewReader(builder.BuildCubeTest()), Options{Format: format})
			require.NoError(t, err)

			require.Len(t, bd.Points, 9)
			require.Len(t, bd.Cells, 1)
			require.Len(t, bd.Faces, 6)
			require.Equal(t, utils.Hex, bd.Cells[0].Type)

			// Points come back renumbered in declaration order
			for name, idx := range tm.CubeNodes.NodeMap {
				id := tm.CubeNodes.NodeIDMap[name]
				require.Equal(t, idx, bd.PointIDMap[id], "point %s", name)
				require.Equal(t, tm.CubeNodes.Nodes[idx], bd.Points[bd.PointIDMap[id]], "point %s", name)
			}

			require.Len(t, bd.Patches, 3)
			require.Equal(t, "bottom", bd.Patches[0].Name)
			require.Equal(t, "top", bd.Patches[1].Name)
			require.Equal(t, "walls", bd.Patches[2].Name)
			require.Len(t, bd.Patches[0].Faces, 1)
			require.Len(t, bd.Patches[1].Faces, 1)
			require.Len(t, bd.Patches[2].Faces, 4)

			require.Len(t, bd.Zones, 1)
			require.Equal(t, "interior", bd.Zones[0].Name)
			require.Equal(t, []int{0}, bd.Zones[0].Cells)
		})
	}
}

// TestReadBulkSingleTet tests the minimal deck: one named zone, sparse
// non contiguous point IDs
func TestReadBulkSingleTet(t *testing.T) {
	builder := NewBulkTestBuilder(Small)
	bd, err := ReadBulk(strings.NewReader(builder.BuildSingleTetTest()), Options{Format: Small})
	require.NoError(t, err)

	require.Len(t, bd.Points, 5)
	require.Len(t, bd.Cells, 1)
	require.Empty(t, bd.Faces)
	require.Empty(t, bd.Patches)

	// The deck numbers its points 1, 5, 100, 7, 42
	require.Equal(t, map[int]int{1: 0, 5: 1, 100: 2, 7: 3, 42: 4}, bd.PointIDMap)
	require.Equal(t, []int{0, 1, 2, 3}, bd.Cells[0].Verts)

	require.Len(t, bd.Zones, 1)
	require.Equal(t, "fluid", bd.Zones[0].Name)
}

func TestNoCommentNames(t *testing.T) {
	builder := NewBulkTestBuilder(Free)
	opts := Options{Format: Free, NoCommentNames: true}
	bd, err := ReadBulk(strings.NewReader(builder.BuildCubeTest()), opts)
	require.NoError(t, err)

	require.Len(t, bd.Patches, 3)
	require.Equal(t, "patch_0", bd.Patches[0].Name)
	require.Equal(t, "patch_1", bd.Patches[1].Name)
	require.Equal(t, "patch_2", bd.Patches[2].Name)
	require.Len(t, bd.Zones, 1)
	require.Equal(t, "cellZone_0", bd.Zones[0].Name)
}

// TestCommentNotAdjacent tests that a comment separated from the
// property card by other cards does not name the group
func TestCommentNotAdjacent(t *testing.T) {
	deck := `BEGIN BULK
$ Zone fluid
GRID,1,,0.,0.,0.
GRID,5,,1.,0.,0.
GRID,100,,0.,1.,0.
GRID,7,,0.,0.,1.
CTETRA,1,1,1,5,100,7
PSOLID,1,1
ENDDATA
`
	bd, err := ReadBulk(strings.NewReader(deck), Options{Format: Free})
	require.NoError(t, err)
	require.Len(t, bd.Zones, 1)
	require.Equal(t, "cellZone_0", bd.Zones[0].Name)
}

// TestSynthesizedCounterSkipsNamedGroups tests that groups named from
// comments do not advance the synthesized name counter: the first
// unnamed group is patch_0 / cellZone_0 no matter how many named
// groups precede it
func TestSynthesizedCounterSkipsNamedGroups(t *testing.T) {
	deck := `BEGIN BULK
GRID,1,,0.,0.,0.
GRID,2,,1.,0.,0.
GRID,3,,0.,1.,0.
GRID,4,,0.,0.,1.
GRID,5,,1.,1.,1.
CTETRA,1,10,1,2,3,4
CTETRA,2,20,2,3,4,5
CTRIA3,3,1,1,2,3
CTRIA3,4,2,1,2,4
$ Property 1 inlet
PSHELL,1,1
PSHELL,2,1
$ Zone declaration fluid
PSOLID,10,1
PSOLID,20,1
ENDDATA
`
	bd, err := ReadBulk(strings.NewReader(deck), Options{Format: Free})
	require.NoError(t, err)
	require.Len(t, bd.Patches, 2)
	require.Equal(t, "inlet", bd.Patches[0].Name)
	require.Equal(t, "patch_0", bd.Patches[1].Name)
	require.Len(t, bd.Zones, 2)
	require.Equal(t, "fluid", bd.Zones[0].Name)
	require.Equal(t, "cellZone_0", bd.Zones[1].Name)

	// Naming disabled: every group is synthesized and the counter
	// walks the full sequence
	bd, err = ReadBulk(strings.NewReader(deck), Options{Format: Free, NoCommentNames: true})
	require.NoError(t, err)
	require.Equal(t, "patch_0", bd.Patches[0].Name)
	require.Equal(t, "patch_1", bd.Patches[1].Name)
	require.Equal(t, "cellZone_0", bd.Zones[0].Name)
	require.Equal(t, "cellZone_1", bd.Zones[1].Name)
}

func TestDuplicateProperty(t *testing.T) {
	deck := "BEGIN BULK\nPSOLID,1,1\nPSOLID,1,1\nENDDATA\n"
	_, err := ReadBulk(strings.NewReader(deck), Options{Format: Free})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrDuplicateProperty), "got %v", err)
	require.Contains(t, err.Error(), "line 3")
}

func TestUnknownKeyword(t *testing.T) {
	deck := "BEGIN BULK\nCBEAM,1,1,1,2\nENDDATA\n"
	_, err := ReadBulk(strings.NewReader(deck), Options{Format: Free})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnknownKeyword), "got %v", err)
	require.Contains(t, err.Error(), "CBEAM")
	require.Contains(t, err.Error(), "line 2")
}

func TestUnresolvedPointReference(t *testing.T) {
	deck := `BEGIN BULK
GRID,1,,0.,0.,0.
GRID,2,,1.,0.,0.
GRID,3,,0.,1.,0.
CTETRA,1,1,1,2,3,99
ENDDATA
`
	_, err := ReadBulk(strings.NewReader(deck), Options{Format: Free})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnresolvedPoint), "got %v", err)
	require.Contains(t, err.Error(), "point 99")
	require.Contains(t, err.Error(), "CTETRA")
}

func TestStrictProperties(t *testing.T) {
	deck := `BEGIN BULK
GRID,1,,0.,0.,0.
GRID,2,,1.,0.,0.
GRID,3,,0.,1.,0.
GRID,4,,0.,0.,1.
CTETRA,1,5,1,2,3,4
ENDDATA
`
	// Lax by default: the undeclared group is legal, just unnamed
	bd, err := ReadBulk(strings.NewReader(deck), Options{Format: Free})
	require.NoError(t, err)
	require.Len(t, bd.Zones, 1)
	require.Equal(t, "cellZone_0", bd.Zones[0].Name)

	_, err = ReadBulk(strings.NewReader(deck), Options{Format: Free, StrictProperties: true})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUndeclaredProperty), "got %v", err)
	require.Contains(t, err.Error(), "[5]")
}

func TestMissingBeginBulk(t *testing.T) {
	_, err := ReadBulk(strings.NewReader("SOL 101\nCEND\n"), Options{Format: Small})
	require.True(t, errors.Is(err, ErrMissingBulk), "got %v", err)
}

// TestEnddataOptional tests that a deck ending at EOF without an
// ENDDATA card still parses
func TestEnddataOptional(t *testing.T) {
	builder := NewBulkTestBuilder(Small)
	content := strings.TrimSuffix(builder.BuildSingleTetTest(), "ENDDATA\n")
	bd, err := ReadBulk(strings.NewReader(content), Options{Format: Small})
	require.NoError(t, err)
	require.Len(t, bd.Cells, 1)
	require.Equal(t, "fluid", bd.Zones[0].Name)
}

// TestDuplicateGridLastWins tests that redeclaring a point ID rebinds
// it to the newest point
func TestDuplicateGridLastWins(t *testing.T) {
	deck := "BEGIN BULK\nGRID,1,,0.,0.,0.\nGRID,1,,9.,9.,9.\nENDDATA\n"
	bd, err := ReadBulk(strings.NewReader(deck), Options{Format: Free})
	require.NoError(t, err)
	require.Len(t, bd.Points, 2)
	require.Equal(t, 1, bd.PointIDMap[1])
}

func TestReadDatFile(t *testing.T) {
	builder := NewBulkTestBuilder(Small)
	content := builder.BuildCubeTest()
	dir := t.TempDir()

	datFile := filepath.Join(dir, "cube.dat")
	require.NoError(t, os.WriteFile(datFile, []byte(content), 0644))

	bd, err := ReadDatFile(datFile, Options{Format: Small})
	require.NoError(t, err)
	require.Len(t, bd.Points, 9)

	t.Run("gzip", func(t *testing.T) {
		gzFile := filepath.Join(dir, "cube.dat.gz")
		f, err := os.Create(gzFile)
		require.NoError(t, err)
		zw := gzip.NewWriter(f)
		_, err = zw.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, zw.Close())
		require.NoError(t, f.Close())

		zbd, err := ReadDatFile(gzFile, Options{Format: Small})
		require.NoError(t, err)
		require.Equal(t, bd.Points, zbd.Points)
		require.Equal(t, bd.Cells, zbd.Cells)
		require.Equal(t, bd.Patches, zbd.Patches)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadDatFile(filepath.Join(dir, "absent.dat"), Options{Format: Small})
		require.Error(t, err)
	})
}
