package mesh

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/simrego/nasToFoam/utils"
)

// BoundingBox returns the min and max corners over all mesh points.
func (m *PolyMesh) BoundingBox() (min, max [3]float64) {
	if len(m.Points) == 0 {
		return
	}
	coord := make([]float64, len(m.Points))
	for d := 0; d < 3; d++ {
		for i, p := range m.Points {
			coord[i] = p[d]
		}
		min[d] = floats.Min(coord)
		max[d] = floats.Max(coord)
	}
	return
}

// PrintStatistics prints a summary of the converted mesh.
func (m *PolyMesh) PrintStatistics() {
	fmt.Printf("Mesh Statistics:\n")
	fmt.Printf("  Points: %d\n", len(m.Points))
	fmt.Printf("  Cells: %d\n", m.NumCells)
	fmt.Printf("  Faces: %d (%d internal)\n", len(m.Faces), m.NumInternalFaces())

	typeCounts := make(map[utils.ElementType]int)
	for _, t := range m.CellTypes {
		typeCounts[t]++
	}
	fmt.Printf("  Cell types:\n")
	for t, count := range typeCounts {
		fmt.Printf("    %s: %d\n", t, count)
	}

	fmt.Printf("  Patches:\n")
	for _, p := range m.Boundary {
		fmt.Printf("    %s: %d faces\n", p.Name, p.Size)
	}
	if len(m.CellZones) > 0 {
		fmt.Printf("  Cell zones:\n")
		for _, z := range m.CellZones {
			fmt.Printf("    %s: %d cells\n", z.Name, len(z.Cells))
		}
	}

	if m.NumCells > 0 {
		vols := m.CellVolumes()
		fmt.Printf("  Cell volumes: min %g, max %g, total %g\n",
			floats.Min(vols), floats.Max(vols), floats.Sum(vols))
	}
	if len(m.Points) > 0 {
		min, max := m.BoundingBox()
		fmt.Printf("  Bounding Box: Min(%g, %g, %g), Max(%g, %g, %g)\n",
			min[0], min[1], min[2], max[0], max[1], max[2])
	}
}
