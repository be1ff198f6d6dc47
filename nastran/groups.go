package nastran

import (
	"fmt"
	"sort"
)

// Patch is a named group of boundary faces, held as indices into
// BulkData.Faces.
type Patch struct {
	Name  string
	Faces []int
}

// Zone is a named group of volume cells, held as indices into
// BulkData.Cells.
type Zone struct {
	Name  string
	Cells []int
}

// resolveGroups turns the property keyed face and cell groups into
// named patches and zones. Groups are emitted in ascending property ID
// order, which is the one deterministic order available: declaration
// order does not exist for IDs that were used but never declared.
// Empty groups are skipped. A group without a usable comment name gets
// a synthesized one; the counter runs over synthesized names only, so
// patch_0 is the first unnamed patch no matter how many named ones
// precede it.
func resolveGroups(cellGroups, faceGroups map[int][]int, props map[int]string, useNames bool) (patches []Patch, zones []Zone) {
	synth := 0
	for _, id := range sortedKeys(faceGroups) {
		faces := faceGroups[id]
		if len(faces) == 0 {
			continue
		}
		name := ""
		if useNames {
			name = props[id]
		}
		if name == "" {
			name = fmt.Sprintf("patch_%d", synth)
			synth++
		}
		patches = append(patches, Patch{Name: name, Faces: faces})
	}

	synth = 0
	for _, id := range sortedKeys(cellGroups) {
		cells := cellGroups[id]
		if len(cells) == 0 {
			continue
		}
		name := ""
		if useNames {
			name = props[id]
		}
		if name == "" {
			name = fmt.Sprintf("cellZone_%d", synth)
			synth++
		}
		zones = append(zones, Zone{Name: name, Cells: cells})
	}
	return patches, zones
}

func sortedKeys(m map[int][]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
