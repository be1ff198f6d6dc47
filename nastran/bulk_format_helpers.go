package nastran

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/simrego/nasToFoam/utils"
)

// BulkTestBuilder helps build bulk data test decks. The same mesh
// fixture can be rendered in all three column layouts, including the
// continuation lines the fixed layouts need for wide cards.
type BulkTestBuilder struct {
	Format Format
	tm     *utils.TestMeshes
}

// NewBulkTestBuilder creates a new builder with standard test meshes
func NewBulkTestBuilder(format Format) *BulkTestBuilder {
	return &BulkTestBuilder{
		Format: format,
		tm:     utils.GetStandardTestMeshes(),
	}
}

// BuildSingleTetTest creates a deck with one tet in one named zone
func (b *BulkTestBuilder) BuildSingleTetTest() string {
	mesh := b.tm.SingleTetMesh
	return b.BuildFromCompleteMesh(&mesh)
}

// BuildTwoTetTest creates a deck with two tetrahedra sharing a face
func (b *BulkTestBuilder) BuildTwoTetTest() string {
	mesh := b.tm.TwoTetMesh
	return b.BuildFromCompleteMesh(&mesh)
}

// BuildCubeTest creates a deck with one hex and six boundary quads
func (b *BulkTestBuilder) BuildCubeTest() string {
	mesh := b.tm.CubeMesh
	return b.BuildFromCompleteMesh(&mesh)
}

// BuildMixedElementTest creates a deck with a hex and a pyramid
func (b *BulkTestBuilder) BuildMixedElementTest() string {
	mesh := b.tm.MixedMesh
	return b.BuildFromCompleteMesh(&mesh)
}

// BuildFromCompleteMesh renders a complete deck: executive control
// header, BEGIN BULK, GRID cards, element cards, property cards with
// their name comments, ENDDATA.
func (b *BulkTestBuilder) BuildFromCompleteMesh(mesh *utils.CompleteMesh) string {
	var sections []string

	sections = append(sections, b.buildHeader())
	sections = append(sections, b.buildPoints(mesh))
	sections = append(sections, b.buildElements(mesh))
	sections = append(sections, b.buildProperties(mesh))
	sections = append(sections, "ENDDATA\n")

	return strings.Join(sections, "")
}

func (b *BulkTestBuilder) buildHeader() string {
	return "$ generated test deck\nSOL 101\nCEND\nBEGIN BULK\n"
}

func (b *BulkTestBuilder) buildPoints(mesh *utils.CompleteMesh) string {
	// Index order with a reverse lookup, so the deck is deterministic
	// even though the node maps are keyed by name
	nameByIndex := make([]string, len(mesh.Nodes.Nodes))
	for name, idx := range mesh.Nodes.NodeMap {
		nameByIndex[idx] = name
	}

	var sb strings.Builder
	for i, coords := range mesh.Nodes.Nodes {
		id := mesh.Nodes.NodeIDMap[nameByIndex[i]]
		fields := []string{
			strconv.Itoa(id),
			"", // coordinate system, left blank
			fmtFloat(coords[0]),
			fmtFloat(coords[1]),
			fmtFloat(coords[2]),
		}
		sb.WriteString(b.card("GRID", fields))
	}
	return sb.String()
}

func (b *BulkTestBuilder) buildElements(mesh *utils.CompleteMesh) string {
	var sb strings.Builder
	elemID := 1
	for _, elemSet := range mesh.Elements {
		keyword := cardKeywords[elemSet.Type]
		for i, elem := range elemSet.Elements {
			props := utils.ElementProps{}
			if i < len(elemSet.Properties) {
				props = elemSet.Properties[i]
			}
			fields := []string{
				strconv.Itoa(elemID),
				strconv.Itoa(props.PropertyID),
			}
			for _, nodeName := range elem {
				fields = append(fields, strconv.Itoa(mesh.Nodes.NodeIDMap[nodeName]))
			}
			sb.WriteString(b.card(keyword, fields))
			elemID++
		}
	}
	return sb.String()
}

func (b *BulkTestBuilder) buildProperties(mesh *utils.CompleteMesh) string {
	var sb strings.Builder
	for _, p := range mesh.Properties {
		if p.Name != "" {
			sb.WriteString(fmt.Sprintf("$ Property %d %s\n", p.ID, p.Name))
		}
		// Trailing material fields are flushed by the reader, so
		// include one like a real deck would
		sb.WriteString(b.card(p.Card, []string{strconv.Itoa(p.ID), "1"}))
	}
	return sb.String()
}

// card renders one logical card, splitting it over continuation lines
// when the field count exceeds one line of the active layout.
func (b *BulkTestBuilder) card(keyword string, fields []string) string {
	if b.Format == Free {
		return b.freeCard(keyword, fields)
	}
	return b.fixedCard(keyword, fields)
}

func (b *BulkTestBuilder) fixedCard(keyword string, fields []string) string {
	width := int(b.Format)
	perLine := 8 // 10 columns of 8: keyword, 8 data fields, marker
	if b.Format == Large {
		perLine = 4 // 8 + 4x16 leaves the marker at column 73
		keyword += "*"
	}
	var sb strings.Builder
	sb.WriteString(pad(keyword, 8))
	for i, f := range fields {
		if i > 0 && i%perLine == 0 {
			// Marker must sit directly before the newline
			sb.WriteString("+\n")
			sb.WriteString(pad("+", 8))
		}
		sb.WriteString(pad(f, width))
	}
	sb.WriteString("\n")
	return sb.String()
}

func (b *BulkTestBuilder) freeCard(keyword string, fields []string) string {
	const perLine = 8
	var sb strings.Builder
	sb.WriteString(keyword)
	for i, f := range fields {
		if i > 0 && i%perLine == 0 {
			sb.WriteString(",+\n+")
		}
		sb.WriteString(",")
		sb.WriteString(f)
	}
	sb.WriteString("\n")
	return sb.String()
}

func pad(s string, width int) string {
	return fmt.Sprintf("%-*s", width, s)
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// cardKeywords maps element types to their bulk data card names
var cardKeywords = map[utils.ElementType]string{
	utils.Triangle: "CTRIA3",
	utils.Quad:     "CQUAD4",
	utils.Tet:      "CTETRA",
	utils.Hex:      "CHEXA",
	utils.Pyramid:  "CPYRAM",
}
