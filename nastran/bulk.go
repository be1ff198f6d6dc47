package nastran

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/simrego/nasToFoam/utils"
)

// Options control one conversion run.
type Options struct {
	Format Format
	// NoCommentNames disables naming patches and zones from deck
	// comments; every group gets a synthesized name instead.
	NoCommentNames bool
	// StrictProperties rejects decks where a cell or face references
	// a property ID never declared by a PSOLID or PSHELL card. Off by
	// default: such groups are legal and simply end up unnamed.
	StrictProperties bool
}

// Cell is a volume element with resolved 0 based vertex indices.
type Cell struct {
	Type   utils.ElementType // Tet, Hex or Pyramid
	Verts  []int
	PropID int
}

// Face is a boundary face with resolved 0 based vertex indices.
type Face struct {
	Type   utils.ElementType // Triangle or Quad
	Verts  []int
	PropID int
}

// BulkData is the assembled content of one deck: renumbered points,
// volume cells, boundary faces, and the property groups resolved into
// named patches and zones. All indices are 0 based and internally
// consistent.
type BulkData struct {
	Points     [][]float64
	PointIDMap map[int]int // NASTRAN point ID to index into Points

	Cells []Cell
	Faces []Face

	Patches []Patch // boundary face groups, one per used PSHELL ID
	Zones   []Zone  // cell groups, one per used PSOLID ID

	cellGroups map[int][]int  // property ID to cell indices
	faceGroups map[int][]int  // property ID to face indices
	props      map[int]string // declared property IDs and their comment names
}

// ReadDatFile reads a NASTRAN bulk data file and assembles its mesh
// content. Files ending in .gz are decompressed on the fly.
func ReadDatFile(filename string, opts Options) (*BulkData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var r io.Reader = file
	if strings.HasSuffix(filename, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read gzip header: %w", err)
		}
		defer gz.Close()
		r = gz
	}
	return ReadBulk(r, opts)
}

// ReadBulk assembles bulk data from a stream. Any parse failure
// rejects the whole deck; a non nil BulkData is always complete.
func ReadBulk(r io.Reader, opts Options) (*BulkData, error) {
	rd := NewReader(r, opts.Format)
	if err := rd.FindBulk(); err != nil {
		return nil, err
	}

	bd := &BulkData{
		PointIDMap: make(map[int]int),
		cellGroups: make(map[int][]int),
		faceGroups: make(map[int][]int),
		props:      make(map[int]string),
	}
	if err := bd.readCards(rd); err != nil {
		return nil, err
	}
	if opts.StrictProperties {
		if err := bd.checkDeclared(); err != nil {
			return nil, err
		}
	}
	bd.Patches, bd.Zones = resolveGroups(bd.cellGroups, bd.faceGroups, bd.props, !opts.NoCommentNames)
	return bd, nil
}

// readCards is the dispatch loop. Each handler consumes a homogeneous
// run of its card and returns the first keyword that broke the run, so
// the loop always branches on a freshly read keyword. The deck ends at
// ENDDATA or at a clean EOF between cards.
func (bd *BulkData) readCards(rd *Reader) error {
	kw, err := rd.ReadKeyword()
	for {
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch kw {
		case "GRID":
			kw, err = bd.readPoints(rd)
		case "CTETRA":
			kw, err = bd.readCells(rd, utils.Tet)
		case "CPYRAM":
			kw, err = bd.readCells(rd, utils.Pyramid)
		case "CHEXA":
			kw, err = bd.readCells(rd, utils.Hex)
		case "CTRIA3":
			kw, err = bd.readFaces(rd, utils.Triangle)
		case "CQUAD4":
			kw, err = bd.readFaces(rd, utils.Quad)
		case "PSOLID", "PSHELL":
			kw, err = bd.readProperty(rd)
		default:
			if strings.HasPrefix(kw, "ENDDATA") {
				return nil
			}
			return fmt.Errorf("%w %q on line %d", ErrUnknownKeyword, kw, rd.entryLine)
		}
	}
}

// GRID card: GRID ID CP X Y Z. The CP coordinate system field is
// accepted and ignored, trailing fields are flushed with the card.
func (bd *BulkData) readPoints(rd *Reader) (string, error) {
	for {
		id, err := rd.ReadInt()
		if err != nil {
			return "", err
		}
		if _, err := rd.NextField(); err != nil {
			return "", err
		}
		pt := make([]float64, 3)
		for i := range pt {
			if pt[i], err = rd.ReadFloat(); err != nil {
				return "", err
			}
		}
		bd.PointIDMap[id] = len(bd.Points)
		bd.Points = append(bd.Points, pt)

		kw, err := rd.ReadKeyword()
		if kw != "GRID" || err != nil {
			return kw, err
		}
	}
}

// Cell cards: <keyword> EID PID G1..Gn. The element ID is ignored,
// vertices are translated to point indices immediately.
func (bd *BulkData) readCells(rd *Reader, elemType utils.ElementType) (string, error) {
	card := rd.Entry()
	nVerts := elemType.GetNumNodes()
	for {
		if _, err := rd.NextField(); err != nil {
			return "", err
		}
		propID, err := rd.ReadInt()
		if err != nil {
			return "", err
		}
		verts := make([]int, nVerts)
		for i := range verts {
			idx, err := bd.pointIndex(rd, card)
			if err != nil {
				return "", err
			}
			verts[i] = idx
		}
		bd.cellGroups[propID] = append(bd.cellGroups[propID], len(bd.Cells))
		bd.Cells = append(bd.Cells, Cell{Type: elemType, Verts: verts, PropID: propID})

		kw, err := rd.ReadKeyword()
		if kw != card || err != nil {
			return kw, err
		}
	}
}

// Face cards: CTRIA3 and CQUAD4, same layout as the cell cards with 3
// or 4 vertices.
func (bd *BulkData) readFaces(rd *Reader, elemType utils.ElementType) (string, error) {
	card := rd.Entry()
	nVerts := elemType.GetNumNodes()
	for {
		if _, err := rd.NextField(); err != nil {
			return "", err
		}
		propID, err := rd.ReadInt()
		if err != nil {
			return "", err
		}
		verts := make([]int, nVerts)
		for i := range verts {
			idx, err := bd.pointIndex(rd, card)
			if err != nil {
				return "", err
			}
			verts[i] = idx
		}
		bd.faceGroups[propID] = append(bd.faceGroups[propID], len(bd.Faces))
		bd.Faces = append(bd.Faces, Face{Type: elemType, Verts: verts, PropID: propID})

		kw, err := rd.ReadKeyword()
		if kw != card || err != nil {
			return kw, err
		}
	}
}

// pointIndex reads one vertex reference and resolves it through the
// point ID map. Points must be declared before use.
func (bd *BulkData) pointIndex(rd *Reader, card string) (int, error) {
	ln := rd.Line()
	id, err := rd.ReadInt()
	if err != nil {
		return 0, err
	}
	idx, ok := bd.PointIDMap[id]
	if !ok {
		return 0, fmt.Errorf("%w: point %d used by %s on line %d", ErrUnresolvedPoint, id, card, ln)
	}
	return idx, nil
}

// Property cards: PSOLID and PSHELL declare a property ID, sharing one
// ID namespace. A comment line directly above the card names the
// resulting zone or patch.
func (bd *BulkData) readProperty(rd *Reader) (string, error) {
	ln := rd.Line()
	id, err := rd.ReadInt()
	if err != nil {
		return "", err
	}
	if _, ok := bd.props[id]; ok {
		return "", fmt.Errorf("%w %d redeclared on line %d", ErrDuplicateProperty, id, ln)
	}
	name := ""
	if cname, cline, ok := rd.LastComment(); ok && cline == ln {
		name = cname
	}
	bd.props[id] = name
	return rd.ReadKeyword()
}

// checkDeclared enforces StrictProperties: every property ID used by a
// cell or face must have been declared.
func (bd *BulkData) checkDeclared() error {
	seen := make(map[int]bool)
	var missing []int
	for _, groups := range []map[int][]int{bd.cellGroups, bd.faceGroups} {
		for id := range groups {
			if _, ok := bd.props[id]; !ok && !seen[id] {
				seen[id] = true
				missing = append(missing, id)
			}
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Ints(missing)
	return fmt.Errorf("%w: IDs %v referenced but never declared", ErrUndeclaredProperty, missing)
}
