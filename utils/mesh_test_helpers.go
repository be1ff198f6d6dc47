package utils

// TestMeshes provides a collection of standard test meshes that can be
// rendered into bulk data decks in any column layout
type TestMeshes struct {
	// Node definitions
	CubeNodes  NodeSet
	TetraNodes NodeSet

	// Element definitions
	SingleTet     ElementSet
	SingleHex     ElementSet
	SinglePyramid ElementSet

	// Complete mesh definitions
	SingleTetMesh CompleteMesh
	TwoTetMesh    CompleteMesh
	CubeMesh      CompleteMesh
	MixedMesh     CompleteMesh
}

// NodeSet represents a set of nodes with their coordinates
type NodeSet struct {
	Nodes     [][]float64    // Coordinates [N][3]
	NodeMap   map[string]int // Logical name -> array index
	NodeIDMap map[string]int // Logical name -> point ID in the deck
}

// ElementSet represents a set of elements with connectivity
type ElementSet struct {
	Type       ElementType
	Elements   [][]string     // Connectivity using logical node names
	Properties []ElementProps // Per element properties
}

// ElementProps holds additional element properties
type ElementProps struct {
	PropertyID int
}

// PropertyDef declares one property card, optionally with a name to
// place in a comment directly above it
type PropertyDef struct {
	ID   int
	Card string // PSOLID or PSHELL
	Name string
}

// CompleteMesh represents a complete mesh with nodes, elements and
// property declarations
type CompleteMesh struct {
	Nodes      NodeSet
	Elements   []ElementSet
	Properties []PropertyDef
	Dimension  int
}

// GetStandardTestMeshes returns a set of standard test meshes
func GetStandardTestMeshes() *TestMeshes {
	tm := &TestMeshes{}

	// Initialize standard node sets
	tm.CubeNodes = createCubeNodes()
	tm.TetraNodes = createTetraNodes()

	// Initialize standard element sets
	tm.SingleTet = createSingleTet()
	tm.SingleHex = createSingleHex()
	tm.SinglePyramid = createSinglePyramid()

	// Initialize complete meshes
	tm.SingleTetMesh = createSingleTetMesh()
	tm.TwoTetMesh = createTwoTetMesh()
	tm.CubeMesh = createCubeMesh()
	tm.MixedMesh = createMixedMesh()

	return tm
}

// Node set creators

func createCubeNodes() NodeSet {
	nodes := [][]float64{
		{0, 0, 0}, // 0: origin
		{1, 0, 0}, // 1: x
		{1, 1, 0}, // 2: xy
		{0, 1, 0}, // 3: y
		{0, 0, 1}, // 4: z
		{1, 0, 1}, // 5: xz
		{1, 1, 1}, // 6: xyz
		{0, 1, 1}, // 7: yz
		// Apex above the cube for stacking a pyramid
		{0.5, 0.5, 2}, // 8: apex
	}

	nodeMap := map[string]int{
		"origin": 0, "x": 1, "xy": 2, "y": 3,
		"z": 4, "xz": 5, "xyz": 6, "yz": 7,
		"apex": 8,
	}

	// Point IDs are 1-based
	nodeIDMap := make(map[string]int)
	for name, idx := range nodeMap {
		nodeIDMap[name] = idx + 1
	}

	return NodeSet{
		Nodes:     nodes,
		NodeMap:   nodeMap,
		NodeIDMap: nodeIDMap,
	}
}

func createTetraNodes() NodeSet {
	// Standard tetrahedron with vertices at:
	// (0,0,0), (1,0,0), (0,1,0), (0,0,1) plus a fifth vertex on the
	// far side of the v1 v2 v3 face, for the two tet meshes
	nodes := [][]float64{
		{0, 0, 0}, // 0: v0
		{1, 0, 0}, // 1: v1
		{0, 1, 0}, // 2: v2
		{0, 0, 1}, // 3: v3
		{1, 1, 1}, // 4: v4
	}

	nodeMap := map[string]int{
		"v0": 0, "v1": 1, "v2": 2, "v3": 3, "v4": 4,
	}

	// Deliberately sparse, non contiguous point IDs: decks do not
	// have to number points in order
	nodeIDMap := map[string]int{
		"v0": 1, "v1": 5, "v2": 100, "v3": 7, "v4": 42,
	}

	return NodeSet{
		Nodes:     nodes,
		NodeMap:   nodeMap,
		NodeIDMap: nodeIDMap,
	}
}

// Element set creators

func createSingleTet() ElementSet {
	return ElementSet{
		Type: Tet,
		Elements: [][]string{
			{"v0", "v1", "v2", "v3"},
		},
		Properties: []ElementProps{
			{PropertyID: 1},
		},
	}
}

func createSingleHex() ElementSet {
	return ElementSet{
		Type: Hex,
		Elements: [][]string{
			{"origin", "x", "xy", "y", "z", "xz", "xyz", "yz"},
		},
		Properties: []ElementProps{
			{PropertyID: 1},
		},
	}
}

func createSinglePyramid() ElementSet {
	// Sits on the cube's top face, apex above
	return ElementSet{
		Type: Pyramid,
		Elements: [][]string{
			{"z", "xz", "xyz", "yz", "apex"},
		},
		Properties: []ElementProps{
			{PropertyID: 2},
		},
	}
}

// Complete mesh creators

func createSingleTetMesh() CompleteMesh {
	// The minimal useful deck: one tet in one named zone, no
	// boundary faces declared
	return CompleteMesh{
		Nodes:    createTetraNodes(),
		Elements: []ElementSet{createSingleTet()},
		Properties: []PropertyDef{
			{ID: 1, Card: "PSOLID", Name: "fluid"},
		},
		Dimension: 3,
	}
}

func createTwoTetMesh() CompleteMesh {
	elements := ElementSet{
		Type: Tet,
		Elements: [][]string{
			{"v0", "v1", "v2", "v3"},
			{"v1", "v2", "v3", "v4"},
		},
		Properties: []ElementProps{
			{PropertyID: 1},
			{PropertyID: 1},
		},
	}
	return CompleteMesh{
		Nodes:    createTetraNodes(),
		Elements: []ElementSet{elements},
		Properties: []PropertyDef{
			{ID: 1, Card: "PSOLID"},
		},
		Dimension: 3,
	}
}

func createCubeMesh() CompleteMesh {
	// One hex with all six boundary faces declared on three shell
	// properties: bottom, top and the four side walls
	faces := func(propID int, quads ...[]string) ElementSet {
		props := make([]ElementProps, len(quads))
		for i := range props {
			props[i] = ElementProps{PropertyID: propID}
		}
		return ElementSet{Type: Quad, Elements: quads, Properties: props}
	}
	return CompleteMesh{
		Nodes: createCubeNodes(),
		Elements: []ElementSet{
			createSingleHex(),
			faces(10, []string{"origin", "y", "xy", "x"}),
			faces(11, []string{"z", "xz", "xyz", "yz"}),
			faces(12,
				[]string{"origin", "x", "xz", "z"},
				[]string{"x", "xy", "xyz", "xz"},
				[]string{"xy", "y", "yz", "xyz"},
				[]string{"y", "origin", "z", "yz"},
			),
		},
		Properties: []PropertyDef{
			{ID: 1, Card: "PSOLID", Name: "interior"},
			{ID: 10, Card: "PSHELL", Name: "bottom"},
			{ID: 11, Card: "PSHELL", Name: "top"},
			{ID: 12, Card: "PSHELL", Name: "walls"},
		},
		Dimension: 3,
	}
}

func createMixedMesh() CompleteMesh {
	// Hex with a pyramid stacked on its top face; the shared quad
	// becomes the only internal face between unlike cell types. No
	// boundary faces are declared and no properties carry names.
	return CompleteMesh{
		Nodes: createCubeNodes(),
		Elements: []ElementSet{
			createSingleHex(),
			createSinglePyramid(),
		},
		Properties: []PropertyDef{
			{ID: 1, Card: "PSOLID"},
			{ID: 2, Card: "PSOLID"},
		},
		Dimension: 3,
	}
}
