package utils

// ElementType identifies the element shapes a NASTRAN volume deck can
// contain: two boundary face shapes and three volume cell shapes.
type ElementType int

const (
	Unknown ElementType = iota
	// 2D elements (boundary faces)
	Triangle
	Quad
	// 3D elements (volume cells)
	Tet
	Hex
	Pyramid
)

// String representation of element types
func (e ElementType) String() string {
	names := []string{
		"Unknown",
		"Triangle", "Quad",
		"Tet", "Hex", "Pyramid",
	}
	if int(e) < len(names) {
		return names[e]
	}
	return "Invalid"
}

// GetDimension returns the spatial dimension of the element
func (e ElementType) GetDimension() int {
	switch e {
	case Triangle, Quad:
		return 2
	case Tet, Hex, Pyramid:
		return 3
	default:
		return -1
	}
}

// GetNumNodes returns the number of vertices for each element type
func (e ElementType) GetNumNodes() int {
	switch e {
	case Triangle:
		return 3
	case Quad:
		return 4
	case Tet:
		return 4
	case Hex:
		return 8
	case Pyramid:
		return 5
	default:
		return 0
	}
}

// GetNumFaces returns the number of faces for 3D elements
func (e ElementType) GetNumFaces() int {
	switch e {
	case Tet:
		return 4
	case Hex:
		return 6
	case Pyramid:
		return 5
	default:
		return 0
	}
}

// GetElementFaces returns the faces of an element as vertex lists.
// Faces are wound so their right-hand normals point out of the element,
// assuming the standard vertex numbering (hex: bottom 4 then top 4,
// pyramid: base 4 then apex). These orientations match the OpenFOAM
// cell models, so faces can be handed to a polyMesh unmodified.
func GetElementFaces(elemType ElementType, vertices []int) [][]int {
	v := vertices
	switch elemType {
	case Tet:
		return [][]int{
			{v[0], v[2], v[1]}, // Face 0
			{v[0], v[1], v[3]}, // Face 1
			{v[0], v[3], v[2]}, // Face 2
			{v[1], v[2], v[3]}, // Face 3
		}

	case Hex:
		return [][]int{
			{v[0], v[3], v[2], v[1]}, // Face 0 (bottom)
			{v[4], v[5], v[6], v[7]}, // Face 1 (top)
			{v[0], v[1], v[5], v[4]}, // Face 2
			{v[1], v[2], v[6], v[5]}, // Face 3
			{v[2], v[3], v[7], v[6]}, // Face 4
			{v[3], v[0], v[4], v[7]}, // Face 5
		}

	case Pyramid:
		return [][]int{
			{v[0], v[3], v[2], v[1]}, // Face 0 (base quad)
			{v[0], v[1], v[4]},       // Face 1 (tri)
			{v[1], v[2], v[4]},       // Face 2 (tri)
			{v[2], v[3], v[4]},       // Face 3 (tri)
			{v[3], v[0], v[4]},       // Face 4 (tri)
		}

	default:
		return [][]int{}
	}
}
