// Package foam writes an assembled mesh as an OpenFOAM polyMesh
// directory: points, faces, owner, neighbour, boundary and, when cell
// zones are present, cellZones under <case>/constant/polyMesh.
package foam

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/simrego/nasToFoam/mesh"
)

const fileBanner = `/*--------------------------------*- C++ -*----------------------------------*\
| =========                 |                                                 |
| \\      /  F ield         | OpenFOAM: The Open Source CFD Toolbox           |
|  \\    /   O peration     | Version:  v2012                                 |
|   \\  /    A nd           | Website:  www.openfoam.com                      |
|    \\/     M anipulation  |                                                 |
\*---------------------------------------------------------------------------*/
`

const fileFooter = "// ************************************************************************* //\n"

type header struct {
	class  string
	note   string
	object string
}

func writeHeader(w io.Writer, h header) {
	fmt.Fprint(w, fileBanner)
	fmt.Fprintf(w, "FoamFile\n{\n")
	fmt.Fprintf(w, "    version     2.0;\n")
	fmt.Fprintf(w, "    format      ascii;\n")
	fmt.Fprintf(w, "    class       %s;\n", h.class)
	if h.note != "" {
		fmt.Fprintf(w, "    note        \"%s\";\n", h.note)
	}
	fmt.Fprintf(w, "    location    \"constant/polyMesh\";\n")
	fmt.Fprintf(w, "    object      %s;\n", h.object)
	fmt.Fprintf(w, "}\n")
	fmt.Fprintf(w, "// * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * //\n\n")
}

// Write creates <caseDir>/constant/polyMesh and writes all mesh files
// into it.
func Write(m *mesh.PolyMesh, caseDir string) error {
	dir := filepath.Join(caseDir, "constant", "polyMesh")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	if err := writePoints(m, dir); err != nil {
		return err
	}
	if err := writeFaces(m, dir); err != nil {
		return err
	}
	note := fmt.Sprintf("nPoints:%d nCells:%d nFaces:%d nInternalFaces:%d",
		len(m.Points), m.NumCells, len(m.Faces), m.NumInternalFaces())
	if err := writeLabels(dir, "owner", note, m.Owner); err != nil {
		return err
	}
	if err := writeLabels(dir, "neighbour", note, m.Neighbour); err != nil {
		return err
	}
	if err := writeBoundary(m, dir); err != nil {
		return err
	}
	if len(m.CellZones) > 0 {
		if err := writeCellZones(m, dir); err != nil {
			return err
		}
	}
	return nil
}

func writePoints(m *mesh.PolyMesh, dir string) error {
	file, err := os.Create(filepath.Join(dir, "points"))
	if err != nil {
		return err
	}
	defer file.Close()

	writeHeader(file, header{class: "vectorField", object: "points"})
	fmt.Fprintf(file, "%d\n(\n", len(m.Points))
	for _, p := range m.Points {
		fmt.Fprintf(file, "(%g %g %g)\n", p[0], p[1], p[2])
	}
	fmt.Fprintf(file, ")\n\n")
	fmt.Fprint(file, fileFooter)
	return nil
}

func writeFaces(m *mesh.PolyMesh, dir string) error {
	file, err := os.Create(filepath.Join(dir, "faces"))
	if err != nil {
		return err
	}
	defer file.Close()

	writeHeader(file, header{class: "faceList", object: "faces"})
	fmt.Fprintf(file, "%d\n(\n", len(m.Faces))
	for _, f := range m.Faces {
		fmt.Fprintf(file, "%d(", len(f))
		for i, v := range f {
			if i > 0 {
				fmt.Fprintf(file, " ")
			}
			fmt.Fprintf(file, "%d", v)
		}
		fmt.Fprintf(file, ")\n")
	}
	fmt.Fprintf(file, ")\n\n")
	fmt.Fprint(file, fileFooter)
	return nil
}

func writeLabels(dir, object, note string, labels []int) error {
	file, err := os.Create(filepath.Join(dir, object))
	if err != nil {
		return err
	}
	defer file.Close()

	writeHeader(file, header{class: "labelList", note: note, object: object})
	fmt.Fprintf(file, "%d\n(\n", len(labels))
	for _, l := range labels {
		fmt.Fprintf(file, "%d\n", l)
	}
	fmt.Fprintf(file, ")\n\n")
	fmt.Fprint(file, fileFooter)
	return nil
}

func writeBoundary(m *mesh.PolyMesh, dir string) error {
	file, err := os.Create(filepath.Join(dir, "boundary"))
	if err != nil {
		return err
	}
	defer file.Close()

	writeHeader(file, header{class: "polyBoundaryMesh", object: "boundary"})
	fmt.Fprintf(file, "%d\n(\n", len(m.Boundary))
	for _, p := range m.Boundary {
		fmt.Fprintf(file, "    %s\n", p.Name)
		fmt.Fprintf(file, "    {\n")
		fmt.Fprintf(file, "        type            patch;\n")
		fmt.Fprintf(file, "        nFaces          %d;\n", p.Size)
		fmt.Fprintf(file, "        startFace       %d;\n", p.Start)
		fmt.Fprintf(file, "    }\n")
	}
	fmt.Fprintf(file, ")\n\n")
	fmt.Fprint(file, fileFooter)
	return nil
}

func writeCellZones(m *mesh.PolyMesh, dir string) error {
	file, err := os.Create(filepath.Join(dir, "cellZones"))
	if err != nil {
		return err
	}
	defer file.Close()

	writeHeader(file, header{class: "regIOobject", object: "cellZones"})
	fmt.Fprintf(file, "%d\n(\n", len(m.CellZones))
	for _, z := range m.CellZones {
		fmt.Fprintf(file, "%s\n{\n", z.Name)
		fmt.Fprintf(file, "    type cellZone;\n")
		fmt.Fprintf(file, "    cellLabels      List<label>\n%d\n(\n", len(z.Cells))
		for _, c := range z.Cells {
			fmt.Fprintf(file, "%d\n", c)
		}
		fmt.Fprintf(file, ")\n;\n}\n\n")
	}
	fmt.Fprintf(file, ")\n\n")
	fmt.Fprint(file, fileFooter)
	return nil
}
