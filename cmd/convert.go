/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/simrego/nasToFoam/InputParameters"
	"github.com/simrego/nasToFoam/foam"
	"github.com/simrego/nasToFoam/mesh"
	"github.com/simrego/nasToFoam/nastran"
	"github.com/simrego/nasToFoam/utils"
)

type ConvertModel struct {
	DatFile        string
	ParamsFile     string
	CaseDir        string
	Format         string
	NoCommentNames bool
	Strict         bool
	Verbose        bool
	Profile        bool
	RenamePatches  map[string]string
}

// ConvertCmd represents the convert command
var ConvertCmd = &cobra.Command{
	Use:   "convert <file.dat>",
	Short: "Convert a NASTRAN bulk data file into an OpenFOAM polyMesh",
	Long: `Convert a NASTRAN bulk data file into an OpenFOAM polyMesh, writing
points, faces, owner, neighbour, boundary and cellZones under
<case>/constant/polyMesh.

Shell property regions (PSHELL) become boundary patches and solid
property regions (PSOLID) become cell zones, named after the comment
directly above the property card unless -n is given.

An optional YAML parameters file (-I) can hold the same settings, like:

########################################
Title: "Manifold"
Format: small
NoCommentNames: false
StrictProperties: true
CaseDir: "manifoldCase"
RenamePatches:
  patch_0: inlet
########################################
`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		cm := &ConvertModel{}
		if len(args) > 0 {
			cm.DatFile = args[0]
		}
		if cm.ParamsFile, err = cmd.Flags().GetString("parametersFile"); err != nil {
			panic(err)
		}
		if cm.Format, err = cmd.Flags().GetString("format"); err != nil {
			panic(err)
		}
		cm.CaseDir, _ = cmd.Flags().GetString("case")
		cm.NoCommentNames, _ = cmd.Flags().GetBool("noCommentNames")
		cm.Strict, _ = cmd.Flags().GetBool("strict")
		cm.Verbose, _ = cmd.Flags().GetBool("verbose")
		cm.Profile, _ = cmd.Flags().GetBool("profile")
		ip := processConvertInput(cm)
		applyParameters(cmd, cm, ip)
		if cm.Verbose && ip != nil {
			ip.Print()
		}
		if err = RunConvert(cm); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func processConvertInput(cm *ConvertModel) (ip *InputParameters.ConversionParameters) {
	var (
		err      error
		willExit bool
	)
	if len(cm.DatFile) == 0 {
		err := fmt.Errorf("must supply a bulk data file: nasToFoam convert <file.dat>")
		fmt.Printf("error: %s\n", err.Error())
		willExit = true
	}
	if willExit {
		os.Exit(1)
	}
	if len(cm.ParamsFile) != 0 {
		var data []byte
		if data, err = ioutil.ReadFile(cm.ParamsFile); err != nil {
			panic(err)
		}
		ip = &InputParameters.ConversionParameters{}
		if err = ip.Parse(data); err != nil {
			panic(err)
		}
	}
	return
}

// applyParameters fills in settings from the parameters file. Flags
// set explicitly on the command line win over file values.
func applyParameters(cmd *cobra.Command, cm *ConvertModel, ip *InputParameters.ConversionParameters) {
	if ip == nil {
		return
	}
	if ip.Format != "" && !cmd.Flags().Changed("format") {
		cm.Format = ip.Format
	}
	if ip.CaseDir != "" && !cmd.Flags().Changed("case") {
		cm.CaseDir = ip.CaseDir
	}
	if ip.NoCommentNames && !cmd.Flags().Changed("noCommentNames") {
		cm.NoCommentNames = true
	}
	if ip.StrictProperties && !cmd.Flags().Changed("strict") {
		cm.Strict = true
	}
	cm.RenamePatches = ip.RenamePatches
}

func init() {
	rootCmd.AddCommand(ConvertCmd)
	ConvertCmd.Flags().StringP("format", "f", "small", "bulk data field format: small, large or free")
	ConvertCmd.Flags().StringP("case", "c", ".", "OpenFOAM case directory to write into")
	ConvertCmd.Flags().StringP("parametersFile", "I", "", "YAML file for conversion parameters like:\n\t- Format\n\t- RenamePatches")
	ConvertCmd.Flags().BoolP("noCommentNames", "n", false, "ignore comment names, use synthesized patch and zone names")
	ConvertCmd.Flags().Bool("strict", false, "fail when elements reference undeclared property IDs")
	ConvertCmd.Flags().BoolP("verbose", "v", false, "print mesh statistics and memory usage")
	ConvertCmd.Flags().Bool("profile", false, "write a CPU profile of the conversion")
}

func RunConvert(cm *ConvertModel) error {
	if cm.Profile {
		defer profile.Start(profile.CPUProfile).Stop()
	}
	format, err := nastran.ParseFormat(cm.Format)
	if err != nil {
		return err
	}
	opts := nastran.Options{
		Format:           format,
		NoCommentNames:   cm.NoCommentNames,
		StrictProperties: cm.Strict,
	}
	fmt.Printf("Reading %s\n", cm.DatFile)
	bd, err := nastran.ReadDatFile(cm.DatFile, opts)
	if err != nil {
		return err
	}
	renameGroups(bd, cm.RenamePatches)
	m, err := mesh.NewPolyMesh(bd)
	if err != nil {
		return err
	}
	if err = m.Check(); err != nil {
		return err
	}
	if cm.Verbose {
		m.PrintStatistics()
		fmt.Printf("%s\n", utils.GetMemUsage())
	}
	if err = foam.Write(m, cm.CaseDir); err != nil {
		return err
	}
	fmt.Printf("Wrote %s: %d points, %d cells, %d faces (%d internal), %d patches\n",
		filepath.Join(cm.CaseDir, "constant", "polyMesh"),
		len(m.Points), m.NumCells, len(m.Faces), m.NumInternalFaces(), len(m.Boundary))
	return nil
}

func renameGroups(bd *nastran.BulkData, renames map[string]string) {
	if len(renames) == 0 {
		return
	}
	for i, p := range bd.Patches {
		if name, ok := renames[p.Name]; ok {
			bd.Patches[i].Name = name
		}
	}
	for i, z := range bd.Zones {
		if name, ok := renames[z.Name]; ok {
			bd.Zones[i].Name = name
		}
	}
}
