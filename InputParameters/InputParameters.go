package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type ConversionParameters struct {
	Title            string            `yaml:"Title"`
	Format           string            `yaml:"Format"` // small, large or free
	NoCommentNames   bool              `yaml:"NoCommentNames"`
	StrictProperties bool              `yaml:"StrictProperties"`
	CaseDir          string            `yaml:"CaseDir"`
	RenamePatches    map[string]string `yaml:"RenamePatches"` // Key is the name coming out of the deck
}

func (cp *ConversionParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, cp)
}

func (cp *ConversionParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", cp.Title)
	fmt.Printf("[%s]\t\t\t= Format\n", cp.Format)
	fmt.Printf("[%v]\t\t\t= NoCommentNames\n", cp.NoCommentNames)
	fmt.Printf("[%v]\t\t\t= StrictProperties\n", cp.StrictProperties)
	fmt.Printf("\"%s\"\t\t= CaseDir\n", cp.CaseDir)
	keys := make([]string, len(cp.RenamePatches))
	i := 0
	for k := range cp.RenamePatches {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("RenamePatches[%s] = %v\n", key, cp.RenamePatches[key])
	}
}
