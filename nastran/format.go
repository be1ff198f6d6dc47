package nastran

import (
	"fmt"
	"strings"
)

// Format selects one of the three NASTRAN bulk data column layouts.
// The value doubles as the data field width in characters; Free is
// comma delimited and has no fixed width.
type Format int

const (
	Free  Format = 0
	Small Format = 8
	Large Format = 16
)

func (f Format) String() string {
	switch f {
	case Free:
		return "free"
	case Small:
		return "small"
	case Large:
		return "large"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat maps a format name from the command line or a parameter
// file to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "small":
		return Small, nil
	case "large":
		return Large, nil
	case "free":
		return Free, nil
	}
	return Small, fmt.Errorf("unknown format %q, must be small, large or free", name)
}

// dataWidth is the column width of a data field: 8 in small format,
// 16 in large format, 0 (delimiter bounded) in free format.
func (f Format) dataWidth() int {
	return int(f)
}

// keywordWidth is the column width of the keyword field. Large format
// widens only the data fields; the keyword column stays 8 characters.
func (f Format) keywordWidth() int {
	if f == Free {
		return 0
	}
	return 8
}
