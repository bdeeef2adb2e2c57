package editorconfig

import (
	"fmt"
	"strconv"
	"strings"
)

// VersionError reports that a caller required a feature version newer
// than this engine implements. No resolution is attempted.
type VersionError struct {
	Required  string
	Supported string
}

// Error implements the error interface.
func (e *VersionError) Error() string {
	return fmt.Sprintf("required version %s is greater than the current version %s", e.Required, e.Supported)
}

// compareVersions compares the first three dot- or dash-separated
// components of two version strings. A component that is missing or
// not an integer compares as -1, so "0.12.0-final" orders as 0.12.0.
func compareVersions(a, b string) int {
	splitVersion := func(v string) []string {
		return strings.FieldsFunc(v, func(r rune) bool {
			return r == '.' || r == '-'
		})
	}
	av := splitVersion(a)
	bv := splitVersion(b)

	component := func(parts []string, i int) int {
		if i >= len(parts) {
			return -1
		}
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return -1
		}
		return n
	}

	for i := 0; i < 3; i++ {
		va := component(av, i)
		vb := component(bv, i)
		if va != vb {
			return va - vb
		}
	}
	return 0
}
