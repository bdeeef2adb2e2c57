// Package parse turns the raw text of one configuration source into
// its ordered sections.
//
// A source is INI-shaped: comment lines start with # or ;, section
// headers are [pattern], assignments are key = value or key : value.
// Whether a section's options are collected is decided once per
// header, by the HeaderMatcher the caller supplies. Malformed lines do
// not abort the scan; they are accumulated so a single pass reports
// every one of them.
package parse

import (
	"fmt"
	"regexp"
	"strings"
)

// Line patterns mirror the format grammar: a header's bracket body may
// contain escaped \# and \; but no bare comment character, and trailing
// text after the closing bracket is ignored; an assignment splits on
// the first : or =.
var (
	sectionPattern = regexp.MustCompile(`^\s*\[(([^#;]|\\#|\\;)+)\].*$`)
	optionPattern  = regexp.MustCompile(`^\s*([^:=\s][^:=]*)\s*[:=]\s*(.*)$`)
)

// Option is one key/value assignment, key already lowercased.
type Option struct {
	Key   string
	Value string
}

// Section is one [pattern] block. Matched records whether the header
// applied to the target path; Options holds the assignments seen under
// a matched header, in file order.
type Section struct {
	Header  string
	Matched bool
	Options []Option
}

// File is the parse result for one configuration source.
type File struct {
	// Root is true when the preamble declares root=true, which stops
	// the upward walk at this source's directory.
	Root bool

	// Sections in file order.
	Sections []Section
}

// HeaderMatcher reports whether a section header applies to the target
// path. A non-nil error marks the header line as malformed.
type HeaderMatcher func(header string) (bool, error)

// Hooks receives scan callbacks. A false return skips the element.
// A nil Hooks never skips.
type Hooks interface {
	// Line is called for every raw line before classification.
	Line(line string) bool

	// Option is called before an assignment in a matched section is
	// recorded.
	Option(key, value string) bool
}

// Error reports every malformed line found in one source.
type Error struct {
	Lines []string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%d malformed lines:\n%s", len(e.Lines), strings.Join(e.Lines, "\n"))
}

// Parse scans one source. Lines are trimmed and a leading byte-order
// mark is tolerated per line. In the preamble only root=true is
// meaningful; after a header, assignments belong to that section and
// are collected when the header matched.
func Parse(text string, match HeaderMatcher, hooks Hooks) (*File, error) {
	file := &File{}
	var malformed []string
	inSection := false

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	var lines []string
	if text != "" {
		lines = strings.Split(text, "\n")
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "\uFEFF")

		if hooks != nil && !hooks.Line(line) {
			continue
		}
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		if groups := sectionPattern.FindStringSubmatch(line); groups != nil {
			inSection = true
			header := groups[1]
			matched, err := match(header)
			if err != nil {
				malformed = append(malformed, line)
				matched = false
			}
			file.Sections = append(file.Sections, Section{Header: header, Matched: matched})
			continue
		}

		if groups := optionPattern.FindStringSubmatch(line); groups != nil {
			key := strings.ToLower(strings.TrimSpace(groups[1]))
			value := groups[2]
			if value == `""` {
				value = ""
			}
			if !inSection {
				if key == "root" && strings.EqualFold(value, "true") {
					file.Root = true
				}
				continue
			}
			section := &file.Sections[len(file.Sections)-1]
			if !section.Matched {
				continue
			}
			value = stripInlineComment(value)
			if hooks != nil && !hooks.Option(key, value) {
				continue
			}
			section.Options = append(section.Options, Option{Key: key, Value: value})
			continue
		}

		malformed = append(malformed, line)
	}

	if len(malformed) > 0 {
		return nil, &Error{Lines: malformed}
	}
	return file, nil
}

// stripInlineComment removes a trailing comment introduced by a space
// followed by ; or #.
func stripInlineComment(value string) string {
	pos := strings.Index(value, " ;")
	if pos < 0 {
		pos = strings.Index(value, " #")
	}
	if pos >= 0 {
		return value[:pos]
	}
	return value
}
