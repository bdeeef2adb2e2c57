// Package glob compiles section header patterns into matchers over
// slash-separated paths.
//
// The grammar is the editorconfig dialect: * (within a segment),
// ** (across segments), ?, [set] and [!set] classes, {a,b} alternation
// gated on whole-pattern brace balance, and {n..m} numeric ranges that
// capture a digit run and validate it after the structural match.
// Patterns are translated to a regular expression plus an ordered list
// of numeric range constraints.
package glob

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Range is an inclusive integer interval bound to one numeric capture.
// Min may exceed Max when the pattern was authored that way; no
// normalization is applied.
type Range struct {
	Min int
	Max int
}

// Matcher is a compiled pattern. It is immutable and safe for
// concurrent use.
type Matcher struct {
	re     *regexp.Regexp
	ranges []Range
}

// Unescaped braces, for deciding whether alternation is active at all.
var (
	openingBraces = regexp.MustCompile(`(?:^|[^\\])\{`)
	closingBraces = regexp.MustCompile(`(?:^|[^\\])\}`)
)

// Compile translates a pattern into a Matcher anchored at baseDir.
// A pattern containing a separator is matched relative to baseDir;
// one without is prefixed with **/ so it applies at any depth below.
// Separators in baseDir are normalized to forward slashes.
func Compile(baseDir, pattern string) (*Matcher, error) {
	pattern = strings.ReplaceAll(pattern, `\#`, "#")
	pattern = strings.ReplaceAll(pattern, `\;`, ";")

	baseDir = strings.ReplaceAll(baseDir, `\`, "/")
	if !strings.HasSuffix(baseDir, "/") {
		baseDir += "/"
	}

	if strings.Contains(pattern, "/") {
		pattern = baseDir + strings.TrimPrefix(pattern, "/")
	} else {
		// A bare filename pattern applies at any depth below baseDir.
		pattern = baseDir + "**/" + pattern
	}

	var ranges []Range
	expr := translate(pattern, &ranges)

	re, err := regexp.Compile(`\A` + expr + `\z`)
	if err != nil {
		return nil, err
	}
	return &Matcher{re: re, ranges: ranges}, nil
}

// Match reports whether the full path matches. The structural match
// must succeed and every numeric capture must be a plain integer with
// no leading zero inside its range; anything else fails closed.
func (m *Matcher) Match(path string) bool {
	groups := m.re.FindStringSubmatch(path)
	if groups == nil {
		return false
	}
	for i, r := range m.ranges {
		num := groups[i+1]
		if num == "" || strings.HasPrefix(num, "0") {
			return false
		}
		n, err := strconv.Atoi(num)
		if err != nil {
			return false
		}
		if n < r.Min || n > r.Max {
			return false
		}
	}
	return true
}

// Ranges returns the numeric range constraints in capture order.
func (m *Matcher) Ranges() []Range {
	return m.ranges
}

// translate converts one glob pattern to a regular expression,
// appending a Range per numeric capture encountered.
func translate(pattern string, ranges *[]Range) string {
	runes := []rune(pattern)
	length := len(runes)

	var result strings.Builder
	i := 0
	braceLevel := 0
	matchingBraces := len(openingBraces.FindAllStringIndex(pattern, -1)) ==
		len(closingBraces.FindAllStringIndex(pattern, -1))
	escaped := false
	inBrackets := false

	for i < length {
		current := runes[i]
		i++

		if current == '*' {
			if escaped {
				result.WriteString(`\*`)
			} else if i < length && runes[i] == '*' {
				result.WriteString(".*")
				i++
			} else {
				result.WriteString("[^/]*")
			}
		} else if current == '?' {
			if escaped {
				result.WriteString(`\?`)
			} else {
				result.WriteString(".")
			}
		} else if current == '[' {
			slash := findChar('/', ']', runes, i)
			unclosed := slash < 0 && -slash >= length
			if slash >= 0 || unclosed || escaped {
				result.WriteString(`\[`)
			} else if i < length && (runes[i] == '!' || runes[i] == '^') {
				i++
				result.WriteString("[^")
			} else {
				result.WriteString("[")
			}
			inBrackets = true
		} else if current == ']' || (current == '-' && inBrackets) {
			if escaped {
				result.WriteString(`\`)
			}
			result.WriteRune(current)
			inBrackets = current != ']' || escaped
		} else if current == '{' {
			if escaped {
				result.WriteString(`\{`)
			} else {
				j := findChar(',', '}', runes, i)
				if j < 0 && -j < length {
					choice := string(runes[i:-j])
					if r, ok := numericRange(choice); ok {
						result.WriteString(`(\d+)`)
						*ranges = append(*ranges, r)
					} else {
						result.WriteString(`\{`)
						result.WriteString(translate(choice, ranges))
						result.WriteString(`\}`)
					}
					i = -j + 1
				} else if matchingBraces {
					result.WriteString("(?:")
					braceLevel++
				} else {
					result.WriteString(`\{`)
				}
			}
		} else if current == ',' {
			if braceLevel > 0 && !escaped {
				result.WriteString("|")
				for i < length && runes[i] == ' ' {
					i++
				}
			} else {
				result.WriteString(",")
			}
		} else if current == '/' {
			if !escaped && i+2 < length && runes[i] == '*' && runes[i+1] == '*' && runes[i+2] == '/' {
				result.WriteString("(?:/|/.*/)")
				i += 3
			} else {
				result.WriteString("/")
			}
		} else if current == '}' {
			if braceLevel > 0 && !escaped {
				result.WriteString(")")
				braceLevel--
			} else {
				result.WriteString("}")
			}
		} else if current != '\\' {
			result.WriteString(escapeLiteral(current))
		}

		if current == '\\' {
			if escaped {
				result.WriteString(`\\`)
			}
			escaped = !escaped
		} else {
			escaped = false
		}
	}

	return result.String()
}

// numericRange parses "n..m" with integer bounds.
func numericRange(choice string) (Range, bool) {
	sep := strings.Index(choice, "..")
	if sep < 0 {
		return Range{}, false
	}
	lo, err := strconv.Atoi(choice[:sep])
	if err != nil {
		return Range{}, false
	}
	hi, err := strconv.Atoi(choice[sep+2:])
	if err != nil {
		return Range{}, false
	}
	return Range{Min: lo, Max: hi}, true
}

// findChar returns the index of the first unescaped c before the first
// unescaped stopAt. When c is not found it returns the negated index
// of stopAt, or the negated pattern length when stopAt is absent too.
func findChar(c, stopAt rune, pattern []rune, start int) int {
	j := start
	escaped := false
	for j < len(pattern) && (pattern[j] != stopAt || escaped) {
		if pattern[j] == c && !escaped {
			return j
		}
		escaped = pattern[j] == '\\' && !escaped
		j++
	}
	return -j
}

// escapeLiteral encodes one pattern character for literal matching.
// Letters, digits, space, underscore and dash pass through; newline
// becomes its escape sequence; other ASCII is backslash-escaped;
// non-ASCII runes are literal as-is.
func escapeLiteral(r rune) string {
	if r == ' ' || r == '_' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r) {
		return string(r)
	}
	if r == '\n' {
		return `\n`
	}
	if r < 0x80 {
		return `\` + string(r)
	}
	return string(r)
}
