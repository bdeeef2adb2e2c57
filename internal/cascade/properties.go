package cascade

import "strings"

// Property is one resolved key/value pair.
type Property struct {
	Key   string
	Value string
}

// propertyMap is an insertion-ordered string map. Updating an existing
// key keeps its position; new keys append.
type propertyMap struct {
	keys []string
	vals map[string]string
}

func newPropertyMap() *propertyMap {
	return &propertyMap{vals: make(map[string]string)}
}

func (m *propertyMap) set(key, value string) {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = value
}

func (m *propertyMap) get(key string) (string, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// overlay writes every entry of other into m, other winning on
// conflicts. Keys new to m append in other's order.
func (m *propertyMap) overlay(other *propertyMap) {
	for _, key := range other.keys {
		m.set(key, other.vals[key])
	}
}

func (m *propertyMap) len() int {
	return len(m.keys)
}

func (m *propertyMap) properties() []Property {
	props := make([]Property, 0, len(m.keys))
	for _, key := range m.keys {
		props = append(props, Property{Key: key, Value: m.vals[key]})
	}
	return props
}

// Keys whose values are case-normalized in the final result.
var lowercasedKeys = []string{
	"end_of_line",
	"indent_style",
	"indent_size",
	"insert_final_newline",
	"trim_trailing_whitespace",
	"charset",
}

// normalize post-processes the final accumulator: well-known values
// are lowercased, tab_width defaults to indent_size, and
// indent_size=tab adopts tab_width when one is set.
func normalize(m *propertyMap) {
	for _, key := range lowercasedKeys {
		if value, ok := m.get(key); ok {
			m.set(key, strings.ToLower(value))
		}
	}

	indentSize, hasIndentSize := m.get("indent_size")
	if hasIndentSize && indentSize != "tab" {
		if _, ok := m.get("tab_width"); !ok {
			m.set("tab_width", indentSize)
		}
	}

	if tabWidth, ok := m.get("tab_width"); ok && indentSize == "tab" {
		m.set("indent_size", tabWidth)
	}
}
