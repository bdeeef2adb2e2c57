package glob

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func mustCompile(t *testing.T, baseDir, pattern string) *Matcher {
	t.Helper()
	m, err := Compile(baseDir, pattern)
	if err != nil {
		t.Fatalf("Compile(%q, %q) error: %v", baseDir, pattern, err)
	}
	return m
}

func TestCompile_NumericRanges(t *testing.T) {
	m := mustCompile(t, "/base", "{1..3}-{7..9}.txt")

	want := []Range{{Min: 1, Max: 3}, {Min: 7, Max: 9}}
	got := m.Ranges()
	if len(got) != len(want) {
		t.Fatalf("Ranges() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Ranges()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCompile_ReversedRangePreserved(t *testing.T) {
	m := mustCompile(t, "/base", "{3..1}.txt")

	got := m.Ranges()
	if len(got) != 1 || got[0] != (Range{Min: 3, Max: 1}) {
		t.Fatalf("Ranges() = %+v, want [{3 1}]", got)
	}
	// Nothing satisfies n >= 3 and n <= 1.
	for _, p := range []string{"/base/1.txt", "/base/2.txt", "/base/3.txt"} {
		if m.Match(p) {
			t.Errorf("Match(%q) = true, want false", p)
		}
	}
}

func TestCompile_NestedRangeInAlternation(t *testing.T) {
	m := mustCompile(t, "/base", "{a,{1..3}}.x")

	if !m.Match("/base/2.x") {
		t.Error("Match(/base/2.x) = false, want true")
	}
	// The numeric capture does not participate when the literal branch
	// matches, and a missing capture fails closed.
	if m.Match("/base/a.x") {
		t.Error("Match(/base/a.x) = true, want false")
	}
}

func TestCompile_Error(t *testing.T) {
	if _, err := Compile("/base", "[]a"); err == nil {
		t.Error("Compile([]a) error = nil, want class error")
	}
}

func TestMatch_LeadingZero(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"{1..10}.txt", "/base/7.txt", true},
		{"{1..10}.txt", "/base/10.txt", true},
		{"{1..10}.txt", "/base/007.txt", false},
		{"{1..10}.txt", "/base/07.txt", false},
		{"{1..10}.txt", "/base/11.txt", false},
		// A bare zero counts as a leading zero.
		{"{0..5}.txt", "/base/0.txt", false},
		{"{0..5}.txt", "/base/5.txt", true},
		// Digit runs never include a sign.
		{"{-5..5}.txt", "/base/3.txt", true},
		{"{-5..5}.txt", "/base/-3.txt", false},
	}

	for _, tt := range tests {
		m := mustCompile(t, "/base", tt.pattern)
		if got := m.Match(tt.path); got != tt.want {
			t.Errorf("Compile(%q).Match(%q) = %v, want %v", tt.pattern, tt.path, got, tt.want)
		}
	}
}

// patternCase is one fixture entry in testdata/patterns.yaml.
type patternCase struct {
	Name    string `yaml:"name"`
	Base    string `yaml:"base"`
	Pattern string `yaml:"pattern"`
	Path    string `yaml:"path"`
	Match   bool   `yaml:"match"`
}

func TestMatch_Corpus(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "patterns.yaml"))
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}

	var cases []patternCase
	if err := yaml.Unmarshal(data, &cases); err != nil {
		t.Fatalf("decoding fixture: %v", err)
	}
	if len(cases) == 0 {
		t.Fatal("fixture is empty")
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			m, err := Compile(tc.Base, tc.Pattern)
			if err != nil {
				t.Fatalf("Compile(%q, %q) error: %v", tc.Base, tc.Pattern, err)
			}
			if got := m.Match(tc.Path); got != tc.Match {
				t.Errorf("Compile(%q, %q).Match(%q) = %v, want %v",
					tc.Base, tc.Pattern, tc.Path, got, tc.Match)
			}
		})
	}
}
