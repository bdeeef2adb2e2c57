// Package cascade resolves the effective properties for a target path
// by walking its directory chain upward, parsing the configuration
// source found at each level, and merging matched sections under
// nearest-wins precedence.
package cascade

import (
	"github.com/dshills/editorconfig/internal/glob"
	"github.com/dshills/editorconfig/internal/parse"
	"github.com/dshills/editorconfig/internal/vfs"
)

// Observer receives progress callbacks during a resolution. Methods
// returning bool may veto the step by returning false.
type Observer interface {
	// ProcessFile is called once before the walk; false aborts the
	// resolution with an empty result.
	ProcessFile(path string) bool

	// ProcessDir is called before each directory is examined; false
	// stops the walk, keeping what has been accumulated.
	ProcessDir(dir string) bool

	// ProcessSource is called before a discovered configuration
	// source is parsed; false skips that source.
	ProcessSource(path string) bool

	// ProcessLine is called for each raw line; false skips the line.
	ProcessLine(line string) bool

	// ProcessOption is called before an option is recorded; false
	// skips it.
	ProcessOption(key, value string) bool

	// Finished is called after the result has been assembled.
	Finished(path string)
}

// nopObserver continues through every step.
type nopObserver struct{}

func (nopObserver) ProcessFile(string) bool           { return true }
func (nopObserver) ProcessDir(string) bool            { return true }
func (nopObserver) ProcessSource(string) bool         { return true }
func (nopObserver) ProcessLine(string) bool           { return true }
func (nopObserver) ProcessOption(string, string) bool { return true }
func (nopObserver) Finished(string)                   {}

// parseHooks adapts an Observer to the parser's callbacks.
type parseHooks struct {
	obs Observer
}

func (h parseHooks) Line(line string) bool         { return h.obs.ProcessLine(line) }
func (h parseHooks) Option(key, value string) bool { return h.obs.ProcessOption(key, value) }

// Resolver drives the directory cascade for one configuration
// filename over one file system. It holds no per-call state; a single
// Resolver may serve concurrent resolutions.
type Resolver struct {
	// FS supplies directory traversal and source content.
	FS vfs.FS

	// ConfigName is the configuration source filename, usually
	// ".editorconfig".
	ConfigName string
}

// Resolve computes the ordered effective properties for target.
// The walk starts at target's parent directory and continues upward
// until a source declares root=true, a stop directory is reached, or
// no parent remains. A failed parse is fatal for the whole resolution.
func (r *Resolver) Resolve(target string, stopDirs []string, obs Observer) ([]Property, error) {
	if obs == nil {
		obs = nopObserver{}
	}
	if !obs.ProcessFile(target) {
		return nil, nil
	}

	stops := make(map[string]bool, len(stopDirs))
	for _, dir := range stopDirs {
		stops[dir] = true
	}

	acc := newPropertyMap()
	root := false

	dir, ok := r.FS.Parent(target)
	for ok && !root && obs.ProcessDir(dir) {
		cur := newPropertyMap()

		source := r.FS.Join(dir, r.ConfigName)
		if r.FS.Exists(source) && obs.ProcessSource(source) {
			data, err := r.FS.ReadFile(source)
			if err != nil {
				return nil, err
			}
			file, err := parse.Parse(string(data), r.headerMatcher(dir, target), parseHooks{obs: obs})
			if err != nil {
				return nil, err
			}
			root = file.Root
			for _, section := range file.Sections {
				if !section.Matched {
					continue
				}
				for _, opt := range section.Options {
					cur.set(opt.Key, opt.Value)
				}
			}
		}

		// Closer directories already sit in the accumulator and win;
		// this level only contributes keys they never set. The merged
		// map keeps this level's key order first.
		cur.overlay(acc)
		acc = cur

		if stops[dir] {
			root = true
		}
		dir, ok = r.FS.Parent(dir)
	}

	normalize(acc)
	props := acc.properties()
	obs.Finished(target)
	return props, nil
}

// headerMatcher anchors section headers at dir and tests them against
// the target path. A pattern the compiler rejects marks the header
// line malformed.
func (r *Resolver) headerMatcher(dir, target string) parse.HeaderMatcher {
	return func(header string) (bool, error) {
		m, err := glob.Compile(dir, header)
		if err != nil {
			return false, err
		}
		return m.Match(target), nil
	}
}
