// Package editorconfig resolves the effective editor configuration
// properties for a file path.
//
// Properties are declared in hierarchical configuration files (by
// default named .editorconfig) whose sections assign options to files
// matching glob patterns. Resolution walks from the target file's
// directory upward, merging matching sections so that declarations in
// a closer directory override those from a farther one, until a source
// declares root=true or a caller-supplied boundary is reached.
package editorconfig

import (
	"path/filepath"

	"github.com/dshills/editorconfig/internal/cascade"
	"github.com/dshills/editorconfig/internal/glob"
	"github.com/dshills/editorconfig/internal/parse"
	"github.com/dshills/editorconfig/internal/vfs"
)

// Version is the feature level this engine implements.
const Version = "0.12.0-final"

// DefaultConfigName is the configuration filename searched in each
// directory unless overridden with WithConfigName.
const DefaultConfigName = ".editorconfig"

// Property is one resolved key/value pair. The slice returned by
// Properties preserves precedence-resolved insertion order.
type Property = cascade.Property

// Observer receives progress callbacks during a resolution and may
// veto individual steps. See cascade.Observer for the method
// contracts.
type Observer = cascade.Observer

// ParseError reports every malformed line found in a configuration
// source. It aborts the whole resolution.
type ParseError = parse.Error

// FS is the file system collaborator the resolver reads through.
type FS = vfs.FS

// EditorConfig resolves properties for target paths. It is immutable
// after New and safe for concurrent use.
type EditorConfig struct {
	configName string
	version    string
	fs         vfs.FS
}

// Option configures an EditorConfig.
type Option func(*EditorConfig)

// WithConfigName overrides the configuration filename. Used mostly
// for testing.
func WithConfigName(name string) Option {
	return func(e *EditorConfig) {
		if name != "" {
			e.configName = name
		}
	}
}

// WithVersion sets the feature version the caller requires. Asking
// for a version newer than Version makes every resolution fail with a
// *VersionError.
func WithVersion(version string) Option {
	return func(e *EditorConfig) {
		if version != "" {
			e.version = version
		}
	}
}

// WithFileSystem injects the file system collaborator. The default
// reads the operating system's file system.
func WithFileSystem(fs vfs.FS) Option {
	return func(e *EditorConfig) {
		if fs != nil {
			e.fs = fs
		}
	}
}

// New creates a handler with the default configuration filename and
// the current engine version.
func New(opts ...Option) *EditorConfig {
	e := &EditorConfig{
		configName: DefaultConfigName,
		version:    Version,
		fs:         vfs.OS{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// resolveOptions collects per-call settings.
type resolveOptions struct {
	stopDirs []string
	observer Observer
}

// ResolveOption configures one Properties call.
type ResolveOption func(*resolveOptions)

// WithStopDirs adds directories where the upward walk stops even when
// no source declares root=true.
func WithStopDirs(dirs ...string) ResolveOption {
	return func(o *resolveOptions) {
		o.stopDirs = append(o.stopDirs, dirs...)
	}
}

// WithObserver attaches an observer to the resolution.
func WithObserver(obs Observer) ResolveOption {
	return func(o *resolveOptions) {
		o.observer = obs
	}
}

// Properties resolves the effective properties for filePath.
//
// It returns a *VersionError when the handler requires a feature
// version newer than this engine implements, a *ParseError when any
// discovered configuration source has malformed lines, or the
// collaborator's error unchanged when reading a source fails.
func (e *EditorConfig) Properties(filePath string, opts ...ResolveOption) ([]Property, error) {
	if compareVersions(e.version, Version) > 0 {
		return nil, &VersionError{Required: e.version, Supported: Version}
	}

	var o resolveOptions
	for _, opt := range opts {
		opt(&o)
	}

	stops := make([]string, len(o.stopDirs))
	for i, dir := range o.stopDirs {
		stops[i] = filepath.ToSlash(dir)
	}

	resolver := &cascade.Resolver{FS: e.fs, ConfigName: e.configName}
	return resolver.Resolve(filepath.ToSlash(filePath), stops, o.observer)
}

// PatternMatches reports whether fullPath matches pattern anchored at
// baseDir, using the section header glob grammar. An uncompilable
// pattern never matches.
func PatternMatches(baseDir, pattern, fullPath string) bool {
	m, err := glob.Compile(filepath.ToSlash(baseDir), pattern)
	if err != nil {
		return false
	}
	return m.Match(filepath.ToSlash(fullPath))
}
