// Package cmd provides the editorconfig CLI.
package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/editorconfig"
	"github.com/dshills/editorconfig/internal/cascade"
	"github.com/dshills/editorconfig/internal/vfs"
	"github.com/dshills/editorconfig/internal/watch"
)

var (
	configName      string
	requiredVersion string
	watchMode       bool
)

var rootCmd = &cobra.Command{
	Use:   "editorconfig [flags] FILEPATH...",
	Short: "Print the effective editor configuration for file paths",
	Long: `editorconfig resolves the configuration properties that apply to each
given file path by locating and cascading the .editorconfig files in
its directory chain, and prints them as key=value lines.`,
	Args:         cobra.MinimumNArgs(1),
	RunE:         run,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&configName, "config-name", "f", editorconfig.DefaultConfigName,
		"configuration filename to search for")
	rootCmd.Flags().StringVarP(&requiredVersion, "required-version", "b", editorconfig.Version,
		"behave as the given feature version")
	rootCmd.Flags().BoolVar(&watchMode, "watch", false,
		"keep running and re-print when a configuration source changes")
	rootCmd.Version = editorconfig.Version
	rootCmd.SetVersionTemplate(`{{printf "editorconfig %s\n" .Version}}`)
}

func run(cmd *cobra.Command, args []string) error {
	handler := editorconfig.New(
		editorconfig.WithConfigName(configName),
		editorconfig.WithVersion(requiredVersion),
	)

	paths := make([]string, len(args))
	for i, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return fmt.Errorf("%s: %w", arg, err)
		}
		paths[i] = filepath.ToSlash(abs)
	}

	if err := printAll(cmd.OutOrStdout(), handler, paths); err != nil {
		return err
	}
	if !watchMode {
		return nil
	}
	return watchLoop(cmd.OutOrStdout(), handler, paths)
}

// printAll resolves and prints every path. With more than one path
// each block is preceded by a [path] header.
func printAll(out io.Writer, handler *editorconfig.EditorConfig, paths []string) error {
	for _, path := range paths {
		props, err := handler.Properties(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if len(paths) > 1 {
			fmt.Fprintf(out, "[%s]\n", path)
		}
		for _, p := range props {
			fmt.Fprintf(out, "%s=%s\n", p.Key, p.Value)
		}
	}
	return nil
}

// watchLoop re-resolves and re-prints whenever a configuration source
// in any path's cascade changes, until interrupted.
func watchLoop(out io.Writer, handler *editorconfig.EditorConfig, paths []string) error {
	watcher, err := watch.New(configName)
	if err != nil {
		return err
	}
	defer watcher.Close()

	resolver := &cascade.Resolver{FS: vfs.OS{}, ConfigName: configName}
	for _, path := range paths {
		if err := watcher.WatchTarget(resolver, path, nil); err != nil {
			return err
		}
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	for {
		select {
		case <-signals:
			return nil
		case err, ok := <-watcher.Errors():
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, err)
		case ev, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			fmt.Fprintf(out, "# %s changed\n", ev.Path)
			if err := printAll(out, handler, paths); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
	}
}
