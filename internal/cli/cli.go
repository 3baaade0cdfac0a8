// Package cli implements the asciicam command-line interface.
//
// # Commands
//
//   - run: stream the camera to the terminal as ASCII art (also the default)
//   - convert: convert still images or GIFs, with a content-addressed cache
//   - cache: inspect and clear the conversion cache
//   - completion: generate shell completion scripts
//
// # Configuration
//
// Options are resolved in three layers: built-in defaults, then the TOML
// config file, then flags given explicitly on the command line.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// is carried through context.Context to every command.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/asciicam/pkg/buildinfo"
	"github.com/matzehuels/asciicam/pkg/cache"
	"github.com/matzehuels/asciicam/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "asciicam"

	// configFileName is the config file looked up in the user config dir.
	configFileName = "config.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is set by the persistent --config flag.
	configPath string

	stdout io.Writer
	stdin  io.Reader
}

// New creates a new CLI instance with a logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		stdout: os.Stdout,
		stdin:  os.Stdin,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Invoked without a subcommand, the root behaves like "run".
func (c *CLI) RootCommand() *cobra.Command {
	var flags runFlags

	root := &cobra.Command{
		Use:   appName,
		Short: "asciicam renders your webcam as ASCII art in the terminal",
		Long: `asciicam captures frames from a camera or video file and renders each one
as ASCII art in the terminal, optionally alongside the raw image in a window.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCapture(cmd, flags)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/asciicam/config.toml)")
	bindRunFlags(root, &flags)

	root.AddCommand(c.runCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Converter Factory
// =============================================================================

// newConverter creates a still-image converter for CLI use. Cache keys are
// scoped by release so upgrades never serve frames from an older algorithm.
func (c *CLI) newConverter(noCache bool) (*pipeline.Converter, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":")
	return pipeline.NewConverter(store, keyer, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory (~/.cache/asciicam on Linux).
func cacheDir() (string, error) {
	return cache.DefaultDir()
}

// defaultConfigPath returns $XDG_CONFIG_HOME/asciicam/config.toml or the
// platform equivalent.
func defaultConfigPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName, configFileName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// loadOptions returns the options from the config file. An explicit --config
// must exist; the default location is optional.
func (c *CLI) loadOptions() (pipeline.Options, error) {
	if c.configPath != "" {
		return pipeline.LoadConfig(c.configPath)
	}
	path, err := defaultConfigPath()
	if err != nil {
		return pipeline.Options{}, nil
	}
	if _, err := os.Stat(path); err != nil {
		return pipeline.Options{}, nil
	}
	c.Logger.Debug("using config", "path", path)
	return pipeline.LoadConfig(path)
}
