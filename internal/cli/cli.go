// Package cli implements the avatarkit command-line interface.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/avatarkit/pkg/buildinfo"
	"github.com/matzehuels/avatarkit/pkg/cache"
	"github.com/matzehuels/avatarkit/pkg/errors"
	"github.com/matzehuels/avatarkit/pkg/observability"
	"github.com/matzehuels/avatarkit/pkg/pipeline"
	"github.com/matzehuels/avatarkit/pkg/session"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "avatarkit"
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

	settingsPath string
	settings     Settings
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:   newLogger(w, level),
		settings: defaultSettings(),
	}
}

// SetLogLevel updates the logger's level. At debug level render, cache and
// HTTP events are logged too.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observability.NewLogHooks(c.Logger).Install()
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "avatarkit composes layered 2D avatars",
		Long:         `avatarkit renders avatars composed from a fixed catalog of face, hair, eye, clothing and accessory variants, and lets you edit, randomize and export them from the terminal or over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(c.settingsPath)
			if err != nil {
				return err
			}
			c.settings = s
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.settingsPath, "config", "", "settings file (default $XDG_CONFIG_HOME/avatarkit/config.toml)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.randomizeCommand())
	root.AddCommand(c.currentCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.sheetCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, keyer, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, cache.Keyer, error) {
	backend := c.settings.Cache.Backend
	if noCache {
		backend = backendNone
	}
	switch backend {
	case backendNone:
		return cache.NewNullCache(), nil, nil
	case backendRedis:
		rc, err := cache.NewRedisCache(ctx, c.settings.Cache.Redis)
		if err != nil {
			return nil, nil, err
		}
		return rc, cache.NewScopedKeyer(cache.NewDefaultKeyer(), appName+":"), nil
	default:
		dir, err := cacheDir()
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil, nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, nil, err
		}
		return fc, nil, nil
	}
}

// currentStore opens the store holding the current avatar.
func currentStore() (*session.CurrentStore, error) {
	dir, err := session.DefaultDir(appName)
	if err != nil {
		return nil, err
	}
	fs, err := session.NewFileStore(dir)
	if err != nil {
		return nil, err
	}
	return session.NewCurrentStore(fs), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/avatarkit/).
func cacheDir() (string, error) {
	return cache.DefaultDir(appName)
}

// openOutput opens path for writing; "" and "-" mean stdout.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
