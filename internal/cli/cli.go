// Package cli implements the familytower command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/familytower/pkg/buildinfo"
	"github.com/matzehuels/familytower/pkg/cache"
	"github.com/matzehuels/familytower/pkg/clock"
	"github.com/matzehuels/familytower/pkg/config"
	"github.com/matzehuels/familytower/pkg/family"
	"github.com/matzehuels/familytower/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

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

	// Out, when set, receives command output instead of stdout.
	Out io.Writer

	// Clock and NewID are replaced in tests.
	Clock clock.Clock
	NewID family.IDFunc

	configPath string
	store      string
	dataDir    string
	treeKey    string
	noCache    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Clock:  clock.System{},
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Familytower keeps a family tree and draws it",
		Long:          `Familytower records family members and their parent, child and spouse relations, checks every change for consistent birth years, and lays the tree out so that members keep their place as it grows.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/familytower/config.toml)")
	flags.StringVar(&c.store, "store", "", "store backend: file, memory, redis or mongo")
	flags.StringVar(&c.dataDir, "data-dir", "", "directory of the file store")
	flags.StringVar(&c.treeKey, "tree", "", "snapshot key of the tree (default family-canvas-data)")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the position and render cache")

	// Register all subcommands
	root.AddCommand(c.initCommand())
	root.AddCommand(c.addCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// loadConfig reads the config file and applies the global flags on top.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, err
	}
	if c.store != "" {
		cfg.Store.Backend = c.store
	}
	if c.dataDir != "" {
		cfg.Store.Dir = c.dataDir
	}
	if c.treeKey != "" {
		cfg.Store.Key = c.treeKey
	}
	if c.noCache {
		cfg.Cache.Backend = config.CacheNone
	}
	return cfg, cfg.Validate()
}

// newRunner opens the configured tree for CLI use.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, config.Config, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, cfg, err
	}
	st, err := cfg.OpenStore(ctx)
	if err != nil {
		return nil, cfg, err
	}
	logger := treeLogger(ctx, cfg.Store.Key, st.Backend())
	ch, err := cfg.OpenCache(ctx)
	if err != nil {
		logger.Warn("cache unavailable, continuing without", "backend", cfg.Cache.Backend, "err", err)
		ch = cache.NewNullCache()
	}

	r, err := pipeline.Open(ctx, st, ch, pipeline.Options{
		TreeKey:   cfg.Store.Key,
		Layout:    cfg.Layout,
		Clock:     c.Clock,
		IDFunc:    c.NewID,
		Logger:    logger,
		RenderTTL: cfg.Cache.TTL,
	})
	if err != nil {
		st.Close()
		ch.Close()
		return nil, cfg, err
	}
	return r, cfg, nil
}
