// Package cli implements the contentstack command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/contentstack/pkg/buildinfo"
	"github.com/matzehuels/contentstack/pkg/cache"
	"github.com/matzehuels/contentstack/pkg/pipeline"
	"github.com/matzehuels/contentstack/pkg/snapshot"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "contentstack"

	// Environment variables selecting shared backends over local files.
	envRedisAddr = "CONTENTSTACK_REDIS_ADDR"
	envMongoURI  = "CONTENTSTACK_MONGO_URI"

	// envCachePrefix namespaces cache keys when several deployments share
	// one redis.
	envCachePrefix = "CONTENTSTACK_CACHE_PREFIX"
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
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Contentstack assembles new-tab content pages",
		Long:         `Contentstack resolves a declarative page layout against feed, sponsored-content and preference state into a render tree, and serves that engine over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.applyCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.snapshotCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cache, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, newKeyer(), c.Logger), nil
}

// newKeyer returns the default keyer, scoped by CONTENTSTACK_CACHE_PREFIX
// when it is set.
func newKeyer() cache.Keyer {
	if prefix := os.Getenv(envCachePrefix); prefix != "" {
		return cache.NewScopedKeyer(cache.NewDefaultKeyer(), prefix)
	}
	return cache.NewDefaultKeyer()
}

// newCache picks Redis when CONTENTSTACK_REDIS_ADDR is set, otherwise the
// local file cache. A missing home directory disables caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if addr := os.Getenv(envRedisAddr); addr != "" {
		var rc *cache.RedisCache
		err := withSpinner(ctx, "Connecting to redis...", func() error {
			var err error
			rc, err = cache.NewRedisCache(ctx, addr)
			return err
		})
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("using redis cache", "addr", addr)
		return rc, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newSnapshotStore picks MongoDB when CONTENTSTACK_MONGO_URI is set,
// otherwise the local file store.
func (c *CLI) newSnapshotStore(ctx context.Context) (snapshot.Store, error) {
	if uri := os.Getenv(envMongoURI); uri != "" {
		var ms *snapshot.MongoStore
		err := withSpinner(ctx, "Connecting to mongodb...", func() error {
			var err error
			ms, err = snapshot.NewMongoStore(ctx, snapshot.MongoConfig{URI: uri})
			return err
		})
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("using mongo snapshot store")
		return ms, nil
	}
	dir, err := snapshotDir()
	if err != nil {
		return nil, err
	}
	return snapshot.NewFileStore(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/contentstack/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// snapshotDir returns the snapshot directory (~/.config/contentstack/snapshots/).
func snapshotDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "snapshots"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "snapshots"), nil
}
