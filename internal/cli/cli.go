package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/codelabs/internal/config"
	"github.com/matzehuels/codelabs/pkg/articles"
	"github.com/matzehuels/codelabs/pkg/buildinfo"
	"github.com/matzehuels/codelabs/pkg/cache"
	"github.com/matzehuels/codelabs/pkg/integrations/github"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "codelabs"

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

	configPath string
	verbose    bool
	cfg        *config.Config
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
		Use:           appName,
		Short:         "Codelabs serves step-by-step programming tutorials",
		Long:          `Codelabs fetches markdown tutorials from a GitHub repository, converts them to HTML pages, and serves them together with a weighted selection wheel.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				registerLogHooks(c.Logger)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/codelabs/config.toml)")

	root.AddCommand(c.listCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.wheelCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Factories
// =============================================================================

// loadConfig loads the configuration once per process.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, unknown, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	for _, k := range unknown {
		c.Logger.Warn("unknown config key", "key", k)
	}
	c.cfg = cfg
	return cfg, nil
}

// newCache opens the configured cache backend. noCache forces the null cache.
func (c *CLI) newCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis cache: %w", err)
		}
		return rc, nil
	}

	dir, err := cacheDir(cfg)
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newLibrary wires the GitHub source, cache and transformer chain together.
func (c *CLI) newLibrary(cfg *config.Config, store cache.Cache) *articles.Library {
	ttl := cfg.Cache.TTL.Duration
	gh := github.NewClient(cfg.Repo(), github.Options{
		Token:    cfg.Content.Token,
		Cache:    store,
		CacheTTL: ttl,
		BaseURL:  cfg.Content.APIBase,
	})
	src := articles.NewGitHubSource(gh, cfg.Content.Dir)
	return articles.NewLibrary(src, cfg.ImageBase(),
		articles.WithCache(store, ttl),
		articles.WithLogger(c.Logger),
	)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the file cache directory: cache.dir from the config, or
// the XDG default (~/.cache/codelabs/).
func cacheDir(cfg *config.Config) (string, error) {
	if cfg != nil && cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return config.DefaultCacheDir()
}
