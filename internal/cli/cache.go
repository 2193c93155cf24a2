package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/codelabs/internal/config"
	"github.com/matzehuels/codelabs/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the response cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached responses and pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			if cfg.Cache.Backend == config.BackendFile {
				dir, err := cacheDir(cfg)
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					printInfo("Cache is empty")
					return nil
				}
			}

			store, err := c.newCache(ctx, cfg, false)
			if err != nil {
				return err
			}
			defer store.Close()

			clearer, ok := store.(cache.Clearer)
			if !ok {
				printInfo("Caching is disabled")
				return nil
			}
			n, err := clearer.Clear(ctx)
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printSuccess("Cleared %d cached entries", n)
			printDetail("Backend: %s", cacheLocation(cfg))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the cache is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cacheLocation(cfg))
			return nil
		},
	}
}

// cacheLocation describes the configured backend: a directory for the file
// cache, a redis URL, or "none".
func cacheLocation(cfg *config.Config) string {
	switch cfg.Cache.Backend {
	case config.BackendRedis:
		return fmt.Sprintf("redis://%s/%d", cfg.Cache.RedisAddr, cfg.Cache.RedisDB)
	case config.BackendNone:
		return config.BackendNone
	}
	dir, err := cacheDir(cfg)
	if err != nil {
		return "unavailable: " + err.Error()
	}
	return dir
}
