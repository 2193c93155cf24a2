package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

type listOpts struct {
	noCache bool
	refresh bool
}

// listCommand creates the list command.
func (c *CLI) listCommand() *cobra.Command {
	var opts listOpts

	cmd := &cobra.Command{
		Use:   "list [article]",
		Short: "List articles, or the pages of one article",
		Long: `List the articles in the configured content repository.

With an article name, list that article's pages instead.`,
		Example: `  codelabs list
  codelabs list Git
  codelabs list SEP1/Actors --refresh`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return c.runListPages(cmd, args[0], opts)
			}
			return c.runListFolders(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "reload the article from GitHub")

	return cmd
}

func (c *CLI) runListFolders(cmd *cobra.Command, opts listOpts) error {
	ctx := cmd.Context()
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	store, err := c.newCache(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	spinner := newSpinner(ctx, fmt.Sprintf("Listing %s...", cfg.Repo()))
	spinner.Start()
	folders, err := c.newLibrary(cfg, store).Folders(ctx)
	spinner.Stop()
	if err != nil {
		return err
	}

	printSuccess("%d articles in %s", len(folders), StyleHighlight.Render(cfg.Repo().String()))
	for _, f := range folders {
		printFile(f.Name)
	}
	return nil
}

func (c *CLI) runListPages(cmd *cobra.Command, name string, opts listOpts) error {
	ctx := cmd.Context()
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	store, err := c.newCache(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	lib := c.newLibrary(cfg, store)
	prog := newProgress(loggerFromContext(ctx))

	spinner := newSpinner(ctx, fmt.Sprintf("Loading %s...", name))
	spinner.Start()
	load := lib.Pages
	if opts.refresh {
		load = lib.Refresh
	}
	pages, err := load(ctx, name)
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Loaded %d pages", len(pages)))

	printSuccess("%s", StyleTitle.Render(name))
	for _, p := range pages {
		printDetail("%s", p.Title)
	}
	printNextStep("Render it", fmt.Sprintf("codelabs render %s -o %s.html", name, safeFileName(name)))
	return nil
}
