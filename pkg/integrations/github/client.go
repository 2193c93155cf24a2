package github

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/codelabs/pkg/cache"
	"github.com/matzehuels/codelabs/pkg/integrations"
)

// DefaultBaseURL is the public GitHub REST API.
const DefaultBaseURL = "https://api.github.com"

// Client lists and downloads repository content through the GitHub contents
// API. Responses are cached and transient failures retried.
type Client struct {
	*integrations.Client
	baseURL string
	repo    Repo
}

// Options configures [NewClient].
type Options struct {
	Token    string        // optional personal access token
	Cache    cache.Cache   // nil disables caching
	CacheTTL time.Duration // lifetime of cached listings and files
	BaseURL  string        // defaults to DefaultBaseURL
}

// NewClient creates a client for repo. Cache keys are scoped to the repository
// and ref so several content sources can share one cache.
func NewClient(repo Repo, opts Options) *Client {
	headers := map[string]string{"Accept": "application/vnd.github.v3+json"}
	if opts.Token != "" {
		headers["Authorization"] = "Bearer " + opts.Token
	}
	base := opts.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	hc := integrations.NewClient(opts.Cache, "github", opts.CacheTTL, headers)
	hc.WithKeyer(cache.NewScopedKeyer(nil, repo.String()+":"))

	return &Client{
		Client:  hc,
		baseURL: strings.TrimSuffix(base, "/"),
		repo:    repo,
	}
}

// Repo returns the repository the client reads from.
func (c *Client) Repo() Repo { return c.repo }

// ListDir lists the entries of dir. If refresh is true cached data is bypassed.
func (c *Client) ListDir(ctx context.Context, dir string, refresh bool) ([]ContentItem, error) {
	u := c.contentsURL(dir)

	var items []ContentItem
	err := c.Cached(ctx, "contents:"+dir, refresh, &items, func() error {
		items = nil
		return c.Get(ctx, u, &items)
	})
	if err != nil {
		return nil, fmt.Errorf("list %s in %s: %w", dir, c.repo, err)
	}
	return items, nil
}

// ListFolders returns the directories directly under dir, sorted by name.
func (c *Client) ListFolders(ctx context.Context, dir string, refresh bool) ([]ContentItem, error) {
	items, err := c.ListDir(ctx, dir, refresh)
	if err != nil {
		return nil, err
	}
	folders := slices.DeleteFunc(items, func(it ContentItem) bool { return !it.IsDir() })
	slices.SortFunc(folders, func(a, b ContentItem) int { return strings.Compare(a.Name, b.Name) })
	return folders, nil
}

// ListFiles returns the regular files directly under dir, sorted by name.
func (c *Client) ListFiles(ctx context.Context, dir string, refresh bool) ([]ContentItem, error) {
	items, err := c.ListDir(ctx, dir, refresh)
	if err != nil {
		return nil, err
	}
	files := slices.DeleteFunc(items, func(it ContentItem) bool { return !it.IsFile() })
	slices.SortFunc(files, func(a, b ContentItem) int { return strings.Compare(a.Name, b.Name) })
	return files, nil
}

// FetchText downloads a file body from its download URL.
func (c *Client) FetchText(ctx context.Context, downloadURL string, refresh bool) (string, error) {
	var text string
	err := c.Cached(ctx, "raw:"+downloadURL, refresh, &text, func() error {
		var err error
		text, err = c.GetText(ctx, downloadURL)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("download %s: %w", downloadURL, err)
	}
	return text, nil
}

func (c *Client) contentsURL(dir string) string {
	u := fmt.Sprintf("%s/repos/%s/%s/contents", c.baseURL, url.PathEscape(c.repo.Owner), url.PathEscape(c.repo.Name))
	if p := EscapePath(dir); p != "" {
		u += "/" + p
	}
	return u + "?ref=" + url.QueryEscape(c.repo.Ref)
}

// EscapePath percent-encodes each segment of a slash-separated path. Already
// escaped segments are not escaped twice.
func EscapePath(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return ""
	}
	segs := strings.Split(p, "/")
	for i, s := range segs {
		if un, err := url.PathUnescape(s); err == nil {
			s = un
		}
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}
