package articles

import (
	"context"
	"path"

	"github.com/matzehuels/codelabs/pkg/integrations/github"
)

// Folder is one article on the content host.
type Folder struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Entry is one file inside an article folder.
type Entry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

// Source lists and downloads article content.
type Source interface {
	// Folders lists the available articles.
	Folders(ctx context.Context, refresh bool) ([]Folder, error)

	// Files lists the entries of the named article.
	Files(ctx context.Context, article string, refresh bool) ([]Entry, error)

	// Text downloads the body of a file entry.
	Text(ctx context.Context, e Entry, refresh bool) (string, error)
}

// GitHubSource reads articles stored as folders under dir in a GitHub
// repository.
type GitHubSource struct {
	client *github.Client
	dir    string
}

// NewGitHubSource creates a source for the folders under dir.
func NewGitHubSource(client *github.Client, dir string) *GitHubSource {
	return &GitHubSource{client: client, dir: dir}
}

// Folders lists the article folders, sorted by name.
func (s *GitHubSource) Folders(ctx context.Context, refresh bool) ([]Folder, error) {
	items, err := s.client.ListFolders(ctx, s.dir, refresh)
	if err != nil {
		return nil, err
	}
	out := make([]Folder, len(items))
	for i, it := range items {
		out[i] = Folder{Name: it.Name, Path: it.Path}
	}
	return out, nil
}

// Files lists the regular files of an article, sorted by name.
func (s *GitHubSource) Files(ctx context.Context, article string, refresh bool) ([]Entry, error) {
	items, err := s.client.ListFiles(ctx, path.Join(s.dir, article), refresh)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, len(items))
	for i, it := range items {
		out[i] = Entry{Name: it.Name, Path: it.Path, Type: it.Type, DownloadURL: it.DownloadURL}
	}
	return out, nil
}

// Text downloads a file from its download URL.
func (s *GitHubSource) Text(ctx context.Context, e Entry, refresh bool) (string, error) {
	return s.client.FetchText(ctx, e.DownloadURL, refresh)
}

var _ Source = (*GitHubSource)(nil)
