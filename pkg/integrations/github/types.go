package github

// Content item types returned by the contents API.
const (
	TypeFile = "file"
	TypeDir  = "dir"
)

// ContentItem is one entry of a repository directory listing.
type ContentItem struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Type        string `json:"type"` // "file", "dir", "symlink" or "submodule"
	Size        int    `json:"size"`
	SHA         string `json:"sha,omitempty"`
	DownloadURL string `json:"download_url,omitempty"`
}

// IsDir reports whether the item is a directory.
func (c ContentItem) IsDir() bool { return c.Type == TypeDir }

// IsFile reports whether the item is a regular file.
func (c ContentItem) IsFile() bool { return c.Type == TypeFile }
