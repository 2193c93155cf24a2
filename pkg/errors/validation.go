package errors

import (
	"strings"
	"unicode"
)

// maxArticleNameLength bounds folder names taken from URLs and CLI arguments.
const maxArticleNameLength = 200

// ValidateArticleName validates an article (folder) name before it is used to
// build a content host path. Nested articles use "/" between segments
// ("SEP1/Actors"); spaces and punctuation are allowed, traversal is not.
func ValidateArticleName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidArticle, "article name cannot be empty")
	}

	if len(name) > maxArticleNameLength {
		return New(ErrCodeInvalidArticle, "article name too long (max %d characters)", maxArticleNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidArticle, "article name contains invalid control characters")
		}
	}

	if strings.Contains(name, "\\") {
		return New(ErrCodeInvalidArticle, "article name cannot contain backslashes")
	}

	for _, seg := range strings.Split(name, "/") {
		switch strings.TrimSpace(seg) {
		case "":
			return New(ErrCodeInvalidArticle, "article name has an empty path segment")
		case ".", "..":
			return New(ErrCodeInvalidArticle, "article name cannot contain %q", seg)
		}
	}

	return nil
}

// ValidatePageIndex checks that index addresses one of count pages.
func ValidatePageIndex(index, count int) error {
	if count == 0 {
		return New(ErrCodePageOutOfRange, "article has no pages")
	}
	if index < 0 || index >= count {
		return New(ErrCodePageOutOfRange, "page %d out of range (0-%d)", index, count-1)
	}
	return nil
}

// ValidatePath validates a file path within a repository for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	for _, seg := range strings.Split(path, "/") {
		if seg == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
