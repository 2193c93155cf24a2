package github

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/matzehuels/codelabs/pkg/errors"
)

var (
	// GitHub usernames/orgs: 1-39 alphanumeric or hyphen, not starting with hyphen
	validOwner = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,38}$`)
	// GitHub repo names: 1-100 alphanumeric, hyphen, underscore, or dot
	validRepo = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,100}$`)
	// Branch or tag names, conservatively
	validRef = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._/-]{0,199}$`)
)

// Repo identifies a content repository and the ref articles are read from.
type Repo struct {
	Owner string `json:"owner" toml:"owner"`
	Name  string `json:"repo" toml:"repo"`
	Ref   string `json:"ref" toml:"ref"`
}

// String returns "owner/name@ref".
func (r Repo) String() string {
	return fmt.Sprintf("%s/%s@%s", r.Owner, r.Name, r.Ref)
}

// Validate checks owner, repository and ref names.
func (r Repo) Validate() error {
	if !validOwner.MatchString(r.Owner) {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid owner %q: must be 1-39 alphanumeric characters or hyphens, cannot start with hyphen", r.Owner)
	}
	if !validRepo.MatchString(r.Name) {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid repo %q: must be 1-100 alphanumeric characters, hyphens, underscores, or dots", r.Name)
	}
	if !validRef.MatchString(r.Ref) || strings.Contains(r.Ref, "..") {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid ref %q", r.Ref)
	}
	return nil
}

// ParseRepo parses "owner/repo" or "owner/repo@ref". defaultRef is used
// when no ref is given.
func ParseRepo(s, defaultRef string) (Repo, error) {
	ref := defaultRef
	if i := strings.LastIndex(s, "@"); i >= 0 {
		s, ref = s[:i], s[i+1:]
	}
	owner, name, ok := strings.Cut(s, "/")
	if !ok {
		return Repo{}, errors.New(errors.ErrCodeInvalidConfig, "invalid repo %q: use owner/repo[@ref]", s)
	}
	r := Repo{Owner: owner, Name: name, Ref: ref}
	return r, r.Validate()
}
