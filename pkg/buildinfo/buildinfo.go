// Package buildinfo holds version information injected at build time:
//
//	go build -ldflags "-X github.com/matzehuels/codelabs/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/codelabs/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/codelabs/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/codelabs
package buildinfo

import "fmt"

var (
	Version = "dev"     // semantic version
	Commit  = "none"    // git commit SHA
	Date    = "unknown" // build timestamp
)

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// UserAgent returns the User-Agent header value for outgoing requests.
func UserAgent() string {
	return "codelabs/" + Version
}
