// Package integrations provides the shared HTTP client used by content host
// clients.
//
// # Client
//
// [Client] wraps net/http with:
//   - default request headers (Accept, User-Agent, Authorization)
//   - status mapping: 404 to [ErrNotFound], 5xx and transport failures to a
//     retryable [ErrNetwork]
//   - response caching through [cache.Cache] with retry and backoff on miss
//
// Host-specific clients embed it:
//
//	type Client struct {
//	    *integrations.Client
//	    baseURL string
//	}
//
// [github] is the only host client today.
//
// [github]: github.com/matzehuels/codelabs/pkg/integrations/github
// [cache.Cache]: github.com/matzehuels/codelabs/pkg/cache.Cache
package integrations
