// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries emit events through the registered hooks; the defaults do
// nothing. Applications register their own implementations once at startup,
// so the libraries never depend on a particular backend.
//
// # Usage
//
//	func main() {
//	    observability.SetArticleHooks(&myArticleHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks around the work they observe:
//
//	observability.Articles().OnLoadStart(ctx, name)
//	// ... download and convert ...
//	observability.Articles().OnLoadComplete(ctx, name, len(pages), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Article Hooks
// =============================================================================

// ArticleHooks receives events from article loading and the selection wheel.
type ArticleHooks interface {
	// OnLoadStart fires before an article is fetched from its source.
	OnLoadStart(ctx context.Context, article string)

	// OnLoadComplete fires after a source fetch, with the page count on success.
	OnLoadComplete(ctx context.Context, article string, pages int, duration time.Duration, err error)

	// OnSpin records a completed wheel spin.
	OnSpin(ctx context.Context, sectors, selected, frames int)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache lookups. keyType names what was
// looked up, such as "http" or "pages".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from outgoing HTTP requests.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records a transport failure (network error, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopArticleHooks ignores all article events.
type NoopArticleHooks struct{}

func (NoopArticleHooks) OnLoadStart(context.Context, string)                               {}
func (NoopArticleHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {}
func (NoopArticleHooks) OnSpin(context.Context, int, int, int)                             {}

// NoopCacheHooks ignores all cache events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores all HTTP events.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	articleHooks ArticleHooks = NoopArticleHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	httpHooks    HTTPHooks    = NoopHTTPHooks{}
	hooksMu      sync.RWMutex
)

// SetArticleHooks registers article hooks. A nil h is ignored.
func SetArticleHooks(h ArticleHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		articleHooks = h
	}
}

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers HTTP hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Articles returns the registered article hooks.
func Articles() ArticleHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return articleHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	articleHooks = NoopArticleHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
