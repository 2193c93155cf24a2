package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/codelabs/pkg/observability"
)

// logHooks reports article, cache and HTTP events at debug level.
type logHooks struct {
	logger *log.Logger
}

func registerLogHooks(l *log.Logger) {
	h := &logHooks{logger: l}
	observability.SetArticleHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h *logHooks) OnLoadStart(_ context.Context, article string) {
	h.logger.Debug("article load", "article", article)
}

func (h *logHooks) OnLoadComplete(_ context.Context, article string, pages int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("article load failed", "article", article, "took", d.Round(time.Millisecond), "err", err)
		return
	}
	h.logger.Debug("article loaded", "article", article, "pages", pages, "took", d.Round(time.Millisecond))
}

func (h *logHooks) OnSpin(_ context.Context, sectors, selected, frames int) {
	h.logger.Debug("wheel spin", "sectors", sectors, "selected", selected, "frames", frames)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "took", d.Round(time.Millisecond))
}

func (h *logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}
