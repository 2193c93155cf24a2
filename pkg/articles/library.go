package articles

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/codelabs/pkg/cache"
	"github.com/matzehuels/codelabs/pkg/errors"
	"github.com/matzehuels/codelabs/pkg/markdown"
	"github.com/matzehuels/codelabs/pkg/observability"
	"github.com/matzehuels/codelabs/pkg/transform"
)

// DefaultConcurrency is the number of page downloads run in parallel.
const DefaultConcurrency = 8

// LoadTimeout bounds one shared article load, which outlives the
// cancellation of the caller that started it.
const LoadTimeout = 2 * time.Minute

// Library loads articles from a [Source] and converts them to pages.
// Converted articles are kept in memory for the life of the Library and, if
// configured, in a [cache.Cache]. It is safe for concurrent use.
type Library struct {
	src         Source
	chain       *transform.Chain
	imageBase   string
	cache       cache.Cache
	keyer       cache.Keyer
	ttl         time.Duration
	logger      *log.Logger
	concurrency int

	mu    sync.Mutex
	pages map[string][]Page
	group singleflight.Group
}

// Option configures a [Library].
type Option func(*Library)

// WithCache stores converted articles in c for ttl.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(l *Library) {
		if c != nil {
			l.cache = c
		}
		l.ttl = ttl
	}
}

// WithKeyer sets how page cache keys are built.
func WithKeyer(k cache.Keyer) Option {
	return func(l *Library) {
		if k != nil {
			l.keyer = k
		}
	}
}

// WithChain replaces the default transformer chain.
func WithChain(c *transform.Chain) Option {
	return func(l *Library) {
		if c != nil {
			l.chain = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(l *Library) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithConcurrency bounds parallel page downloads.
func WithConcurrency(n int) Option {
	return func(l *Library) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

// NewLibrary creates a library over src. imageBase is the URL under which
// article folders serve their images; it configures the default chain.
func NewLibrary(src Source, imageBase string, opts ...Option) *Library {
	l := &Library{
		src:         src,
		imageBase:   imageBase,
		cache:       cache.NewNullCache(),
		keyer:       cache.NewDefaultKeyer(),
		logger:      log.Default(),
		concurrency: DefaultConcurrency,
		pages:       make(map[string][]Page),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.chain == nil {
		l.chain = transform.Default(markdown.New(), imageBase)
	}
	return l
}

// Folders lists the available articles.
func (l *Library) Folders(ctx context.Context) ([]Folder, error) {
	folders, err := l.src.Folders(ctx, false)
	if err != nil {
		return nil, sourceError(err, "list articles")
	}
	return folders, nil
}

// Pages returns the converted pages of the named article.
func (l *Library) Pages(ctx context.Context, name string) ([]Page, error) {
	if err := errors.ValidateArticleName(name); err != nil {
		return nil, err
	}

	if pages, ok := l.lookup(name); ok {
		return pages, nil
	}

	return l.shared(ctx, name, func(ctx context.Context) ([]Page, error) {
		// A load that finished since the lookup above has already stored it.
		if pages, ok := l.lookup(name); ok {
			return pages, nil
		}
		return l.load(ctx, name, false)
	})
}

// Page returns page index (0-based) of the named article.
func (l *Library) Page(ctx context.Context, name string, index int) (Page, error) {
	pages, err := l.Pages(ctx, name)
	if err != nil {
		return Page{}, err
	}
	if err := errors.ValidatePageIndex(index, len(pages)); err != nil {
		return Page{}, err
	}
	return pages[index], nil
}

// Refresh reloads the named article from the source, bypassing both the
// in-memory copy and the cache.
func (l *Library) Refresh(ctx context.Context, name string) ([]Page, error) {
	if err := errors.ValidateArticleName(name); err != nil {
		return nil, err
	}
	l.Forget(name)
	return l.shared(ctx, "refresh:"+name, func(ctx context.Context) ([]Page, error) {
		return l.load(ctx, name, true)
	})
}

// shared runs fn once per key for all concurrent callers. fn gets a context
// that keeps ctx's values but not its cancellation; each caller stops
// waiting when its own ctx is done.
func (l *Library) shared(ctx context.Context, key string, fn func(context.Context) ([]Page, error)) ([]Page, error) {
	ch := l.group.DoChan(key, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), LoadTimeout)
		defer cancel()
		return fn(loadCtx)
	})
	select {
	case <-ctx.Done():
		return nil, sourceError(ctx.Err(), "load article")
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]Page), nil
	}
}

// Forget drops the in-memory copy of the named article.
func (l *Library) Forget(name string) {
	l.mu.Lock()
	delete(l.pages, name)
	l.mu.Unlock()
}

func (l *Library) load(ctx context.Context, name string, refresh bool) ([]Page, error) {
	key := l.keyer.PagesKey(name, cache.PagesKeyOpts{ImageBase: l.imageBase})

	if !refresh {
		if data, ok, err := l.cache.Get(ctx, key); err == nil && ok {
			var pages []Page
			if json.Unmarshal(data, &pages) == nil {
				observability.Cache().OnCacheHit(ctx, "pages")
				l.logger.Debug("article from cache", "article", name, "pages", len(pages))
				l.remember(name, pages)
				return pages, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "pages")
	}

	hooks := observability.Articles()
	hooks.OnLoadStart(ctx, name)
	start := time.Now()
	pages, err := l.fetch(ctx, name, refresh)
	took := time.Since(start)
	hooks.OnLoadComplete(ctx, name, len(pages), took, err)
	if err != nil {
		return nil, err
	}

	l.logger.Info("loaded article", "article", name, "pages", len(pages), "took", took.Round(time.Millisecond))

	if data, err := json.Marshal(pages); err == nil {
		if err := l.cache.Set(ctx, key, data, l.ttl); err != nil {
			l.logger.Warn("cache article", "article", name, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "pages", len(data))
		}
	}
	l.remember(name, pages)
	return pages, nil
}

// fetch downloads every page of the article concurrently and converts it.
func (l *Library) fetch(ctx context.Context, name string, refresh bool) ([]Page, error) {
	entries, err := l.src.Files(ctx, name, refresh)
	if err != nil {
		if stderrors.Is(err, cache.ErrNotFound) {
			return nil, errors.Wrap(errors.ErrCodeArticleNotFound, err, "no article named %q", name)
		}
		return nil, sourceError(err, "list article %q", name)
	}

	files := PageFiles(entries)
	bodies := make([]string, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, f := range files {
		g.Go(func() error {
			text, err := l.src.Text(gctx, f, refresh)
			if err != nil {
				return sourceError(err, "download %s", f.Name)
			}
			bodies[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	pages := make([]Page, len(files))
	for i, f := range files {
		pages[i] = Page{
			Title: PageTitle(f.Name, i),
			HTML:  l.chain.Convert(bodies[i], name),
		}
	}
	return pages, nil
}

func (l *Library) lookup(name string) ([]Page, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	pages, ok := l.pages[name]
	return pages, ok
}

func (l *Library) remember(name string, pages []Page) {
	l.mu.Lock()
	l.pages[name] = pages
	l.mu.Unlock()
}

// sourceError converts a source failure into a coded error.
func sourceError(err error, format string, args ...any) error {
	code := errors.ErrCodeNetwork
	switch {
	case stderrors.Is(err, cache.ErrNotFound):
		code = errors.ErrCodeNotFound
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		code = errors.ErrCodeTimeout
	}
	return errors.Wrap(code, err, format, args...)
}
