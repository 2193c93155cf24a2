package articles

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/codelabs/pkg/cache"
	"github.com/matzehuels/codelabs/pkg/errors"
	"github.com/matzehuels/codelabs/pkg/observability"
)

const testImageBase = "https://raw.example.com/owner/repo/refs/heads/main/Articles"

// fakeSource serves articles from memory and counts calls.
type fakeSource struct {
	folders []Folder
	files   map[string][]Entry
	bodies  map[string]string
	failURL string

	fileCalls atomic.Int32
	textCalls atomic.Int32
}

func (s *fakeSource) Folders(ctx context.Context, refresh bool) ([]Folder, error) {
	return s.folders, nil
}

func (s *fakeSource) Files(ctx context.Context, article string, refresh bool) ([]Entry, error) {
	s.fileCalls.Add(1)
	entries, ok := s.files[article]
	if !ok {
		return nil, fmt.Errorf("list %s: %w", article, cache.ErrNotFound)
	}
	return entries, nil
}

func (s *fakeSource) Text(ctx context.Context, e Entry, refresh bool) (string, error) {
	s.textCalls.Add(1)
	if e.DownloadURL == s.failURL {
		return "", cache.Retryable(cache.ErrNetwork)
	}
	return s.bodies[e.DownloadURL], nil
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		folders: []Folder{{Name: "Git", Path: "Articles/Git"}},
		files: map[string][]Entry{
			"Git": {
				{Name: "001 Intro.md", Type: "file", DownloadURL: "u1"},
				{Name: "002 Branches and merging.md", Type: "file", DownloadURL: "u2"},
				{Name: "Meta.json", Type: "file", DownloadURL: "meta"},
				{Name: "diagram.png", Type: "file", DownloadURL: "png"},
				{Name: "Resources", Type: "dir"},
			},
			"Empty": {},
		},
		bodies: map[string]string{
			"u1": "# Intro\n\nStep ((1)): ![x](img/a.png)",
			"u2": "## Merge\n\n<hint title=\"Stuck?\">\nRebase.\n</hint>",
		},
	}
}

func TestLibraryPages(t *testing.T) {
	src := newFakeSource()
	lib := NewLibrary(src, testImageBase)

	pages, err := lib.Pages(context.Background(), "Git")
	if err != nil {
		t.Fatalf("Pages() error: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	if pages[0].Title != "1. Intro" || pages[1].Title != "2. Branches and merging" {
		t.Errorf("titles = %q, %q", pages[0].Title, pages[1].Title)
	}

	for _, want := range []string{
		`<h1 id="intro">Intro</h1>`,
		`<span class="numberCircle"><span>1</span></span>`,
		`src="` + testImageBase + `/Git/img/a.png"`,
	} {
		if !strings.Contains(pages[0].HTML, want) {
			t.Errorf("page 0 missing %q:\n%s", want, pages[0].HTML)
		}
	}
	if !strings.Contains(pages[1].HTML, `<details class="hint">`) {
		t.Errorf("page 1 hint not converted:\n%s", pages[1].HTML)
	}
	if got := src.textCalls.Load(); got != 2 {
		t.Errorf("downloaded %d files, want 2 (non-pages skipped)", got)
	}
}

func TestLibraryMemoizes(t *testing.T) {
	src := newFakeSource()
	lib := NewLibrary(src, testImageBase)
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := lib.Pages(ctx, "Git"); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
	lib.Pages(ctx, "Git")

	if got := src.fileCalls.Load(); got != 1 {
		t.Errorf("source listed %d times, want 1", got)
	}

	lib.Refresh(ctx, "Git")
	if got := src.fileCalls.Load(); got != 2 {
		t.Errorf("Refresh should reload, listed %d times", got)
	}
}

func TestLibraryUsesCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	first := newFakeSource()
	if _, err := NewLibrary(first, testImageBase, WithCache(c, time.Hour)).Pages(ctx, "Git"); err != nil {
		t.Fatal(err)
	}

	second := newFakeSource()
	pages, err := NewLibrary(second, testImageBase, WithCache(c, time.Hour)).Pages(ctx, "Git")
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 2 {
		t.Errorf("cached pages = %d", len(pages))
	}
	if second.fileCalls.Load() != 0 {
		t.Error("second library should be served from the cache")
	}

	other := newFakeSource()
	NewLibrary(other, "https://elsewhere", WithCache(c, time.Hour)).Pages(ctx, "Git")
	if other.fileCalls.Load() != 1 {
		t.Error("a different image base must not share cached pages")
	}
}

func TestLibraryErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		article string
		setup   func(*fakeSource)
		code    errors.Code
	}{
		{"missing article", "Nope", nil, errors.ErrCodeArticleNotFound},
		{"invalid name", "../etc", nil, errors.ErrCodeInvalidArticle},
		{"download failure", "Git", func(s *fakeSource) { s.failURL = "u2" }, errors.ErrCodeNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newFakeSource()
			if tt.setup != nil {
				tt.setup(src)
			}
			_, err := NewLibrary(src, testImageBase).Pages(ctx, tt.article)
			if !errors.Is(err, tt.code) {
				t.Errorf("Pages(%q) error = %v, want code %s", tt.article, err, tt.code)
			}
		})
	}
}

func TestLibraryPage(t *testing.T) {
	lib := NewLibrary(newFakeSource(), testImageBase)
	ctx := context.Background()

	p, err := lib.Page(ctx, "Git", 1)
	if err != nil {
		t.Fatalf("Page() error: %v", err)
	}
	if p.Title != "2. Branches and merging" {
		t.Errorf("Title = %q", p.Title)
	}

	for _, idx := range []int{-1, 2} {
		if _, err := lib.Page(ctx, "Git", idx); !errors.Is(err, errors.ErrCodePageOutOfRange) {
			t.Errorf("Page(%d) error = %v, want PAGE_OUT_OF_RANGE", idx, err)
		}
	}

	if _, err := lib.Page(ctx, "Empty", 0); !errors.Is(err, errors.ErrCodePageOutOfRange) {
		t.Errorf("Page on empty article error = %v", err)
	}
}

func TestLibraryFolders(t *testing.T) {
	folders, err := NewLibrary(newFakeSource(), testImageBase).Folders(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(folders) != 1 || folders[0].Name != "Git" {
		t.Errorf("Folders() = %+v", folders)
	}
}

type recordingHooks struct {
	observability.NoopArticleHooks
	observability.NoopCacheHooks

	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	h.events = append(h.events, e)
	h.mu.Unlock()
}

func (h *recordingHooks) OnLoadComplete(_ context.Context, article string, pages int, _ time.Duration, err error) {
	h.record(fmt.Sprintf("load %s %d %v", article, pages, err != nil))
}

func (h *recordingHooks) OnCacheHit(_ context.Context, keyType string)  { h.record("hit " + keyType) }
func (h *recordingHooks) OnCacheMiss(_ context.Context, keyType string) { h.record("miss " + keyType) }

func TestLibraryHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetArticleHooks(hooks)
	observability.SetCacheHooks(hooks)
	t.Cleanup(observability.Reset)

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	NewLibrary(newFakeSource(), testImageBase, WithCache(c, time.Hour)).Pages(ctx, "Git")
	NewLibrary(newFakeSource(), testImageBase, WithCache(c, time.Hour)).Pages(ctx, "Git")
	NewLibrary(newFakeSource(), testImageBase).Pages(ctx, "Missing")

	want := []string{"miss pages", "load Git 2 false", "hit pages", "miss pages", "load Missing 0 true"}
	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if strings.Join(hooks.events, "|") != strings.Join(want, "|") {
		t.Errorf("events = %q, want %q", hooks.events, want)
	}
}

// gatedSource blocks file listings until release is closed.
type gatedSource struct {
	*fakeSource
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func (s *gatedSource) Files(ctx context.Context, article string, refresh bool) ([]Entry, error) {
	s.once.Do(func() { close(s.started) })
	select {
	case <-s.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return s.fakeSource.Files(ctx, article, refresh)
}

func TestLibraryCancelledCallerDoesNotFailOthers(t *testing.T) {
	src := &gatedSource{
		fakeSource: newFakeSource(),
		started:    make(chan struct{}),
		release:    make(chan struct{}),
	}
	lib := NewLibrary(src, testImageBase)

	ctx1, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := lib.Pages(ctx1, "Git")
		first <- err
	}()
	<-src.started

	second := make(chan error, 1)
	go func() {
		pages, err := lib.Pages(context.Background(), "Git")
		if err == nil && len(pages) != 2 {
			err = fmt.Errorf("got %d pages, want 2", len(pages))
		}
		second <- err
	}()

	cancel()
	if err := <-first; !errors.Is(err, errors.ErrCodeTimeout) {
		t.Errorf("cancelled caller error = %v, want %s", err, errors.ErrCodeTimeout)
	}

	close(src.release)
	if err := <-second; err != nil {
		t.Errorf("waiting caller failed: %v", err)
	}
	if got := src.fileCalls.Load(); got != 1 {
		t.Errorf("source listed %d times, want 1", got)
	}
}
