package server

import (
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/codelabs/pkg/articles"
	"github.com/matzehuels/codelabs/pkg/errors"
)

// =============================================================================
// HTML
// =============================================================================

type indexView struct {
	Title   string
	Folders []articles.Folder
}

type articleView struct {
	Title   string
	Article string
	Page    articles.Page
	Body    template.HTML
	Cursor  articles.Cursor
	Pages   []pageLink
	Outline []articles.Heading
}

type pageLink struct {
	Index   int
	Title   string
	Current bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	folders, err := s.lib.Folders(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, "index.html", indexView{Title: s.title, Folders: folders})
}

func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	index, err := pageParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	pages, err := s.lib.Pages(r.Context(), name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := errors.ValidatePageIndex(index, len(pages)); err != nil {
		s.fail(w, r, err)
		return
	}

	page := pages[index]
	outline, err := articles.Outline(page.HTML)
	if err != nil {
		s.logger.Debug("outline failed", "article", name, "page", index, "err", err)
	}

	links := make([]pageLink, len(pages))
	for i, p := range pages {
		links[i] = pageLink{Index: i, Title: p.Title, Current: i == index}
	}

	// Page HTML comes from the transformer chain over the content repository.
	body := template.HTML(page.HTML)

	s.render(w, r, "article.html", articleView{
		Title:   s.title,
		Article: name,
		Page:    page,
		Body:    body,
		Cursor:  articles.NewCursor(len(pages)).GoTo(index),
		Pages:   links,
		Outline: outline,
	})
}

// =============================================================================
// JSON API
// =============================================================================

func (s *Server) handleAPIFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := s.lib.Folders(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if folders == nil {
		folders = []articles.Folder{}
	}
	writeJSON(w, http.StatusOK, folders)
}

type outlineResponse struct {
	Article  string             `json:"article"`
	Page     int                `json:"page"`
	Title    string             `json:"title"`
	Headings []articles.Heading `json:"headings"`
}

const outlineSuffix = "/outline"

func (s *Server) handleAPIArticle(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	if trimmed, ok := strings.CutSuffix(name, outlineSuffix); ok && trimmed != "" {
		s.handleAPIOutline(w, r, trimmed)
		return
	}

	pages, err := s.lib.Pages(r.Context(), name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if pages == nil {
		pages = []articles.Page{}
	}
	writeJSON(w, http.StatusOK, pages)
}

func (s *Server) handleAPIOutline(w http.ResponseWriter, r *http.Request, name string) {
	index, err := pageParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	pages, err := s.lib.Pages(r.Context(), name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := errors.ValidatePageIndex(index, len(pages)); err != nil {
		s.fail(w, r, err)
		return
	}
	headings, err := articles.Outline(pages[index].HTML)
	if err != nil {
		s.fail(w, r, errors.Wrap(errors.ErrCodeInternal, err, "outline page %d", index))
		return
	}
	if headings == nil {
		headings = []articles.Heading{}
	}
	writeJSON(w, http.StatusOK, outlineResponse{
		Article:  name,
		Page:     index,
		Title:    pages[index].Title,
		Headings: headings,
	})
}

// pageParam reads the 0-based page query parameter, defaulting to 0.
func pageParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.New(errors.ErrCodeInvalidPage, "page must be a non-negative integer, got %q", raw)
	}
	return n, nil
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("render template", "template", name, "err", err, "request_id", RequestIDFrom(r.Context()))
	}
}
