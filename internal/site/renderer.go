// Package site composes pages from a content snapshot and renders them
// with html/template layouts.
package site

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"
	"time"

	"github.com/jimmywalsh/portfolio/internal/config"
)

const baseLayout = "base.html"

// Page names, one layout file each.
const (
	PageHome     = "home"
	PagePosts    = "posts"
	PagePost     = "post"
	PageDraft    = "draft"
	PageNotFound = "notfound"
)

var pageNames = []string{PageHome, PagePosts, PagePost, PageDraft, PageNotFound}

//go:embed layouts
var embedded embed.FS

// DefaultLayouts is the built-in layout set.
func DefaultLayouts() fs.FS {
	sub, err := fs.Sub(embedded, "layouts")
	if err != nil {
		panic(err)
	}
	return sub
}

// Layouts returns dir as the layout set when it holds a base layout,
// otherwise the built-in set. The second result reports which was chosen.
func Layouts(dir string) (fs.FS, bool) {
	if dir != "" {
		if _, err := os.Stat(filepath.Join(dir, baseLayout)); err == nil {
			return os.DirFS(dir), true
		}
	}
	return DefaultLayouts(), false
}

// Renderer executes page layouts. Each page is parsed into its own clone of
// the base layout so their "content" blocks do not collide.
type Renderer struct {
	cfg  *config.Config
	fsys fs.FS
	now  func() time.Time

	mu    sync.RWMutex
	pages map[string]*template.Template
}

// Option customises a Renderer.
type Option func(*Renderer)

// WithClock sets the time used for the footer year.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) { r.now = now }
}

// NewRenderer parses the layouts in fsys.
func NewRenderer(cfg *config.Config, fsys fs.FS, opts ...Option) (*Renderer, error) {
	r := &Renderer{cfg: cfg, fsys: fsys, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload parses the layouts again. On error the previous templates stay in use.
func (r *Renderer) Reload() error {
	pages, err := parseLayouts(r.fsys)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.pages = pages
	r.mu.Unlock()
	return nil
}

func parseLayouts(fsys fs.FS) (map[string]*template.Template, error) {
	partials, err := fs.Glob(fsys, "partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to find partials: %w", err)
	}
	base, err := template.New(baseLayout).ParseFS(fsys, append([]string{baseLayout}, partials...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s and partials: %w", baseLayout, err)
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		file := name + ".html"
		if _, err := clone.ParseFS(fsys, file); err != nil {
			return nil, fmt.Errorf("failed to parse page layout %s: %w", file, err)
		}
		pages[name] = clone
	}
	return pages, nil
}

// Render executes page with data into w. Nothing is written when execution fails.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	r.mu.RLock()
	tmpl, ok := r.pages[page]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, baseLayout, data); err != nil {
		return fmt.Errorf("failed to execute layout for page %q: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

var redirectTmpl = template.Must(template.New("redirect").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Redirecting</title>
  <link rel="canonical" href="{{ . }}">
  <meta http-equiv="refresh" content="0; url={{ . }}">
</head>
<body><a href="{{ . }}">This article has been released.</a></body>
</html>
`))

// RenderRedirect writes a stub page that forwards the browser to target.
func RenderRedirect(w io.Writer, target string) error {
	return redirectTmpl.Execute(w, target)
}

// ErrReleased is returned when a draft preview is requested for a released post.
var ErrReleased = errors.New("post is released")

// OutputPath maps a page URL to the index.html that serves it in a static build.
func OutputPath(outputDir, url string) string {
	return filepath.Join(outputDir, filepath.FromSlash(path.Clean("/"+url)), "index.html")
}
