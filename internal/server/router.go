// Package server serves the site live from the in-memory snapshot.
package server

import (
	"bytes"
	"errors"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/jimmywalsh/portfolio/internal/config"
	"github.com/jimmywalsh/portfolio/internal/content"
	"github.com/jimmywalsh/portfolio/internal/metrics"
	"github.com/jimmywalsh/portfolio/internal/model"
	"github.com/jimmywalsh/portfolio/internal/site"
)

// SiteSource returns the snapshot to serve a request from.
type SiteSource interface {
	Site() *model.Site
}

type handler struct {
	sites    SiteSource
	renderer *site.Renderer
	cfg      *config.Config
	log      zerolog.Logger
}

// NewRouter creates the gin engine serving the pages, health, metrics and
// static assets.
func NewRouter(sites SiteSource, renderer *site.Renderer, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.RedirectTrailingSlash = true

	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	if cfg.Server.RateLimit.RPS > 0 {
		router.Use(newRateLimiter(cfg.Server.RateLimit.RPS, cfg.Server.RateLimit.Burst).middleware())
	}

	reg := prometheus.NewRegistry()
	metrics.RegisterCollectors(reg)

	h := &handler{sites: sites, renderer: renderer, cfg: cfg, log: log}

	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	router.GET("/", h.home)
	router.GET("/posts", h.postList)
	router.GET("/posts/:slug", h.post)
	router.GET("/posts/drafts/:slug", h.draft)

	router.NoRoute(h.static)

	return router
}

func (h *handler) health(c *gin.Context) {
	s := h.sites.Site()
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"posts":     len(s.Posts),
		"released":  len(s.Released),
		"loaded_at": s.LoadedAt.Format(time.RFC3339),
	})
}

func (h *handler) home(c *gin.Context) {
	h.render(c, site.PageHome, func(buf *bytes.Buffer) error {
		return h.renderer.Home(buf, h.sites.Site())
	})
}

func (h *handler) postList(c *gin.Context) {
	h.render(c, site.PagePosts, func(buf *bytes.Buffer) error {
		return h.renderer.PostList(buf, h.sites.Site())
	})
}

func (h *handler) post(c *gin.Context) {
	slug := c.Param("slug")
	h.render(c, site.PagePost, func(buf *bytes.Buffer) error {
		return h.renderer.Post(buf, h.sites.Site(), slug)
	})
}

func (h *handler) draft(c *gin.Context) {
	slug := c.Param("slug")
	data, err := h.renderer.DraftData(h.sites.Site(), slug)
	if errors.Is(err, site.ErrReleased) {
		metrics.PageRenders.WithLabelValues(site.PageDraft, strconv.Itoa(http.StatusTemporaryRedirect)).Inc()
		c.Redirect(http.StatusTemporaryRedirect, "/posts/"+slug)
		return
	}
	h.render(c, site.PageDraft, func(buf *bytes.Buffer) error {
		if err != nil {
			return err
		}
		return h.renderer.Render(buf, site.PageDraft, data)
	})
}

// static serves files from the static directory and falls back to the 404 page.
func (h *handler) static(c *gin.Context) {
	if h.cfg.StaticDir != "" && c.Request.Method == http.MethodGet {
		rel := path.Clean("/" + c.Request.URL.Path)
		file := filepath.Join(h.cfg.StaticDir, filepath.FromSlash(rel))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.Header("Cache-Control", "no-cache")
			c.File(file)
			return
		}
	}
	h.notFound(c)
}

func (h *handler) render(c *gin.Context, page string, fn func(buf *bytes.Buffer) error) {
	var buf bytes.Buffer
	err := fn(&buf)
	switch {
	case err == nil:
		metrics.PageRenders.WithLabelValues(page, strconv.Itoa(http.StatusOK)).Inc()
		c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
	case errors.Is(err, content.ErrNotFound):
		h.notFound(c)
	default:
		h.log.Error().Err(err).Str("page", page).Str("path", c.Request.URL.Path).Msg("Render failed")
		metrics.PageRenders.WithLabelValues(page, strconv.Itoa(http.StatusInternalServerError)).Inc()
		c.String(http.StatusInternalServerError, "Internal server error")
	}
}

func (h *handler) notFound(c *gin.Context) {
	metrics.PageRenders.WithLabelValues(site.PageNotFound, strconv.Itoa(http.StatusNotFound)).Inc()
	var buf bytes.Buffer
	if err := h.renderer.NotFound(&buf); err != nil {
		h.log.Error().Err(err).Msg("Render of not found page failed")
		c.String(http.StatusNotFound, "404 page not found")
		return
	}
	c.Data(http.StatusNotFound, "text/html; charset=utf-8", buf.Bytes())
}
