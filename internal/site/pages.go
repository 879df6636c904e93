package site

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jimmywalsh/portfolio/internal/content"
	"github.com/jimmywalsh/portfolio/internal/meta"
	"github.com/jimmywalsh/portfolio/internal/model"
)

func (r *Renderer) siteInfo() model.SiteInfo {
	return model.SiteInfo{
		Title:       r.cfg.SiteTitle,
		Description: r.cfg.Description,
		Author:      r.cfg.Author,
		BaseURL:     r.cfg.BaseURL,
		Avatar:      r.cfg.Avatar,
		Navigation:  r.cfg.Navigation,
		Year:        meta.FormatTime(r.now(), "yyyy"),
	}
}

func (r *Renderer) absURL(p string) string {
	if r.cfg.BaseURL == "" {
		return ""
	}
	return strings.TrimSuffix(r.cfg.BaseURL, "/") + p
}

func (r *Renderer) summarize(p *model.Post) model.PostSummary {
	s := model.PostSummary{
		Slug:        p.Slug,
		URL:         p.URL(),
		Title:       p.Title,
		Brief:       p.Brief,
		CoverImage:  p.CoverImage,
		Tags:        p.Tags,
		ReadMinutes: meta.ReadMinutes(p.RawBody, r.cfg.Content.WordsPerMinute),
	}
	if p.PublishedAt != nil {
		s.Published = meta.FormatTime(*p.PublishedAt, r.cfg.Content.DateFormat)
		s.PublishedISO = p.PublishedAt.Format(time.RFC3339)
	}
	return s
}

func (r *Renderer) summaries(posts []*model.Post) []model.PostSummary {
	out := make([]model.PostSummary, 0, len(posts))
	for _, p := range posts {
		out = append(out, r.summarize(p))
	}
	return out
}

func (r *Renderer) optionalSummary(p *model.Post) *model.PostSummary {
	if p == nil {
		return nil
	}
	s := r.summarize(p)
	return &s
}

// HomeData is the landing page: intro and the latest released posts.
func (r *Renderer) HomeData(site *model.Site) *model.PageData {
	latest := site.Released
	if n := r.cfg.Content.LatestPosts; len(latest) > n {
		latest = latest[:n]
	}
	return &model.PageData{
		Site: r.siteInfo(),
		Meta: model.PageMeta{
			Title:       r.cfg.SiteTitle,
			Description: r.cfg.Description,
			OGType:      "website",
			URL:         r.absURL("/"),
		},
		Intro: r.cfg.Intro,
		Posts: r.summaries(latest),
	}
}

// PostListData lists every released post, newest first.
func (r *Renderer) PostListData(site *model.Site) *model.PageData {
	return &model.PageData{
		Site: r.siteInfo(),
		Meta: model.PageMeta{
			Title:       "Articles - " + r.cfg.SiteTitle,
			Description: r.cfg.Description,
			OGType:      "website",
			URL:         r.absURL("/posts"),
		},
		Posts: r.summaries(site.Released),
	}
}

// PostData is the article page of a released post with its neighbours.
func (r *Renderer) PostData(site *model.Site, slug string) (*model.PageData, error) {
	post, err := content.FindBySlug(site.Released, slug)
	if err != nil {
		return nil, err
	}
	older, err := content.FindAdjacent(site.Released, slug, content.Previous)
	if err != nil {
		return nil, err
	}
	newer, err := content.FindAdjacent(site.Released, slug, content.Next)
	if err != nil {
		return nil, err
	}

	data := r.articleData(post)
	data.Previous = r.optionalSummary(older)
	data.Next = r.optionalSummary(newer)
	return data, nil
}

// DraftData is the preview page of an unreleased post. It resolves over the
// whole collection and fails with ErrReleased once the post is public.
func (r *Renderer) DraftData(site *model.Site, slug string) (*model.PageData, error) {
	post, err := content.FindBySlug(site.Posts, slug)
	if err != nil {
		return nil, err
	}
	if content.IsReleased(post) {
		return nil, fmt.Errorf("draft %q: %w", slug, ErrReleased)
	}

	data := r.articleData(post)
	data.Meta.URL = r.absURL(post.DraftURL())
	data.Draft = &model.DraftInfo{Status: post.Status}
	if post.PublishedAt != nil {
		data.Draft.ReleaseDate = meta.FormatTime(*post.PublishedAt, r.cfg.Content.DraftDateFormat)
	}
	return data, nil
}

func (r *Renderer) articleData(post *model.Post) *model.PageData {
	summary := r.summarize(post)
	return &model.PageData{
		Site: r.siteInfo(),
		Meta: model.PageMeta{
			Title:       post.Title,
			Description: post.Brief,
			Image:       post.CoverImage,
			OGType:      "article",
			URL:         r.absURL(post.URL()),
		},
		Post:    &summary,
		Content: post.ContentHTML,
	}
}

// NotFoundData is the 404 page.
func (r *Renderer) NotFoundData() *model.PageData {
	return &model.PageData{
		Site: r.siteInfo(),
		Meta: model.PageMeta{
			Title:  "Not found - " + r.cfg.SiteTitle,
			OGType: "website",
		},
	}
}

func (r *Renderer) Home(w io.Writer, site *model.Site) error {
	return r.Render(w, PageHome, r.HomeData(site))
}

func (r *Renderer) PostList(w io.Writer, site *model.Site) error {
	return r.Render(w, PagePosts, r.PostListData(site))
}

// Post renders a released article. Unknown or unreleased slugs fail with
// content.ErrNotFound before anything is written.
func (r *Renderer) Post(w io.Writer, site *model.Site, slug string) error {
	data, err := r.PostData(site, slug)
	if err != nil {
		return err
	}
	return r.Render(w, PagePost, data)
}

// Draft renders a preview. Released posts fail with ErrReleased.
func (r *Renderer) Draft(w io.Writer, site *model.Site, slug string) error {
	data, err := r.DraftData(site, slug)
	if err != nil {
		return err
	}
	return r.Render(w, PageDraft, data)
}

func (r *Renderer) NotFound(w io.Writer) error {
	return r.Render(w, PageNotFound, r.NotFoundData())
}
