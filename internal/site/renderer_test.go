package site

import (
	"bytes"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimmywalsh/portfolio/internal/config"
	"github.com/jimmywalsh/portfolio/internal/content"
	"github.com/jimmywalsh/portfolio/internal/model"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		SiteTitle:   "James Walsh",
		Description: "Articles about web development.",
		Author:      "James Walsh",
		BaseURL:     "https://example.com/",
		Navigation: []model.NavItem{
			{Label: "Home", Href: "/"},
			{Label: "Articles", Href: "/posts"},
		},
		Content: config.ContentConfig{
			WordsPerMinute:  200,
			DateFormat:      "MMM dd, yyyy",
			DraftDateFormat: "MMM dd, yy",
			LatestPosts:     2,
		},
	}
}

func at(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func testSite() *model.Site {
	posts := []*model.Post{
		{Slug: "c", Title: "Post C", Brief: "Brief C", Status: model.StatusReleased, PublishedAt: at("2024-01-01"),
			Tags: []string{"go"}, CoverImage: "/img/c.png", RawBody: strings.Repeat("w ", 401), ContentHTML: template.HTML("<p>body c</p>")},
		{Slug: "b", Title: "Post B", Status: model.StatusReleased, PublishedAt: at("2023-06-01"), ContentHTML: "<p>body b</p>"},
		{Slug: "a", Title: "Post A", Status: model.StatusReleased, PublishedAt: at("2023-01-01"), ContentHTML: "<p>body a</p>"},
		{Slug: "scheduled", Title: "Scheduled", Status: model.StatusDraft, PublishedAt: at("2030-03-05"), ContentHTML: "<p>soon</p>"},
		{Slug: "idea", Title: "Idea", Status: model.StatusDraft, ContentHTML: "<p>idea</p>"},
	}
	return &model.Site{Posts: posts, Released: content.FilterReleased(posts), LoadedAt: fixedNow}
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(testConfig(), DefaultLayouts(), WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return r
}

func TestHome(t *testing.T) {
	r := newTestRenderer(t)
	var buf bytes.Buffer
	require.NoError(t, r.Home(&buf, testSite()))

	out := buf.String()
	assert.Contains(t, out, "<title>James Walsh</title>")
	assert.Contains(t, out, "Post C")
	assert.Contains(t, out, "Post B")
	assert.NotContains(t, out, "Post A", "only the latest posts are listed")
	assert.NotContains(t, out, "Scheduled")
	assert.Contains(t, out, "&copy;&nbsp;2024&nbsp;James Walsh")
	assert.Contains(t, out, `class="mobile-menu"`)
	assert.Equal(t, 3, strings.Count(out, `href="/posts">Articles</a>`), "header, mobile menu and footer")
}

func TestPostList(t *testing.T) {
	r := newTestRenderer(t)
	var buf bytes.Buffer
	require.NoError(t, r.PostList(&buf, testSite()))

	out := buf.String()
	assert.Contains(t, out, "<title>Articles - James Walsh</title>")
	c, b, a := strings.Index(out, "Post C"), strings.Index(out, "Post B"), strings.Index(out, "Post A")
	require.True(t, c >= 0 && b >= 0 && a >= 0)
	assert.True(t, c < b && b < a, "newest first")
	assert.Contains(t, out, "Jan 01, 2024")
	assert.Contains(t, out, `src="/img/c.png"`)
	assert.NotContains(t, out, "Idea")
}

func TestPost(t *testing.T) {
	r := newTestRenderer(t)
	var buf bytes.Buffer
	require.NoError(t, r.Post(&buf, testSite(), "b"))

	out := buf.String()
	assert.Contains(t, out, "<title>Post B</title>")
	assert.Contains(t, out, `<meta property="og:type" content="article">`)
	assert.Contains(t, out, `<meta property="og:url" content="https://example.com/posts/b">`)
	assert.Contains(t, out, "<p>body b</p>")
	assert.Contains(t, out, "1&nbsp;min read")
	assert.Contains(t, out, `href="/posts/a" class="button" rel="prev"`)
	assert.Contains(t, out, `href="/posts/c" class="button" rel="next"`)
}

func TestPost_Metadata(t *testing.T) {
	r := newTestRenderer(t)
	data, err := r.PostData(testSite(), "c")
	require.NoError(t, err)

	assert.Equal(t, "Post C", data.Meta.Title)
	assert.Equal(t, "Brief C", data.Meta.Description)
	assert.Equal(t, "/img/c.png", data.Meta.Image)
	assert.Equal(t, 3, data.Post.ReadMinutes)
	assert.Equal(t, []string{"go"}, data.Post.Tags)
	assert.Nil(t, data.Next, "newest post has no newer neighbour")
	require.NotNil(t, data.Previous)
	assert.Equal(t, "b", data.Previous.Slug)
}

func TestPost_NotFound(t *testing.T) {
	r := newTestRenderer(t)
	for _, slug := range []string{"missing", "idea", "scheduled"} {
		var buf bytes.Buffer
		err := r.Post(&buf, testSite(), slug)
		assert.ErrorIs(t, err, content.ErrNotFound, slug)
		assert.Zero(t, buf.Len())
	}
}

func TestDraft(t *testing.T) {
	r := newTestRenderer(t)

	var buf bytes.Buffer
	require.NoError(t, r.Draft(&buf, testSite(), "scheduled"))
	out := buf.String()
	assert.Contains(t, out, "This article is unreleased")
	assert.Contains(t, out, `<span class="badge">draft</span>`)
	assert.Contains(t, out, "Will release on: Mar 05, 30")
	assert.Contains(t, out, "<p>soon</p>")
	assert.NotContains(t, out, `rel="next"`)

	buf.Reset()
	require.NoError(t, r.Draft(&buf, testSite(), "idea"))
	assert.Contains(t, buf.String(), "No release date")
}

func TestDraft_Released(t *testing.T) {
	r := newTestRenderer(t)
	var buf bytes.Buffer
	err := r.Draft(&buf, testSite(), "a")
	assert.ErrorIs(t, err, ErrReleased)

	err = r.Draft(&buf, testSite(), "missing")
	assert.ErrorIs(t, err, content.ErrNotFound)
	assert.Zero(t, buf.Len())
}

func TestNotFound(t *testing.T) {
	r := newTestRenderer(t)
	var buf bytes.Buffer
	require.NoError(t, r.NotFound(&buf))
	assert.Contains(t, buf.String(), "Page not found")
	assert.Contains(t, buf.String(), "<title>Not found - James Walsh</title>")
}

func TestRenderRedirect(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderRedirect(&buf, "/posts/a"))
	assert.Contains(t, buf.String(), `url=/posts/a`)
	assert.Contains(t, buf.String(), `href="/posts/a"`)
}

func customLayouts(home string) fstest.MapFS {
	fsys := fstest.MapFS{
		"base.html":            {Data: []byte(`<main>{{ template "content" . }}</main>`)},
		"partials/unused.html": {Data: []byte(`{{ define "unused" }}{{ end }}`)},
		"home.html":            {Data: []byte(home)},
	}
	for _, name := range []string{"posts", "post", "draft", "notfound"} {
		fsys[name+".html"] = &fstest.MapFile{Data: []byte(`{{ define "content" }}` + name + `{{ end }}`)}
	}
	return fsys
}

func TestRenderer_CustomLayouts(t *testing.T) {
	r, err := NewRenderer(testConfig(), customLayouts(`{{ define "content" }}{{ len .Posts }} posts{{ end }}`))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Home(&buf, testSite()))
	assert.Equal(t, "<main>2 posts</main>", buf.String())

	buf.Reset()
	require.NoError(t, r.Post(&buf, testSite(), "a"))
	assert.Equal(t, "<main>post</main>", buf.String())
}

func TestRenderer_InvalidLayouts(t *testing.T) {
	_, err := NewRenderer(testConfig(), customLayouts(`{{ define "content" }}{{ .Broken `))
	assert.Error(t, err)

	fsys := customLayouts(`{{ define "content" }}{{ end }}`)
	delete(fsys, "draft.html")
	_, err = NewRenderer(testConfig(), fsys)
	assert.Error(t, err)
}

func TestRenderer_ReloadKeepsTemplatesOnError(t *testing.T) {
	fsys := customLayouts(`{{ define "content" }}v1{{ end }}`)
	r, err := NewRenderer(testConfig(), fsys)
	require.NoError(t, err)

	fsys["home.html"] = &fstest.MapFile{Data: []byte(`{{ define "content" }}{{ end`)}
	assert.Error(t, r.Reload())

	var buf bytes.Buffer
	require.NoError(t, r.Home(&buf, testSite()))
	assert.Equal(t, "<main>v1</main>", buf.String())
}

func TestLayouts(t *testing.T) {
	dir := t.TempDir()
	_, custom := Layouts(dir)
	assert.False(t, custom, "a directory without base.html falls back to the built-in set")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.html"), []byte("x"), 0o644))
	_, custom = Layouts(dir)
	assert.True(t, custom)

	_, custom = Layouts("")
	assert.False(t, custom)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("public", "index.html"), OutputPath("public", "/"))
	assert.Equal(t, filepath.Join("public", "posts", "a", "index.html"), OutputPath("public", "/posts/a"))
	assert.Equal(t, filepath.Join("public", "posts", "index.html"), OutputPath("public", "../posts"))
}
