package content

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/rs/zerolog"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jimmywalsh/portfolio/internal/meta"
	"github.com/jimmywalsh/portfolio/internal/model"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// reservedSlugs collide with fixed paths under /posts.
var reservedSlugs = map[string]bool{
	"drafts": true,
}

func checkSlug(slug string) error {
	if !slugRegex.MatchString(slug) {
		return fmt.Errorf("%w: slug %q must be lower-case words joined by hyphens", ErrInvalidPost, slug)
	}
	if reservedSlugs[slug] {
		return fmt.Errorf("%w: slug %q is reserved", ErrInvalidPost, slug)
	}
	return nil
}

// frontMatter is the header block of a post file.
type frontMatter struct {
	Slug        string   `yaml:"slug,omitempty" toml:"slug" json:"slug,omitempty"`
	Title       string   `yaml:"title" toml:"title" json:"title"`
	Brief       string   `yaml:"brief" toml:"brief" json:"brief"`
	PublishedAt string   `yaml:"publishedAt,omitempty" toml:"publishedAt" json:"publishedAt,omitempty"`
	Status      string   `yaml:"status" toml:"status" json:"status"`
	Tags        []string `yaml:"tags" toml:"tags" json:"tags"`
	CoverImage  string   `yaml:"coverImage,omitempty" toml:"coverImage" json:"coverImage,omitempty"`
}

// Loader reads the post collection from a directory of Markdown files.
type Loader struct {
	dir string
	md  goldmark.Markdown
	log zerolog.Logger
	now func() time.Time
}

// LoaderOption customises a Loader.
type LoaderOption func(*Loader)

// WithClock sets the time used to decide whether a release date is in the future.
func WithClock(now func() time.Time) LoaderOption {
	return func(l *Loader) { l.now = now }
}

// NewLoader returns a loader for the posts under dir.
func NewLoader(dir string, log zerolog.Logger, opts ...LoaderOption) *Loader {
	l := &Loader{
		dir: dir,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				gmhtml.WithHardWraps(),
			),
		),
		log: log,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Dir is the directory the loader reads.
func (l *Loader) Dir() string {
	return l.dir
}

// Load parses every post file and returns a new snapshot. Any invalid file
// fails the whole load.
func (l *Loader) Load() (*model.Site, error) {
	if _, err := os.Stat(l.dir); err != nil {
		return nil, fmt.Errorf("posts directory %q: %w", l.dir, err)
	}

	now := l.now()
	var posts []*model.Post
	bySlug := make(map[string]string)

	err := filepath.WalkDir(l.dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("error accessing path %q: %w", path, walkErr)
		}
		if d.IsDir() || !isPostFile(d.Name()) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read file %q: %w", path, err)
		}
		post, err := l.parse(path, data, now)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if other, ok := bySlug[post.Slug]; ok {
			return fmt.Errorf("%w %q: %s and %s", ErrDuplicateSlug, post.Slug, other, path)
		}
		bySlug[post.Slug] = path

		l.log.Debug().Str("slug", post.Slug).Str("status", string(post.Status)).Str("path", path).Msg("Loaded post")
		posts = append(posts, post)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sorted := SortByPublishDateDescending(posts)
	site := &model.Site{
		Posts:    sorted,
		Released: FilterReleased(sorted),
		LoadedAt: now,
	}
	l.log.Info().Int("posts", len(site.Posts)).Int("released", len(site.Released)).Msg("Content loaded")
	return site, nil
}

func (l *Loader) parse(path string, data []byte, now time.Time) (*model.Post, error) {
	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &fm)
	if err != nil {
		return nil, fmt.Errorf("%w: front matter: %v", ErrInvalidPost, err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	post := &model.Post{
		Slug:       fm.Slug,
		Title:      fm.Title,
		Brief:      fm.Brief,
		Status:     model.Status(strings.ToLower(strings.TrimSpace(fm.Status))),
		Tags:       fm.Tags,
		RawBody:    string(body),
		CoverImage: fm.CoverImage,
		SourcePath: path,
	}
	if post.Slug == "" {
		post.Slug = strings.ToLower(base)
	}
	if err := checkSlug(post.Slug); err != nil {
		return nil, err
	}
	if post.Title == "" {
		post.Title = titleFromName(base)
	}
	if post.Status == "" {
		post.Status = model.StatusDraft
	}
	if !post.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidPost, fm.Status)
	}

	if fm.PublishedAt != "" {
		t, err := meta.ParseTimestamp(fm.PublishedAt)
		if err != nil {
			return nil, fmt.Errorf("publishedAt: %w", err)
		}
		post.PublishedAt = &t
	}

	if post.Status == model.StatusReleased {
		if post.PublishedAt == nil {
			return nil, fmt.Errorf("%w: released post %q has no publishedAt", ErrInvalidPost, post.Slug)
		}
		if post.PublishedAt.After(now) {
			l.log.Warn().Str("slug", post.Slug).Time("publishedAt", *post.PublishedAt).
				Msg("Release date is in the future, treating post as a draft until then")
			post.Status = model.StatusDraft
		}
	}

	var html bytes.Buffer
	if err := l.md.Convert(body, &html); err != nil {
		return nil, fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	post.ContentHTML = template.HTML(html.String())

	return post, nil
}

func isPostFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".mdx":
		return true
	}
	return false
}

func titleFromName(base string) string {
	s := strings.ReplaceAll(strings.ReplaceAll(base, "-", " "), "_", " ")
	return cases.Title(language.English).String(s)
}
