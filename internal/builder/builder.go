// Package builder writes the whole site as static files.
package builder

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/jimmywalsh/portfolio/internal/config"
	"github.com/jimmywalsh/portfolio/internal/model"
	"github.com/jimmywalsh/portfolio/internal/site"
)

// Result counts what a build wrote.
type Result struct {
	Pages     int
	Posts     int
	Drafts    int
	Redirects int
	Assets    int
}

// Builder renders a content snapshot into cfg.OutputDir.
type Builder struct {
	cfg      *config.Config
	renderer *site.Renderer
	log      zerolog.Logger
}

func New(cfg *config.Config, renderer *site.Renderer, log zerolog.Logger) *Builder {
	return &Builder{cfg: cfg, renderer: renderer, log: log}
}

// Build cleans the output directory, copies static assets and writes every page.
func (b *Builder) Build(s *model.Site) (*Result, error) {
	outputDir := b.cfg.OutputDir
	res := &Result{}

	b.log.Info().Str("dir", outputDir).Msg("Cleaning output directory")
	if err := os.RemoveAll(outputDir); err != nil {
		return nil, fmt.Errorf("failed to remove output directory '%s': %w", outputDir, err)
	}
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create output directory '%s': %w", outputDir, err)
	}

	if b.cfg.StaticDir != "" {
		if _, err := os.Stat(b.cfg.StaticDir); err == nil {
			n, err := copyDirContents(b.cfg.StaticDir, outputDir)
			if err != nil {
				return nil, fmt.Errorf("failed to copy static assets: %w", err)
			}
			res.Assets = n
			b.log.Debug().Str("dir", b.cfg.StaticDir).Int("files", n).Msg("Static assets copied")
		} else {
			b.log.Debug().Str("dir", b.cfg.StaticDir).Msg("Static assets directory not found, skipping copy")
		}
	}

	if err := b.writePage("/", func(w io.Writer) error { return b.renderer.Home(w, s) }); err != nil {
		return nil, err
	}
	if err := b.writePage("/posts", func(w io.Writer) error { return b.renderer.PostList(w, s) }); err != nil {
		return nil, err
	}
	res.Pages += 2

	for _, p := range s.Released {
		slug := p.Slug
		if err := b.writePage(p.URL(), func(w io.Writer) error { return b.renderer.Post(w, s, slug) }); err != nil {
			return nil, err
		}
		res.Posts++
	}

	// Released posts keep a stub at their old preview URL.
	for _, p := range s.Posts {
		slug := p.Slug
		if p.Status == model.StatusReleased {
			target := p.URL()
			if err := b.writePage(p.DraftURL(), func(w io.Writer) error { return site.RenderRedirect(w, target) }); err != nil {
				return nil, err
			}
			res.Redirects++
			continue
		}
		if !b.cfg.Content.BuildDrafts {
			continue
		}
		if err := b.writePage(p.DraftURL(), func(w io.Writer) error { return b.renderer.Draft(w, s, slug) }); err != nil {
			return nil, err
		}
		res.Drafts++
	}

	if err := b.writeFile(filepath.Join(outputDir, "404.html"), b.renderer.NotFound); err != nil {
		return nil, err
	}
	res.Pages++

	b.log.Info().
		Int("pages", res.Pages).
		Int("posts", res.Posts).
		Int("drafts", res.Drafts).
		Int("redirects", res.Redirects).
		Int("assets", res.Assets).
		Msg("Build completed")
	return res, nil
}

func (b *Builder) writePage(url string, render func(w io.Writer) error) error {
	return b.writeFile(site.OutputPath(b.cfg.OutputDir, url), render)
}

// writeFile renders into memory first so a failed page leaves no partial file.
func (b *Builder) writeFile(outputPath string, render func(w io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return fmt.Errorf("failed to render '%s': %w", outputPath, err)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory for '%s': %w", outputPath, err)
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write '%s': %w", outputPath, err)
	}
	b.log.Debug().Str("path", outputPath).Msg("Generated")
	return nil
}

// copyDirContents recursively copies the files under src into dst and
// returns how many files were copied.
func copyDirContents(src, dst string) (int, error) {
	count := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %s: %w", path, err)
		}
		dstPath := filepath.Join(dst, relPath)

		if d.IsDir() {
			if err := os.MkdirAll(dstPath, os.ModePerm); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dstPath, err)
			}
			return nil
		}
		if err := copyFile(path, dstPath); err != nil {
			return fmt.Errorf("failed to copy file from %s to %s: %w", path, dstPath, err)
		}
		count++
		return nil
	})
	return count, err
}

// copyFile copies a single file and keeps its permissions.
func copyFile(srcFile, dstFile string) error {
	srcF, err := os.Open(srcFile)
	if err != nil {
		return err
	}
	defer srcF.Close()

	info, err := srcF.Stat()
	if err != nil {
		return err
	}

	dstF, err := os.OpenFile(dstFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(dstF, srcF); err != nil {
		dstF.Close()
		return err
	}
	return dstF.Close()
}
