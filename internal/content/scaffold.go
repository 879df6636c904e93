package content

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"gopkg.in/yaml.v2"

	"github.com/jimmywalsh/portfolio/internal/model"
)

// Slugify turns a title into a slug accepted by the loader.
func Slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// NewDraft writes a draft post skeleton for title into dir and returns its path.
// An existing file is never overwritten.
func NewDraft(dir, title string, tags []string) (string, error) {
	slug := Slugify(title)
	if slug == "" {
		return "", fmt.Errorf("%w: title %q has no usable characters for a slug", ErrInvalidPost, title)
	}
	if err := checkSlug(slug); err != nil {
		return "", err
	}

	fm := frontMatter{
		Title:  title,
		Brief:  "",
		Status: string(model.StatusDraft),
		Tags:   tags,
	}
	if fm.Tags == nil {
		fm.Tags = []string{}
	}
	header, err := yaml.Marshal(&fm)
	if err != nil {
		return "", fmt.Errorf("error marshalling front matter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(header)
	buf.WriteString("---\n\n")
	buf.WriteString("Write something worth reading.\n")

	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create directory %q: %w", dir, err)
	}
	path := filepath.Join(dir, slug+".md")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%w: %s already exists", ErrDuplicateSlug, path)
		}
		return "", fmt.Errorf("failed to create %q: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to write %q: %w", path, err)
	}
	return path, nil
}
