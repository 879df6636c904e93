package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimmywalsh/portfolio/internal/model"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Hello, World!":             "hello-world",
		"  Go 1.22 release notes  ": "go-1-22-release-notes",
		"Already-a-slug":            "already-a-slug",
		"Crème brûlée":              "cr-me-br-l-e",
		"!!!":                       "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestNewDraft_LoadsAsDraft(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "posts")

	path, err := NewDraft(dir, "Testing in Go", []string{"go"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "testing-in-go.md"), path)

	site, err := newTestLoader(dir).Load()
	require.NoError(t, err)
	require.Len(t, site.Posts, 1)

	p := site.Posts[0]
	assert.Equal(t, "testing-in-go", p.Slug)
	assert.Equal(t, "Testing in Go", p.Title)
	assert.Equal(t, model.StatusDraft, p.Status)
	assert.Equal(t, []string{"go"}, p.Tags)
	assert.Nil(t, p.PublishedAt)
}

func TestNewDraft_DoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "taken.md")
	require.NoError(t, os.WriteFile(existing, []byte("keep me"), 0o644))

	_, err := NewDraft(dir, "Taken", nil)
	assert.ErrorIs(t, err, ErrDuplicateSlug)

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(data))
}

func TestNewDraft_EmptySlug(t *testing.T) {
	_, err := NewDraft(t.TempDir(), "???", nil)
	assert.ErrorIs(t, err, ErrInvalidPost)
}

func TestNewDraft_ReservedSlug(t *testing.T) {
	dir := t.TempDir()
	_, err := NewDraft(dir, "Drafts", nil)
	assert.ErrorIs(t, err, ErrInvalidPost)
	assert.NoFileExists(t, filepath.Join(dir, "drafts.md"))
}
