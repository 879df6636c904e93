package content

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimmywalsh/portfolio/internal/model"
)

type fakeSource struct {
	sites []*model.Site
	err   error
	calls int
}

func (f *fakeSource) Load() (*model.Site, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	site := f.sites[0]
	if len(f.sites) > 1 {
		f.sites = f.sites[1:]
	}
	return site, nil
}

func TestStore_Reload(t *testing.T) {
	first := &model.Site{Posts: []*model.Post{released("a", "2023-01-01")}}
	second := &model.Site{Posts: []*model.Post{released("b", "2024-01-01")}}
	src := &fakeSource{sites: []*model.Site{first, second}}

	store, err := NewStore(src)
	require.NoError(t, err)
	assert.Same(t, first, store.Site())

	require.NoError(t, store.Reload())
	assert.Same(t, second, store.Site())
	assert.Equal(t, 2, src.calls)
}

func TestStore_FailedReloadKeepsSnapshot(t *testing.T) {
	first := &model.Site{}
	src := &fakeSource{sites: []*model.Site{first}}

	store, err := NewStore(src)
	require.NoError(t, err)

	src.err = errors.New("boom")
	assert.Error(t, store.Reload())
	assert.Same(t, first, store.Site())
}

func TestNewStore_InitialLoadFails(t *testing.T) {
	_, err := NewStore(&fakeSource{err: ErrDuplicateSlug})
	assert.ErrorIs(t, err, ErrDuplicateSlug)
}
