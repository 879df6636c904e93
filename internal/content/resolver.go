// Package content loads the post collection and resolves posts out of it.
//
// The resolver functions take the collection as an argument and never
// modify it. Directions are chronological: Next is the newer neighbour and
// Previous the older one.
package content

import (
	"fmt"
	"sort"

	"github.com/jimmywalsh/portfolio/internal/model"
)

// Direction selects a neighbour in FindAdjacent.
type Direction int

const (
	// Previous is the chronologically older neighbour.
	Previous Direction = iota
	// Next is the chronologically newer neighbour.
	Next
)

func (d Direction) String() string {
	switch d {
	case Previous:
		return "previous"
	case Next:
		return "next"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// FindBySlug returns the post whose slug equals slug.
func FindBySlug(posts []*model.Post, slug string) (*model.Post, error) {
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, fmt.Errorf("slug %q: %w", slug, ErrNotFound)
}

// FindAdjacent returns the post next to slug in publish order. A nil post
// with a nil error means slug is at that end of the collection.
func FindAdjacent(posts []*model.Post, slug string, dir Direction) (*model.Post, error) {
	sorted := SortByPublishDateDescending(posts)

	idx := -1
	for i, p := range sorted {
		if p.Slug == slug {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("slug %q: %w", slug, ErrNotFound)
	}

	// sorted is newest first, so newer posts sit at lower indexes.
	switch dir {
	case Next:
		idx--
	case Previous:
		idx++
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidDirection, dir)
	}
	if idx < 0 || idx >= len(sorted) {
		return nil, nil
	}
	return sorted[idx], nil
}

// SortByPublishDateDescending returns a copy of posts ordered newest first.
// Posts without a date sort last and ties keep their input order.
func SortByPublishDateDescending(posts []*model.Post) []*model.Post {
	sorted := make([]*model.Post, len(posts))
	copy(sorted, posts)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].PublishedAt, sorted[j].PublishedAt
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.After(*b)
	})
	return sorted
}

// IsReleased reports whether p is publicly visible.
func IsReleased(p *model.Post) bool {
	return p.Status == model.StatusReleased && p.PublishedAt != nil
}

// FilterReleased returns the released posts of posts in their input order.
func FilterReleased(posts []*model.Post) []*model.Post {
	released := make([]*model.Post, 0, len(posts))
	for _, p := range posts {
		if IsReleased(p) {
			released = append(released, p)
		}
	}
	return released
}
