package model

import (
	"html/template"
	"time"
)

// Status is the release state of a post.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusReleased Status = "released"
	StatusArchived Status = "archived"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusReleased, StatusArchived:
		return true
	}
	return false
}

// Post represents a single article loaded from the content directory.
type Post struct {
	Slug        string
	Title       string
	Brief       string
	PublishedAt *time.Time
	Status      Status
	Tags        []string
	RawBody     string
	CoverImage  string
	ContentHTML template.HTML
	SourcePath  string
}

// URL is the permalink of the released article page.
func (p *Post) URL() string {
	return "/posts/" + p.Slug
}

// DraftURL is the permalink of the preview page.
func (p *Post) DraftURL() string {
	return "/posts/drafts/" + p.Slug
}

// Site is one immutable snapshot of the content collection.
type Site struct {
	// Posts holds every post, newest first, undated last.
	Posts []*Post
	// Released is the publicly listed subset of Posts, same order.
	Released []*Post
	LoadedAt time.Time
}
