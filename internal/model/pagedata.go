package model

import "html/template"

// NavItem is one entry of the header, mobile menu and footer navigation.
type NavItem struct {
	Label string `mapstructure:"label"`
	Href  string `mapstructure:"href"`
}

// SiteInfo is the shell data every page is rendered with.
type SiteInfo struct {
	Title       string
	Description string
	Author      string
	BaseURL     string
	Avatar      string
	Navigation  []NavItem
	Year        string
}

// PageMeta carries the <head> metadata of a page.
type PageMeta struct {
	Title       string
	Description string
	Image       string
	OGType      string // "website" or "article"
	URL         string
}

// PostSummary is the display form of a post in listings and navigation.
type PostSummary struct {
	Slug         string
	URL          string
	Title        string
	Brief        string
	CoverImage   string
	Tags         []string
	Published    string
	PublishedISO string
	ReadMinutes  int
}

// DraftInfo describes the unreleased banner of a preview page.
type DraftInfo struct {
	Status      Status
	ReleaseDate string // empty when the post has no date
}

type PageData struct {
	Site     SiteInfo
	Meta     PageMeta
	Intro    string
	Posts    []PostSummary
	Post     *PostSummary
	Content  template.HTML
	Previous *PostSummary // older
	Next     *PostSummary // newer
	Draft    *DraftInfo
}
