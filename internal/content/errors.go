package content

import "errors"

var (
	// ErrNotFound indicates no post has the requested slug.
	ErrNotFound = errors.New("post not found")

	// ErrDuplicateSlug indicates two content files resolve to the same slug.
	ErrDuplicateSlug = errors.New("duplicate slug")

	// ErrInvalidPost indicates front matter that breaks a post invariant.
	ErrInvalidPost = errors.New("invalid post")

	// ErrInvalidDirection indicates a Direction other than Previous or Next.
	ErrInvalidDirection = errors.New("invalid direction")
)
