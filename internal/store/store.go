package store

import (
	"context"
	"errors"

	"github.com/klass-lk/markpost/internal/model"
)

var (
	// ErrNotFound is returned when no post exists for a well-formed id.
	ErrNotFound = errors.New("post not found")
	// ErrInvalidID is returned when an id cannot be parsed into the
	// backend's native identifier form. It is distinct from ErrNotFound so
	// callers can answer 400 instead of 404.
	ErrInvalidID = errors.New("invalid post id")
)

// PostFields is the subset of mutable columns carried by a partial update.
// An empty string means the field was not supplied and keeps its prior
// value.
type PostFields struct {
	Title   string
	Content string
	Author  string
}

func (f PostFields) IsEmpty() bool {
	return f.Title == "" && f.Content == "" && f.Author == ""
}

// PostStore is the contract both backends implement. Identifiers cross this
// boundary as strings; each implementation parses its own form and reports
// ErrInvalidID itself, so callers never handle backend identifier types.
type PostStore interface {
	// Insert stores a new post, assigning its id and creation date.
	Insert(ctx context.Context, post model.Post) (model.Post, error)
	// ListAll returns every post ordered by date descending. An empty
	// slice is a valid result.
	ListAll(ctx context.Context) ([]model.Post, error)
	FindByID(ctx context.Context, id string) (model.Post, error)
	// UpdatePartial applies the supplied fields to the post. Callers must
	// not pass an empty field set.
	UpdatePartial(ctx context.Context, id string, fields PostFields) (model.Post, error)
	// DeleteByID removes the post and returns its prior state.
	DeleteByID(ctx context.Context, id string) (model.Post, error)
}
