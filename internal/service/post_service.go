package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/klass-lk/markpost/internal/model"
	"github.com/klass-lk/markpost/internal/store"
)

// PostService validates input, applies the password gate where enabled and
// translates store results into the service error taxonomy. It is backend
// agnostic: both stores satisfy the same contract.
type PostService struct {
	posts  store.PostStore
	hasher PasswordHasher
	gated  bool
}

func NewPostService(posts store.PostStore, hasher PasswordHasher, gated bool) *PostService {
	return &PostService{
		posts:  posts,
		hasher: hasher,
		gated:  gated,
	}
}

func (s *PostService) CreatePost(ctx context.Context, req model.CreatePostRequest) (model.Post, error) {
	if req.Title == "" || req.Content == "" || req.Author == "" {
		return model.Post{}, ErrMissingFields
	}
	if s.gated && req.Password == "" {
		return model.Post{}, ErrMissingPassword
	}

	post := model.Post{
		Title:   req.Title,
		Content: req.Content,
		Author:  req.Author,
	}
	if req.Password != "" {
		hash, err := s.hasher.GetPasswordHash(req.Password)
		if err != nil {
			return model.Post{}, fmt.Errorf("hash password: %w", err)
		}
		post.PasswordHash = hash
	}

	return s.posts.Insert(ctx, post)
}

func (s *PostService) ListPosts(ctx context.Context) ([]model.Post, error) {
	return s.posts.ListAll(ctx)
}

func (s *PostService) GetPost(ctx context.Context, id string) (model.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return model.Post{}, translateStoreError(err)
	}
	return post, nil
}

func (s *PostService) UpdatePost(ctx context.Context, id string, req model.UpdatePostRequest) (model.Post, error) {
	fields := store.PostFields{
		Title:   req.Title,
		Content: req.Content,
		Author:  req.Author,
	}
	if fields.IsEmpty() {
		return model.Post{}, ErrNoFieldsProvided
	}

	if err := s.checkPassword(ctx, id, req.Password); err != nil {
		return model.Post{}, err
	}

	post, err := s.posts.UpdatePartial(ctx, id, fields)
	if err != nil {
		return model.Post{}, translateStoreError(err)
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, id string, password string) (model.Post, error) {
	if err := s.checkPassword(ctx, id, password); err != nil {
		return model.Post{}, err
	}

	post, err := s.posts.DeleteByID(ctx, id)
	if err != nil {
		return model.Post{}, translateStoreError(err)
	}
	return post, nil
}

// checkPassword fetches the record and compares the presented plaintext
// against the stored hash. The check and the following mutation are two
// store calls, not a compare-and-swap; a concurrent writer can slip between
// them, matching the store's per-statement atomicity guarantees.
func (s *PostService) checkPassword(ctx context.Context, id string, password string) error {
	if !s.gated {
		return nil
	}

	existing, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return translateStoreError(err)
	}
	if !s.hasher.IsMatching(existing.PasswordHash, password) {
		return ErrForbidden
	}
	return nil
}

func translateStoreError(err error) error {
	switch {
	case errors.Is(err, store.ErrInvalidID):
		return ErrInvalidID
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	default:
		return err
	}
}
