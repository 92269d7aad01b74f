// Package mock provides an in-memory PostStore for tests. It mimics the
// relational backend's identifier form: sequential integer ids, so a
// non-numeric id is reported as invalid rather than absent.
package mock

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/klass-lk/markpost/internal/model"
	"github.com/klass-lk/markpost/internal/store"
)

type PostStore struct {
	mu     sync.Mutex
	posts  map[string]model.Post
	nextID int
	clock  time.Time

	// FailWith, when set, is returned by every operation. Used to drive
	// store-failure paths in handler tests.
	FailWith error
}

func NewPostStore() *PostStore {
	return &PostStore{
		posts:  make(map[string]model.Post),
		nextID: 1,
		clock:  time.Now().UTC(),
	}
}

func (s *PostStore) Insert(_ context.Context, post model.Post) (model.Post, error) {
	if s.FailWith != nil {
		return model.Post{}, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	post.ID = strconv.Itoa(s.nextID)
	s.nextID++
	// Each insert gets a strictly later date so listings order
	// deterministically.
	s.clock = s.clock.Add(time.Second)
	post.Date = s.clock
	s.posts[post.ID] = post
	return post, nil
}

func (s *PostStore) ListAll(_ context.Context) ([]model.Post, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := make([]model.Post, 0, len(s.posts))
	for _, post := range s.posts {
		posts = append(posts, post)
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})
	return posts, nil
}

func (s *PostStore) FindByID(_ context.Context, id string) (model.Post, error) {
	if s.FailWith != nil {
		return model.Post{}, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.find(id)
}

func (s *PostStore) UpdatePartial(_ context.Context, id string, fields store.PostFields) (model.Post, error) {
	if s.FailWith != nil {
		return model.Post{}, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	post, err := s.find(id)
	if err != nil {
		return model.Post{}, err
	}
	if fields.Title != "" {
		post.Title = fields.Title
	}
	if fields.Content != "" {
		post.Content = fields.Content
	}
	if fields.Author != "" {
		post.Author = fields.Author
	}
	s.posts[id] = post
	return post, nil
}

func (s *PostStore) DeleteByID(_ context.Context, id string) (model.Post, error) {
	if s.FailWith != nil {
		return model.Post{}, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	post, err := s.find(id)
	if err != nil {
		return model.Post{}, err
	}
	delete(s.posts, id)
	return post, nil
}

func (s *PostStore) find(id string) (model.Post, error) {
	if _, err := strconv.Atoi(id); err != nil {
		return model.Post{}, store.ErrInvalidID
	}
	post, ok := s.posts[id]
	if !ok {
		return model.Post{}, store.ErrNotFound
	}
	return post, nil
}
