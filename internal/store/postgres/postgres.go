package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"github.com/klass-lk/markpost/internal/model"
	"github.com/klass-lk/markpost/internal/store"
)

const (
	postsTable = "posts"

	createPostsTable = `CREATE TABLE IF NOT EXISTS posts (
	id SERIAL PRIMARY KEY,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	author TEXT NOT NULL,
	password_hash TEXT,
	date TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`
)

var postColumns = []string{"id", "title", "content", "author", "password_hash", "date"}

// PostStore is the relational backend over a postgres posts table. The
// database assigns ids (SERIAL) and creation timestamps (NOW()).
type PostStore struct {
	db *sql.DB
}

func New(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// Migrate creates the posts table if it does not exist yet.
func (s *PostStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, createPostsTable)
	return err
}

func (s *PostStore) Insert(ctx context.Context, post model.Post) (model.Post, error) {
	row := sq.Insert(postsTable).
		Columns("title", "content", "author", "password_hash").
		Values(post.Title, post.Content, post.Author, nullable(post.PasswordHash)).
		Suffix("RETURNING " + columnList()).
		PlaceholderFormat(sq.Dollar).
		RunWith(s.db).
		QueryRowContext(ctx)

	return scanPost(row)
}

func (s *PostStore) ListAll(ctx context.Context) ([]model.Post, error) {
	rows, err := sq.Select(postColumns...).
		From(postsTable).
		OrderBy("date DESC", "id DESC").
		PlaceholderFormat(sq.Dollar).
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]model.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (s *PostStore) FindByID(ctx context.Context, id string) (model.Post, error) {
	numericID, err := parseID(id)
	if err != nil {
		return model.Post{}, err
	}

	row := sq.Select(postColumns...).
		From(postsTable).
		Where(sq.Eq{"id": numericID}).
		PlaceholderFormat(sq.Dollar).
		RunWith(s.db).
		QueryRowContext(ctx)

	return scanPost(row)
}

func (s *PostStore) UpdatePartial(ctx context.Context, id string, fields store.PostFields) (model.Post, error) {
	numericID, err := parseID(id)
	if err != nil {
		return model.Post{}, err
	}

	update := sq.Update(postsTable).Where(sq.Eq{"id": numericID})
	if fields.Title != "" {
		update = update.Set("title", fields.Title)
	}
	if fields.Content != "" {
		update = update.Set("content", fields.Content)
	}
	if fields.Author != "" {
		update = update.Set("author", fields.Author)
	}

	row := update.
		Suffix("RETURNING " + columnList()).
		PlaceholderFormat(sq.Dollar).
		RunWith(s.db).
		QueryRowContext(ctx)

	return scanPost(row)
}

func (s *PostStore) DeleteByID(ctx context.Context, id string) (model.Post, error) {
	numericID, err := parseID(id)
	if err != nil {
		return model.Post{}, err
	}

	row := sq.Delete(postsTable).
		Where(sq.Eq{"id": numericID}).
		Suffix("RETURNING " + columnList()).
		PlaceholderFormat(sq.Dollar).
		RunWith(s.db).
		QueryRowContext(ctx)

	return scanPost(row)
}

func parseID(id string) (int64, error) {
	numericID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, store.ErrInvalidID
	}
	return numericID, nil
}

func columnList() string {
	return "id, title, content, author, password_hash, date"
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (model.Post, error) {
	var (
		post model.Post
		id   int64
		hash sql.NullString
	)
	if err := row.Scan(&id, &post.Title, &post.Content, &post.Author, &hash, &post.Date); err != nil {
		if err == sql.ErrNoRows {
			return model.Post{}, store.ErrNotFound
		}
		return model.Post{}, fmt.Errorf("scan post: %w", err)
	}
	post.ID = strconv.FormatInt(id, 10)
	post.PasswordHash = hash.String
	return post, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
