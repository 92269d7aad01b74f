package model

import (
	"time"
)

// Post is the single entity managed by this service. The ID is assigned by
// the active store backend: a sequential integer (stringified) on postgres,
// a hex ObjectID on mongo. PasswordHash is only set when the server runs in
// password-gated mode and never leaves the process.
type Post struct {
	ID           string    `json:"id" bson:"_id,omitempty" db:"id"`
	Title        string    `json:"title" bson:"title" db:"title"`
	Content      string    `json:"content" bson:"content" db:"content"`
	Author       string    `json:"author" bson:"author" db:"author"`
	PasswordHash string    `json:"-" bson:"password,omitempty" db:"password_hash"`
	Date         time.Time `json:"date" bson:"date" db:"date"`
}

type CreatePostRequest struct {
	Title    string `json:"title" form:"title" binding:"required"`
	Content  string `json:"content" form:"content" binding:"required"`
	Author   string `json:"author" form:"author" binding:"required"`
	Password string `json:"password,omitempty" form:"password"`
}

// UpdatePostRequest carries a partial update: any subset of title, content
// and author may be supplied. Password is only consulted in gated mode.
type UpdatePostRequest struct {
	Title    string `json:"title" form:"title"`
	Content  string `json:"content" form:"content"`
	Author   string `json:"author" form:"author"`
	Password string `json:"password,omitempty" form:"password"`
}

type DeletePostRequest struct {
	Password string `json:"password,omitempty" form:"password"`
}
