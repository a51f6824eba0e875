// ABOUTME: Store interface and data types for folio-gateway persistence
// ABOUTME: Defines User and Post structs and the storage interfaces

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrUsernameExists is returned when creating a user with a taken username
var ErrUsernameExists = errors.New("username already exists")

// User is a site administrator who can log in and manage posts.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
}

// Post is a portfolio or blog entry. Tags and Images are stored as JSON
// arrays in the database. CreatedAt and UpdatedAt are epoch seconds, matching
// the wire format the frontend consumes.
type Post struct {
	ID          int64
	Title       string
	Description string
	Tags        []string
	Images      []string
	Category    string // "project" or "work"
	CreatedBy   string
	UpdatedBy   string
	CreatedAt   int64
	UpdatedAt   int64
}

// CredentialStore is the credential-lookup collaborator used by the session
// issuer. It never learns whether a presented password was correct.
type CredentialStore interface {
	GetUserByUsername(ctx context.Context, username string) (*User, error)
}

// PostStore defines persistence operations for posts.
type PostStore interface {
	CreatePost(ctx context.Context, post *Post) (int64, error)
	GetPost(ctx context.Context, id int64) (*Post, error)
	ListPosts(ctx context.Context) ([]*Post, error)
	UpdatePost(ctx context.Context, post *Post) error
	DeletePost(ctx context.Context, id int64) error
}

// Store combines all persistence operations.
type Store interface {
	CredentialStore
	PostStore

	CreateUser(ctx context.Context, user *User) error
	CountUsers(ctx context.Context) (int, error)

	Close() error
}
