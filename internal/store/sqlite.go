// ABOUTME: SQLite implementation of the Store interface using modernc.org/sqlite
// ABOUTME: Provides user/post persistence with automatic schema creation

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is automatically created if it doesn't exist.
// Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// createSchema creates the database tables if they don't exist
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS posts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			description TEXT,
			tags TEXT,
			images TEXT,
			category TEXT,
			created_by TEXT,
			updated_by TEXT,
			created_at INTEGER,
			updated_at INTEGER
		);

		CREATE INDEX IF NOT EXISTS idx_posts_created_at
			ON posts(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateUser inserts a new user. A zero CreatedAt is filled with the
// current time.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO users (id, username, password_hash, created_at)
		VALUES (?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query, user.ID, user.Username, user.PasswordHash, user.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrUsernameExists
		}
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

// GetUserByUsername looks up a user by username.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM users WHERE username = ?
	`
	var u User
	err := s.db.QueryRowContext(ctx, query, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return &u, nil
}

// CountUsers returns the number of users.
func (s *SQLiteStore) CountUsers(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return count, nil
}

// CreatePost inserts a new post and returns its generated ID.
func (s *SQLiteStore) CreatePost(ctx context.Context, post *Post) (int64, error) {
	tags, images, err := marshalPostArrays(post)
	if err != nil {
		return 0, err
	}

	if post.CreatedAt == 0 {
		post.CreatedAt = time.Now().Unix()
	}

	query := `
		INSERT INTO posts (title, description, tags, images, category, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	res, err := s.db.ExecContext(ctx, query,
		post.Title, post.Description, tags, images, post.Category, post.CreatedBy, post.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("creating post: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted post id: %w", err)
	}
	post.ID = id
	return id, nil
}

// GetPost retrieves a single post by ID.
func (s *SQLiteStore) GetPost(ctx context.Context, id int64) (*Post, error) {
	query := `
		SELECT id, title, description, tags, images, category,
		       created_by, updated_by, created_at, updated_at
		FROM posts WHERE id = ?
	`
	post, err := scanPost(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting post: %w", err)
	}
	return post, nil
}

// ListPosts returns all posts, newest first.
func (s *SQLiteStore) ListPosts(ctx context.Context) ([]*Post, error) {
	query := `
		SELECT id, title, description, tags, images, category,
		       created_by, updated_by, created_at, updated_at
		FROM posts ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	defer rows.Close()

	var posts []*Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning post: %w", err)
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// UpdatePost updates a post's content fields. CreatedAt is only overwritten
// when the caller supplies a non-zero value.
func (s *SQLiteStore) UpdatePost(ctx context.Context, post *Post) error {
	tags, images, err := marshalPostArrays(post)
	if err != nil {
		return err
	}

	if post.UpdatedAt == 0 {
		post.UpdatedAt = time.Now().Unix()
	}

	var createdAt any
	if post.CreatedAt != 0 {
		createdAt = post.CreatedAt
	}

	query := `
		UPDATE posts
		SET title = ?, description = ?, tags = ?, images = ?, category = ?,
		    created_at = COALESCE(?, created_at), updated_by = ?, updated_at = ?
		WHERE id = ?
	`
	res, err := s.db.ExecContext(ctx, query,
		post.Title, post.Description, tags, images, post.Category,
		createdAt, post.UpdatedBy, post.UpdatedAt, post.ID)
	if err != nil {
		return fmt.Errorf("updating post: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePost removes a post by ID.
func (s *SQLiteStore) DeletePost(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanPost.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*Post, error) {
	var p Post
	var description, tags, images, category, createdBy, updatedBy sql.NullString
	var createdAt, updatedAt sql.NullInt64

	err := row.Scan(&p.ID, &p.Title, &description, &tags, &images, &category,
		&createdBy, &updatedBy, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	p.Description = description.String
	p.Category = category.String
	p.CreatedBy = createdBy.String
	p.UpdatedBy = updatedBy.String
	p.CreatedAt = createdAt.Int64
	p.UpdatedAt = updatedAt.Int64

	if tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &p.Tags); err != nil {
			return nil, fmt.Errorf("parsing tags: %w", err)
		}
	}
	if images.String != "" {
		if err := json.Unmarshal([]byte(images.String), &p.Images); err != nil {
			return nil, fmt.Errorf("parsing images: %w", err)
		}
	}

	return &p, nil
}

func marshalPostArrays(post *Post) (tags, images string, err error) {
	t := post.Tags
	if t == nil {
		t = []string{}
	}
	i := post.Images
	if i == nil {
		i = []string{}
	}

	tb, err := json.Marshal(t)
	if err != nil {
		return "", "", fmt.Errorf("encoding tags: %w", err)
	}
	ib, err := json.Marshal(i)
	if err != nil {
		return "", "", fmt.Errorf("encoding images: %w", err)
	}
	return string(tb), string(ib), nil
}
