// ABOUTME: Tests for the SQLite store
// ABOUTME: Covers user creation/lookup and post CRUD

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	s, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func TestStore_CreateUser(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	user := &User{
		ID:           "user-123",
		Username:     "maria",
		PasswordHash: "$2a$10$notarealhashbutlongenough0000000000000000000000000000",
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}

	err := s.CreateUser(ctx, user)
	require.NoError(t, err)

	got, err := s.GetUserByUsername(ctx, "maria")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.PasswordHash, got.PasswordHash)

	count, err := s.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStore_CreateUser_DefaultsCreatedAt(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	user := &User{ID: "user-123", Username: "maria", PasswordHash: "h"}
	require.NoError(t, s.CreateUser(ctx, user))

	got, err := s.GetUserByUsername(ctx, "maria")
	require.NoError(t, err)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt must be filled when the caller leaves it zero")
	assert.WithinDuration(t, time.Now(), got.CreatedAt, time.Minute)
}

func TestStore_CreateUser_DuplicateUsername(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	user := &User{ID: "user-1", Username: "maria", PasswordHash: "h", CreatedAt: time.Now()}
	require.NoError(t, s.CreateUser(ctx, user))

	dup := &User{ID: "user-2", Username: "maria", PasswordHash: "h", CreatedAt: time.Now()}
	err := s.CreateUser(ctx, dup)
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestStore_GetUserByUsername_NotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetUserByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_CreatePost(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	post := &Post{
		Title:       "First project",
		Description: "Built a thing",
		Tags:        []string{"go", "sqlite"},
		Images:      []string{"https://img.example/1.png"},
		Category:    "project",
		CreatedBy:   "maria",
	}

	id, err := s.CreatePost(ctx, post)
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	got, err := s.GetPost(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "First project", got.Title)
	assert.Equal(t, []string{"go", "sqlite"}, got.Tags)
	assert.Equal(t, []string{"https://img.example/1.png"}, got.Images)
	assert.Equal(t, "maria", got.CreatedBy)
	assert.NotZero(t, got.CreatedAt)
}

func TestStore_ListPosts_NewestFirst(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	old := &Post{Title: "old", CreatedBy: "maria", CreatedAt: 1000}
	newer := &Post{Title: "newer", CreatedBy: "maria", CreatedAt: 2000}

	_, err := s.CreatePost(ctx, old)
	require.NoError(t, err)
	_, err = s.CreatePost(ctx, newer)
	require.NoError(t, err)

	posts, err := s.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "newer", posts[0].Title)
	assert.Equal(t, "old", posts[1].Title)
}

func TestStore_UpdatePost(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	post := &Post{Title: "before", CreatedBy: "maria", CreatedAt: 1000}
	id, err := s.CreatePost(ctx, post)
	require.NoError(t, err)

	err = s.UpdatePost(ctx, &Post{
		ID:        id,
		Title:     "after",
		Tags:      []string{"updated"},
		UpdatedBy: "maria",
	})
	require.NoError(t, err)

	got, err := s.GetPost(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)
	assert.Equal(t, []string{"updated"}, got.Tags)
	assert.Equal(t, "maria", got.UpdatedBy)
	// created_at survives updates that don't supply it
	assert.Equal(t, int64(1000), got.CreatedAt)
	assert.NotZero(t, got.UpdatedAt)
}

func TestStore_UpdatePost_NotFound(t *testing.T) {
	s := setupTestStore(t)

	err := s.UpdatePost(context.Background(), &Post{ID: 999, Title: "ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_DeletePost(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	id, err := s.CreatePost(ctx, &Post{Title: "doomed", CreatedBy: "maria"})
	require.NoError(t, err)

	require.NoError(t, s.DeletePost(ctx, id))

	_, err = s.GetPost(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.DeletePost(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_InMemory(t *testing.T) {
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	count, err := s.CountUsers(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}
