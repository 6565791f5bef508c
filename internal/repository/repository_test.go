package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"blogapi/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Post{}, &model.Comment{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPost(t *testing.T, db *gorm.DB, authorID uint, title string, published bool, createdAt time.Time) *model.Post {
	t.Helper()
	post := &model.Post{
		Title:       title,
		Content:     "content of " + title,
		AuthorID:    authorID,
		IsPublished: published,
		CreatedAt:   createdAt,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewUserRepository(db)

	alice := seedUser(t, db, "alice")

	t.Run("find by id", func(t *testing.T) {
		got, err := repo.FindByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)
	})

	t.Run("find by username is exact", func(t *testing.T) {
		_, err := repo.FindByUsername(ctx, "Alice")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		got, err := repo.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.ID)
	})

	t.Run("find by email normalizes", func(t *testing.T) {
		got, err := repo.FindByEmail(ctx, "  ALICE@Example.COM ")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.ID)
	})

	t.Run("save persists changes", func(t *testing.T) {
		alice.IsActive = false
		require.NoError(t, repo.Save(ctx, alice))

		got, err := repo.FindByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.False(t, got.IsActive)
	})

	t.Run("list paginates in id order", func(t *testing.T) {
		seedUser(t, db, "bob")
		seedUser(t, db, "carol")

		users, total, err := repo.List(ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, users, 2)
		assert.Equal(t, "alice", users[0].Username)
		assert.Equal(t, "bob", users[1].Username)

		users, _, err = repo.List(ctx, 2, 2)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "carol", users[0].Username)
	})
}

func TestPostRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewPostRepository(db)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	seedPost(t, db, alice.ID, "oldest", true, base)
	seedPost(t, db, bob.ID, "draft", false, base.Add(time.Minute))
	newest := seedPost(t, db, alice.ID, "newest", true, base.Add(2*time.Minute))

	t.Run("find by id preloads author", func(t *testing.T) {
		got, err := repo.FindByID(ctx, newest.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Author)
		assert.Equal(t, "alice", got.Author.Username)
	})

	t.Run("list published newest first", func(t *testing.T) {
		posts, total, err := repo.ListPublished(ctx, 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, posts, 2)
		assert.Equal(t, "newest", posts[0].Title)
		assert.Equal(t, "oldest", posts[1].Title)
	})

	t.Run("list published paginates", func(t *testing.T) {
		posts, total, err := repo.ListPublished(ctx, 2, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, posts, 1)
		assert.Equal(t, "oldest", posts[0].Title)
	})

	t.Run("list by author includes drafts", func(t *testing.T) {
		posts, total, err := repo.ListByAuthor(ctx, bob.ID, 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, posts, 1)
		assert.Equal(t, "draft", posts[0].Title)
	})

	t.Run("list all without filter", func(t *testing.T) {
		posts, total, err := repo.ListAll(ctx, 0, 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, posts, 3)
	})

	t.Run("list all filtered by author", func(t *testing.T) {
		posts, total, err := repo.ListAll(ctx, alice.ID, 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, posts, 2)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, newest))
		_, err := repo.FindByID(ctx, newest.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestCommentRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewCommentRepository(db)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, alice.ID, "post", true, time.Now())
	other := seedPost(t, db, alice.ID, "other", true, time.Now())

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	first := &model.Comment{Content: "first", AuthorID: bob.ID, PostID: post.ID, CreatedAt: base}
	second := &model.Comment{Content: "second", AuthorID: alice.ID, PostID: post.ID, CreatedAt: base.Add(time.Minute)}
	elsewhere := &model.Comment{Content: "elsewhere", AuthorID: bob.ID, PostID: other.ID, CreatedAt: base}
	require.NoError(t, db.Create(second).Error)
	require.NoError(t, db.Create(first).Error)
	require.NoError(t, db.Create(elsewhere).Error)

	t.Run("list by post oldest first with author", func(t *testing.T) {
		comments, err := repo.ListByPost(ctx, post.ID)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, "first", comments[0].Content)
		assert.Equal(t, "second", comments[1].Content)
		require.NotNil(t, comments[0].Author)
		assert.Equal(t, "bob", comments[0].Author.Username)
	})

	t.Run("find by id", func(t *testing.T) {
		got, err := repo.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "first", got.Content)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, first))
		comments, err := repo.ListByPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Len(t, comments, 1)
	})
}
