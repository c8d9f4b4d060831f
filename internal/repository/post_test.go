package repository

import (
	"context"
	"fmt"
	"testing"

	"azeyco/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "hashed",
		FirstName: "Test",
		LastName:  "User",
		IsActive:  true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, author *models.User, content string, mutate ...func(*models.Post)) *models.Post {
	t.Helper()
	post := &models.Post{
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		Content:        content,
		Visibility:     models.VisibilityPublic,
		IsActive:       true,
	}
	for _, m := range mutate {
		m(post)
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func TestPostRepository_CreateDerivesFields(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "author1")

	post := &models.Post{
		AuthorID:       user.ID,
		AuthorUsername: user.Username,
		Content:        "hello #world",
		Media:          []models.PostMedia{{URL: "/uploads/posts/a.jpg", Type: "image", Filename: "a.jpg", Size: 100}},
		Visibility:     models.VisibilityPublic,
		IsActive:       true,
	}
	require.NoError(t, repo.Create(context.Background(), post))

	var stored models.Post
	require.NoError(t, db.Preload("Media").First(&stored, post.ID).Error)
	assert.Equal(t, models.PostTypeMixed, stored.Type, "save hook derives type")
	assert.Equal(t, []string{"#world"}, stored.Hashtags)
	assert.Len(t, stored.Media, 1)
}

func TestPostRepository_GetByID(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db, "author2")

	t.Run("found with author view", func(t *testing.T) {
		post := createTestPost(t, db, user, "visible post")
		got, err := repo.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "visible post", got.Content)
		require.NotNil(t, got.Author)
		assert.Equal(t, user.Username, got.Author.Username)
	})

	t.Run("missing is not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 99999)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})

	t.Run("soft-deleted is not found", func(t *testing.T) {
		post := createTestPost(t, db, user, "to delete")
		require.NoError(t, repo.SoftDelete(ctx, post.ID))
		_, err := repo.GetByID(ctx, post.ID)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})

	t.Run("non-public is still readable by id", func(t *testing.T) {
		post := createTestPost(t, db, user, "private post", func(p *models.Post) {
			p.Visibility = models.VisibilityPrivate
		})
		got, err := repo.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, models.VisibilityPrivate, got.Visibility)
	})
}

func TestPostRepository_GetActiveByID(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db, "author3")

	t.Run("sees the author's private post", func(t *testing.T) {
		post := createTestPost(t, db, user, "my private post", func(p *models.Post) {
			p.Visibility = models.VisibilityPrivate
		})
		got, err := repo.GetActiveByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "my private post", got.Content)
	})

	t.Run("soft-deleted stays hidden", func(t *testing.T) {
		post := createTestPost(t, db, user, "gone")
		require.NoError(t, repo.SoftDelete(ctx, post.ID))
		_, err := repo.GetActiveByID(ctx, post.ID)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})
}

func TestPostRepository_List(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	for i := 0; i < 3; i++ {
		createTestPost(t, db, alice, fmt.Sprintf("alice post %d", i))
	}
	createTestPost(t, db, bob, "bob post")
	createTestPost(t, db, bob, "bob hidden", func(p *models.Post) { p.IsActive = false })
	createTestPost(t, db, bob, "bob private", func(p *models.Post) { p.Visibility = models.VisibilityPrivate })

	t.Run("excludes soft-deleted and non-public", func(t *testing.T) {
		posts, total, err := repo.List(ctx, PostFilter{}, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		assert.Len(t, posts, 4)
	})

	t.Run("author id filter", func(t *testing.T) {
		posts, total, err := repo.List(ctx, PostFilter{AuthorID: alice.ID}, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		for _, p := range posts {
			assert.Equal(t, alice.ID, p.AuthorID)
		}
	})

	t.Run("author username filter", func(t *testing.T) {
		posts, total, err := repo.List(ctx, PostFilter{AuthorUsername: "bob"}, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, posts, 1)
		assert.Equal(t, "bob post", posts[0].Content)
	})

	t.Run("pagination window keeps total", func(t *testing.T) {
		posts, total, err := repo.List(ctx, PostFilter{}, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		assert.Len(t, posts, 2)
	})
}

func TestPostRepository_UpdateReplacesMedia(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db, "author4")

	post := createTestPost(t, db, user, "with media", func(p *models.Post) {
		p.Media = []models.PostMedia{
			{URL: "/uploads/posts/a.jpg", Type: "image", Filename: "a.jpg", Size: 1, Position: 0},
			{URL: "/uploads/posts/b.jpg", Type: "image", Filename: "b.jpg", Size: 2, Position: 1},
		}
	})

	got, err := repo.GetActiveByID(ctx, post.ID)
	require.NoError(t, err)
	got.Media = []models.PostMedia{{PostID: post.ID, URL: "/uploads/posts/c.jpg", Type: "image", Filename: "c.jpg", Size: 3, Position: 0}}
	require.NoError(t, repo.Update(ctx, got))

	reread, err := repo.GetActiveByID(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, reread.Media, 1)
	assert.Equal(t, "/uploads/posts/c.jpg", reread.Media[0].URL)
}

func TestPostRepository_SoftDeleteKeepsRow(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db, "author5")
	post := createTestPost(t, db, user, "doomed")

	require.NoError(t, repo.SoftDelete(ctx, post.ID))

	var stored models.Post
	require.NoError(t, db.First(&stored, post.ID).Error, "row survives soft delete")
	assert.False(t, stored.IsActive)
}
