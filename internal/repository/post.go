package repository

import (
	"context"
	"errors"

	"azeyco/internal/cache"
	"azeyco/internal/models"

	"gorm.io/gorm"
)

// PostFilter narrows List queries. Zero values mean "no filter".
type PostFilter struct {
	AuthorID       uint
	AuthorUsername string
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetActiveByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, filter PostFilter, limit, offset int) ([]*models.Post, int64, error)
	Update(ctx context.Context, post *models.Post) error
	SoftDelete(ctx context.Context, id uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// visible restricts listing queries to live, publicly readable posts.
func visible(db *gorm.DB) *gorm.DB {
	return db.Where("posts.is_active = ? AND posts.visibility = ?", true, models.VisibilityPublic)
}

// GetByID returns any live post regardless of visibility; only the listing
// excludes non-public posts.
func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	key := cache.PostKey(id)

	err := cache.Aside(ctx, key, &post, cache.PostTTL, func() error {
		if err := r.db.WithContext(ctx).Model(&models.Post{}).
			Where("posts.is_active = ?", true).
			Preload("Author").
			Preload("Media", func(db *gorm.DB) *gorm.DB {
				return db.Order("position ASC")
			}).
			First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post")
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetActiveByID skips the cache so the mutation path always sees the row as
// stored.
func (r *postRepository) GetActiveByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post")
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filter PostFilter, limit, offset int) ([]*models.Post, int64, error) {
	base := visible(r.db.WithContext(ctx).Model(&models.Post{}))
	if filter.AuthorID != 0 {
		base = base.Where("posts.author_id = ?", filter.AuthorID)
	}
	if filter.AuthorUsername != "" {
		base = base.Where("posts.author_username = ?", filter.AuthorUsername)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var posts []*models.Post
	if err := base.
		Preload("Author").
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

// Update saves the post and replaces its media rows wholesale.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.PostMedia{}).Error; err != nil {
			return err
		}
		// Replacement rows must insert fresh, never upsert stale IDs.
		for i := range post.Media {
			post.Media[i].ID = 0
			post.Media[i].PostID = post.ID
		}
		return tx.Save(post).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

func (r *postRepository) SoftDelete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Update("is_active", false).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}
