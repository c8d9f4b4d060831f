package service

import (
	"context"
	"fmt"

	"azeyco/internal/models"
	"azeyco/internal/repository"
	"azeyco/internal/storage"
	"azeyco/internal/validation"
)

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	store    PictureStore
}

// MediaUpload is one uploaded media file attached to a post.
type MediaUpload struct {
	Filename string
	Content  []byte
}

type CreatePostInput struct {
	AuthorID   uint
	Content    string
	Visibility string
	Media      []MediaUpload
}

type ListPostsInput struct {
	AuthorID       uint
	AuthorUsername string
	Page           int
	Limit          int
}

type UpdatePostInput struct {
	UserID     uint
	PostID     uint
	Content    *string
	Visibility *string
	Media      []MediaUpload
	HasMedia   bool
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, store PictureStore) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo, store: store}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	content, err := validateContent(in.Content)
	if err != nil {
		return nil, err
	}

	visibility := in.Visibility
	if visibility == "" {
		visibility = models.VisibilityPublic
	}
	if err := validation.ValidateVisibility(visibility); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	author, err := s.userRepo.GetByID(ctx, in.AuthorID)
	if err != nil {
		return nil, err
	}

	media, err := s.storeMedia(in.Media)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		Content:        content,
		Media:          media,
		Visibility:     visibility,
		IsActive:       true,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		s.removeMedia(media)
		return nil, err
	}

	post.Author = &models.PostAuthor{
		ID:             author.ID,
		Username:       author.Username,
		FirstName:      author.FirstName,
		LastName:       author.LastName,
		ProfilePicture: author.ProfilePicture,
	}
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, models.Pagination, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	filter := repository.PostFilter{
		AuthorID:       in.AuthorID,
		AuthorUsername: in.AuthorUsername,
	}
	posts, total, err := s.postRepo.List(ctx, filter, limit, (page-1)*limit)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return posts, models.NewPagination(page, limit, total), nil
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetActiveByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own posts")
	}

	if in.Content != nil {
		content, err := validateContent(*in.Content)
		if err != nil {
			return nil, err
		}
		post.Content = content
	}
	if in.Visibility != nil {
		if err := validation.ValidateVisibility(*in.Visibility); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.Visibility = *in.Visibility
	}

	var replaced []models.PostMedia
	if in.HasMedia {
		// Replacement is wholesale: new files come in, old references go out.
		media, err := s.storeMedia(in.Media)
		if err != nil {
			return nil, err
		}
		replaced = post.Media
		post.Media = media
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		if in.HasMedia {
			s.removeMedia(post.Media)
		}
		return nil, err
	}
	s.removeMedia(replaced)
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetActiveByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	return s.postRepo.SoftDelete(ctx, postID)
}

// validateContent trims and bounds post content. Content is required even on
// media posts.
func validateContent(content string) (string, error) {
	trimmed, err := validation.ValidatePostContent(content)
	if err != nil {
		return "", models.NewValidationError(err.Error())
	}
	if trimmed == "" {
		return "", models.NewValidationError("Post content is required")
	}
	return trimmed, nil
}

func (s *PostService) storeMedia(uploads []MediaUpload) ([]models.PostMedia, error) {
	if len(uploads) > models.MaxMediaPerPost {
		return nil, models.NewValidationError(fmt.Sprintf("A post can have at most %d media files", models.MaxMediaPerPost))
	}

	media := make([]models.PostMedia, 0, len(uploads))
	for i, up := range uploads {
		url, err := s.store.SaveImage(storage.KindPostMedia, up.Content, storage.MaxPostMediaBytes)
		if err != nil {
			s.removeMedia(media)
			return nil, err
		}
		media = append(media, models.PostMedia{
			URL:      url,
			Type:     "image",
			Filename: up.Filename,
			Size:     int64(len(up.Content)),
			Position: i,
		})
	}
	return media, nil
}

func (s *PostService) removeMedia(media []models.PostMedia) {
	for _, m := range media {
		s.store.Remove(m.URL)
	}
}
