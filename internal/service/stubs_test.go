package service

import (
	"context"
	"errors"
	"testing"

	"azeyco/internal/models"
	"azeyco/internal/repository"
)

type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(context.Context, uint) (*models.User, error) { return &models.User{IsActive: true}, nil },
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		updateFn:        func(context.Context, *models.User) error { return nil },
	}
}

type postRepoStub struct {
	createFn        func(context.Context, *models.Post) error
	getByIDFn       func(context.Context, uint) (*models.Post, error)
	getActiveByIDFn func(context.Context, uint) (*models.Post, error)
	listFn          func(context.Context, repository.PostFilter, int, int) ([]*models.Post, int64, error)
	updateFn        func(context.Context, *models.Post) error
	softDeleteFn    func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) GetActiveByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getActiveByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, filter repository.PostFilter, limit, offset int) ([]*models.Post, int64, error) {
	return s.listFn(ctx, filter, limit, offset)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) SoftDelete(ctx context.Context, id uint) error {
	return s.softDeleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:        func(context.Context, *models.Post) error { return nil },
		getByIDFn:       func(context.Context, uint) (*models.Post, error) { return &models.Post{}, nil },
		getActiveByIDFn: func(context.Context, uint) (*models.Post, error) { return &models.Post{}, nil },
		listFn: func(context.Context, repository.PostFilter, int, int) ([]*models.Post, int64, error) {
			return nil, 0, nil
		},
		updateFn:        func(context.Context, *models.Post) error { return nil },
		softDeleteFn:    func(context.Context, uint) error { return nil },
	}
}

// storeStub records stored and removed paths without touching the filesystem.
type storeStub struct {
	saveFn  func(kind string, content []byte, maxBytes int64) (string, error)
	removed []string
}

func (s *storeStub) SaveImage(kind string, content []byte, maxBytes int64) (string, error) {
	if s.saveFn != nil {
		return s.saveFn(kind, content, maxBytes)
	}
	return "/uploads/" + kind + "/stub.jpg", nil
}

func (s *storeStub) Remove(urlPath string) {
	s.removed = append(s.removed, urlPath)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeValidation {
		t.Fatalf("expected validation app error, got %#v", err)
	}
}
