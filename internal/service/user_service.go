// Package service contains the application's business logic.
package service

import (
	"context"

	"azeyco/internal/models"
	"azeyco/internal/repository"
	"azeyco/internal/storage"
	"azeyco/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// PictureStore abstracts local upload storage so tests can stub it.
type PictureStore interface {
	SaveImage(kind string, content []byte, maxBytes int64) (string, error)
	Remove(urlPath string)
}

type UserService struct {
	userRepo repository.UserRepository
	store    PictureStore
}

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type UpdateProfileInput struct {
	UserID    uint
	FirstName *string
	LastName  *string
	Bio       *string
}

// PictureKind selects which profile image field an upload targets.
type PictureKind string

const (
	PictureProfile PictureKind = "profile"
	PictureCover   PictureKind = "cover"
)

func NewUserService(userRepo repository.UserRepository, store PictureStore) *UserService {
	return &UserService{userRepo: userRepo, store: store}
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, models.NewValidationError("Username, email, and password are required")
	}
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	in.Email = validation.NormalizeEmail(in.Email)
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.FirstName == "" || in.LastName == "" {
		return nil, models.NewValidationError("First name and last name are required")
	}
	if err := validation.ValidateName("first name", in.FirstName); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateName("last name", in.LastName); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	// Email first, then username; clients rely on the per-field messages.
	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("Email already registered")
	}
	existing, err = s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("Username already taken")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  string(hashedPassword),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		IsActive:  true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password return the same message so accounts cannot be enumerated.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, models.NewValidationError("Email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if !user.IsActive {
		return nil, models.NewUnauthorizedError("Account is deactivated")
	}
	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); cmpErr != nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	return user, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		if err := validation.ValidateName("first name", *in.FirstName); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		if err := validation.ValidateName("last name", *in.LastName); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.LastName = *in.LastName
	}
	if in.Bio != nil {
		if err := validation.ValidateBio(*in.Bio); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Bio = *in.Bio
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UploadPicture stores a new profile or cover image and swaps the reference.
// The database update lands before the old file is removed, so a crash in
// between leaves an orphan file rather than a dangling reference.
func (s *UserService) UploadPicture(ctx context.Context, userID uint, kind PictureKind, content []byte) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var dir string
	var maxBytes int64
	var field **string
	switch kind {
	case PictureProfile:
		dir, maxBytes, field = storage.KindProfilePicture, storage.MaxProfilePictureBytes, &user.ProfilePicture
	case PictureCover:
		dir, maxBytes, field = storage.KindCoverPicture, storage.MaxCoverPictureBytes, &user.CoverPicture
	default:
		return nil, models.NewValidationError("Unknown picture kind")
	}

	url, err := s.store.SaveImage(dir, content, maxBytes)
	if err != nil {
		return nil, err
	}

	previous := *field
	*field = &url
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.store.Remove(url)
		return nil, err
	}
	if previous != nil && *previous != url {
		s.store.Remove(*previous)
	}
	return user, nil
}

// RemovePicture clears a profile or cover image reference and deletes the file.
func (s *UserService) RemovePicture(ctx context.Context, userID uint, kind PictureKind) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var field **string
	switch kind {
	case PictureProfile:
		field = &user.ProfilePicture
	case PictureCover:
		field = &user.CoverPicture
	default:
		return nil, models.NewValidationError("Unknown picture kind")
	}

	previous := *field
	*field = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	if previous != nil {
		s.store.Remove(*previous)
	}
	return user, nil
}
