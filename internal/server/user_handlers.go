package server

import (
	"fmt"
	"strconv"
	"time"

	"azeyco/internal/models"
	"azeyco/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Register handles POST /api/users/register
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Register(c.UserContext(), service.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return s.respondError(c, err)
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return s.respondError(c, models.NewInternalError(err))
	}

	return models.Respond(c, fiber.StatusCreated, "User registered successfully", fiber.Map{
		"user":  user,
		"token": token,
	})
}

// Login handles POST /api/users/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return s.respondError(c, err)
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return s.respondError(c, models.NewInternalError(err))
	}

	return models.Respond(c, fiber.StatusOK, "Login successful", fiber.Map{
		"user":  user,
		"token": token,
	})
}

// GetProfile handles GET /api/users/profile
func (s *Server) GetProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetProfile(c.UserContext(), currentUserID(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Profile retrieved successfully", fiber.Map{
		"user": user,
	})
}

// UpdateProfile handles PUT /api/users/profile
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var req struct {
		FirstName *string `json:"firstName"`
		LastName  *string `json:"lastName"`
		Bio       *string `json:"bio"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:    currentUserID(c),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
	})
	if err != nil {
		return s.respondError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Profile updated successfully", fiber.Map{
		"user": user,
	})
}

// UploadProfilePicture handles POST /api/users/profile/picture
func (s *Server) UploadProfilePicture(c *fiber.Ctx) error {
	return s.uploadPicture(c, service.PictureProfile, "Profile picture updated successfully")
}

// UploadCoverPicture handles POST /api/users/profile/cover
func (s *Server) UploadCoverPicture(c *fiber.Ctx) error {
	return s.uploadPicture(c, service.PictureCover, "Cover picture updated successfully")
}

func (s *Server) uploadPicture(c *fiber.Ctx, kind service.PictureKind, message string) error {
	content, err := readFormFile(c, "image")
	if err != nil {
		return s.respondError(c, err)
	}

	user, err := s.userService.UploadPicture(c.UserContext(), currentUserID(c), kind, content)
	if err != nil {
		return s.respondError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, message, fiber.Map{
		"user": user,
	})
}

// RemoveProfilePicture handles DELETE /api/users/profile/picture
func (s *Server) RemoveProfilePicture(c *fiber.Ctx) error {
	return s.removePicture(c, service.PictureProfile, "Profile picture removed successfully")
}

// RemoveCoverPicture handles DELETE /api/users/profile/cover
func (s *Server) RemoveCoverPicture(c *fiber.Ctx) error {
	return s.removePicture(c, service.PictureCover, "Cover picture removed successfully")
}

func (s *Server) removePicture(c *fiber.Ctx, kind service.PictureKind, message string) error {
	user, err := s.userService.RemovePicture(c.UserContext(), currentUserID(c), kind)
	if err != nil {
		return s.respondError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, message, fiber.Map{
		"user": user,
	})
}

// generateToken creates a JWT token for the given user ID and username
func (s *Server) generateToken(userID uint, username string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10), // Subject (user ID as string)
		"username": username,                               // Username (cached in token)
		"iss":      tokenIssuer,                            // Issuer
		"aud":      tokenAudience,                          // Audience
		"exp":      now.Add(tokenLifetime).Unix(),          // Expiration (7 days)
		"iat":      now.Unix(),                             // Issued at
		"nbf":      now.Unix(),                             // Not before
		"jti":      s.generateJTI(),                        // JWT ID (unique identifier)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
