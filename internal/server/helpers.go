package server

import (
	"io"
	"mime/multipart"
	"strconv"

	"azeyco/internal/middleware"
	"azeyco/internal/models"
	"azeyco/internal/service"

	"github.com/gofiber/fiber/v2"
)

// currentUserID returns the authenticated user's ID from locals. Routes
// behind AuthRequired always have it set.
func currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}

// parseID parses a positive uint route or query parameter.
func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError("Invalid ID")
	}
	return uint(id), nil
}

// respondError maps an error to its HTTP status and writes the envelope.
func (s *Server) respondError(c *fiber.Ctx, err error) error {
	status := models.StatusForError(err)
	if status == fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed", "error", err)
	}
	return models.RespondWithError(c, status, err)
}

// readFormFile reads a single multipart file field into memory.
func readFormFile(c *fiber.Ctx, field string) ([]byte, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, models.NewValidationError("No file uploaded")
	}
	return readFileHeader(fileHeader)
}

// readMediaFiles reads every `media` file from the multipart form.
func readMediaFiles(c *fiber.Ctx) ([]service.MediaUpload, error) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, nil
	}

	headers := form.File["media"]
	uploads := make([]service.MediaUpload, 0, len(headers))
	for _, h := range headers {
		content, err := readFileHeader(h)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, service.MediaUpload{
			Filename: h.Filename,
			Content:  content,
		})
	}
	return uploads, nil
}

func readFileHeader(h *multipart.FileHeader) ([]byte, error) {
	f, err := h.Open()
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return content, nil
}
