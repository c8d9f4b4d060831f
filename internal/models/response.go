package models

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Envelope is the uniform response body shape shared by every endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

// Pagination describes one page of a skip/limit listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasMore    bool  `json:"hasMore"`
}

// NewPagination computes the derived page fields for a total row count.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	}
}

// Respond writes a success envelope with the given status.
func Respond(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondWithError writes an error envelope. AppError causes stay server-side.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	env := Envelope{Success: false}

	var appErr *AppError
	if errors.As(err, &appErr) {
		env.Message = appErr.Message
		env.Errors = appErr.Fields
	} else {
		env.Message = "Internal server error"
	}

	return c.Status(status).JSON(env)
}
