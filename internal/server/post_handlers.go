package server

import (
	"azeyco/internal/models"
	"azeyco/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts. The request is multipart: a `content`
// field, an optional `visibility` field, and up to ten `media` image files.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	media, err := readMediaFiles(c)
	if err != nil {
		return s.respondError(c, err)
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		AuthorID:   currentUserID(c),
		Content:    c.FormValue("content"),
		Visibility: c.FormValue("visibility"),
		Media:      media,
	})
	if err != nil {
		return s.respondError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, "Post created successfully", fiber.Map{
		"post": post,
	})
}

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	var authorID uint
	if raw := c.Query("authorId"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			return s.respondError(c, models.NewValidationError("Invalid authorId"))
		}
		authorID = id
	}

	posts, pagination, err := s.postService.ListPosts(c.UserContext(), service.ListPostsInput{
		AuthorID:       authorID,
		AuthorUsername: c.Query("authorUsername"),
		Page:           page,
		Limit:          limit,
	})
	if err != nil {
		return s.respondError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Posts retrieved successfully", fiber.Map{
		"posts":      posts,
		"pagination": pagination,
	})
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return s.respondError(c, models.NewValidationError("Invalid post ID"))
	}

	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return s.respondError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Post retrieved successfully", fiber.Map{
		"post": post,
	})
}

// UpdatePost handles PUT /api/posts/:id. Multipart like create; sending any
// `media` file replaces the post's media wholesale.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return s.respondError(c, models.NewValidationError("Invalid post ID"))
	}

	in := service.UpdatePostInput{
		UserID: currentUserID(c),
		PostID: id,
	}

	form, formErr := c.MultipartForm()
	if formErr == nil && form != nil {
		if values, ok := form.Value["content"]; ok && len(values) > 0 {
			in.Content = &values[0]
		}
		if values, ok := form.Value["visibility"]; ok && len(values) > 0 {
			in.Visibility = &values[0]
		}
		if _, ok := form.File["media"]; ok {
			media, err := readMediaFiles(c)
			if err != nil {
				return s.respondError(c, err)
			}
			in.Media = media
			in.HasMedia = true
		}
	} else {
		// Fall back to a JSON body for text-only edits.
		var req struct {
			Content    *string `json:"content"`
			Visibility *string `json:"visibility"`
		}
		if err := c.BodyParser(&req); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid request body"))
		}
		in.Content = req.Content
		in.Visibility = req.Visibility
	}

	post, err := s.postService.UpdatePost(c.UserContext(), in)
	if err != nil {
		return s.respondError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Post updated successfully", fiber.Map{
		"post": post,
	})
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return s.respondError(c, models.NewValidationError("Invalid post ID"))
	}

	if err := s.postService.DeletePost(c.UserContext(), currentUserID(c), id); err != nil {
		return s.respondError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Post deleted successfully", nil)
}
