package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetUserByID(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(newProfileView(user))
}

// UpdateMyProfile handles PUT /api/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Bio      string `json:"bio"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:   currentUserID(c),
		Username: req.Username,
		Bio:      req.Bio,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(newProfileView(user))
}

// GetMyComments handles GET /api/me/comments
func (s *Server) GetMyComments(c *fiber.Ctx) error {
	userID := currentUserID(c)
	page := parsePage(c)

	comments, total, err := s.commentService.ListUserComments(c.Context(), userID, page.Size, page.Offset())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return respondPage(c, page, total, newCommentViews(comments, userID))
}

// GetUserProfile handles GET /api/users/:username
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetUserByUsername(c.Context(), c.Params("username"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(newPublicProfileView(user))
}
