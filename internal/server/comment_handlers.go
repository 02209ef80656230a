package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/articles/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	articleID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	userID := currentUserID(c)
	comment, err := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		UserID:    userID,
		ArticleID: articleID,
		Text:      req.Text,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	s.publishEvent(c.Context(), "comment", "created", comment.ID, userID)
	return c.Status(fiber.StatusCreated).JSON(newCommentView(comment, userID))
}

// GetComment handles GET /api/comments/:id
func (s *Server) GetComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	userID := optionalUserID(c)
	comment, canDelete, err := s.commentService.GetComment(c.Context(), commentID, userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(newCommentDetail(comment, userID, canDelete))
}

// ListComments handles GET /api/articles/:id/comments
func (s *Server) ListComments(c *fiber.Ctx) error {
	articleID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	page := parsePage(c)
	userID := optionalUserID(c)

	comments, total, err := s.commentService.ListComments(c.Context(), articleID, page.Size, page.Offset(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return respondPage(c, page, total, newCommentViews(comments, userID))
}

// UpdateComment handles PUT /api/comments/:id
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	userID := currentUserID(c)
	comment, err := s.commentService.UpdateComment(c.Context(), service.UpdateCommentInput{
		UserID:    userID,
		CommentID: commentID,
		Text:      req.Text,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	s.publishEvent(c.Context(), "comment", "updated", comment.ID, userID)
	return c.JSON(newCommentView(comment, userID))
}

// DeleteComment handles DELETE /api/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	userID := currentUserID(c)
	err = s.commentService.DeleteComment(c.Context(), service.DeleteCommentInput{
		UserID:    userID,
		CommentID: commentID,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	s.publishEvent(c.Context(), "comment", "deleted", commentID, userID)
	return c.SendStatus(fiber.StatusNoContent)
}
