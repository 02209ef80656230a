package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// LikeArticle handles POST /api/articles/:id/like
func (s *Server) LikeArticle(c *fiber.Ctx) error {
	articleID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	userID := currentUserID(c)
	like, err := s.likeService.CreateLike(c.Context(), userID, articleID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	s.publishEvent(c.Context(), "like", "created", like.ID, userID)
	return c.Status(fiber.StatusCreated).JSON(newLikeView(like))
}

// DeleteLike handles DELETE /api/likes/:id
func (s *Server) DeleteLike(c *fiber.Ctx) error {
	likeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	userID := currentUserID(c)
	if err := s.likeService.DeleteLike(c.Context(), userID, likeID); err != nil {
		return models.RespondWithError(c, err)
	}

	s.publishEvent(c.Context(), "like", "deleted", likeID, userID)
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleLike handles POST /api/articles/:id/toggle-like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	articleID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	userID := currentUserID(c)
	liked, article, err := s.likeService.ToggleLike(c.Context(), userID, articleID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	action := "deleted"
	if liked {
		action = "created"
	}
	s.publishEvent(c.Context(), "like", action, articleID, userID)

	return c.JSON(ToggleLikeView{
		Liked:      liked,
		LikesCount: article.LikesCount,
	})
}

// GetMyLikes handles GET /api/me/likes
func (s *Server) GetMyLikes(c *fiber.Ctx) error {
	userID := currentUserID(c)
	page := parsePage(c)

	likes, total, err := s.likeService.ListMyLikes(c.Context(), userID, page.Size, page.Offset())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return respondPage(c, page, total, newLikeViews(likes))
}
