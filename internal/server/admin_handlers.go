package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AdminListArticles handles GET /api/admin/articles. Unlike the public
// listing it includes soft-deleted and unpublished articles.
func (s *Server) AdminListArticles(c *fiber.Ctx) error {
	page := parsePage(c)
	userID := currentUserID(c)

	articles, total, err := s.articleService.ListAllArticles(c.Context(), userID, page.Size, page.Offset())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return respondPage(c, page, total, newAdminArticleViews(articles))
}

// RestoreArticle handles POST /api/admin/articles/:id/restore
func (s *Server) RestoreArticle(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	userID := currentUserID(c)
	article, err := s.articleService.RestoreArticle(c.Context(), userID, id)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	s.publishEvent(c.Context(), "article", "restored", article.ID, userID)
	return c.JSON(newAdminArticleView(article))
}

// PurgeArticle handles DELETE /api/admin/articles/:id/purge. This is the only
// path that physically removes rows.
func (s *Server) PurgeArticle(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	userID := currentUserID(c)
	if err := s.articleService.HardDeleteArticle(c.Context(), userID, id); err != nil {
		return models.RespondWithError(c, err)
	}

	s.publishEvent(c.Context(), "article", "purged", id, userID)
	return c.SendStatus(fiber.StatusNoContent)
}

// RestoreComment handles POST /api/admin/comments/:id/restore
func (s *Server) RestoreComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	userID := currentUserID(c)
	comment, err := s.commentService.RestoreComment(c.Context(), userID, id)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	s.publishEvent(c.Context(), "comment", "restored", comment.ID, userID)
	return c.JSON(newCommentView(comment, userID))
}
