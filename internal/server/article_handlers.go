package server

import (
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

type articleRequest struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	Tags        *string `json:"tags"`
	IsPublished *bool   `json:"is_published"`
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// CreateArticle handles POST /api/articles
func (s *Server) CreateArticle(c *fiber.Ctx) error {
	var req articleRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	userID := currentUserID(c)
	article, err := s.articleService.CreateArticle(c.Context(), service.CreateArticleInput{
		AuthorID:    userID,
		Title:       strOrEmpty(req.Title),
		Content:     strOrEmpty(req.Content),
		Tags:        strOrEmpty(req.Tags),
		IsPublished: req.IsPublished,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	s.publishEvent(c.Context(), "article", "created", article.ID, userID)
	return c.Status(fiber.StatusCreated).JSON(newArticleDetail(article, userID))
}

// GetArticle handles GET /api/articles/:id
func (s *Server) GetArticle(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	userID := optionalUserID(c)
	article, err := s.articleService.GetArticle(c.Context(), id, userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(newArticleDetail(article, userID))
}

// ListArticles handles GET /api/articles
func (s *Server) ListArticles(c *fiber.Ctx) error {
	page := parsePage(c)
	userID := optionalUserID(c)

	articles, total, err := s.articleService.ListArticles(c.Context(), service.ListArticlesInput{
		Filters: repository.ArticleFilters{
			Author:   c.Query("author"),
			Title:    c.Query("title"),
			Tags:     c.Query("tags"),
			Search:   c.Query("search"),
			Ordering: c.Query("ordering"),
		},
		Limit:         page.Size,
		Offset:        page.Offset(),
		CurrentUserID: userID,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return respondPage(c, page, total, newArticleSummaries(articles))
}

// UpdateArticle handles PUT and PATCH /api/articles/:id
func (s *Server) UpdateArticle(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req articleRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	in := service.UpdateArticleInput{
		UserID:      currentUserID(c),
		ArticleID:   id,
		Title:       req.Title,
		Content:     req.Content,
		Tags:        req.Tags,
		IsPublished: req.IsPublished,
	}
	// PUT replaces the document, so absent fields count as empty rather than
	// unchanged.
	if c.Method() == fiber.MethodPut {
		empty := ""
		if in.Title == nil {
			in.Title = &empty
		}
		if in.Content == nil {
			in.Content = &empty
		}
		if in.Tags == nil {
			in.Tags = &empty
		}
	}

	article, err := s.articleService.UpdateArticle(c.Context(), in)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	s.publishEvent(c.Context(), "article", "updated", article.ID, in.UserID)
	return c.JSON(newArticleDetail(article, in.UserID))
}

// DeleteArticle handles DELETE /api/articles/:id
func (s *Server) DeleteArticle(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	userID := currentUserID(c)
	if err := s.articleService.DeleteArticle(c.Context(), userID, id); err != nil {
		return models.RespondWithError(c, err)
	}

	s.publishEvent(c.Context(), "article", "deleted", id, userID)
	return c.SendStatus(fiber.StatusNoContent)
}
