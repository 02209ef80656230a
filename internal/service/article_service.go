package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"

	"gorm.io/gorm"
)

type ArticleService struct {
	articleRepo repository.ArticleRepository
	isAdmin     func(ctx context.Context, userID uint) (bool, error)
}

type CreateArticleInput struct {
	AuthorID    uint
	Title       string
	Content     string
	Tags        string
	IsPublished *bool
}

type UpdateArticleInput struct {
	UserID      uint
	ArticleID   uint
	Title       *string
	Content     *string
	Tags        *string
	IsPublished *bool
}

type ListArticlesInput struct {
	Filters       repository.ArticleFilters
	Limit         int
	Offset        int
	CurrentUserID uint
}

func NewArticleService(
	articleRepo repository.ArticleRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *ArticleService {
	return &ArticleService{
		articleRepo: articleRepo,
		isAdmin:     isAdmin,
	}
}

const (
	minTitleLen   = 5
	maxTitleLen   = 200
	minContentLen = 50
)

// validateArticleFields collects every field problem rather than stopping at
// the first, so a client can fix a bad title and short content in one round
// trip. The title is measured after trimming, since the trimmed form is what
// gets stored; padding must not smuggle a short title past the minimum.
func validateArticleFields(title, content string, tags []string) []models.FieldError {
	var fields []models.FieldError

	switch n := utf8.RuneCountInString(strings.TrimSpace(title)); {
	case n == 0:
		fields = append(fields, models.FieldError{Field: "title", Message: "Title is required"})
	case n < minTitleLen:
		fields = append(fields, models.FieldError{Field: "title", Message: fmt.Sprintf("Title must be at least %d characters", minTitleLen)})
	case n > maxTitleLen:
		fields = append(fields, models.FieldError{Field: "title", Message: fmt.Sprintf("Title must be at most %d characters", maxTitleLen)})
	}

	switch n := utf8.RuneCountInString(content); {
	case strings.TrimSpace(content) == "":
		fields = append(fields, models.FieldError{Field: "content", Message: "Content is required"})
	case n < minContentLen:
		fields = append(fields, models.FieldError{Field: "content", Message: fmt.Sprintf("Content must be at least %d characters", minContentLen)})
	}

	if len(tags) > models.MaxTags {
		fields = append(fields, models.FieldError{Field: "tags", Message: fmt.Sprintf("At most %d tags are allowed", models.MaxTags)})
	}
	for _, tag := range tags {
		if utf8.RuneCountInString(tag) > models.MaxTagLength {
			fields = append(fields, models.FieldError{Field: "tags", Message: fmt.Sprintf("Each tag must be at most %d characters", models.MaxTagLength)})
			break
		}
	}

	return fields
}

func (s *ArticleService) CreateArticle(ctx context.Context, in CreateArticleInput) (*models.Article, error) {
	tags := models.ParseTags(in.Tags)
	if fields := validateArticleFields(in.Title, in.Content, tags); len(fields) > 0 {
		return nil, models.NewValidationError("Invalid article", fields...)
	}

	published := true
	if in.IsPublished != nil {
		published = *in.IsPublished
	}

	article := &models.Article{
		Title:       strings.TrimSpace(in.Title),
		Content:     in.Content,
		Tags:        strings.Join(tags, ","),
		IsPublished: published,
		AuthorID:    in.AuthorID,
	}
	if err := s.articleRepo.Create(ctx, article); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, models.NewConflictError("You already have an article with this title")
		}
		return nil, err
	}
	observability.EntityWrites.WithLabelValues("article", "create").Inc()

	return s.articleRepo.GetActiveByID(ctx, article.ID, in.AuthorID)
}

func (s *ArticleService) GetArticle(ctx context.Context, id uint, currentUserID uint) (*models.Article, error) {
	article, err := s.articleRepo.GetVisibleByID(ctx, id, currentUserID)
	if err != nil {
		return nil, articleNotFound(err)
	}
	return article, nil
}

func (s *ArticleService) ListArticles(ctx context.Context, in ListArticlesInput) ([]*models.Article, int64, error) {
	return s.articleRepo.List(ctx, in.Filters, in.Limit, in.Offset, in.CurrentUserID)
}

func (s *ArticleService) UpdateArticle(ctx context.Context, in UpdateArticleInput) (*models.Article, error) {
	article, err := s.articleRepo.GetActiveByID(ctx, in.ArticleID, in.UserID)
	if err != nil {
		return nil, articleNotFound(err)
	}
	if article.AuthorID != in.UserID {
		return nil, models.NewForbiddenError("You can only edit your own articles")
	}

	title := article.Title
	if in.Title != nil {
		title = *in.Title
	}
	content := article.Content
	if in.Content != nil {
		content = *in.Content
	}
	tags := article.TagList()
	if in.Tags != nil {
		tags = models.ParseTags(*in.Tags)
	}

	if fields := validateArticleFields(title, content, tags); len(fields) > 0 {
		return nil, models.NewValidationError("Invalid article", fields...)
	}

	article.Title = strings.TrimSpace(title)
	article.Content = content
	article.Tags = strings.Join(tags, ",")
	if in.IsPublished != nil {
		article.IsPublished = *in.IsPublished
	}

	if err := s.articleRepo.Update(ctx, article); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, models.NewConflictError("You already have an article with this title")
		}
		return nil, err
	}
	observability.EntityWrites.WithLabelValues("article", "update").Inc()

	return s.articleRepo.GetActiveByID(ctx, article.ID, in.UserID)
}

func (s *ArticleService) DeleteArticle(ctx context.Context, userID, articleID uint) error {
	article, err := s.articleRepo.GetActiveByID(ctx, articleID, userID)
	if err != nil {
		return articleNotFound(err)
	}
	if article.AuthorID != userID {
		if !s.adminOverride(ctx, userID) {
			return models.NewForbiddenError("You can only delete your own articles")
		}
	}

	if err := s.articleRepo.SoftDelete(ctx, article); err != nil {
		return err
	}
	observability.SoftDeletes.WithLabelValues("article").Inc()
	return nil
}

// RestoreArticle brings a soft-deleted article back. Restricted to admins
// because regular clients never see deleted rows at all.
func (s *ArticleService) RestoreArticle(ctx context.Context, userID, articleID uint) (*models.Article, error) {
	if !s.adminOverride(ctx, userID) {
		return nil, models.NewForbiddenError("Admin access required")
	}

	article, err := s.articleRepo.GetAnyByID(ctx, articleID)
	if err != nil {
		return nil, articleNotFound(err)
	}
	if !article.IsDeleted {
		return nil, models.NewValidationError("Article is not deleted")
	}

	if err := s.articleRepo.Restore(ctx, article); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, models.NewConflictError("The author already has an active article with this title")
		}
		return nil, err
	}
	observability.Restores.WithLabelValues("article").Inc()

	return s.articleRepo.GetAnyByID(ctx, articleID)
}

func (s *ArticleService) ListAllArticles(ctx context.Context, userID uint, limit, offset int) ([]*models.Article, int64, error) {
	if !s.adminOverride(ctx, userID) {
		return nil, 0, models.NewForbiddenError("Admin access required")
	}
	return s.articleRepo.ListAll(ctx, limit, offset)
}

func (s *ArticleService) HardDeleteArticle(ctx context.Context, userID, articleID uint) error {
	if !s.adminOverride(ctx, userID) {
		return models.NewForbiddenError("Admin access required")
	}
	if _, err := s.articleRepo.GetAnyByID(ctx, articleID); err != nil {
		return articleNotFound(err)
	}
	return s.articleRepo.HardDelete(ctx, articleID)
}

func (s *ArticleService) adminOverride(ctx context.Context, userID uint) bool {
	if s.isAdmin == nil {
		return false
	}
	admin, err := s.isAdmin(ctx, userID)
	return err == nil && admin
}

func articleNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Article")
	}
	return err
}
