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

type CommentService struct {
	commentRepo repository.CommentRepository
	articleRepo repository.ArticleRepository
	isAdmin     func(ctx context.Context, userID uint) (bool, error)
}

type CreateCommentInput struct {
	UserID    uint
	ArticleID uint
	Text      string
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Text      string
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	articleRepo repository.ArticleRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		articleRepo: articleRepo,
		isAdmin:     isAdmin,
	}
}

const (
	minCommentLen = 2
	maxCommentLen = 1000
)

func validateCommentText(text string) []models.FieldError {
	switch n := utf8.RuneCountInString(text); {
	case strings.TrimSpace(text) == "":
		return []models.FieldError{{Field: "text", Message: "Text is required"}}
	case n < minCommentLen:
		return []models.FieldError{{Field: "text", Message: fmt.Sprintf("Text must be at least %d characters", minCommentLen)}}
	case n > maxCommentLen:
		return []models.FieldError{{Field: "text", Message: fmt.Sprintf("Text must be at most %d characters", maxCommentLen)}}
	}
	return nil
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	article, err := s.articleRepo.GetActiveByID(ctx, in.ArticleID, 0)
	if err != nil {
		return nil, articleNotFound(err)
	}
	if !article.IsPublished {
		return nil, models.NewValidationError("Invalid comment",
			models.FieldError{Field: "article", Message: "Cannot comment on an unpublished article"})
	}

	if fields := validateCommentText(in.Text); len(fields) > 0 {
		return nil, models.NewValidationError("Invalid comment", fields...)
	}

	comment := &models.Comment{
		Text:      in.Text,
		UserID:    in.UserID,
		ArticleID: in.ArticleID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	observability.EntityWrites.WithLabelValues("comment", "create").Inc()

	return comment, nil
}

// GetComment returns an active comment along with whether the caller may
// delete it (the comment's author, the parent article's author, or an admin).
func (s *CommentService) GetComment(ctx context.Context, id uint, currentUserID uint) (*models.Comment, bool, error) {
	comment, err := s.commentRepo.GetActiveByID(ctx, id)
	if err != nil {
		return nil, false, commentNotFound(err)
	}

	canDelete := false
	if currentUserID != 0 {
		switch {
		case comment.UserID == currentUserID:
			canDelete = true
		case s.adminOverride(ctx, currentUserID):
			canDelete = true
		default:
			article, err := s.articleRepo.GetAnyByID(ctx, comment.ArticleID)
			if err == nil && article.AuthorID == currentUserID {
				canDelete = true
			}
		}
	}
	return comment, canDelete, nil
}

func (s *CommentService) ListComments(ctx context.Context, articleID uint, limit, offset int, currentUserID uint) ([]*models.Comment, int64, error) {
	if _, err := s.articleRepo.GetVisibleByID(ctx, articleID, 0); err != nil {
		return nil, 0, articleNotFound(err)
	}
	return s.commentRepo.ListByArticle(ctx, articleID, limit, offset)
}

func (s *CommentService) ListUserComments(ctx context.Context, userID uint, limit, offset int) ([]*models.Comment, int64, error) {
	return s.commentRepo.ListByUser(ctx, userID, limit, offset)
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetActiveByID(ctx, in.CommentID)
	if err != nil {
		return nil, commentNotFound(err)
	}
	if comment.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only edit your own comments")
	}

	if fields := validateCommentText(in.Text); len(fields) > 0 {
		return nil, models.NewValidationError("Invalid comment", fields...)
	}

	comment.Text = in.Text
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	observability.EntityWrites.WithLabelValues("comment", "update").Inc()
	return comment, nil
}

// DeleteComment soft-deletes a comment. Allowed to the comment's author and
// to the author of the article it belongs to, who moderates their own page.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	comment, err := s.commentRepo.GetActiveByID(ctx, in.CommentID)
	if err != nil {
		return commentNotFound(err)
	}

	if comment.UserID != in.UserID {
		article, err := s.articleRepo.GetAnyByID(ctx, comment.ArticleID)
		if err != nil {
			return err
		}
		if article.AuthorID != in.UserID && !s.adminOverride(ctx, in.UserID) {
			return models.NewForbiddenError("You can only delete your own comments")
		}
	}

	if err := s.commentRepo.SoftDelete(ctx, comment); err != nil {
		return err
	}
	observability.SoftDeletes.WithLabelValues("comment").Inc()
	return nil
}

func (s *CommentService) RestoreComment(ctx context.Context, userID, commentID uint) (*models.Comment, error) {
	if !s.adminOverride(ctx, userID) {
		return nil, models.NewForbiddenError("Admin access required")
	}

	comment, err := s.commentRepo.GetAnyByID(ctx, commentID)
	if err != nil {
		return nil, commentNotFound(err)
	}
	if !comment.IsDeleted {
		return nil, models.NewValidationError("Comment is not deleted")
	}

	if err := s.commentRepo.Restore(ctx, comment); err != nil {
		return nil, err
	}
	observability.Restores.WithLabelValues("comment").Inc()
	return comment, nil
}

func (s *CommentService) adminOverride(ctx context.Context, userID uint) bool {
	if s.isAdmin == nil {
		return false
	}
	admin, err := s.isAdmin(ctx, userID)
	return err == nil && admin
}

func commentNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Comment")
	}
	return err
}
