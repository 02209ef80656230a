package service

import (
	"context"
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"

	"gorm.io/gorm"
)

type LikeService struct {
	likeRepo    repository.LikeRepository
	articleRepo repository.ArticleRepository
}

func NewLikeService(likeRepo repository.LikeRepository, articleRepo repository.ArticleRepository) *LikeService {
	return &LikeService{
		likeRepo:    likeRepo,
		articleRepo: articleRepo,
	}
}

func (s *LikeService) CreateLike(ctx context.Context, userID, articleID uint) (*models.Like, error) {
	if _, err := s.articleRepo.GetVisibleByID(ctx, articleID, 0); err != nil {
		return nil, articleNotFound(err)
	}

	like := &models.Like{UserID: userID, ArticleID: articleID}
	if err := s.likeRepo.Create(ctx, like); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, models.NewConflictError("You have already liked this article")
		}
		return nil, err
	}
	observability.EntityWrites.WithLabelValues("like", "create").Inc()

	return s.likeRepo.GetActiveByID(ctx, like.ID)
}

// ToggleLike flips the caller's like on an article and reports the resulting
// state. A raced duplicate insert counts as already liked and toggles off
// nothing, matching what the caller sees on a retry.
func (s *LikeService) ToggleLike(ctx context.Context, userID, articleID uint) (bool, *models.Article, error) {
	if _, err := s.articleRepo.GetVisibleByID(ctx, articleID, 0); err != nil {
		return false, nil, articleNotFound(err)
	}

	liked := false
	existing, err := s.likeRepo.GetActiveByUserAndArticle(ctx, userID, articleID)
	switch {
	case err == nil:
		if err := s.likeRepo.SoftDelete(ctx, existing); err != nil {
			return false, nil, err
		}
		observability.LikeToggles.WithLabelValues("unliked").Inc()
	case errors.Is(err, gorm.ErrRecordNotFound):
		like := &models.Like{UserID: userID, ArticleID: articleID}
		if err := s.likeRepo.Create(ctx, like); err != nil && !errors.Is(err, repository.ErrDuplicate) {
			return false, nil, err
		}
		liked = true
		observability.LikeToggles.WithLabelValues("liked").Inc()
	default:
		return false, nil, err
	}

	article, err := s.articleRepo.GetVisibleByID(ctx, articleID, userID)
	if err != nil {
		return false, nil, articleNotFound(err)
	}
	return liked, article, nil
}

// DeleteLike removes a like by its ID. Only the like's owner may remove it.
func (s *LikeService) DeleteLike(ctx context.Context, userID, likeID uint) error {
	like, err := s.likeRepo.GetActiveByID(ctx, likeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Like")
		}
		return err
	}
	if like.UserID != userID {
		return models.NewForbiddenError("You can only remove your own likes")
	}

	if err := s.likeRepo.SoftDelete(ctx, like); err != nil {
		return err
	}
	observability.SoftDeletes.WithLabelValues("like").Inc()
	return nil
}

// ListMyLikes returns the caller's own active likes. There is no public
// listing of who liked what.
func (s *LikeService) ListMyLikes(ctx context.Context, userID uint, limit, offset int) ([]*models.Like, int64, error) {
	return s.likeRepo.ListByUser(ctx, userID, limit, offset)
}
