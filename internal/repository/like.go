package repository

import (
	"context"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for like data operations.
type LikeRepository interface {
	Create(ctx context.Context, like *models.Like) error
	GetActiveByID(ctx context.Context, id uint) (*models.Like, error)
	GetActiveByUserAndArticle(ctx context.Context, userID, articleID uint) (*models.Like, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Like, int64, error)
	SoftDelete(ctx context.Context, like *models.Like) error
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create inserts the like in a single statement. The conflict target is the
// partial unique index over active likes, so concurrent requests for the same
// (user, article) pair cannot both succeed; the loser sees ErrDuplicate
// instead of a race window between a lookup and an insert.
func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:     []clause.Column{{Name: "user_id"}, {Name: "article_id"}},
			TargetWhere: clause.Where{Exprs: []clause.Expression{clause.Eq{Column: "is_deleted", Value: false}}},
			DoNothing:   true,
		}).
		Create(like)
	if res.Error != nil {
		return translateWriteError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrDuplicate
	}
	cache.InvalidateArticle(ctx, like.ArticleID)
	return nil
}

func (r *likeRepository) GetActiveByID(ctx context.Context, id uint) (*models.Like, error) {
	var like models.Like
	err := r.db.WithContext(ctx).
		Scopes(notDeleted("likes")).
		Preload("User").
		First(&like, id).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *likeRepository) GetActiveByUserAndArticle(ctx context.Context, userID, articleID uint) (*models.Like, error) {
	var like models.Like
	err := r.db.WithContext(ctx).
		Scopes(notDeleted("likes")).
		Where("likes.user_id = ? AND likes.article_id = ?", userID, articleID).
		First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

// ListByUser returns a user's active likes, newest first. Likes are listed
// only to their owner; there is no per-article listing.
func (r *likeRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Like, int64, error) {
	base := func(db *gorm.DB) *gorm.DB {
		return db.Scopes(notDeleted("likes")).
			Where("likes.user_id = ?", userID)
	}

	var total int64
	if err := base(r.db.WithContext(ctx).Model(&models.Like{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var likes []*models.Like
	err := base(r.db.WithContext(ctx)).
		Preload("User").
		Order("likes.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&likes).Error
	if err != nil {
		return nil, 0, err
	}
	return likes, total, nil
}

func (r *likeRepository) SoftDelete(ctx context.Context, like *models.Like) error {
	like.MarkDeleted(time.Now().UTC())
	if err := r.db.WithContext(ctx).Save(like).Error; err != nil {
		return err
	}
	cache.InvalidateArticle(ctx, like.ArticleID)
	return nil
}
