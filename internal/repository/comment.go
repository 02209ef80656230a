package repository

import (
	"context"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetActiveByID(ctx context.Context, id uint) (*models.Comment, error)
	GetAnyByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByArticle(ctx context.Context, articleID uint, limit, offset int) ([]*models.Comment, int64, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Comment, int64, error)
	Update(ctx context.Context, comment *models.Comment) error
	SoftDelete(ctx context.Context, comment *models.Comment) error
	Restore(ctx context.Context, comment *models.Comment) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return translateWriteError(err)
	}
	// The cached article detail embeds the comment count.
	cache.InvalidateArticle(ctx, comment.ArticleID)
	return r.db.WithContext(ctx).Preload("User").First(comment, comment.ID).Error
}

func (r *commentRepository) GetActiveByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Scopes(notDeleted("comments")).
		Preload("User").
		First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) GetAnyByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByArticle returns active comments on an article, oldest first so a
// thread reads top to bottom.
func (r *commentRepository) ListByArticle(ctx context.Context, articleID uint, limit, offset int) ([]*models.Comment, int64, error) {
	base := func(db *gorm.DB) *gorm.DB {
		return db.Scopes(notDeleted("comments")).
			Where("comments.article_id = ?", articleID)
	}

	var total int64
	if err := base(r.db.WithContext(ctx).Model(&models.Comment{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []*models.Comment
	err := base(r.db.WithContext(ctx)).
		Preload("User").
		Order("comments.created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Comment, int64, error) {
	base := func(db *gorm.DB) *gorm.DB {
		return db.Scopes(notDeleted("comments")).
			Where("comments.user_id = ?", userID)
	}

	var total int64
	if err := base(r.db.WithContext(ctx).Model(&models.Comment{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []*models.Comment
	err := base(r.db.WithContext(ctx)).
		Preload("User").
		Order("comments.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *commentRepository) SoftDelete(ctx context.Context, comment *models.Comment) error {
	comment.MarkDeleted(time.Now().UTC())
	if err := r.db.WithContext(ctx).Save(comment).Error; err != nil {
		return err
	}
	cache.InvalidateArticle(ctx, comment.ArticleID)
	return nil
}

func (r *commentRepository) Restore(ctx context.Context, comment *models.Comment) error {
	comment.Restore()
	if err := r.db.WithContext(ctx).Save(comment).Error; err != nil {
		return err
	}
	cache.InvalidateArticle(ctx, comment.ArticleID)
	return nil
}
