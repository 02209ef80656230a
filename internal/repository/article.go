package repository

import (
	"context"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

// ArticleRepository defines the interface for article data operations.
//
// The access paths are explicit: GetActiveByID and List see only non-deleted
// rows, GetVisibleByID additionally requires publication, and GetAnyByID /
// ListAll see everything including soft-deleted rows (restore and
// administrative tooling).
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetActiveByID(ctx context.Context, id uint, currentUserID uint) (*models.Article, error)
	GetVisibleByID(ctx context.Context, id uint, currentUserID uint) (*models.Article, error)
	GetAnyByID(ctx context.Context, id uint) (*models.Article, error)
	List(ctx context.Context, filters ArticleFilters, limit, offset int, currentUserID uint) ([]*models.Article, int64, error)
	ListAll(ctx context.Context, limit, offset int) ([]*models.Article, int64, error)
	Update(ctx context.Context, article *models.Article) error
	SoftDelete(ctx context.Context, article *models.Article) error
	Restore(ctx context.Context, article *models.Article) error
	HardDelete(ctx context.Context, id uint) error
}

type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates a new article repository.
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	err := r.db.WithContext(ctx).Create(article).Error
	if err != nil {
		return translateWriteError(err)
	}
	cache.InvalidateArticlesList(ctx)
	return nil
}

// applyArticleDetails adds subqueries computing engagement counts and the
// current user's liked flag in a single query. Counts cover active related
// rows only, so soft-deleted comments and likes never show up in them.
func (r *articleRepository) applyArticleDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "articles.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.article_id = articles.id AND comments.is_deleted = ?) AS comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.article_id = articles.id AND likes.is_deleted = ?) AS likes_count"

	if currentUserID != 0 {
		return db.Select(
			selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.article_id = articles.id AND likes.user_id = ? AND likes.is_deleted = ?) AS liked",
			false, false, currentUserID, false,
		)
	}

	return db.Select(selectQuery+", ? AS liked", false, false, false)
}

func (r *articleRepository) GetActiveByID(ctx context.Context, id uint, currentUserID uint) (*models.Article, error) {
	var article models.Article
	err := r.applyArticleDetails(r.db.WithContext(ctx), currentUserID).
		Scopes(notDeleted("articles")).
		Preload("Author").
		First(&article, id).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) GetVisibleByID(ctx context.Context, id uint, currentUserID uint) (*models.Article, error) {
	defer observability.TrackQuery("get", "articles")()

	var article models.Article

	fetch := func() error {
		return r.applyArticleDetails(r.db.WithContext(ctx), currentUserID).
			Scopes(notDeleted("articles")).
			Where("articles.is_published = ?", true).
			Preload("Author").
			First(&article, id).Error
	}

	// Only anonymous reads hit the cache: the liked flag is per-user.
	if currentUserID == 0 {
		if err := cache.Aside(ctx, cache.ArticleKey(id), &article, cache.ArticleTTL, fetch); err != nil {
			return nil, err
		}
		return &article, nil
	}

	if err := fetch(); err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) GetAnyByID(ctx context.Context, id uint) (*models.Article, error) {
	var article models.Article
	err := r.applyArticleDetails(r.db.WithContext(ctx), 0).
		Preload("Author").
		First(&article, id).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// cachedArticlePage is the stored shape of the front-page listing.
type cachedArticlePage struct {
	Articles []*models.Article
	Total    int64
}

func (r *articleRepository) List(ctx context.Context, filters ArticleFilters, limit, offset int, currentUserID uint) ([]*models.Article, int64, error) {
	defer observability.TrackQuery("list", "articles")()

	visible := func(db *gorm.DB) *gorm.DB {
		return filters.Apply(
			db.Scopes(notDeleted("articles")).
				Where("articles.is_published = ?", true),
		)
	}

	fetch := func() ([]*models.Article, int64, error) {
		var total int64
		if err := visible(r.db.WithContext(ctx).Model(&models.Article{})).Count(&total).Error; err != nil {
			return nil, 0, err
		}

		var articles []*models.Article
		err := visible(r.applyArticleDetails(r.db.WithContext(ctx), currentUserID)).
			Preload("Author").
			Order(filters.Order()).
			Limit(limit).
			Offset(offset).
			Find(&articles).Error
		if err != nil {
			return nil, 0, err
		}
		return articles, total, nil
	}

	// Only the anonymous, unfiltered first page is cached: the liked flag is
	// per-user and any filter or later page wants its own slice.
	if currentUserID == 0 && offset == 0 && filters == (ArticleFilters{}) {
		var page cachedArticlePage
		err := cache.Aside(ctx, cache.ArticleListKey, &page, cache.ListTTL, func() error {
			articles, total, err := fetch()
			if err != nil {
				return err
			}
			page = cachedArticlePage{Articles: articles, Total: total}
			return nil
		})
		if err != nil {
			return nil, 0, err
		}
		return page.Articles, page.Total, nil
	}

	return fetch()
}

func (r *articleRepository) ListAll(ctx context.Context, limit, offset int) ([]*models.Article, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Article{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var articles []*models.Article
	err := r.applyArticleDetails(r.db.WithContext(ctx), 0).
		Preload("Author").
		Order("articles.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

func (r *articleRepository) Update(ctx context.Context, article *models.Article) error {
	if err := r.db.WithContext(ctx).Save(article).Error; err != nil {
		return translateWriteError(err)
	}
	cache.InvalidateArticle(ctx, article.ID)
	return nil
}

func (r *articleRepository) SoftDelete(ctx context.Context, article *models.Article) error {
	article.MarkDeleted(time.Now().UTC())
	if err := r.db.WithContext(ctx).Save(article).Error; err != nil {
		return err
	}
	cache.InvalidateArticle(ctx, article.ID)
	return nil
}

func (r *articleRepository) Restore(ctx context.Context, article *models.Article) error {
	article.Restore()
	// Restoring can reintroduce an (author, title) collision with an article
	// created while this one was deleted.
	if err := r.db.WithContext(ctx).Save(article).Error; err != nil {
		return translateWriteError(err)
	}
	cache.InvalidateArticle(ctx, article.ID)
	return nil
}

// HardDelete physically removes the row. Not exposed through standard CRUD.
func (r *articleRepository) HardDelete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Article{}, id).Error; err != nil {
		return err
	}
	cache.InvalidateArticle(ctx, id)
	return nil
}
