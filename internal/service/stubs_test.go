package service

import (
	"context"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// articleRepoStub is a stub for repository.ArticleRepository.
type articleRepoStub struct {
	createFn         func(context.Context, *models.Article) error
	getActiveByIDFn  func(context.Context, uint, uint) (*models.Article, error)
	getVisibleByIDFn func(context.Context, uint, uint) (*models.Article, error)
	getAnyByIDFn     func(context.Context, uint) (*models.Article, error)
	listFn           func(context.Context, repository.ArticleFilters, int, int, uint) ([]*models.Article, int64, error)
	listAllFn        func(context.Context, int, int) ([]*models.Article, int64, error)
	updateFn         func(context.Context, *models.Article) error
	softDeleteFn     func(context.Context, *models.Article) error
	restoreFn        func(context.Context, *models.Article) error
	hardDeleteFn     func(context.Context, uint) error
}

func (s *articleRepoStub) Create(ctx context.Context, a *models.Article) error {
	return s.createFn(ctx, a)
}
func (s *articleRepoStub) GetActiveByID(ctx context.Context, id, uid uint) (*models.Article, error) {
	return s.getActiveByIDFn(ctx, id, uid)
}
func (s *articleRepoStub) GetVisibleByID(ctx context.Context, id, uid uint) (*models.Article, error) {
	return s.getVisibleByIDFn(ctx, id, uid)
}
func (s *articleRepoStub) GetAnyByID(ctx context.Context, id uint) (*models.Article, error) {
	return s.getAnyByIDFn(ctx, id)
}
func (s *articleRepoStub) List(ctx context.Context, f repository.ArticleFilters, limit, offset int, uid uint) ([]*models.Article, int64, error) {
	return s.listFn(ctx, f, limit, offset, uid)
}
func (s *articleRepoStub) ListAll(ctx context.Context, limit, offset int) ([]*models.Article, int64, error) {
	return s.listAllFn(ctx, limit, offset)
}
func (s *articleRepoStub) Update(ctx context.Context, a *models.Article) error {
	return s.updateFn(ctx, a)
}
func (s *articleRepoStub) SoftDelete(ctx context.Context, a *models.Article) error {
	return s.softDeleteFn(ctx, a)
}
func (s *articleRepoStub) Restore(ctx context.Context, a *models.Article) error {
	return s.restoreFn(ctx, a)
}
func (s *articleRepoStub) HardDelete(ctx context.Context, id uint) error {
	return s.hardDeleteFn(ctx, id)
}

func noopArticleRepo() *articleRepoStub {
	article := func() *models.Article {
		return &models.Article{
			ID:          1,
			Title:       "A Perfectly Reasonable Title",
			Content:     "This body easily clears the minimum length required of a published article.",
			IsPublished: true,
			AuthorID:    1,
		}
	}
	return &articleRepoStub{
		createFn: func(_ context.Context, _ *models.Article) error { return nil },
		getActiveByIDFn: func(_ context.Context, _, _ uint) (*models.Article, error) {
			return article(), nil
		},
		getVisibleByIDFn: func(_ context.Context, _, _ uint) (*models.Article, error) {
			return article(), nil
		},
		getAnyByIDFn: func(_ context.Context, _ uint) (*models.Article, error) {
			return article(), nil
		},
		listFn: func(_ context.Context, _ repository.ArticleFilters, _, _ int, _ uint) ([]*models.Article, int64, error) {
			return nil, 0, nil
		},
		listAllFn: func(_ context.Context, _, _ int) ([]*models.Article, int64, error) {
			return nil, 0, nil
		},
		updateFn:     func(_ context.Context, _ *models.Article) error { return nil },
		softDeleteFn: func(_ context.Context, _ *models.Article) error { return nil },
		restoreFn:    func(_ context.Context, _ *models.Article) error { return nil },
		hardDeleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn        func(context.Context, *models.Comment) error
	getActiveByIDFn func(context.Context, uint) (*models.Comment, error)
	getAnyByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByArticleFn func(context.Context, uint, int, int) ([]*models.Comment, int64, error)
	listByUserFn    func(context.Context, uint, int, int) ([]*models.Comment, int64, error)
	updateFn        func(context.Context, *models.Comment) error
	softDeleteFn    func(context.Context, *models.Comment) error
	restoreFn       func(context.Context, *models.Comment) error
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) GetActiveByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getActiveByIDFn(ctx, id)
}
func (s *commentRepoStub) GetAnyByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getAnyByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByArticle(ctx context.Context, articleID uint, limit, offset int) ([]*models.Comment, int64, error) {
	return s.listByArticleFn(ctx, articleID, limit, offset)
}
func (s *commentRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Comment, int64, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}
func (s *commentRepoStub) Update(ctx context.Context, c *models.Comment) error {
	return s.updateFn(ctx, c)
}
func (s *commentRepoStub) SoftDelete(ctx context.Context, c *models.Comment) error {
	return s.softDeleteFn(ctx, c)
}
func (s *commentRepoStub) Restore(ctx context.Context, c *models.Comment) error {
	return s.restoreFn(ctx, c)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getActiveByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, Text: "fine", UserID: 1, ArticleID: 1}, nil
		},
		getAnyByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, Text: "fine", UserID: 1, ArticleID: 1}, nil
		},
		listByArticleFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Comment, int64, error) {
			return nil, 0, nil
		},
		listByUserFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Comment, int64, error) {
			return nil, 0, nil
		},
		updateFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		softDeleteFn: func(_ context.Context, _ *models.Comment) error { return nil },
		restoreFn:    func(_ context.Context, _ *models.Comment) error { return nil },
	}
}

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	createFn                    func(context.Context, *models.Like) error
	getActiveByIDFn             func(context.Context, uint) (*models.Like, error)
	getActiveByUserAndArticleFn func(context.Context, uint, uint) (*models.Like, error)
	listByUserFn                func(context.Context, uint, int, int) ([]*models.Like, int64, error)
	softDeleteFn                func(context.Context, *models.Like) error
}

func (s *likeRepoStub) Create(ctx context.Context, l *models.Like) error {
	return s.createFn(ctx, l)
}
func (s *likeRepoStub) GetActiveByID(ctx context.Context, id uint) (*models.Like, error) {
	return s.getActiveByIDFn(ctx, id)
}
func (s *likeRepoStub) GetActiveByUserAndArticle(ctx context.Context, userID, articleID uint) (*models.Like, error) {
	return s.getActiveByUserAndArticleFn(ctx, userID, articleID)
}
func (s *likeRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Like, int64, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}
func (s *likeRepoStub) SoftDelete(ctx context.Context, l *models.Like) error {
	return s.softDeleteFn(ctx, l)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		createFn: func(_ context.Context, _ *models.Like) error { return nil },
		getActiveByIDFn: func(_ context.Context, id uint) (*models.Like, error) {
			return &models.Like{ID: id, UserID: 1, ArticleID: 1}, nil
		},
		getActiveByUserAndArticleFn: func(_ context.Context, _, _ uint) (*models.Like, error) {
			return nil, gorm.ErrRecordNotFound
		},
		listByUserFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Like, int64, error) {
			return nil, 0, nil
		},
		softDeleteFn: func(_ context.Context, _ *models.Like) error { return nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	updateFn        func(context.Context, *models.User) error
}

func (s *userRepoStub) Create(ctx context.Context, u *models.User) error {
	return s.createFn(ctx, u)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Update(ctx context.Context, u *models.User) error {
	return s.updateFn(ctx, u)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn: func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "stub", Email: "stub@example.com"}, nil
		},
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
		updateFn: func(_ context.Context, _ *models.User) error { return nil },
	}
}

func assertKind(t *testing.T, err error, kind models.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, models.IsKind(err, kind), "expected %s, got %v", kind, err)
}

func alwaysAdmin(_ context.Context, _ uint) (bool, error) { return true, nil }
func neverAdmin(_ context.Context, _ uint) (bool, error)  { return false, nil }
