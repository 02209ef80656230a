package service

import (
	"context"
	"strings"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func validCreateInput() CreateArticleInput {
	return CreateArticleInput{
		AuthorID: 1,
		Title:    "A Perfectly Reasonable Title",
		Content:  strings.Repeat("All work and no play makes Jack a dull boy. ", 3),
		Tags:     "go, testing",
	}
}

func TestCreateArticle_Valid(t *testing.T) {
	t.Parallel()

	repo := noopArticleRepo()
	var created *models.Article
	repo.createFn = func(_ context.Context, a *models.Article) error {
		a.ID = 42
		created = a
		return nil
	}
	repo.getActiveByIDFn = func(_ context.Context, id, _ uint) (*models.Article, error) {
		require.Equal(t, uint(42), id)
		return created, nil
	}
	svc := NewArticleService(repo, neverAdmin)

	article, err := svc.CreateArticle(context.Background(), validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, "A Perfectly Reasonable Title", article.Title)
	assert.Equal(t, "go,testing", article.Tags)
	assert.True(t, article.IsPublished, "publication defaults to true")
}

func TestCreateArticle_CollectsAllFieldErrors(t *testing.T) {
	t.Parallel()

	repo := noopArticleRepo()
	repo.createFn = func(_ context.Context, _ *models.Article) error {
		t.Fatal("create must not be reached on invalid input")
		return nil
	}
	svc := NewArticleService(repo, neverAdmin)

	_, err := svc.CreateArticle(context.Background(), CreateArticleInput{
		AuthorID: 1,
		Title:    "tiny",
		Content:  "too short",
		Tags:     "a,b,c,d,e,f,g,h,i,j,k",
	})
	assertKind(t, err, models.KindValidation)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	fields := make([]string, 0, len(appErr.Fields))
	for _, f := range appErr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"title", "content", "tags"}, fields)
}

func TestCreateArticle_TitleBounds(t *testing.T) {
	t.Parallel()

	svc := NewArticleService(noopArticleRepo(), neverAdmin)

	in := validCreateInput()
	in.Title = strings.Repeat("x", 201)
	_, err := svc.CreateArticle(context.Background(), in)
	assertKind(t, err, models.KindValidation)

	in.Title = strings.Repeat("x", 200)
	_, err = svc.CreateArticle(context.Background(), in)
	assert.NoError(t, err)
}

func TestCreateArticle_TitleMeasuredAfterTrim(t *testing.T) {
	t.Parallel()

	repo := noopArticleRepo()
	var created *models.Article
	repo.createFn = func(_ context.Context, a *models.Article) error {
		created = a
		return nil
	}
	svc := NewArticleService(repo, neverAdmin)

	// Padding must not push a two-rune title past the minimum.
	in := validCreateInput()
	in.Title = "  ab  "
	_, err := svc.CreateArticle(context.Background(), in)
	assertKind(t, err, models.KindValidation)
	assert.Nil(t, created)

	// Nor may surrounding whitespace count against the maximum.
	in.Title = "  " + strings.Repeat("x", 200) + "  "
	_, err = svc.CreateArticle(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, strings.Repeat("x", 200), created.Title)
}

func TestUpdateArticle_TitleMeasuredAfterTrim(t *testing.T) {
	t.Parallel()

	repo := noopArticleRepo()
	repo.getActiveByIDFn = func(_ context.Context, id, _ uint) (*models.Article, error) {
		return &models.Article{ID: id, AuthorID: 1, Title: "An Existing Article", Content: strings.Repeat("z", 60)}, nil
	}
	repo.updateFn = func(_ context.Context, _ *models.Article) error {
		t.Fatal("update must not be reached on invalid input")
		return nil
	}
	svc := NewArticleService(repo, neverAdmin)

	title := "  ab  "
	_, err := svc.UpdateArticle(context.Background(), UpdateArticleInput{
		UserID:    1,
		ArticleID: 1,
		Title:     &title,
	})
	assertKind(t, err, models.KindValidation)
}

func TestCreateArticle_DuplicateTitle(t *testing.T) {
	t.Parallel()

	repo := noopArticleRepo()
	repo.createFn = func(_ context.Context, _ *models.Article) error {
		return repository.ErrDuplicate
	}
	svc := NewArticleService(repo, neverAdmin)

	_, err := svc.CreateArticle(context.Background(), validCreateInput())
	assertKind(t, err, models.KindConflict)
	assert.Contains(t, err.Error(), "already have an article with this title")
}

func TestGetArticle_NotFound(t *testing.T) {
	t.Parallel()

	repo := noopArticleRepo()
	repo.getVisibleByIDFn = func(_ context.Context, _, _ uint) (*models.Article, error) {
		return nil, gorm.ErrRecordNotFound
	}
	svc := NewArticleService(repo, neverAdmin)

	_, err := svc.GetArticle(context.Background(), 99, 0)
	assertKind(t, err, models.KindNotFound)
	assert.Equal(t, "Article not found", err.Error())
}

func TestUpdateArticle_NotOwner(t *testing.T) {
	t.Parallel()

	repo := noopArticleRepo()
	repo.getActiveByIDFn = func(_ context.Context, _, _ uint) (*models.Article, error) {
		return &models.Article{ID: 1, AuthorID: 7, Title: "Someone Else's Article", Content: strings.Repeat("z", 60)}, nil
	}
	svc := NewArticleService(repo, neverAdmin)

	title := "A New Title Entirely"
	_, err := svc.UpdateArticle(context.Background(), UpdateArticleInput{
		UserID:    2,
		ArticleID: 1,
		Title:     &title,
	})
	assertKind(t, err, models.KindForbidden)
}

func TestUpdateArticle_NotFoundBeforeForbidden(t *testing.T) {
	t.Parallel()

	// A stranger probing a missing article learns nothing about ownership.
	repo := noopArticleRepo()
	repo.getActiveByIDFn = func(_ context.Context, _, _ uint) (*models.Article, error) {
		return nil, gorm.ErrRecordNotFound
	}
	svc := NewArticleService(repo, neverAdmin)

	_, err := svc.UpdateArticle(context.Background(), UpdateArticleInput{UserID: 2, ArticleID: 1})
	assertKind(t, err, models.KindNotFound)
}

func TestUpdateArticle_PartialKeepsUntouchedFields(t *testing.T) {
	t.Parallel()

	existing := &models.Article{
		ID:       1,
		AuthorID: 1,
		Title:    "The Original Title",
		Content:  strings.Repeat("Original content keeps its place in the record. ", 2),
		Tags:     "go,testing",
	}
	repo := noopArticleRepo()
	repo.getActiveByIDFn = func(_ context.Context, _, _ uint) (*models.Article, error) {
		return existing, nil
	}
	var updated *models.Article
	repo.updateFn = func(_ context.Context, a *models.Article) error {
		updated = a
		return nil
	}
	svc := NewArticleService(repo, neverAdmin)

	title := "A Revised Title Here"
	_, err := svc.UpdateArticle(context.Background(), UpdateArticleInput{
		UserID:    1,
		ArticleID: 1,
		Title:     &title,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "A Revised Title Here", updated.Title)
	assert.Equal(t, "go,testing", updated.Tags)
	assert.Contains(t, updated.Content, "Original content")
}

func TestUpdateArticle_DuplicateTitle(t *testing.T) {
	t.Parallel()

	repo := noopArticleRepo()
	repo.updateFn = func(_ context.Context, _ *models.Article) error {
		return repository.ErrDuplicate
	}
	svc := NewArticleService(repo, neverAdmin)

	title := "A Title Someone Took"
	_, err := svc.UpdateArticle(context.Background(), UpdateArticleInput{
		UserID:    1,
		ArticleID: 1,
		Title:     &title,
	})
	assertKind(t, err, models.KindConflict)
}

func TestDeleteArticle(t *testing.T) {
	t.Parallel()

	t.Run("owner can delete", func(t *testing.T) {
		t.Parallel()
		repo := noopArticleRepo()
		deleted := false
		repo.softDeleteFn = func(_ context.Context, _ *models.Article) error {
			deleted = true
			return nil
		}
		svc := NewArticleService(repo, neverAdmin)

		require.NoError(t, svc.DeleteArticle(context.Background(), 1, 1))
		assert.True(t, deleted)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		t.Parallel()
		svc := NewArticleService(noopArticleRepo(), neverAdmin)

		err := svc.DeleteArticle(context.Background(), 2, 1)
		assertKind(t, err, models.KindForbidden)
	})

	t.Run("admin can delete anyone's", func(t *testing.T) {
		t.Parallel()
		repo := noopArticleRepo()
		deleted := false
		repo.softDeleteFn = func(_ context.Context, _ *models.Article) error {
			deleted = true
			return nil
		}
		svc := NewArticleService(repo, alwaysAdmin)

		require.NoError(t, svc.DeleteArticle(context.Background(), 2, 1))
		assert.True(t, deleted)
	})
}

func TestRestoreArticle(t *testing.T) {
	t.Parallel()

	deletedArticle := func() *models.Article {
		a := &models.Article{ID: 1, AuthorID: 1, Title: "Gone But Not Forgotten", Content: strings.Repeat("q", 60)}
		a.IsDeleted = true
		return a
	}

	t.Run("non-admin is forbidden", func(t *testing.T) {
		t.Parallel()
		svc := NewArticleService(noopArticleRepo(), neverAdmin)

		_, err := svc.RestoreArticle(context.Background(), 1, 1)
		assertKind(t, err, models.KindForbidden)
	})

	t.Run("active article is not restorable", func(t *testing.T) {
		t.Parallel()
		svc := NewArticleService(noopArticleRepo(), alwaysAdmin)

		_, err := svc.RestoreArticle(context.Background(), 1, 1)
		assertKind(t, err, models.KindValidation)
	})

	t.Run("restore succeeds", func(t *testing.T) {
		t.Parallel()
		repo := noopArticleRepo()
		repo.getAnyByIDFn = func(_ context.Context, _ uint) (*models.Article, error) {
			return deletedArticle(), nil
		}
		restored := false
		repo.restoreFn = func(_ context.Context, _ *models.Article) error {
			restored = true
			return nil
		}
		svc := NewArticleService(repo, alwaysAdmin)

		_, err := svc.RestoreArticle(context.Background(), 1, 1)
		require.NoError(t, err)
		assert.True(t, restored)
	})

	t.Run("restore collides with newer active title", func(t *testing.T) {
		t.Parallel()
		repo := noopArticleRepo()
		repo.getAnyByIDFn = func(_ context.Context, _ uint) (*models.Article, error) {
			return deletedArticle(), nil
		}
		repo.restoreFn = func(_ context.Context, _ *models.Article) error {
			return repository.ErrDuplicate
		}
		svc := NewArticleService(repo, alwaysAdmin)

		_, err := svc.RestoreArticle(context.Background(), 1, 1)
		assertKind(t, err, models.KindConflict)
	})
}

func TestHardDeleteArticle_AdminOnly(t *testing.T) {
	t.Parallel()

	svc := NewArticleService(noopArticleRepo(), neverAdmin)
	err := svc.HardDeleteArticle(context.Background(), 1, 1)
	assertKind(t, err, models.KindForbidden)

	repo := noopArticleRepo()
	purged := false
	repo.hardDeleteFn = func(_ context.Context, _ uint) error {
		purged = true
		return nil
	}
	svc = NewArticleService(repo, alwaysAdmin)
	require.NoError(t, svc.HardDeleteArticle(context.Background(), 1, 1))
	assert.True(t, purged)
}
