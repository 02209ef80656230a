package repository

import (
	"fmt"
	"testing"

	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory sqlite database with the full schema.
// The pool is capped at one connection so every query sees the same
// in-memory store.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

var userSeq int

func createTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	userSeq++
	user := &models.User{
		Username: fmt.Sprintf("writer%d", userSeq),
		Email:    fmt.Sprintf("writer%d@example.com", userSeq),
		Password: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestArticle(t *testing.T, db *gorm.DB, author *models.User, overrides ...func(*models.Article)) *models.Article {
	t.Helper()
	userSeq++
	article := &models.Article{
		Title:       fmt.Sprintf("A Perfectly Reasonable Title %d", userSeq),
		Content:     "This body easily clears the minimum length required of a published article.",
		IsPublished: true,
		AuthorID:    author.ID,
	}
	for _, override := range overrides {
		override(article)
	}
	require.NoError(t, db.Create(article).Error)
	return article
}
