// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

var tagPool = []string{
	"go", "databases", "testing", "writing", "career", "opinion",
	"tutorial", "devops", "web", "cli", "performance", "tooling",
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("Password123!x"), bcrypt.DefaultCost)
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Password: string(hashed),
		Bio:      gofakeit.Sentence(10),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildArticle constructs an article without persisting it, for batching.
func (f *Factory) BuildArticle(author *models.User, overrides ...func(*models.Article)) *models.Article {
	tagCount := f.rand.Intn(4)
	tags := make([]string, 0, tagCount)
	for _, i := range f.rand.Perm(len(tagPool))[:tagCount] {
		tags = append(tags, tagPool[i])
	}

	article := &models.Article{
		Title:       gofakeit.Sentence(6),
		Content:     gofakeit.Paragraph(3, 5, 12, "\n\n"),
		Tags:        strings.Join(tags, ","),
		IsPublished: f.rand.Intn(10) != 0,
		AuthorID:    author.ID,
	}

	// realistic created_at spread over the last 90 days
	daysBack := f.rand.Intn(90)
	hoursBack := f.rand.Intn(24)
	article.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)
	article.UpdatedAt = article.CreatedAt

	for _, override := range overrides {
		override(article)
	}
	return article
}

// CreateArticle constructs and persists a sample article.
func (f *Factory) CreateArticle(author *models.User, overrides ...func(*models.Article)) (*models.Article, error) {
	article := f.BuildArticle(author, overrides...)
	if err := f.db.Create(article).Error; err != nil {
		return nil, err
	}
	return article, nil
}

// CreateComment constructs and persists a sample comment on an article.
func (f *Factory) CreateComment(user *models.User, article *models.Article, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Text:      gofakeit.Sentence(12),
		UserID:    user.ID,
		ArticleID: article.ID,
	}
	comment.CreatedAt = article.CreatedAt.Add(time.Duration(f.rand.Intn(72)) * time.Hour)
	comment.UpdatedAt = comment.CreatedAt

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like, ignoring duplicates so callers can pick random
// user/article pairs without tracking what they already generated.
func (f *Factory) CreateLike(user *models.User, article *models.Article) (*models.Like, error) {
	like := &models.Like{
		UserID:    user.ID,
		ArticleID: article.ID,
	}
	err := f.db.Where("user_id = ? AND article_id = ? AND is_deleted = ?", user.ID, article.ID, false).
		FirstOrCreate(like).Error
	if err != nil {
		return nil, err
	}
	return like, nil
}
