package seed

import (
	"fmt"
	"log"
	"time"

	"inkwell/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures a seeding run.
type Options struct {
	NumUsers    int
	NumArticles int
	ShouldClean bool
}

// Run populates the database with demo users, articles, comments, and likes.
// A handful of articles and comments end up soft-deleted so deletion
// semantics are visible in seeded environments.
func Run(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 10
	}
	if opts.NumArticles <= 0 {
		opts.NumArticles = 30
	}

	if opts.ShouldClean {
		log.Println("Cleaning existing data...")
		for _, table := range []string{"likes", "comments", "articles", "users"} {
			if err := db.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("cleaning %s: %w", table, err)
			}
		}
	}

	factory := NewFactory(db)

	admin, err := createAdmin(db)
	if err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}

	users := []*models.User{admin}
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("creating user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Created %d users", len(users))

	var articles []*models.Article
	for i := 0; i < opts.NumArticles; i++ {
		author := users[i%len(users)]
		article, err := factory.CreateArticle(author)
		if err != nil {
			return fmt.Errorf("creating article: %w", err)
		}
		articles = append(articles, article)
	}
	log.Printf("Created %d articles", len(articles))

	comments := 0
	likes := 0
	for _, article := range articles {
		for _, user := range users {
			if factory.rand.Intn(3) == 0 {
				if _, err := factory.CreateComment(user, article); err != nil {
					return fmt.Errorf("creating comment: %w", err)
				}
				comments++
			}
			if factory.rand.Intn(2) == 0 {
				if _, err := factory.CreateLike(user, article); err != nil {
					return fmt.Errorf("creating like: %w", err)
				}
				likes++
			}
		}
	}
	log.Printf("Created %d comments and %d likes", comments, likes)

	// Soft-delete a slice of the generated articles.
	deleted := 0
	for i, article := range articles {
		if i%10 == 9 {
			article.MarkDeleted(time.Now().UTC())
			if err := db.Save(article).Error; err != nil {
				return fmt.Errorf("soft-deleting article: %w", err)
			}
			deleted++
		}
	}
	log.Printf("Soft-deleted %d articles", deleted)

	return nil
}

func createAdmin(db *gorm.DB) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("AdminPassword1!"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &models.User{
		Username: "admin",
		Email:    "admin@inkwell.local",
		Password: string(hashed),
		Bio:      "Site administrator",
		IsAdmin:  true,
	}
	if err := db.Where("username = ?", "admin").FirstOrCreate(admin).Error; err != nil {
		return nil, err
	}
	return admin, nil
}
