package repository

import (
	"strings"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// ArticleFilters is the stateless predicate builder for article listings.
// Every populated field contributes one conjunct against the visible set.
type ArticleFilters struct {
	// Author matches the author's username, case-insensitive exact.
	Author string
	// Title matches as a case-insensitive substring.
	Title string
	// Tags is comma-separated; each entry must appear as a substring of the
	// stored tag string (conjunction, not exact set matching).
	Tags string
	// Search is a disjunction of substring matches across title, content, and tags.
	Search string
	// Ordering is one of created_at, updated_at, likes_count, optionally
	// prefixed with "-" for descending. Anything else is ignored.
	Ordering string
}

// allowed sort columns; likes_count is a SELECT alias from the details subqueries.
var orderColumns = map[string]string{
	"created_at":  "articles.created_at",
	"updated_at":  "articles.updated_at",
	"likes_count": "likes_count",
}

// Apply adds the filter conjunction to the query. Ordering is applied
// separately via Order so callers can count without it.
func (f ArticleFilters) Apply(db *gorm.DB) *gorm.DB {
	if f.Author != "" {
		db = db.Where(
			"articles.author_id IN (SELECT id FROM users WHERE LOWER(username) = LOWER(?))",
			f.Author,
		)
	}
	if f.Title != "" {
		db = db.Where(`LOWER(articles.title) LIKE ? ESCAPE '\'`, containsPattern(f.Title))
	}
	for _, tag := range models.ParseTags(f.Tags) {
		db = db.Where(`LOWER(articles.tags) LIKE ? ESCAPE '\'`, containsPattern(tag))
	}
	if f.Search != "" {
		pattern := containsPattern(f.Search)
		db = db.Where(
			`LOWER(articles.title) LIKE ? ESCAPE '\' OR LOWER(articles.content) LIKE ? ESCAPE '\' OR LOWER(articles.tags) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern,
		)
	}
	return db
}

// Order returns the ORDER BY clause for the requested ordering. Unknown sort
// keys fall back to the default, newest first.
func (f ArticleFilters) Order() string {
	key := f.Ordering
	desc := strings.HasPrefix(key, "-")
	key = strings.TrimPrefix(key, "-")

	column, ok := orderColumns[key]
	if !ok {
		return "articles.created_at DESC"
	}
	if desc {
		return column + " DESC"
	}
	return column + " ASC"
}

// likeEscaper neutralizes LIKE metacharacters so filter values match
// literally. The LIKE clauses above declare backslash as the escape
// character, which sqlite does not assume on its own.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
