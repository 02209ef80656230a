package models

import "strings"

// Tag limits enforced on create and update alike.
const (
	MaxTags      = 10
	MaxTagLength = 50
)

// Article represents a blog post in the Inkwell application.
// The (author_id, title) pair is unique among non-deleted rows only, so a
// soft-deleted article never blocks reuse of its title by the same author.
type Article struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	AuthorID uint   `gorm:"not null;index;uniqueIndex:idx_author_title_active,where:is_deleted = false" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`
	Title    string `gorm:"size:200;not null;index;uniqueIndex:idx_author_title_active,where:is_deleted = false" json:"title"`
	Content  string `gorm:"type:text;not null" json:"content"`
	// Tags is the stored comma-separated form; TagList is the derived view.
	Tags        string `gorm:"size:500;index" json:"tags"`
	IsPublished bool   `gorm:"not null;default:true;index" json:"is_published"`
	// LikesCount is not persisted; computed at query time over active likes
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time over active comments
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting user has an active like (computed)
	Liked bool `gorm:"->" json:"liked"`
	SoftDelete
}

// TagList parses the stored tag string: split on comma, trim whitespace,
// drop empty segments, original order preserved.
func (a *Article) TagList() []string {
	return ParseTags(a.Tags)
}

// ParseTags normalizes a comma-separated tag string into a list.
func ParseTags(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
