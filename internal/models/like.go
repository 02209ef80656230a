package models

// Like is a pure membership marker for (user, article). The pair is unique
// among non-deleted rows, so a user can re-like after an earlier like was
// soft-deleted; each unlike/re-like leaves its own row behind.
type Like struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	UserID    uint    `gorm:"not null;uniqueIndex:idx_user_article_active,where:is_deleted = false" json:"user_id"`
	ArticleID uint    `gorm:"not null;uniqueIndex:idx_user_article_active,where:is_deleted = false" json:"article_id"`
	User      User    `gorm:"foreignKey:UserID" json:"user"`
	Article   Article `gorm:"foreignKey:ArticleID" json:"article,omitempty"`
	SoftDelete
}
