package models

// Comment represents a remark attached to an article. Comments read in
// conversational order, oldest first.
type Comment struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Text      string  `gorm:"size:1000;not null" json:"text"`
	UserID    uint    `gorm:"not null;index" json:"user_id"`
	ArticleID uint    `gorm:"not null;index" json:"article_id"`
	User      User    `gorm:"foreignKey:UserID" json:"user"`
	Article   Article `gorm:"foreignKey:ArticleID" json:"article,omitempty"`
	SoftDelete
}
