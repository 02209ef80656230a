package server

import (
	"time"

	"inkwell/internal/models"
)

// Response shapes are explicit types rather than serialized models, so the
// wire format of each endpoint is visible in one place and model changes
// cannot leak new fields to clients by accident.

// AuthorView identifies a user on article and comment payloads.
type AuthorView struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// ArticleSummary is the list-item shape of an article.
type ArticleSummary struct {
	ID            uint       `json:"id"`
	Title         string     `json:"title"`
	Tags          string     `json:"tags"`
	TagList       []string   `json:"tag_list"`
	Author        AuthorView `json:"author"`
	IsPublished   bool       `json:"is_published"`
	LikesCount    int        `json:"likes_count"`
	CommentsCount int        `json:"comments_count"`
	Liked         bool       `json:"liked"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ArticleDetail is the single-article shape, with full content and the
// caller's relationship to it.
type ArticleDetail struct {
	ArticleSummary
	Content string `json:"content"`
	IsOwner bool   `json:"is_owner"`
}

// CommentView is the wire shape of a comment.
type CommentView struct {
	ID        uint       `json:"id"`
	Text      string     `json:"text"`
	Author    AuthorView `json:"author"`
	ArticleID uint       `json:"article_id"`
	IsOwner   bool       `json:"is_owner"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CommentDetail is the single-comment shape, with the caller's delete
// permission resolved server-side.
type CommentDetail struct {
	CommentView
	CanDelete bool `json:"can_delete"`
}

// LikeView is the wire shape of a like.
type LikeView struct {
	ID        uint       `json:"id"`
	User      AuthorView `json:"user"`
	ArticleID uint       `json:"article_id"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToggleLikeView reports the result of a like toggle.
type ToggleLikeView struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likes_count"`
}

// ProfileView is the caller's own account shape.
type ProfileView struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"created_at"`
}

// PublicProfileView is another user's account shape; no email.
type PublicProfileView struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminArticleView extends the summary with soft-deletion state for the
// administrative listing.
type AdminArticleView struct {
	ArticleSummary
	Content   string     `json:"content"`
	IsDeleted bool       `json:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at"`
}

func newAuthorView(u models.User) AuthorView {
	return AuthorView{ID: u.ID, Username: u.Username}
}

func newArticleSummary(a *models.Article) ArticleSummary {
	return ArticleSummary{
		ID:            a.ID,
		Title:         a.Title,
		Tags:          a.Tags,
		TagList:       a.TagList(),
		Author:        newAuthorView(a.Author),
		IsPublished:   a.IsPublished,
		LikesCount:    a.LikesCount,
		CommentsCount: a.CommentsCount,
		Liked:         a.Liked,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func newArticleSummaries(articles []*models.Article) []ArticleSummary {
	views := make([]ArticleSummary, 0, len(articles))
	for _, a := range articles {
		views = append(views, newArticleSummary(a))
	}
	return views
}

func newArticleDetail(a *models.Article, currentUserID uint) ArticleDetail {
	return ArticleDetail{
		ArticleSummary: newArticleSummary(a),
		Content:        a.Content,
		IsOwner:        currentUserID != 0 && a.AuthorID == currentUserID,
	}
}

func newCommentView(cm *models.Comment, currentUserID uint) CommentView {
	return CommentView{
		ID:        cm.ID,
		Text:      cm.Text,
		Author:    newAuthorView(cm.User),
		ArticleID: cm.ArticleID,
		IsOwner:   currentUserID != 0 && cm.UserID == currentUserID,
		CreatedAt: cm.CreatedAt,
		UpdatedAt: cm.UpdatedAt,
	}
}

func newCommentViews(comments []*models.Comment, currentUserID uint) []CommentView {
	views := make([]CommentView, 0, len(comments))
	for _, cm := range comments {
		views = append(views, newCommentView(cm, currentUserID))
	}
	return views
}

func newCommentDetail(cm *models.Comment, currentUserID uint, canDelete bool) CommentDetail {
	return CommentDetail{
		CommentView: newCommentView(cm, currentUserID),
		CanDelete:   canDelete,
	}
}

func newLikeView(l *models.Like) LikeView {
	return LikeView{
		ID:        l.ID,
		User:      newAuthorView(l.User),
		ArticleID: l.ArticleID,
		CreatedAt: l.CreatedAt,
	}
}

func newLikeViews(likes []*models.Like) []LikeView {
	views := make([]LikeView, 0, len(likes))
	for _, l := range likes {
		views = append(views, newLikeView(l))
	}
	return views
}

func newProfileView(u *models.User) ProfileView {
	return ProfileView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Bio:       u.Bio,
		CreatedAt: u.CreatedAt,
	}
}

func newPublicProfileView(u *models.User) PublicProfileView {
	return PublicProfileView{
		ID:        u.ID,
		Username:  u.Username,
		Bio:       u.Bio,
		CreatedAt: u.CreatedAt,
	}
}

func newAdminArticleView(a *models.Article) AdminArticleView {
	return AdminArticleView{
		ArticleSummary: newArticleSummary(a),
		Content:        a.Content,
		IsDeleted:      a.IsDeleted,
		DeletedAt:      a.DeletedAt,
	}
}

func newAdminArticleViews(articles []*models.Article) []AdminArticleView {
	views := make([]AdminArticleView, 0, len(articles))
	for _, a := range articles {
		views = append(views, newAdminArticleView(a))
	}
	return views
}
