package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	ArticleKeyPrefix  = "article:%d"
	ArticleListKey    = "articles:front"
	UserKeyPrefix     = "user:%d"
	EventsChannelName = "inkwell:events"
)

const (
	ArticleTTL = 30 * time.Minute
	ListTTL    = 1 * time.Minute
	UserTTL    = 5 * time.Minute
)

func ArticleKey(articleID uint) string {
	return fmt.Sprintf(ArticleKeyPrefix, articleID)
}

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateArticle(ctx context.Context, articleID uint) {
	Invalidate(ctx, ArticleKey(articleID))
	Invalidate(ctx, ArticleListKey)
}

func InvalidateArticlesList(ctx context.Context) {
	Invalidate(ctx, ArticleListKey)
}

// Publish sends a fire-and-forget event payload to the shared events channel.
func Publish(ctx context.Context, payload []byte) {
	if client != nil {
		client.Publish(ctx, EventsChannelName, payload)
	}
}
