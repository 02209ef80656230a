package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signupAdmin(t *testing.T) (string, ProfileView) {
	t.Helper()
	token, user := signupUser(t)
	makeAdmin(t, user.ID)
	return token, user
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	token, _ := signupUser(t)

	resp := doRequest(t, http.MethodGet, "/api/admin/articles", token, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	errResp := decodeError(t, resp)
	assert.Equal(t, "Admin access required", errResp.Error)

	resp = doRequest(t, http.MethodPost, "/api/admin/articles/1/restore", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// No token at all is unauthenticated, not forbidden.
	resp = doRequest(t, http.MethodGet, "/api/admin/articles", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminListArticles_IncludesHiddenRows(t *testing.T) {
	adminToken, _ := signupAdmin(t)
	authorToken, _ := signupUser(t)

	draft := createArticle(t, authorToken, fiber.Map{"is_published": false})
	deleted := createArticle(t, authorToken, nil)
	resp := doRequest(t, http.MethodDelete, fmt.Sprintf("/api/articles/%d", deleted.ID), authorToken, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	seen := map[uint]AdminArticleView{}
	for page := 1; ; page++ {
		resp := doRequest(t, http.MethodGet, fmt.Sprintf("/api/admin/articles?page=%d", page), adminToken, nil)
		if resp.StatusCode == http.StatusNotFound {
			break
		}
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var envelope struct {
			Next    *string            `json:"next"`
			Results []AdminArticleView `json:"results"`
		}
		decodeInto(t, resp, &envelope)
		for _, a := range envelope.Results {
			seen[a.ID] = a
		}
		if envelope.Next == nil {
			break
		}
	}

	require.Contains(t, seen, draft.ID, "admin listing includes drafts")
	require.Contains(t, seen, deleted.ID, "admin listing includes soft-deleted rows")
	assert.True(t, seen[deleted.ID].IsDeleted)
	assert.NotNil(t, seen[deleted.ID].DeletedAt)
	assert.False(t, seen[draft.ID].IsDeleted)
}

func TestRestoreArticle(t *testing.T) {
	adminToken, _ := signupAdmin(t)
	authorToken, _ := signupUser(t)

	article := createArticle(t, authorToken, nil)
	articlePath := fmt.Sprintf("/api/articles/%d", article.ID)
	restorePath := fmt.Sprintf("/api/admin/articles/%d/restore", article.ID)

	// Restoring an active article is invalid.
	resp := doRequest(t, http.MethodPost, restorePath, adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, http.MethodDelete, articlePath, authorToken, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, http.MethodPost, restorePath, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var restored AdminArticleView
	decodeInto(t, resp, &restored)
	assert.False(t, restored.IsDeleted)

	// Back in public view.
	resp = doRequest(t, http.MethodGet, articlePath, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRestoreArticle_TitleRetaken(t *testing.T) {
	adminToken, _ := signupAdmin(t)
	authorToken, _ := signupUser(t)

	article := createArticle(t, authorToken, nil)
	resp := doRequest(t, http.MethodDelete, fmt.Sprintf("/api/articles/%d", article.ID), authorToken, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// The author reuses the freed title, so the old row cannot come back.
	createArticle(t, authorToken, fiber.Map{"title": article.Title})

	resp = doRequest(t, http.MethodPost, fmt.Sprintf("/api/admin/articles/%d/restore", article.ID), adminToken, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestPurgeArticle(t *testing.T) {
	adminToken, _ := signupAdmin(t)
	authorToken, _ := signupUser(t)
	article := createArticle(t, authorToken, nil)

	resp := doRequest(t, http.MethodDelete, fmt.Sprintf("/api/admin/articles/%d/purge", article.ID), adminToken, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// The row is physically gone; even restore cannot find it.
	resp = doRequest(t, http.MethodPost, fmt.Sprintf("/api/admin/articles/%d/restore", article.ID), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRestoreComment(t *testing.T) {
	adminToken, _ := signupAdmin(t)
	authorToken, _ := signupUser(t)
	readerToken, _ := signupUser(t)
	article := createArticle(t, authorToken, nil)

	comment := postComment(t, readerToken, article.ID, "Deleted in haste.")
	resp := doRequest(t, http.MethodDelete, fmt.Sprintf("/api/comments/%d", comment.ID), readerToken, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, http.MethodPost, fmt.Sprintf("/api/admin/comments/%d/restore", comment.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var restored CommentView
	decodeInto(t, resp, &restored)
	assert.Equal(t, comment.ID, restored.ID)

	// Visible in the article's listing again.
	resp = doRequest(t, http.MethodGet, fmt.Sprintf("/api/articles/%d/comments", article.ID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page listEnvelope
	decodeInto(t, resp, &page)
	assert.Equal(t, int64(1), page.Count)
}

func TestHealthEndpoints(t *testing.T) {
	resp := doRequest(t, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
