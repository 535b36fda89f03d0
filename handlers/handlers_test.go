package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twyster/engine"
	"twyster/handlers"
	"twyster/media"
	"twyster/routes"
	"twyster/store"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)
	handlers.Use(engine.New(store.NewMemory(), media.Discard{}))
	return routes.SetupRouter()
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := map[string]interface{}{}
	if len(w.Body.Bytes()) > 0 && w.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func signup(t *testing.T, router *gin.Engine, username string) string {
	t.Helper()
	w, resp := doJSON(t, router, http.MethodPost, "/api/auth/signup", "", gin.H{
		"username": username,
		"fullName": username + " Fullname",
		"email":    username + "@example.com",
		"password": "s3cret99",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	token, _ := resp["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestSignupAndLogin(t *testing.T) {
	router := newTestRouter(t)
	signup(t, router, "alice")

	w, resp := doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "alice",
		"password": "s3cret99",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, resp["token"])

	w, _ = doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "alice",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Duplicate signup conflicts.
	w, _ = doJSON(t, router, http.MethodPost, "/api/auth/signup", "", gin.H{
		"username": "alice",
		"fullName": "Alice Again",
		"email":    "alice2@example.com",
		"password": "s3cret99",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	w, _ := doJSON(t, router, http.MethodPost, "/api/posts/create", "", gin.H{"text": "hi"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doJSON(t, router, http.MethodGet, "/api/posts/all", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPostLifecycle(t *testing.T) {
	router := newTestRouter(t)
	aliceToken := signup(t, router, "alice")
	bobToken := signup(t, router, "bob")

	// Create.
	w, resp := doJSON(t, router, http.MethodPost, "/api/posts/create", aliceToken, gin.H{"text": "hello"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	post := resp["post"].(map[string]interface{})
	postID := post["id"].(string)

	// Text or image is required.
	w, _ = doJSON(t, router, http.MethodPost, "/api/posts/create", aliceToken, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Like toggles.
	w, resp = doJSON(t, router, http.MethodPost, "/api/posts/like/"+postID, bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["likes"], 1)

	w, resp = doJSON(t, router, http.MethodPost, "/api/posts/like/"+postID, bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["likes"], 0)

	// Comment.
	w, resp = doJSON(t, router, http.MethodPost, "/api/posts/comment/"+postID, bobToken, gin.H{"text": "nice"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["comments"], 1)

	// Only the owner deletes.
	w, _ = doJSON(t, router, http.MethodDelete, "/api/posts/"+postID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = doJSON(t, router, http.MethodDelete, "/api/posts/"+postID, aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, router, http.MethodDelete, "/api/posts/"+postID, aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRetweetConflicts(t *testing.T) {
	router := newTestRouter(t)
	aliceToken := signup(t, router, "alice")
	bobToken := signup(t, router, "bob")
	carolToken := signup(t, router, "carol")

	w, resp := doJSON(t, router, http.MethodPost, "/api/posts/create", aliceToken, gin.H{"text": "hello"})
	require.Equal(t, http.StatusCreated, w.Code)
	postID := resp["post"].(map[string]interface{})["id"].(string)

	w, resp = doJSON(t, router, http.MethodPost, "/api/posts/retweet/"+postID, bobToken, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	recordID := resp["post"].(map[string]interface{})["id"].(string)

	w, resp = doJSON(t, router, http.MethodPost, "/api/posts/retweet/"+postID, bobToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "already_retweeted_by_user", resp["errorType"])

	w, resp = doJSON(t, router, http.MethodPost, "/api/posts/retweet/"+recordID, carolToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "already_retweeted_post", resp["errorType"])
}

func TestFeedsAndFollow(t *testing.T) {
	router := newTestRouter(t)
	aliceToken := signup(t, router, "alice")
	bobToken := signup(t, router, "bob")

	w, _ := doJSON(t, router, http.MethodPost, "/api/posts/create", aliceToken, gin.H{"text": "from alice"})
	require.Equal(t, http.StatusCreated, w.Code)

	// Following feed is empty before following anyone.
	req := httptest.NewRequest(http.MethodGet, "/api/posts/following", nil)
	req.Header.Set("Authorization", "Bearer "+bobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var feed []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feed))
	assert.Empty(t, feed)

	// Find alice's id via her profile and follow her.
	req = httptest.NewRequest(http.MethodGet, "/api/users/profile/alice", nil)
	req.Header.Set("Authorization", "Bearer "+bobToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Nil(t, profile["password"], "password must never serialize")
	aliceID := profile["id"].(string)

	w, _ = doJSON(t, router, http.MethodPost, "/api/users/follow/"+aliceID, bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/posts/following", nil)
	req.Header.Set("Authorization", "Bearer "+bobToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feed))
	require.Len(t, feed, 1)
	assert.Equal(t, "from alice", feed[0]["text"])
}

func TestNotificationsFlow(t *testing.T) {
	router := newTestRouter(t)
	aliceToken := signup(t, router, "alice")
	bobToken := signup(t, router, "bob")

	w, resp := doJSON(t, router, http.MethodPost, "/api/posts/create", aliceToken, gin.H{"text": "hello"})
	require.Equal(t, http.StatusCreated, w.Code)
	postID := resp["post"].(map[string]interface{})["id"].(string)

	w, _ = doJSON(t, router, http.MethodPost, "/api/posts/like/"+postID, bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/notifications", nil)
	req.Header.Set("Authorization", "Bearer "+aliceToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var notifications []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &notifications))
	require.Len(t, notifications, 1)
	assert.Equal(t, "like", notifications[0]["type"])
	fromUser := notifications[0]["fromUser"].(map[string]interface{})
	assert.Equal(t, "bob", fromUser["username"])

	w, _ = doJSON(t, router, http.MethodDelete, "/api/notifications", aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/notifications", nil)
	req.Header.Set("Authorization", "Bearer "+aliceToken)
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &notifications))
	assert.Empty(t, notifications)
}

func TestBookmarkFlow(t *testing.T) {
	router := newTestRouter(t)
	aliceToken := signup(t, router, "alice")
	bobToken := signup(t, router, "bob")

	w, resp := doJSON(t, router, http.MethodPost, "/api/posts/create", aliceToken, gin.H{"text": "hello"})
	require.Equal(t, http.StatusCreated, w.Code)
	postID := resp["post"].(map[string]interface{})["id"].(string)

	w, resp = doJSON(t, router, http.MethodPost, "/api/posts/bookmark/"+postID, bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bookmarked_by_user", resp["messageType"])

	w, resp = doJSON(t, router, http.MethodPost, "/api/posts/bookmark/"+postID, bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "unbookmarked_by_user", resp["messageType"])

}
