package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type CreatePostRequest struct {
	Text string `json:"text"`
	Img  string `json:"img"`
}

func CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := principal(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	post, err := eng.CreatePost(ctx, userID, req.Text, req.Img)
	if err != nil {
		respondError(c, "CreatePost", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post created successfully",
		"post":    post,
	})
}

func DeletePost(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := eng.DeletePost(ctx, userID, postID); err != nil {
		respondError(c, "DeletePost", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

func CommentOnPost(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := principal(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	post, err := eng.CommentOnPost(ctx, userID, postID, req.Text)
	if err != nil {
		respondError(c, "CommentOnPost", err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func LikePost(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	post, err := eng.ToggleLike(ctx, userID, postID)
	if err != nil {
		respondError(c, "LikePost", err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func BookmarkPost(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	bookmarked, post, err := eng.ToggleBookmark(ctx, userID, postID)
	if err != nil {
		respondError(c, "BookmarkPost", err)
		return
	}

	if bookmarked {
		c.JSON(http.StatusOK, gin.H{
			"messageType": "bookmarked_by_user",
			"message":     "Post added to bookmarks",
			"post":        post,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"messageType": "unbookmarked_by_user",
		"message":     "Post removed from bookmarks",
		"post":        post,
	})
}

func RetweetPost(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	record, err := eng.RetweetPost(ctx, userID, postID)
	if err != nil {
		respondError(c, "RetweetPost", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Post retweeted successfully",
		"post":    record,
	})
}

func GetAllPosts(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	posts, err := eng.ListAll(ctx)
	if err != nil {
		respondError(c, "GetAllPosts", err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func GetFollowingPosts(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	posts, err := eng.ListFollowingFeed(ctx, userID)
	if err != nil {
		respondError(c, "GetFollowingPosts", err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func GetUserPosts(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	posts, err := eng.ListUserTimeline(ctx, c.Param("username"))
	if err != nil {
		respondError(c, "GetUserPosts", err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func GetLikedPosts(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	posts, err := eng.ListLiked(ctx, userID)
	if err != nil {
		respondError(c, "GetLikedPosts", err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func GetBookmarkedPosts(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	posts, err := eng.ListBookmarked(ctx, userID)
	if err != nil {
		respondError(c, "GetBookmarkedPosts", err)
		return
	}
	c.JSON(http.StatusOK, posts)
}
