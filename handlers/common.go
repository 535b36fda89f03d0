package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"twyster/engine"
)

var eng *engine.Engine

// Use installs the engine all handlers delegate to.
func Use(e *engine.Engine) { eng = e }

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// principal returns the authenticated user's id, set by the JWT middleware.
func principal(c *gin.Context) (primitive.ObjectID, bool) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return primitive.NilObjectID, false
	}
	return userID, true
}

func pathID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// respondError maps engine error kinds to HTTP statuses. Unexpected errors
// are logged and reported as a bare internal error.
func respondError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrAlreadyRetweetedPost):
		c.JSON(http.StatusConflict, gin.H{
			"errorType": "already_retweeted_post",
			"error":     "This post has already been retweeted",
		})
	case errors.Is(err, engine.ErrAlreadyRetweetedByUser):
		c.JSON(http.StatusConflict, gin.H{
			"errorType": "already_retweeted_by_user",
			"error":     "You have already retweeted this post",
		})
	case errors.Is(err, engine.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("[%s] %v", op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
