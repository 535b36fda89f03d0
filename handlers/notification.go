package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetNotifications(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	notifications, err := eng.ListNotifications(ctx, userID)
	if err != nil {
		respondError(c, "GetNotifications", err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func DeleteNotifications(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := eng.ClearNotifications(ctx, userID); err != nil {
		respondError(c, "DeleteNotifications", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notifications deleted successfully"})
}
