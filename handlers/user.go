package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"twyster/engine"
)

func GetUserProfile(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	user, err := eng.GetProfile(ctx, c.Param("username"))
	if err != nil {
		respondError(c, "GetUserProfile", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func FollowUnfollowUser(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}
	targetID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	following, err := eng.ToggleFollow(ctx, userID, targetID)
	if err != nil {
		respondError(c, "FollowUnfollowUser", err)
		return
	}

	if following {
		c.JSON(http.StatusOK, gin.H{"message": "User followed successfully"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User unfollowed successfully"})
}

func GetSuggestedUsers(c *gin.Context) {
	userID, ok := principal(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	users, err := eng.SuggestedUsers(ctx, userID)
	if err != nil {
		respondError(c, "GetSuggestedUsers", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

type UpdateProfileRequest struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Username        string `json:"username"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	Bio             string `json:"bio"`
	Link            string `json:"link"`
	ProfileImg      string `json:"profileImg"`
	CoverImg        string `json:"coverImg"`
}

func UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
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

	user, err := eng.UpdateProfile(ctx, userID, engine.ProfileChanges{
		FullName:        req.FullName,
		Email:           req.Email,
		Username:        req.Username,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		Bio:             req.Bio,
		Link:            req.Link,
		ProfileImg:      req.ProfileImg,
		CoverImg:        req.CoverImg,
	})
	if err != nil {
		respondError(c, "UpdateProfile", err)
		return
	}
	c.JSON(http.StatusOK, user)
}
