package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"twyster/handlers"
	"twyster/middleware"
)

func SetupRouter() *gin.Engine {
	router := gin.Default()

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Twyster API is running",
			"time":    time.Now().Unix(),
		})
	})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5173", "http://127.0.0.1:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Public routes (no auth required)
	router.POST("/api/auth/signup", handlers.Signup)
	router.POST("/api/auth/login", handlers.Login)
	router.POST("/api/auth/logout", handlers.Logout)

	// Protected routes group
	protected := router.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware())

	protected.GET("/auth/me", handlers.GetMe)

	// Posts
	protected.POST("/posts/create", handlers.CreatePost)
	protected.DELETE("/posts/:id", handlers.DeletePost)
	protected.POST("/posts/comment/:id", handlers.CommentOnPost)
	protected.POST("/posts/like/:id", handlers.LikePost)
	protected.POST("/posts/retweet/:id", handlers.RetweetPost)
	protected.POST("/posts/bookmark/:id", handlers.BookmarkPost)

	// Feeds
	protected.GET("/posts/all", handlers.GetAllPosts)
	protected.GET("/posts/following", handlers.GetFollowingPosts)
	protected.GET("/posts/user/:username", handlers.GetUserPosts)
	protected.GET("/posts/likes/:id", handlers.GetLikedPosts)
	protected.GET("/posts/bookmarks", handlers.GetBookmarkedPosts)

	// Users
	protected.GET("/users/profile/:username", handlers.GetUserProfile)
	protected.GET("/users/suggested", handlers.GetSuggestedUsers)
	protected.POST("/users/follow/:id", handlers.FollowUnfollowUser)
	protected.POST("/users/update", handlers.UpdateProfile)

	// Notifications
	protected.GET("/notifications", handlers.GetNotifications)
	protected.DELETE("/notifications", handlers.DeleteNotifications)

	router.NoRoute(func(c *gin.Context) {
		if len(c.Request.URL.Path) >= 4 && c.Request.URL.Path[:4] == "/api" {
			c.JSON(404, gin.H{
				"error": "Endpoint not found",
				"path":  c.Request.URL.Path,
			})
			return
		}
		c.Next()
	})

	return router
}
