package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"twyster/database"
	"twyster/engine"
	"twyster/handlers"
	"twyster/media"
	"twyster/routes"
	"twyster/store"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("🚀 Starting Twyster Backend Server...")

	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	if os.Getenv("JWT_SECRET") == "" {
		log.Println("⚠️ JWT_SECRET not set, using insecure default")
	}

	// ===== STORAGE =====
	var st *store.Store
	if os.Getenv("MONGODB_URI") != "" {
		log.Println("🔌 Connecting to MongoDB...")

		var dbErr error
		for i := 1; i <= 3; i++ {
			if err := database.ConnectMongo(); err != nil {
				dbErr = err
				log.Printf("❌ MongoDB connection attempt %d failed: %v", i, err)
				time.Sleep(2 * time.Second)
				continue
			}
			dbErr = nil
			break
		}
		if dbErr != nil {
			log.Fatal("❌ Failed to connect to MongoDB:", dbErr)
		}
		defer database.DisconnectMongo()

		st = store.NewMongo(database.Users, database.Posts, database.Notifications)
	} else {
		log.Println("⚠️ MONGODB_URI not set, running with the in-memory store")
		st = store.NewMemory()
	}

	// ===== MEDIA =====
	var mediaStore media.Store = media.Discard{}
	if url := os.Getenv("CLOUDINARY_URL"); url != "" {
		cld, err := media.NewCloudinary(url)
		if err != nil {
			log.Fatal("❌ Cloudinary configuration error:", err)
		}
		mediaStore = cld
		log.Println("✅ Cloudinary media store configured")
	} else {
		log.Println("⚠️ CLOUDINARY_URL not set, images are stored inline")
	}

	handlers.Use(engine.New(st, mediaStore))

	// ===== GIN MODE =====
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := routes.SetupRouter()

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "Twyster Backend Running 🚀",
			"service": "healthy",
		})
	})

	router.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// ===== SERVER CONFIG =====
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🌐 Server running on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Server error:", err)
		}
	}()

	// ===== GRACEFUL SHUTDOWN =====
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("❌ Forced shutdown:", err)
	}

	log.Println("👋 Server stopped gracefully")
}
