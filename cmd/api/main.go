// main.go - The entry point and router setup.

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agrisense/farm_assist_gemini/configs"
	"github.com/agrisense/farm_assist_gemini/internal/api"
	"github.com/agrisense/farm_assist_gemini/internal/storage"
	"github.com/gin-gonic/gin"
)

func main() {
	// Step 0: Load configuration from environment variables
	configs.LoadConfig()

	if ginMode := os.Getenv("GIN_MODE"); ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Step 1: Create the UPLOAD_DIR folder if it doesn't exist
	if err := os.MkdirAll(configs.UPLOAD_DIR, 0755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	// Step 1.5: Initialize MongoDB connection
	if err := storage.InitMongoDB(); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer storage.CloseMongoDB()

	// Step 2: Wire the AI provider, chat manager and weather client
	if err := api.InitHandlers(); err != nil {
		log.Fatalf("Failed to initialize handlers: %v", err)
	}

	// Step 3: Initialize the Gin router
	router := gin.Default()

	// CORS middleware - configure allowed origins for production
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", configs.ALLOWED_ORIGINS)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Root endpoint for SSL verification
	router.GET("/", func(c *gin.Context) {
		c.String(200, "ok")
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "farm-assist",
			"version": "1.0.0",
		})
	})

	// Step 4: Define the API routes
	v1 := router.Group("/api/v1")

	v1.POST("/auth/register", api.RegisterHandler)
	v1.POST("/auth/login", api.LoginHandler)

	authed := v1.Group("")
	authed.Use(api.AuthMiddleware())
	{
		authed.GET("/profile", api.GetProfileHandler)
		authed.PUT("/profile", api.UpdateProfileHandler)

		authed.POST("/tasks", api.CreateTaskHandler)
		authed.GET("/tasks", api.ListTasksHandler)
		authed.PUT("/tasks/:id", api.UpdateTaskHandler)
		authed.DELETE("/tasks/:id", api.DeleteTaskHandler)

		authed.POST("/inventory", api.CreateInventoryHandler)
		authed.GET("/inventory", api.ListInventoryHandler)
		authed.DELETE("/inventory/:id", api.DeleteInventoryHandler)

		authed.POST("/pests", api.CreatePestRecordHandler)
		authed.GET("/pests", api.ListPestRecordsHandler)

		authed.GET("/market", api.ListMarketPricesHandler)
		authed.GET("/weather", api.GetWeatherHandler)

		authed.POST("/identify", api.IdentifyHandler)
		authed.GET("/history", api.ListHistoryHandler)
		authed.POST("/history/notes", api.AddHistoryNotesHandler)

		authed.POST("/chat/:session/messages", api.SendChatHandler)
		authed.GET("/chat/:session/messages", api.ListChatMessagesHandler)
	}

	// Step 5: Setup HTTP server with timeouts
	srv := &http.Server{
		Addr:           ":" + configs.PORT,
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   2 * time.Minute, // Allow time for vision model calls
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Printf("Starting server on :%s", configs.PORT)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
