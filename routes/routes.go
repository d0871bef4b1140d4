package routes

import (
	"time"

	"blogapi/database"
	"blogapi/handlers"
	"blogapi/middleware"
	"blogapi/token"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(tokens *token.Service) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "time": time.Now().Unix()})
	})

	api := router.Group("/api")

	// Credential endpoints are rate limited per IP to slow brute forcing.
	auth := api.Group("/auth")
	auth.Use(middleware.RateLimit(20, time.Minute))
	auth.POST("/register", handlers.Register)
	auth.POST("/login", handlers.Login)

	// Public reads
	api.GET("/posts", handlers.ListPosts)
	api.GET("/posts/:id", handlers.GetPost)
	api.GET("/categories", handlers.ListCategories)

	// Everything that mutates requires a valid bearer token.
	protected := api.Group("")
	protected.Use(middleware.Auth(tokens, database.UserStore{}))
	protected.GET("/auth/me", handlers.Me)
	protected.POST("/posts", handlers.CreatePost)
	protected.PUT("/posts/:id", handlers.UpdatePost)
	protected.DELETE("/posts/:id", handlers.DeletePost)
	protected.POST("/posts/:id/comments", handlers.AddComment)
	protected.POST("/categories", handlers.CreateCategory)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"success": false, "error": "Endpoint not found"})
	})

	return router
}
