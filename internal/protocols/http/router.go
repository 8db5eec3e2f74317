// Package http - REST API surface
// Thin gin handlers over the core services, plus the comment feed
// websocket endpoint.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"bloghub/internal/cache"
	"bloghub/internal/core"
	wsProtocol "bloghub/internal/protocols/websocket"
	"bloghub/pkg/config"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Server manages the HTTP REST API
type Server struct {
	router      *gin.Engine
	config      *config.Config
	authSvc     core.AuthService
	postSvc     core.PostService
	categorySvc core.CategoryService
	commentSvc  core.CommentService
	userSvc     core.UserService
	views       *cache.ViewCounter // nil when the counter is disabled
	feedHub     *wsProtocol.Hub    // nil when the live feed is disabled
}

// NewServer creates a new HTTP server with all handlers
func NewServer(
	cfg *config.Config,
	authSvc core.AuthService,
	postSvc core.PostService,
	categorySvc core.CategoryService,
	commentSvc core.CommentService,
	userSvc core.UserService,
) *Server {
	// Set Gin to release mode by default
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(LoggingMiddleware())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	s := &Server{
		router:      router,
		config:      cfg,
		authSvc:     authSvc,
		postSvc:     postSvc,
		categorySvc: categorySvc,
		commentSvc:  commentSvc,
		userSvc:     userSvc,
	}

	s.setupRoutes()
	return s
}

// SetViewCounter attaches the Redis view counter
func (s *Server) SetViewCounter(views *cache.ViewCounter) {
	s.views = views
}

// SetFeedHub attaches the websocket comment feed hub
func (s *Server) SetFeedHub(hub *wsProtocol.Hub) {
	s.feedHub = hub
}

// setupRoutes registers all HTTP routes
func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.healthCheck)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", s.register)
			auth.POST("/login", s.login)
		}

		// Post routes
		v1.GET("/posts", s.listPosts)   // Public: list, optional category filter
		v1.GET("/posts/:id", s.getPost) // Public: single post

		// Protected post routes (admin only)
		adminPosts := v1.Group("", AuthMiddleware(s.authSvc), AdminMiddleware())
		{
			adminPosts.POST("/posts", s.createPost)
			adminPosts.PUT("/posts/:id", s.updatePost)
			adminPosts.DELETE("/posts/:id", s.deletePost) // Cascades to comments
		}

		// Category routes
		v1.GET("/categories", s.listCategories)
		v1.GET("/categories/:id", s.getCategory)

		adminCategories := v1.Group("", AuthMiddleware(s.authSvc), AdminMiddleware())
		{
			adminCategories.POST("/categories", s.createCategory)
			adminCategories.PUT("/categories/:id", s.updateCategory)
			adminCategories.DELETE("/categories/:id", s.deleteCategory) // Refuses non-empty
		}

		// Comment routes (guest commenting is open, but rate limited)
		v1.GET("/posts/:id/comments", s.listComments)
		v1.POST("/posts/:id/comments", RateLimitMiddleware(), s.createComment)
		v1.GET("/posts/:id/comments/feed", s.commentFeed) // WebSocket

		protectedComments := v1.Group("", AuthMiddleware(s.authSvc))
		{
			protectedComments.DELETE("/comments/:id", s.deleteComment)
		}

		// User routes
		me := v1.Group("/me", AuthMiddleware(s.authSvc))
		{
			me.GET("", s.getProfile)
			me.PUT("", s.updateProfile)
		}

		// Admin routes
		admin := v1.Group("/admin", AuthMiddleware(s.authSvc), AdminMiddleware())
		{
			admin.GET("/users", s.listUsers)
			admin.PUT("/users/:id", s.updateUser)
			admin.POST("/users/:id/promote", s.promoteUser)
		}
	}
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}

// Router returns the gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// healthCheck returns server health status
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}
