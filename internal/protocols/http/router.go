// Package http - HTTP REST API
// Gin server exposing auth, quiz sessions, progress, leaderboards, badges
// and the WebSocket feed upgrade.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"learnhub/internal/core"
	ws "learnhub/internal/protocols/websocket"
	"learnhub/pkg/config"
	"learnhub/pkg/database"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Server manages the HTTP REST API server
type Server struct {
	router          *gin.Engine
	config          *config.Config
	authSvc         core.AuthService
	gamificationSvc core.GamificationService
	quizSvc         core.QuizService
	progressSvc     core.ProgressService
	leaderboardSvc  core.LeaderboardService
	hub             *ws.Hub
	db              *database.DB
}

// NewServer creates a new HTTP server with all handlers
func NewServer(
	cfg *config.Config,
	authSvc core.AuthService,
	gamificationSvc core.GamificationService,
	quizSvc core.QuizService,
	progressSvc core.ProgressService,
	leaderboardSvc core.LeaderboardService,
	hub *ws.Hub,
	db *database.DB,
) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(requestLogger())
	router.Use(RateLimitMiddleware(cfg.Server.RateLimitPerSecond, cfg.Server.RateLimitBurst))

	s := &Server{
		router:          router,
		config:          cfg,
		authSvc:         authSvc,
		gamificationSvc: gamificationSvc,
		quizSvc:         quizSvc,
		progressSvc:     progressSvc,
		leaderboardSvc:  leaderboardSvc,
		hub:             hub,
		db:              db,
	}

	s.setupRoutes()
	return s
}

// setupRoutes registers all HTTP routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)

	v1 := s.router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", s.register)
			auth.POST("/login", s.login)
		}

		// Everything else requires a valid token
		protected := v1.Group("", AuthMiddleware(s.authSvc))
		{
			protected.POST("/auth/daily-login", s.dailyLogin)
			protected.GET("/auth/me", s.me)

			// Topic catalog and per-topic content progress
			protected.GET("/topics", s.listTopics)
			protected.GET("/topics/:id/quizzes", s.listTopicQuizzes)
			protected.GET("/progress", s.getProgress)
			protected.GET("/progress/topics", s.listTopicProgress)
			protected.PUT("/progress/topics", s.updateTopicProgress)
			protected.GET("/progress/report", s.getProgressReport)

			// Quiz catalog and the one-per-user session
			protected.GET("/quizzes", s.listQuizzes)
			protected.POST("/quiz/session", s.startQuizSession)
			protected.GET("/quiz/session", s.getQuizSession)
			protected.POST("/quiz/session/answer", s.answerQuizQuestion)
			protected.POST("/quiz/session/advance", s.advanceQuizSession)
			protected.DELETE("/quiz/session", s.abandonQuizSession)
			protected.GET("/quiz/attempts", s.listQuizAttempts)

			// Rankings and badges
			protected.GET("/leaderboard", s.getLeaderboard)
			protected.GET("/badges", s.listEarnedBadges)
			protected.GET("/badges/catalog", s.listBadgeCatalog)

			// Realtime gamification feed
			protected.GET("/ws", s.serveFeed)
		}

		// Admin content management
		admin := v1.Group("/admin", AuthMiddleware(s.authSvc), AdminMiddleware())
		{
			admin.POST("/topics", s.createTopic)
			admin.POST("/quizzes", s.createQuiz)
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

// healthCheck returns server health status including database reachability
func (s *Server) healthCheck(c *gin.Context) {
	status := "ok"
	dbStatus := "ok"
	code := 200

	if s.db != nil {
		if err := s.db.HealthCheck(c.Request.Context()); err != nil {
			status = "degraded"
			dbStatus = err.Error()
			code = 503
		}
	}

	c.JSON(code, gin.H{
		"status":         status,
		"database":       dbStatus,
		"ws_connections": s.hub.ConnectionCount(),
		"time":           time.Now().Format(time.RFC3339),
	})
}
