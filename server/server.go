package server

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/launchforge/phaseline/internal/logger"
	_ "github.com/lib/pq"
)

// Server is the phaseline backend: the single authority on ideas,
// timelines, evaluations, funding, and the submit/lock state machine.
type Server struct {
	db   *sql.DB
	echo *echo.Echo
}

// New creates a new server
func New(dbURL string) (*Server, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &Server{db: db}

	// Run migrations
	if err := s.migrate(); err != nil {
		return nil, err
	}

	s.setupEcho()

	return s, nil
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true

	// Request logging through the shared logger
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)

			res := c.Response()
			logger.Info("HTTP request",
				logger.F("method", req.Method),
				logger.F("uri", req.RequestURI),
				logger.F("status", res.Status),
				logger.F("duration", time.Since(start).String()))

			return err
		}
	})

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	// Health check
	e.GET("/health", s.handleHealth)

	// API v1
	api := e.Group("/api/v1")

	// Auth endpoints (public)
	api.POST("/register", s.handleRegister)
	api.POST("/login", s.handleLogin)

	// Protected endpoints
	protected := api.Group("")
	protected.Use(s.authMiddleware)
	protected.GET("/me", s.handleMe)
	protected.GET("/ideas", s.handleListIdeas)
	protected.POST("/ideas", s.handleCreateIdea)
	protected.GET("/ideas/:id", s.handleGetIdea)
	protected.POST("/ideas/:id/submit", s.handleSubmitTimeline)
	protected.GET("/ideas/:id/phases", s.handleListPhases)
	protected.POST("/ideas/:id/phases", s.handleCreatePhase)
	protected.PUT("/phases/:id", s.handleUpdatePhase)
	protected.DELETE("/phases/:id", s.handleDeletePhase)
	protected.POST("/phases/:id/tasks", s.handleCreateTask)
	protected.PUT("/tasks/:id", s.handleUpdateTask)
	protected.PATCH("/tasks/:id/dates", s.handleUpdateTaskDates)
	protected.DELETE("/tasks/:id", s.handleDeleteTask)
	protected.GET("/ideas/:id/phases/:phaseID/evaluation", s.handleGetEvaluation)
	protected.POST("/evaluations", s.handleCreateEvaluation)
	protected.POST("/funding-requests", s.handleCreateFundingRequest)
	protected.GET("/funding-requests", s.handleListFundingRequests)

	s.echo = e
}

// Close closes the database connection
func (s *Server) Close() error {
	return s.db.Close()
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
