package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"roteiro/internal/docs"
	"roteiro/internal/models"
	"roteiro/internal/storage/sqlite"
)

// Options tunes the optional parts of the HTTP server.
type Options struct {
	// StaticDir holds a built frontend; empty means API only.
	StaticDir string
	// CORSOrigins lists browser origins allowed to call the API.
	CORSOrigins []string
	// Swagger mounts the API documentation UI under /swagger.
	Swagger bool
	// Location decides which calendar day "today" is. Defaults to UTC.
	Location *time.Location
	// Now replaces the wall clock, mostly for tests.
	Now func() time.Time
}

// Server provides HTTP handlers for the task tracker backend.
type Server struct {
	engine    *gin.Engine
	store     *sqlite.Store
	logger    *slog.Logger
	validator *models.Validator
	opts      Options
}

// New constructs the HTTP server with routes and middleware configured.
func New(store *sqlite.Store, logger *slog.Logger, opts Options) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/api/healthz"))
	if len(opts.CORSOrigins) > 0 {
		router.Use(corsMiddleware(opts.CORSOrigins))
	}

	srv := &Server{
		engine: router,
		store:  store,
		logger: logger,
		opts:   opts,
	}
	srv.validator = models.NewValidator(srv.now)

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// now is the server clock in the configured location.
func (s *Server) now() time.Time {
	return s.opts.Now().In(s.opts.Location)
}

// today is the calendar date used for status derivation.
func (s *Server) today() time.Time {
	return models.DateOf(s.now())
}

// registerRoutes wires all API and static handlers together.
func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	{
		api.GET("/healthz", s.handleHealth)

		tasks := api.Group("/tasks")
		{
			tasks.GET("", s.handleListTasks)
			tasks.POST("", s.handleCreateTask)
			tasks.GET(":id", s.handleGetTask)
			tasks.PUT(":id", s.handleUpdateTask)
			tasks.DELETE(":id", s.handleDeleteTask)
			tasks.GET(":id/status", s.handleTaskStatus)
		}

		api.GET("/categories", s.handleListCategories)
	}

	if s.opts.Swagger {
		docs.SwaggerInfo.BasePath = "/api"
		s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	s.mountStatic()
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cors.New(cfg)
		}
	}
	cfg.AllowOrigins = origins
	return cors.New(cfg)
}

// handleHealth provides a basic readiness endpoint.
//
// @Summary  Readiness probe
// @Tags     health
// @Produce  json
// @Success  200  {object}  map[string]string
// @Failure  503  {object}  map[string]string
// @Router   /healthz [get]
func (s *Server) handleHealth(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context()); err != nil {
		s.respondError(c, http.StatusServiceUnavailable, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseID converts a path parameter to int64 with error handling.
func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid identifier"})
		return 0, false
	}
	return id, true
}

// respondError logs the error and returns a JSON payload.
func (s *Server) respondError(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
	} else {
		s.logger.Debug("request rejected", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
	}

	var verr *models.ValidationError
	if errors.As(err, &verr) {
		c.JSON(status, gin.H{"error": "validation failed", "violations": verr.Violations})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// respondStoreError maps storage errors onto HTTP statuses.
func (s *Server) respondStoreError(c *gin.Context, err error) {
	if errors.Is(err, sqlite.ErrTaskNotFound) {
		s.respondError(c, http.StatusNotFound, err)
		return
	}
	s.respondError(c, http.StatusInternalServerError, err)
}

// respondSuccess wraps a payload in a JSON envelope for consistency.
func respondSuccess(c *gin.Context, status int, payload any) {
	if payload == nil {
		c.Status(status)
		return
	}
	c.JSON(status, payload)
}
