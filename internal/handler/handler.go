package handler

import (
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"noteapp-api/internal/apperr"
	"noteapp-api/internal/config"
	"noteapp-api/internal/middleware"
	"noteapp-api/internal/schedule"
	"noteapp-api/internal/store"
)

const (
	maxTitleLen       = 255
	maxContentLen     = 50000
	maxDescriptionLen = 10000
	maxSearchLen      = 100
)

type Handler struct {
	store  *store.Store
	engine *schedule.Engine
	cfg    *config.Config
	log    zerolog.Logger
}

func New(st *store.Store, eng *schedule.Engine, cfg *config.Config, log zerolog.Logger) *Handler {
	return &Handler{store: st, engine: eng, cfg: cfg, log: log}
}

// Register wires all routes. Credential endpoints sit behind the rate
// limiter; everything under the entity groups requires a bearer token.
func (h *Handler) Register(r *gin.Engine, rl *middleware.RateLimiter) {
	r.GET("/health", h.handleHealth)

	api := r.Group("/api")

	limited := middleware.RateLimit(rl)
	authed := middleware.Auth(h.cfg.JWTSecret)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", limited, h.handleRegister)
	authGroup.POST("/login", limited, h.handleLogin)
	authGroup.POST("/refresh", h.handleRefresh)
	authGroup.POST("/logout", authed, h.handleLogout)
	authGroup.GET("/me", authed, h.handleMe)

	notes := api.Group("/notes", authed)
	notes.GET("", h.handleListNotes)
	notes.POST("", h.handleCreateNote)
	notes.GET("/:id", h.handleGetNote)
	notes.PUT("/:id", h.handleUpdateNote)
	notes.DELETE("/:id", h.handleDeleteNote)

	tasks := api.Group("/tasks", authed)
	tasks.GET("", h.handleListTasks)
	tasks.POST("", h.handleCreateTask)
	tasks.GET("/:id", h.handleGetTask)
	tasks.PUT("/:id", h.handleUpdateTask)
	tasks.DELETE("/:id", h.handleDeleteTask)

	cal := api.Group("/calendar", authed)
	cal.GET("", h.handleListEvents)
	cal.POST("", h.handleCreateEvent)
	cal.GET("/export", h.handleExportEvents)
	cal.GET("/:id", h.handleGetEvent)
	cal.PUT("/:id", h.handleUpdateEvent)
	cal.DELETE("/:id", h.handleDeleteEvent)
}

func (h *Handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"app":     h.cfg.AppName,
		"version": h.cfg.Version,
	})
}

// fail maps an application error to its HTTP status; anything else is
// a 500 with a generic body, logged with the real cause.
func (h *Handler) fail(c *gin.Context, err error) {
	if ae, ok := apperr.As(err); ok {
		if ae.Kind == apperr.KindUnauthorized {
			c.Header("WWW-Authenticate", "Bearer")
		}
		c.AbortWithStatusJSON(ae.HTTPStatus(), gin.H{"error": ae.Message})
		return
	}
	h.log.Error().Err(err).Str("path", c.FullPath()).Msg("internal error")
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("invalid id")
	}
	return id, nil
}

// pagination rejects out-of-range values instead of clamping: skip
// must be >= 0 and limit within [1,100].
func pagination(c *gin.Context, defaultLimit int) (skip, limit int, err error) {
	skip, limit = 0, defaultLimit
	if v := c.Query("skip"); v != "" {
		skip, err = strconv.Atoi(v)
		if err != nil || skip < 0 {
			return 0, 0, apperr.Validation("skip must be >= 0")
		}
	}
	if v := c.Query("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < store.MinLimit || limit > store.MaxLimit {
			return 0, 0, apperr.Validation("limit must be between 1 and 100")
		}
	}
	return skip, limit, nil
}

func validateTitle(title string) error {
	if n := utf8.RuneCountInString(title); n < 1 || n > maxTitleLen {
		return apperr.Validation("title must be between 1 and 255 characters")
	}
	return nil
}

func validateOptionalText(s *string, max int, field string) error {
	if s != nil && utf8.RuneCountInString(*s) > max {
		return apperr.Validation(field + " is too long")
	}
	return nil
}

func userID(c *gin.Context) int64 {
	return middleware.UserID(c)
}
