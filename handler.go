package main

import (
	"embed"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"lg/weight-projection-go-api/internal/projection"
)

//go:embed web
var webFS embed.FS

// Handler holds shared dependencies for all route handlers. Nothing in it is
// mutated after construction; each request builds its own random source.
type Handler struct {
	cfg            Config
	clock          projection.Clock              // overridable for tests
	newFluctuation func() projection.Fluctuation // one per run
	newRunID       func() string
}

// NewHandler wires the real clock and random sources. With cfg.Seed set every
// run draws the same noise sequence, so identical requests return identical weeks.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		cfg:   cfg,
		clock: projection.SystemClock{},
		newFluctuation: func() projection.Fluctuation {
			seed := cfg.Seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			return projection.NewSeededFluctuation(seed)
		},
		newRunID: func() string { return uuid.New().String() },
	}
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// requestLogger logs one line per request once the handler chain has finished.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		evt := log.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			evt = log.Error()
		}
		evt.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

// registerRoutes registers the calculator page and the API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	static, err := fs.Sub(webFS, "web")
	if err != nil {
		log.Fatal().Err(err).Msg("embedded web assets missing")
	}
	router.GET("/", func(c *gin.Context) {
		c.FileFromFS("/", http.FS(static))
	})
	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	api := router.Group("/api")
	api.GET("/activity-levels", h.getActivityLevels)
	api.POST("/simulate", h.simulate)
	api.POST("/simulate/report", h.simulateReport)
}
