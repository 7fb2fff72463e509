// Package api wires the HTTP surface: entry CRUD, auth, AI endpoints
// (headlines + correlation graph), and file uploads.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SBleeyouk/deepfake-daily/internal/ai"
	"github.com/SBleeyouk/deepfake-daily/internal/auth"
	"github.com/SBleeyouk/deepfake-daily/internal/correlation"
	"github.com/SBleeyouk/deepfake-daily/internal/notify"
	"github.com/SBleeyouk/deepfake-daily/internal/store"
	"github.com/SBleeyouk/deepfake-daily/internal/upload"
	"github.com/SBleeyouk/deepfake-daily/pkg/logger"
)

// HeadlineGenerator produces entry titles from submission metadata.
type HeadlineGenerator interface {
	GenerateHeadline(ctx context.Context, in ai.HeadlineInput) (string, error)
}

// GraphProvider is the correlation facade consumed by the graph endpoints.
type GraphProvider interface {
	Graph(ctx context.Context) (*correlation.Graph, error)
	Refresh()
}

// API holds the handler dependencies.
type API struct {
	store     store.Store
	headlines HeadlineGenerator
	graphs    GraphProvider
	auth      *auth.Service
	saver     *upload.Saver
	announcer notify.Announcer
	logger    *zap.Logger
}

// New assembles the API with its collaborators.
func New(s store.Store, headlines HeadlineGenerator, graphs GraphProvider,
	authSvc *auth.Service, saver *upload.Saver, announcer notify.Announcer) *API {
	return &API{
		store:     s,
		headlines: headlines,
		graphs:    graphs,
		auth:      authSvc,
		saver:     saver,
		announcer: announcer,
		logger:    logger.Get(),
	}
}

// Router builds the gin engine with all routes and middleware attached.
func (a *API) Router(production bool) *gin.Engine {
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(ginLogger(a.logger))
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.Static("/uploads", a.saver.Dir())

	api := router.Group("/api")
	{
		api.POST("/auth/login", a.login)

		entries := api.Group("/entries")
		{
			entries.GET("", a.listEntries)
			entries.GET("/tags", a.listTags)
			entries.GET("/:id", a.getEntry)
			entries.POST("", a.auth.Middleware(), a.createEntry)
			entries.PATCH("/:id", a.auth.Middleware(), a.updateEntry)
		}

		aiGroup := api.Group("/ai")
		{
			aiGroup.POST("/generate-headline", a.auth.Middleware(), a.generateHeadline)
			aiGroup.POST("/correlations", a.correlations)
			aiGroup.POST("/correlations/refresh", a.refreshCorrelations)
		}

		uploads := api.Group("/uploads", a.auth.Middleware())
		{
			uploads.POST("", a.uploadFile)
			uploads.POST("/thumbnail", a.extractThumbnail)
		}
	}

	return router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// ginLogger is a custom logger middleware for Gin
func ginLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		log.Info("HTTP Request",
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
		)
	}
}
