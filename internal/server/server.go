// Package server exposes the gallery over HTTP: the public read API, the
// admin API, the viewer websocket and the stored media.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/orgball2608/class-gallery/internal/admin"
	"github.com/orgball2608/class-gallery/internal/backend"
	"github.com/orgball2608/class-gallery/internal/ratelimit"
	"github.com/orgball2608/class-gallery/internal/viewer"
	"github.com/orgball2608/class-gallery/pkg/config"
	"github.com/orgball2608/class-gallery/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Lc      fx.Lifecycle `optional:"true"`
	Config  *config.Config
	Logger  logger.Logger
	Backend backend.Client
	Admin   admin.Service
	Hub     viewer.Hub
	Limiter ratelimit.Limiter
}

type Server struct {
	cfg     *config.Config
	logger  logger.Logger
	backend backend.Client
	admin   admin.Service
	hub     viewer.Hub
	limiter ratelimit.Limiter
	engine  *gin.Engine
	http    *http.Server
}

func New(opts Opts) *Server {
	s := &Server{
		cfg:     opts.Config,
		logger:  opts.Logger.WithComponent("HTTP"),
		backend: opts.Backend,
		admin:   opts.Admin,
		hub:     opts.Hub,
		limiter: opts.Limiter,
	}
	s.engine = s.routes()
	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Config.App.Port),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if opts.Lc != nil {
		opts.Lc.Append(fx.Hook{
			OnStart: s.Start,
			OnStop:  s.Stop,
		})
	}
	return s
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.http.Addr, err)
	}

	s.logger.Info("HTTP server listening", "addr", s.http.Addr)
	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server stopped", "error", err)
		}
	}()
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.http.Shutdown(ctx)
}

func (s *Server) routes() *gin.Engine {
	if s.cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = 8 << 20
	r.Use(gin.Recovery(), s.requestLogger())
	r.Use(s.corsMiddleware())
	r.Use(s.rateLimit())

	r.GET("/healthz", s.health)
	r.GET("/ws", func(c *gin.Context) {
		s.hub.ServeWS(c.Writer, c.Request)
	})

	if base := s.cfg.Storage.PublicBaseURL; strings.HasPrefix(base, "/") && s.cfg.Storage.Root != "" {
		r.Static(strings.TrimRight(base, "/"), s.cfg.Storage.Root)
	}

	api := r.Group("/api")
	{
		api.GET("/photos", s.listPhotos)
		api.GET("/memories", s.listMemories)
		api.GET("/memories/:id", s.getMemory)
		api.GET("/news", s.listNews)
		api.GET("/events", s.listEvents)
		api.GET("/tags", s.listTags)
		api.GET("/messages", s.listMessages)
		api.POST("/messages", s.postMessage)
		api.GET("/settings", s.siteSettings)
	}

	adm := api.Group("/admin")
	{
		adm.GET("/dashboard", s.dashboard)
		adm.GET("/storage", s.storageUsage)

		adm.POST("/photos", s.uploadPhotos)
		adm.PATCH("/photos/:id", s.updatePhoto)
		adm.DELETE("/photos/:id", s.deletePhoto)
		adm.POST("/photos/bulk-tags", s.bulkTags)
		adm.POST("/photos/bulk-delete", s.bulkDelete)

		adm.POST("/tags", s.addTag)
		adm.PUT("/tags/:name", s.renameTag)
		adm.DELETE("/tags/:name", s.deleteTag)

		adm.POST("/memories", s.createMemory)
		adm.PATCH("/memories/:id", s.updateMemory)
		adm.DELETE("/memories/:id", s.deleteMemory)

		adm.POST("/news", s.createNews)
		adm.DELETE("/news/:id", s.deleteNews)
		adm.POST("/events", s.createEvent)
		adm.DELETE("/events/:id", s.deleteEvent)

		adm.DELETE("/messages/:id", s.deleteMessage)
		adm.PUT("/settings/hero", s.saveHero)
		adm.PUT("/settings/footer", s.saveFooter)
	}

	return r
}

func (s *Server) corsMiddleware() gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		MaxAge:       12 * time.Hour,
	}

	origins := s.cfg.App.AllowOrigins
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start).Round(time.Microsecond).String(),
			"ip", c.ClientIP(),
		}
		if status >= http.StatusInternalServerError {
			s.logger.Error("Request failed", args...)
			return
		}
		s.logger.Debug("Request handled", args...)
	}
}

func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.limiter != nil && !s.limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{"code": "rate_limited", "message": "too many requests"},
			})
			return
		}
		c.Next()
	}
}
