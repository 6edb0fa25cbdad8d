package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tastebook/backend/config"
	"github.com/tastebook/backend/internal/api"
	"github.com/tastebook/backend/internal/importer"
	"github.com/tastebook/backend/internal/middleware"
	"github.com/tastebook/backend/internal/router"
	"github.com/tastebook/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	engine *gin.Engine
	http   *http.Server
	cfg    *config.Config
}

// New wires services, handlers and routes into a runnable server.
// redisClient may be nil; caching and rate limiting degrade gracefully.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	authService := service.NewAuthService(db, cfg.JWTSecret)
	recipeService := service.NewRecipeService(db)

	imp := importer.New(
		importer.WithTimeout(cfg.ImportTimeout),
		importer.WithMaxBytes(cfg.ImportMaxBytes),
	)
	importService := service.NewImportService(db, imp, redisClient, cfg.ImportCacheTTL)
	if cfg.S3MirrorEnabled {
		if s3Config, err := config.NewS3Config(context.Background()); err != nil {
			log.Printf("S3 image mirroring disabled: %v", err)
		} else {
			importService.UseImageMirror(service.NewImageService(s3Config))
		}
	}

	var importLimiter *middleware.RateLimiter
	if redisClient != nil {
		importLimiter = middleware.NewImportRateLimiter(redisClient)
	}

	engine := router.SetupRouter(
		api.NewAuthHandler(authService),
		api.NewRecipeHandler(recipeService),
		api.NewImportHandler(importService),
		authService,
		importLimiter,
	)

	return &Server{engine: engine, cfg: cfg}
}

// Start begins serving and blocks until the listener fails.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    fmt.Sprintf("%s:%s", s.cfg.ServerHost, s.cfg.ServerPort),
		Handler: s.engine,
	}

	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
