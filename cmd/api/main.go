package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	authHandler "github.com/gmao-ics/techniciens-api/internal/handler/auth"
	healthHandler "github.com/gmao-ics/techniciens-api/internal/handler/health"
	technicienHandler "github.com/gmao-ics/techniciens-api/internal/handler/technicien"

	"github.com/gmao-ics/techniciens-api/internal/config"
	"github.com/gmao-ics/techniciens-api/internal/middleware"
	"github.com/gmao-ics/techniciens-api/internal/repository/postgres"
	"github.com/gmao-ics/techniciens-api/internal/router"
	authService "github.com/gmao-ics/techniciens-api/internal/service/auth"
	technicienService "github.com/gmao-ics/techniciens-api/internal/service/technicien"
	"github.com/gmao-ics/techniciens-api/pkg/auth"
	"github.com/gmao-ics/techniciens-api/pkg/logger"
	"github.com/gmao-ics/techniciens-api/pkg/security"
)

const migrationsPath = "migrations"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Setup(cfg.Server.IsProduction())

	if err := postgres.RunMigrations(cfg.Database, migrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	base := postgres.NewBaseRepository(db)
	technicienRepo := postgres.NewTechnicienRepository(base)
	assignmentRepo := postgres.NewAssignmentRepository(base)

	// Services
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)
	credentials, err := authService.NewInMemoryCredentials(hasher)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize credentials")
	}
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	authSvc := authService.NewService(credentials, jwtSvc, hasher)
	technicienSvc := technicienService.NewService(technicienRepo, assignmentRepo)

	// Middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(authSvc)
	authH := authHandler.NewHandler(authSvc)
	technicienH := technicienHandler.NewHandler(technicienSvc)
	healthH := healthHandler.NewHandler(db)

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.Server.AllowedOrigins

	r := router.NewRouter(authMiddleware, authH, technicienH, healthH, router.Config{
		Production: cfg.Server.IsProduction(),
		RateLimit:  rate.Limit(cfg.RateLimit.RequestsPerSecond),
		RateBurst:  cfg.RateLimit.Burst,
		CORSConfig: corsConfig,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting techniciens service")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
