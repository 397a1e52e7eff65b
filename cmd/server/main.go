package main // Entry point for the portfolio API server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/portfolio-api/internal/auth"
	"github.com/iliyamo/portfolio-api/internal/config"
	"github.com/iliyamo/portfolio-api/internal/database"
	"github.com/iliyamo/portfolio-api/internal/handler"
	"github.com/iliyamo/portfolio-api/internal/middleware"
	"github.com/iliyamo/portfolio-api/internal/repository"
	"github.com/iliyamo/portfolio-api/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil when Redis is unreachable; features degrade

	users := repository.NewUserRepo(db)
	sessions := repository.NewSessionRepo(db)
	accounts := repository.NewAccountRepo(db)
	profiles := repository.NewProfileRepo(db)
	projects := repository.NewProjectRepo(db)
	experiences := repository.NewExperienceRepo(db)

	authSvc := auth.NewService(users, sessions, accounts,
		cfg.JWTSecret, cfg.AccessTTLSec, cfg.RefreshTTLSec, cfg.SessionMaxAgeSec)

	secure := cfg.Env != "dev"
	gate := middleware.SessionAuth(authSvc, cfg.CookieName, secure)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	var cache echo.MiddlewareFunc
	if rdb != nil {
		cache = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	}

	authH := handler.NewAuthHandler(cfg, authSvc, users)
	profileH := handler.NewProfileHandler(users, profiles)
	projectH := handler.NewProjectHandler(projects)
	experienceH := handler.NewExperienceHandler(experiences, users)
	contactH := handler.NewContactHandler()

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, gate)
	router.RegisterPublic(e, profileH, projectH, experienceH, contactH, cache)
	router.RegisterAdmin(e, profileH, projectH, experienceH, gate)

	// Periodic sweep of sessions whose hard expiry has passed.  The auth
	// service already deletes expired rows it touches; the sweeper catches
	// carriers that were simply abandoned.
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sweepSessions(sweepCtx, sessions)

	addr := ":" + cfg.Port
	go func() {
		log.Printf("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func sweepSessions(ctx context.Context, sessions *repository.SessionRepo) {
	t := time.NewTicker(time.Hour)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := sessions.DeleteExpired(ctx)
			if err != nil {
				log.Printf("session sweep: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("session sweep: removed %d expired sessions", n)
			}
		}
	}
}
