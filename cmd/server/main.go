package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/campushq/seminar-registration/internal/config"
	"github.com/campushq/seminar-registration/internal/database"
	"github.com/campushq/seminar-registration/internal/handler"
	"github.com/campushq/seminar-registration/internal/middleware"
	"github.com/campushq/seminar-registration/internal/queue"
	"github.com/campushq/seminar-registration/internal/router"
	"github.com/campushq/seminar-registration/internal/service"
	"github.com/campushq/seminar-registration/internal/store"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment
	cfg := config.Load()

	// Pick the storage backend.  The in-memory store keeps the whole
	// registration flow runnable with zero infrastructure.
	var st store.Store
	switch cfg.StorageDriver {
	case config.DriverMySQL:
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Fatalf("mysql connect failed: %v", err)
		}
		defer db.Close()
		st = store.NewMySQLStore(db)
	case config.DriverMemory:
		mem := store.NewMemStore()
		if cfg.SeedDemoData {
			if err := mem.Seed(context.Background(), cfg.BcryptCost); err != nil {
				log.Fatalf("seed demo data failed: %v", err)
			}
		}
		st = mem
	}

	// Redis powers the response cache, the rate limiter and the draft
	// store.  All three degrade to no-ops when it is unreachable.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache, rate limiting and drafts disabled")
	}
	respCache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)
	limitMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	var drafts *store.DraftStore
	if rdb != nil {
		drafts = store.NewDraftStore(rdb, cfg.DraftTTL)
	}

	publisher := queue.NewPublisher()
	go queue.StartRegistrationConsumer()

	reservations := service.NewReservationService(st, drafts, publisher, respCache)
	verification := service.NewVerificationService(st, respCache)

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, st), cfg.JWTSecret)
	router.RegisterPublic(e,
		handler.NewCollegeHandler(cfg, st),
		handler.NewSeminarHandler(st),
		handler.NewReservationHandler(reservations),
		respCache.Middleware(),
		limitMW,
	)
	router.RegisterAdmin(e, handler.NewAdminHandler(cfg, st), cfg.JWTSecret)
	router.RegisterGuard(e, handler.NewGuardHandler(verification), cfg.JWTSecret, limitMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, storage=%s)", addr, cfg.Env, cfg.StorageDriver)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
