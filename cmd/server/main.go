package main // Entry point package

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/raddison/salon-booking/internal/config"
	"github.com/raddison/salon-booking/internal/database"
	"github.com/raddison/salon-booking/internal/handler"
	"github.com/raddison/salon-booking/internal/logger"
	"github.com/raddison/salon-booking/internal/middleware"
	"github.com/raddison/salon-booking/internal/queue"
	"github.com/raddison/salon-booking/internal/repository"
	"github.com/raddison/salon-booking/internal/router"
	"github.com/raddison/salon-booking/internal/scheduling"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly

	cfg := config.Load()
	log := logger.New(cfg.Env)
	defer func() { _ = log.Sync() }()

	db, err := database.Open(log, cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	if err := database.Migrate(ctx, log, db, cfg.MigrationsDir); err != nil {
		cancel()
		log.Fatal("migrations failed", zap.Error(err))
	}
	cancel()

	services := repository.NewServiceRepo(db)
	staff := repository.NewStaffRepo(db)
	customers := repository.NewCustomerRepo(db)
	appointments := repository.NewAppointmentRepo(db)
	messages := repository.NewMessageRepo(db)
	admins := repository.NewAdminRepo(db)

	engine := scheduling.NewEngine(appointments)

	// Redis backs the response cache and the rate limiter; both degrade to
	// pass-through when it is down.
	rdb := config.NewRedisClient()
	var cacheMW, rateMW echo.MiddlewareFunc
	if rdb != nil {
		if cacheCfg := config.LoadCacheConfig(); cacheCfg.Enabled {
			cacheMW = middleware.ResponseCache(cacheCfg, rdb)
		}
		if rlCfg := config.LoadRateLimitConfig(); rlCfg.Enabled {
			rateMW = middleware.RateLimit(rlCfg, rdb)
		}
	} else {
		log.Warn("redis unavailable, cache and rate limiting disabled")
	}

	publishEvents := os.Getenv("QUEUE_DISABLED") != "1"
	if publishEvents {
		go queue.StartAppointmentConsumer(log)
	}

	handlers := router.Handlers{
		Services:     handler.NewServiceHandler(services),
		Staff:        handler.NewStaffHandler(staff),
		Customers:    handler.NewCustomerHandler(customers),
		Appointments: handler.NewAppointmentHandler(engine, appointments, log, publishEvents),
		Availability: handler.NewAvailabilityHandler(engine),
		Messages:     handler.NewMessageHandler(messages),
		Admin: &handler.AdminHandler{
			Admins:       admins,
			Appointments: appointments,
			Customers:    customers,
			Messages:     messages,
			Log:          log,
			JWTSecret:    cfg.JWTSecret,
			AccessTTLMin: cfg.AccessTTLMin,
			BcryptCost:   cfg.BcryptCost,
		},
	}

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e, cfg.DBName, cfg.PublicDir)
	router.RegisterPublic(e, handlers, cacheMW, rateMW)
	router.RegisterAdmin(e, handlers, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
