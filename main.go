package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Gakenye8741/ticket-gateway/config"
	"github.com/Gakenye8741/ticket-gateway/internal/backend"
	"github.com/Gakenye8741/ticket-gateway/internal/cache"
	"github.com/Gakenye8741/ticket-gateway/internal/consumer"
	"github.com/Gakenye8741/ticket-gateway/internal/handler"
	"github.com/Gakenye8741/ticket-gateway/internal/middleware"
	"github.com/Gakenye8741/ticket-gateway/internal/repository"
	"github.com/Gakenye8741/ticket-gateway/internal/service"
	"github.com/Gakenye8741/ticket-gateway/internal/session"
	"github.com/Gakenye8741/ticket-gateway/pkg/database"
	"github.com/Gakenye8741/ticket-gateway/pkg/logger"
	"github.com/Gakenye8741/ticket-gateway/pkg/rabbitmq"
	pkgRedis "github.com/Gakenye8741/ticket-gateway/pkg/redis"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	l := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer l.Sync()

	db, err := database.NewPostgresDB(cfg.DSN())
	if err != nil {
		l.Fatal("failed to connect to database", "error", err)
	}

	redisCli, err := pkgRedis.Connect(context.Background(), cfg.Redis)
	if err != nil {
		l.Fatal("failed to connect to redis", "error", err)
	}
	defer redisCli.Close()

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		l.Fatal("failed to connect to RabbitMQ", "error", err)
	}
	defer publisher.Close()

	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		l.Fatal("failed to connect to RabbitMQ consumer", "error", err)
	}
	defer mqConsumer.Close()

	// Remote backend client and the cache in front of it
	client := backend.NewClient(cfg.BackendBaseURL, &http.Client{})
	tagCache := cache.NewRedisCache(redisCli)

	// Sessions
	sessionStore := session.NewRedisStore(redisCli, cfg.SessionTTL)
	tokens := session.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiry)

	// Repositories
	attemptRepo := repository.NewAttemptRepository(db)

	// Services
	checkoutSvc := service.NewCheckoutService(client, client, client, attemptRepo, tagCache, cfg.Currency, cfg.PublicOrigin, cfg.CacheTTL, l)
	bookingSvc := service.NewBookingService(client, client, tagCache, cfg.CacheTTL, l)
	reconcileSvc := service.NewReconcileService(client, client, tagCache, publisher, l)
	eventSvc := service.NewEventService(client, tagCache, cfg.CacheTTL, l)
	venueSvc := service.NewVenueService(client, tagCache, cfg.CacheTTL, l)

	// Payment messages trigger reconciliation on demand
	msgs, err := mqConsumer.Consume()
	if err != nil {
		l.Fatal("failed to start consuming", "error", err)
	}
	consumer.NewPaymentConsumer(reconcileSvc, l).Start(msgs)

	// Periodic sweep for customers whose payment messages were missed
	go func() {
		ticker := time.NewTicker(cfg.ReconcileInterval)
		defer ticker.Stop()
		for range ticker.C {
			confirmed, err := reconcileSvc.ReconcileAll(context.Background())
			if err != nil {
				l.Warn("scheduled reconcile failed", "error", err)
				continue
			}
			if len(confirmed) > 0 {
				l.Info("scheduled reconcile confirmed bookings", "booking_ids", confirmed)
			}
		}
	}()

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			l.Info("request", "method", v.Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "ticket-gateway"})
	})

	public := e.Group("/api/v1")
	authed := e.Group("/api/v1", session.Middleware(sessionStore, tokens))
	admin := e.Group("/api/v1/admin", session.Middleware(sessionStore, tokens), session.RequireAdmin())

	handler.NewAuthHandler(client, sessionStore, tokens, cfg.SessionTTL).RegisterRoutes(public)
	handler.NewEventHandler(eventSvc, client, client, tagCache).RegisterRoutes(public, admin)
	handler.NewVenueHandler(venueSvc).RegisterRoutes(public, admin)
	handler.NewBookingHandler(checkoutSvc, bookingSvc, reconcileSvc, client, attemptRepo).RegisterRoutes(authed, admin)
	handler.NewSupportHandler(client).RegisterRoutes(authed, admin)

	l.Info("ticket gateway starting", "port", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
