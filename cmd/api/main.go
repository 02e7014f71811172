package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/Shravan-Padale771/QuickBackend/internal/config"
	dbpkg "github.com/Shravan-Padale771/QuickBackend/internal/db"
	httpserver "github.com/Shravan-Padale771/QuickBackend/internal/http"
	"github.com/Shravan-Padale771/QuickBackend/internal/http/handler"
	mw "github.com/Shravan-Padale771/QuickBackend/internal/http/middleware"
	"github.com/Shravan-Padale771/QuickBackend/internal/repository/postgres"
	"github.com/Shravan-Padale771/QuickBackend/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if cfg.Admin.Secret == "" {
		log.Fatal("ADMIN_SECRET environment variable must be set")
	}

	database, err := dbpkg.Connect(cfg.Postgres)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer database.Close()

	if err := dbpkg.RunMigrations(ctx, database); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	repo := postgres.NewMessageRepository(database)

	relaySvc := service.NewRelayService(repo, service.Options{
		StoreTimeout: cfg.Store.Timeout,
		Logger:       log.New(os.Stdout, "relay-service ", log.LstdFlags),
	})

	limiter := mw.NewRedisLimiter(redisClient, cfg.RateLimit.Limit, cfg.RateLimit.Window)

	relayHandler := handler.NewRelayHandler(relaySvc)
	adminHandler := handler.NewAdminHandler(relaySvc)

	router := httpserver.NewRouter(relayHandler, adminHandler, httpserver.RouterOptions{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AdminSecret:    cfg.Admin.Secret,
		ReceiveLimiter: limiter,
		Logger:         log.New(os.Stdout, "http ", log.LstdFlags),
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("HTTP server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutdown signal received")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
}
