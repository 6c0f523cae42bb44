package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Varun5711/authcore/internal/auth"
	"github.com/Varun5711/authcore/internal/config"
	"github.com/Varun5711/authcore/internal/database"
	"github.com/Varun5711/authcore/internal/events"
	"github.com/Varun5711/authcore/internal/handlers"
	"github.com/Varun5711/authcore/internal/logger"
	"github.com/Varun5711/authcore/internal/middleware"
	"github.com/Varun5711/authcore/internal/redis"
	"github.com/Varun5711/authcore/internal/service"
	"github.com/Varun5711/authcore/internal/storage"
)

func main() {
	log := logger.New("auth-service")
	log.SetStdLog()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: %v", err)
	}

	if cfg.WeakSecret() {
		log.Warn("JWT_SECRET is shorter than %d bytes; use a longer random secret in production", config.MinSecretLength)
	}

	var (
		store  storage.CredentialStore
		health handlers.Pinger
	)

	switch cfg.Server.StorageDriver {
	case "memory":
		log.Warn("Using in-memory credential store; accounts are lost on restart")
		store = storage.NewMemoryUserStorage()
	default:
		dbManager, err := database.NewDBManager(ctx, database.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			Name:            cfg.Database.Name,
			SSLMode:         cfg.Database.SSLMode,
			MaxConns:        cfg.Database.MaxConns,
			MinConns:        cfg.Database.MinConns,
			MaxConnLifetime: cfg.Database.MaxConnLifetime,
			MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		})
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer dbManager.Close()

		userStorage := storage.NewUserStorage(dbManager)
		if err := userStorage.EnsureSchema(ctx); err != nil {
			log.Fatal("Failed to prepare schema: %v", err)
		}

		store = userStorage
		health = dbManager
		log.Info("Connected to PostgreSQL at %s:%d", cfg.Database.Host, cfg.Database.Port)
	}

	ips, err := middleware.NewIPResolver(cfg.Server.TrustedProxies)
	if err != nil {
		log.Fatal("Invalid TRUSTED_PROXIES: %v", err)
	}

	var (
		publisher   events.Publisher = events.NopPublisher{}
		rateLimiter *middleware.RateLimiter
	)

	if cfg.RedisEnabled() {
		redisClient, err := redis.NewRedisClient(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn("Redis unavailable, rate limiting and auth events disabled: %v", err)
		} else {
			defer redisClient.Close()

			publisher = events.NewAuthProducer(redisClient.GetClient(), cfg.Events.StreamName)
			log.Info("Publishing auth events to stream %s", cfg.Events.StreamName)

			if cfg.RateLimit.Enabled {
				rateLimiter = middleware.NewRateLimiter(
					redisClient.GetClient(),
					cfg.RateLimit.Requests,
					cfg.RateLimit.Window,
					ips,
					logger.New("ratelimit"),
				)
				log.Info("Rate limiting login and register: %d requests per %s", cfg.RateLimit.Requests, cfg.RateLimit.Window)
			}
		}
	} else if cfg.RateLimit.Enabled {
		log.Warn("RATE_LIMIT_ENABLED is set but REDIS_ADDR is empty; rate limiting disabled")
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, auth.TokenTTL)
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	authService := service.NewAuthService(store, hasher, jwtManager)

	router := handlers.NewRouter(handlers.RouterDeps{
		Auth:        handlers.NewAuthHandler(authService, publisher, ips, cfg.Server.RequestTimeout, logger.New("auth-handler")),
		Health:      handlers.NewHealthHandler(health, log),
		Swagger:     handlers.NewSwaggerHandler(),
		AuthMW:      middleware.NewAuthMiddleware(authService, store, logger.New("auth-middleware")),
		RateLimiter: rateLimiter,
		CORSOrigins: cfg.Server.CORSAllowedOrigins,
		Log:         logger.New("http"),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.Server.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("Auth service listening on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down auth service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed: %v", err)
	}

	log.Info("Auth service stopped")
}
