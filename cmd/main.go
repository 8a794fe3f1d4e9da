package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Weryck-Lemos/ElectroStock/internal/api"
	"github.com/Weryck-Lemos/ElectroStock/internal/catalog"
	"github.com/Weryck-Lemos/ElectroStock/internal/orders"
	"github.com/Weryck-Lemos/ElectroStock/internal/session"
	h "github.com/Weryck-Lemos/ElectroStock/internal/http"
)

type Config struct {
	HTTPPort        string
	APIBaseURL      string
	RedisAddr       string
	SessionTTL      time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		APIBaseURL:      getEnv("API_BASE_URL", "http://127.0.0.1:8000"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		SessionTTL:      getDuration("SESSION_TTL", 24*time.Hour),
		RequestTimeout:  getDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("invalid duration for %s, using default %s", key, defaultValue)
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	// Session store: Redis when configured, otherwise in-process memory
	var sessions session.Store
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		sessions = session.NewRedisStore(client, cfg.SessionTTL)
		log.Printf("Using Redis session store at %s", cfg.RedisAddr)
	} else {
		sessions = session.NewMemoryStore()
		log.Printf("Using in-memory session store")
	}

	client := api.New(cfg.APIBaseURL)
	resolver := catalog.NewResolver(client)
	orderSvc := orders.NewService(client)

	authHandler := h.NewAuthHandler(client, sessions, cfg.SessionTTL)
	shopHandler := h.NewShopHandler(resolver, orderSvc, sessions)
	ordersHandler := h.NewOrdersHandler(orderSvc, resolver)

	router := h.NewRouter(authHandler, shopHandler, ordersHandler, sessions, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "electrostock"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("ElectroStock web client starting on :%s (upstream %s)", cfg.HTTPPort, cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
