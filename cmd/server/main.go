package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"solarne-backend/internal/auth"
	"solarne-backend/internal/cache"
	"solarne-backend/internal/config"
	"solarne-backend/internal/handlers"
	"solarne-backend/internal/services"
	"solarne-backend/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Database connection (with retries)
	var db *sqlx.DB
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("postgres", cfg.DSN())
		if err == nil {
			break
		}
		log.Printf("DB connection attempt %d failed: %v", i+1, err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to database")

	store := storage.NewStorage(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	if err := auth.SeedAdmin(ctx, store, cfg); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	// Listing cache (optional)
	var listCache cache.Client
	if cfg.RedisURL != "" {
		redisClient, err := cache.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		listCache = redisClient
		log.Println("Connected to Redis")
	} else {
		log.Println("REDIS_URL not set, listing cache disabled")
	}

	tokens := auth.NewTokenService(cfg)
	authHandler := auth.NewHandler(store, tokens, cfg.BcryptCost)
	notifier := services.NewLeadNotifier(cfg.LeadWebhookURL)

	h := handlers.New(store, store, listCache, notifier, store)

	// Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	h.RegisterRoutes(r, authHandler, tokens, cfg.AdminEmail)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Println("Shutting down...")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("Server starting on %s", cfg.Addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}
