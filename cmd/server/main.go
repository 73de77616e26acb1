package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scamdb/internal/api"
	"scamdb/internal/app/service"
	"scamdb/internal/common/security"
	"scamdb/internal/domain/repository"
	"scamdb/internal/platform/cache"
	"scamdb/internal/platform/config"
	"scamdb/internal/platform/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize token manager
	tokens := security.NewTokenManager(cfg.JWTKey)

	// 3. Initialize Database
	db, err := database.Connect(cfg.DBConnStr)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()
	fmt.Println("Database connected.")

	ctx := context.Background()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("Schema setup failed: %v", err)
	}

	// 4. Initialize the statistics cache when redis is configured
	var statsCache *cache.StatsCache
	if cfg.RedisAddr != "" {
		rdb, err := cache.Connect(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("Redis connection failed: %v", err)
		}
		defer rdb.Close()
		statsCache = cache.NewStatsCache(rdb, 30*time.Second)
		fmt.Println("Redis connected.")
	}

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(db)
	scammerRepo := repository.NewPgScammerRepository(db)

	// 6. Initialize Services
	authService := service.NewAuthService(userRepo, tokens, cfg.TokenTTL)
	scammerService := service.NewScammerService(scammerRepo, statsCache)

	// 7. Bootstrap admin account
	if err := authService.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("Admin bootstrap failed: %v", err)
	}

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(authService, scammerService, userRepo, tokens, cfg.CORSOrigins)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully.")
}
