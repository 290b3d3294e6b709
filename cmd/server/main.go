// cmd/server/main.go
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

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/podworks/pod-backend/internal/cache"
	"github.com/podworks/pod-backend/internal/config"
	"github.com/podworks/pod-backend/internal/database"
	"github.com/podworks/pod-backend/internal/router"
	"github.com/podworks/pod-backend/internal/scheduler"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	if cfg.Environment == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	// Initialize database
	db, err := database.Initialize(cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close(db)

	if cfg.Database.ForceReset {
		if err := database.ForceReset(db); err != nil {
			log.Fatal("Failed to reset database:", err)
		}
	}

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if cfg.Database.SeedData {
		if err := database.SeedInitialData(db); err != nil {
			log.Fatal("Failed to seed data:", err)
		}
	}

	// Redis cache, degrades to no-op when unreachable
	cacheClient := cache.NewClient(cfg.Redis)
	defer cacheClient.Close()

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r, deps, err := router.Initialize(db, cfg, cacheClient)
	if err != nil {
		log.Fatal("Failed to initialize router:", err)
	}

	// Start scheduled jobs
	jobs := scheduler.New(cfg, deps.AnalyticsService, deps.GenerationService)
	if err := jobs.Start(); err != nil {
		log.Fatal("Failed to start scheduler:", err)
	}
	defer jobs.Stop()

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
