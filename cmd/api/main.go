package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/evandrarf/tutorly-be/database"
	"github.com/evandrarf/tutorly-be/internal/config"
	"github.com/evandrarf/tutorly-be/internal/pkg/validate"
)

func main() {
	viperConfig := config.NewViper()

	log := config.NewLogger(viperConfig)
	db := database.New(viperConfig)
	validator := validate.NewValidator()
	api := config.NewAPI(viperConfig, log)

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Info("Migrations completed successfully")

	// Run seeders
	if err := database.SeedQuestionBank(db, log); err != nil {
		log.Fatalf("Failed to seed question bank: %v", err)
	}
	if err := database.SeedDemoSchool(db, viperConfig, log); err != nil {
		log.Fatalf("Failed to seed demo school: %v", err)
	}
	log.Info("Seeders completed successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	defer stop()

	cleanup, err := config.Bootstrap(&config.BootstrapConfig{
		Config:    viperConfig,
		Log:       log,
		Api:       api,
		Validator: validator,
		DB:        db,
	})
	if err != nil {
		log.Fatalf("Failed to bootstrap: %v", err)
	}

	listenAddr := fmt.Sprintf(":%d", viperConfig.GetInt("api.port"))

	go func() {
		if err := api.Listen(listenAddr); err != nil {
			log.Fatalf("Failed to start API server: %v", err)
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := api.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorf("API shutdown error: %v", err)
	}

	cleanup()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
