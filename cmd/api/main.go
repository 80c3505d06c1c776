package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pg "vet-clinic/internal/adapters/storage/postgres"
	"vet-clinic/internal/config"
	"vet-clinic/internal/platform/logger"
	"vet-clinic/internal/router"
)

// @title Vet Clinic API
// @version 1.0
// @description Clientes, mascotas, agenda de citas con detección de solapes y facturación.
// @BasePath /
func main() {
	os.Exit(run())
}

// run devuelve el código de salida; los defers se ejecutan antes de os.Exit.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return 1
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	loc, err := cfg.Location()
	if err != nil {
		log.Error("invalid timezone", map[string]any{"error": err.Error()})
		return 1
	}

	opts := router.Options{
		Logger:            log,
		InvoiceNumberYear: cfg.InvoiceNumberYear,
		Location:          loc,
	}

	if cfg.DatabaseURL != "" {
		db, err := pg.Open(cfg.DatabaseURL)
		if err != nil {
			log.Error("database connection failed", map[string]any{"error": err.Error()})
			return 1
		}
		defer db.Close()

		if cfg.RunMigrations {
			if err := pg.Migrate(db); err != nil {
				log.Error("migrations failed", map[string]any{"error": err.Error()})
				return 1
			}
			log.Info("migrations applied", nil)
		}
		opts.DB = db
	} else {
		log.Warn("DATABASE_URL not set, using in-memory storage", nil)
	}

	log.Info("config loaded", map[string]any{"env": cfg.Env})
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	if err := serve(srv, log, quit); err != nil {
		log.Error("server error", map[string]any{"error": err.Error()})
		return 1
	}
	return 0
}

// serve atiende hasta recibir una señal en quit o hasta que el listener falla.
func serve(srv *http.Server, log logger.Logger, quit <-chan os.Signal) error {
	serverErr := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-quit:
	}

	log.Info("shutting down", nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	return nil
}
