package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/juju/loggo"

	"github.com/vaughan-dsouza/epiqbilling/internal/config"
	"github.com/vaughan-dsouza/epiqbilling/internal/db"
	"github.com/vaughan-dsouza/epiqbilling/internal/handlers"
	"github.com/vaughan-dsouza/epiqbilling/internal/router"
	"github.com/vaughan-dsouza/epiqbilling/internal/store"
	"github.com/vaughan-dsouza/epiqbilling/internal/utils"
)

var logger = loggo.GetLogger("epiq")

func main() {
	cfg, dotenv, err := config.Load()
	if err != nil {
		logger.Criticalf("config: %v", err)
		os.Exit(1)
	}
	if err := loggo.ConfigureLoggers(cfg.LogConfig); err != nil {
		logger.Warningf("bad LOG_CONFIG %q: %v", cfg.LogConfig, err)
	}
	if !dotenv {
		logger.Infof("no .env file found")
	}

	ctx := context.Background()

	dbConn, err := db.Connect(ctx, cfg.DatabaseURL, db.PoolConfig{
		MaxOpen:     cfg.DBMaxOpen,
		MaxIdle:     cfg.DBMaxIdle,
		MaxLifetime: cfg.DBMaxLifetime,
	})
	if err != nil {
		logger.Criticalf("db connect: %v", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	if cfg.DBMigrate {
		if err := db.Migrate(ctx, dbConn); err != nil {
			logger.Criticalf("db migrate: %v", err)
			os.Exit(1)
		}
	}

	tokens := utils.TokenIssuer{Secret: cfg.AccessSecret, TTL: cfg.AccessTTL}
	h := handlers.NewHandler(
		store.New(dbConn),
		utils.BcryptHasher{Cost: cfg.BcryptCost},
		tokens,
		func(ctx context.Context) error { return db.HealthCheck(ctx, dbConn) },
	)

	if cfg.SeedSuperadmin() {
		created, err := h.Auth.EnsureSuperadmin(ctx, cfg.SuperadminEmail, cfg.SuperadminPassword)
		if err != nil {
			logger.Criticalf("seed superadmin: %v", err)
			os.Exit(1)
		}
		if created {
			logger.Infof("created superadmin %s", cfg.SuperadminEmail)
		}
	}

	r := router.New(h, router.Options{
		Tokens:       tokens,
		RequireToken: cfg.RequireToken,
		CORSOrigins:  cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Criticalf("listen: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Infof("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
	}

	logger.Infof("server exited")
}
