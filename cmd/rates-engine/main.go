package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"

	"github.com/Checker-Finance/rates-engine/internal/api"
	"github.com/Checker-Finance/rates-engine/internal/engine"
	"github.com/Checker-Finance/rates-engine/internal/publisher"
	"github.com/Checker-Finance/rates-engine/internal/store"
	"github.com/Checker-Finance/rates-engine/internal/validation"
	"github.com/Checker-Finance/rates-engine/pkg/config"
	"github.com/Checker-Finance/rates-engine/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Load configuration ---
	cfg := config.Load()

	logger.Init(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	logg := logger.S()
	logg.Info("starting [rates-engine]...")

	// --- Connect to NATS ---
	nc, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		logg.Fatalw("failed to connect to NATS", "error", err)
	}

	// --- Publisher ---
	pub, err := publisher.New(nc, cfg.OutboundSubject, "RATES_EVENTS")
	if err != nil {
		logg.Fatalw("failed to init publisher", "error", err)
	}

	// --- Store (Redis + Postgres hybrid) ---
	st, err := store.NewHybrid(cfg.RedisAddr, cfg.RedisDB, cfg.RedisPass, cfg.DatabaseURL, store.PGPoolConfig{
		MaxConns:          int32(cfg.PGMaxConns),
		MinConns:          int32(cfg.PGMinConns),
		MaxConnLifetime:   cfg.PGMaxConnLifetime,
		MaxConnIdleTime:   cfg.PGMaxConnIdleTime,
		HealthCheckPeriod: cfg.PGHealthCheckPeriod,
	}, logg.Desugar())
	if err != nil {
		logg.Fatalw("failed to init store", "error", err)
	}

	// --- Validator ---
	validator := validation.New(validation.Config{
		StrictMode:  cfg.StrictMode,
		MinNotional: cfg.MinNotional,
		MaxNotional: cfg.MaxNotional,
	})

	// --- Engine (NATS consumer + worker pool) ---
	eng := engine.New(cfg, logg.Desugar(), validator, pub, st)
	if err := eng.Start(ctx, nc); err != nil {
		logg.Fatalw("failed to start engine", "error", err)
	}

	// --- Fiber HTTP Server ---
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
		BodyLimit:    cfg.HTTPBodyLimit,
	})

	ratesHandler := api.NewRatesHandler(logg.Desugar(), eng)
	queryHandler := api.NewQueryHandler(logg.Desugar(), st)
	api.RegisterRoutes(app, nc, st, ratesHandler, queryHandler)

	go func() {
		logg.Infof("HTTP API listening on :%d", cfg.Port)
		if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			logg.Fatalw("fiber.listen_failed", "error", err)
		}
	}()

	// --- Main process stays alive until interrupted ---
	logg.Infow("[rates-engine] running",
		"nats", cfg.NATSURL,
		"env", cfg.Env,
		"inbound_subject", cfg.InboundSubject,
		"workers", cfg.Workers)

	<-ctx.Done()
	logg.Info("shutting down [rates-engine]...")

	eng.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logg.Warnw("fiber.shutdown_failed", "error", err)
	}
	if err := nc.Drain(); err != nil {
		logg.Warnw("nats.drain_failed", "error", err)
	}
	if err := st.Close(); err != nil {
		logg.Warnw("store.close_failed", "error", err)
	}
}
