package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackyeh168/jewel_rewards/src/internal/bootstrap"
	"github.com/jackyeh168/jewel_rewards/src/internal/config"
	"github.com/jackyeh168/jewel_rewards/src/internal/infrastructure/gateway"
	"github.com/jackyeh168/jewel_rewards/src/internal/infrastructure/logging"
	"github.com/jackyeh168/jewel_rewards/src/internal/infrastructure/persistence"
	"github.com/jackyeh168/jewel_rewards/src/internal/infrastructure/persistence/schema"
	"github.com/jackyeh168/jewel_rewards/src/internal/infrastructure/realtime"
	"github.com/jackyeh168/jewel_rewards/src/internal/interfaces/httpapi"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	migrateOnly := flag.Bool("migrate", false, "run schema migration and exit")
	flag.Parse()

	if err := run(*configPath, *migrateOnly); err != nil {
		fmt.Fprintf(os.Stderr, "rewardsd: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, migrateOnly bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, syncLogs, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = syncLogs() }()
	slog.SetDefault(logger)

	db, err := persistence.Open(persistence.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		Debug:           cfg.Database.Debug,
	})
	if err != nil {
		return err
	}
	defer persistence.Close(db)

	if err := schema.Migrate(db); err != nil {
		return err
	}
	logger.Info("schema migrated", slog.String("driver", cfg.Database.Driver))
	if migrateOnly {
		return nil
	}

	hub := realtime.NewHub(cfg.Realtime.Buffer, logger)
	defer hub.Close()

	invoker := gateway.NewFunctionInvoker(gateway.Config{
		FunctionsURL: cfg.Gateway.FunctionsURL,
		ServiceKey:   cfg.Gateway.ServiceKey,
		Timeout:      cfg.Gateway.Timeout,
		Logger:       logger,
	})
	if err := bootstrap.Subscribe(hub, bootstrap.NotificationDeps{
		DB:      db,
		Invoker: invoker,
		Timeout: cfg.Gateway.Timeout,
		Logger:  logger,
	}); err != nil {
		return fmt.Errorf("subscribe handlers: %w", err)
	}

	services := bootstrap.NewServices(bootstrap.Deps{
		DB:        db,
		Publisher: hub,
		Location:  cfg.Location(),
		Logger:    logger,
	})
	router := httpapi.NewRouter(services, httpapi.Options{
		Auth:           httpapi.NewAuthenticator(cfg.Auth.JWTSecret),
		Logger:         logger,
		RequestTimeout: cfg.HTTP.RequestTimeout,
		Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	})

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.HTTP.RequestTimeout,
		WriteTimeout:      cfg.HTTP.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.HTTP.Addr),
			slog.String("timezone", cfg.Store.Timezone),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server exited")
	return nil
}
