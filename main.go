// Command finstarter runs the authentication and session API behind the
// finstarter web app.
//
// @title Finstarter API
// @version 1.0
// @description Authentication and session boundary for the finstarter app.
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @BasePath /
// @securityDefinitions.apikey CookieAuth
// @in header
// @name Cookie
// @description Session cookie set by login or register (token=...)
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

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/user/finstarter-go/config"
	"github.com/user/finstarter-go/db"
	_ "github.com/user/finstarter-go/docs" // Generated Swagger docs
	"github.com/user/finstarter-go/logging"
)

func main() {
	app := &cli.App{
		Name:  "finstarter",
		Usage: "authentication and session API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Value: ".env",
				Usage: "dotenv file to load before reading the environment",
			},
		},
		Before: loadEnv,
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP server (default)",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "manage the postgres schema",
				Subcommands: []*cli.Command{
					{Name: "up", Usage: "apply pending migrations", Action: migrateUp},
					{Name: "down", Usage: "roll back the last migration", Action: migrateDown},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logging.Default().Error(context.Background(), "fatal", "error", err)
		os.Exit(1)
	}
}

// loadEnv reads the dotenv file if present. In production variables are set directly.
func loadEnv(c *cli.Context) error {
	if err := godotenv.Load(c.String("env-file")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", c.String("env-file"), err)
	}
	return nil
}

// setup loads configuration and installs the process logger.
func setup() (*config.AppConfig, logging.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	logging.SetDefault(logging.NewJSONLogger(os.Stdout, cfg.Server.LogLevel))
	return cfg, logging.Default(), nil
}

func serve(c *cli.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logging.NewContext(ctx, log)

	repo, closeRepo, err := openRepository(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer closeRepo()

	svc, err := newServices(cfg, repo)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      newRouter(cfg, svc, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "server starting", "addr", srv.Addr, "env", cfg.Server.Env, "backend", cfg.Database.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info(ctx, "server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info(ctx, "server stopped gracefully")
	return nil
}

func migrateUp(c *cli.Context) error {
	return runMigration(c, "up", db.RunMigrations)
}

func migrateDown(c *cli.Context) error {
	return runMigration(c, "down", db.RollbackMigrations)
}

func runMigration(c *cli.Context, direction string, run func(databaseURL string) error) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	if cfg.Database.Backend != config.BackendPostgres {
		return fmt.Errorf("migrations only apply to the postgres backend, STORE_BACKEND is %q", cfg.Database.Backend)
	}

	if err := run(cfg.Database.URL); err != nil {
		return err
	}
	log.Info(c.Context, "migrations complete", "direction", direction)
	return nil
}
