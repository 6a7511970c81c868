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

	"waterdelivery/cmd"
	httpin "waterdelivery/internal/adapters/in/http"
	postgres_adapter "waterdelivery/internal/adapters/out/postgres"
	"waterdelivery/internal/adapters/out/redis"
	"waterdelivery/internal/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	shutdownTimeout    = 10 * time.Second
	slowQueryThreshold = 200 * time.Millisecond
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:          "waterdelivery",
		Short:        "Water delivery request and allocation engine",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API and the scheduled jobs",
			RunE: func(c *cobra.Command, _ []string) error {
				return serve(c.Context(), envFile)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply pending database migrations",
			RunE: func(_ *cobra.Command, _ []string) error {
				return migrate(envFile)
			},
		},
	)
	return root
}

func setup(envFile string) (cmd.Config, *zap.Logger, error) {
	configs, err := cmd.LoadConfig(envFile)
	if err != nil {
		return cmd.Config{}, nil, err
	}

	log, err := logger.New(logger.Config{Level: configs.LogLevel, Format: configs.LogFormat, Output: "stdout"})
	if err != nil {
		return cmd.Config{}, nil, err
	}
	return configs, log, nil
}

func migrate(envFile string) error {
	configs, log, err := setup(envFile)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := postgres_adapter.OpenMigrationDB(configs.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	if err = postgres_adapter.Migrate(db); err != nil {
		return err
	}

	version, err := postgres_adapter.MigrationVersion(db)
	if err != nil {
		return err
	}
	log.Info("migrations applied", zap.Int64("version", version))
	return nil
}

func serve(ctx context.Context, envFile string) error {
	configs, log, err := setup(envFile)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{
		Logger: logger.NewGormLogger(log, logger.GormLevel(configs.LogLevel), slowQueryThreshold),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	redisClient, err := redis.NewClient(ctx, configs.RedisAddr, configs.RedisPassword, configs.RedisDB)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	app, err := cmd.NewCompositionRoot(configs, gormDB, redisClient, log)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			log.Warn("failed to close event publishers", zap.Error(closeErr))
		}
	}()

	if err = app.SeedTicketCodes(ctx); err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	return startWebServer(ctx, app, configs.HTTPPort, log)
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, log *zap.Logger) error {
	e := httpin.NewEcho(app.CreateServer())

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("port", port))
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.Info("shutting down http server")
	return e.Shutdown(shutdownCtx)
}
