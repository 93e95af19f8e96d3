package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/mentorship_api/internal/app"
	"github.com/Freeeeeet/mentorship_api/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCommand() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API, the Telegram bot and the reminder scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			logger := app.NewLogger(cfg.Environment, cfg.LogFile)
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger.Info("Starting mentorship service",
				zap.String("environment", cfg.Environment),
				zap.String("http_addr", cfg.HTTPAddr),
				zap.Bool("telegram", cfg.TelegramToken != ""),
				zap.Bool("redis", cfg.RedisAddr != ""),
			)

			application, err := app.New(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer application.Close()

			if migrate {
				if err := runMigrations(ctx, application.Pool(), logger); err != nil {
					return err
				}
			}

			if err := application.Run(ctx); err != nil {
				logger.Error("Service stopped with error", zap.Error(err))
				return err
			}

			logger.Info("Service stopped")
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before start")

	return cmd
}

func runMigrations(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	migrator, err := app.NewMigrator(pool, logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	return migrator.Run(ctx)
}
