package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SergeyBogomolovv/shop-orders/internal/app"
	"github.com/SergeyBogomolovv/shop-orders/internal/config"
	"github.com/SergeyBogomolovv/shop-orders/internal/database"
	"github.com/SergeyBogomolovv/shop-orders/internal/handler"
	"github.com/SergeyBogomolovv/shop-orders/internal/repo"
	"github.com/SergeyBogomolovv/shop-orders/internal/service"
	"github.com/SergeyBogomolovv/shop-orders/internal/validation"
	"github.com/SergeyBogomolovv/shop-orders/pkg/trm"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// @title           Shop Orders API
// @version         1.0
// @description     Order management HTTP API
// @BasePath        /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	godotenv.Load()
}

func newRootCmd() *cobra.Command {
	serveCmd := newServeCmd()

	root := &cobra.Command{
		Use:           "shop-orders",
		Short:         "Order management service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serveCmd.RunE,
	}
	root.AddCommand(serveCmd, newBootstrapCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Prepare storage and run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func newBootstrapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap",
		Short: "Create the orders table and insert seed orders if it is empty",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, logger, err := setup()
			if err != nil {
				return err
			}

			db, err := database.New(cmd.Context(), conf.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			return newOrderService(logger, db).Bootstrap(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	conf, logger, err := setup()
	if err != nil {
		return err
	}

	db, err := database.New(ctx, conf.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info("database connected", slog.String("driver", conf.Database.Driver))

	orderService := newOrderService(logger, db)
	if err := orderService.Bootstrap(ctx); err != nil {
		return err
	}

	handler.RegisterMetrics(prometheus.DefaultRegisterer)

	application := app.New(logger, conf)
	application.SetHTTPHandlers(handler.NewHTTPHandler(logger, orderService))
	if conf.Kafka.Enabled {
		application.SetConsumers(handler.NewKafkaHandler(logger, conf.Kafka, orderService))
	}

	if err := application.Start(ctx); err != nil {
		return fmt.Errorf("failed to start app: %w", err)
	}

	select {
	case <-ctx.Done():
	case <-application.Done():
		logger.Error("application failed, shutting down")
	}

	if err := application.Stop(); err != nil {
		return fmt.Errorf("failed to stop app: %w", err)
	}
	return nil
}

func setup() (config.Config, *slog.Logger, error) {
	conf := config.New()
	logger := newLogger(conf.Env)
	if err := conf.Validate(); err != nil {
		return conf, logger, fmt.Errorf("invalid config: %w", err)
	}
	return conf, logger, nil
}

type orderService interface {
	handler.OrderService
	Bootstrap(ctx context.Context) error
}

func newOrderService(logger *slog.Logger, db *sqlx.DB) orderService {
	return service.NewOrderService(logger, trm.NewManager(db), validation.New(), repo.NewSQLRepo(db))
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
