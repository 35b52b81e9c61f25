package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	ordershttp "github.com/Apurer/go-gin-order-api/internal/domains/orders/adapters/http"
	ordersmemory "github.com/Apurer/go-gin-order-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-gin-order-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Apurer/go-gin-order-api/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/Apurer/go-gin-order-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/go-gin-order-api/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-gin-order-api/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-order-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-order-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-order-api/internal/platform/postgres"
)

// Run boots the order HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "order-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger
	cfg := LoadConfig()

	orderRepo, cleanupRepo := buildOrderRepository(ctx, logger)
	defer cleanupRepo()
	orderService := ordersobs.New(
		ordersapp.NewService(orderRepo),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	var orderWorkflows ordersports.WorkflowOrchestrator = ordersworkflows.NewInlineOrderWorkflows(orderService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running inline CreateOrder", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = ordersworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	api := ordershttp.NewOrdersAPI(orderWorkflows, logger)
	router := ordershttp.NewRouter(api, otelgin.Middleware(serviceName))

	addr := ":" + cfg.Port
	logger.Info("order API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("order API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildOrderRepository(ctx context.Context, logger *slog.Logger) (ordersports.Repository, func()) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	if db == nil {
		return ordersmemory.NewRepository(), cleanup
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to apply orders schema, falling back to memory", slog.String("error", err.Error()))
		cleanup()
		return ordersmemory.NewRepository(), func() {}
	}
	logger.Info("order repository configured with postgres")
	return orderspostgres.NewRepository(db), cleanup
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.Default()
}
