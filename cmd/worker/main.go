package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	apicfg "github.com/Apurer/go-gin-order-api/internal/app/api"
	ordersmemory "github.com/Apurer/go-gin-order-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-gin-order-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Apurer/go-gin-order-api/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/Apurer/go-gin-order-api/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-gin-order-api/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-order-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-order-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-order-api/internal/platform/postgres"
	orderactivities "github.com/Apurer/go-gin-order-api/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Apurer/go-gin-order-api/internal/platform/temporal/workflows/orders"
)

func main() {
	ctx := context.Background()
	const serviceName = "order-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger
	cfg := apicfg.LoadConfig()

	orderRepo, cleanupRepo := buildOrderRepository(ctx, logger)
	defer cleanupRepo()
	orderService := ordersobs.New(
		ordersapp.NewService(orderRepo),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	activities := orderactivities.NewActivities(orderService)

	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer("temporal-worker"),
	})
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderCreationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderCreationWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderCreationWorkflowName})
	w.RegisterActivityWithOptions(activities.CreateOrder, activity.RegisterOptions{Name: orderactivities.CreateOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderCreationTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildOrderRepository(ctx context.Context, logger *slog.Logger) (ordersports.Repository, func()) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	if db == nil {
		return ordersmemory.NewRepository(), cleanup
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("worker failed to apply orders schema, falling back to memory", slog.String("error", err.Error()))
		cleanup()
		return ordersmemory.NewRepository(), func() {}
	}
	logger.Info("worker order repository configured with postgres")
	return orderspostgres.NewRepository(db), cleanup
}
