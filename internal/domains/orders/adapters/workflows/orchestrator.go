package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/go-gin-order-api/internal/domains/orders/application"
	orderstypes "github.com/Apurer/go-gin-order-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-order-api/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/go-gin-order-api/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Apurer/go-gin-order-api/internal/platform/temporal/workflows/orders"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalOrderWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineOrderWorkflows)(nil)
)

// TemporalOrderWorkflows starts order workflows on a Temporal cluster.
type TemporalOrderWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalOrderWorkflows wires a Temporal client into the orchestrator.
func NewTemporalOrderWorkflows(c client.Client) *TemporalOrderWorkflows {
	return &TemporalOrderWorkflows{client: c, taskQueue: orderworkflows.OrderCreationTaskQueue}
}

// CreateOrder starts the Temporal workflow that persists an order aggregate.
// The order id keys the workflow id, so a concurrent duplicate POST attaches
// to the in-flight run instead of starting a second one.
func (o *TemporalOrderWorkflows) CreateOrder(ctx context.Context, input orderstypes.CreateOrderInput) (*orderstypes.CreateOrderResult, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal order workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	options := client.StartWorkflowOptions{
		ID:        fmt.Sprintf("order-creation-%s", input.OrderID),
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.OrderCreationWorkflow,
		orderworkflows.OrderCreationWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			existingRun := o.client.GetWorkflow(ctx, options.ID, alreadyStarted.RunId)
			var result orderstypes.CreateOrderResult
			if err := existingRun.Get(ctx, &result); err != nil {
				return nil, mapWorkflowError(err, input)
			}
			return &result, nil
		}
		return nil, err
	}
	var result orderstypes.CreateOrderResult
	if err := run.Get(ctx, &result); err != nil {
		return nil, mapWorkflowError(err, input)
	}
	return &result, nil
}

// mapWorkflowError reconstitutes typed use-case errors from the application
// errors the activity classified, so the durable path surfaces the same
// conflict and invalid-argument outcomes as the inline one.
func mapWorkflowError(err error, input orderstypes.CreateOrderInput) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case orderactivities.ConflictErrorType:
		return &application.ConflictError{OrderID: input.OrderID}
	case orderactivities.InvalidArgumentErrorType:
		return &application.InvalidArgumentError{Reason: appErr.Message()}
	default:
		return err
	}
}

// InlineOrderWorkflows executes the service directly without Temporal, useful
// for tests or dev fallbacks.
type InlineOrderWorkflows struct {
	service ports.Service
}

// NewInlineOrderWorkflows wraps the orders service for synchronous execution.
func NewInlineOrderWorkflows(service ports.Service) *InlineOrderWorkflows {
	return &InlineOrderWorkflows{service: service}
}

// CreateOrder delegates to the application service without durable orchestration.
func (o *InlineOrderWorkflows) CreateOrder(ctx context.Context, input orderstypes.CreateOrderInput) (*orderstypes.CreateOrderResult, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline order workflows not configured")
	}
	return o.service.CreateOrder(ctx, input)
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() || !spanCtx.TraceID().IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
