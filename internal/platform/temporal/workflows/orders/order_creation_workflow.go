package orders

import (
	"go.temporal.io/sdk/workflow"

	orderstypes "github.com/Apurer/go-gin-order-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-order-api/internal/platform/temporal/sequences"
)

const (
	// OrderCreationWorkflowName is the public identifier for registering the workflow.
	OrderCreationWorkflowName = "orders.workflows.Creation"
	// OrderCreationTaskQueue is the queue consumed by the worker processing order workflows.
	OrderCreationTaskQueue = "ORDER_CREATION"
)

// OrderCreationWorkflowInput captures the payload required to create an order.
type OrderCreationWorkflowInput struct {
	Command orderstypes.CreateOrderInput
	TraceID string
}

// OrderCreationWorkflow orchestrates the activities needed to persist an order aggregate.
func OrderCreationWorkflow(ctx workflow.Context, input OrderCreationWorkflowInput) (*orderstypes.CreateOrderResult, error) {
	logger := workflow.GetLogger(ctx)
	orderID := input.Command.OrderID
	logger.Info("OrderCreationWorkflow started", withTraceID(input.TraceID, "orderId", orderID)...)
	result, err := sequences.RunOrderPersistenceSequence(ctx, input.Command)
	if err != nil {
		logger.Error("OrderCreationWorkflow failed", withTraceID(input.TraceID, "orderId", orderID, "error", err)...)
		return nil, err
	}
	logger.Info("OrderCreationWorkflow completed", withTraceID(input.TraceID, "orderId", result.OrderID)...)
	return result, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
