package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	orderstypes "github.com/Apurer/go-gin-order-api/internal/domains/orders/application/types"
	orderactivities "github.com/Apurer/go-gin-order-api/internal/platform/temporal/activities/orders"
)

// RunOrderPersistenceSequence executes the single activity that persists an
// order aggregate. MaximumAttempts is pinned to 1: nothing in the creation
// path retries, and a second attempt would only trip the duplicate check.
func RunOrderPersistenceSequence(ctx workflow.Context, input orderstypes.CreateOrderInput) (*orderstypes.CreateOrderResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order persistence sequence started", "orderId", input.OrderID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var result orderstypes.CreateOrderResult
	err := workflow.ExecuteActivity(ctx, orderactivities.CreateOrderActivityName, input).Get(ctx, &result)
	if err != nil {
		logger.Error("order persistence sequence failed", "orderId", input.OrderID, "error", err)
		return nil, err
	}
	logger.Info("order persistence sequence completed", "orderId", result.OrderID)
	return &result, nil
}
