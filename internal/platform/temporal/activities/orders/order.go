package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/go-gin-order-api/internal/domains/orders/application"
	orderstypes "github.com/Apurer/go-gin-order-api/internal/domains/orders/application/types"
	ordersports "github.com/Apurer/go-gin-order-api/internal/domains/orders/ports"
)

const (
	// CreateOrderActivityName persists an order aggregate via the orders service.
	CreateOrderActivityName = "orders.activities.CreateOrder"

	// ConflictErrorType marks an activity failure caused by an identifier collision.
	ConflictErrorType = "OrderConflict"
	// InvalidArgumentErrorType marks an activity failure caused by a business-rule violation.
	InvalidArgumentErrorType = "OrderInvalidArgument"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service ordersports.Service
}

// NewActivities wires the orders service into the Temporal activities bundle.
func NewActivities(service ordersports.Service) *Activities {
	return &Activities{service: service}
}

// CreateOrder runs the creation use case once. Conflict and invalid-argument
// outcomes are terminal business results, not transient faults, so they are
// reported as non-retryable application errors carrying their type.
func (a *Activities) CreateOrder(ctx context.Context, input orderstypes.CreateOrderInput) (*orderstypes.CreateOrderResult, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order create activity not initialized", "orderId", input.OrderID)
		return nil, errors.New("order create activity not initialized")
	}
	logger.Info("CreateOrder activity started", "orderId", input.OrderID)
	result, err := a.service.CreateOrder(ctx, input)
	if err != nil {
		logger.Error("CreateOrder activity failed", "orderId", input.OrderID, "error", err)
		return nil, classify(err)
	}
	logger.Info("CreateOrder activity completed", "orderId", result.OrderID)
	return result, nil
}

func classify(err error) error {
	var conflict *application.ConflictError
	if errors.As(err, &conflict) {
		return temporal.NewNonRetryableApplicationError(conflict.Error(), ConflictErrorType, nil)
	}
	var invalid *application.InvalidArgumentError
	if errors.As(err, &invalid) {
		return temporal.NewNonRetryableApplicationError(invalid.Error(), InvalidArgumentErrorType, nil)
	}
	if errors.Is(err, ordersports.ErrStorage) {
		return temporal.NewNonRetryableApplicationError(err.Error(), "OrderStorageFailure", nil)
	}
	return err
}
