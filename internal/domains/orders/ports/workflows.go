package ports

import (
	"context"

	orderstypes "github.com/Apurer/go-gin-order-api/internal/domains/orders/application/types"
)

// WorkflowOrchestrator runs the order creation path, either inline or on a
// durable workflow engine.
type WorkflowOrchestrator interface {
	CreateOrder(ctx context.Context, input orderstypes.CreateOrderInput) (*orderstypes.CreateOrderResult, error)
}
