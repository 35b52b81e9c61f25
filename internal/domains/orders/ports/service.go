package ports

import (
	"context"

	orderstypes "github.com/Apurer/go-gin-order-api/internal/domains/orders/application/types"
)

// Service exposes the order creation use case to adapters. The context is
// create-only; there is no read, update, or delete operation.
type Service interface {
	CreateOrder(ctx context.Context, input orderstypes.CreateOrderInput) (*orderstypes.CreateOrderResult, error)
}
