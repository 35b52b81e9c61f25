package types

import (
	"time"

	"github.com/google/uuid"
)

// LineItemInput carries one requested order line.
type LineItemInput struct {
	ProductID uuid.UUID
	Quantity  int32
}

// CreateOrderInput is the command accepted by the order creation use case.
// OrderID is client-supplied and acts as the idempotency key.
type CreateOrderInput struct {
	OrderID      uuid.UUID
	CustomerName string
	CreatedAt    time.Time
	Items        []LineItemInput
}

// CreateOrderResult confirms a persisted order.
type CreateOrderResult struct {
	OrderID uuid.UUID
	Message string
}
