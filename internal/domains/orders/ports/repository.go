package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-order-api/internal/domains/orders/domain"
	"github.com/google/uuid"
)

var (
	// ErrAlreadyExists signals an order identifier collision surfaced by the store.
	ErrAlreadyExists = errors.New("order already exists")
	// ErrStorage wraps unexpected persistence failures. The store never
	// retries; callers decide what, if anything, to do about it.
	ErrStorage = errors.New("order storage failure")
)

// Repository persists order aggregates. Create writes the order and all of
// its items as one atomic unit or not at all.
type Repository interface {
	Exists(ctx context.Context, orderID uuid.UUID) (bool, error)
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
}
