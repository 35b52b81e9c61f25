package memory

import (
	"context"
	"sync"

	"github.com/Apurer/go-gin-order-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-api/internal/domains/orders/ports"
	"github.com/google/uuid"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order store used for local development and tests.
type Repository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*domain.Order
}

func NewRepository() *Repository {
	return &Repository{orders: map[uuid.UUID]*domain.Order{}}
}

func (r *Repository) Exists(_ context.Context, orderID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.orders[orderID]
	return ok, nil
}

// Create stores the order and its items, rejecting identifier collisions the
// way the relational store's primary key does.
func (r *Repository) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	clone := cloneOrder(order)
	for i := range clone.Items {
		if clone.Items[i].ID == uuid.Nil {
			clone.Items[i].ID = uuid.New()
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[clone.OrderID]; ok {
		return nil, ports.ErrAlreadyExists
	}
	r.orders[clone.OrderID] = clone
	return cloneOrder(clone), nil
}

// ItemCount reports how many item rows an order holds; zero for unknown ids.
// Test helper, not part of the repository port.
func (r *Repository) ItemCount(orderID uuid.UUID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if order, ok := r.orders[orderID]; ok {
		return len(order.Items)
	}
	return 0
}

// Reset drops all stored orders.
func (r *Repository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = map[uuid.UUID]*domain.Order{}
}

func cloneOrder(order *domain.Order) *domain.Order {
	clone := *order
	clone.Items = make([]domain.OrderItem, len(order.Items))
	copy(clone.Items, order.Items)
	return &clone
}
