package application

import (
	"context"

	orderstypes "github.com/Apurer/go-gin-order-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-order-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-api/internal/domains/orders/ports"
)

// CreatedMessage is the confirmation text echoed on every successful create.
const CreatedMessage = "Order created successfully"

// Service orchestrates order creation. Transport-level field validation has
// already run by the time a command reaches it; the service owns the
// duplicate check, the cross-field item-count rule, aggregate construction,
// and persistence.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateOrder runs the creation workflow, short-circuiting on the first
// failure. The existence check and the insert are not atomic across
// processes; the store's primary-key constraint closes that race, and
// mapError folds the late collision into the same conflict outcome.
func (s *Service) CreateOrder(ctx context.Context, input orderstypes.CreateOrderInput) (*orderstypes.CreateOrderResult, error) {
	exists, err := s.repo.Exists(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &ConflictError{OrderID: input.OrderID}
	}

	items := make([]domain.ItemInput, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, domain.ItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	order, err := domain.NewOrder(input.OrderID, input.CustomerName, input.CreatedAt, items)
	if err != nil {
		return nil, mapError(err, input.OrderID)
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, mapError(err, input.OrderID)
	}
	return &orderstypes.CreateOrderResult{OrderID: created.OrderID, Message: CreatedMessage}, nil
}

var _ ports.Service = (*Service)(nil)
