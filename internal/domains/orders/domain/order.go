package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxCustomerNameLength bounds the customer name column.
	MaxCustomerNameLength = 100
	// MaxItemQuantity bounds a single line item quantity.
	MaxItemQuantity = 1000
)

var (
	ErrMissingOrderID      = errors.New("order id is required")
	ErrEmptyCustomerName   = errors.New("customer name is required")
	ErrCustomerNameTooLong = errors.New("customer name must be at most 100 characters")
	ErrNoItems             = errors.New("order must contain at least one item")
	ErrMissingProductID    = errors.New("product id is required")
	ErrInvalidQuantity     = errors.New("quantity must be between 1 and 1000")
)

// Order models a customer purchase order aggregate. The identifier is
// caller-supplied and doubles as the duplicate-detection key.
type Order struct {
	OrderID      uuid.UUID
	CustomerName string
	CreatedAt    time.Time
	Total        float64
	Items        []OrderItem
}

// OrderItem is a single line of its owning order. It carries the parent
// identifier by value only; the aggregate owns the item, not the reverse.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Quantity  int32
}

// ItemInput is the pre-aggregate shape of a line item. Item identifiers are
// never supplied by callers; NewOrder mints them.
type ItemInput struct {
	ProductID uuid.UUID
	Quantity  int32
}

// NewOrder validates the inputs and constructs the aggregate, stamping every
// line item with a fresh identifier and the parent order id. Total is
// persisted but nothing computes it yet, so it stays zero.
func NewOrder(orderID uuid.UUID, customerName string, createdAt time.Time, items []ItemInput) (*Order, error) {
	order := &Order{
		OrderID:      orderID,
		CustomerName: customerName,
		CreatedAt:    createdAt,
		Total:        0,
		Items:        make([]OrderItem, 0, len(items)),
	}
	for _, item := range items {
		order.Items = append(order.Items, OrderItem{
			ID:        uuid.New(),
			OrderID:   orderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate. Duplicate product ids across
// items are allowed; each line is independent and quantities never merge.
func (o *Order) Validate() error {
	if o.OrderID == uuid.Nil {
		return ErrMissingOrderID
	}
	if o.CustomerName == "" {
		return ErrEmptyCustomerName
	}
	if len(o.CustomerName) > MaxCustomerNameLength {
		return ErrCustomerNameTooLong
	}
	if len(o.Items) == 0 {
		return ErrNoItems
	}
	for _, item := range o.Items {
		if item.ProductID == uuid.Nil {
			return ErrMissingProductID
		}
		if item.Quantity < 1 || item.Quantity > MaxItemQuantity {
			return ErrInvalidQuantity
		}
	}
	return nil
}
