package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-order-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-api/internal/domains/orders/ports"
	"github.com/google/uuid"
)

// ConflictError reports an order identifier that is already persisted. Its
// message is client-facing.
type ConflictError struct {
	OrderID uuid.UUID
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("Order with ID %s already exists", e.OrderID)
}

// InvalidArgumentError reports a business-rule violation on otherwise
// well-formed input. Its message is client-facing.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return e.Reason
}

// mapError translates domain and store errors into the use-case vocabulary.
// A uniqueness violation surfaced at persist time becomes the same conflict
// as an early existence hit. Storage failures pass through unchanged.
func mapError(err error, orderID uuid.UUID) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ports.ErrAlreadyExists) {
		return &ConflictError{OrderID: orderID}
	}
	if errors.Is(err, domain.ErrMissingOrderID) ||
		errors.Is(err, domain.ErrEmptyCustomerName) ||
		errors.Is(err, domain.ErrCustomerNameTooLong) ||
		errors.Is(err, domain.ErrNoItems) ||
		errors.Is(err, domain.ErrMissingProductID) ||
		errors.Is(err, domain.ErrInvalidQuantity) {
		return &InvalidArgumentError{Reason: err.Error()}
	}
	return err
}
