package mapper

import (
	"time"

	orderstypes "github.com/Apurer/go-gin-order-api/internal/domains/orders/application/types"
	"github.com/google/uuid"
)

// OrderItemRequest is one requested line of the transport payload.
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int32     `json:"quantity" binding:"required,min=1,max=1000"`
}

// CreateOrderRequest is the POST /orders payload. Field-level rules live in
// the binding tags and run before the use case is invoked; the item-count
// rule is re-checked by the workflow because it is a business rule.
type CreateOrderRequest struct {
	OrderID      uuid.UUID          `json:"orderId" binding:"required"`
	CustomerName string             `json:"customerName" binding:"required,max=100"`
	CreatedAt    time.Time          `json:"createdAt"`
	Items        []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateOrderResponse confirms the created resource.
type CreateOrderResponse struct {
	OrderID uuid.UUID `json:"orderId"`
	Message string    `json:"message"`
}

// ErrorResponse is the body shape of every non-field error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToCreateOrderInput converts the transport payload into the use-case command.
func ToCreateOrderInput(req CreateOrderRequest) orderstypes.CreateOrderInput {
	items := make([]orderstypes.LineItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, orderstypes.LineItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return orderstypes.CreateOrderInput{
		OrderID:      req.OrderID,
		CustomerName: req.CustomerName,
		CreatedAt:    req.CreatedAt,
		Items:        items,
	}
}

// FromResult converts the use-case result to the transport representation.
func FromResult(result *orderstypes.CreateOrderResult) CreateOrderResponse {
	if result == nil {
		return CreateOrderResponse{}
	}
	return CreateOrderResponse{OrderID: result.OrderID, Message: result.Message}
}
