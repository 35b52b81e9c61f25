package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	ordershttpmapper "github.com/Apurer/go-gin-order-api/internal/domains/orders/adapters/http/mapper"
	"github.com/Apurer/go-gin-order-api/internal/domains/orders/application"
	"github.com/Apurer/go-gin-order-api/internal/domains/orders/ports"
)

// unexpectedErrorMessage is the only text a 500 body ever carries; internal
// error detail stays in the logs.
const unexpectedErrorMessage = "An unexpected error occurred while processing your request"

// OrdersAPI wires HTTP transport with the orders use case. Its whole decision
// logic is the three-way mapping of workflow outcomes onto statuses; business
// validation belongs to the layers below.
type OrdersAPI struct {
	workflows ports.WorkflowOrchestrator
	logger    *slog.Logger
}

// NewOrdersAPI creates an OrdersAPI backed by the provided orchestrator.
func NewOrdersAPI(workflows ports.WorkflowOrchestrator, logger *slog.Logger) OrdersAPI {
	if logger == nil {
		logger = slog.Default()
	}
	return OrdersAPI{workflows: workflows, logger: logger}
}

// Post /orders
// Create a new order
func (api *OrdersAPI) CreateOrder(c *gin.Context) {
	var payload ordershttpmapper.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	result, err := api.workflows.CreateOrder(c.Request.Context(), ordershttpmapper.ToCreateOrderInput(payload))
	if err != nil {
		api.respondServiceError(c, payload.OrderID, err)
		return
	}
	c.Header("Location", fmt.Sprintf("/orders/%s", result.OrderID))
	c.JSON(http.StatusCreated, ordershttpmapper.FromResult(result))
}

func (api *OrdersAPI) respondServiceError(c *gin.Context, orderID uuid.UUID, err error) {
	var conflict *application.ConflictError
	var invalid *application.InvalidArgumentError
	switch {
	case errors.As(err, &conflict):
		api.logger.Warn("conflict creating order",
			slog.String("order.id", orderID.String()), slog.String("error", conflict.Error()))
		c.JSON(http.StatusConflict, ordershttpmapper.ErrorResponse{Error: conflict.Error()})
	case errors.As(err, &invalid):
		api.logger.Warn("bad request creating order",
			slog.String("order.id", orderID.String()), slog.String("error", invalid.Error()))
		c.JSON(http.StatusBadRequest, ordershttpmapper.ErrorResponse{Error: invalid.Error()})
	default:
		api.logger.Error("unexpected error creating order",
			slog.String("order.id", orderID.String()), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ordershttpmapper.ErrorResponse{Error: unexpectedErrorMessage})
	}
}

// respondBindingError renders structural validation failures without touching
// the workflow. Validator failures come back field-keyed; anything else
// (malformed JSON, bad uuid or timestamp text) is a single message.
func respondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fieldMessage(fe)
		}
		c.JSON(http.StatusBadRequest, gin.H{"errors": fields})
		return
	}
	c.JSON(http.StatusBadRequest, ordershttpmapper.ErrorResponse{Error: err.Error()})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s element(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return "is invalid"
	}
}
