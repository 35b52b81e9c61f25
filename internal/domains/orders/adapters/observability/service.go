package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-order-api/internal/domains/orders/application"
	orderstypes "github.com/Apurer/go-gin-order-api/internal/domains/orders/application/types"
	ordersports "github.com/Apurer/go-gin-order-api/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/go-gin-order-api/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core orders service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) CreateOrder(ctx context.Context, input orderstypes.CreateOrderInput) (*orderstypes.CreateOrderResult, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CreateOrder",
		trace.WithAttributes(
			attribute.String("order.id", input.OrderID.String()),
			attribute.Int("order.items", len(input.Items)),
		))
	defer span.End()

	s.logInfo(ctx, "creating order", slog.String("order.id", input.OrderID.String()))
	result, err := s.inner.CreateOrder(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, slog.String("order.id", input.OrderID.String()))
	}
	s.metrics.recordCreated(ctx, len(input.Items))
	s.logInfo(ctx, "order created", slog.String("order.id", result.OrderID.String()))
	return result, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	var conflict *application.ConflictError
	var invalid *application.InvalidArgumentError
	switch {
	case errors.As(err, &conflict):
		s.metrics.recordRejected(ctx, "conflict")
		s.logWarn(ctx, "order rejected as duplicate", err, attrs...)
	case errors.As(err, &invalid):
		s.metrics.recordRejected(ctx, "invalid_argument")
		s.logWarn(ctx, "order rejected as invalid", err, attrs...)
	default:
		s.metrics.recordRejected(ctx, "failure")
		s.logError(ctx, "failed to create order", err, attrs...)
	}
	return err
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logWarn(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

var _ ordersports.Service = (*Service)(nil)
