package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
)

// serviceMetrics bundles the counters emitted by the decorated service.
type serviceMetrics struct {
	created  metric.Int64Counter
	items    metric.Int64Counter
	rejected metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		m = metricnoop.NewMeterProvider().Meter(tracerName)
	}
	return serviceMetrics{
		created:  counter(m, "orders.created", "Orders persisted successfully"),
		items:    counter(m, "orders.items.created", "Line items persisted across all orders"),
		rejected: counter(m, "orders.rejected", "Order requests rejected, by reason"),
	}
}

func counter(m metric.Meter, name, description string) metric.Int64Counter {
	c, err := m.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		c, _ = metricnoop.NewMeterProvider().Meter(tracerName).Int64Counter(name)
	}
	return c
}

func (m serviceMetrics) recordCreated(ctx context.Context, itemCount int) {
	m.created.Add(ctx, 1)
	m.items.Add(ctx, int64(itemCount))
}

func (m serviceMetrics) recordRejected(ctx context.Context, reason string) {
	m.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}
