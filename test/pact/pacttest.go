//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "order-api"
	ConsumerName = "order-portal"

	StateOrdersBaseline = "orders baseline"
	StateOrderExists    = "order with id 3f2a8c0e-9f14-4b6d-8f14-2d0c5a1b7e90 exists"
)

const (
	// ExistingOrderID is seeded by the provider for conflict interactions.
	ExistingOrderID = "3f2a8c0e-9f14-4b6d-8f14-2d0c5a1b7e90"
	NewOrderID      = "7c1d2b94-5e6f-4a3b-9c8d-0e1f2a3b4c5d"
	ExampleProduct  = "a1b2c3d4-e5f6-4789-a012-3456789abcde"

	ExampleCustomer  = "Pact Customer"
	ExampleCreatedAt = "2026-06-12T10:00:00Z"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the order portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleOrderPayload provides stable test data for order interactions.
func ExampleOrderPayload(orderID string) map[string]any {
	return map[string]any{
		"orderId":      orderID,
		"customerName": ExampleCustomer,
		"createdAt":    ExampleCreatedAt,
		"items": []map[string]any{
			{"productId": ExampleProduct, "quantity": 2},
		},
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
