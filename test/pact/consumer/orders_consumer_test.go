//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/Apurer/go-gin-order-api/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

const uuidPattern = "[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}"

type createdPayload struct {
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}

type errorPayload struct {
	Error string `json:"error"`
}

type apiError struct {
	status  int
	message string
}

func (e apiError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.message, e.status)
}

func (e apiError) Status() int {
	return e.status
}

func TestOrderPortalContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	orderBodyMatcher := matchers.Map{
		"orderId":      matchers.Regex(pacttest.NewOrderID, uuidPattern),
		"customerName": matchers.Like(pacttest.ExampleCustomer),
		"createdAt":    matchers.Like(pacttest.ExampleCreatedAt),
		"items": matchers.ArrayMinLike(matchers.Map{
			"productId": matchers.Regex(pacttest.ExampleProduct, uuidPattern),
			"quantity":  matchers.Like(2),
		}, 1),
	}
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")

	pact.AddInteraction().
		Given(pacttest.StateOrdersBaseline).
		UponReceiving("a request to create a new order").
		WithRequest("POST", "/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(orderBodyMatcher)
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"orderId": matchers.Regex(pacttest.NewOrderID, uuidPattern),
				"message": matchers.S("Order created successfully"),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderExists).
		UponReceiving("a request to create an order whose id is taken").
		WithRequest("POST", "/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{
				"orderId":      matchers.S(pacttest.ExistingOrderID),
				"customerName": matchers.Like(pacttest.ExampleCustomer),
				"createdAt":    matchers.Like(pacttest.ExampleCreatedAt),
				"items": matchers.ArrayMinLike(matchers.Map{
					"productId": matchers.Regex(pacttest.ExampleProduct, uuidPattern),
					"quantity":  matchers.Like(2),
				}, 1),
			})
		}).
		WillRespondWith(http.StatusConflict, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"error": matchers.S(fmt.Sprintf("Order with ID %s already exists", pacttest.ExistingOrderID)),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newOrderClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		created, err := client.CreateOrder(ctx, pacttest.ExampleOrderPayload(pacttest.NewOrderID))
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		if created == nil || created.OrderID == "" {
			return fmt.Errorf("expected created order id to be set")
		}

		if _, err := client.CreateOrder(ctx, pacttest.ExampleOrderPayload(pacttest.ExistingOrderID)); err == nil {
			return fmt.Errorf("expected conflict for order %s", pacttest.ExistingOrderID)
		} else if apiErr, ok := err.(apiError); ok && apiErr.Status() != http.StatusConflict {
			return fmt.Errorf("expected 409, got %d", apiErr.Status())
		}

		return nil
	})
	require.NoError(t, err)
}

type orderClient struct {
	baseURL    string
	httpClient *http.Client
}

func newOrderClient(config pactconsumer.MockServerConfig) *orderClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	client := &http.Client{Transport: transport, Timeout: 10 * time.Second}
	return &orderClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: client,
	}
}

func (c *orderClient) CreateOrder(ctx context.Context, order map[string]any) (*createdPayload, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		var payload errorPayload
		_ = json.NewDecoder(res.Body).Decode(&payload)
		return nil, apiError{status: res.StatusCode, message: payload.Error}
	}

	var payload createdPayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
