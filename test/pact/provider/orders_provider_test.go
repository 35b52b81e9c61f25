//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	pacttest "github.com/Apurer/go-gin-order-api/test/pact"

	ordershttp "github.com/Apurer/go-gin-order-api/internal/domains/orders/adapters/http"
	ordersmemory "github.com/Apurer/go-gin-order-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-gin-order-api/internal/domains/orders/adapters/observability"
	ordersworkflows "github.com/Apurer/go-gin-order-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/go-gin-order-api/internal/domains/orders/application"
	"github.com/Apurer/go-gin-order-api/internal/domains/orders/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestOrderProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateOrdersBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.repo.Reset()
			return nil, nil
		},
		pacttest.StateOrderExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.repo.Reset()
			if setup {
				app.seedOrder(t, pacttest.ExistingOrderID)
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.repo.Reset()
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	repo   *ordersmemory.Repository
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	repo := ordersmemory.NewRepository()
	service := ordersobs.New(ordersapp.NewService(repo))
	api := ordershttp.NewOrdersAPI(ordersworkflows.NewInlineOrderWorkflows(service), nil)

	server := httptest.NewServer(ordershttp.NewRouter(api))
	t.Cleanup(server.Close)

	return &contractProviderApp{
		repo:   repo,
		server: server,
	}
}

func (a *contractProviderApp) seedOrder(t testing.TB, id string) {
	t.Helper()
	orderID, err := uuid.Parse(id)
	require.NoError(t, err)
	productID, err := uuid.Parse(pacttest.ExampleProduct)
	require.NoError(t, err)
	createdAt, err := time.Parse(time.RFC3339, pacttest.ExampleCreatedAt)
	require.NoError(t, err)

	order, err := domain.NewOrder(orderID, pacttest.ExampleCustomer, createdAt,
		[]domain.ItemInput{{ProductID: productID, Quantity: 2}})
	require.NoError(t, err)
	_, err = a.repo.Create(context.Background(), order)
	require.NoError(t, err)
}
