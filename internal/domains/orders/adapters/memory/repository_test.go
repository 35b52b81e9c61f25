package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-order-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-api/internal/domains/orders/ports"
)

func sampleOrder(t *testing.T) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(uuid.New(), "Grace Hopper", time.Now(), []domain.ItemInput{
		{ProductID: uuid.New(), Quantity: 4},
	})
	require.NoError(t, err)
	return order
}

func TestRepository_ExistsFalseOnFreshStore(t *testing.T) {
	repo := NewRepository()
	exists, err := repo.Exists(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRepository_CreateThenExists(t *testing.T) {
	repo := NewRepository()
	order := sampleOrder(t)

	created, err := repo.Create(context.Background(), order)
	require.NoError(t, err)
	assert.Equal(t, order.OrderID, created.OrderID)
	require.Len(t, created.Items, 1)
	assert.NotEqual(t, uuid.Nil, created.Items[0].ID)

	exists, err := repo.Exists(context.Background(), order.OrderID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRepository_CreateDuplicateFailsWithoutOverwrite(t *testing.T) {
	repo := NewRepository()
	order := sampleOrder(t)

	_, err := repo.Create(context.Background(), order)
	require.NoError(t, err)

	second := *order
	second.CustomerName = "Someone Else"
	_, err = repo.Create(context.Background(), &second)
	require.ErrorIs(t, err, ports.ErrAlreadyExists)
	assert.Equal(t, 1, repo.ItemCount(order.OrderID))
}

func TestRepository_AssignsMissingItemIDs(t *testing.T) {
	repo := NewRepository()
	order := sampleOrder(t)
	order.Items[0].ID = uuid.Nil

	created, err := repo.Create(context.Background(), order)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.Items[0].ID)
}

func TestRepository_CreateReturnsDetachedCopy(t *testing.T) {
	repo := NewRepository()
	order := sampleOrder(t)

	created, err := repo.Create(context.Background(), order)
	require.NoError(t, err)

	created.Items[0].Quantity = 999
	assert.EqualValues(t, 4, mustStored(t, repo, order.OrderID).Items[0].Quantity)
}

func mustStored(t *testing.T, repo *Repository, orderID uuid.UUID) *domain.Order {
	t.Helper()
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	order, ok := repo.orders[orderID]
	require.True(t, ok)
	return order
}
