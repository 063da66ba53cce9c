package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandpay-io/sandpay/internal/domain/order"
	vo "github.com/sandpay-io/sandpay/internal/domain/order/valueobjects"
	"github.com/sandpay-io/sandpay/internal/domain/transaction"
)

func newOrder(t *testing.T, merchantOrderID string) *order.Order {
	t.Helper()
	ord, err := order.NewOrder("merchant_1", merchantOrderID, vo.NewMoney(49900, "INR"),
		"https://merchant.example.com/webhook", "", true, nil)
	require.NoError(t, err)
	return ord
}

func TestMemoryOrderRepository(t *testing.T) {
	repo := NewMemoryOrderRepository()
	ctx := context.Background()
	ord := newOrder(t, "shop-order-42")

	require.NoError(t, repo.Create(ctx, ord))

	found, err := repo.GetByGatewayOrderID(ctx, ord.GatewayOrderID())
	require.NoError(t, err)
	assert.Equal(t, ord.GatewayOrderID(), found.GatewayOrderID())

	found, err = repo.GetByMerchantOrderID(ctx, "merchant_1", "shop-order-42")
	require.NoError(t, err)
	assert.Equal(t, ord.GatewayOrderID(), found.GatewayOrderID())
}

func TestMemoryOrderRepository_DuplicateCreate(t *testing.T) {
	repo := NewMemoryOrderRepository()
	ctx := context.Background()
	ord := newOrder(t, "shop-order-42")

	require.NoError(t, repo.Create(ctx, ord))
	assert.Error(t, repo.Create(ctx, ord))
}

func TestMemoryOrderRepository_Update(t *testing.T) {
	repo := NewMemoryOrderRepository()
	ctx := context.Background()
	ord := newOrder(t, "shop-order-42")
	require.NoError(t, repo.Create(ctx, ord))

	require.NoError(t, ord.MarkCompleted("txn_abc", vo.PaymentMethodCard))
	require.NoError(t, repo.Update(ctx, ord))

	found, err := repo.GetByGatewayOrderID(ctx, ord.GatewayOrderID())
	require.NoError(t, err)
	assert.Equal(t, vo.OrderStatusCompleted, found.Status())
}

func TestMemoryOrderRepository_NotFound(t *testing.T) {
	repo := NewMemoryOrderRepository()
	ctx := context.Background()

	_, err := repo.GetByGatewayOrderID(ctx, "ord_missing")
	assert.Error(t, err)

	_, err = repo.GetByMerchantOrderID(ctx, "merchant_1", "missing")
	assert.Error(t, err)

	assert.Error(t, repo.Update(ctx, newOrder(t, "never-created")))
}

func TestMemoryTransactionRepository(t *testing.T) {
	repo := NewMemoryTransactionRepository()
	ctx := context.Background()

	txn, err := transaction.New("ord_abc", vo.NewMoney(100, "INR"),
		vo.PaymentMethodCard, transaction.StatusSuccess, "", "4242")
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, txn))
	assert.Error(t, repo.Create(ctx, txn))

	found, err := repo.GetByID(ctx, txn.ID())
	require.NoError(t, err)
	assert.Equal(t, txn.ID(), found.ID())

	_, err = repo.GetByID(ctx, "txn_missing")
	assert.Error(t, err)
}

func TestMemoryTransactionRepository_GetByOrderID(t *testing.T) {
	repo := NewMemoryTransactionRepository()
	ctx := context.Background()

	first, err := transaction.New("ord_abc", vo.NewMoney(100, "INR"),
		vo.PaymentMethodCard, transaction.StatusFailed, "Card declined by issuer", "0000")
	require.NoError(t, err)
	second, err := transaction.New("ord_abc", vo.NewMoney(100, "INR"),
		vo.PaymentMethodCard, transaction.StatusSuccess, "", "4242")
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	txns, err := repo.GetByOrderID(ctx, "ord_abc")
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, first.ID(), txns[0].ID())
	assert.Equal(t, second.ID(), txns[1].ID())

	txns, err = repo.GetByOrderID(ctx, "ord_other")
	require.NoError(t, err)
	assert.Empty(t, txns)
}
