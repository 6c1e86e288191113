package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransaction_Sale(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()

	tx, err := NewTransaction(tenantID, productID, "WID-001", TransactionTypeSale, -5, 45)
	require.NoError(t, err)

	assert.Equal(t, TransactionTypeSale, tx.Type)
	assert.Equal(t, -5, tx.Delta)
	assert.Equal(t, 45, tx.StockAfter)

	// Sale deltas must be negative
	_, err = NewTransaction(tenantID, productID, "WID-001", TransactionTypeSale, 5, 45)
	require.Error(t, err)
}

func TestNewTransaction_CancellationAndRestock(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()

	tx, err := NewTransaction(tenantID, productID, "WID-001", TransactionTypeCancellation, 5, 50)
	require.NoError(t, err)
	assert.Equal(t, 5, tx.Delta)

	_, err = NewTransaction(tenantID, productID, "WID-001", TransactionTypeCancellation, -5, 50)
	require.Error(t, err)

	_, err = NewTransaction(tenantID, productID, "WID-001", TransactionTypeRestock, -1, 50)
	require.Error(t, err)
}

func TestNewTransaction_AdjustmentAllowsEitherSign(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()

	_, err := NewTransaction(tenantID, productID, "WID-001", TransactionTypeAdjustment, 10, 60)
	require.NoError(t, err)

	_, err = NewTransaction(tenantID, productID, "WID-001", TransactionTypeAdjustment, -10, 40)
	require.NoError(t, err)
}

func TestNewTransaction_Invalid(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()

	_, err := NewTransaction(tenantID, uuid.Nil, "WID-001", TransactionTypeSale, -1, 0)
	require.Error(t, err)

	_, err = NewTransaction(tenantID, productID, "WID-001", TransactionType("theft"), -1, 0)
	require.Error(t, err)

	_, err = NewTransaction(tenantID, productID, "WID-001", TransactionTypeAdjustment, 0, 10)
	require.Error(t, err)

	_, err = NewTransaction(tenantID, productID, "WID-001", TransactionTypeSale, -1, -1)
	require.Error(t, err)
}

func TestTransaction_Builders(t *testing.T) {
	orderID := uuid.New()
	userID := uuid.New()

	tx, err := NewTransaction(uuid.New(), uuid.New(), "WID-001", TransactionTypeSale, -2, 8)
	require.NoError(t, err)

	tx.WithOrder(orderID, "ORD-20260830-0001").WithNotes("checkout").WithPerformer(userID)

	require.NotNil(t, tx.OrderID)
	assert.Equal(t, orderID, *tx.OrderID)
	assert.Equal(t, "ORD-20260830-0001", tx.Reference)
	assert.Equal(t, userID, tx.PerformedBy)
}
