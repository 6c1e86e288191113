package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_AddItem(t *testing.T) {
	cart := NewCart(uuid.New(), uuid.New())
	productID := uuid.New()
	price := decimal.RequireFromString("9.99")

	require.NoError(t, cart.AddItem(productID, "Widget", "WID-001", price, 2))
	assert.Equal(t, 2, cart.TotalQuantity())

	// Adding the same product merges quantities
	require.NoError(t, cart.AddItem(productID, "Widget", "WID-001", price, 3))
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.True(t, cart.Subtotal().Equal(decimal.RequireFromString("49.95")))
}

func TestCart_AddItem_Invalid(t *testing.T) {
	cart := NewCart(uuid.New(), uuid.New())

	err := cart.AddItem(uuid.Nil, "Widget", "WID-001", decimal.Zero, 1)
	require.Error(t, err)

	err = cart.AddItem(uuid.New(), "Widget", "WID-001", decimal.Zero, 0)
	require.Error(t, err)

	err = cart.AddItem(uuid.New(), "Widget", "WID-001", decimal.Zero, MaxCartQuantityPerItem+1)
	require.Error(t, err)
}

func TestCart_UpdateQuantity(t *testing.T) {
	cart := NewCart(uuid.New(), uuid.New())
	productID := uuid.New()
	require.NoError(t, cart.AddItem(productID, "Widget", "WID-001", decimal.NewFromInt(5), 2))

	require.NoError(t, cart.UpdateQuantity(productID, 7))
	assert.Equal(t, 7, cart.Items[0].Quantity)

	// Zero removes the line
	require.NoError(t, cart.UpdateQuantity(productID, 0))
	assert.True(t, cart.IsEmpty())

	err := cart.UpdateQuantity(productID, 1)
	require.Error(t, err)
}

func TestCart_RemoveItem(t *testing.T) {
	cart := NewCart(uuid.New(), uuid.New())
	productID := uuid.New()
	otherID := uuid.New()
	require.NoError(t, cart.AddItem(productID, "A", "SKU-A", decimal.NewFromInt(1), 1))
	require.NoError(t, cart.AddItem(otherID, "B", "SKU-B", decimal.NewFromInt(2), 1))

	require.NoError(t, cart.RemoveItem(productID))
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, otherID, cart.Items[0].ProductID)

	err := cart.RemoveItem(productID)
	require.Error(t, err)
}

func TestCart_Clear(t *testing.T) {
	cart := NewCart(uuid.New(), uuid.New())
	require.NoError(t, cart.AddItem(uuid.New(), "A", "SKU-A", decimal.NewFromInt(1), 1))

	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.True(t, cart.Subtotal().IsZero())
}
