package cart

import (
	"testing"

	"beautyvault/internal/logger"
	"beautyvault/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *Store {
	return NewStore(NewMemoryRepository(), logger.New("error"))
}

func intPtr(v int) *int { return &v }

func glossItem() models.CartItem {
	return models.CartItem{
		ProductID:  "p1",
		ExternalID: "wix-1",
		Name:       "Gloss",
		Quantity:   2,
		UnitPrice:  10.00,
		Currency:   "USD",
	}
}

func TestAddItemRejectsMissingExternalID(t *testing.T) {
	store := newTestStore()
	item := glossItem()
	item.ExternalID = ""

	_, err := store.AddItem("c1", item)
	assert.ErrorIs(t, err, ErrMissingExternalID)

	loaded, err := store.Load("c1")
	require.NoError(t, err)
	assert.Zero(t, loaded.TotalItems())
}

func TestAddItemMergesByProductID(t *testing.T) {
	store := newTestStore()
	_, err := store.AddItem("c1", glossItem())
	require.NoError(t, err)

	again := glossItem()
	again.Quantity = 3
	// A later catalog price change must not reprice the existing line.
	again.UnitPrice = 12.00
	loaded, err := store.AddItem("c1", again)
	require.NoError(t, err)

	require.Len(t, loaded.Items, 1)
	assert.Equal(t, 5, loaded.Items[0].Quantity)
	assert.Equal(t, 10.00, loaded.Items[0].UnitPrice)
}

func TestAddItemMergeAboveStockIsANoOp(t *testing.T) {
	store := newTestStore()
	item := glossItem()
	item.StockQuantity = intPtr(3)
	_, err := store.AddItem("c1", item)
	require.NoError(t, err)

	again := glossItem()
	again.Quantity = 2
	loaded, err := store.AddItem("c1", again)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	// 2 + 2 would exceed the 3 in stock, so the line stays as is.
	assert.Equal(t, 2, loaded.Items[0].Quantity)

	again.Quantity = 1
	loaded, err = store.AddItem("c1", again)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Items[0].Quantity)
}

func TestUpdateQuantityZeroRemovesItem(t *testing.T) {
	store := newTestStore()
	_, err := store.AddItem("c1", glossItem())
	require.NoError(t, err)

	loaded, err := store.UpdateQuantity("c1", "p1", 0)
	require.NoError(t, err)
	assert.Empty(t, loaded.Items)
	assert.Zero(t, loaded.TotalItems())
}

func TestUpdateQuantityAboveStockIsANoOp(t *testing.T) {
	store := newTestStore()
	item := glossItem()
	item.StockQuantity = intPtr(5)
	_, err := store.AddItem("c1", item)
	require.NoError(t, err)

	loaded, err := store.UpdateQuantity("c1", "p1", 6)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	// Not clamped, not an error: the quantity simply stays.
	assert.Equal(t, 2, loaded.Items[0].Quantity)

	loaded, err = store.UpdateQuantity("c1", "p1", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.Items[0].Quantity)
}

func TestUpdateQuantityDoesNotReprice(t *testing.T) {
	store := newTestStore()
	_, err := store.AddItem("c1", glossItem())
	require.NoError(t, err)

	loaded, err := store.UpdateQuantity("c1", "p1", 4)
	require.NoError(t, err)
	assert.Equal(t, 10.00, loaded.Items[0].UnitPrice)
	assert.Equal(t, 40.00, loaded.TotalPrice())
}

func TestRemoveItem(t *testing.T) {
	store := newTestStore()
	_, err := store.AddItem("c1", glossItem())
	require.NoError(t, err)
	second := glossItem()
	second.ProductID = "p2"
	second.ExternalID = "wix-2"
	_, err = store.AddItem("c1", second)
	require.NoError(t, err)

	loaded, err := store.RemoveItem("c1", "p1")
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "p2", loaded.Items[0].ProductID)
}

func TestClearCart(t *testing.T) {
	store := newTestStore()
	_, err := store.AddItem("c1", glossItem())
	require.NoError(t, err)

	require.NoError(t, store.Clear("c1"))

	loaded, err := store.Load("c1")
	require.NoError(t, err)
	assert.Empty(t, loaded.Items)
	assert.Empty(t, loaded.CheckoutURL)
}

func TestDerivedTotals(t *testing.T) {
	store := newTestStore()
	_, err := store.AddItem("c1", glossItem())
	require.NoError(t, err)
	second := glossItem()
	second.ProductID = "p2"
	second.ExternalID = "wix-2"
	second.Quantity = 1
	second.UnitPrice = 4.50
	loaded, err := store.AddItem("c1", second)
	require.NoError(t, err)

	assert.Equal(t, 3, loaded.TotalItems())
	assert.InDelta(t, 24.50, loaded.TotalPrice(), 0.001)
}

func TestLoadUnknownCartIsEmpty(t *testing.T) {
	store := newTestStore()
	loaded, err := store.Load("never-saved")
	require.NoError(t, err)
	assert.Equal(t, models.CartSchemaVersion, loaded.SchemaVersion)
	assert.Empty(t, loaded.Items)
	assert.Zero(t, loaded.Removed)
}
