package cart

import (
	"testing"

	"beautyvault/internal/logger"
	"beautyvault/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// legacyBlob is a cart persisted before items carried a Wix id: no schema
// version field, and only some items have external_id.
const legacyBlob = `{
	"items": [
		{"product_id": "p1", "external_id": "wix-1", "quantity": 2, "unit_price": 10.0, "currency": "USD"},
		{"product_id": "p2", "quantity": 1, "unit_price": 5.0, "currency": "USD"},
		{"product_id": "p3", "external_id": "", "quantity": 3, "unit_price": 7.0, "currency": "USD"}
	],
	"cart_id": "c1"
}`

func TestLoadRepairsLegacyCart(t *testing.T) {
	repo := NewMemoryRepository()
	repo.SeedRaw("c1", []byte(legacyBlob))
	store := NewStore(repo, logger.New("error"))

	loaded, err := store.Load("c1")
	require.NoError(t, err)

	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "p1", loaded.Items[0].ProductID)
	assert.Equal(t, 2, loaded.Removed)
	assert.Equal(t, models.CartSchemaVersion, loaded.SchemaVersion)
}

func TestLoadRepairPersistsAndIsIdempotent(t *testing.T) {
	repo := NewMemoryRepository()
	repo.SeedRaw("c1", []byte(legacyBlob))
	store := NewStore(repo, logger.New("error"))

	first, err := store.Load("c1")
	require.NoError(t, err)
	assert.Equal(t, 2, first.Removed)

	// The repaired blob was written back; a second load removes nothing.
	second, err := store.Load("c1")
	require.NoError(t, err)
	assert.Zero(t, second.Removed)
	require.Len(t, second.Items, 1)
}

func TestMigrateCurrentVersionIsUntouched(t *testing.T) {
	cart := &models.PersistedCart{
		SchemaVersion: models.CartSchemaVersion,
		CartID:        "c1",
		Items: []models.CartItem{
			{ProductID: "p1", ExternalID: "", Quantity: 1},
		},
	}

	// At the current version no filter runs, even for an invalid item; the
	// checkout precondition is the safety net there.
	dropped := Migrate(cart)
	assert.Zero(t, dropped)
	assert.Len(t, cart.Items, 1)
}

func TestMigrateUnknownVersionIsTreatedAsCurrent(t *testing.T) {
	cart := &models.PersistedCart{SchemaVersion: -3, CartID: "c1"}
	assert.Zero(t, Migrate(cart))
	assert.Equal(t, models.CartSchemaVersion, cart.SchemaVersion)
}

func TestMigrateCountsOnlyDroppedItems(t *testing.T) {
	cart := &models.PersistedCart{
		Items: []models.CartItem{
			{ProductID: "p1", ExternalID: "wix-1", Quantity: 1},
			{ProductID: "p2", ExternalID: "wix-2", Quantity: 1},
		},
	}
	assert.Zero(t, Migrate(cart))
	assert.Len(t, cart.Items, 2)
	assert.Equal(t, models.CartSchemaVersion, cart.SchemaVersion)
}
