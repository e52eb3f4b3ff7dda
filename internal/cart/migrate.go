package cart

import "beautyvault/internal/models"

// Persisted carts predating the Wix integration carry no schema version and
// no external ids on their items. Rather than filtering ad hoc on every read
// path, each load runs the blob through the migration table below until it
// reaches the current version.

// migration upgrades a cart one schema version and reports how many items it
// had to drop.
type migration func(*models.PersistedCart) (dropped int)

var migrations = map[int]migration{
	0: dropItemsWithoutExternalID,
}

// Migrate upgrades a loaded cart to the current schema version. It is
// idempotent: a current-version cart passes through untouched.
func Migrate(cart *models.PersistedCart) (dropped int) {
	for cart.SchemaVersion < models.CartSchemaVersion {
		step, ok := migrations[cart.SchemaVersion]
		if !ok {
			// No migration path; treat the blob as current rather than spin.
			cart.SchemaVersion = models.CartSchemaVersion
			break
		}
		dropped += step(cart)
		cart.SchemaVersion++
	}
	return dropped
}

// dropItemsWithoutExternalID repairs version-0 carts: items added before the
// external id existed can never reach checkout, so they are removed.
func dropItemsWithoutExternalID(cart *models.PersistedCart) int {
	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ExternalID != "" {
			kept = append(kept, item)
		}
	}
	dropped := len(cart.Items) - len(kept)
	cart.Items = kept
	return dropped
}
