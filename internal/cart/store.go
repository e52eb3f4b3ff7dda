package cart

import (
	"errors"
	"fmt"

	"beautyvault/internal/logger"
	"beautyvault/internal/models"
)

var (
	// ErrMissingExternalID rejects items that could never reach checkout.
	ErrMissingExternalID = errors.New("cart item is missing its Wix product id")

	ErrInvalidQuantity = errors.New("cart item quantity must be at least 1")
)

// Store owns all cart mutation. Every entry point goes through its methods so
// the checkout-eligibility invariant and the derived totals are enforced in
// one place.
type Store struct {
	repo   Repository
	logger *logger.Logger
}

func NewStore(repo Repository, logger *logger.Logger) *Store {
	return &Store{repo: repo, logger: logger}
}

// Cart is a rehydrated, schema-current cart. Removed counts how many legacy
// items the load dropped; it is a notice for the shopper, not an error.
type Cart struct {
	models.PersistedCart
	Removed int `json:"removed_items,omitempty"`
}

// TotalItems is the summed quantity across lines. Always derived, never
// stored, so it cannot drift.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums unit price times quantity across lines.
func (c *Cart) TotalPrice() float64 {
	total := 0.0
	for _, item := range c.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

// Load rehydrates a cart, running schema migrations. A cart id that was never
// saved yields an empty current-version cart.
func (s *Store) Load(cartID string) (*Cart, error) {
	persisted, err := s.repo.Load(cartID)
	if errors.Is(err, ErrCartNotFound) {
		return &Cart{PersistedCart: models.PersistedCart{
			SchemaVersion: models.CartSchemaVersion,
			CartID:        cartID,
		}}, nil
	}
	if err != nil {
		return nil, err
	}

	versionBefore := persisted.SchemaVersion
	removed := Migrate(persisted)
	if removed > 0 {
		s.logger.Warn("cart %s: removed %d outdated items during load", cartID, removed)
	}
	if removed > 0 || persisted.SchemaVersion != versionBefore {
		if err := s.repo.Save(persisted); err != nil {
			return nil, err
		}
	}
	return &Cart{PersistedCart: *persisted, Removed: removed}, nil
}

// AddItem appends an item or, when the product is already in the cart, merges
// by incrementing quantity. The unit price of an existing line is kept: the
// shopper pays the price seen at add-time. A merge that would push the line
// past known stock is ignored, same as UpdateQuantity.
func (s *Store) AddItem(cartID string, item models.CartItem) (*Cart, error) {
	if item.ExternalID == "" {
		return nil, ErrMissingExternalID
	}
	if item.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	cart, err := s.Load(cartID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == item.ProductID {
			want := cart.Items[i].Quantity + item.Quantity
			if stock := cart.Items[i].StockQuantity; stock != nil && want > *stock {
				s.logger.Debug("cart %s: ignoring add of %d for %s, only %d in stock",
					cartID, item.Quantity, item.ProductID, *stock)
				return cart, nil
			}
			cart.Items[i].Quantity = want
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, item)
	}

	if err := s.save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity sets a line's quantity. Zero or less removes the line. When
// the product's stock quantity is known and the requested quantity exceeds
// it, the update is ignored and the line kept as is.
func (s *Store) UpdateQuantity(cartID, productID string, quantity int) (*Cart, error) {
	if quantity <= 0 {
		return s.RemoveItem(cartID, productID)
	}

	cart, err := s.Load(cartID)
	if err != nil {
		return nil, err
	}

	for i := range cart.Items {
		if cart.Items[i].ProductID != productID {
			continue
		}
		if stock := cart.Items[i].StockQuantity; stock != nil && quantity > *stock {
			s.logger.Debug("cart %s: ignoring quantity %d for %s, only %d in stock",
				cartID, quantity, productID, *stock)
			return cart, nil
		}
		cart.Items[i].Quantity = quantity
		if err := s.save(cart); err != nil {
			return nil, err
		}
		return cart, nil
	}
	return cart, nil
}

func (s *Store) RemoveItem(cartID, productID string) (*Cart, error) {
	cart, err := s.Load(cartID)
	if err != nil {
		return nil, err
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept

	if err := s.save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear drops the cart entirely, including any in-flight checkout reference.
func (s *Store) Clear(cartID string) error {
	if err := s.repo.Delete(cartID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (s *Store) save(cart *Cart) error {
	return s.repo.Save(&cart.PersistedCart)
}
