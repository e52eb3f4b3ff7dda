package checkout

import (
	"errors"

	"beautyvault/internal/cart"
	"beautyvault/internal/logger"
	"beautyvault/internal/models"
	"beautyvault/internal/services/wix"
)

var (
	ErrEmptyCart = errors.New("cart is empty")

	// ErrStaleCart means the cart held legacy items that cannot be purchased.
	// The cart has been cleared; the shopper needs to re-add products.
	ErrStaleCart = errors.New("cart contained outdated items and was reset, please re-add your products")
)

// Platform is the checkout-creation slice of the Wix client.
type Platform interface {
	CreateCheckout(items []wix.CheckoutLineItem, returnURL string) (*models.CheckoutSession, error)
}

// Orchestrator converts a validated cart snapshot into a Wix checkout session
// and hands the cart off. There is no automatic retry: checkout creation is
// not idempotent-safe, so a failure is surfaced and the shopper retries.
type Orchestrator struct {
	carts     *cart.Store
	platform  Platform
	returnURL string
	logger    *logger.Logger
}

func New(carts *cart.Store, platform Platform, returnURL string, logger *logger.Logger) *Orchestrator {
	return &Orchestrator{carts: carts, platform: platform, returnURL: returnURL, logger: logger}
}

// Create validates the cart snapshot, creates the external checkout and, on
// success, clears the cart: once the shopper is redirected the platform owns
// the order. The external-id check runs before any network call; an
// incomplete line item is never sent to Wix.
func (o *Orchestrator) Create(cartID string) (*models.CheckoutSession, error) {
	snapshot, err := o.carts.Load(cartID)
	if err != nil {
		return nil, err
	}
	if len(snapshot.Items) == 0 {
		return nil, ErrEmptyCart
	}

	for _, item := range snapshot.Items {
		if item.ExternalID == "" {
			// Corrupted legacy state that the load migration should have
			// repaired. Reset the cart rather than attempt a doomed checkout.
			o.logger.Error("cart %s: item %s has no Wix id, clearing cart", cartID, item.ProductID)
			if clearErr := o.carts.Clear(cartID); clearErr != nil {
				o.logger.Error("cart %s: failed to clear: %v", cartID, clearErr)
			}
			return nil, ErrStaleCart
		}
	}

	lineItems := make([]wix.CheckoutLineItem, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		lineItems = append(lineItems, wix.CheckoutLineItem{
			ExternalID: item.ExternalID,
			Quantity:   item.Quantity,
			Options:    item.SelectedOptions,
		})
	}

	session, err := o.platform.CreateCheckout(lineItems, o.returnURL)
	if err != nil {
		// Cart is kept; the shopper may retry manually.
		o.logger.Error("cart %s: checkout creation failed: %v", cartID, err)
		return nil, err
	}

	if err := o.carts.Clear(cartID); err != nil {
		o.logger.Error("cart %s: checkout created but cart not cleared: %v", cartID, err)
	}

	o.logger.Info("cart %s: checkout %s created", cartID, session.CheckoutID)
	return session, nil
}
