package models

// CartItem is one line of a persisted cart. ExternalID is a denormalized copy
// of the product's Wix id taken at add-time; an item without it can never
// reach checkout, so it is required at add-time and filtered out of legacy
// persisted carts on load.
type CartItem struct {
	ProductID       string            `json:"product_id"`
	ExternalID      string            `json:"external_id"`
	Name            string            `json:"name"`
	Quantity        int               `json:"quantity"`
	UnitPrice       float64           `json:"unit_price"`
	Currency        string            `json:"currency"`
	SelectedOptions map[string]string `json:"selected_options,omitempty"`
	StockQuantity   *int              `json:"stock_quantity,omitempty"`
}

// CartSchemaVersion is the current persisted cart layout. Version 0 predates
// the external_id field on items.
const CartSchemaVersion = 1

// PersistedCart is the named blob a cart is stored and rehydrated from.
type PersistedCart struct {
	SchemaVersion int        `json:"schema_version"`
	Items         []CartItem `json:"items"`
	CartID        string     `json:"cart_id"`
	CheckoutURL   string     `json:"checkout_url,omitempty"`
}

// CheckoutSession is the ephemeral result of handing a cart to Wix. Nothing
// about it is tracked locally once the shopper is redirected.
type CheckoutSession struct {
	CheckoutID  string `json:"checkout_id"`
	CheckoutURL string `json:"checkout_url"`
}
