package wix

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"beautyvault/internal/logger"
	"beautyvault/internal/models"
)

const defaultBaseURL = "https://www.wixapis.com"

// Checkout creation is bounded both in line-item count and per-line quantity;
// anything outside these limits is rejected before a request is made.
const (
	maxCheckoutItems = 50
	maxItemQuantity  = 1000
)

// ErrInvalidResponse marks a 2xx platform response that is structurally
// unusable (e.g. no checkout URL). Distinct from transport failures so the
// caller can tell a broken integration from an unreachable one.
var ErrInvalidResponse = errors.New("wix returned an invalid response")

// ErrValidation marks a request rejected locally, before any network call.
var ErrValidation = errors.New("invalid checkout request")

type Client struct {
	baseURL    string
	apiKey     string
	siteID     string
	accountID  string
	appID      string
	httpClient *http.Client
	logger     *logger.Logger
}

func NewClient(apiKey, siteID, accountID, appID string, logger *logger.Logger) *Client {
	return &Client{
		baseURL:   defaultBaseURL,
		apiKey:    apiKey,
		siteID:    siteID,
		accountID: accountID,
		appID:     appID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// SetBaseURL overrides the API host. Used by tests.
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

// QueryProducts fetches one page of the Wix catalog.
func (c *Client) QueryProducts(limit, offset int) (*ProductsQueryResponse, error) {
	var query productsQueryRequest
	query.Query.Paging.Limit = limit
	query.Query.Paging.Offset = offset

	var page ProductsQueryResponse
	if err := c.post("/stores/v1/products/query", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateProduct creates a product on Wix and returns the record carrying the
// assigned id.
func (c *Client) CreateProduct(req *CreateProductRequest) (*Product, error) {
	payload := struct {
		Product *CreateProductRequest `json:"product"`
	}{Product: req}

	var created struct {
		Product Product `json:"product"`
	}
	if err := c.post("/stores/v1/products", payload, &created); err != nil {
		return nil, err
	}
	if created.Product.ID == "" {
		return nil, fmt.Errorf("%w: product created without an id", ErrInvalidResponse)
	}
	return &created.Product, nil
}

// CreateCheckout submits line items and resolves the redirect URL. Two calls:
// checkout creation, then checkout-url retrieval.
func (c *Client) CreateCheckout(items []CheckoutLineItem, returnURL string) (*models.CheckoutSession, error) {
	if err := ValidateLineItems(items); err != nil {
		return nil, err
	}

	req := checkoutRequest{ChannelType: "WEB"}
	req.EcomSettings.ReturnURL = returnURL
	for _, item := range items {
		options := item.Options
		if options == nil {
			options = map[string]string{}
		}
		req.LineItems = append(req.LineItems, checkoutRequestLine{
			CatalogReference: catalogReference{
				CatalogItemID: item.ExternalID,
				AppID:         c.appID,
				Options:       options,
			},
			Quantity: item.Quantity,
		})
	}

	var created checkoutResponse
	if err := c.post("/ecom/v1/checkouts", req, &created); err != nil {
		return nil, err
	}
	if created.Checkout.ID == "" {
		return nil, fmt.Errorf("%w: checkout created without an id", ErrInvalidResponse)
	}

	var urlResp checkoutURLResponse
	if err := c.get("/ecom/v1/checkouts/"+created.Checkout.ID+"/checkout-url", &urlResp); err != nil {
		return nil, err
	}
	if urlResp.CheckoutURL == "" {
		return nil, fmt.Errorf("%w: no checkout URL returned", ErrInvalidResponse)
	}

	return &models.CheckoutSession{
		CheckoutID:  created.Checkout.ID,
		CheckoutURL: urlResp.CheckoutURL,
	}, nil
}

// ValidateLineItems enforces the checkout bounds without touching the network.
func ValidateLineItems(items []CheckoutLineItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: checkout requires at least one line item", ErrValidation)
	}
	if len(items) > maxCheckoutItems {
		return fmt.Errorf("%w: checkout is limited to %d line items", ErrValidation, maxCheckoutItems)
	}
	for _, item := range items {
		if item.ExternalID == "" {
			return fmt.Errorf("%w: line item is missing its catalog item id", ErrValidation)
		}
		if item.Quantity < 1 || item.Quantity > maxItemQuantity {
			return fmt.Errorf("%w: line item quantity must be between 1 and %d", ErrValidation, maxItemQuantity)
		}
	}
	return nil
}

func (c *Client) post(path string, body, out interface{}) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) get(path string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if c.siteID != "" {
		req.Header.Set("wix-site-id", c.siteID)
	}
	if c.accountID != "" {
		req.Header.Set("wix-account-id", c.accountID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("wix API request failed: %d - %s", resp.StatusCode, string(body))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
