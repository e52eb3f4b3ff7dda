package sync

import (
	"testing"

	"beautyvault/internal/logger"
	"beautyvault/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestOutboundPushesOnlyUnsyncedProducts(t *testing.T) {
	cat := &fakeCatalog{products: []*models.Product{
		{ID: "p1", Name: "Gloss", Price: 12, Currency: "USD", InStock: true},
		{ID: "p2", Name: "Mask", Price: 8, Currency: "USD", InStock: true, ExternalID: strPtr("wix-existing")},
	}}
	platform := &fakePlatform{}

	report, err := NewOutbound(cat, platform, logger.New("error")).Run()
	require.NoError(t, err)

	assert.Equal(t, 1, report.Count)
	require.Len(t, report.Synced, 1)
	assert.Equal(t, "Gloss", report.Synced[0].Name)
	assert.Equal(t, "wix-1", report.Synced[0].ExternalID)
	assert.Empty(t, report.Errors)

	// The assigned id is written back immediately.
	assert.True(t, cat.products[0].Synced())
	assert.Equal(t, "wix-1", *cat.products[0].ExternalID)
}

func TestOutboundContinuesAfterItemFailure(t *testing.T) {
	cat := &fakeCatalog{products: []*models.Product{
		{ID: "p1", Name: "Gloss", Price: 12, Currency: "USD"},
		{ID: "p2", Name: "Mask", Price: 8, Currency: "USD"},
	}}
	platform := &fakePlatform{createErrs: map[string]error{"Gloss": errRemote}}

	report, err := NewOutbound(cat, platform, logger.New("error")).Run()
	require.NoError(t, err)

	assert.Equal(t, 1, report.Count)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "Gloss", report.Errors[0].Product)
	assert.False(t, cat.products[0].Synced())
	assert.True(t, cat.products[1].Synced())
}

func TestOutboundReportsLinkFailure(t *testing.T) {
	cat := &fakeCatalog{
		products: []*models.Product{{ID: "p1", Name: "Gloss", Price: 12, Currency: "USD"}},
		linkErrs: map[string]error{"p1": errRemote},
	}
	platform := &fakePlatform{}

	report, err := NewOutbound(cat, platform, logger.New("error")).Run()
	require.NoError(t, err)
	assert.Zero(t, report.Count)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0].Reason, "failed to save Wix id")
}

func TestBuildCreateRequestMapsDiscount(t *testing.T) {
	compareAt := 20.0
	qty := 7
	desc := "Rich cream"
	brand := "BV"
	p := &models.Product{
		Name:           "Cream",
		Description:    &desc,
		Brand:          &brand,
		Price:          15,
		CompareAtPrice: &compareAt,
		Currency:       "USD",
		InStock:        true,
		StockQuantity:  &qty,
	}

	req := buildCreateRequest(p)
	assert.Equal(t, "Cream", req.Name)
	assert.Equal(t, "physical", req.ProductType)
	// Wix carries the pre-discount price as the base and the selling price as
	// the discounted price.
	assert.Equal(t, "20.00", req.Price.Price)
	assert.Equal(t, "15.00", req.Price.DiscountedPrice)
	assert.Equal(t, "USD", req.Price.Currency)
	assert.True(t, req.Stock.TrackInventory)
	assert.True(t, req.Stock.InStock)
	assert.Equal(t, 7, req.Stock.Quantity)
	assert.True(t, req.Visible)
	assert.Equal(t, "BV", req.Brand)
}

func TestBuildCreateRequestWithoutDiscount(t *testing.T) {
	p := &models.Product{Name: "Gloss", Price: 12, Currency: "USD"}
	req := buildCreateRequest(p)
	assert.Equal(t, "12.00", req.Price.Price)
	assert.Empty(t, req.Price.DiscountedPrice)
}
