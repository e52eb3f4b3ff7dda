package sync

import (
	"strconv"

	"beautyvault/internal/logger"
	"beautyvault/internal/models"
	"beautyvault/internal/services/wix"
)

// Catalog is the slice of the catalog store the synchronizers need.
type Catalog interface {
	MissingExternalID() ([]models.Product, error)
	FindByExternalID(externalID string) (*models.Product, error)
	FindByName(name string) (*models.Product, error)
	LinkExternal(id, externalID string) error
	RefreshImage(id, imageURL string) error
}

// Platform is the slice of the Wix client the synchronizers need.
type Platform interface {
	CreateProduct(req *wix.CreateProductRequest) (*wix.Product, error)
	QueryProducts(limit, offset int) (*wix.ProductsQueryResponse, error)
}

// Outbound pushes catalog rows that have no Wix id yet to the platform's
// creation API and links the assigned id back.
type Outbound struct {
	catalog  Catalog
	platform Platform
	logger   *logger.Logger
}

func NewOutbound(catalog Catalog, platform Platform, logger *logger.Logger) *Outbound {
	return &Outbound{catalog: catalog, platform: platform, logger: logger}
}

// Run processes unsynced products sequentially. The id write-back happens
// immediately after each creation so a retried run never creates the same
// product twice. Per-product failures are recorded and the pass continues.
func (o *Outbound) Run() (*Report, error) {
	products, err := o.catalog.MissingExternalID()
	if err != nil {
		return nil, err
	}

	report := &Report{}
	if len(products) == 0 {
		o.logger.Info("outbound sync: all products already linked to Wix")
		return report, nil
	}
	o.logger.Info("outbound sync: pushing %d products to Wix", len(products))

	for _, product := range products {
		created, err := o.platform.CreateProduct(buildCreateRequest(&product))
		if err != nil {
			o.logger.Error("outbound sync: failed to create %q: %v", product.Name, err)
			report.addError(product.Name, err.Error())
			continue
		}

		if err := o.catalog.LinkExternal(product.ID, created.ID); err != nil {
			o.logger.Error("outbound sync: failed to link %q: %v", product.Name, err)
			report.addError(product.Name, "failed to save Wix id: "+err.Error())
			continue
		}

		report.Synced = append(report.Synced, SyncedProduct{Name: product.Name, ExternalID: created.ID})
		report.Count++
	}

	o.logger.Info("outbound sync: created %d products, %d errors", report.Count, len(report.Errors))
	return report, nil
}

func buildCreateRequest(p *models.Product) *wix.CreateProductRequest {
	req := &wix.CreateProductRequest{
		Name: p.Name,
		// Wix accepts physical or digital
		ProductType: "physical",
		Price: wix.Price{
			Price:    strconv.FormatFloat(p.Price, 'f', 2, 64),
			Currency: p.Currency,
		},
		Stock: wix.Stock{
			TrackInventory: true,
			InStock:        p.InStock,
		},
		Visible: true,
	}
	if p.Description != nil {
		req.Description = *p.Description
	}
	if p.Brand != nil {
		req.Brand = *p.Brand
	}
	if p.CompareAtPrice != nil {
		// The catalog stores the discounted price as Price and the original
		// as CompareAtPrice; Wix wants them the other way around.
		req.Price.Price = strconv.FormatFloat(*p.CompareAtPrice, 'f', 2, 64)
		req.Price.DiscountedPrice = strconv.FormatFloat(p.Price, 'f', 2, 64)
	}
	if p.StockQuantity != nil {
		req.Stock.Quantity = *p.StockQuantity
	}
	return req
}
