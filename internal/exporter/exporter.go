package exporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"beautyvault/internal/logger"
	"beautyvault/internal/models"
)

// wixHeaders is the Wix catalog import template. The option, additional-info
// and custom-field columns are reserved and left empty.
var wixHeaders = []string{
	"handleId", "fieldType", "name", "description", "productImageUrl", "collection", "sku", "ribbon",
	"price", "surcharge", "visible", "discountMode", "discountValue", "inventory", "weight", "cost",
	"productOptionName1", "productOptionType1", "productOptionDescription1",
	"productOptionName2", "productOptionType2", "productOptionDescription2",
	"productOptionName3", "productOptionType3", "productOptionDescription3",
	"productOptionName4", "productOptionType4", "productOptionDescription4",
	"productOptionName5", "productOptionType5", "productOptionDescription5",
	"productOptionName6", "productOptionType6", "productOptionDescription6",
	"additionalInfoTitle1", "additionalInfoDescription1",
	"additionalInfoTitle2", "additionalInfoDescription2",
	"additionalInfoTitle3", "additionalInfoDescription3",
	"additionalInfoTitle4", "additionalInfoDescription4",
	"additionalInfoTitle5", "additionalInfoDescription5",
	"additionalInfoTitle6", "additionalInfoDescription6",
	"customTextField1", "customTextCharLimit1", "customTextMandatory1", "brand",
}

var handleSanitizer = regexp.MustCompile(`[^a-z0-9]+`)

type Exporter struct {
	logger *logger.Logger
}

func New(logger *logger.Logger) *Exporter {
	return &Exporter{logger: logger}
}

// WriteJSON emits the full product records as a JSON array.
func (e *Exporter) WriteJSON(w io.Writer, products []models.Product) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(products); err != nil {
		return fmt.Errorf("failed to encode products: %w", err)
	}
	e.logger.Info("exported %d products as JSON", len(products))
	return nil
}

// WriteWixCSV emits products in the Wix catalog import layout. Literal casing
// matters to the Wix importer: visible is TRUE/FALSE, inventory is
// InStock/OutOfStock, discountMode is AMOUNT.
func (e *Exporter) WriteWixCSV(w io.Writer, products []models.Product) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(wixHeaders); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range products {
		if err := writer.Write(wixRow(&products[i])); err != nil {
			return fmt.Errorf("failed to write row for %q: %w", products[i].Slug, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush export: %w", err)
	}
	e.logger.Info("exported %d products as Wix CSV", len(products))
	return nil
}

func wixRow(p *models.Product) []string {
	row := make([]string, len(wixHeaders))

	row[0] = HandleID(p)
	row[1] = "Product"
	row[2] = p.Name
	if p.Description != nil {
		row[3] = *p.Description
	}
	if p.ImageURL != nil {
		row[4] = *p.ImageURL
	}
	if p.Category != nil {
		row[5] = *p.Category
	}
	// The base price column carries the pre-discount price; the AMOUNT
	// discount brings it down to the selling price.
	row[8] = strconv.FormatFloat(p.Price, 'f', 2, 64)
	row[10] = "TRUE"
	if p.OnSale() {
		row[8] = strconv.FormatFloat(*p.CompareAtPrice, 'f', 2, 64)
		row[11] = "AMOUNT"
		row[12] = strconv.FormatFloat(*p.CompareAtPrice-p.Price, 'f', 2, 64)
	}
	if p.InStock {
		row[13] = "InStock"
	} else {
		row[13] = "OutOfStock"
	}
	if p.Brand != nil {
		row[len(row)-1] = *p.Brand
	}
	return row
}

// HandleID derives the Wix handle: the slug when present, otherwise a
// URL-safe form of the name, capped at 50 characters.
func HandleID(p *models.Product) string {
	handle := p.Slug
	if handle == "" {
		handle = handleSanitizer.ReplaceAllString(strings.ToLower(p.Name), "-")
		handle = strings.Trim(handle, "-")
	}
	if len(handle) > 50 {
		handle = handle[:50]
	}
	return handle
}
