package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"beautyvault/internal/models"
)

// RawProduct is one handle group from a vendor export before it is upserted
// into the catalog.
type RawProduct struct {
	Handle         string
	Title          string
	Description    string
	Vendor         string
	Type           string
	Category       string
	Tags           []string
	Published      bool
	Price          float64
	CompareAtPrice *float64
	ImageURL       string
	Variants       []models.Variant
}

// Parse reads a Shopify product export. Rows sharing a handle describe one
// product: the first row with a non-empty Title is the canonical row, later
// rows with a non-empty Option1 Value are variants. Unpublished products are
// dropped here; visibility is decided at import time, not display time.
func Parse(r io.Reader) ([]RawProduct, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	if _, ok := columns["Handle"]; !ok {
		return nil, fmt.Errorf("feed is missing the Handle column")
	}

	byHandle := make(map[string]*RawProduct)
	var order []string

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read feed row: %w", err)
		}

		field := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		handle := field("Handle")
		if handle == "" {
			continue
		}

		price := parsePrice(field("Variant Price"))
		compareAt := parseOptionalPrice(field("Variant Compare At Price"))
		image := cleanImageURL(field("Image Src"))

		title := field("Title")
		if title != "" {
			if _, exists := byHandle[handle]; exists {
				// Later titled rows for a known handle do not replace the
				// canonical row.
				continue
			}
			byHandle[handle] = &RawProduct{
				Handle:         handle,
				Title:          title,
				Description:    StripHTML(field("Body (HTML)")),
				Vendor:         field("Vendor"),
				Type:           field("Type"),
				Category:       ExtractCategory(field("Product Category")),
				Tags:           splitTags(field("Tags")),
				Published:      isPublished(field("Published"), field("Status")),
				Price:          price,
				CompareAtPrice: compareAt,
				ImageURL:       image,
			}
			order = append(order, handle)
			continue
		}

		product, ok := byHandle[handle]
		if !ok {
			continue
		}
		variantTitle := field("Option1 Value")
		if variantTitle == "" {
			continue
		}
		variantImage := cleanImageURL(field("Variant Image"))
		if variantImage == "" {
			variantImage = product.ImageURL
		}
		product.Variants = append(product.Variants, models.Variant{
			Title:          variantTitle,
			Price:          price,
			CompareAtPrice: compareAt,
			ImageURL:       variantImage,
		})
	}

	products := make([]RawProduct, 0, len(order))
	for _, handle := range order {
		if p := byHandle[handle]; p.Published {
			products = append(products, *p)
		}
	}
	return products, nil
}

// ToProducts converts parsed feed groups into catalog rows keyed by slug.
func ToProducts(raws []RawProduct) []models.Product {
	products := make([]models.Product, 0, len(raws))
	for _, raw := range raws {
		p := models.Product{
			Slug:           raw.Handle,
			Name:           raw.Title,
			Currency:       "USD",
			Price:          raw.Price,
			CompareAtPrice: raw.CompareAtPrice,
			InStock:        true,
		}
		if raw.Description != "" {
			desc := raw.Description
			p.Description = &desc
		}
		if raw.Category != "" {
			category := raw.Category
			p.Category = &category
		}
		if raw.Vendor != "" {
			brand := raw.Vendor
			p.Brand = &brand
		}
		if raw.ImageURL != "" {
			image := raw.ImageURL
			alt := raw.Title
			p.ImageURL = &image
			p.ImageAlt = &alt
		}
		products = append(products, p)
	}
	return products
}

func parsePrice(value string) float64 {
	price, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return price
}

func parseOptionalPrice(value string) *float64 {
	if value == "" {
		return nil
	}
	price, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &price
}

// cleanImageURL strips wrapping quotes and keeps only the first URL of a
// comma-separated list, both artifacts of hand-edited exports.
func cleanImageURL(value string) string {
	value = strings.Trim(value, `'"`)
	if idx := strings.Index(value, ","); idx >= 0 {
		value = value[:idx]
	}
	return strings.TrimSpace(value)
}

func splitTags(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func isPublished(published, status string) bool {
	return strings.EqualFold(published, "true") || strings.EqualFold(status, "active")
}
