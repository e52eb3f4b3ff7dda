package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a row in the local catalog mirror. ExternalID is assigned by
// the Wix platform once the product has been pushed or matched; a nil
// ExternalID means the product is not yet known to Wix.
type Product struct {
	ID             string     `json:"id" gorm:"type:uuid;primary_key"`
	ExternalID     *string    `json:"external_id" gorm:"column:external_id"`
	Slug           string     `json:"slug" gorm:"unique;not null"`
	Name           string     `json:"name" gorm:"not null"`
	Description    *string    `json:"description"`
	Category       *string    `json:"category"`
	Brand          *string    `json:"brand"`
	Price          float64    `json:"price" gorm:"type:decimal(10,2)"`
	CompareAtPrice *float64   `json:"compare_at_price" gorm:"type:decimal(10,2)"`
	Currency       string     `json:"currency" gorm:"default:USD"`
	ImageURL       *string    `json:"image_url"`
	ImageAlt       *string    `json:"image_alt"`
	InStock        bool       `json:"in_stock" gorm:"default:true"`
	StockQuantity  *int       `json:"stock_quantity"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Variant is one purchasable option of a multi-variant product group from a
// bulk import. Variants are carried on the import payload, not persisted as
// their own table.
type Variant struct {
	Title          string   `json:"title"`
	Price          float64  `json:"price"`
	CompareAtPrice *float64 `json:"compare_at_price"`
	ImageURL       string   `json:"image_url"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// Synced reports whether the product is linked to its Wix counterpart.
func (p *Product) Synced() bool {
	return p.ExternalID != nil && *p.ExternalID != ""
}

// OnSale reports whether the product carries a valid discount. The compare-at
// price must be strictly greater than the selling price.
func (p *Product) OnSale() bool {
	return p.CompareAtPrice != nil && *p.CompareAtPrice > p.Price
}
