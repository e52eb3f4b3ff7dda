package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"beautyvault/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// batchSize is the number of rows committed per upsert transaction. A crash
// mid-import leaves only whole batches applied; re-running is safe because
// the upsert is keyed by slug.
const batchSize = 50

var (
	ErrNotFound      = errors.New("product not found")
	ErrAmbiguousName = errors.New("multiple products match name")
)

// Store owns access to the local product mirror. All catalog reads and writes
// go through it.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	Category string
	Search   string
	Page     int
	Limit    int
}

func (s *Store) List(filter ListFilter) ([]models.Product, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	offset := (filter.Page - 1) * filter.Limit

	query := s.db.Model(&models.Product{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(slug) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var products []models.Product
	if err := query.Order("created_at DESC").Offset(offset).Limit(filter.Limit).Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

func (s *Store) Get(id string) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return &product, nil
}

func (s *Store) Update(product *models.Product) error {
	if err := validate(product); err != nil {
		return err
	}
	product.UpdatedAt = time.Now().UTC()
	if err := s.db.Save(product).Error; err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

func (s *Store) Delete(id string) error {
	if err := s.db.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// MissingExternalID returns products that have never been pushed to Wix.
func (s *Store) MissingExternalID() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("external_id IS NULL OR external_id = ''").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to select unsynced products: %w", err)
	}
	return products, nil
}

func (s *Store) FindByExternalID(externalID string) (*models.Product, error) {
	var product models.Product
	err := s.db.First(&product, "external_id = ?", externalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by external id: %w", err)
	}
	return &product, nil
}

// FindByName matches case-insensitively. More than one match is an error:
// name is a fragile reconciliation key, so an ambiguous match is surfaced
// rather than silently picking a row.
func (s *Store) FindByName(name string) (*models.Product, error) {
	var products []models.Product
	if err := s.db.Where("LOWER(name) = ?", strings.ToLower(name)).Limit(2).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to search product by name: %w", err)
	}
	switch len(products) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return &products[0], nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrAmbiguousName, name)
	}
}

// LinkExternal records the Wix id assigned to a product. The link is written
// immediately so a retried sync run never creates the product twice.
func (s *Store) LinkExternal(id, externalID string) error {
	result := s.db.Model(&models.Product{}).Where("id = ?", id).
		Updates(map[string]interface{}{"external_id": externalID, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return fmt.Errorf("failed to link external id: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearExternalLink removes a product's Wix link. Only explicit admin action
// goes through here; sync runs never clear an assigned id.
func (s *Store) ClearExternalLink(id string) error {
	result := s.db.Model(&models.Product{}).Where("id = ?", id).
		Updates(map[string]interface{}{"external_id": nil, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return fmt.Errorf("failed to clear external id: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RefreshImage overwrites the hosted image URL. Wix rehosts images after a
// push, so the URL is volatile; an empty URL is never written.
func (s *Store) RefreshImage(id, imageURL string) error {
	if imageURL == "" {
		return nil
	}
	result := s.db.Model(&models.Product{}).Where("id = ?", id).
		Updates(map[string]interface{}{"image_url": imageURL, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return fmt.Errorf("failed to refresh image: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertReport is the outcome of a batch upsert. Failed batches do not roll
// back batches already committed.
type UpsertReport struct {
	Upserted int
	Failed   []FailedRow
}

type FailedRow struct {
	Slug   string `json:"slug"`
	Reason string `json:"reason"`
}

// UpsertBatch writes products keyed by slug, one transaction per batch of 50.
// Rows failing validation are reported and skipped; a failed batch is reported
// per-row and the remaining batches still run.
func (s *Store) UpsertBatch(products []models.Product) (*UpsertReport, error) {
	report := &UpsertReport{}

	valid := make([]models.Product, 0, len(products))
	for _, p := range products {
		if err := validate(&p); err != nil {
			report.Failed = append(report.Failed, FailedRow{Slug: p.Slug, Reason: err.Error()})
			continue
		}
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		valid = append(valid, p)
	}

	for start := 0; start < len(valid); start += batchSize {
		end := start + batchSize
		if end > len(valid) {
			end = len(valid)
		}
		batch := valid[start:end]

		err := s.db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "description", "category", "brand",
				"price", "compare_at_price", "currency",
				"image_url", "image_alt", "in_stock", "stock_quantity", "updated_at",
			}),
		}).Create(&batch).Error
		if err != nil {
			for _, p := range batch {
				report.Failed = append(report.Failed, FailedRow{Slug: p.Slug, Reason: err.Error()})
			}
			continue
		}
		report.Upserted += len(batch)
	}

	return report, nil
}

func validate(p *models.Product) error {
	if p.Slug == "" {
		return errors.New("slug is required")
	}
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.Price < 0 {
		return errors.New("price must not be negative")
	}
	if p.CompareAtPrice != nil && *p.CompareAtPrice <= p.Price {
		return errors.New("compare-at price must be greater than price")
	}
	if p.StockQuantity != nil && *p.StockQuantity < 0 {
		return errors.New("stock quantity must not be negative")
	}
	return nil
}
