package sync

import (
	"errors"
	"fmt"
	"strings"

	"beautyvault/internal/catalog"
	"beautyvault/internal/models"
	"beautyvault/internal/services/wix"
)

// fakeCatalog is an in-memory stand-in for the catalog store.
type fakeCatalog struct {
	products  []*models.Product
	linkErrs  map[string]error
	imageErrs map[string]error
}

func (f *fakeCatalog) MissingExternalID() ([]models.Product, error) {
	var missing []models.Product
	for _, p := range f.products {
		if !p.Synced() {
			missing = append(missing, *p)
		}
	}
	return missing, nil
}

func (f *fakeCatalog) FindByExternalID(externalID string) (*models.Product, error) {
	for _, p := range f.products {
		if p.ExternalID != nil && *p.ExternalID == externalID {
			return p, nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (f *fakeCatalog) FindByName(name string) (*models.Product, error) {
	var matches []*models.Product
	for _, p := range f.products {
		if strings.EqualFold(p.Name, name) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return nil, catalog.ErrNotFound
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %q", catalog.ErrAmbiguousName, name)
	}
}

func (f *fakeCatalog) LinkExternal(id, externalID string) error {
	if err := f.linkErrs[id]; err != nil {
		return err
	}
	for _, p := range f.products {
		if p.ID == id {
			p.ExternalID = &externalID
			return nil
		}
	}
	return catalog.ErrNotFound
}

func (f *fakeCatalog) RefreshImage(id, imageURL string) error {
	if err := f.imageErrs[id]; err != nil {
		return err
	}
	if imageURL == "" {
		return nil
	}
	for _, p := range f.products {
		if p.ID == id {
			p.ImageURL = &imageURL
			return nil
		}
	}
	return catalog.ErrNotFound
}

// fakePlatform records create calls and serves canned product pages.
type fakePlatform struct {
	nextID     int
	created    []*wix.CreateProductRequest
	createErrs map[string]error
	pages      [][]wix.Product
	queries    int
}

func (f *fakePlatform) CreateProduct(req *wix.CreateProductRequest) (*wix.Product, error) {
	if err := f.createErrs[req.Name]; err != nil {
		return nil, err
	}
	f.nextID++
	f.created = append(f.created, req)
	return &wix.Product{ID: fmt.Sprintf("wix-%d", f.nextID), Name: req.Name}, nil
}

func (f *fakePlatform) QueryProducts(limit, offset int) (*wix.ProductsQueryResponse, error) {
	page := &wix.ProductsQueryResponse{}
	if f.queries < len(f.pages) {
		page.Products = f.pages[f.queries]
	}
	f.queries++
	return page, nil
}

var errRemote = errors.New("wix unavailable")

func wixImage(url string) *wix.Media {
	return &wix.Media{MainMedia: &wix.MediaItem{Image: &wix.Image{URL: url}}}
}
