package sync

import (
	"errors"

	"beautyvault/internal/catalog"
	"beautyvault/internal/logger"
	"beautyvault/internal/models"
	"beautyvault/internal/services/wix"
)

// Inbound pulls the authoritative catalog back from Wix and refreshes local
// volatile fields, chiefly the rehosted image URL. It only updates matched
// rows; unmatched Wix products are never created locally.
type Inbound struct {
	catalog  Catalog
	platform Platform
	pageSize int
	logger   *logger.Logger
}

func NewInbound(catalog Catalog, platform Platform, pageSize int, logger *logger.Logger) *Inbound {
	if pageSize < 1 {
		pageSize = 100
	}
	return &Inbound{catalog: catalog, platform: platform, pageSize: pageSize, logger: logger}
}

// Run walks the Wix catalog page by page. Each record is matched against the
// local mirror by external id first and case-insensitive name second; an
// ambiguous name match is an item error, never a silent pick.
func (i *Inbound) Run() (*Report, error) {
	report := &Report{}
	offset := 0

	for {
		page, err := i.platform.QueryProducts(i.pageSize, offset)
		if err != nil {
			return nil, err
		}
		if len(page.Products) == 0 {
			break
		}
		i.logger.Info("inbound sync: processing %d Wix products at offset %d", len(page.Products), offset)

		for idx := range page.Products {
			i.reconcile(&page.Products[idx], report)
		}

		if len(page.Products) < i.pageSize {
			break
		}
		offset += len(page.Products)
	}

	i.logger.Info("inbound sync: updated %d products, %d errors", report.Count, len(report.Errors))
	return report, nil
}

func (i *Inbound) reconcile(remote *wix.Product, report *Report) {
	local, err := i.match(remote)
	if errors.Is(err, catalog.ErrNotFound) {
		i.logger.Debug("inbound sync: no local product for %q, skipping", remote.Name)
		return
	}
	if err != nil {
		report.addError(remote.Name, err.Error())
		return
	}

	if !local.Synced() {
		if err := i.catalog.LinkExternal(local.ID, remote.ID); err != nil {
			report.addError(remote.Name, "failed to save Wix id: "+err.Error())
			return
		}
	}

	imageURL := remote.ImageURL()
	imageUpdated := false
	if imageURL != "" {
		if err := i.catalog.RefreshImage(local.ID, imageURL); err != nil {
			report.addError(remote.Name, "failed to refresh image: "+err.Error())
			return
		}
		imageUpdated = true
	}

	report.Synced = append(report.Synced, SyncedProduct{
		Name:         remote.Name,
		ExternalID:   remote.ID,
		ImageUpdated: imageUpdated,
	})
	report.Count++
}

// match prefers the stable external id; the name fallback only applies to
// rows that were never linked.
func (i *Inbound) match(remote *wix.Product) (*models.Product, error) {
	local, err := i.catalog.FindByExternalID(remote.ID)
	if err == nil {
		return local, nil
	}
	if !errors.Is(err, catalog.ErrNotFound) {
		return nil, err
	}
	local, err = i.catalog.FindByName(remote.Name)
	if err != nil {
		return nil, err
	}
	if local.Synced() && *local.ExternalID != remote.ID {
		// Same name, different Wix id. The existing link wins.
		return nil, catalog.ErrNotFound
	}
	return local, nil
}
