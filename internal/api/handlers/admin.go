package handlers

import (
	"net/http"

	"beautyvault/internal/catalog"
	"beautyvault/internal/events"
	"beautyvault/internal/exporter"
	"beautyvault/internal/importer"
	"beautyvault/internal/logger"
	"beautyvault/internal/sync"

	"github.com/gin-gonic/gin"
)

// AdminHandler covers the catalog maintenance surface: bulk import, export
// and the two sync directions.
type AdminHandler struct {
	store     *catalog.Store
	exporter  *exporter.Exporter
	outbound  *sync.Outbound
	inbound   *sync.Inbound
	publisher *events.Publisher
	logger    *logger.Logger
}

func NewAdminHandler(store *catalog.Store, exp *exporter.Exporter, outbound *sync.Outbound, inbound *sync.Inbound, publisher *events.Publisher, logger *logger.Logger) *AdminHandler {
	return &AdminHandler{
		store:     store,
		exporter:  exp,
		outbound:  outbound,
		inbound:   inbound,
		publisher: publisher,
		logger:    logger,
	}
}

// Import ingests a Shopify product export posted as the request body.
func (h *AdminHandler) Import(c *gin.Context) {
	raws, err := importer.Parse(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.store.UpsertBatch(importer.ToProducts(raws))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import products"})
		return
	}

	h.logger.Info("import: %d products upserted, %d failed", report.Upserted, len(report.Failed))
	if h.publisher != nil {
		h.publisher.Publish(events.TypeImportCompleted, map[string]interface{}{
			"imported": report.Upserted,
			"failed":   len(report.Failed),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"imported": report.Upserted,
		"failed":   report.Failed,
	})
}

// Export streams the catalog as JSON (default) or a Wix import CSV.
func (h *AdminHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "json")
	if format != "json" && format != "csv" {
		c.JSON(http.StatusBadRequest, gin.H{"error": `Invalid format. Use "json" or "csv"`})
		return
	}

	products, _, err := h.store.List(catalog.ListFilter{Limit: 10000})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	if format == "csv" {
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", `attachment; filename="products-wix.csv"`)
		if err := h.exporter.WriteWixCSV(c.Writer, products); err != nil {
			h.logger.Error("export: %v", err)
		}
		return
	}

	c.Header("Content-Type", "application/json")
	c.Header("Content-Disposition", `attachment; filename="products.json"`)
	if err := h.exporter.WriteJSON(c.Writer, products); err != nil {
		h.logger.Error("export: %v", err)
	}
}

// SyncOutbound pushes unsynced products to Wix and reports the outcome.
// Per-product failures are part of the report, not a request failure.
func (h *AdminHandler) SyncOutbound(c *gin.Context) {
	report, err := h.outbound.Run()
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": report})
}

// SyncInbound refreshes local rows from the Wix catalog.
func (h *AdminHandler) SyncInbound(c *gin.Context) {
	report, err := h.inbound.Run()
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": report})
}

// EnqueueSync publishes a sync request for the worker instead of running it
// on the request path.
func (h *AdminHandler) EnqueueSync(c *gin.Context) {
	direction := c.Param("direction")

	var eventType string
	switch direction {
	case "outbound":
		eventType = events.TypeOutboundSyncRequested
	case "inbound":
		eventType = events.TypeInboundSyncRequested
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be outbound or inbound"})
		return
	}

	if h.publisher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "event publishing is not configured"})
		return
	}
	h.publisher.Publish(eventType, nil)
	c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
}
