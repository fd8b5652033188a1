package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/comparekart/catalog-engine/pkg/services"
)

// VendorHandler handles the vendor read endpoints.
type VendorHandler struct {
	catalog services.CatalogService
	logger  *zap.Logger
}

// NewVendorHandler creates a new vendor handler.
func NewVendorHandler(catalog services.CatalogService, logger *zap.Logger) *VendorHandler {
	return &VendorHandler{catalog: catalog, logger: logger}
}

// RegisterRoutes registers the vendor handler's routes on the given mux.
func (h *VendorHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/vendors", h.List)
	mux.HandleFunc("GET /api/vendors/product/{listing_id}", h.Comparison)
}

// List handles GET /api/vendors
func (h *VendorHandler) List(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.catalog.ListVendors(r.Context())
	if err != nil {
		h.logger.Error("Failed to list vendors", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "list_vendors_failed", "Failed to fetch vendors")
		return
	}

	if err := WriteJSON(w, http.StatusOK, vendors); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Comparison handles GET /api/vendors/product/{listing_id}, returning
// the per-vendor offer rows for one listing ascending by price.
func (h *VendorHandler) Comparison(w http.ResponseWriter, r *http.Request) {
	listingID, err := strconv.ParseInt(r.PathValue("listing_id"), 10, 64)
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_listing_id", "Invalid listing ID format")
		return
	}

	listings, err := h.catalog.GetVendorComparison(r.Context(), listingID)
	if err != nil {
		h.logger.Error("Failed to fetch vendor comparison",
			zap.Int64("listing_id", listingID),
			zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "fetch_vendor_listings_failed", "Failed to fetch product listings")
		return
	}

	if err := WriteJSON(w, http.StatusOK, listings); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
