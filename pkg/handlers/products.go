package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/comparekart/catalog-engine/pkg/apperrors"
	"github.com/comparekart/catalog-engine/pkg/services"
)

// CheckProductsResponse reports the total listing count.
type CheckProductsResponse struct {
	Count int64 `json:"count"`
}

// ProductHandler handles the grouped product read endpoints.
type ProductHandler struct {
	catalog services.CatalogService
	logger  *zap.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(catalog services.CatalogService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{catalog: catalog, logger: logger}
}

// RegisterRoutes registers the product handler's routes on the given mux.
func (h *ProductHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/products", h.List)
	mux.HandleFunc("GET /api/products/id/{np_id}", h.GetByID)
	mux.HandleFunc("GET /api/products/search", h.Search)
	mux.HandleFunc("GET /api/products/name/{product_name}", h.GetByName)
	mux.HandleFunc("GET /api/products/filter", h.Filter)
	mux.HandleFunc("GET /api/products/filters", h.Facets)
	mux.HandleFunc("GET /check-products", h.Check)
}

// List handles GET /api/products?limit=N
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			_ = ErrorResponse(w, http.StatusBadRequest, "invalid_limit", "Invalid limit parameter")
			return
		}
		limit = n
	}

	products, err := h.catalog.ListProducts(r.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "list_products_failed", "Failed to fetch products")
		return
	}

	if err := WriteJSON(w, http.StatusOK, products); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// GetByID handles GET /api/products/id/{np_id}
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	npID, err := strconv.ParseInt(r.PathValue("np_id"), 10, 64)
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_product_id", "Invalid product ID format")
		return
	}

	detail, err := h.catalog.GetProduct(r.Context(), npID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = ErrorResponse(w, http.StatusNotFound, "product_not_found", "Product not found")
			return
		}
		h.logger.Error("Failed to fetch product",
			zap.Int64("np_id", npID),
			zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "fetch_product_failed", "Failed to fetch product")
		return
	}

	if err := WriteJSON(w, http.StatusOK, detail); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Search handles GET /api/products/search?q=term
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	products, err := h.catalog.SearchProducts(r.Context(), q)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidRequest) {
			_ = ErrorResponse(w, http.StatusBadRequest, "missing_search_query", "Missing search query")
			return
		}
		h.logger.Error("Failed to search products",
			zap.String("q", q),
			zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "search_failed", "Search failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, products); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// GetByName handles GET /api/products/name/{product_name}
func (h *ProductHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("product_name")

	products, err := h.catalog.GetProductsByName(r.Context(), name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = ErrorResponse(w, http.StatusNotFound, "product_not_found", "Product not found")
			return
		}
		h.logger.Error("Failed to fetch product by name",
			zap.String("product_name", name),
			zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "fetch_product_failed", "Failed to fetch product")
		return
	}

	if err := WriteJSON(w, http.StatusOK, products); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Filter handles GET /api/products/filter?category=&sub_category=
func (h *ProductHandler) Filter(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	subCategory := r.URL.Query().Get("sub_category")

	products, err := h.catalog.FilterProducts(r.Context(), category, subCategory)
	if err != nil {
		h.logger.Error("Failed to filter products",
			zap.String("category", category),
			zap.String("sub_category", subCategory),
			zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "filter_products_failed", "Failed to fetch filtered products")
		return
	}

	if err := WriteJSON(w, http.StatusOK, products); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Facets handles GET /api/products/filters
func (h *ProductHandler) Facets(w http.ResponseWriter, r *http.Request) {
	facets, err := h.catalog.GetFacets(r.Context())
	if err != nil {
		h.logger.Error("Failed to fetch filter metadata", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "fetch_filters_failed", "Failed to fetch filter metadata")
		return
	}

	if err := WriteJSON(w, http.StatusOK, facets); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Check handles GET /check-products
func (h *ProductHandler) Check(w http.ResponseWriter, r *http.Request) {
	count, err := h.catalog.CountListings(r.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = ErrorResponse(w, http.StatusNotFound, "no_products", "No products found")
			return
		}
		h.logger.Error("Failed to count products", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "count_products_failed", "Database fetch error")
		return
	}

	if err := WriteJSON(w, http.StatusOK, CheckProductsResponse{Count: count}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
