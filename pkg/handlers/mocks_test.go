package handlers

import (
	"context"

	"github.com/comparekart/catalog-engine/pkg/models"
	"github.com/comparekart/catalog-engine/pkg/services"
)

// mockCatalogService implements services.CatalogService for handler
// tests. Each field overrides the corresponding call's result.
type mockCatalogService struct {
	summaries      []*models.ProductSummary
	detail         *models.ProductDetail
	facets         *models.FilterFacets
	vendors        []*models.Vendor
	vendorListings []*models.VendorListing
	count          int64

	listErr    error
	detailErr  error
	searchErr  error
	nameErr    error
	filterErr  error
	facetsErr  error
	vendorsErr error
	compareErr error
	countErr   error
}

var _ services.CatalogService = (*mockCatalogService)(nil)

func (m *mockCatalogService) ListProducts(ctx context.Context, limit int) ([]*models.ProductSummary, error) {
	return m.summaries, m.listErr
}

func (m *mockCatalogService) GetProduct(ctx context.Context, npID int64) (*models.ProductDetail, error) {
	if m.detailErr != nil {
		return nil, m.detailErr
	}
	return m.detail, nil
}

func (m *mockCatalogService) SearchProducts(ctx context.Context, q string) ([]*models.ProductSummary, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.summaries, nil
}

func (m *mockCatalogService) GetProductsByName(ctx context.Context, name string) ([]*models.ProductSummary, error) {
	if m.nameErr != nil {
		return nil, m.nameErr
	}
	return m.summaries, nil
}

func (m *mockCatalogService) FilterProducts(ctx context.Context, category, subCategory string) ([]*models.ProductSummary, error) {
	return m.summaries, m.filterErr
}

func (m *mockCatalogService) GetFacets(ctx context.Context) (*models.FilterFacets, error) {
	return m.facets, m.facetsErr
}

func (m *mockCatalogService) ListVendors(ctx context.Context) ([]*models.Vendor, error) {
	return m.vendors, m.vendorsErr
}

func (m *mockCatalogService) GetVendorComparison(ctx context.Context, listingID int64) ([]*models.VendorListing, error) {
	return m.vendorListings, m.compareErr
}

func (m *mockCatalogService) CountListings(ctx context.Context) (int64, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.count, nil
}
