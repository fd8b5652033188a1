package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/comparekart/catalog-engine/pkg/apperrors"
	"github.com/comparekart/catalog-engine/pkg/models"
	"github.com/comparekart/catalog-engine/pkg/normalize"
	"github.com/comparekart/catalog-engine/pkg/repositories"
)

// CatalogService is the read side of the catalog: grouped product
// views, the per-product price table, and vendor comparisons. It
// never writes.
type CatalogService interface {
	// ListProducts returns one summary per product; limit <= 0 means
	// no cap.
	ListProducts(ctx context.Context, limit int) ([]*models.ProductSummary, error)

	// GetProduct returns the detail view for one external product id:
	// all listings, minimum price per normalized vendor, and the
	// suggestion refs when present. apperrors.ErrNotFound when the
	// product has no listings.
	GetProduct(ctx context.Context, npID int64) (*models.ProductDetail, error)

	// SearchProducts matches q case-insensitively against name or
	// description. apperrors.ErrInvalidRequest when q is empty; an
	// empty result is not an error.
	SearchProducts(ctx context.Context, q string) ([]*models.ProductSummary, error)

	// GetProductsByName matches the product name exactly.
	// apperrors.ErrNotFound when nothing matches.
	GetProductsByName(ctx context.Context, name string) ([]*models.ProductSummary, error)

	// FilterProducts filters by category and/or sub-category,
	// conjunctively when both are present.
	FilterProducts(ctx context.Context, category, subCategory string) ([]*models.ProductSummary, error)

	// GetFacets returns the distinct filter values.
	GetFacets(ctx context.Context) (*models.FilterFacets, error)

	// ListVendors returns all vendor rows.
	ListVendors(ctx context.Context) ([]*models.Vendor, error)

	// GetVendorComparison returns the per-vendor offer rows for one
	// listing id, ascending by price.
	GetVendorComparison(ctx context.Context, listingID int64) ([]*models.VendorListing, error)

	// CountListings returns the total listing count, or
	// apperrors.ErrNotFound when the catalog is empty.
	CountListings(ctx context.Context) (int64, error)
}

type catalogService struct {
	views       repositories.ProductViewRepository
	listings    repositories.ListingRepository
	prices      repositories.PriceRepository
	suggestions repositories.SuggestionRepository
	vendors     repositories.VendorRepository
	logger      *zap.Logger
}

// NewCatalogService creates a new CatalogService over the given
// repositories.
func NewCatalogService(
	views repositories.ProductViewRepository,
	listings repositories.ListingRepository,
	prices repositories.PriceRepository,
	suggestions repositories.SuggestionRepository,
	vendors repositories.VendorRepository,
	logger *zap.Logger,
) CatalogService {
	return &catalogService{
		views:       views,
		listings:    listings,
		prices:      prices,
		suggestions: suggestions,
		vendors:     vendors,
		logger:      logger.Named("catalog-service"),
	}
}

var _ CatalogService = (*catalogService)(nil)

func (s *catalogService) ListProducts(ctx context.Context, limit int) ([]*models.ProductSummary, error) {
	return s.views.ListGrouped(ctx, limit)
}

// GetProduct issues three sequential queries without a wrapping
// transaction; the catalog is import-then-read, so read skew between
// them is accepted.
func (s *catalogService) GetProduct(ctx context.Context, npID int64) (*models.ProductDetail, error) {
	listings, err := s.listings.GetByNpID(ctx, npID)
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", npID, err)
	}
	if len(listings) == 0 {
		return nil, apperrors.ErrNotFound
	}

	priceRows, err := s.prices.GetByNpID(ctx, npID)
	if err != nil {
		return nil, fmt.Errorf("get product %d prices: %w", npID, err)
	}

	detail := &models.ProductDetail{
		NpID:     npID,
		Listings: listings,
		Prices:   minPricePerVendor(priceRows),
	}

	suggestion, err := s.suggestions.GetByProductID(ctx, npID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("get product %d suggestions: %w", npID, err)
	}
	if suggestion != nil {
		detail.Suggestions = suggestionRefs(suggestion)
	}

	return detail, nil
}

func (s *catalogService) SearchProducts(ctx context.Context, q string) ([]*models.ProductSummary, error) {
	if strings.TrimSpace(q) == "" {
		return nil, fmt.Errorf("%w: missing search query", apperrors.ErrInvalidRequest)
	}
	return s.views.SearchGrouped(ctx, q)
}

func (s *catalogService) GetProductsByName(ctx context.Context, name string) ([]*models.ProductSummary, error) {
	summaries, err := s.views.GetByExactName(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return summaries, nil
}

func (s *catalogService) FilterProducts(ctx context.Context, category, subCategory string) ([]*models.ProductSummary, error) {
	return s.views.FilterGrouped(ctx, category, subCategory)
}

func (s *catalogService) GetFacets(ctx context.Context) (*models.FilterFacets, error) {
	return s.views.Facets(ctx)
}

func (s *catalogService) ListVendors(ctx context.Context) ([]*models.Vendor, error) {
	return s.vendors.GetAll(ctx)
}

func (s *catalogService) GetVendorComparison(ctx context.Context, listingID int64) ([]*models.VendorListing, error) {
	return s.prices.ListForListing(ctx, listingID)
}

func (s *catalogService) CountListings(ctx context.Context) (int64, error) {
	count, err := s.listings.CountAll(ctx)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, apperrors.ErrNotFound
	}
	return count, nil
}

// minPricePerVendor collapses raw price rows to one entry per
// normalized vendor key, keeping the minimum. Normalization here is
// what folds case variants and the reliance typo into a single vendor.
func minPricePerVendor(prices []*models.Price) []models.VendorPrice {
	mins := make(map[string]float64)
	for _, p := range prices {
		key := normalize.VendorKey(p.Site)
		if current, ok := mins[key]; !ok || p.Price < current {
			mins[key] = p.Price
		}
	}

	table := make([]models.VendorPrice, 0, len(mins))
	for site, price := range mins {
		table = append(table, models.VendorPrice{Site: site, Price: price})
	}
	sort.Slice(table, func(i, j int) bool { return table[i].Site < table[j].Site })
	return table
}

func suggestionRefs(s *models.Suggestion) *models.SuggestionRefs {
	refs := &models.SuggestionRefs{}
	if s.Suggestion1 != nil {
		refs.Suggestion1 = strconv.FormatInt(*s.Suggestion1, 10)
	}
	if s.Suggestion2 != nil {
		refs.Suggestion2 = strconv.FormatInt(*s.Suggestion2, 10)
	}
	return refs
}
