package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/comparekart/catalog-engine/pkg/flatfile"
	"github.com/comparekart/catalog-engine/pkg/models"
	"github.com/comparekart/catalog-engine/pkg/normalize"
	"github.com/comparekart/catalog-engine/pkg/repositories"
)

// ImportService drives the idempotent flat-file import in dependency
// order: vendors discovered from listing rows, then listings, then
// prices (skipping rows that reference an unknown vendor), then
// suggestions. Any row failure aborts the whole batch; re-running the
// import with the same files is a state no-op.
type ImportService interface {
	Run(ctx context.Context) (*ImportStats, error)
}

// FileSet names the three input files of one import invocation.
type FileSet struct {
	Listings    string
	Prices      string
	Suggestions string
}

// PassStats counts one import pass for observability.
type PassStats struct {
	Attempted int `json:"attempted"`
	Imported  int `json:"imported"`
	Skipped   int `json:"skipped"`
}

// ImportStats aggregates the per-pass counters of one import run.
type ImportStats struct {
	Vendors     PassStats `json:"vendors"`
	Listings    PassStats `json:"listings"`
	Prices      PassStats `json:"prices"`
	Suggestions PassStats `json:"suggestions"`
}

type importService struct {
	reader      *flatfile.Reader
	files       FileSet
	vendors     repositories.VendorRepository
	listings    repositories.ListingRepository
	prices      repositories.PriceRepository
	suggestions repositories.SuggestionRepository
	logger      *zap.Logger
}

// NewImportService creates a new ImportService over the given
// repositories and input files.
func NewImportService(
	reader *flatfile.Reader,
	files FileSet,
	vendors repositories.VendorRepository,
	listings repositories.ListingRepository,
	prices repositories.PriceRepository,
	suggestions repositories.SuggestionRepository,
	logger *zap.Logger,
) ImportService {
	return &importService{
		reader:      reader,
		files:       files,
		vendors:     vendors,
		listings:    listings,
		prices:      prices,
		suggestions: suggestions,
		logger:      logger.Named("import-service"),
	}
}

var _ ImportService = (*importService)(nil)

func (s *importService) Run(ctx context.Context) (*ImportStats, error) {
	stats := &ImportStats{}

	listingRows, err := s.reader.ReadFile(s.files.Listings)
	if err != nil {
		return stats, fmt.Errorf("read listings file: %w", err)
	}

	if err := s.importVendors(ctx, listingRows, &stats.Vendors); err != nil {
		return stats, err
	}
	if err := s.importListings(ctx, listingRows, &stats.Listings); err != nil {
		return stats, err
	}
	if err := s.importPrices(ctx, &stats.Prices); err != nil {
		return stats, err
	}
	if err := s.importSuggestions(ctx, &stats.Suggestions); err != nil {
		return stats, err
	}

	s.logger.Info("Import complete",
		zap.Int("vendors", stats.Vendors.Imported),
		zap.Int("listings", stats.Listings.Imported),
		zap.Int("prices", stats.Prices.Imported),
		zap.Int("prices_skipped", stats.Prices.Skipped),
		zap.Int("suggestions", stats.Suggestions.Imported))
	return stats, nil
}

// importVendors upserts one vendor per distinct normalized site value
// in the listing rows; the last URL seen for a vendor wins.
func (s *importService) importVendors(ctx context.Context, rows []flatfile.Row, stats *PassStats) error {
	urls := make(map[string]*string)
	var order []string
	for _, row := range rows {
		site := normalize.VendorKey(row["site"])
		if site == "" {
			continue
		}
		if _, seen := urls[site]; !seen {
			order = append(order, site)
		}
		urls[site] = normalize.String(row["site_url"])
	}

	stats.Attempted = len(order)
	for _, name := range order {
		if err := s.vendors.Upsert(ctx, name, urls[name]); err != nil {
			return fmt.Errorf("import vendors: %w", err)
		}
		stats.Imported++
	}

	s.logger.Info("Imported vendors", zap.Int("count", stats.Imported))
	return nil
}

func (s *importService) importListings(ctx context.Context, rows []flatfile.Row, stats *PassStats) error {
	stats.Attempted = len(rows)
	for i, row := range rows {
		listing, err := listingFromRow(row)
		if err != nil {
			return fmt.Errorf("import listings: row %d: %w", i+1, err)
		}
		if err := s.listings.Upsert(ctx, listing); err != nil {
			return fmt.Errorf("import listings: %w", err)
		}
		stats.Imported++
	}

	s.logger.Info("Imported listings", zap.Int("count", stats.Imported))
	return nil
}

// importPrices resolves each row's vendor against an up-front snapshot
// of the vendor table. Rows naming an unknown vendor are dropped, not
// failed: the feeds carry price observations for sites that never
// appear in the listings file.
func (s *importService) importPrices(ctx context.Context, stats *PassStats) error {
	rows, err := s.reader.ReadFile(s.files.Prices)
	if err != nil {
		return fmt.Errorf("read prices file: %w", err)
	}

	vendorIDs, err := s.vendors.NameIndex(ctx)
	if err != nil {
		return fmt.Errorf("import prices: %w", err)
	}

	stats.Attempted = len(rows)
	for i, row := range rows {
		vendorID, ok := vendorIDs[normalize.VendorKey(row["site"])]
		if !ok {
			stats.Skipped++
			continue
		}

		price, err := priceFromRow(row, vendorID)
		if err != nil {
			return fmt.Errorf("import prices: row %d: %w", i+1, err)
		}
		if err := s.prices.Upsert(ctx, price); err != nil {
			return fmt.Errorf("import prices: %w", err)
		}
		stats.Imported++
	}

	s.logger.Info("Imported prices",
		zap.Int("attempted", stats.Attempted),
		zap.Int("imported", stats.Imported),
		zap.Int("skipped", stats.Skipped))
	return nil
}

func (s *importService) importSuggestions(ctx context.Context, stats *PassStats) error {
	rows, err := s.reader.ReadFile(s.files.Suggestions)
	if err != nil {
		return fmt.Errorf("read suggestions file: %w", err)
	}

	stats.Attempted = len(rows)
	for i, row := range rows {
		suggestion, err := suggestionFromRow(row)
		if err != nil {
			return fmt.Errorf("import suggestions: row %d: %w", i+1, err)
		}
		if err := s.suggestions.Upsert(ctx, suggestion); err != nil {
			return fmt.Errorf("import suggestions: %w", err)
		}
		stats.Imported++
	}

	s.logger.Info("Imported suggestions", zap.Int("count", stats.Imported))
	return nil
}

func listingFromRow(row flatfile.Row) (*models.Listing, error) {
	id := normalize.Int(row["id"])
	if id == nil {
		return nil, fmt.Errorf("missing or invalid listing id %q", row["id"])
	}
	npID := normalize.Int(row["np_id"])
	if npID == nil {
		return nil, fmt.Errorf("missing or invalid np_id %q", row["np_id"])
	}

	name := row["product_name"]
	if name == "" {
		name = "Unnamed Product"
	}

	// The trust score column ships with a space in the header.
	trust := row["trust_score"]
	if trust == "" {
		trust = row["trust score"]
	}

	return &models.Listing{
		ID:                 int64(*id),
		NpID:               int64(*npID),
		Site:               row["site"],
		SiteURL:            normalize.String(row["site_url"]),
		ProductName:        name,
		ImageURL:           normalize.String(row["image_url"]),
		Category:           normalize.String(row["category"]),
		SubCategory:        normalize.String(row["sub_category"]),
		Description:        normalize.String(row["description"]),
		FreeDelivery:       normalize.String(row["free_delivery"]),
		CashOnDelivery:     normalize.String(row["cash_on_delivery"]),
		DaysToDeliver:      normalize.Int(row["days_to_deliver"]),
		DiscountPercentage: normalize.Float(row["discount_percentage"]),
		ReturnPolicy:       normalize.String(row["return_policy"]),
		BrandName:          normalize.String(row["brand_name"]),
		Reviews:            normalize.Int(row["reviews"]),
		Rating:             normalize.Float(row["rating"]),
		TrustScore:         normalize.Float(trust),
	}, nil
}

func priceFromRow(row flatfile.Row, vendorID int) (*models.Price, error) {
	productID := normalize.Int(row["product_id"])
	if productID == nil {
		return nil, fmt.Errorf("missing or invalid product_id %q", row["product_id"])
	}
	prideID := row["pride_id"]
	if prideID == "" {
		return nil, fmt.Errorf("missing pride_id")
	}

	return &models.Price{
		PrideID:   prideID,
		ProductID: int64(*productID),
		VendorID:  vendorID,
		Site:      row["site"],
		Price:     normalize.Price(row["price"]),
	}, nil
}

func suggestionFromRow(row flatfile.Row) (*models.Suggestion, error) {
	productID := normalize.Int(row["product_id"])
	if productID == nil {
		return nil, fmt.Errorf("missing or invalid product_id %q", row["product_id"])
	}

	s := &models.Suggestion{ProductID: int64(*productID)}
	if v := normalize.Int(row["suggestion1"]); v != nil {
		ref := int64(*v)
		s.Suggestion1 = &ref
	}
	if v := normalize.Int(row["suggestion2"]); v != nil {
		ref := int64(*v)
		s.Suggestion2 = &ref
	}
	return s, nil
}
