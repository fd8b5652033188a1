package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/comparekart/catalog-engine/pkg/flatfile"
	"github.com/comparekart/catalog-engine/pkg/models"
)

func newTestReader() *flatfile.Reader {
	return &flatfile.Reader{}
}

// ============================================================================
// Repository mocks
// ============================================================================

type mockVendorRepo struct {
	upserts   []string
	urls      map[string]*string
	nameIndex map[string]int
	upsertErr error
}

func (m *mockVendorRepo) Upsert(ctx context.Context, name string, url *string) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserts = append(m.upserts, name)
	if m.urls == nil {
		m.urls = make(map[string]*string)
	}
	m.urls[name] = url
	return nil
}

func (m *mockVendorRepo) GetAll(ctx context.Context) ([]*models.Vendor, error) {
	return nil, nil
}

func (m *mockVendorRepo) NameIndex(ctx context.Context) (map[string]int, error) {
	return m.nameIndex, nil
}

type mockListingRepo struct {
	upserts   []*models.Listing
	upsertErr error
}

func (m *mockListingRepo) Upsert(ctx context.Context, l *models.Listing) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserts = append(m.upserts, l)
	return nil
}

func (m *mockListingRepo) GetByNpID(ctx context.Context, npID int64) ([]*models.Listing, error) {
	return nil, nil
}

func (m *mockListingRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(m.upserts)), nil
}

type mockPriceRepo struct {
	upserts   []*models.Price
	upsertErr error
}

func (m *mockPriceRepo) Upsert(ctx context.Context, p *models.Price) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserts = append(m.upserts, p)
	return nil
}

func (m *mockPriceRepo) GetByNpID(ctx context.Context, npID int64) ([]*models.Price, error) {
	return nil, nil
}

func (m *mockPriceRepo) ListForListing(ctx context.Context, listingID int64) ([]*models.VendorListing, error) {
	return nil, nil
}

type mockSuggestionRepo struct {
	upserts []*models.Suggestion
}

func (m *mockSuggestionRepo) Upsert(ctx context.Context, s *models.Suggestion) error {
	m.upserts = append(m.upserts, s)
	return nil
}

func (m *mockSuggestionRepo) GetByProductID(ctx context.Context, productID int64) (*models.Suggestion, error) {
	return nil, nil
}

// ============================================================================
// Fixtures
// ============================================================================

type importFixture struct {
	svc         ImportService
	vendors     *mockVendorRepo
	listings    *mockListingRepo
	prices      *mockPriceRepo
	suggestions *mockSuggestionRepo
}

func newImportFixture(t *testing.T, listingsCSV, pricesCSV, suggestionsCSV string) *importFixture {
	t.Helper()
	dir := t.TempDir()

	files := FileSet{
		Listings:    filepath.Join(dir, "productList.csv"),
		Prices:      filepath.Join(dir, "prices.csv"),
		Suggestions: filepath.Join(dir, "suggestions.csv"),
	}
	require.NoError(t, os.WriteFile(files.Listings, []byte(listingsCSV), 0o644))
	require.NoError(t, os.WriteFile(files.Prices, []byte(pricesCSV), 0o644))
	require.NoError(t, os.WriteFile(files.Suggestions, []byte(suggestionsCSV), 0o644))

	f := &importFixture{
		vendors:     &mockVendorRepo{nameIndex: map[string]int{"amazon": 1, "flipkart": 2}},
		listings:    &mockListingRepo{},
		prices:      &mockPriceRepo{},
		suggestions: &mockSuggestionRepo{},
	}
	f.svc = NewImportService(newTestReader(), files, f.vendors, f.listings, f.prices, f.suggestions, zap.NewNop())
	return f
}

const (
	listingsHeader = "id,np_id,site,site_url,product_name,image_url,category,sub_category,description,free_delivery,cash_on_delivery,days_to_deliver,discount_percentage,return_policy,brand_name,reviews,rating,trust score\n"
	pricesHeader   = "pride_id,product_id,site,price\n"
	suggestHeader  = "product_id,suggestion1,suggestion2\n"
)

func listingRow(id, npID, site, extras string) string {
	return id + "," + npID + "," + site + ",https://" + site + ".example,Phone X,,Electronics,Mobiles,A phone,yes,no," + extras + "\n"
}

// ============================================================================
// Tests
// ============================================================================

func TestImport_VendorDiscoveryNormalizesAndDeduplicates(t *testing.T) {
	listings := listingsHeader +
		listingRow("1", "10", "Amazon", "2,5.0,10 days,BrandA,100,4.2,7.9") +
		listingRow("2", "10", "amazon", "3,,10 days,BrandA,,4.0,") +
		listingRow("3", "11", "Flipkart", ",,,,,,")
	f := newImportFixture(t, listings, pricesHeader, suggestHeader)

	stats, err := f.svc.Run(context.Background())
	require.NoError(t, err)

	// "Amazon" and "amazon" collapse to one vendor.
	assert.Equal(t, []string{"amazon", "flipkart"}, f.vendors.upserts)
	assert.Equal(t, 2, stats.Vendors.Imported)
	assert.Equal(t, 3, stats.Listings.Imported)
}

func TestImport_ListingCoercionPolicies(t *testing.T) {
	listings := listingsHeader +
		// days_to_deliver and rating unparseable, discount empty.
		listingRow("1", "10", "amazon", "soon,,n/a,BrandA,many,not-a-number,x")
	f := newImportFixture(t, listings, pricesHeader, suggestHeader)

	_, err := f.svc.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, f.listings.upserts, 1)

	l := f.listings.upserts[0]
	assert.Equal(t, int64(1), l.ID)
	assert.Equal(t, int64(10), l.NpID)
	assert.Nil(t, l.DaysToDeliver)
	assert.Nil(t, l.DiscountPercentage)
	assert.Nil(t, l.Reviews)
	assert.Nil(t, l.Rating)
	assert.Nil(t, l.TrustScore)
}

func TestImport_MissingNpIDAbortsBatch(t *testing.T) {
	listings := listingsHeader +
		listingRow("1", "", "amazon", ",,,,,,")
	f := newImportFixture(t, listings, pricesHeader, suggestHeader)

	_, err := f.svc.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "np_id")
	assert.Empty(t, f.listings.upserts)
}

func TestImport_PriceCoercionToZero(t *testing.T) {
	prices := pricesHeader +
		"p1,1,amazon,not-a-price\n" +
		"p2,1,flipkart,90.5\n"
	f := newImportFixture(t, listingsHeader, prices, suggestHeader)

	_, err := f.svc.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, f.prices.upserts, 2)

	assert.Equal(t, 0.0, f.prices.upserts[0].Price)
	assert.Equal(t, 90.5, f.prices.upserts[1].Price)
}

func TestImport_OrphanPriceRowsSkippedNotFatal(t *testing.T) {
	prices := pricesHeader +
		"p1,1,amazon,100\n" +
		"p2,1,unknownmart,50\n" +
		"p3,1,Flipkart,80\n"
	f := newImportFixture(t, listingsHeader, prices, suggestHeader)

	stats, err := f.svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Prices.Attempted)
	assert.Equal(t, 2, stats.Prices.Imported)
	assert.Equal(t, 1, stats.Prices.Skipped)
	require.Len(t, f.prices.upserts, 2)
	assert.Equal(t, "p1", f.prices.upserts[0].PrideID)
	assert.Equal(t, "p3", f.prices.upserts[1].PrideID)
}

func TestImport_PriceVendorResolvedCaseInsensitively(t *testing.T) {
	prices := pricesHeader + "p1,1,AMAZON,100\n"
	f := newImportFixture(t, listingsHeader, prices, suggestHeader)

	stats, err := f.svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Prices.Imported)
	require.Len(t, f.prices.upserts, 1)
	assert.Equal(t, 1, f.prices.upserts[0].VendorID)
}

func TestImport_Suggestions(t *testing.T) {
	suggestions := suggestHeader +
		"10,11,12\n" +
		"20,,\n"
	f := newImportFixture(t, listingsHeader, pricesHeader, suggestions)

	stats, err := f.svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Suggestions.Imported)
	require.Len(t, f.suggestions.upserts, 2)

	first := f.suggestions.upserts[0]
	require.NotNil(t, first.Suggestion1)
	assert.Equal(t, int64(11), *first.Suggestion1)

	second := f.suggestions.upserts[1]
	assert.Equal(t, int64(20), second.ProductID)
	assert.Nil(t, second.Suggestion1)
	assert.Nil(t, second.Suggestion2)
}

func TestImport_UpsertFailureAbortsBatch(t *testing.T) {
	listings := listingsHeader +
		listingRow("1", "10", "amazon", ",,,,,,") +
		listingRow("2", "11", "amazon", ",,,,,,")
	f := newImportFixture(t, listings, pricesHeader, suggestHeader)
	f.listings.upsertErr = errors.New("constraint violation")

	_, err := f.svc.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "constraint violation")
}

func TestImport_MissingListingsFileFails(t *testing.T) {
	f := newImportFixture(t, listingsHeader, pricesHeader, suggestHeader)
	svc := f.svc.(*importService)
	svc.files.Listings = filepath.Join(t.TempDir(), "missing.csv")

	_, err := svc.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
