package repositories

import (
	"context"
	"fmt"

	"github.com/comparekart/catalog-engine/pkg/database"
	"github.com/comparekart/catalog-engine/pkg/models"
)

// PriceRepository provides data access for observed price rows.
type PriceRepository interface {
	// Upsert inserts a price keyed by its external price id,
	// overwriting price and site on conflict.
	Upsert(ctx context.Context, p *models.Price) error

	// GetByNpID returns the raw price rows for every listing that
	// belongs to the external product id. Vendor grouping happens in
	// the service layer so name normalization is applied consistently.
	GetByNpID(ctx context.Context, npID int64) ([]*models.Price, error)

	// ListForListing returns the vendor comparison rows for one
	// listing id, ascending by price. A listing without price rows
	// still yields one row with a nil price.
	ListForListing(ctx context.Context, listingID int64) ([]*models.VendorListing, error)
}

type priceRepository struct {
	db *database.DB
}

// NewPriceRepository creates a new PriceRepository backed by db.
func NewPriceRepository(db *database.DB) PriceRepository {
	return &priceRepository{db: db}
}

var _ PriceRepository = (*priceRepository)(nil)

func (r *priceRepository) Upsert(ctx context.Context, p *models.Price) error {
	query := `
		INSERT INTO prices (pride_id, product_id, vendor_id, site, price)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (pride_id) DO UPDATE SET
			price = EXCLUDED.price,
			site = EXCLUDED.site`

	if _, err := r.db.Exec(ctx, query, p.PrideID, p.ProductID, p.VendorID, p.Site, p.Price); err != nil {
		return fmt.Errorf("failed to upsert price %q: %w", p.PrideID, err)
	}
	return nil
}

func (r *priceRepository) GetByNpID(ctx context.Context, npID int64) ([]*models.Price, error) {
	query := `
		SELECT pr.id, pr.pride_id, pr.product_id, pr.vendor_id, pr.site, pr.price
		FROM prices pr
		WHERE pr.product_id IN (SELECT id FROM listings WHERE np_id = $1)`

	rows, err := r.db.Query(ctx, query, npID)
	if err != nil {
		return nil, fmt.Errorf("failed to query prices for np_id %d: %w", npID, err)
	}
	defer rows.Close()

	var prices []*models.Price
	for rows.Next() {
		p := &models.Price{}
		if err := rows.Scan(&p.ID, &p.PrideID, &p.ProductID, &p.VendorID, &p.Site, &p.Price); err != nil {
			return nil, fmt.Errorf("failed to scan price: %w", err)
		}
		prices = append(prices, p)
	}
	return prices, rows.Err()
}

func (r *priceRepository) ListForListing(ctx context.Context, listingID int64) ([]*models.VendorListing, error) {
	query := `
		SELECT l.id, l.site, l.site_url, pr.price, l.rating, l.trust_score,
		       l.free_delivery, l.cash_on_delivery, l.days_to_deliver,
		       l.return_policy, l.discount_percentage, l.reviews
		FROM listings l
		LEFT JOIN prices pr ON l.id = pr.product_id
		WHERE l.id = $1
		ORDER BY pr.price ASC`

	rows, err := r.db.Query(ctx, query, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query vendor listings for %d: %w", listingID, err)
	}
	defer rows.Close()

	var listings []*models.VendorListing
	for rows.Next() {
		vl := &models.VendorListing{}
		err := rows.Scan(
			&vl.ID, &vl.WebsiteName, &vl.URL, &vl.Price, &vl.Rating,
			&vl.TrustScore, &vl.FreeDelivery, &vl.CashOnDelivery,
			&vl.EstimatedDeliveryDays, &vl.ReturnPolicy,
			&vl.DiscountPercentage, &vl.Reviews,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vendor listing: %w", err)
		}
		listings = append(listings, vl)
	}
	return listings, rows.Err()
}
