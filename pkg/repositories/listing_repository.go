package repositories

import (
	"context"
	"fmt"

	"github.com/comparekart/catalog-engine/pkg/database"
	"github.com/comparekart/catalog-engine/pkg/models"
)

// ListingRepository provides data access for per-vendor listing rows.
type ListingRepository interface {
	// Upsert inserts a listing keyed by its feed-supplied surrogate
	// id, overwriting all mutable columns on conflict.
	Upsert(ctx context.Context, l *models.Listing) error

	// GetByNpID returns every listing row sharing the external
	// product id, ordered by listing id.
	GetByNpID(ctx context.Context, npID int64) ([]*models.Listing, error)

	// CountAll returns the total number of listing rows.
	CountAll(ctx context.Context) (int64, error)
}

type listingRepository struct {
	db *database.DB
}

// NewListingRepository creates a new ListingRepository backed by db.
func NewListingRepository(db *database.DB) ListingRepository {
	return &listingRepository{db: db}
}

var _ ListingRepository = (*listingRepository)(nil)

func (r *listingRepository) Upsert(ctx context.Context, l *models.Listing) error {
	query := `
		INSERT INTO listings (
			id, np_id, site, site_url, product_name, image_url, category,
			sub_category, description, free_delivery, cash_on_delivery,
			days_to_deliver, discount_percentage, return_policy, brand_name,
			reviews, rating, trust_score
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (id) DO UPDATE SET
			np_id = EXCLUDED.np_id,
			site = EXCLUDED.site,
			site_url = EXCLUDED.site_url,
			product_name = EXCLUDED.product_name,
			image_url = EXCLUDED.image_url,
			category = EXCLUDED.category,
			sub_category = EXCLUDED.sub_category,
			description = EXCLUDED.description,
			free_delivery = EXCLUDED.free_delivery,
			cash_on_delivery = EXCLUDED.cash_on_delivery,
			days_to_deliver = EXCLUDED.days_to_deliver,
			discount_percentage = EXCLUDED.discount_percentage,
			return_policy = EXCLUDED.return_policy,
			brand_name = EXCLUDED.brand_name,
			reviews = EXCLUDED.reviews,
			rating = EXCLUDED.rating,
			trust_score = EXCLUDED.trust_score,
			updated_at = now()`

	_, err := r.db.Exec(ctx, query,
		l.ID,
		l.NpID,
		l.Site,
		l.SiteURL,
		l.ProductName,
		l.ImageURL,
		l.Category,
		l.SubCategory,
		l.Description,
		l.FreeDelivery,
		l.CashOnDelivery,
		l.DaysToDeliver,
		l.DiscountPercentage,
		l.ReturnPolicy,
		l.BrandName,
		l.Reviews,
		l.Rating,
		l.TrustScore,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert listing %d: %w", l.ID, err)
	}
	return nil
}

func (r *listingRepository) GetByNpID(ctx context.Context, npID int64) ([]*models.Listing, error) {
	query := `
		SELECT id, np_id, site, site_url, product_name, image_url, category,
		       sub_category, description, free_delivery, cash_on_delivery,
		       days_to_deliver, discount_percentage, return_policy, brand_name,
		       reviews, rating, trust_score, created_at, updated_at
		FROM listings
		WHERE np_id = $1
		ORDER BY id`

	rows, err := r.db.Query(ctx, query, npID)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings for np_id %d: %w", npID, err)
	}
	defer rows.Close()

	var listings []*models.Listing
	for rows.Next() {
		l := &models.Listing{}
		err := rows.Scan(
			&l.ID, &l.NpID, &l.Site, &l.SiteURL, &l.ProductName, &l.ImageURL,
			&l.Category, &l.SubCategory, &l.Description, &l.FreeDelivery,
			&l.CashOnDelivery, &l.DaysToDeliver, &l.DiscountPercentage,
			&l.ReturnPolicy, &l.BrandName, &l.Reviews, &l.Rating, &l.TrustScore,
			&l.CreatedAt, &l.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func (r *listingRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM listings`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count listings: %w", err)
	}
	return count, nil
}
