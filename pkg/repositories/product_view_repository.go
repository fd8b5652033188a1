package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/comparekart/catalog-engine/pkg/database"
	"github.com/comparekart/catalog-engine/pkg/models"
)

// ProductViewRepository computes the grouped read views over listing
// rows. Each view collapses the per-vendor rows sharing an np_id to
// one representative row: the first encountered listing (lowest id),
// via DISTINCT ON. The choice of representative is an inherited
// contract of the feed data, not a ranking.
type ProductViewRepository interface {
	// ListGrouped returns one summary per product. limit <= 0 means
	// no cap.
	ListGrouped(ctx context.Context, limit int) ([]*models.ProductSummary, error)

	// SearchGrouped returns summaries whose name or description
	// contains term, case-insensitively.
	SearchGrouped(ctx context.Context, term string) ([]*models.ProductSummary, error)

	// GetByExactName returns summaries whose product name matches
	// name exactly.
	GetByExactName(ctx context.Context, name string) ([]*models.ProductSummary, error)

	// FilterGrouped returns summaries filtered by category and/or
	// sub-category; empty strings mean "no constraint", both present
	// are combined conjunctively.
	FilterGrouped(ctx context.Context, category, subCategory string) ([]*models.ProductSummary, error)

	// Facets returns the distinct non-null categories and
	// (sub_category, parent category) pairs.
	Facets(ctx context.Context) (*models.FilterFacets, error)
}

type productViewRepository struct {
	db *database.DB
}

// NewProductViewRepository creates a new ProductViewRepository backed by db.
func NewProductViewRepository(db *database.DB) ProductViewRepository {
	return &productViewRepository{db: db}
}

var _ ProductViewRepository = (*productViewRepository)(nil)

const summaryColumns = `DISTINCT ON (np_id)
		np_id, id, product_name, description, category, sub_category, image_url, brand_name`

func (r *productViewRepository) ListGrouped(ctx context.Context, limit int) ([]*models.ProductSummary, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM listings
		ORDER BY np_id, id`, summaryColumns)

	var args []any
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	return r.querySummaries(ctx, query, args...)
}

func (r *productViewRepository) SearchGrouped(ctx context.Context, term string) ([]*models.ProductSummary, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM listings
		WHERE product_name ILIKE $1 OR description ILIKE $1
		ORDER BY np_id, id`, summaryColumns)

	return r.querySummaries(ctx, query, "%"+term+"%")
}

func (r *productViewRepository) GetByExactName(ctx context.Context, name string) ([]*models.ProductSummary, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM listings
		WHERE product_name = $1
		ORDER BY np_id, id`, summaryColumns)

	return r.querySummaries(ctx, query, name)
}

func (r *productViewRepository) FilterGrouped(ctx context.Context, category, subCategory string) ([]*models.ProductSummary, error) {
	var (
		conditions []string
		args       []any
	)
	if category != "" {
		args = append(args, category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if subCategory != "" {
		args = append(args, subCategory)
		conditions = append(conditions, fmt.Sprintf("sub_category = $%d", len(args)))
	}

	query := fmt.Sprintf("SELECT %s FROM listings", summaryColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY np_id, id"

	return r.querySummaries(ctx, query, args...)
}

func (r *productViewRepository) Facets(ctx context.Context) (*models.FilterFacets, error) {
	facets := &models.FilterFacets{
		Categories:    []string{},
		SubCategories: []models.SubCategoryFacet{},
	}

	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT category FROM listings WHERE category IS NOT NULL ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		facets.Categories = append(facets.Categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	subRows, err := r.db.Query(ctx,
		`SELECT DISTINCT sub_category, category
		 FROM listings
		 WHERE sub_category IS NOT NULL
		 ORDER BY sub_category`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sub-categories: %w", err)
	}
	defer subRows.Close()
	for subRows.Next() {
		var sc models.SubCategoryFacet
		if err := subRows.Scan(&sc.Name, &sc.Parent); err != nil {
			return nil, fmt.Errorf("failed to scan sub-category: %w", err)
		}
		facets.SubCategories = append(facets.SubCategories, sc)
	}
	return facets, subRows.Err()
}

func (r *productViewRepository) querySummaries(ctx context.Context, query string, args ...any) ([]*models.ProductSummary, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query product summaries: %w", err)
	}
	defer rows.Close()

	summaries := []*models.ProductSummary{}
	for rows.Next() {
		s := &models.ProductSummary{}
		err := rows.Scan(
			&s.NpID, &s.SampleID, &s.ProductName, &s.Description,
			&s.Category, &s.SubCategory, &s.ImageURL, &s.BrandName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
