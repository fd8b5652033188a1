package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/comparekart/catalog-engine/pkg/apperrors"
	"github.com/comparekart/catalog-engine/pkg/database"
	"github.com/comparekart/catalog-engine/pkg/models"
)

// SuggestionRepository provides data access for related-product
// suggestion rows. At most one row exists per product id.
type SuggestionRepository interface {
	// Upsert inserts a suggestion row keyed by product id; a
	// re-import overwrites both references (last import wins).
	Upsert(ctx context.Context, s *models.Suggestion) error

	// GetByProductID returns the suggestion row for a product, or
	// apperrors.ErrNotFound when none exists.
	GetByProductID(ctx context.Context, productID int64) (*models.Suggestion, error)
}

type suggestionRepository struct {
	db *database.DB
}

// NewSuggestionRepository creates a new SuggestionRepository backed by db.
func NewSuggestionRepository(db *database.DB) SuggestionRepository {
	return &suggestionRepository{db: db}
}

var _ SuggestionRepository = (*suggestionRepository)(nil)

func (r *suggestionRepository) Upsert(ctx context.Context, s *models.Suggestion) error {
	query := `
		INSERT INTO suggestions (product_id, suggestion1, suggestion2)
		VALUES ($1, $2, $3)
		ON CONFLICT (product_id) DO UPDATE SET
			suggestion1 = EXCLUDED.suggestion1,
			suggestion2 = EXCLUDED.suggestion2`

	if _, err := r.db.Exec(ctx, query, s.ProductID, s.Suggestion1, s.Suggestion2); err != nil {
		return fmt.Errorf("failed to upsert suggestion for product %d: %w", s.ProductID, err)
	}
	return nil
}

func (r *suggestionRepository) GetByProductID(ctx context.Context, productID int64) (*models.Suggestion, error) {
	query := `
		SELECT product_id, suggestion1, suggestion2
		FROM suggestions
		WHERE product_id = $1`

	s := &models.Suggestion{}
	err := r.db.QueryRow(ctx, query, productID).Scan(&s.ProductID, &s.Suggestion1, &s.Suggestion2)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query suggestion for product %d: %w", productID, err)
	}
	return s, nil
}
