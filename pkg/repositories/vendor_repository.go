package repositories

import (
	"context"
	"fmt"

	"github.com/comparekart/catalog-engine/pkg/database"
	"github.com/comparekart/catalog-engine/pkg/models"
	"github.com/comparekart/catalog-engine/pkg/normalize"
)

// VendorRepository provides data access for vendor rows.
type VendorRepository interface {
	// Upsert inserts a vendor by canonical name, updating the URL on
	// conflict. Vendors are never deleted.
	Upsert(ctx context.Context, name string, url *string) error

	// GetAll returns every vendor row.
	GetAll(ctx context.Context) ([]*models.Vendor, error)

	// NameIndex returns a snapshot of normalized vendor name to id,
	// used by the price import pass to resolve vendor references.
	NameIndex(ctx context.Context) (map[string]int, error)
}

type vendorRepository struct {
	db *database.DB
}

// NewVendorRepository creates a new VendorRepository backed by db.
func NewVendorRepository(db *database.DB) VendorRepository {
	return &vendorRepository{db: db}
}

var _ VendorRepository = (*vendorRepository)(nil)

func (r *vendorRepository) Upsert(ctx context.Context, name string, url *string) error {
	query := `
		INSERT INTO vendors (name, url)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET url = EXCLUDED.url`

	if _, err := r.db.Exec(ctx, query, name, url); err != nil {
		return fmt.Errorf("failed to upsert vendor %q: %w", name, err)
	}
	return nil
}

func (r *vendorRepository) GetAll(ctx context.Context) ([]*models.Vendor, error) {
	query := `SELECT id, name, url FROM vendors ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query vendors: %w", err)
	}
	defer rows.Close()

	var vendors []*models.Vendor
	for rows.Next() {
		v := &models.Vendor{}
		if err := rows.Scan(&v.ID, &v.Name, &v.URL); err != nil {
			return nil, fmt.Errorf("failed to scan vendor: %w", err)
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}

func (r *vendorRepository) NameIndex(ctx context.Context) (map[string]int, error) {
	vendors, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(vendors))
	for _, v := range vendors {
		index[normalize.VendorKey(v.Name)] = v.ID
	}
	return index, nil
}
