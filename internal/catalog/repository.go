package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrItemNotFound = errors.New("catalog item not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error) {
	query := `
		INSERT INTO catalog_items (kind, name, location, price, duration_days, description, active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		RETURNING id, kind, name, location, price, duration_days, description, active, created_at
	`

	var item Item
	err := r.db.GetContext(ctx, &item, query,
		req.Kind, req.Name, req.Location, req.Price, req.DurationDays, req.Description)
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// GetItemByID is the price authority for bookings: the client never supplies a
// price, only an item id.
func (r *repository) GetItemByID(ctx context.Context, id int) (*Item, error) {
	query := `
		SELECT id, kind, name, location, price, duration_days, description, active, created_at
		FROM catalog_items
		WHERE id = $1 AND active
	`

	var item Item
	err := r.db.GetContext(ctx, &item, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	return &item, nil
}

func (r *repository) ListByKind(ctx context.Context, kind string) ([]Item, error) {
	query := `
		SELECT id, kind, name, location, price, duration_days, description, active, created_at
		FROM catalog_items
		WHERE kind = $1 AND active
		ORDER BY name
	`

	var items []Item
	err := r.db.SelectContext(ctx, &items, query, kind)
	if err != nil {
		return nil, err
	}

	return items, nil
}
