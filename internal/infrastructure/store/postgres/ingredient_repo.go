package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Amaru333/cci-hackathon-2025-backend/internal/domain"
)

const listIngredientsQuery = `SELECT name, category, expiry
	FROM all_ingredients
	ORDER BY id`

// IngredientRepo reads the canonical catalog from the all_ingredients table.
// Rows come back in insertion order.
type IngredientRepo struct {
	db *sqlx.DB
}

// NewIngredientRepo creates a new PostgreSQL-backed ingredient store.
func NewIngredientRepo(db *sqlx.DB) *IngredientRepo {
	return &IngredientRepo{db: db}
}

func (r *IngredientRepo) ListIngredients(ctx context.Context) ([]domain.CanonicalIngredient, error) {
	var ingredients []domain.CanonicalIngredient
	if err := r.db.SelectContext(ctx, &ingredients, listIngredientsQuery); err != nil {
		return nil, fmt.Errorf("listing ingredients: %w", err)
	}
	return ingredients, nil
}

// Ping checks connectivity.
func (r *IngredientRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
