package repository

import (
	"context"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

type categoryStore interface {
	ListCategories(ctx context.Context) ([]sqlcgen.Category, error)
}

// CategoryRepository exposes read-only category lookups.
type CategoryRepository struct {
	store categoryStore
}

// NewCategoryRepository wraps sqlc Queries for category operations.
func NewCategoryRepository(store categoryStore) *CategoryRepository {
	return &CategoryRepository{store: store}
}

// List returns every category ordered by id.
func (r *CategoryRepository) List(ctx context.Context) ([]sqlcgen.Category, error) {
	return r.store.ListCategories(ctx)
}
