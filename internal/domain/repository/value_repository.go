package repository

import (
	"context"

	"neighbo/internal/domain/entity"
)

type ValueRepository interface {
	GetBySlug(ctx context.Context, slug string) (*entity.Value, error)

	// GetBySlugs resolves a batch of slugs; missing slugs are simply
	// absent from the returned map.
	GetBySlugs(ctx context.Context, slugs []string) (map[string]*entity.Value, error)

	ListActive(ctx context.Context) ([]*entity.Value, error)

	// IncrementRestaurantCounts bumps the denormalized restaurant counter
	// on each value. Best effort; not part of any transaction.
	IncrementRestaurantCounts(ctx context.Context, slugs []string) error
}
