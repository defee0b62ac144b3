package repository

import (
	"context"

	"neighbo/internal/domain/entity"
)

// RestaurantListFilter captures the store-level and in-memory filters for
// a catalog listing. Only the first value slug can be pushed into the
// store query; the rest are applied to the fetched page, so a page may
// come back short even when more matches exist past the cursor.
type RestaurantListFilter struct {
	Query       string
	City        string
	MinCertTier int
	ValueSlugs  []string
	Sort        string // "name", "certTier" or "" (store order)
}

type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *entity.Restaurant) error
	GetByID(ctx context.Context, id string) (*entity.Restaurant, error)

	// GetByExternalPlaceID looks up a non-deleted restaurant by its
	// provider-sourced place id.
	GetByExternalPlaceID(ctx context.Context, placeID string) (*entity.Restaurant, error)

	// List returns up to limit restaurants after lastDocID plus a flag
	// indicating whether more pages exist.
	List(ctx context.Context, filter RestaurantListFilter, lastDocID string, limit int) ([]*entity.Restaurant, bool, error)

	// GeohashRange returns non-deleted restaurants whose geohash falls in
	// [start, end], ordered by geohash.
	GeohashRange(ctx context.Context, start, end string) ([]*entity.Restaurant, error)

	Update(ctx context.Context, restaurant *entity.Restaurant) error
	SoftDelete(ctx context.Context, id string) error

	// SelfAttest applies the self-attestation rules to the given slugs
	// inside one transaction and returns the updated restaurant.
	SelfAttest(ctx context.Context, id string, slugs []string) (*entity.Restaurant, error)

	AddEvidence(ctx context.Context, restaurantID string, evidence *entity.Evidence) error
}
