package repository

import (
	"context"

	"neighbo/internal/domain/entity"
)

type ClaimRepository interface {
	// GetPending returns the pending claim for the (restaurant, user)
	// pair, or nil when there is none.
	GetPending(ctx context.Context, restaurantID, userID string) (*entity.BusinessClaim, error)

	// GetLatest returns the user's most recent claim for the restaurant.
	GetLatest(ctx context.Context, restaurantID, userID string) (*entity.BusinessClaim, error)

	// CreateWithRestaurant creates the claim and stamps the restaurant's
	// claim fields (and the claimant's profile) in one transaction,
	// re-checking the claim-state invariants against the transactional
	// snapshot.
	CreateWithRestaurant(ctx context.Context, claim *entity.BusinessClaim) error
}
