package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"neighbo/internal/domain/entity"
	"neighbo/internal/domain/repository"
	"neighbo/pkg/errors"
)

type firestoreClaimRepository struct {
	client *firestore.Client
}

func NewFirestoreClaimRepository(client *firestore.Client) repository.ClaimRepository {
	return &firestoreClaimRepository{
		client: client,
	}
}

func (r *firestoreClaimRepository) GetPending(ctx context.Context, restaurantID, userID string) (*entity.BusinessClaim, error) {
	iter := r.client.Collection("businessClaims").
		Where("restaurantId", "==", restaurantID).
		Where("userId", "==", userID).
		Where("status", "==", entity.ClaimStatusPending).
		Limit(1).
		Documents(ctx)

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Internal("Failed to query pending claim", err)
	}

	var claim entity.BusinessClaim
	if err := doc.DataTo(&claim); err != nil {
		return nil, errors.Internal("Failed to parse claim data", err)
	}

	return &claim, nil
}

func (r *firestoreClaimRepository) GetLatest(ctx context.Context, restaurantID, userID string) (*entity.BusinessClaim, error) {
	iter := r.client.Collection("businessClaims").
		Where("restaurantId", "==", restaurantID).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Limit(1).
		Documents(ctx)

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Claim", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to query claim", err)
	}

	var claim entity.BusinessClaim
	if err := doc.DataTo(&claim); err != nil {
		return nil, errors.Internal("Failed to parse claim data", err)
	}

	return &claim, nil
}

// CreateWithRestaurant re-checks the claim-state invariants against the
// transactional snapshot, so two concurrent claimants for one restaurant
// are serialized: exactly one wins, the other observes the pending state
// and gets a conflict.
func (r *firestoreClaimRepository) CreateWithRestaurant(ctx context.Context, claim *entity.BusinessClaim) error {
	claimRef := r.client.Collection("businessClaims").NewDoc()
	restaurantRef := r.client.Collection("restaurants").Doc(claim.RestaurantID)
	userRef := r.client.Collection("users").Doc(claim.UserID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(restaurantRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Restaurant", err)
			}
			return err
		}

		var restaurant entity.Restaurant
		if err := doc.DataTo(&restaurant); err != nil {
			return err
		}
		if restaurant.IsDeleted() {
			return errors.NotFound("Restaurant", nil)
		}
		if restaurant.ClaimStatus == entity.ClaimStatusApproved {
			return errors.Conflict("Restaurant is already claimed")
		}
		if restaurant.ClaimStatus == entity.ClaimStatusPending && restaurant.ClaimedByUserID != claim.UserID {
			return errors.Conflict("A claim for this restaurant is already pending")
		}

		now := time.Now()

		claim.ID = claimRef.ID
		claim.RestaurantName = restaurant.Name
		claim.Status = entity.ClaimStatusPending
		claim.CreatedAt = now
		if claim.EvidenceFileURLs == nil {
			claim.EvidenceFileURLs = []string{}
		}

		if err := tx.Set(claimRef, claim); err != nil {
			return err
		}
		if err := tx.Update(restaurantRef, []firestore.Update{
			{Path: "claimedByUserId", Value: claim.UserID},
			{Path: "claimStatus", Value: entity.ClaimStatusPending},
			{Path: "updatedAt", Value: now},
		}); err != nil {
			return err
		}

		// The claimant's profile mirror is what the ownership gate reads.
		return tx.Set(userRef, map[string]interface{}{
			"claimedRestaurantId": claim.RestaurantID,
			"updatedAt":           now,
		}, firestore.MergeAll)
	})
	if err != nil {
		if appErr := appError(err); appErr != nil {
			return appErr
		}
		return errors.Internal("Failed to create claim", err)
	}

	return nil
}
