package usecase

import (
	"context"

	"neighbo/internal/domain/entity"
	"neighbo/internal/domain/repository"
	"neighbo/pkg/errors"
)

type ClaimUseCase struct {
	claimRepo      repository.ClaimRepository
	restaurantRepo repository.RestaurantRepository
	userRepo       repository.UserRepository
}

func NewClaimUseCase(
	claimRepo repository.ClaimRepository,
	restaurantRepo repository.RestaurantRepository,
	userRepo repository.UserRepository,
) *ClaimUseCase {
	return &ClaimUseCase{
		claimRepo:      claimRepo,
		restaurantRepo: restaurantRepo,
		userRepo:       userRepo,
	}
}

type ClaimInput struct {
	OwnerName           string
	Role                string
	Phone               string
	Email               string
	EvidenceDescription string
}

type ClaimResult struct {
	Claim *entity.BusinessClaim
	// Created is false when an existing pending claim was returned
	// instead (idempotent retry).
	Created bool
}

func (uc *ClaimUseCase) Claim(ctx context.Context, restaurantID, uid, userEmail string, input ClaimInput) (*ClaimResult, error) {
	restaurant, err := uc.restaurantRepo.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant.IsDeleted() {
		return nil, errors.NotFound("Restaurant", nil)
	}

	if restaurant.ClaimStatus == entity.ClaimStatusApproved {
		return nil, errors.Conflict("Restaurant is already claimed")
	}

	// One claimed restaurant per user.
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}
	if user != nil && user.ClaimedRestaurantID != "" && user.ClaimedRestaurantID != restaurantID {
		return nil, errors.Conflict("You already own a restaurant")
	}

	// Retrying an in-flight claim returns the pending record unchanged.
	pending, err := uc.claimRepo.GetPending(ctx, restaurantID, uid)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return &ClaimResult{Claim: pending, Created: false}, nil
	}

	claim := &entity.BusinessClaim{
		RestaurantID:        restaurantID,
		UserID:              uid,
		UserEmail:           userEmail,
		OwnerName:           input.OwnerName,
		Role:                input.Role,
		Phone:               input.Phone,
		Email:               input.Email,
		EvidenceDescription: input.EvidenceDescription,
	}

	if err := uc.claimRepo.CreateWithRestaurant(ctx, claim); err != nil {
		return nil, err
	}

	return &ClaimResult{Claim: claim, Created: true}, nil
}

func (uc *ClaimUseCase) GetMyClaim(ctx context.Context, restaurantID, uid string) (*entity.BusinessClaim, error) {
	return uc.claimRepo.GetLatest(ctx, restaurantID, uid)
}

// MyRestaurant resolves the caller's claimed restaurant. It returns nil
// without error when the user holds no claim, the profile was never
// created, or the claimed restaurant has since been deleted.
func (uc *ClaimUseCase) MyRestaurant(ctx context.Context, uid string) (*entity.Restaurant, error) {
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil, nil
		}
		return nil, err
	}
	if user.ClaimedRestaurantID == "" {
		return nil, nil
	}

	restaurant, err := uc.restaurantRepo.GetByID(ctx, user.ClaimedRestaurantID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil, nil
		}
		return nil, err
	}
	if restaurant.IsDeleted() {
		return nil, nil
	}

	return restaurant, nil
}
