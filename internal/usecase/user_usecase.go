package usecase

import (
	"context"

	"neighbo/internal/domain/entity"
	"neighbo/internal/domain/repository"
	"neighbo/pkg/cursor"
	"neighbo/pkg/errors"
)

type UserUseCase struct {
	userRepo       repository.UserRepository
	restaurantRepo repository.RestaurantRepository
	reportRepo     repository.ReportRepository
}

func NewUserUseCase(
	userRepo repository.UserRepository,
	restaurantRepo repository.RestaurantRepository,
	reportRepo repository.ReportRepository,
) *UserUseCase {
	return &UserUseCase{
		userRepo:       userRepo,
		restaurantRepo: restaurantRepo,
		reportRepo:     reportRepo,
	}
}

// ProfileClaims are the verified identity claims used to seed a profile.
type ProfileClaims struct {
	UID     string
	Email   string
	Name    string
	Picture string
}

type UpdateProfileInput struct {
	DisplayName      *string
	UserType         *string
	ValuePreferences []string
}

type FavoritePage struct {
	Favorites  []*entity.Favorite
	NextCursor *string
}

type ReportPage struct {
	Reports    []*entity.Report
	NextCursor *string
}

// GetOrCreate fetches the caller's profile, creating it lazily from the
// identity claims on first authenticated access.
func (uc *UserUseCase) GetOrCreate(ctx context.Context, claims ProfileClaims) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, claims.UID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	user = &entity.User{
		ID:               claims.UID,
		Email:            claims.Email,
		DisplayName:      claims.Name,
		PhotoURL:         claims.Picture,
		UserType:         entity.UserTypeUser,
		ValuePreferences: []string{},
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateProfile merges the patch into the profile, creating the document
// when the caller never fetched it before.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, uid string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		if !errors.Is(err, "NOT_FOUND") {
			return nil, err
		}
		user = &entity.User{
			ID:               uid,
			UserType:         entity.UserTypeUser,
			ValuePreferences: []string{},
		}
		applyProfilePatch(user, input)
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}

	applyProfilePatch(user, input)

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func applyProfilePatch(user *entity.User, input UpdateProfileInput) {
	if input.DisplayName != nil {
		user.DisplayName = *input.DisplayName
	}
	if input.UserType != nil {
		user.UserType = *input.UserType
	}
	if input.ValuePreferences != nil {
		user.ValuePreferences = input.ValuePreferences
	}
}

func (uc *UserUseCase) AddFavorite(ctx context.Context, uid, restaurantID string) error {
	restaurant, err := uc.restaurantRepo.GetByID(ctx, restaurantID)
	if err != nil {
		return err
	}
	if restaurant.IsDeleted() {
		return errors.NotFound("Restaurant", nil)
	}

	return uc.userRepo.AddFavorite(ctx, uid, &entity.Favorite{
		RestaurantID:   restaurant.ID,
		RestaurantName: restaurant.Name,
		RestaurantCity: restaurant.City,
	})
}

func (uc *UserUseCase) RemoveFavorite(ctx context.Context, uid, restaurantID string) error {
	return uc.userRepo.RemoveFavorite(ctx, uid, restaurantID)
}

func (uc *UserUseCase) ListFavorites(ctx context.Context, uid, cursorToken string, limit int) (*FavoritePage, error) {
	limit = normalizeLimit(limit)
	lastDocID, _ := cursor.Decode(cursorToken)

	favorites, hasMore, err := uc.userRepo.ListFavorites(ctx, uid, lastDocID, limit)
	if err != nil {
		return nil, err
	}

	page := &FavoritePage{Favorites: favorites}
	if hasMore && len(favorites) > 0 {
		token := cursor.Encode(favorites[len(favorites)-1].RestaurantID)
		page.NextCursor = &token
	}

	return page, nil
}

func (uc *UserUseCase) ListMyReports(ctx context.Context, uid, cursorToken string, limit int) (*ReportPage, error) {
	limit = normalizeLimit(limit)
	lastDocID, _ := cursor.Decode(cursorToken)

	reports, hasMore, err := uc.reportRepo.ListByUser(ctx, uid, lastDocID, limit)
	if err != nil {
		return nil, err
	}

	page := &ReportPage{Reports: reports}
	if hasMore && len(reports) > 0 {
		token := cursor.Encode(reports[len(reports)-1].ID)
		page.NextCursor = &token
	}

	return page, nil
}
