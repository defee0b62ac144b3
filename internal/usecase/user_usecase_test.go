package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neighbo/internal/domain/entity"
	"neighbo/pkg/errors"
)

func TestGetOrCreateLazilyCreatesProfile(t *testing.T) {
	restaurantRepo := newFakeRestaurantRepo()
	userRepo := newFakeUserRepo()
	reportRepo := newFakeReportRepo(restaurantRepo, userRepo)
	uc := NewUserUseCase(userRepo, restaurantRepo, reportRepo)

	claims := ProfileClaims{
		UID:     "user-1",
		Email:   "jordan@example.com",
		Name:    "Jordan",
		Picture: "https://example.com/jordan.png",
	}

	user, err := uc.GetOrCreate(context.Background(), claims)
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "jordan@example.com", user.Email)
	assert.Equal(t, entity.UserTypeUser, user.UserType)
	assert.NotNil(t, user.ValuePreferences)
	assert.Empty(t, user.ValuePreferences)

	// The second fetch returns the stored profile untouched, even if the
	// token claims drifted.
	userRepo.users["user-1"].DisplayName = "Jordan M."
	again, err := uc.GetOrCreate(context.Background(), ProfileClaims{UID: "user-1", Name: "Jordan"})
	require.NoError(t, err)
	assert.Equal(t, "Jordan M.", again.DisplayName)
	assert.Len(t, userRepo.users, 1)
}

func TestUpdateProfile(t *testing.T) {
	restaurantRepo := newFakeRestaurantRepo()
	userRepo := newFakeUserRepo(&entity.User{ID: "user-1", DisplayName: "Jordan", UserType: entity.UserTypeUser})
	reportRepo := newFakeReportRepo(restaurantRepo, userRepo)
	uc := NewUserUseCase(userRepo, restaurantRepo, reportRepo)

	name := "Jordan M."
	userType := entity.UserTypeBusiness
	user, err := uc.UpdateProfile(context.Background(), "user-1", UpdateProfileInput{
		DisplayName:      &name,
		UserType:         &userType,
		ValuePreferences: []string{"black-owned"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Jordan M.", user.DisplayName)
	assert.Equal(t, entity.UserTypeBusiness, user.UserType)
	assert.Equal(t, []string{"black-owned"}, user.ValuePreferences)

	// Absent fields stay untouched.
	user, err = uc.UpdateProfile(context.Background(), "user-1", UpdateProfileInput{})
	require.NoError(t, err)
	assert.Equal(t, "Jordan M.", user.DisplayName)
	assert.Equal(t, []string{"black-owned"}, user.ValuePreferences)
}

func TestUpdateProfileCreatesMissingDocument(t *testing.T) {
	restaurantRepo := newFakeRestaurantRepo()
	userRepo := newFakeUserRepo()
	reportRepo := newFakeReportRepo(restaurantRepo, userRepo)
	uc := NewUserUseCase(userRepo, restaurantRepo, reportRepo)

	// Patching before any GET /me still lands: the document is created
	// with defaults and the patch merged in.
	name := "Jordan"
	user, err := uc.UpdateProfile(context.Background(), "user-9", UpdateProfileInput{
		DisplayName:      &name,
		ValuePreferences: []string{"black-owned"},
	})
	require.NoError(t, err)
	assert.Equal(t, "user-9", user.ID)
	assert.Equal(t, "Jordan", user.DisplayName)
	assert.Equal(t, entity.UserTypeUser, user.UserType)
	assert.Equal(t, []string{"black-owned"}, user.ValuePreferences)

	stored, err := userRepo.GetByID(context.Background(), "user-9")
	require.NoError(t, err)
	assert.Equal(t, "Jordan", stored.DisplayName)
}

func TestFavorites(t *testing.T) {
	restaurantRepo := newFakeRestaurantRepo()
	valueRepo := newFakeValueRepo("black-owned")
	userRepo := newFakeUserRepo(&entity.User{ID: "user-1"})
	reportRepo := newFakeReportRepo(restaurantRepo, userRepo)

	restaurantUC := NewRestaurantUseCase(restaurantRepo, valueRepo)
	restaurant := seedRestaurant(t, restaurantUC, "place-1", "Breaking Bread", "Minneapolis",
		44.9778, -93.2650, "black-owned")

	uc := NewUserUseCase(userRepo, restaurantRepo, reportRepo)

	require.NoError(t, uc.AddFavorite(context.Background(), "user-1", restaurant.ID))
	// Favoriting twice is idempotent.
	require.NoError(t, uc.AddFavorite(context.Background(), "user-1", restaurant.ID))

	page, err := uc.ListFavorites(context.Background(), "user-1", "", 10)
	require.NoError(t, err)
	require.Len(t, page.Favorites, 1)
	assert.Equal(t, "Breaking Bread", page.Favorites[0].RestaurantName)
	assert.Equal(t, "Minneapolis", page.Favorites[0].RestaurantCity)
	assert.Nil(t, page.NextCursor)

	require.NoError(t, uc.RemoveFavorite(context.Background(), "user-1", restaurant.ID))
	page, err = uc.ListFavorites(context.Background(), "user-1", "", 10)
	require.NoError(t, err)
	assert.Empty(t, page.Favorites)

	err = uc.AddFavorite(context.Background(), "user-1", "no-such-restaurant")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestListMyReportsPaginates(t *testing.T) {
	restaurantRepo := newFakeRestaurantRepo()
	valueRepo := newFakeValueRepo("black-owned")
	userRepo := newFakeUserRepo(&entity.User{ID: "user-1"})
	reportRepo := newFakeReportRepo(restaurantRepo, userRepo)

	restaurantUC := NewRestaurantUseCase(restaurantRepo, valueRepo)
	reportUC := NewReportUseCase(reportRepo, restaurantRepo)
	for i := 0; i < 5; i++ {
		restaurant := seedRestaurant(t, restaurantUC, fmt.Sprintf("place-%d", i),
			fmt.Sprintf("Restaurant %d", i), "Minneapolis", 44.97, -93.26, "black-owned")
		_, err := reportUC.Submit(context.Background(), "user-1", restaurant.ID, []string{"black-owned"}, "")
		require.NoError(t, err)
	}

	uc := NewUserUseCase(userRepo, restaurantRepo, reportRepo)

	var seen []string
	cursorToken := ""
	for {
		page, err := uc.ListMyReports(context.Background(), "user-1", cursorToken, 2)
		require.NoError(t, err)
		for _, report := range page.Reports {
			seen = append(seen, report.ID)
		}
		if page.NextCursor == nil {
			break
		}
		cursorToken = *page.NextCursor
	}

	assert.Len(t, seen, 5)
	unique := make(map[string]bool)
	for _, id := range seen {
		unique[id] = true
	}
	assert.Len(t, unique, 5)
}
