package usecase

import (
	"context"
	"fmt"
	"sort"

	"neighbo/internal/domain/entity"
	"neighbo/internal/domain/repository"
	"neighbo/pkg/cursor"
	"neighbo/pkg/errors"
	"neighbo/pkg/geo"
	"neighbo/pkg/logger"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	DefaultNearbyRadiusKm = 5.0
	MaxNearbyRadiusKm     = 100.0
)

type RestaurantUseCase struct {
	restaurantRepo repository.RestaurantRepository
	valueRepo      repository.ValueRepository
}

func NewRestaurantUseCase(
	restaurantRepo repository.RestaurantRepository,
	valueRepo repository.ValueRepository,
) *RestaurantUseCase {
	return &RestaurantUseCase{
		restaurantRepo: restaurantRepo,
		valueRepo:      valueRepo,
	}
}

type CreateRestaurantInput struct {
	ExternalPlaceID string
	Name            string
	City            string
	Location        entity.Location
	ValueSlugs      []string
}

type ListRestaurantsInput struct {
	Query       string
	City        string
	MinCertTier int
	ValueSlugs  []string
	Sort        string
	Cursor      string
	Limit       int
}

type RestaurantPage struct {
	Restaurants []*entity.Restaurant
	NextCursor  *string
}

// NearbyResult pairs a restaurant with its true great-circle distance
// from the query point.
type NearbyResult struct {
	Restaurant *entity.Restaurant `json:"restaurant"`
	DistanceKm float64            `json:"distance_km"`
}

func (uc *RestaurantUseCase) Create(ctx context.Context, input CreateRestaurantInput) (*entity.Restaurant, error) {
	// Uniqueness among non-deleted restaurants.
	existing, err := uc.restaurantRepo.GetByExternalPlaceID(ctx, input.ExternalPlaceID)
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}
	if existing != nil {
		return nil, errors.Conflict("A restaurant with this place ID already exists")
	}

	// Fail fast on the first unknown slug.
	for _, slug := range input.ValueSlugs {
		if _, err := uc.valueRepo.GetBySlug(ctx, slug); err != nil {
			if errors.Is(err, "NOT_FOUND") {
				return nil, errors.BadRequest(fmt.Sprintf("Value slug %q does not exist", slug), nil)
			}
			return nil, err
		}
	}

	restaurant := &entity.Restaurant{
		ExternalPlaceID: input.ExternalPlaceID,
		Name:            input.Name,
		City:            input.City,
		Location:        input.Location,
		Geohash:         geo.Encode(input.Location.Lat, input.Location.Lng),
	}
	for _, slug := range input.ValueSlugs {
		restaurant.Values = append(restaurant.Values, entity.ValueAssertion{Slug: slug})
	}
	restaurant.SyncValueSlugs()
	restaurant.RecomputeCertTierMax(entity.CertTierNone)

	if err := uc.restaurantRepo.Create(ctx, restaurant); err != nil {
		return nil, err
	}

	// Best-effort denormalized counter; failure must not fail the create.
	if err := uc.valueRepo.IncrementRestaurantCounts(ctx, input.ValueSlugs); err != nil {
		logger.Warn("Failed to bump restaurant counts for %v: %v", input.ValueSlugs, err)
	}

	if err := uc.resolveLabels(ctx, restaurant); err != nil {
		return nil, err
	}

	return restaurant, nil
}

func (uc *RestaurantUseCase) List(ctx context.Context, input ListRestaurantsInput) (*RestaurantPage, error) {
	limit := normalizeLimit(input.Limit)

	// A malformed cursor is treated as absent: the request serves the
	// first page.
	lastDocID, _ := cursor.Decode(input.Cursor)

	filter := repository.RestaurantListFilter{
		Query:       input.Query,
		City:        input.City,
		MinCertTier: input.MinCertTier,
		ValueSlugs:  input.ValueSlugs,
		Sort:        input.Sort,
	}

	restaurants, hasMore, err := uc.restaurantRepo.List(ctx, filter, lastDocID, limit)
	if err != nil {
		return nil, err
	}

	if err := uc.resolveLabelsAll(ctx, restaurants); err != nil {
		return nil, err
	}

	page := &RestaurantPage{Restaurants: restaurants}
	if hasMore && len(restaurants) > 0 {
		token := cursor.Encode(restaurants[len(restaurants)-1].ID)
		page.NextCursor = &token
	}

	return page, nil
}

func (uc *RestaurantUseCase) Nearby(ctx context.Context, lat, lng, radiusKm float64, requiredSlugs []string, limit int) ([]NearbyResult, error) {
	if !geo.ValidCoordinates(lat, lng) {
		return nil, errors.BadRequest("Invalid coordinates", nil)
	}
	if radiusKm <= 0 {
		radiusKm = DefaultNearbyRadiusKm
	}
	if radiusKm > MaxNearbyRadiusKm {
		return nil, errors.BadRequest(fmt.Sprintf("Radius must be at most %.0f km", MaxNearbyRadiusKm), nil)
	}
	limit = normalizeLimit(limit)

	bounds := geo.QueryBounds(lat, lng, radiusKm)

	// A document near a cell edge can appear in more than one box;
	// deduplicate by id before computing distances.
	merged := make(map[string]*entity.Restaurant)
	for _, bound := range bounds {
		restaurants, err := uc.restaurantRepo.GeohashRange(ctx, bound.Start, bound.End)
		if err != nil {
			return nil, err
		}
		for _, restaurant := range restaurants {
			merged[restaurant.ID] = restaurant
		}
	}

	results := make([]NearbyResult, 0, len(merged))
	for _, restaurant := range merged {
		// Geohash boxes over-cover the disc; re-check true distance.
		distance := geo.Distance(lat, lng, restaurant.Location.Lat, restaurant.Location.Lng)
		if distance > radiusKm {
			continue
		}
		if !hasAllSlugs(restaurant, requiredSlugs) {
			continue
		}
		results = append(results, NearbyResult{Restaurant: restaurant, DistanceKm: distance})
	}

	sort.Slice(results, func(i, j int) bool { return results[i].DistanceKm < results[j].DistanceKm })
	if len(results) > limit {
		results = results[:limit]
	}

	for _, result := range results {
		if err := uc.resolveLabels(ctx, result.Restaurant); err != nil {
			return nil, err
		}
	}

	return results, nil
}

func (uc *RestaurantUseCase) GetByID(ctx context.Context, id string) (*entity.Restaurant, error) {
	restaurant, err := uc.restaurantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if restaurant.IsDeleted() {
		return nil, errors.NotFound("Restaurant", nil)
	}

	if err := uc.resolveLabels(ctx, restaurant); err != nil {
		return nil, err
	}

	return restaurant, nil
}

// UpdateValues replaces the restaurant's value-slug set. Ownership is
// enforced by middleware before this runs.
func (uc *RestaurantUseCase) UpdateValues(ctx context.Context, id string, slugs []string) (*entity.Restaurant, error) {
	restaurant, err := uc.restaurantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if restaurant.IsDeleted() {
		return nil, errors.NotFound("Restaurant", nil)
	}

	for _, slug := range slugs {
		if _, err := uc.valueRepo.GetBySlug(ctx, slug); err != nil {
			if errors.Is(err, "NOT_FOUND") {
				return nil, errors.BadRequest(fmt.Sprintf("Value slug %q does not exist", slug), nil)
			}
			return nil, err
		}
	}

	restaurant.ReplaceValues(slugs)

	if err := uc.restaurantRepo.Update(ctx, restaurant); err != nil {
		return nil, err
	}

	if err := uc.resolveLabels(ctx, restaurant); err != nil {
		return nil, err
	}

	return restaurant, nil
}

func (uc *RestaurantUseCase) Delete(ctx context.Context, id string) error {
	restaurant, err := uc.restaurantRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if restaurant.IsDeleted() {
		return errors.NotFound("Restaurant", nil)
	}

	// Tombstone only; reports, claims and favorites keep their references
	// and are filtered at their own read paths.
	return uc.restaurantRepo.SoftDelete(ctx, id)
}

// resolveLabels joins embedded assertions with live catalog labels. The
// catalog is the source of truth; any persisted label data is ignored.
func (uc *RestaurantUseCase) resolveLabels(ctx context.Context, restaurant *entity.Restaurant) error {
	return uc.resolveLabelsAll(ctx, []*entity.Restaurant{restaurant})
}

func (uc *RestaurantUseCase) resolveLabelsAll(ctx context.Context, restaurants []*entity.Restaurant) error {
	slugSet := make(map[string]bool)
	for _, restaurant := range restaurants {
		for _, v := range restaurant.Values {
			slugSet[v.Slug] = true
		}
	}
	if len(slugSet) == 0 {
		return nil
	}

	slugs := make([]string, 0, len(slugSet))
	for slug := range slugSet {
		slugs = append(slugs, slug)
	}

	values, err := uc.valueRepo.GetBySlugs(ctx, slugs)
	if err != nil {
		return err
	}

	for _, restaurant := range restaurants {
		for i := range restaurant.Values {
			if value, ok := values[restaurant.Values[i].Slug]; ok {
				restaurant.Values[i].Label = value.Label
			} else {
				restaurant.Values[i].Label = restaurant.Values[i].Slug
			}
		}
	}

	return nil
}

func hasAllSlugs(restaurant *entity.Restaurant, required []string) bool {
	if len(required) == 0 {
		return true
	}
	slugSet := make(map[string]bool, len(restaurant.ValueSlugs))
	for _, slug := range restaurant.ValueSlugs {
		slugSet[slug] = true
	}
	for _, slug := range required {
		if !slugSet[slug] {
			return false
		}
	}
	return true
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}
