package repository

import (
	"context"
	goerrors "errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"neighbo/internal/domain/entity"
	"neighbo/internal/domain/repository"
	"neighbo/pkg/errors"
)

type firestoreRestaurantRepository struct {
	client *firestore.Client
}

func NewFirestoreRestaurantRepository(client *firestore.Client) repository.RestaurantRepository {
	return &firestoreRestaurantRepository{
		client: client,
	}
}

// appError unwraps business errors raised inside transactions so they are
// not re-wrapped as internal failures.
func appError(err error) *errors.AppError {
	var appErr *errors.AppError
	if goerrors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func (r *firestoreRestaurantRepository) Create(ctx context.Context, restaurant *entity.Restaurant) error {
	if restaurant.ID == "" {
		doc := r.client.Collection("restaurants").NewDoc()
		restaurant.ID = doc.ID
	}

	now := time.Now()
	if restaurant.CreatedAt.IsZero() {
		restaurant.CreatedAt = now
	}
	restaurant.UpdatedAt = now

	_, err := r.client.Collection("restaurants").Doc(restaurant.ID).Set(ctx, restaurant)
	if err != nil {
		return errors.Internal("Failed to create restaurant", err)
	}

	return nil
}

func (r *firestoreRestaurantRepository) GetByID(ctx context.Context, id string) (*entity.Restaurant, error) {
	doc, err := r.client.Collection("restaurants").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Restaurant", err)
		}
		return nil, errors.Internal("Failed to get restaurant", err)
	}

	var restaurant entity.Restaurant
	if err := doc.DataTo(&restaurant); err != nil {
		return nil, errors.Internal("Failed to parse restaurant data", err)
	}

	return &restaurant, nil
}

func (r *firestoreRestaurantRepository) GetByExternalPlaceID(ctx context.Context, placeID string) (*entity.Restaurant, error) {
	docs, err := r.client.Collection("restaurants").
		Where("externalPlaceId", "==", placeID).
		Where("deletedAt", "==", nil).
		Limit(1).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to query restaurant by place id", err)
	}
	if len(docs) == 0 {
		return nil, errors.NotFound("Restaurant", nil)
	}

	var restaurant entity.Restaurant
	if err := docs[0].DataTo(&restaurant); err != nil {
		return nil, errors.Internal("Failed to parse restaurant data", err)
	}

	return &restaurant, nil
}

func (r *firestoreRestaurantRepository) List(ctx context.Context, filter repository.RestaurantListFilter, lastDocID string, limit int) ([]*entity.Restaurant, bool, error) {
	query := r.client.Collection("restaurants").Query.Where("deletedAt", "==", nil)

	if filter.City != "" {
		query = query.Where("city", "==", filter.City)
	}
	if filter.MinCertTier > 0 {
		query = query.Where("certTierMax", ">=", filter.MinCertTier)
	}
	// Only a single array-containment predicate is supported by the store;
	// remaining slugs are filtered below on the fetched page.
	if len(filter.ValueSlugs) > 0 {
		query = query.Where("valueSlugs", "array-contains", filter.ValueSlugs[0])
	}

	sortField := ""
	switch filter.Sort {
	case "name":
		query = query.OrderBy("name", firestore.Asc)
		sortField = "name"
	case "certTier":
		query = query.OrderBy("certTierMax", firestore.Desc)
		sortField = "certTierMax"
	}
	query = query.OrderBy(firestore.DocumentID, firestore.Asc)

	if lastDocID != "" {
		// A stale or deleted cursor target is ignored and the listing
		// restarts from the first page.
		lastDoc, err := r.client.Collection("restaurants").Doc(lastDocID).Get(ctx)
		if err == nil && lastDoc.Exists() {
			if sortField != "" {
				query = query.StartAfter(lastDoc.Data()[sortField], lastDocID)
			} else {
				query = query.StartAfter(lastDocID)
			}
		}
	}

	docs, err := query.Limit(limit + 1).Documents(ctx).GetAll()
	if err != nil {
		return nil, false, errors.Internal("Failed to list restaurants", err)
	}

	restaurants := make([]*entity.Restaurant, 0, len(docs))
	for _, doc := range docs {
		var restaurant entity.Restaurant
		if err := doc.DataTo(&restaurant); err != nil {
			return nil, false, errors.Internal("Failed to parse restaurant data", err)
		}
		restaurants = append(restaurants, &restaurant)
	}

	// Post-query filtering: value slugs beyond the first.
	if len(filter.ValueSlugs) > 1 {
		restaurants = filterBySlugs(restaurants, filter.ValueSlugs[1:])
	}

	// Post-query filtering: case-insensitive name substring search. The
	// store has no full-text search, so this runs over the fetched page.
	if filter.Query != "" {
		lowered := strings.ToLower(filter.Query)
		matched := restaurants[:0]
		for _, restaurant := range restaurants {
			if strings.Contains(strings.ToLower(restaurant.Name), lowered) {
				matched = append(matched, restaurant)
			}
		}
		restaurants = matched
	}

	hasMore := len(restaurants) > limit
	if hasMore {
		restaurants = restaurants[:limit]
	}

	return restaurants, hasMore, nil
}

func filterBySlugs(restaurants []*entity.Restaurant, required []string) []*entity.Restaurant {
	matched := restaurants[:0]
	for _, restaurant := range restaurants {
		slugSet := make(map[string]bool, len(restaurant.ValueSlugs))
		for _, slug := range restaurant.ValueSlugs {
			slugSet[slug] = true
		}
		ok := true
		for _, slug := range required {
			if !slugSet[slug] {
				ok = false
				break
			}
		}
		if ok {
			matched = append(matched, restaurant)
		}
	}
	return matched
}

func (r *firestoreRestaurantRepository) GeohashRange(ctx context.Context, start, end string) ([]*entity.Restaurant, error) {
	docs, err := r.client.Collection("restaurants").
		Where("deletedAt", "==", nil).
		OrderBy("geohash", firestore.Asc).
		StartAt(start).
		EndAt(end).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to query geohash range", err)
	}

	restaurants := make([]*entity.Restaurant, 0, len(docs))
	for _, doc := range docs {
		var restaurant entity.Restaurant
		if err := doc.DataTo(&restaurant); err != nil {
			return nil, errors.Internal("Failed to parse restaurant data", err)
		}
		restaurants = append(restaurants, &restaurant)
	}

	return restaurants, nil
}

func (r *firestoreRestaurantRepository) Update(ctx context.Context, restaurant *entity.Restaurant) error {
	restaurant.UpdatedAt = time.Now()

	_, err := r.client.Collection("restaurants").Doc(restaurant.ID).Set(ctx, restaurant)
	if err != nil {
		return errors.Internal("Failed to update restaurant", err)
	}

	return nil
}

func (r *firestoreRestaurantRepository) SoftDelete(ctx context.Context, id string) error {
	now := time.Now()
	_, err := r.client.Collection("restaurants").Doc(id).Update(ctx, []firestore.Update{
		{Path: "deletedAt", Value: now},
		{Path: "updatedAt", Value: now},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Restaurant", err)
		}
		return errors.Internal("Failed to soft delete restaurant", err)
	}

	return nil
}

func (r *firestoreRestaurantRepository) SelfAttest(ctx context.Context, id string, slugs []string) (*entity.Restaurant, error) {
	ref := r.client.Collection("restaurants").Doc(id)

	var updated entity.Restaurant
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
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

		restaurant.ApplySelfAttest(slugs)
		restaurant.UpdatedAt = time.Now()

		updated = restaurant
		return tx.Set(ref, &restaurant)
	})
	if err != nil {
		if appErr := appError(err); appErr != nil {
			return nil, appErr
		}
		return nil, errors.Internal("Failed to self-attest values", err)
	}

	return &updated, nil
}

func (r *firestoreRestaurantRepository) AddEvidence(ctx context.Context, restaurantID string, evidence *entity.Evidence) error {
	_, err := r.client.Collection("restaurants").
		Doc(restaurantID).
		Collection("evidence").
		Doc(evidence.ID).
		Set(ctx, evidence)
	if err != nil {
		return errors.Internal("Failed to store evidence", err)
	}

	return nil
}
