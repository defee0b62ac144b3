package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"neighbo/internal/domain/entity"
	"neighbo/internal/domain/repository"
	"neighbo/pkg/errors"
)

// Value catalog documents are keyed by slug.
type firestoreValueRepository struct {
	client *firestore.Client
}

func NewFirestoreValueRepository(client *firestore.Client) repository.ValueRepository {
	return &firestoreValueRepository{
		client: client,
	}
}

func (r *firestoreValueRepository) GetBySlug(ctx context.Context, slug string) (*entity.Value, error) {
	doc, err := r.client.Collection("values").Doc(slug).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Value", err)
		}
		return nil, errors.Internal("Failed to get value", err)
	}

	var value entity.Value
	if err := doc.DataTo(&value); err != nil {
		return nil, errors.Internal("Failed to parse value data", err)
	}
	value.Slug = doc.Ref.ID

	return &value, nil
}

func (r *firestoreValueRepository) GetBySlugs(ctx context.Context, slugs []string) (map[string]*entity.Value, error) {
	if len(slugs) == 0 {
		return map[string]*entity.Value{}, nil
	}

	refs := make([]*firestore.DocumentRef, len(slugs))
	for i, slug := range slugs {
		refs[i] = r.client.Collection("values").Doc(slug)
	}

	docs, err := r.client.GetAll(ctx, refs)
	if err != nil {
		return nil, errors.Internal("Failed to batch get values", err)
	}

	values := make(map[string]*entity.Value, len(docs))
	for _, doc := range docs {
		if !doc.Exists() {
			continue
		}
		var value entity.Value
		if err := doc.DataTo(&value); err != nil {
			return nil, errors.Internal("Failed to parse value data", err)
		}
		value.Slug = doc.Ref.ID
		values[value.Slug] = &value
	}

	return values, nil
}

func (r *firestoreValueRepository) ListActive(ctx context.Context) ([]*entity.Value, error) {
	iter := r.client.Collection("values").
		Where("active", "==", true).
		OrderBy("sortOrder", firestore.Asc).
		Documents(ctx)

	var values []*entity.Value
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate values", err)
		}

		var value entity.Value
		if err := doc.DataTo(&value); err != nil {
			return nil, errors.Internal("Failed to parse value data", err)
		}
		value.Slug = doc.Ref.ID
		values = append(values, &value)
	}

	return values, nil
}

// IncrementRestaurantCounts is deliberately outside any transaction; the
// counter is presentational and eventual consistency is acceptable.
func (r *firestoreValueRepository) IncrementRestaurantCounts(ctx context.Context, slugs []string) error {
	if len(slugs) == 0 {
		return nil
	}

	batch := r.client.Batch()
	for _, slug := range slugs {
		ref := r.client.Collection("values").Doc(slug)
		batch.Update(ref, []firestore.Update{
			{Path: "restaurantCount", Value: firestore.Increment(1)},
		})
	}

	if _, err := batch.Commit(ctx); err != nil {
		return errors.Internal("Failed to increment restaurant counts", err)
	}

	return nil
}
