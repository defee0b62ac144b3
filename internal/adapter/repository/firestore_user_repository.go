package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"neighbo/internal/domain/entity"
	"neighbo/internal/domain/repository"
	"neighbo/pkg/errors"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, uid string) (*entity.User, error) {
	doc, err := r.client.Collection("users").Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to get user", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}
	user.ID = doc.Ref.ID

	return &user, nil
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, user)
	if err != nil {
		return errors.Internal("Failed to create user", err)
	}

	return nil
}

func (r *firestoreUserRepository) Update(ctx context.Context, user *entity.User) error {
	user.UpdatedAt = time.Now()

	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, user)
	if err != nil {
		return errors.Internal("Failed to update user", err)
	}

	return nil
}

func (r *firestoreUserRepository) AddFavorite(ctx context.Context, uid string, favorite *entity.Favorite) error {
	if favorite.AddedAt.IsZero() {
		favorite.AddedAt = time.Now()
	}

	_, err := r.client.Collection("users").
		Doc(uid).
		Collection("favorites").
		Doc(favorite.RestaurantID).
		Set(ctx, favorite)
	if err != nil {
		return errors.Internal("Failed to add favorite", err)
	}

	return nil
}

func (r *firestoreUserRepository) RemoveFavorite(ctx context.Context, uid, restaurantID string) error {
	_, err := r.client.Collection("users").
		Doc(uid).
		Collection("favorites").
		Doc(restaurantID).
		Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to remove favorite", err)
	}

	return nil
}

func (r *firestoreUserRepository) ListFavorites(ctx context.Context, uid, lastDocID string, limit int) ([]*entity.Favorite, bool, error) {
	favorites := r.client.Collection("users").Doc(uid).Collection("favorites")

	query := favorites.
		OrderBy("addedAt", firestore.Desc).
		OrderBy(firestore.DocumentID, firestore.Asc)

	if lastDocID != "" {
		lastDoc, err := favorites.Doc(lastDocID).Get(ctx)
		if err == nil && lastDoc.Exists() {
			query = query.StartAfter(lastDoc.Data()["addedAt"], lastDocID)
		}
	}

	docs, err := query.Limit(limit + 1).Documents(ctx).GetAll()
	if err != nil {
		return nil, false, errors.Internal("Failed to list favorites", err)
	}

	hasMore := len(docs) > limit
	if hasMore {
		docs = docs[:limit]
	}

	items := make([]*entity.Favorite, 0, len(docs))
	for _, doc := range docs {
		var favorite entity.Favorite
		if err := doc.DataTo(&favorite); err != nil {
			return nil, false, errors.Internal("Failed to parse favorite data", err)
		}
		items = append(items, &favorite)
	}

	return items, hasMore, nil
}
