package repository

import (
	"context"

	"neighbo/internal/domain/entity"
)

type UserRepository interface {
	GetByID(ctx context.Context, uid string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error

	AddFavorite(ctx context.Context, uid string, favorite *entity.Favorite) error
	RemoveFavorite(ctx context.Context, uid, restaurantID string) error
	ListFavorites(ctx context.Context, uid, lastDocID string, limit int) ([]*entity.Favorite, bool, error)
}
