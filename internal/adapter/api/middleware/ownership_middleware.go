package middleware

import (
	"net/http"

	"neighbo/internal/domain/entity"
	"neighbo/internal/domain/repository"

	"github.com/labstack/echo/v4"
)

type OwnershipMiddleware struct {
	userRepo repository.UserRepository
}

func NewOwnershipMiddleware(userRepo repository.UserRepository) *OwnershipMiddleware {
	return &OwnershipMiddleware{
		userRepo: userRepo,
	}
}

// RequireOwnership restricts the route to the user whose profile holds
// the :id restaurant as their claimed restaurant.
func (m *OwnershipMiddleware) RequireOwnership(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get("uid").(string)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}

		user, err := m.userRepo.GetByID(c.Request().Context(), uid)
		if err != nil {
			return echo.NewHTTPError(http.StatusForbidden, "Not the owner of this restaurant")
		}

		if user.ClaimedRestaurantID == "" || user.ClaimedRestaurantID != c.Param("id") {
			return echo.NewHTTPError(http.StatusForbidden, "Not the owner of this restaurant")
		}

		return next(c)
	}
}

// RequireOwnerOrAdmin is RequireOwnership with an admin bypass, used on
// destructive routes.
func (m *OwnershipMiddleware) RequireOwnerOrAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get("uid").(string)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}

		user, err := m.userRepo.GetByID(c.Request().Context(), uid)
		if err != nil {
			return echo.NewHTTPError(http.StatusForbidden, "Not the owner of this restaurant")
		}

		if user.UserType == entity.UserTypeAdmin {
			return next(c)
		}

		if user.ClaimedRestaurantID == "" || user.ClaimedRestaurantID != c.Param("id") {
			return echo.NewHTTPError(http.StatusForbidden, "Not the owner of this restaurant")
		}

		return next(c)
	}
}
