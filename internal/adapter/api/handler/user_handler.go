package handler

import (
	"net/http"

	"neighbo/internal/usecase"
	"neighbo/pkg/response"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

type updateProfileRequest struct {
	DisplayName      *string  `json:"display_name"`
	UserType         *string  `json:"user_type" validate:"omitempty,oneof=user business admin"`
	ValuePreferences []string `json:"value_preferences"`
}

func (h *UserHandler) GetMe(c echo.Context) error {
	claims := usecase.ProfileClaims{
		UID: c.Get("uid").(string),
	}
	claims.Email, _ = c.Get("email").(string)
	claims.Name, _ = c.Get("name").(string)
	claims.Picture, _ = c.Get("picture").(string)

	user, err := h.userUseCase.GetOrCreate(c.Request().Context(), claims)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) UpdateMe(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), uid, usecase.UpdateProfileInput{
		DisplayName:      req.DisplayName,
		UserType:         req.UserType,
		ValuePreferences: req.ValuePreferences,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) AddFavorite(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.userUseCase.AddFavorite(c.Request().Context(), uid, c.Param("restaurantId")); err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]interface{}{
		"message": "Restaurant added to favorites",
	})
}

func (h *UserHandler) RemoveFavorite(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.userUseCase.RemoveFavorite(c.Request().Context(), uid, c.Param("restaurantId")); err != nil {
		return response.Error(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) ListFavorites(c echo.Context) error {
	uid := c.Get("uid").(string)

	page, err := h.userUseCase.ListFavorites(c.Request().Context(), uid, c.QueryParam("cursor"), parseLimit(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.CursorPaginated(c, page.Favorites, page.NextCursor)
}

func (h *UserHandler) ListMyReports(c echo.Context) error {
	uid := c.Get("uid").(string)

	page, err := h.userUseCase.ListMyReports(c.Request().Context(), uid, c.QueryParam("cursor"), parseLimit(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.CursorPaginated(c, page.Reports, page.NextCursor)
}
