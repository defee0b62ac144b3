package handler

import (
	"net/http"
	"strconv"
	"strings"

	"neighbo/internal/domain/entity"
	"neighbo/internal/usecase"
	"neighbo/pkg/errors"
	"neighbo/pkg/response"

	"github.com/labstack/echo/v4"
)

type RestaurantHandler struct {
	restaurantUseCase *usecase.RestaurantUseCase
}

func NewRestaurantHandler(restaurantUseCase *usecase.RestaurantUseCase) *RestaurantHandler {
	return &RestaurantHandler{
		restaurantUseCase: restaurantUseCase,
	}
}

type createRestaurantRequest struct {
	ExternalPlaceID string `json:"external_place_id" validate:"required"`
	Name            string `json:"name" validate:"required"`
	City            string `json:"city" validate:"required"`

	// Pointers so a present zero coordinate (equator, prime meridian)
	// passes required while an absent field still fails it.
	Lat        *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng        *float64 `json:"lng" validate:"required,gte=-180,lte=180"`
	ValueSlugs []string `json:"value_slugs"`
}

type updateRestaurantRequest struct {
	ValueSlugs []string `json:"value_slugs" validate:"required"`
}

func (h *RestaurantHandler) Nearby(c echo.Context) error {
	lat, err := strconv.ParseFloat(c.QueryParam("lat"), 64)
	if err != nil {
		return response.Error(c, errors.BadRequest("lat must be a number", err))
	}
	lng, err := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if err != nil {
		return response.Error(c, errors.BadRequest("lng must be a number", err))
	}

	radius := 0.0
	if raw := c.QueryParam("radius"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return response.Error(c, errors.BadRequest("radius must be a number", err))
		}
	}

	results, err := h.restaurantUseCase.Nearby(
		c.Request().Context(),
		lat, lng, radius,
		splitSlugs(c.QueryParam("values")),
		parseLimit(c),
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"restaurants": results,
	})
}

func (h *RestaurantHandler) List(c echo.Context) error {
	minCertTier := 0
	if raw := c.QueryParam("certTier"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return response.Error(c, errors.BadRequest("certTier must be an integer", err))
		}
		minCertTier = parsed
	}

	page, err := h.restaurantUseCase.List(c.Request().Context(), usecase.ListRestaurantsInput{
		Query:       c.QueryParam("q"),
		City:        c.QueryParam("city"),
		MinCertTier: minCertTier,
		ValueSlugs:  splitSlugs(c.QueryParam("values")),
		Sort:        c.QueryParam("sort"),
		Cursor:      c.QueryParam("cursor"),
		Limit:       parseLimit(c),
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.CursorPaginated(c, page.Restaurants, page.NextCursor)
}

func (h *RestaurantHandler) Get(c echo.Context) error {
	restaurant, err := h.restaurantUseCase.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, restaurant)
}

func (h *RestaurantHandler) Create(c echo.Context) error {
	var req createRestaurantRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	restaurant, err := h.restaurantUseCase.Create(c.Request().Context(), usecase.CreateRestaurantInput{
		ExternalPlaceID: req.ExternalPlaceID,
		Name:            req.Name,
		City:            req.City,
		Location:        entity.Location{Lat: *req.Lat, Lng: *req.Lng},
		ValueSlugs:      req.ValueSlugs,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, restaurant)
}

func (h *RestaurantHandler) Update(c echo.Context) error {
	var req updateRestaurantRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	restaurant, err := h.restaurantUseCase.UpdateValues(c.Request().Context(), c.Param("id"), req.ValueSlugs)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, restaurant)
}

func (h *RestaurantHandler) Delete(c echo.Context) error {
	if err := h.restaurantUseCase.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// splitSlugs parses the comma-separated values query parameter.
func splitSlugs(raw string) []string {
	if raw == "" {
		return nil
	}
	var slugs []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			slugs = append(slugs, part)
		}
	}
	return slugs
}

func parseLimit(c echo.Context) int {
	raw := c.QueryParam("limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return limit
}
