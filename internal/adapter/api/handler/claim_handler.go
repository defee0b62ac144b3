package handler

import (
	"neighbo/internal/usecase"
	"neighbo/pkg/response"

	"github.com/labstack/echo/v4"
)

type ClaimHandler struct {
	claimUseCase *usecase.ClaimUseCase
}

func NewClaimHandler(claimUseCase *usecase.ClaimUseCase) *ClaimHandler {
	return &ClaimHandler{
		claimUseCase: claimUseCase,
	}
}

type claimRequest struct {
	OwnerName           string `json:"owner_name" validate:"required"`
	Role                string `json:"role" validate:"required,oneof=owner manager employee"`
	Phone               string `json:"phone" validate:"required"`
	Email               string `json:"email" validate:"required,email"`
	EvidenceDescription string `json:"evidence_description" validate:"max=2000"`
}

func (h *ClaimHandler) Claim(c echo.Context) error {
	var req claimRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	email, _ := c.Get("email").(string)

	result, err := h.claimUseCase.Claim(c.Request().Context(), c.Param("id"), uid, email, usecase.ClaimInput{
		OwnerName:           req.OwnerName,
		Role:                req.Role,
		Phone:               req.Phone,
		Email:               req.Email,
		EvidenceDescription: req.EvidenceDescription,
	})
	if err != nil {
		return response.Error(c, err)
	}

	// A retried claim returns the original pending record.
	if !result.Created {
		return response.Success(c, result.Claim)
	}
	return response.Created(c, result.Claim)
}

func (h *ClaimHandler) MyRestaurant(c echo.Context) error {
	uid := c.Get("uid").(string)

	restaurant, err := h.claimUseCase.MyRestaurant(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	// nil serializes to a null restaurant for unclaimed callers.
	return response.Success(c, map[string]interface{}{
		"restaurant": restaurant,
	})
}

func (h *ClaimHandler) GetMyClaim(c echo.Context) error {
	uid := c.Get("uid").(string)

	claim, err := h.claimUseCase.GetMyClaim(c.Request().Context(), c.Param("id"), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, claim)
}
