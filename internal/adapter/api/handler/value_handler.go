package handler

import (
	"neighbo/internal/usecase"
	"neighbo/pkg/response"

	"github.com/labstack/echo/v4"
)

type ValueHandler struct {
	valueUseCase *usecase.ValueUseCase
}

func NewValueHandler(valueUseCase *usecase.ValueUseCase) *ValueHandler {
	return &ValueHandler{
		valueUseCase: valueUseCase,
	}
}

func (h *ValueHandler) List(c echo.Context) error {
	values, err := h.valueUseCase.ListActive(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"values": values,
	})
}
