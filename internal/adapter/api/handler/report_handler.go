package handler

import (
	"neighbo/internal/usecase"
	"neighbo/pkg/response"

	"github.com/labstack/echo/v4"
)

type ReportHandler struct {
	reportUseCase *usecase.ReportUseCase
}

func NewReportHandler(reportUseCase *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{
		reportUseCase: reportUseCase,
	}
}

type submitReportRequest struct {
	Values  []string `json:"values" validate:"required,min=1"`
	Comment string   `json:"comment" validate:"max=1000"`
}

func (h *ReportHandler) CheckMine(c echo.Context) error {
	uid := c.Get("uid").(string)

	check, err := h.reportUseCase.CheckMine(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, check)
}

func (h *ReportHandler) Aggregate(c echo.Context) error {
	aggregate, err := h.reportUseCase.Aggregate(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, aggregate)
}

func (h *ReportHandler) Submit(c echo.Context) error {
	var req submitReportRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	result, err := h.reportUseCase.Submit(c.Request().Context(), uid, c.Param("id"), req.Values, req.Comment)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}
