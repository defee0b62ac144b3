package handler

import (
	"neighbo/internal/usecase"
	"neighbo/pkg/response"

	"github.com/labstack/echo/v4"
)

type CertificationHandler struct {
	certificationUseCase *usecase.CertificationUseCase
}

func NewCertificationHandler(certificationUseCase *usecase.CertificationUseCase) *CertificationHandler {
	return &CertificationHandler{
		certificationUseCase: certificationUseCase,
	}
}

type selfAttestRequest struct {
	ValueSlugs []string `json:"value_slugs" validate:"required,min=1"`
}

type uploadEvidenceRequest struct {
	ValueSlug   string   `json:"value_slug" validate:"required"`
	FileURLs    []string `json:"file_urls"`
	Description string   `json:"description"`
}

func (h *CertificationHandler) Get(c echo.Context) error {
	certification, err := h.certificationUseCase.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, certification)
}

func (h *CertificationHandler) SelfAttest(c echo.Context) error {
	var req selfAttestRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	certification, err := h.certificationUseCase.SelfAttest(c.Request().Context(), c.Param("id"), req.ValueSlugs)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, certification)
}

func (h *CertificationHandler) UploadEvidence(c echo.Context) error {
	var req uploadEvidenceRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	err := h.certificationUseCase.SubmitEvidence(
		c.Request().Context(),
		c.Param("id"),
		uid,
		req.ValueSlug,
		req.FileURLs,
		req.Description,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"message": "Evidence submitted for review",
	})
}
