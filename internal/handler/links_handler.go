package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/linkscout/scheduler-finder/api/internal/dto"
	"github.com/linkscout/scheduler-finder/api/internal/service"
)

// LinksHandler exposes batch scheduler-link validation.
type LinksHandler struct {
	validator *service.LinkValidator
}

// NewLinksHandler creates a new handler instance.
func NewLinksHandler(validator *service.LinkValidator) *LinksHandler {
	return &LinksHandler{validator: validator}
}

// Validate handles POST /links/validate requests.
func (h *LinksHandler) Validate(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}

	var req dto.ValidateLinksRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	if req.LinkIDs == nil {
		return Error(c, http.StatusBadRequest, "link_ids array is required")
	}

	summary := h.validator.Validate(c.Request().Context(), userID, req)

	return Success(c, http.StatusOK, "links validated", summary)
}
