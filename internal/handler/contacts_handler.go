package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/linkscout/scheduler-finder/api/internal/dto"
	"github.com/linkscout/scheduler-finder/api/internal/repository"
	"github.com/linkscout/scheduler-finder/api/internal/service"
)

// ContactsHandler exposes contact CRUD, enrichment and export endpoints.
type ContactsHandler struct {
	service *service.ContactsService
}

// NewContactsHandler creates a new handler instance.
func NewContactsHandler(service *service.ContactsService) *ContactsHandler {
	return &ContactsHandler{service: service}
}

// List handles GET /contacts requests.
func (h *ContactsHandler) List(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}

	filter := dto.ContactFilter{
		Search: strings.TrimSpace(c.QueryParam("search")),
		Status: strings.TrimSpace(c.QueryParam("status")),
		Page:   parseIntDefault(c.QueryParam("page"), 1),
		Limit:  parseIntDefault(c.QueryParam("limit"), 50),
	}
	if tags := strings.TrimSpace(c.QueryParam("tags")); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if trimmed := strings.TrimSpace(tag); trimmed != "" {
				filter.Tags = append(filter.Tags, trimmed)
			}
		}
	}

	contacts, pagination, err := h.service.ListContacts(c.Request().Context(), userID, filter)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to list contacts")
	}

	return Success(c, http.StatusOK, "contacts retrieved", map[string]any{
		"contacts":   contacts,
		"pagination": pagination,
	})
}

// Get handles GET /contacts/:id requests.
func (h *ContactsHandler) Get(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}

	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid contact id")
	}

	contact, err := h.service.GetContact(c.Request().Context(), userID, contactID)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return Error(c, http.StatusNotFound, "contact not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to fetch contact")
	}

	return Success(c, http.StatusOK, "contact retrieved", contact)
}

// Save handles POST /contacts requests.
func (h *ContactsHandler) Save(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}

	var req dto.SaveContactRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	contact, err := h.service.SaveContact(c.Request().Context(), userID, req)
	if err != nil {
		if errors.Is(err, service.ErrPersonNameRequired) {
			return Error(c, http.StatusBadRequest, err.Error())
		}
		return Error(c, http.StatusInternalServerError, "failed to save contact")
	}

	return Success(c, http.StatusCreated, "contact saved", contact)
}

// Update handles PATCH /contacts/:id requests.
func (h *ContactsHandler) Update(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}

	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid contact id")
	}

	var update dto.ContactUpdate
	if err := c.Bind(&update); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	contact, err := h.service.UpdateContact(c.Request().Context(), userID, contactID, update)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return Error(c, http.StatusNotFound, "contact not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to update contact")
	}

	return Success(c, http.StatusOK, "contact updated", contact)
}

// Delete handles DELETE /contacts/:id requests.
func (h *ContactsHandler) Delete(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}

	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid contact id")
	}

	if err := h.service.DeleteContact(c.Request().Context(), userID, contactID); err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return Error(c, http.StatusNotFound, "contact not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to delete contact")
	}

	return Success(c, http.StatusOK, "contact deleted", nil)
}

// Enrich handles POST /contacts/:id/enrich requests.
func (h *ContactsHandler) Enrich(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}

	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid contact id")
	}

	var data dto.EnrichmentData
	if err := c.Bind(&data); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	contact, enriched, err := h.service.EnrichContact(c.Request().Context(), userID, contactID, data)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return Error(c, http.StatusNotFound, "contact not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to enrich contact")
	}

	if enriched == nil {
		enriched = []string{}
	}

	return Success(c, http.StatusOK, "contact enriched", map[string]any{
		"contact":         contact,
		"enriched_fields": enriched,
	})
}

// Export handles GET /contacts/export requests. The format query parameter
// selects JSON (default) or CSV output.
func (h *ContactsHandler) Export(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}

	includeLinks := c.QueryParam("include_links") == "true"

	switch strings.ToLower(strings.TrimSpace(c.QueryParam("format"))) {
	case "", "json":
		contacts, err := h.service.ExportContacts(c.Request().Context(), userID)
		if err != nil {
			return Error(c, http.StatusInternalServerError, "failed to export contacts")
		}
		return Success(c, http.StatusOK, "contacts exported", map[string]any{
			"contacts": contacts,
			"total":    len(contacts),
		})
	case "csv":
		data, err := h.service.ExportContactsCSV(c.Request().Context(), userID, includeLinks)
		if err != nil {
			return Error(c, http.StatusInternalServerError, "failed to export contacts")
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="contacts.csv"`)
		return c.Blob(http.StatusOK, "text/csv", data)
	default:
		return Error(c, http.StatusBadRequest, "unsupported format (use json or csv)")
	}
}

func parseIntDefault(input string, fallback int) int {
	if input == "" {
		return fallback
	}
	if value, err := strconv.Atoi(input); err == nil {
		return value
	}
	return fallback
}
