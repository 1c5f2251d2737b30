package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/linkscout/scheduler-finder/api/internal/dto"
	"github.com/linkscout/scheduler-finder/api/internal/service"
)

// ImportHandler handles batch contact ingestion.
type ImportHandler struct {
	service *service.ContactsService
}

// NewImportHandler wires a handler backed by the contacts service.
func NewImportHandler(service *service.ContactsService) *ImportHandler {
	return &ImportHandler{service: service}
}

// Import handles POST /contacts/import requests with a JSON batch.
func (h *ImportHandler) Import(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}

	var req dto.ImportRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	if req.Contacts == nil {
		return Error(c, http.StatusBadRequest, "contacts array is required")
	}

	result := h.service.ImportContacts(c.Request().Context(), userID, req)

	return Success(c, http.StatusOK, "contacts imported", result)
}

// ImportCSV handles POST /contacts/import/csv multipart uploads.
func (h *ImportHandler) ImportCSV(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "unauthorized")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return Error(c, http.StatusBadRequest, "missing csv file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return Error(c, http.StatusBadRequest, "unable to open file")
	}
	defer file.Close()

	contacts, err := service.ParseContactsCSV(file)
	if err != nil {
		var validationErr service.CSVValidationError
		if errors.As(err, &validationErr) {
			return Error(c, http.StatusBadRequest, validationErr.Error())
		}
		return Error(c, http.StatusInternalServerError, "failed to process csv")
	}
	if len(contacts) == 0 {
		return Error(c, http.StatusBadRequest, "csv contains no contact rows")
	}

	req := dto.ImportRequest{
		Contacts: contacts,
		Options:  dto.ImportOptions{SkipDuplicates: c.QueryParam("skip_duplicates") != "false"},
	}

	result := h.service.ImportContacts(c.Request().Context(), userID, req)

	return Success(c, http.StatusOK, "contacts CSV processed", result)
}
