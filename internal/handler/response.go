package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// APIResponse is the envelope every endpoint returns, so extension and web
// clients can switch on status without inspecting payload shapes.
type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Success writes a success envelope with the given payload.
func Success(c echo.Context, status int, message string, data any) error {
	if status == 0 {
		status = http.StatusOK
	}
	return c.JSON(status, APIResponse{
		Status:  statusSuccess,
		Message: message,
		Data:    data,
	})
}

// Error writes an error envelope. The message is client-facing; details stay
// in the logs.
func Error(c echo.Context, status int, message string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, APIResponse{
		Status:  statusError,
		Message: message,
	})
}
