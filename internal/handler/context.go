package handler

import (
	"errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	middlewarepkg "github.com/linkscout/scheduler-finder/api/internal/middleware"
)

var errNoAuthenticatedUser = errors.New("no authenticated user in context")

// userIDFromContext returns the authenticated user's id as stored by the JWT
// middleware.
func userIDFromContext(c echo.Context) (uuid.UUID, error) {
	raw, ok := c.Get(middlewarepkg.ContextKeyUserID).(string)
	if !ok || raw == "" {
		return uuid.Nil, errNoAuthenticatedUser
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errNoAuthenticatedUser
	}
	return userID, nil
}
