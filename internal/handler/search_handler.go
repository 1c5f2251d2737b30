package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/linkscout/scheduler-finder/api/internal/service/search"
)

// SearchHandler exposes the search query builder.
type SearchHandler struct{}

// NewSearchHandler creates a new handler instance.
func NewSearchHandler() *SearchHandler {
	return &SearchHandler{}
}

// BuildQueries handles POST /search/queries requests.
func (h *SearchHandler) BuildQueries(c echo.Context) error {
	var params search.Params
	if err := c.Bind(&params); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	queries := search.Build(params)

	return Success(c, http.StatusOK, "search queries built", map[string]any{
		"queries": queries,
		"total":   len(queries),
	})
}
