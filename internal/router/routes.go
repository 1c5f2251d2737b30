package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/linkscout/scheduler-finder/api/internal/auth"
	"github.com/linkscout/scheduler-finder/api/internal/config"
	"github.com/linkscout/scheduler-finder/api/internal/handler"
	middlewarepkg "github.com/linkscout/scheduler-finder/api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth     *handler.AuthHandler
	Search   *handler.SearchHandler
	Contacts *handler.ContactsHandler
	Import   *handler.ImportHandler
	Links    *handler.LinksHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	e.POST("/auth/register", handlers.Auth.Register)
	e.POST("/auth/login", handlers.Auth.Login)

	secured := e.Group("")
	secured.Use(middlewarepkg.JWT(jwtManager))

	secured.POST("/search/queries", handlers.Search.BuildQueries)

	secured.GET("/contacts", handlers.Contacts.List)
	secured.POST("/contacts", handlers.Contacts.Save)
	secured.GET("/contacts/export", handlers.Contacts.Export)
	secured.GET("/contacts/:id", handlers.Contacts.Get)
	secured.PATCH("/contacts/:id", handlers.Contacts.Update)
	secured.DELETE("/contacts/:id", handlers.Contacts.Delete)
	secured.POST("/contacts/:id/enrich", handlers.Contacts.Enrich)

	secured.POST("/contacts/import", handlers.Import.Import)
	secured.POST("/contacts/import/csv", handlers.Import.ImportCSV)

	secured.POST("/links/validate", handlers.Links.Validate, middlewarepkg.ValidateRateLimiter(cfg.RateLimitValidate))
}
