package app

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"humblespace/internal/plugins/auth"
	"humblespace/internal/plugins/books"
	"humblespace/internal/plugins/covers"
	"humblespace/internal/plugins/stats"
)

// RegisterRoutes sets up all application routes. It builds each plugin's
// repository/service/handler chain and delegates to the plugin's route
// registration function.
//
// This is the single place where all routes are aggregated. When a new
// plugin is added, its routes are registered here.
func (a *App) RegisterRoutes() {
	e := a.Echo

	// Health check endpoint for Docker health monitoring.
	e.GET("/healthz", func(c echo.Context) error {
		if err := a.DB.PingContext(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// auth plugin (login, logout, session status)
	authService := auth.NewService(a.Config.Admin)
	auth.RegisterRoutes(e, auth.NewHandler(authService))

	// books plugin (public catalogue, admin-only mutations)
	bookRepo := books.NewBookRepository(a.DB)
	bookService := books.NewBookService(bookRepo)
	books.RegisterRoutes(e, books.NewHandler(bookService), authService)

	// stats plugin (aggregates computed from the catalogue)
	statsService := stats.NewService(bookRepo)
	stats.RegisterRoutes(e, stats.NewHandler(statsService))

	// covers plugin (Open Library lookups, cached in Redis)
	coverClient := covers.NewClient(a.Config.Covers.Timeout)
	coverService := covers.NewService(coverClient, a.Redis, a.Config.Covers.CacheTTL)
	covers.RegisterRoutes(e, covers.NewHandler(coverService))
}
