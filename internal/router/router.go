package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/cinegraph/cartelera/internal/handler" // import the handlers that implement business logic
)

// RegisterRoutes registers the service-level routes on the provided Echo
// instance.  The health endpoint verifies graph connectivity, so it needs a
// constructed handler rather than a bare function.
func RegisterRoutes(e *echo.Echo, h *handler.HealthHandler) {
	e.GET("/healthz", h.Health)
}

// RegisterMovies registers the /peliculas routes.  The static listing
// routes must not be shadowed by the :id parameter; Echo matches static
// segments first, so the order here is only for readability.
func RegisterMovies(e *echo.Echo, m *handler.MovieHandler) {
	g := e.Group("/peliculas")
	g.POST("", m.Create)
	g.GET("", m.List)
	g.GET("/generos/listado", m.ListGenres)
	g.GET("/formatos/listado", m.ListFormats)
	g.GET("/:id", m.GetByID)
}

// RegisterShowings registers the /funciones routes.
func RegisterShowings(e *echo.Echo, s *handler.ShowingHandler) {
	g := e.Group("/funciones")
	g.POST("", s.Create)
	g.GET("/salas-disponibles", s.AvailableRooms)
	g.GET("/pelicula/:movieId", s.ListByMovie)
	g.GET("/sucursal/:branchId", s.ListByBranch)
	g.GET("/salas/sucursal/:branchId", s.ListRooms)
	g.GET("/:id", s.GetByID)
}

// RegisterRooms registers the /salas routes.
func RegisterRooms(e *echo.Echo, r *handler.RoomHandler) {
	g := e.Group("/salas")
	g.POST("", r.Create)
	g.GET("", r.List)
}
