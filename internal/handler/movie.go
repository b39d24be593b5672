package handler // handler package contains the HTTP handlers for the billboard API

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinegraph/cartelera/internal/model"
	"github.com/cinegraph/cartelera/internal/repository"
)

// MovieStore is the slice of the movie repository the handlers need.
type MovieStore interface {
	Create(ctx context.Context, in repository.MovieInput) (*model.Movie, error)
	List(ctx context.Context) ([]model.Movie, error)
	GetByID(ctx context.Context, id string) (*model.Movie, error)
	ListGenres(ctx context.Context) ([]string, error)
	ListFormats(ctx context.Context) ([]string, error)
}

// MovieHandler exposes the /peliculas endpoints.
type MovieHandler struct {
	Movies MovieStore
}

type createMovieRequest struct {
	Title     string `json:"title" validate:"required"`
	Year      *int64 `json:"year" validate:"required,gte=1900,lte=2100"`
	Duration  *int64 `json:"duration" validate:"required,gte=1"`
	Rating    *int64 `json:"rating" validate:"required,gte=0,lte=10"`
	Synopsis  string `json:"synopsis" validate:"required"`
	Director  string `json:"director" validate:"required"`
	Cast      string `json:"cast" validate:"required"`
	Genres    string `json:"genres" validate:"required"`
	Formats   string `json:"formats" validate:"required"`
	PosterURL string `json:"posterUrl" validate:"omitempty,url"`
}

// Create handles POST /peliculas and stores a new movie with its genre and
// format edges.
func (h *MovieHandler) Create(c echo.Context) error {
	var body createMovieRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"errors": validationMessages(err)})
	}

	movie, err := h.Movies.Create(c.Request().Context(), repository.MovieInput{
		Title:     body.Title,
		Year:      *body.Year,
		Duration:  *body.Duration,
		Rating:    *body.Rating,
		Synopsis:  body.Synopsis,
		Director:  body.Director,
		Cast:      body.Cast,
		Genres:    body.Genres,
		Formats:   body.Formats,
		PosterURL: body.PosterURL,
	})
	if err != nil {
		log.Printf("create movie failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error al crear la película"})
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Película creada exitosamente",
		"data":    movie,
	})
}

// List handles GET /peliculas, newest movies first.
func (h *MovieHandler) List(c echo.Context) error {
	movies, err := h.Movies.List(c.Request().Context())
	if err != nil {
		log.Printf("list movies failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error al listar películas"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Películas obtenidas exitosamente",
		"data":    movies,
	})
}

// GetByID handles GET /peliculas/:id.
func (h *MovieHandler) GetByID(c echo.Context) error {
	movie, err := h.Movies.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Película no encontrada"})
		}
		log.Printf("get movie failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error al obtener la película"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Película obtenida exitosamente",
		"data":    movie,
	})
}

// ListGenres handles GET /peliculas/generos/listado.
func (h *MovieHandler) ListGenres(c echo.Context) error {
	genres, err := h.Movies.ListGenres(c.Request().Context())
	if err != nil {
		log.Printf("list genres failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error al obtener géneros"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Géneros obtenidos exitosamente",
		"data":    genres,
	})
}

// ListFormats handles GET /peliculas/formatos/listado.
func (h *MovieHandler) ListFormats(c echo.Context) error {
	formats, err := h.Movies.ListFormats(c.Request().Context())
	if err != nil {
		log.Printf("list formats failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error al obtener formatos"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Formatos obtenidos exitosamente",
		"data":    formats,
	})
}
