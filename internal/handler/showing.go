package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cinegraph/cartelera/internal/model"
	"github.com/cinegraph/cartelera/internal/repository"
)

// ShowingStore is the slice of the showing repository the handlers need.
type ShowingStore interface {
	Create(ctx context.Context, p repository.CreateShowingParams) ([]model.Showing, error)
	ListByMovie(ctx context.Context, movieID string) ([]model.Showing, error)
	ListByBranch(ctx context.Context, branchID int64) ([]model.Showing, error)
	GetByID(ctx context.Context, id string) (*model.Showing, error)
	AvailableRooms(ctx context.Context, branchID int64, date, timeSlot string) ([]model.Room, error)
	ListRooms(ctx context.Context, branchID int64) ([]model.Room, error)
}

// ShowingHandler exposes the /funciones endpoints.
type ShowingHandler struct {
	Showings ShowingStore
}

// StringList accepts either a single JSON string or an array of strings.
// The original API lets clients send "times" both ways.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*s = StringList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = StringList(many)
	return nil
}

type createShowingRequest struct {
	MovieID  string     `json:"movieId" validate:"required"`
	BranchID *int64     `json:"branchId" validate:"required"`
	RoomID   *int64     `json:"roomId" validate:"required"`
	Date     string     `json:"date" validate:"required,datetime=2006-01-02"`
	Times    StringList `json:"times" validate:"required,min=1,dive,required,datetime=15:04"`
	Format   string     `json:"format" validate:"required,oneof=2D 3D IMAX"`
	Language string     `json:"language" validate:"required,oneof=Español Subtitulado Inglés"`
}

// Create handles POST /funciones.  One request may schedule several slots;
// the repository creates them atomically.  All shape checks run before any
// database access.
func (h *ShowingHandler) Create(c echo.Context) error {
	var body createShowingRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"errors": validationMessages(err)})
	}

	showings, err := h.Showings.Create(c.Request().Context(), repository.CreateShowingParams{
		MovieID:  body.MovieID,
		BranchID: *body.BranchID,
		RoomID:   *body.RoomID,
		Date:     body.Date,
		Times:    body.Times,
		Format:   body.Format,
		Language: body.Language,
	})
	if err != nil {
		return h.createError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Funciones creadas exitosamente",
		"data":    showings,
	})
}

// createError maps repository failures from showing creation onto status
// codes: missing movie/room → 404, unavailable format → 400, occupied slot
// → 409, anything else → 500.
func (h *ShowingHandler) createError(c echo.Context, err error) error {
	var conflict *repository.ScheduleConflictError
	switch {
	case errors.Is(err, repository.ErrMovieNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Película no encontrada"})
	case errors.Is(err, repository.ErrFormatUnavailable):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Formato no disponible para esta película"})
	case errors.Is(err, repository.ErrRoomNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Sala no encontrada"})
	case errors.As(err, &conflict):
		return c.JSON(http.StatusConflict, map[string]string{
			"error": fmt.Sprintf("Ya existe una función en la sala %d el %s a las %s",
				conflict.RoomID, conflict.Date, conflict.Time),
		})
	}
	log.Printf("create showing failed: %v", err)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error al crear la función"})
}

// GetByID handles GET /funciones/:id.
func (h *ShowingHandler) GetByID(c echo.Context) error {
	showing, err := h.Showings.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrShowingNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Función no encontrada"})
		}
		log.Printf("get showing failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error al obtener la función"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Función obtenida exitosamente",
		"data":    showing,
	})
}

// ListByMovie handles GET /funciones/pelicula/:movieId.
func (h *ShowingHandler) ListByMovie(c echo.Context) error {
	showings, err := h.Showings.ListByMovie(c.Request().Context(), c.Param("movieId"))
	if err != nil {
		log.Printf("list showings by movie failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error al listar funciones"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Funciones obtenidas exitosamente",
		"data":    showings,
	})
}

// ListByBranch handles GET /funciones/sucursal/:branchId.
func (h *ShowingHandler) ListByBranch(c echo.Context) error {
	branchID, err := strconv.ParseInt(c.Param("branchId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid branchId"})
	}
	showings, err := h.Showings.ListByBranch(c.Request().Context(), branchID)
	if err != nil {
		log.Printf("list showings by branch failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error al listar funciones"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Funciones obtenidas exitosamente",
		"data":    showings,
	})
}

type availableRoomsQuery struct {
	BranchID *int64 `query:"branchId" json:"branchId" validate:"required"`
	Date     string `query:"date" json:"date" validate:"required,datetime=2006-01-02"`
	Time     string `query:"time" json:"time" validate:"required,datetime=15:04"`
}

// AvailableRooms handles GET /funciones/salas-disponibles.  It lists the
// rooms free at the exact (branch, date, time) slot.
func (h *ShowingHandler) AvailableRooms(c echo.Context) error {
	var q availableRoomsQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid query parameters"})
	}
	if err := c.Validate(&q); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"errors": validationMessages(err)})
	}

	rooms, err := h.Showings.AvailableRooms(c.Request().Context(), *q.BranchID, q.Date, q.Time)
	if err != nil {
		log.Printf("available rooms failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error al obtener salas disponibles"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Salas disponibles obtenidas exitosamente",
		"data":    rooms,
	})
}

// ListRooms handles GET /funciones/salas/sucursal/:branchId.  The room pool
// is global, so the branch id only validates the path shape.
func (h *ShowingHandler) ListRooms(c echo.Context) error {
	branchID, err := strconv.ParseInt(c.Param("branchId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid branchId"})
	}
	rooms, err := h.Showings.ListRooms(c.Request().Context(), branchID)
	if err != nil {
		log.Printf("list rooms failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error al obtener salas"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Salas obtenidas exitosamente",
		"data":    rooms,
	})
}
