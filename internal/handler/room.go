package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinegraph/cartelera/internal/model"
	"github.com/cinegraph/cartelera/internal/repository"
)

// RoomStore is the slice of the room repository the handlers need.
type RoomStore interface {
	Create(ctx context.Context, id int64, name string) (*model.Room, error)
	List(ctx context.Context) ([]model.Room, error)
}

// RoomHandler exposes the /salas endpoints.
type RoomHandler struct {
	Rooms RoomStore
}

type createRoomRequest struct {
	ID   *int64 `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// Create handles POST /salas.
func (h *RoomHandler) Create(c echo.Context) error {
	var body createRoomRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"errors": validationMessages(err)})
	}

	room, err := h.Rooms.Create(c.Request().Context(), *body.ID, body.Name)
	if err != nil {
		if errors.Is(err, repository.ErrRoomExists) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "La sala ya existe"})
		}
		log.Printf("create room failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error al crear la sala"})
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Sala creada exitosamente",
		"data":    room,
	})
}

// List handles GET /salas.
func (h *RoomHandler) List(c echo.Context) error {
	rooms, err := h.Rooms.List(c.Request().Context())
	if err != nil {
		log.Printf("list rooms failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error al obtener salas"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Salas obtenidas exitosamente",
		"data":    rooms,
	})
}
