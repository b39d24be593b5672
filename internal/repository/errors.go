// Package repository contains the Cypher data access layer.  This file
// defines the error values shared across repositories.  Handlers use these
// sentinels to translate domain failures into HTTP status codes; any other
// error bubbling out of a repository is treated as an internal failure.
package repository

import (
	"errors"
	"fmt"
)

// ErrMovieNotFound indicates that no Movie node has the requested id.
var ErrMovieNotFound = errors.New("movie not found")

// ErrFormatUnavailable indicates that the movie has no AVAILABLE_IN edge to
// the requested format.
var ErrFormatUnavailable = errors.New("format not available for this movie")

// ErrRoomNotFound indicates that no Room node has the requested id.
var ErrRoomNotFound = errors.New("room not found")

// ErrShowingNotFound indicates that no Showing node has the requested id.
var ErrShowingNotFound = errors.New("showing not found")

// ErrRoomExists indicates that a room with the requested id already exists.
var ErrRoomExists = errors.New("room already exists")

// ScheduleConflictError reports that a room is already booked at the exact
// date and time of a requested slot.  Handlers translate it into HTTP 409.
type ScheduleConflictError struct {
	RoomID int64
	Date   string
	Time   string
}

func (e *ScheduleConflictError) Error() string {
	return fmt.Sprintf("room %d is already booked on %s at %s", e.RoomID, e.Date, e.Time)
}
