package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/cinegraph/cartelera/internal/model"
)

// CreateShowingParams carries the input for scheduling one or more showings
// of a movie on a single date.  Times holds the requested slots in request
// order; each slot produces its own Showing node.
type CreateShowingParams struct {
	MovieID  string
	BranchID int64
	RoomID   int64
	Date     string
	Times    []string
	Format   string
	Language string
}

// ShowingRepo manages persistence for showings and room availability.
type ShowingRepo struct {
	driver neo4j.DriverWithContext
}

// NewShowingRepo constructs a ShowingRepo with the given driver handle.
func NewShowingRepo(driver neo4j.DriverWithContext) *ShowingRepo {
	return &ShowingRepo{driver: driver}
}

// Create schedules showings inside a single write transaction.  Checks run
// in a fixed order: movie exists, movie is available in the requested
// format, room exists, then per slot a conflict check on (room, date, time)
// followed by the insert.  Any failure aborts the transaction, so a conflict
// on a later slot rolls back showings already staged for earlier slots.
func (r *ShowingRepo) Create(ctx context.Context, p CreateShowingParams) ([]model.Showing, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	return neo4j.ExecuteWrite(ctx, session, func(tx neo4j.ManagedTransaction) ([]model.Showing, error) {
		return r.create(ctx, txRunner{tx}, p)
	})
}

const movieExistsQuery = `MATCH (m:Movie {id: $movieId}) RETURN m.id`

const formatAvailableQuery = `
MATCH (m:Movie {id: $movieId})-[:AVAILABLE_IN]->(f:Format {type: $format})
RETURN f.type`

const roomExistsQuery = `MATCH (r:Room {id: $roomId}) RETURN r.id`

const slotTakenQuery = `
MATCH (s:Showing {date: $date, time: $time})-[:IN_ROOM]->(r:Room {id: $roomId})
RETURN s.id`

const createShowingQuery = `
MATCH (m:Movie {id: $movieId})
MATCH (r:Room {id: $roomId})
CREATE (s:Showing {
  id: $id,
  date: $date,
  time: $time,
  language: $language,
  format: $format,
  branchId: $branchId,
  createdAt: $createdAt
})
CREATE (m)-[:IN_FUNCTION]->(s)
CREATE (s)-[:IN_ROOM]->(r)
RETURN s`

func (r *ShowingRepo) create(ctx context.Context, tx cypherRunner, p CreateShowingParams) ([]model.Showing, error) {
	ok, err := exists(ctx, tx, movieExistsQuery, map[string]any{"movieId": p.MovieID})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrMovieNotFound
	}

	ok, err = exists(ctx, tx, formatAvailableQuery, map[string]any{"movieId": p.MovieID, "format": p.Format})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrFormatUnavailable
	}

	ok, err = exists(ctx, tx, roomExistsQuery, map[string]any{"roomId": p.RoomID})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrRoomNotFound
	}

	created := make([]model.Showing, 0, len(p.Times))
	for _, slot := range p.Times {
		taken, err := exists(ctx, tx, slotTakenQuery, map[string]any{
			"date": p.Date, "time": slot, "roomId": p.RoomID,
		})
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, &ScheduleConflictError{RoomID: p.RoomID, Date: p.Date, Time: slot}
		}

		res, err := tx.Run(ctx, createShowingQuery, map[string]any{
			"movieId":   p.MovieID,
			"roomId":    p.RoomID,
			"id":        uuid.NewString(),
			"date":      p.Date,
			"time":      slot,
			"language":  p.Language,
			"format":    p.Format,
			"branchId":  p.BranchID,
			"createdAt": time.Now().UTC(),
		})
		if err != nil {
			return nil, err
		}
		rec, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		node, _ := rec.Get("s")
		created = append(created, *showingFromNode(node.(neo4j.Node)))
	}
	return created, nil
}

// ListByMovie returns all showings of a movie annotated with room id and
// name, ordered by date then time ascending.
func (r *ShowingRepo) ListByMovie(ctx context.Context, movieID string) ([]model.Showing, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	return neo4j.ExecuteRead(ctx, session, func(tx neo4j.ManagedTransaction) ([]model.Showing, error) {
		return r.listByMovie(ctx, txRunner{tx}, movieID)
	})
}

const listByMovieQuery = `
MATCH (m:Movie {id: $movieId})-[:IN_FUNCTION]->(s:Showing)-[:IN_ROOM]->(r:Room)
RETURN s, r.id AS roomId, r.name AS roomName
ORDER BY s.date, s.time`

func (r *ShowingRepo) listByMovie(ctx context.Context, tx cypherRunner, movieID string) ([]model.Showing, error) {
	res, err := tx.Run(ctx, listByMovieQuery, map[string]any{"movieId": movieID})
	if err != nil {
		return nil, err
	}
	return collectShowings(ctx, res)
}

// ListByBranch returns all showings whose branch id matches, annotated with
// the parent movie and room, ordered by date then time ascending.
func (r *ShowingRepo) ListByBranch(ctx context.Context, branchID int64) ([]model.Showing, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	return neo4j.ExecuteRead(ctx, session, func(tx neo4j.ManagedTransaction) ([]model.Showing, error) {
		return r.listByBranch(ctx, txRunner{tx}, branchID)
	})
}

const listByBranchQuery = `
MATCH (s:Showing {branchId: $branchId})-[:IN_ROOM]->(r:Room)
MATCH (m:Movie)-[:IN_FUNCTION]->(s)
RETURN s, m.id AS movieId, m.title AS movieTitle, r.id AS roomId, r.name AS roomName
ORDER BY s.date, s.time`

func (r *ShowingRepo) listByBranch(ctx context.Context, tx cypherRunner, branchID int64) ([]model.Showing, error) {
	res, err := tx.Run(ctx, listByBranchQuery, map[string]any{"branchId": branchID})
	if err != nil {
		return nil, err
	}
	return collectShowings(ctx, res)
}

// GetByID returns a single showing annotated with its movie and room, or
// ErrShowingNotFound.
func (r *ShowingRepo) GetByID(ctx context.Context, id string) (*model.Showing, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	return neo4j.ExecuteRead(ctx, session, func(tx neo4j.ManagedTransaction) (*model.Showing, error) {
		return r.getByID(ctx, txRunner{tx}, id)
	})
}

const getShowingQuery = `
MATCH (m:Movie)-[:IN_FUNCTION]->(s:Showing {id: $id})-[:IN_ROOM]->(r:Room)
RETURN s, m.id AS movieId, m.title AS movieTitle, r.id AS roomId, r.name AS roomName`

func (r *ShowingRepo) getByID(ctx context.Context, tx cypherRunner, id string) (*model.Showing, error) {
	res, err := tx.Run(ctx, getShowingQuery, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	records, err := res.Collect(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrShowingNotFound
	}
	s := annotatedShowing(records[0])
	return &s, nil
}

// AvailableRooms returns the rooms with no showing at the exact (branch,
// date, time) slot, alphabetical by name.  The room pool is global: the
// branch id only narrows which showings count as occupying a room, it never
// scopes rooms to a branch.
func (r *ShowingRepo) AvailableRooms(ctx context.Context, branchID int64, date, timeSlot string) ([]model.Room, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	return neo4j.ExecuteRead(ctx, session, func(tx neo4j.ManagedTransaction) ([]model.Room, error) {
		return r.availableRooms(ctx, txRunner{tx}, branchID, date, timeSlot)
	})
}

const availableRoomsQuery = `
MATCH (r:Room)
WHERE NOT EXISTS {
  MATCH (s:Showing {branchId: $branchId, date: $date, time: $time})-[:IN_ROOM]->(r)
}
RETURN r
ORDER BY r.name`

func (r *ShowingRepo) availableRooms(ctx context.Context, tx cypherRunner, branchID int64, date, timeSlot string) ([]model.Room, error) {
	res, err := tx.Run(ctx, availableRoomsQuery, map[string]any{
		"branchId": branchID, "date": date, "time": timeSlot,
	})
	if err != nil {
		return nil, err
	}
	return collectRooms(ctx, res)
}

// ListRooms returns every room, alphabetical by name.  The branch id is
// accepted for route compatibility but rooms are global, so it is unused.
func (r *ShowingRepo) ListRooms(ctx context.Context, branchID int64) ([]model.Room, error) {
	_ = branchID

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	return neo4j.ExecuteRead(ctx, session, func(tx neo4j.ManagedTransaction) ([]model.Room, error) {
		res, err := txRunner{tx}.Run(ctx, listRoomsQuery, nil)
		if err != nil {
			return nil, err
		}
		return collectRooms(ctx, res)
	})
}

// exists runs a match query and reports whether it produced any record.
func exists(ctx context.Context, tx cypherRunner, query string, params map[string]any) (bool, error) {
	res, err := tx.Run(ctx, query, params)
	if err != nil {
		return false, err
	}
	records, err := res.Collect(ctx)
	if err != nil {
		return false, err
	}
	return len(records) > 0, nil
}

func collectShowings(ctx context.Context, res runResult) ([]model.Showing, error) {
	var showings []model.Showing
	for res.Next(ctx) {
		showings = append(showings, annotatedShowing(res.Record()))
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	return showings, nil
}

// annotatedShowing builds a showing from a record's "s" node plus whatever
// movie/room annotation columns the query returned.
func annotatedShowing(rec *neo4j.Record) model.Showing {
	node, _ := rec.Get("s")
	s := *showingFromNode(node.(neo4j.Node))
	s.MovieID = recordString(rec, "movieId")
	s.MovieTitle = recordString(rec, "movieTitle")
	s.RoomID = recordInt(rec, "roomId")
	s.RoomName = recordString(rec, "roomName")
	return s
}

func collectRooms(ctx context.Context, res runResult) ([]model.Room, error) {
	var rooms []model.Room
	for res.Next(ctx) {
		node, _ := res.Record().Get("r")
		rooms = append(rooms, *roomFromNode(node.(neo4j.Node)))
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	return rooms, nil
}
