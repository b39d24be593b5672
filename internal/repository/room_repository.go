package repository

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/cinegraph/cartelera/internal/model"
)

// RoomRepo manages persistence for rooms.  Rooms carry caller-chosen
// integer ids; there is no generated identifier.
type RoomRepo struct {
	driver neo4j.DriverWithContext
}

// NewRoomRepo constructs a RoomRepo with the given driver handle.
func NewRoomRepo(driver neo4j.DriverWithContext) *RoomRepo {
	return &RoomRepo{driver: driver}
}

const createRoomQuery = `CREATE (r:Room {id: $id, name: $name}) RETURN r`

// Create inserts a new room.  It returns ErrRoomExists when the id is
// already taken; the existence check and insert share one transaction.
func (r *RoomRepo) Create(ctx context.Context, id int64, name string) (*model.Room, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	return neo4j.ExecuteWrite(ctx, session, func(tx neo4j.ManagedTransaction) (*model.Room, error) {
		return r.create(ctx, txRunner{tx}, id, name)
	})
}

func (r *RoomRepo) create(ctx context.Context, tx cypherRunner, id int64, name string) (*model.Room, error) {
	taken, err := exists(ctx, tx, roomExistsQuery, map[string]any{"roomId": id})
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrRoomExists
	}

	res, err := tx.Run(ctx, createRoomQuery, map[string]any{"id": id, "name": name})
	if err != nil {
		return nil, err
	}
	rec, err := res.Single(ctx)
	if err != nil {
		return nil, err
	}
	node, _ := rec.Get("r")
	return roomFromNode(node.(neo4j.Node)), nil
}

const listRoomsQuery = `MATCH (r:Room) RETURN r ORDER BY r.name`

// List returns every room, alphabetical by name.
func (r *RoomRepo) List(ctx context.Context) ([]model.Room, error) {
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
