package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/cinegraph/cartelera/internal/model"
)

// MovieInput carries the attributes for a new movie.  Cast, Genres and
// Formats arrive as comma-separated strings, exactly as the API receives
// them; the repository splits and trims the tokens.
type MovieInput struct {
	Title     string
	Year      int64
	Duration  int64
	Rating    int64
	Synopsis  string
	Director  string
	Cast      string
	Genres    string
	Formats   string
	PosterURL string
}

// MovieRepo manages persistence for movies and their genre/format edges.
type MovieRepo struct {
	driver neo4j.DriverWithContext
}

// NewMovieRepo constructs a MovieRepo with the given driver handle.
func NewMovieRepo(driver neo4j.DriverWithContext) *MovieRepo {
	return &MovieRepo{driver: driver}
}

// Create writes one Movie node with an application-generated id, then merges
// a Genre node per genre token and a Format node per format token, linking
// them with HAS_GENRE / AVAILABLE_IN.  MERGE keeps genre and format nodes
// deduplicated across movies.  Everything runs inside a single write
// transaction.  The returned movie carries only the node attributes, not
// the aggregated genre/format lists.
func (r *MovieRepo) Create(ctx context.Context, in MovieInput) (*model.Movie, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	return neo4j.ExecuteWrite(ctx, session, func(tx neo4j.ManagedTransaction) (*model.Movie, error) {
		return r.create(ctx, txRunner{tx}, in)
	})
}

const createMovieQuery = `
CREATE (m:Movie {
  id: $id,
  title: $title,
  year: $year,
  duration: $duration,
  rating: $rating,
  synopsis: $synopsis,
  director: $director,
  cast: $cast,
  posterUrl: $posterUrl,
  createdAt: $createdAt
})
RETURN m`

const mergeGenreQuery = `
MATCH (m:Movie {id: $id})
MERGE (g:Genre {name: $name})
MERGE (m)-[:HAS_GENRE]->(g)`

const mergeFormatQuery = `
MATCH (m:Movie {id: $id})
MERGE (f:Format {type: $type})
MERGE (m)-[:AVAILABLE_IN]->(f)`

func (r *MovieRepo) create(ctx context.Context, tx cypherRunner, in MovieInput) (*model.Movie, error) {
	res, err := tx.Run(ctx, createMovieQuery, map[string]any{
		"id":        uuid.NewString(),
		"title":     in.Title,
		"year":      in.Year,
		"duration":  in.Duration,
		"rating":    in.Rating,
		"synopsis":  in.Synopsis,
		"director":  in.Director,
		"cast":      splitList(in.Cast),
		"posterUrl": in.PosterURL,
		"createdAt": time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	rec, err := res.Single(ctx)
	if err != nil {
		return nil, err
	}
	node, _ := rec.Get("m")
	movie := movieFromNode(node.(neo4j.Node))

	for _, genre := range splitList(in.Genres) {
		if err := runAndConsume(ctx, tx, mergeGenreQuery, map[string]any{"id": movie.ID, "name": genre}); err != nil {
			return nil, err
		}
	}
	for _, format := range splitList(in.Formats) {
		if err := runAndConsume(ctx, tx, mergeFormatQuery, map[string]any{"id": movie.ID, "type": format}); err != nil {
			return nil, err
		}
	}
	return movie, nil
}

// List returns all movies with their genre names aggregated, newest first.
func (r *MovieRepo) List(ctx context.Context) ([]model.Movie, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	return neo4j.ExecuteRead(ctx, session, func(tx neo4j.ManagedTransaction) ([]model.Movie, error) {
		return r.list(ctx, txRunner{tx})
	})
}

const listMoviesQuery = `
MATCH (m:Movie)
OPTIONAL MATCH (m)-[:HAS_GENRE]->(g:Genre)
WITH m, collect(g.name) AS genres
RETURN m, genres
ORDER BY m.createdAt DESC`

func (r *MovieRepo) list(ctx context.Context, tx cypherRunner) ([]model.Movie, error) {
	res, err := tx.Run(ctx, listMoviesQuery, nil)
	if err != nil {
		return nil, err
	}
	var movies []model.Movie
	for res.Next(ctx) {
		rec := res.Record()
		node, _ := rec.Get("m")
		movie := movieFromNode(node.(neo4j.Node))
		if genres, ok := rec.Get("genres"); ok {
			movie.Genres = toStrings(genres)
		}
		movies = append(movies, *movie)
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	return movies, nil
}

// GetByID returns one movie with both genre and format names aggregated.
// It returns ErrMovieNotFound when no Movie node has the given id.
func (r *MovieRepo) GetByID(ctx context.Context, id string) (*model.Movie, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	return neo4j.ExecuteRead(ctx, session, func(tx neo4j.ManagedTransaction) (*model.Movie, error) {
		return r.getByID(ctx, txRunner{tx}, id)
	})
}

const getMovieQuery = `
MATCH (m:Movie {id: $id})
OPTIONAL MATCH (m)-[:HAS_GENRE]->(g:Genre)
OPTIONAL MATCH (m)-[:AVAILABLE_IN]->(f:Format)
WITH m, collect(DISTINCT g.name) AS genres, collect(DISTINCT f.type) AS formats
RETURN m, genres, formats`

func (r *MovieRepo) getByID(ctx context.Context, tx cypherRunner, id string) (*model.Movie, error) {
	res, err := tx.Run(ctx, getMovieQuery, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	records, err := res.Collect(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrMovieNotFound
	}
	rec := records[0]
	node, _ := rec.Get("m")
	movie := movieFromNode(node.(neo4j.Node))
	if genres, ok := rec.Get("genres"); ok {
		movie.Genres = toStrings(genres)
	}
	if formats, ok := rec.Get("formats"); ok {
		movie.Formats = toStrings(formats)
	}
	return movie, nil
}

// ListGenres returns the distinct genre names in the graph, alphabetical.
func (r *MovieRepo) ListGenres(ctx context.Context) ([]string, error) {
	return r.listNames(ctx, `MATCH (g:Genre) RETURN g.name AS name ORDER BY g.name`)
}

// ListFormats returns the distinct format types in the graph, alphabetical.
func (r *MovieRepo) ListFormats(ctx context.Context) ([]string, error) {
	return r.listNames(ctx, `MATCH (f:Format) RETURN f.type AS name ORDER BY f.type`)
}

func (r *MovieRepo) listNames(ctx context.Context, query string) ([]string, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	return neo4j.ExecuteRead(ctx, session, func(tx neo4j.ManagedTransaction) ([]string, error) {
		return collectNames(ctx, txRunner{tx}, query)
	})
}

func collectNames(ctx context.Context, tx cypherRunner, query string) ([]string, error) {
	res, err := tx.Run(ctx, query, nil)
	if err != nil {
		return nil, err
	}
	var names []string
	for res.Next(ctx) {
		names = append(names, recordString(res.Record(), "name"))
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// runAndConsume executes a statement whose result rows are irrelevant and
// drains it so the next statement in the transaction can run.
func runAndConsume(ctx context.Context, tx cypherRunner, query string, params map[string]any) error {
	res, err := tx.Run(ctx, query, params)
	if err != nil {
		return err
	}
	_, err = res.Consume(ctx)
	return err
}
