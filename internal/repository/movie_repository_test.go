package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func movieInput() MovieInput {
	return MovieInput{
		Title:     "La Dolce Vita",
		Year:      1960,
		Duration:  174,
		Rating:    9,
		Synopsis:  "Un periodista recorre Roma",
		Director:  "Federico Fellini",
		Cast:      "Marcello Mastroianni, Anita Ekberg , Anouk Aimée",
		Genres:    "Drama, Comedy",
		Formats:   "2D,IMAX",
		PosterURL: "https://example.com/dolcevita.jpg",
	}
}

// echoMovie answers the CREATE statement with a node carrying the submitted
// properties, the way the real graph would.
func echoMovie(query string, params map[string]any) ([]*neo4j.Record, error) {
	if strings.Contains(query, "CREATE (m:Movie") {
		return []*neo4j.Record{nodeRecord("m", map[string]any{
			"id":        params["id"],
			"title":     params["title"],
			"year":      params["year"],
			"duration":  params["duration"],
			"rating":    params["rating"],
			"synopsis":  params["synopsis"],
			"director":  params["director"],
			"cast":      params["cast"],
			"posterUrl": params["posterUrl"],
			"createdAt": params["createdAt"],
		})}, nil
	}
	return nil, nil
}

func TestCreateMovieStoresParsedAttributes(t *testing.T) {
	runner := &fakeRunner{respond: echoMovie}
	repo := &MovieRepo{}

	movie, err := repo.create(context.Background(), runner, movieInput())
	require.NoError(t, err)

	assert.NotEmpty(t, movie.ID)
	assert.Equal(t, int64(1960), movie.Year)
	assert.Equal(t, int64(174), movie.Duration)
	assert.Equal(t, int64(9), movie.Rating)
	assert.WithinDuration(t, time.Now().UTC(), movie.CreatedAt, 5*time.Second)
	// Cast is normalized into a trimmed, ordered list.
	assert.Equal(t, []string{"Marcello Mastroianni", "Anita Ekberg", "Anouk Aimée"}, movie.Cast)
	// Creation returns bare node attributes, no aggregated lists.
	assert.Nil(t, movie.Genres)
	assert.Nil(t, movie.Formats)
}

func TestCreateMovieMergesGenresAndFormats(t *testing.T) {
	runner := &fakeRunner{respond: echoMovie}
	repo := &MovieRepo{}

	movie, err := repo.create(context.Background(), runner, movieInput())
	require.NoError(t, err)

	queries := runner.queries()
	require.Len(t, queries, 5) // 1 create + 2 genres + 2 formats

	var genreNames, formatTypes []string
	for i, q := range queries {
		switch {
		case strings.Contains(q, "MERGE (g:Genre {name: $name})"):
			assert.Contains(t, q, "MERGE (m)-[:HAS_GENRE]->(g)")
			assert.Equal(t, movie.ID, runner.calls[i].params["id"])
			genreNames = append(genreNames, runner.calls[i].params["name"].(string))
		case strings.Contains(q, "MERGE (f:Format {type: $type})"):
			assert.Contains(t, q, "MERGE (m)-[:AVAILABLE_IN]->(f)")
			formatTypes = append(formatTypes, runner.calls[i].params["type"].(string))
		}
	}
	assert.Equal(t, []string{"Drama", "Comedy"}, genreNames)
	assert.Equal(t, []string{"2D", "IMAX"}, formatTypes)
}

func TestGetMovieByIDNotFound(t *testing.T) {
	runner := &fakeRunner{}
	repo := &MovieRepo{}

	_, err := repo.getByID(context.Background(), runner, "missing")
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestGetMovieByIDAggregates(t *testing.T) {
	runner := &fakeRunner{respond: func(string, map[string]any) ([]*neo4j.Record, error) {
		return []*neo4j.Record{record(
			[]string{"m", "genres", "formats"},
			[]any{
				neo4j.Node{Props: map[string]any{
					"id": "movie-1", "title": "La Dolce Vita",
					"year": int64(1960), "duration": int64(174), "rating": int64(9),
					"cast": []any{"Marcello Mastroianni"},
				}},
				[]any{"Comedy", "Drama"},
				[]any{"2D", "IMAX"},
			},
		)}, nil
	}}
	repo := &MovieRepo{}

	movie, err := repo.getByID(context.Background(), runner, "movie-1")
	require.NoError(t, err)
	// Genre order is whatever the graph returns; the set is what matters.
	assert.ElementsMatch(t, []string{"Drama", "Comedy"}, movie.Genres)
	assert.ElementsMatch(t, []string{"2D", "IMAX"}, movie.Formats)
	assert.Equal(t, []string{"Marcello Mastroianni"}, movie.Cast)
}

func TestListMoviesNewestFirstQuery(t *testing.T) {
	runner := &fakeRunner{respond: func(string, map[string]any) ([]*neo4j.Record, error) {
		return []*neo4j.Record{
			record([]string{"m", "genres"}, []any{
				neo4j.Node{Props: map[string]any{"id": "b", "title": "Newer"}},
				[]any{"Drama"},
			}),
			record([]string{"m", "genres"}, []any{
				neo4j.Node{Props: map[string]any{"id": "a", "title": "Older"}},
				[]any{},
			}),
		}, nil
	}}
	repo := &MovieRepo{}

	movies, err := repo.list(context.Background(), runner)
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, "Newer", movies[0].Title)
	assert.Equal(t, []string{"Drama"}, movies[0].Genres)
	assert.Contains(t, runner.queries()[0], "ORDER BY m.createdAt DESC")
}

func TestCollectNames(t *testing.T) {
	runner := &fakeRunner{respond: func(string, map[string]any) ([]*neo4j.Record, error) {
		return []*neo4j.Record{
			record([]string{"name"}, []any{"Action"}),
			record([]string{"name"}, []any{"Drama"}),
		}, nil
	}}

	names, err := collectNames(context.Background(), runner, `MATCH (g:Genre) RETURN g.name AS name ORDER BY g.name`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Action", "Drama"}, names)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Drama", "Comedy"}, splitList("Drama, Comedy"))
	assert.Equal(t, []string{"2D"}, splitList(" 2D "))
	assert.Empty(t, splitList(" , ,"))
}

func TestRoomCreateExisting(t *testing.T) {
	runner := &fakeRunner{respond: func(query string, params map[string]any) ([]*neo4j.Record, error) {
		if strings.Contains(query, "RETURN r.id") {
			return []*neo4j.Record{record([]string{"r.id"}, []any{int64(3)})}, nil
		}
		return nil, nil
	}}
	repo := &RoomRepo{}

	_, err := repo.create(context.Background(), runner, 3, "Sala 3")
	assert.ErrorIs(t, err, ErrRoomExists)
	require.Len(t, runner.calls, 1)
}

func TestRoomCreate(t *testing.T) {
	runner := &fakeRunner{respond: func(query string, params map[string]any) ([]*neo4j.Record, error) {
		if strings.Contains(query, "CREATE (r:Room") {
			return []*neo4j.Record{nodeRecord("r", map[string]any{
				"id": params["id"], "name": params["name"],
			})}, nil
		}
		return nil, nil
	}}
	repo := &RoomRepo{}

	room, err := repo.create(context.Background(), runner, 3, "Sala 3")
	require.NoError(t, err)
	assert.Equal(t, int64(3), room.ID)
	assert.Equal(t, "Sala 3", room.Name)
}
