package repository

import (
	"context"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/cinegraph/cartelera/internal/model"
)

// runResult is the slice of neo4j.ResultWithContext the repositories need.
// Keeping it local lets tests supply fakes without implementing the whole
// driver interface.
type runResult interface {
	Next(ctx context.Context) bool
	Record() *neo4j.Record
	Err() error
	Collect(ctx context.Context) ([]*neo4j.Record, error)
	Single(ctx context.Context) (*neo4j.Record, error)
	Consume(ctx context.Context) (neo4j.ResultSummary, error)
}

// cypherRunner executes a single Cypher statement inside the current
// transaction.  txRunner adapts a managed transaction to it; tests
// substitute a fake.
type cypherRunner interface {
	Run(ctx context.Context, cypher string, params map[string]any) (runResult, error)
}

// txRunner adapts a neo4j.ManagedTransaction to the cypherRunner seam.
type txRunner struct {
	tx neo4j.ManagedTransaction
}

func (t txRunner) Run(ctx context.Context, cypher string, params map[string]any) (runResult, error) {
	return t.tx.Run(ctx, cypher, params)
}

// movieFromNode maps a Movie node's properties onto the model struct.
func movieFromNode(n neo4j.Node) *model.Movie {
	return &model.Movie{
		ID:        stringProp(n, "id"),
		Title:     stringProp(n, "title"),
		Year:      intProp(n, "year"),
		Duration:  intProp(n, "duration"),
		Rating:    intProp(n, "rating"),
		Synopsis:  stringProp(n, "synopsis"),
		Director:  stringProp(n, "director"),
		Cast:      stringsProp(n, "cast"),
		PosterURL: stringProp(n, "posterUrl"),
		CreatedAt: timeProp(n, "createdAt"),
	}
}

// showingFromNode maps a Showing node's properties onto the model struct.
func showingFromNode(n neo4j.Node) *model.Showing {
	return &model.Showing{
		ID:        stringProp(n, "id"),
		Date:      stringProp(n, "date"),
		Time:      stringProp(n, "time"),
		Language:  stringProp(n, "language"),
		Format:    stringProp(n, "format"),
		BranchID:  intProp(n, "branchId"),
		CreatedAt: timeProp(n, "createdAt"),
	}
}

// roomFromNode maps a Room node's properties onto the model struct.
func roomFromNode(n neo4j.Node) *model.Room {
	return &model.Room{
		ID:   intProp(n, "id"),
		Name: stringProp(n, "name"),
	}
}

func stringProp(n neo4j.Node, key string) string {
	if v, ok := n.Props[key].(string); ok {
		return v
	}
	return ""
}

func intProp(n neo4j.Node, key string) int64 {
	switch v := n.Props[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}

func timeProp(n neo4j.Node, key string) time.Time {
	if v, ok := n.Props[key].(time.Time); ok {
		return v
	}
	return time.Time{}
}

func stringsProp(n neo4j.Node, key string) []string {
	return toStrings(n.Props[key])
}

// toStrings converts a list value returned by the driver ([]any) into a
// []string, keeping order and skipping non-string entries.
func toStrings(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// splitList splits a comma-separated string into trimmed, non-empty tokens,
// preserving order.  Used for cast, genre and format inputs.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// recordString reads a string column from a record by key.
func recordString(rec *neo4j.Record, key string) string {
	if v, ok := rec.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// recordInt reads an integer column from a record by key.
func recordInt(rec *neo4j.Record, key string) int64 {
	if v, ok := rec.Get(key); ok {
		switch vv := v.(type) {
		case int64:
			return vv
		case int:
			return int64(vv)
		}
	}
	return 0
}
