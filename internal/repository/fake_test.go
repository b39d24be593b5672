package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// fakeResult serves a fixed set of records through the runResult seam.
type fakeResult struct {
	records []*neo4j.Record
	idx     int
	err     error
}

func (f *fakeResult) Next(ctx context.Context) bool {
	if f.err != nil || f.idx >= len(f.records) {
		return false
	}
	f.idx++
	return true
}

func (f *fakeResult) Record() *neo4j.Record {
	if f.idx == 0 || f.idx > len(f.records) {
		return nil
	}
	return f.records[f.idx-1]
}

func (f *fakeResult) Err() error { return f.err }

func (f *fakeResult) Collect(ctx context.Context) ([]*neo4j.Record, error) {
	return f.records, f.err
}

func (f *fakeResult) Single(ctx context.Context) (*neo4j.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.records) != 1 {
		return nil, errors.New("result does not contain exactly one record")
	}
	return f.records[0], nil
}

func (f *fakeResult) Consume(ctx context.Context) (neo4j.ResultSummary, error) {
	return nil, f.err
}

// runCall captures one executed statement for assertions.
type runCall struct {
	query  string
	params map[string]any
}

// fakeRunner scripts results per query.  respond inspects the statement and
// returns the records the graph would produce; every call is recorded.
type fakeRunner struct {
	calls   []runCall
	respond func(query string, params map[string]any) ([]*neo4j.Record, error)
}

func (f *fakeRunner) Run(ctx context.Context, query string, params map[string]any) (runResult, error) {
	f.calls = append(f.calls, runCall{query: query, params: params})
	if f.respond == nil {
		return &fakeResult{}, nil
	}
	records, err := f.respond(query, params)
	if err != nil {
		return nil, err
	}
	return &fakeResult{records: records}, nil
}

// queries returns the executed statements collapsed to single-spaced text,
// which makes substring assertions stable across formatting.
func (f *fakeRunner) queries() []string {
	out := make([]string, len(f.calls))
	for i, call := range f.calls {
		out[i] = strings.Join(strings.Fields(call.query), " ")
	}
	return out
}

func record(keys []string, values []any) *neo4j.Record {
	return &neo4j.Record{Keys: keys, Values: values}
}

func nodeRecord(key string, props map[string]any) *neo4j.Record {
	return record([]string{key}, []any{neo4j.Node{Props: props}})
}
