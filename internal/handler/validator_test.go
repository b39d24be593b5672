package handler

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListUnmarshal(t *testing.T) {
	var s StringList
	require.NoError(t, json.Unmarshal([]byte(`"18:00"`), &s))
	assert.Equal(t, StringList{"18:00"}, s)

	require.NoError(t, json.Unmarshal([]byte(`["18:00","21:00"]`), &s))
	assert.Equal(t, StringList{"18:00", "21:00"}, s)

	assert.Error(t, json.Unmarshal([]byte(`42`), &s))
}

func TestValidationMessagesUsesJSONNames(t *testing.T) {
	v := NewValidator()
	err := v.Validate(&createShowingRequest{
		MovieID:  "movie-1",
		Date:     "2026-09-10",
		Times:    StringList{"18:00"},
		Format:   "IMAX",
		Language: "Inglés",
	})
	require.Error(t, err)

	msgs := validationMessages(err)
	assert.Equal(t, "is required", msgs["branchId"])
	assert.Equal(t, "is required", msgs["roomId"])
	assert.NotContains(t, msgs, "movieId")
}

func TestValidationMessagesPatterns(t *testing.T) {
	v := NewValidator()
	err := v.Validate(&createShowingRequest{
		MovieID:  "movie-1",
		BranchID: ptr(int64(7)),
		RoomID:   ptr(int64(3)),
		Date:     "2026-9-1",
		Times:    StringList{"6pm"},
		Format:   "2D",
		Language: "Español",
	})
	require.Error(t, err)

	msgs := validationMessages(err)
	assert.Equal(t, "must match format YYYY-MM-DD", msgs["date"])
	// The dive violation reports the offending index.
	found := false
	for field, msg := range msgs {
		if field != "date" {
			assert.Equal(t, "must match format HH:MM", msg)
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidationMessagesNonValidatorError(t *testing.T) {
	msgs := validationMessages(errors.New("boom"))
	assert.Equal(t, map[string]string{"body": "invalid request body"}, msgs)
}

func ptr[T any](v T) *T { return &v }
