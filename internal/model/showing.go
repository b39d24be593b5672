package model

import "time"

// Showing represents one scheduled screening of a movie in a specific room
// at a specific date and time.  The movie and room annotations are filled
// only by queries that traverse the IN_FUNCTION / IN_ROOM relationships.
// BranchID references a cinema location that lives outside the graph.
type Showing struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Time      string    `json:"time"` // HH:MM
	Language  string    `json:"language"`
	Format    string    `json:"format"`
	BranchID  int64     `json:"branchId"`
	CreatedAt time.Time `json:"createdAt"`

	MovieID    string `json:"movieId,omitempty"`
	MovieTitle string `json:"movieTitle,omitempty"`
	RoomID     int64  `json:"roomId,omitempty"`
	RoomName   string `json:"roomName,omitempty"`
}
