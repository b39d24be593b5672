package model

// Room is a physical screening room.  Rooms are global across branches;
// the graph does not scope them to a cinema location.
type Room struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
