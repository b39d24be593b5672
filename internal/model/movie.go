package model

import "time"

// Movie represents a film on the billboard.  Genres and Formats are only
// populated by queries that aggregate the related nodes; creation returns
// the bare node attributes.
//
// Fields:
//  ID        – opaque unique identifier generated at creation time.
//  Title     – movie title.
//  Year      – release year (1900–2100).
//  Duration  – running time in minutes (>= 1).
//  Rating    – audience rating from 0 to 10.
//  Cast      – ordered list of actor names.
//  CreatedAt – creation timestamp, used for newest-first listings.
type Movie struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Year      int64     `json:"year"`
	Duration  int64     `json:"duration"`
	Rating    int64     `json:"rating"`
	Synopsis  string    `json:"synopsis"`
	Director  string    `json:"director"`
	Cast      []string  `json:"cast"`
	PosterURL string    `json:"posterUrl"`
	CreatedAt time.Time `json:"createdAt"`
	Genres    []string  `json:"genres,omitempty"`
	Formats   []string  `json:"formats,omitempty"`
}
