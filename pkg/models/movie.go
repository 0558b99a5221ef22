package models

// Movie is one row of the immutable catalog. IDs are externally assigned
// (they come from the metadata provider) and stable across reloads.
type Movie struct {
	ID     int      `json:"id"`
	Title  string   `json:"title"`
	Genres []string `json:"genres"`
}
