package repository

import "time"

// Post represents a post row: the server-authoritative document the editor
// loads from and saves back to.
type Post struct {
	ID        string
	Title     string
	Content   string
	Status    string
	Type      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReusableBlock represents a reusable block row. Content holds one
// serialized block.
type ReusableBlock struct {
	ID        string
	Title     string
	Content   string
	UpdatedAt time.Time
}
