package models

import "time"

// Hobby is a named activity owned by exactly one user. Description and
// category are optional and stay nil (SQL NULL) when never provided.
type Hobby struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HobbyWithStats augments a hobby with aggregates recomputed from live
// session rows on every read. They are never stored.
type HobbyWithStats struct {
	Hobby
	TotalTimeSpent int `json:"total_time_spent"`
	SessionCount   int `json:"session_count"`
}
