package models

import "time"

// Session is one logged occurrence of time spent on a hobby. Duration is in
// minutes, Date is the calendar day in YYYY-MM-DD form. Sessions are never
// edited or deleted individually; they only go away when their hobby does.
type Session struct {
	ID        int       `json:"id"`
	HobbyID   int       `json:"hobby_id"`
	Duration  int       `json:"duration"`
	Notes     *string   `json:"notes"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}
