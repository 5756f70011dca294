package internal

import "time"

type User struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name"`
}

type JournalEntry struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Date   string `json:"date"` // YYYY-MM-DD, a UTC calendar day
	Text   string `json:"text"`
	Tag    string `json:"tag,omitempty"`
	// CreatedAt is optional; the zero value means the time of day is
	// unknown and charting falls back to noon.
	CreatedAt time.Time `json:"created_at,omitempty"`
}

type Todo struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
