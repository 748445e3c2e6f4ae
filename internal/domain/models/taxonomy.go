package models

import "time"

// Category is a per-owner custom category tag used to classify documents.
// Documents reference categories by name, not by ID, so deletion is guarded
// at the application layer rather than by a foreign key.
type Category struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	UserID    string    `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Client is a per-owner custom client tag, referenced by a document's
// company field. Same by-value reference semantics as Category.
type Client struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	UserID    string    `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
