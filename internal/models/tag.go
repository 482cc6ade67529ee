package models

import "github.com/google/uuid"

// Tag names are unique and case-sensitive as stored.
type Tag struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
