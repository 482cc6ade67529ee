package models

import (
	"time"

	"github.com/google/uuid"
)

// Goal frequencies
const (
	FrequencyDaily   = "DAILY"
	FrequencyWeekly  = "WEEKLY"
	FrequencyMonthly = "MONTHLY"
)

func ValidFrequency(f string) bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

type Goal struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Timezone    string    `json:"timezone"`
	StartAt     time.Time `json:"start_at"`
	Frequency   string    `json:"frequency"`
	IsPublic    bool      `json:"is_public"`
	NextDueAt   time.Time `json:"next_due_at"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Creator *User  `json:"creator,omitempty"`
	Squad   []User `json:"squad,omitempty"`
	Tags    []Tag  `json:"tags,omitempty"`
}
