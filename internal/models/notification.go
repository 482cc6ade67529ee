package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification types
const (
	NotificationTypeInvite   = "INVITE"
	NotificationTypeReminder = "REMINDER"
	NotificationTypeSystem   = "SYSTEM"
)

type Notification struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Type      string     `json:"notification_type"`
	SenderID  *uuid.UUID `json:"sender_id,omitempty"`
	GoalID    *uuid.UUID `json:"goal_id,omitempty"`
	Read      bool       `json:"read"`
	CreatedAt time.Time  `json:"created_at"`

	Sender *User `json:"sender,omitempty"`
	Goal   *Goal `json:"goal,omitempty"`
}
