package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shafina/squadgoals/internal/models"
)

type NotificationResponse struct {
	ID        uuid.UUID  `json:"id"`
	Type      string     `json:"notification_type"`
	SenderID  *uuid.UUID `json:"sender_id,omitempty"`
	GoalID    *uuid.UUID `json:"goal_id,omitempty"`
	Read      bool       `json:"read"`
	CreatedAt time.Time  `json:"created_at"`
}

func NotificationResponseFrom(n *models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		SenderID:  n.SenderID,
		GoalID:    n.GoalID,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
