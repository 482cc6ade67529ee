package models

import (
	"time"

	"github.com/google/uuid"
)

// Invitation statuses. ACCEPTED and DECLINED are terminal: once an invitation
// leaves PENDING its status never changes again.
const (
	InvitationStatusPending  = "PENDING"
	InvitationStatusAccepted = "ACCEPTED"
	InvitationStatusDeclined = "DECLINED"
)

func ValidInvitationStatus(s string) bool {
	switch s {
	case InvitationStatusPending, InvitationStatusAccepted, InvitationStatusDeclined:
		return true
	}
	return false
}

type Invitation struct {
	ID            uuid.UUID `json:"id"`
	GoalID        uuid.UUID `json:"goal_id"`
	InvitedUserID uuid.UUID `json:"invited_user_id"`
	InviterID     uuid.UUID `json:"inviter_id"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Goal    *Goal `json:"goal,omitempty"`
	Inviter *User `json:"inviter,omitempty"`
}
