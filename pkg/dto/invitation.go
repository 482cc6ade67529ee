package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shafina/squadgoals/internal/models"
)

type InvitationResponse struct {
	ID        uuid.UUID     `json:"id"`
	Status    string        `json:"status"`
	Goal      *GoalResponse `json:"goal,omitempty"`
	Inviter   *UserResponse `json:"inviter,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

type PaginatedInvitationsResponse struct {
	Content       []InvitationResponse `json:"content"`
	Page          int                  `json:"page"`
	Size          int                  `json:"size"`
	TotalElements int64                `json:"total_elements"`
	TotalPages    int                  `json:"total_pages"`
	Last          bool                 `json:"last"`
}

func InvitationResponseFrom(inv *models.Invitation) InvitationResponse {
	resp := InvitationResponse{
		ID:        inv.ID,
		Status:    inv.Status,
		CreatedAt: inv.CreatedAt,
	}
	if inv.Goal != nil {
		goal := GoalResponseFrom(inv.Goal)
		resp.Goal = &goal
	}
	if inv.Inviter != nil {
		inviter := UserResponseFrom(inv.Inviter)
		resp.Inviter = &inviter
	}
	return resp
}
