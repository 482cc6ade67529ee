package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shafina/squadgoals/internal/models"
)

type CreateGoalRequest struct {
	Title        string      `json:"title"`
	Description  *string     `json:"description,omitempty"`
	Timezone     string      `json:"timezone"`
	StartAt      time.Time   `json:"start_at"`
	Frequency    string      `json:"frequency"`
	Public       *bool       `json:"public,omitempty"`
	TagNames     []string    `json:"tag_names,omitempty"`
	SquadUserIDs []uuid.UUID `json:"squad_user_ids,omitempty"`
}

type GoalResponse struct {
	ID          uuid.UUID      `json:"id"`
	Title       string         `json:"title"`
	Description *string        `json:"description,omitempty"`
	Timezone    string         `json:"timezone"`
	StartAt     time.Time      `json:"start_at"`
	Frequency   string         `json:"frequency"`
	Public      bool           `json:"public"`
	NextDueAt   time.Time      `json:"next_due_at"`
	CreatedBy   uuid.UUID      `json:"created_by"`
	Tags        []string       `json:"tags"`
	Squad       []UserResponse `json:"squad"`
	CreatedAt   time.Time      `json:"created_at"`
}

func GoalResponseFrom(goal *models.Goal) GoalResponse {
	tags := make([]string, len(goal.Tags))
	for i, tag := range goal.Tags {
		tags[i] = tag.Name
	}

	squad := make([]UserResponse, len(goal.Squad))
	for i := range goal.Squad {
		squad[i] = UserResponseFrom(&goal.Squad[i])
	}

	return GoalResponse{
		ID:          goal.ID,
		Title:       goal.Title,
		Description: goal.Description,
		Timezone:    goal.Timezone,
		StartAt:     goal.StartAt,
		Frequency:   goal.Frequency,
		Public:      goal.IsPublic,
		NextDueAt:   goal.NextDueAt,
		CreatedBy:   goal.CreatedBy,
		Tags:        tags,
		Squad:       squad,
		CreatedAt:   goal.CreatedAt,
	}
}
