package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/shafina/squadgoals/internal/models"
	"github.com/shafina/squadgoals/internal/services"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	Create(ctx context.Context, authUID, name, email, timezone string) (*models.User, error)
	GetByAuthUID(ctx context.Context, authUID string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Search(ctx context.Context, query string, excludeUserID uuid.UUID, limit int) ([]models.User, error)
}

// GoalServiceInterface defines the methods used by handlers from GoalService
type GoalServiceInterface interface {
	Create(ctx context.Context, creator *models.User, params services.CreateGoalParams) (*models.Goal, error)
	GetByID(ctx context.Context, goalID uuid.UUID) (*models.Goal, error)
	GetPublicGoals(ctx context.Context, recent bool, limit int) ([]models.Goal, error)
	GetSquad(ctx context.Context, goalID uuid.UUID) ([]models.User, error)
	GetTags(ctx context.Context, goalID uuid.UUID) ([]models.Tag, error)
	IsSquadMember(ctx context.Context, goalID, userID uuid.UUID) (bool, error)
}

// InvitationServiceInterface defines the methods used by handlers from InvitationService
type InvitationServiceInterface interface {
	Accept(ctx context.Context, invitationID, actingUserID uuid.UUID) error
	Decline(ctx context.Context, invitationID, actingUserID uuid.UUID) error
	ListForUser(ctx context.Context, userID uuid.UUID, status string, page, size int) ([]models.Invitation, int64, error)
}

// NotificationServiceInterface defines the methods used by handlers from NotificationService
type NotificationServiceInterface interface {
	ListForUser(ctx context.Context, userID uuid.UUID, recent bool, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}
