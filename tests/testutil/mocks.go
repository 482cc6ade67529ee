package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/shafina/squadgoals/internal/models"
	"github.com/shafina/squadgoals/internal/services"
	"github.com/stretchr/testify/mock"
)

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Create(ctx context.Context, authUID, name, email, timezone string) (*models.User, error) {
	args := m.Called(ctx, authUID, name, email, timezone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByAuthUID(ctx context.Context, authUID string) (*models.User, error) {
	args := m.Called(ctx, authUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Search(ctx context.Context, query string, excludeUserID uuid.UUID, limit int) ([]models.User, error) {
	args := m.Called(ctx, query, excludeUserID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// MockGoalService mocks the GoalService
type MockGoalService struct {
	mock.Mock
}

func (m *MockGoalService) Create(ctx context.Context, creator *models.User, params services.CreateGoalParams) (*models.Goal, error) {
	args := m.Called(ctx, creator, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Goal), args.Error(1)
}

func (m *MockGoalService) GetByID(ctx context.Context, goalID uuid.UUID) (*models.Goal, error) {
	args := m.Called(ctx, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Goal), args.Error(1)
}

func (m *MockGoalService) GetPublicGoals(ctx context.Context, recent bool, limit int) ([]models.Goal, error) {
	args := m.Called(ctx, recent, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Goal), args.Error(1)
}

func (m *MockGoalService) GetSquad(ctx context.Context, goalID uuid.UUID) ([]models.User, error) {
	args := m.Called(ctx, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockGoalService) GetTags(ctx context.Context, goalID uuid.UUID) ([]models.Tag, error) {
	args := m.Called(ctx, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tag), args.Error(1)
}

func (m *MockGoalService) IsSquadMember(ctx context.Context, goalID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, goalID, userID)
	return args.Bool(0), args.Error(1)
}

// MockInvitationService mocks the InvitationService
type MockInvitationService struct {
	mock.Mock
}

func (m *MockInvitationService) Accept(ctx context.Context, invitationID, actingUserID uuid.UUID) error {
	args := m.Called(ctx, invitationID, actingUserID)
	return args.Error(0)
}

func (m *MockInvitationService) Decline(ctx context.Context, invitationID, actingUserID uuid.UUID) error {
	args := m.Called(ctx, invitationID, actingUserID)
	return args.Error(0)
}

func (m *MockInvitationService) ListForUser(ctx context.Context, userID uuid.UUID, status string, page, size int) ([]models.Invitation, int64, error) {
	args := m.Called(ctx, userID, status, page, size)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Invitation), args.Get(1).(int64), args.Error(2)
}

// MockNotificationService mocks the NotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) ListForUser(ctx context.Context, userID uuid.UUID, recent bool, limit int) ([]models.Notification, error) {
	args := m.Called(ctx, userID, recent, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	args := m.Called(ctx, notificationID, userID)
	return args.Error(0)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
