package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shafina/squadgoals/internal/database"
	"github.com/shafina/squadgoals/internal/models"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		AuthUID:  fmt.Sprintf("auth-uid-%d", f.counter),
		Name:     fmt.Sprintf("Test User %d", f.counter),
		Email:    fmt.Sprintf("user%d@example.com", f.counter),
		Timezone: "UTC",
	}

	for _, opt := range opts {
		opt(user)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (auth_uid, name, email, timezone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, auth_uid, name, email, timezone, created_at, updated_at
	`, user.AuthUID, user.Name, user.Email, user.Timezone).Scan(
		&user.ID, &user.AuthUID, &user.Name, &user.Email, &user.Timezone,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

// WithName sets the user's name
func WithName(name string) UserOption {
	return func(u *models.User) {
		u.Name = name
	}
}

// WithTimezone sets the user's timezone
func WithTimezone(tz string) UserOption {
	return func(u *models.User) {
		u.Timezone = tz
	}
}

// CreateGoal creates a test goal owned by the creator, with the creator in the
// squad, due at the given time
func (f *Fixtures) CreateGoal(t *testing.T, creator *models.User, frequency string, nextDueAt time.Time, opts ...GoalOption) *models.Goal {
	t.Helper()
	f.counter++

	goal := &models.Goal{
		Title:     fmt.Sprintf("Test Goal %d", f.counter),
		Timezone:  "UTC",
		StartAt:   nextDueAt,
		Frequency: frequency,
		IsPublic:  true,
		NextDueAt: nextDueAt,
		CreatedBy: creator.ID,
	}

	for _, opt := range opts {
		opt(goal)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO goals (title, description, timezone, start_at, frequency, is_public, next_due_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, goal.Title, goal.Description, goal.Timezone, goal.StartAt, goal.Frequency,
		goal.IsPublic, goal.NextDueAt, goal.CreatedBy).Scan(
		&goal.ID, &goal.CreatedAt, &goal.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create goal: %v", err)
	}

	f.AddSquadMember(t, goal.ID, creator.ID)

	return goal
}

// GoalOption configures a test goal
type GoalOption func(*models.Goal)

// WithTitle sets the goal's title
func WithTitle(title string) GoalOption {
	return func(g *models.Goal) {
		g.Title = title
	}
}

// Private marks the goal private
func Private() GoalOption {
	return func(g *models.Goal) {
		g.IsPublic = false
	}
}

// AddSquadMember inserts the user into the goal's squad
func (f *Fixtures) AddSquadMember(t *testing.T, goalID, userID uuid.UUID) {
	t.Helper()
	_, err := f.db.Pool.Exec(context.Background(), `
		INSERT INTO goal_squad (goal_id, user_id) VALUES ($1, $2)
		ON CONFLICT (goal_id, user_id) DO NOTHING
	`, goalID, userID)
	if err != nil {
		t.Fatalf("failed to add squad member: %v", err)
	}
}

// CreateInvitation creates a PENDING invitation
func (f *Fixtures) CreateInvitation(t *testing.T, goalID, invitedUserID, inviterID uuid.UUID) *models.Invitation {
	t.Helper()

	inv := &models.Invitation{
		GoalID:        goalID,
		InvitedUserID: invitedUserID,
		InviterID:     inviterID,
		Status:        models.InvitationStatusPending,
	}

	err := f.db.Pool.QueryRow(context.Background(), `
		INSERT INTO invitations (goal_id, invited_user_id, inviter_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, inv.GoalID, inv.InvitedUserID, inv.InviterID, inv.Status).Scan(
		&inv.ID, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create invitation: %v", err)
	}

	return inv
}

// CountNotifications counts notifications for the user and goal with the
// given type
func (f *Fixtures) CountNotifications(t *testing.T, userID, goalID uuid.UUID, notificationType string) int {
	t.Helper()

	var count int
	err := f.db.Pool.QueryRow(context.Background(), `
		SELECT COUNT(*) FROM notifications
		WHERE user_id = $1 AND goal_id = $2 AND notification_type = $3
	`, userID, goalID, notificationType).Scan(&count)
	if err != nil {
		t.Fatalf("failed to count notifications: %v", err)
	}
	return count
}
