package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shafina/squadgoals/internal/database"
	"github.com/shafina/squadgoals/internal/models"
)

var ErrGoalNotFound = errors.New("goal not found")

type GoalService struct {
	db *database.DB
}

func NewGoalService(db *database.DB) *GoalService {
	return &GoalService{db: db}
}

type CreateGoalParams struct {
	Title        string
	Description  *string
	Timezone     string
	StartAt      time.Time
	Frequency    string
	IsPublic     *bool
	TagNames     []string
	SquadUserIDs []uuid.UUID
}

// Create persists a goal with the creator as the only squad member, resolves
// or lazily creates its tags, and fans out one PENDING invitation plus one
// INVITE notification per requested squad user. Invited users join the squad
// only when they accept. Everything runs in one transaction: an unresolvable
// squad user id rolls the whole creation back.
func (s *GoalService) Create(ctx context.Context, creator *models.User, params CreateGoalParams) (*models.Goal, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	isPublic := true
	if params.IsPublic != nil {
		isPublic = *params.IsPublic
	}

	var goal models.Goal
	err = tx.QueryRow(ctx, `
		INSERT INTO goals (title, description, timezone, start_at, frequency, is_public, next_due_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $4, $7)
		RETURNING id, title, description, timezone, start_at, frequency, is_public, next_due_at, created_by, created_at, updated_at
	`, params.Title, params.Description, params.Timezone, params.StartAt, params.Frequency, isPublic, creator.ID).Scan(
		&goal.ID, &goal.Title, &goal.Description, &goal.Timezone, &goal.StartAt,
		&goal.Frequency, &goal.IsPublic, &goal.NextDueAt, &goal.CreatedBy,
		&goal.CreatedAt, &goal.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO goal_squad (goal_id, user_id) VALUES ($1, $2)
	`, goal.ID, creator.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to add creator to squad: %w", err)
	}

	for _, name := range params.TagNames {
		tag, err := findOrCreateTag(ctx, tx, name)
		if err != nil {
			return nil, err
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO goal_tags (goal_id, tag_id) VALUES ($1, $2)
			ON CONFLICT (goal_id, tag_id) DO NOTHING
		`, goal.ID, tag.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to link tag %q: %w", name, err)
		}
		goal.Tags = append(goal.Tags, *tag)
	}

	for _, userID := range params.SquadUserIDs {
		if userID == creator.ID {
			continue
		}

		var exists bool
		err = tx.QueryRow(ctx, `
			SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)
		`, userID).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve invited user: %w", err)
		}
		if !exists {
			return nil, ErrUserNotFound
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO invitations (goal_id, invited_user_id, inviter_id, status)
			VALUES ($1, $2, $3, $4)
		`, goal.ID, userID, creator.ID, models.InvitationStatusPending)
		if err != nil {
			return nil, fmt.Errorf("failed to create invitation: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO notifications (user_id, notification_type, sender_id, goal_id)
			VALUES ($1, $2, $3, $4)
		`, userID, models.NotificationTypeInvite, creator.ID, goal.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to create invite notification: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	goal.Squad = []models.User{*creator}
	return &goal, nil
}

func (s *GoalService) GetByID(ctx context.Context, goalID uuid.UUID) (*models.Goal, error) {
	var goal models.Goal
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, title, description, timezone, start_at, frequency, is_public, next_due_at, created_by, created_at, updated_at
		FROM goals WHERE id = $1
	`, goalID).Scan(
		&goal.ID, &goal.Title, &goal.Description, &goal.Timezone, &goal.StartAt,
		&goal.Frequency, &goal.IsPublic, &goal.NextDueAt, &goal.CreatedBy,
		&goal.CreatedAt, &goal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	return &goal, nil
}

// GetPublicGoals lists public goals, newest first when recent is set.
func (s *GoalService) GetPublicGoals(ctx context.Context, recent bool, limit int) ([]models.Goal, error) {
	order := "created_at"
	if recent {
		order = "created_at DESC"
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, title, description, timezone, start_at, frequency, is_public, next_due_at, created_by, created_at, updated_at
		FROM goals WHERE is_public = TRUE
		ORDER BY `+order+`
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var goal models.Goal
		if err := rows.Scan(
			&goal.ID, &goal.Title, &goal.Description, &goal.Timezone, &goal.StartAt,
			&goal.Frequency, &goal.IsPublic, &goal.NextDueAt, &goal.CreatedBy,
			&goal.CreatedAt, &goal.UpdatedAt,
		); err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

// GetSquad returns the users currently in the goal's squad.
func (s *GoalService) GetSquad(ctx context.Context, goalID uuid.UUID) ([]models.User, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT u.id, u.auth_uid, u.name, u.email, u.timezone, u.created_at, u.updated_at
		FROM goal_squad gs
		JOIN users u ON gs.user_id = u.id
		WHERE gs.goal_id = $1
		ORDER BY gs.created_at
	`, goalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID, &user.AuthUID, &user.Name, &user.Email, &user.Timezone,
			&user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (s *GoalService) GetTags(ctx context.Context, goalID uuid.UUID) ([]models.Tag, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT t.id, t.name
		FROM goal_tags gt
		JOIN tags t ON gt.tag_id = t.id
		WHERE gt.goal_id = $1
		ORDER BY t.name
	`, goalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func (s *GoalService) IsSquadMember(ctx context.Context, goalID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM goal_squad WHERE goal_id = $1 AND user_id = $2)
	`, goalID, userID).Scan(&exists)
	return exists, err
}
