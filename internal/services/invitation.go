package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shafina/squadgoals/internal/database"
	"github.com/shafina/squadgoals/internal/models"
)

var (
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrForbidden          = errors.New("not the invited user")
)

type InvitationService struct {
	db *database.DB
}

func NewInvitationService(db *database.DB) *InvitationService {
	return &InvitationService{db: db}
}

func (s *InvitationService) GetByID(ctx context.Context, invitationID uuid.UUID) (*models.Invitation, error) {
	var inv models.Invitation
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, goal_id, invited_user_id, inviter_id, status, created_at, updated_at
		FROM invitations WHERE id = $1
	`, invitationID).Scan(
		&inv.ID, &inv.GoalID, &inv.InvitedUserID, &inv.InviterID,
		&inv.Status, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// Accept transitions a PENDING invitation to ACCEPTED and adds the invited
// user to the goal's squad. Only the invited user may accept; identity is
// compared by user id. An invitation that has already left PENDING is a
// no-op success: its status never changes again and squad membership is not
// re-derived. The goal row is locked for the duration of the transaction so
// acceptance never interleaves with a reminder pass over the same squad.
func (s *InvitationService) Accept(ctx context.Context, invitationID, actingUserID uuid.UUID) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var inv models.Invitation
	err = tx.QueryRow(ctx, `
		SELECT id, goal_id, invited_user_id, status
		FROM invitations WHERE id = $1
		FOR UPDATE
	`, invitationID).Scan(&inv.ID, &inv.GoalID, &inv.InvitedUserID, &inv.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrInvitationNotFound
		}
		return err
	}

	if inv.InvitedUserID != actingUserID {
		return ErrForbidden
	}

	if inv.Status != models.InvitationStatusPending {
		return tx.Commit(ctx)
	}

	_, err = tx.Exec(ctx, `
		SELECT id FROM goals WHERE id = $1 FOR UPDATE
	`, inv.GoalID)
	if err != nil {
		return fmt.Errorf("failed to lock goal: %w", err)
	}

	// Invitation write precedes the squad write: a crash between the two
	// leaves an ACCEPTED invitation to re-derive membership from, never a
	// member without a record of acceptance.
	_, err = tx.Exec(ctx, `
		UPDATE invitations SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`, models.InvitationStatusAccepted, invitationID, models.InvitationStatusPending)
	if err != nil {
		return fmt.Errorf("failed to update invitation: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO goal_squad (goal_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (goal_id, user_id) DO NOTHING
	`, inv.GoalID, actingUserID)
	if err != nil {
		return fmt.Errorf("failed to add squad member: %w", err)
	}

	return tx.Commit(ctx)
}

// Decline transitions a PENDING invitation to DECLINED. Same authorization
// rule as Accept; the squad is never touched, and a terminal invitation is a
// no-op success.
func (s *InvitationService) Decline(ctx context.Context, invitationID, actingUserID uuid.UUID) error {
	inv, err := s.GetByID(ctx, invitationID)
	if err != nil {
		return err
	}

	if inv.InvitedUserID != actingUserID {
		return ErrForbidden
	}

	if inv.Status != models.InvitationStatusPending {
		return nil
	}

	_, err = s.db.Pool.Exec(ctx, `
		UPDATE invitations SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`, models.InvitationStatusDeclined, invitationID, models.InvitationStatusPending)
	if err != nil {
		return fmt.Errorf("failed to update invitation: %w", err)
	}
	return nil
}

// ListForUser pages through a user's invitations with the given status,
// newest first, and returns the total count for pagination metadata.
func (s *InvitationService) ListForUser(ctx context.Context, userID uuid.UUID, status string, page, size int) ([]models.Invitation, int64, error) {
	var total int64
	err := s.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM invitations WHERE invited_user_id = $1 AND status = $2
	`, userID, status).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT i.id, i.goal_id, i.invited_user_id, i.inviter_id, i.status, i.created_at, i.updated_at,
		       g.id, g.title, g.description, g.timezone, g.start_at, g.frequency, g.is_public, g.next_due_at, g.created_by, g.created_at, g.updated_at,
		       u.id, u.auth_uid, u.name, u.email, u.timezone, u.created_at, u.updated_at
		FROM invitations i
		JOIN goals g ON i.goal_id = g.id
		JOIN users u ON i.inviter_id = u.id
		WHERE i.invited_user_id = $1 AND i.status = $2
		ORDER BY i.created_at DESC
		LIMIT $3 OFFSET $4
	`, userID, status, size, page*size)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var invitations []models.Invitation
	for rows.Next() {
		var inv models.Invitation
		var goal models.Goal
		var inviter models.User
		if err := rows.Scan(
			&inv.ID, &inv.GoalID, &inv.InvitedUserID, &inv.InviterID,
			&inv.Status, &inv.CreatedAt, &inv.UpdatedAt,
			&goal.ID, &goal.Title, &goal.Description, &goal.Timezone, &goal.StartAt,
			&goal.Frequency, &goal.IsPublic, &goal.NextDueAt, &goal.CreatedBy,
			&goal.CreatedAt, &goal.UpdatedAt,
			&inviter.ID, &inviter.AuthUID, &inviter.Name, &inviter.Email,
			&inviter.Timezone, &inviter.CreatedAt, &inviter.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		inv.Goal = &goal
		inv.Inviter = &inviter
		invitations = append(invitations, inv)
	}
	return invitations, total, rows.Err()
}
