package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shafina/squadgoals/internal/database"
	"github.com/shafina/squadgoals/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupInvitationService(t *testing.T) (*InvitationService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewInvitationService(db), mock
}

func TestInvitationService_Accept(t *testing.T) {
	svc, mock := setupInvitationService(t)
	ctx := context.Background()
	invitationID := uuid.New()
	goalID := uuid.New()
	userID := uuid.New()

	mock.ExpectBegin()

	rows := pgxmock.NewRows([]string{"id", "goal_id", "invited_user_id", "status"}).
		AddRow(invitationID, goalID, userID, models.InvitationStatusPending)
	mock.ExpectQuery(`SELECT id, goal_id, invited_user_id, status`).
		WithArgs(invitationID).
		WillReturnRows(rows)

	mock.ExpectExec(`SELECT id FROM goals WHERE id`).
		WithArgs(goalID).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))

	mock.ExpectExec(`UPDATE invitations SET status`).
		WithArgs(models.InvitationStatusAccepted, invitationID, models.InvitationStatusPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	mock.ExpectExec(`INSERT INTO goal_squad`).
		WithArgs(goalID, userID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	mock.ExpectCommit()

	err := svc.Accept(ctx, invitationID, userID)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvitationService_Accept_AlreadyAccepted(t *testing.T) {
	svc, mock := setupInvitationService(t)
	ctx := context.Background()
	invitationID := uuid.New()
	goalID := uuid.New()
	userID := uuid.New()

	mock.ExpectBegin()

	rows := pgxmock.NewRows([]string{"id", "goal_id", "invited_user_id", "status"}).
		AddRow(invitationID, goalID, userID, models.InvitationStatusAccepted)
	mock.ExpectQuery(`SELECT id, goal_id, invited_user_id, status`).
		WithArgs(invitationID).
		WillReturnRows(rows)

	mock.ExpectCommit()

	err := svc.Accept(ctx, invitationID, userID)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvitationService_Accept_AlreadyDeclined(t *testing.T) {
	svc, mock := setupInvitationService(t)
	ctx := context.Background()
	invitationID := uuid.New()
	goalID := uuid.New()
	userID := uuid.New()

	mock.ExpectBegin()

	rows := pgxmock.NewRows([]string{"id", "goal_id", "invited_user_id", "status"}).
		AddRow(invitationID, goalID, userID, models.InvitationStatusDeclined)
	mock.ExpectQuery(`SELECT id, goal_id, invited_user_id, status`).
		WithArgs(invitationID).
		WillReturnRows(rows)

	mock.ExpectCommit()

	err := svc.Accept(ctx, invitationID, userID)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvitationService_Accept_Forbidden(t *testing.T) {
	svc, mock := setupInvitationService(t)
	ctx := context.Background()
	invitationID := uuid.New()
	goalID := uuid.New()

	mock.ExpectBegin()

	rows := pgxmock.NewRows([]string{"id", "goal_id", "invited_user_id", "status"}).
		AddRow(invitationID, goalID, uuid.New(), models.InvitationStatusPending)
	mock.ExpectQuery(`SELECT id, goal_id, invited_user_id, status`).
		WithArgs(invitationID).
		WillReturnRows(rows)

	mock.ExpectRollback()

	err := svc.Accept(ctx, invitationID, uuid.New())

	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvitationService_Accept_NotFound(t *testing.T) {
	svc, mock := setupInvitationService(t)
	ctx := context.Background()
	invitationID := uuid.New()

	mock.ExpectBegin()

	mock.ExpectQuery(`SELECT id, goal_id, invited_user_id, status`).
		WithArgs(invitationID).
		WillReturnError(pgx.ErrNoRows)

	mock.ExpectRollback()

	err := svc.Accept(ctx, invitationID, uuid.New())

	assert.ErrorIs(t, err, ErrInvitationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvitationService_Decline(t *testing.T) {
	svc, mock := setupInvitationService(t)
	ctx := context.Background()
	invitationID := uuid.New()
	goalID := uuid.New()
	userID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "goal_id", "invited_user_id", "inviter_id", "status", "created_at", "updated_at"}).
		AddRow(invitationID, goalID, userID, uuid.New(), models.InvitationStatusPending, now, now)
	mock.ExpectQuery(`SELECT .+ FROM invitations WHERE id`).
		WithArgs(invitationID).
		WillReturnRows(rows)

	mock.ExpectExec(`UPDATE invitations SET status`).
		WithArgs(models.InvitationStatusDeclined, invitationID, models.InvitationStatusPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := svc.Decline(ctx, invitationID, userID)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvitationService_Decline_AlreadyAccepted(t *testing.T) {
	svc, mock := setupInvitationService(t)
	ctx := context.Background()
	invitationID := uuid.New()
	goalID := uuid.New()
	userID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "goal_id", "invited_user_id", "inviter_id", "status", "created_at", "updated_at"}).
		AddRow(invitationID, goalID, userID, uuid.New(), models.InvitationStatusAccepted, now, now)
	mock.ExpectQuery(`SELECT .+ FROM invitations WHERE id`).
		WithArgs(invitationID).
		WillReturnRows(rows)

	err := svc.Decline(ctx, invitationID, userID)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvitationService_Decline_Forbidden(t *testing.T) {
	svc, mock := setupInvitationService(t)
	ctx := context.Background()
	invitationID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "goal_id", "invited_user_id", "inviter_id", "status", "created_at", "updated_at"}).
		AddRow(invitationID, uuid.New(), uuid.New(), uuid.New(), models.InvitationStatusPending, now, now)
	mock.ExpectQuery(`SELECT .+ FROM invitations WHERE id`).
		WithArgs(invitationID).
		WillReturnRows(rows)

	err := svc.Decline(ctx, invitationID, uuid.New())

	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvitationService_Decline_NotFound(t *testing.T) {
	svc, mock := setupInvitationService(t)
	ctx := context.Background()
	invitationID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM invitations WHERE id`).
		WithArgs(invitationID).
		WillReturnError(pgx.ErrNoRows)

	err := svc.Decline(ctx, invitationID, uuid.New())

	assert.ErrorIs(t, err, ErrInvitationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvitationService_ListForUser(t *testing.T) {
	svc, mock := setupInvitationService(t)
	ctx := context.Background()
	userID := uuid.New()
	goalID := uuid.New()
	inviterID := uuid.New()
	invitationID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM invitations`).
		WithArgs(userID, models.InvitationStatusPending).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))

	cols := []string{
		"id", "goal_id", "invited_user_id", "inviter_id", "status", "created_at", "updated_at",
		"g_id", "title", "description", "timezone", "start_at", "frequency", "is_public", "next_due_at", "created_by", "g_created_at", "g_updated_at",
		"u_id", "auth_uid", "name", "email", "u_timezone", "u_created_at", "u_updated_at",
	}
	rows := pgxmock.NewRows(cols).AddRow(
		invitationID, goalID, userID, inviterID, models.InvitationStatusPending, now, now,
		goalID, "Morning run", nil, "UTC", now, models.FrequencyDaily, true, now, inviterID, now, now,
		inviterID, "uid-inviter", "Carol", "carol@example.com", "UTC", now, now,
	)
	mock.ExpectQuery(`SELECT .+ FROM invitations i`).
		WithArgs(userID, models.InvitationStatusPending, 10, 0).
		WillReturnRows(rows)

	invitations, total, err := svc.ListForUser(ctx, userID, models.InvitationStatusPending, 0, 10)

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, invitations, 1)
	assert.Equal(t, invitationID, invitations[0].ID)
	require.NotNil(t, invitations[0].Goal)
	assert.Equal(t, "Morning run", invitations[0].Goal.Title)
	require.NotNil(t, invitations[0].Inviter)
	assert.Equal(t, "Carol", invitations[0].Inviter.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvitationService_ListForUser_Empty(t *testing.T) {
	svc, mock := setupInvitationService(t)
	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM invitations`).
		WithArgs(userID, models.InvitationStatusDeclined).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))

	mock.ExpectQuery(`SELECT .+ FROM invitations i`).
		WithArgs(userID, models.InvitationStatusDeclined, 10, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	invitations, total, err := svc.ListForUser(ctx, userID, models.InvitationStatusDeclined, 0, 10)

	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, invitations)
	assert.NoError(t, mock.ExpectationsWereMet())
}
