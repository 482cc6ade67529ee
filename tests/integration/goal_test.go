package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shafina/squadgoals/internal/models"
	"github.com/shafina/squadgoals/internal/services"
	"github.com/shafina/squadgoals/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalService_Integration_Create(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	goalSvc := services.NewGoalService(tdb.DB)
	invitationSvc := services.NewInvitationService(tdb.DB)
	ctx := context.Background()

	creator := fixtures.CreateUser(t)
	invited := fixtures.CreateUser(t)
	startAt := time.Now().Add(24 * time.Hour)

	description := "Run before work"
	goal, err := goalSvc.Create(ctx, creator, services.CreateGoalParams{
		Title:        "Morning run",
		Description:  &description,
		Timezone:     "Europe/Belgrade",
		StartAt:      startAt,
		Frequency:    models.FrequencyDaily,
		TagNames:     []string{"fitness", "running"},
		SquadUserIDs: []uuid.UUID{invited.ID},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, goal.ID)
	assert.Equal(t, "Morning run", goal.Title)
	assert.WithinDuration(t, startAt, goal.NextDueAt, time.Second)

	// Creator is the only squad member until the invitation is accepted.
	squad, err := goalSvc.GetSquad(ctx, goal.ID)
	require.NoError(t, err)
	require.Len(t, squad, 1)
	assert.Equal(t, creator.ID, squad[0].ID)

	tags, err := goalSvc.GetTags(ctx, goal.ID)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "fitness", tags[0].Name)
	assert.Equal(t, "running", tags[1].Name)

	// The invited user got a PENDING invitation and an INVITE notification.
	invitations, total, err := invitationSvc.ListForUser(ctx, invited.ID, models.InvitationStatusPending, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, invitations, 1)
	assert.Equal(t, goal.ID, invitations[0].GoalID)

	assert.Equal(t, 1, fixtures.CountNotifications(t, invited.ID, goal.ID, models.NotificationTypeInvite))
}

func TestGoalService_Integration_Create_UnknownInvitedUserRollsBack(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	goalSvc := services.NewGoalService(tdb.DB)
	ctx := context.Background()

	creator := fixtures.CreateUser(t)

	_, err := goalSvc.Create(ctx, creator, services.CreateGoalParams{
		Title:        "Doomed goal",
		Timezone:     "UTC",
		StartAt:      time.Now(),
		Frequency:    models.FrequencyDaily,
		SquadUserIDs: []uuid.UUID{uuid.New()},
	})
	assert.ErrorIs(t, err, services.ErrUserNotFound)

	// Nothing from the failed creation survived.
	var count int
	err = tdb.DB.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM goals WHERE title = $1`, "Doomed goal").Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGoalService_Integration_TagsSharedAcrossGoals(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	goalSvc := services.NewGoalService(tdb.DB)
	ctx := context.Background()

	creator := fixtures.CreateUser(t)

	first, err := goalSvc.Create(ctx, creator, services.CreateGoalParams{
		Title:     "Goal one",
		Timezone:  "UTC",
		StartAt:   time.Now(),
		Frequency: models.FrequencyDaily,
		TagNames:  []string{"fitness"},
	})
	require.NoError(t, err)

	second, err := goalSvc.Create(ctx, creator, services.CreateGoalParams{
		Title:     "Goal two",
		Timezone:  "UTC",
		StartAt:   time.Now(),
		Frequency: models.FrequencyWeekly,
		TagNames:  []string{"fitness"},
	})
	require.NoError(t, err)

	firstTags, err := goalSvc.GetTags(ctx, first.ID)
	require.NoError(t, err)
	secondTags, err := goalSvc.GetTags(ctx, second.ID)
	require.NoError(t, err)

	require.Len(t, firstTags, 1)
	require.Len(t, secondTags, 1)
	assert.Equal(t, firstTags[0].ID, secondTags[0].ID)
}

func TestGoalService_Integration_GetPublicGoals(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	goalSvc := services.NewGoalService(tdb.DB)
	ctx := context.Background()

	creator := fixtures.CreateUser(t)
	fixtures.CreateGoal(t, creator, models.FrequencyDaily, time.Now(), testutil.WithTitle("Public goal"))
	fixtures.CreateGoal(t, creator, models.FrequencyDaily, time.Now(), testutil.WithTitle("Hidden goal"), testutil.Private())

	goals, err := goalSvc.GetPublicGoals(ctx, true, 10)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "Public goal", goals[0].Title)
}
