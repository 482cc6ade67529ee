package integration

import (
	"context"
	"testing"
	"time"

	"github.com/shafina/squadgoals/internal/models"
	"github.com/shafina/squadgoals/internal/scheduler"
	"github.com/shafina/squadgoals/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminder_Integration_RunOnce(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	reminder := scheduler.NewReminder(tdb.DB, 8, time.Minute)
	ctx := context.Background()

	creator := fixtures.CreateUser(t)
	member := fixtures.CreateUser(t)
	now := time.Now()
	goal := fixtures.CreateGoal(t, creator, models.FrequencyDaily, now.Add(-time.Hour))
	fixtures.AddSquadMember(t, goal.ID, member.ID)

	require.NoError(t, reminder.RunOnce(ctx, now))

	// One reminder per squad member.
	assert.Equal(t, 1, fixtures.CountNotifications(t, creator.ID, goal.ID, models.NotificationTypeReminder))
	assert.Equal(t, 1, fixtures.CountNotifications(t, member.ID, goal.ID, models.NotificationTypeReminder))

	// The due date advanced by one day.
	var nextDueAt time.Time
	err := tdb.DB.Pool.QueryRow(ctx, `SELECT next_due_at FROM goals WHERE id = $1`, goal.ID).Scan(&nextDueAt)
	require.NoError(t, err)
	assert.True(t, nextDueAt.After(now))
}

func TestReminder_Integration_SecondPassSameDayIsNoOp(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	reminder := scheduler.NewReminder(tdb.DB, 8, time.Minute)
	ctx := context.Background()

	creator := fixtures.CreateUser(t)
	member := fixtures.CreateUser(t)
	now := time.Now()
	goal := fixtures.CreateGoal(t, creator, models.FrequencyDaily, now.Add(-time.Hour))
	fixtures.AddSquadMember(t, goal.ID, member.ID)

	require.NoError(t, reminder.RunOnce(ctx, now))
	require.NoError(t, reminder.RunOnce(ctx, now.Add(time.Minute)))

	// Still exactly one reminder each; the goal left the due set after the
	// first pass.
	assert.Equal(t, 1, fixtures.CountNotifications(t, creator.ID, goal.ID, models.NotificationTypeReminder))
	assert.Equal(t, 1, fixtures.CountNotifications(t, member.ID, goal.ID, models.NotificationTypeReminder))
}

func TestReminder_Integration_DedupAcrossDueGoals(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	reminder := scheduler.NewReminder(tdb.DB, 8, time.Minute)
	ctx := context.Background()

	creator := fixtures.CreateUser(t)
	now := time.Now()

	// A goal stuck in the past stays due after one advance; a second pass
	// advances it again but the dedup window keeps the day to one reminder.
	goal := fixtures.CreateGoal(t, creator, models.FrequencyDaily, now.AddDate(0, 0, -3))

	require.NoError(t, reminder.RunOnce(ctx, now))
	require.NoError(t, reminder.RunOnce(ctx, now.Add(time.Minute)))

	assert.Equal(t, 1, fixtures.CountNotifications(t, creator.ID, goal.ID, models.NotificationTypeReminder))
}

func TestReminder_Integration_UndueGoalUntouched(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	reminder := scheduler.NewReminder(tdb.DB, 8, time.Minute)
	ctx := context.Background()

	creator := fixtures.CreateUser(t)
	now := time.Now()
	goal := fixtures.CreateGoal(t, creator, models.FrequencyWeekly, now.Add(48*time.Hour))

	require.NoError(t, reminder.RunOnce(ctx, now))

	assert.Zero(t, fixtures.CountNotifications(t, creator.ID, goal.ID, models.NotificationTypeReminder))
}
