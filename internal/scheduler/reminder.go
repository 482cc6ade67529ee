// Package scheduler runs the daily reminder pass over due goals.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shafina/squadgoals/internal/database"
	"github.com/shafina/squadgoals/internal/models"
	"github.com/shafina/squadgoals/internal/recurrence"
)

// Reminder is the long-lived scheduler task. A single instance owns the
// reminder pass; the running flag guarantees two passes never overlap, so the
// per-day dedup check stays sound. Trigger timing uses the server clock for
// every goal regardless of the goal's stored timezone.
type Reminder struct {
	db            *database.DB
	hour          int
	checkInterval time.Duration
	now           func() time.Time

	mu        sync.Mutex
	running   bool
	lastFired time.Time
}

func NewReminder(db *database.DB, hour int, checkInterval time.Duration) *Reminder {
	return &Reminder{
		db:            db,
		hour:          hour,
		checkInterval: checkInterval,
		now:           time.Now,
	}
}

// Run blocks until ctx is cancelled, firing one reminder pass per calendar
// day once the configured hour is reached.
func (r *Reminder) Run(ctx context.Context) {
	ticker := time.NewTicker(r.checkInterval)
	defer ticker.Stop()

	log.Printf("reminder scheduler started, firing daily at %02d:00", r.hour)

	for {
		select {
		case <-ctx.Done():
			log.Printf("reminder scheduler stopped")
			return
		case <-ticker.C:
			now := r.now()
			if !r.shouldFire(now) {
				continue
			}
			if err := r.RunOnce(ctx, now); err != nil {
				log.Printf("reminder pass finished with errors: %v", err)
			}
		}
	}
}

// shouldFire reports whether the daily trigger is due and records the fire so
// the same calendar day never triggers twice.
func (r *Reminder) shouldFire(now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if now.Hour() < r.hour {
		return false
	}
	if sameDay(r.lastFired, now) {
		return false
	}
	r.lastFired = now
	return true
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// RunOnce executes a single reminder pass: every goal due at or before now
// gets one REMINDER notification per squad member (deduplicated per calendar
// day) and its next-due timestamp advanced exactly once. If a pass is already
// running the call is skipped, never run in parallel. Errors on one goal are
// collected and do not stop the remaining goals.
func (r *Reminder) RunOnce(ctx context.Context, now time.Time) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		log.Printf("reminder pass already running, skipping trigger")
		return nil
	}
	r.running = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()

	goals, err := r.dueGoals(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to query due goals: %w", err)
	}

	var errs []error
	for _, goal := range goals {
		if err := r.processGoal(ctx, &goal, now); err != nil {
			log.Printf("reminder pass: goal %s: %v", goal.ID, err)
			errs = append(errs, fmt.Errorf("goal %s: %w", goal.ID, err))
		}
	}
	return errors.Join(errs...)
}

func (r *Reminder) dueGoals(ctx context.Context, now time.Time) ([]models.Goal, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, title, frequency, next_due_at
		FROM goals
		WHERE next_due_at <= $1
		ORDER BY next_due_at
	`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var goal models.Goal
		if err := rows.Scan(&goal.ID, &goal.Title, &goal.Frequency, &goal.NextDueAt); err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

// processGoal handles one due goal. The transaction holds the goal row locked
// for its whole duration, so an invitation acceptance mutating the same squad
// waits until the pass over this goal is done. Notification writes go through
// the pool one member at a time: a failed write is logged and skipped without
// aborting the remaining members, and the already-written notifications stand
// either way. The due-date advance commits last; if it fails, the goal stays
// due and is retried next tick, with the dedup window absorbing the repeats.
func (r *Reminder) processGoal(ctx context.Context, goal *models.Goal, now time.Time) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var nextDueAt time.Time
	err = tx.QueryRow(ctx, `
		SELECT next_due_at FROM goals WHERE id = $1 FOR UPDATE
	`, goal.ID).Scan(&nextDueAt)
	if err != nil {
		return fmt.Errorf("failed to lock goal: %w", err)
	}

	if nextDueAt.After(now) {
		// Advanced since the due query; nothing to do.
		return tx.Commit(ctx)
	}

	squad, err := squadUserIDs(ctx, tx, goal.ID)
	if err != nil {
		return fmt.Errorf("failed to read squad: %w", err)
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var memberErrs []error
	for _, userID := range squad {
		if err := r.remindUser(ctx, userID, goal.ID, dayStart, dayEnd); err != nil {
			log.Printf("reminder pass: user %s goal %s: %v", userID, goal.ID, err)
			memberErrs = append(memberErrs, fmt.Errorf("user %s: %w", userID, err))
		}
	}

	// The advance happens exactly once per goal per tick, even when every
	// member was deduplicated, so the goal leaves the due set.
	next := recurrence.NextOccurrence(nextDueAt, goal.Frequency)
	_, err = tx.Exec(ctx, `
		UPDATE goals SET next_due_at = $1, updated_at = NOW() WHERE id = $2
	`, next, goal.ID)
	if err != nil {
		return fmt.Errorf("failed to advance due date: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return errors.Join(memberErrs...)
}

// remindUser writes one REMINDER notification unless the (user, goal) pair
// already has one inside today's dedup window.
func (r *Reminder) remindUser(ctx context.Context, userID, goalID uuid.UUID, dayStart, dayEnd time.Time) error {
	var exists bool
	err := r.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM notifications
			WHERE user_id = $1 AND goal_id = $2 AND notification_type = $3
			  AND created_at >= $4 AND created_at < $5
		)
	`, userID, goalID, models.NotificationTypeReminder, dayStart, dayEnd).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check existing reminder: %w", err)
	}
	if exists {
		return nil
	}

	_, err = r.db.Pool.Exec(ctx, `
		INSERT INTO notifications (user_id, notification_type, goal_id)
		VALUES ($1, $2, $3)
	`, userID, models.NotificationTypeReminder, goalID)
	if err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}
	return nil
}

func squadUserIDs(ctx context.Context, tx pgx.Tx, goalID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := tx.Query(ctx, `
		SELECT user_id FROM goal_squad WHERE goal_id = $1 ORDER BY created_at
	`, goalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var userIDs []uuid.UUID
	for rows.Next() {
		var userID uuid.UUID
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, userID)
	}
	return userIDs, rows.Err()
}
