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

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationService struct {
	db *database.DB
}

func NewNotificationService(db *database.DB) *NotificationService {
	return &NotificationService{db: db}
}

// ListForUser returns the user's notifications, newest first when recent is
// set, capped at limit. Notifications are never deleted here; read state is
// the only thing that ever changes.
func (s *NotificationService) ListForUser(ctx context.Context, userID uuid.UUID, recent bool, limit int) ([]models.Notification, error) {
	order := "created_at"
	if recent {
		order = "created_at DESC"
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, user_id, notification_type, sender_id, goal_id, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY `+order+`
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(
			&n.ID, &n.UserID, &n.Type, &n.SenderID, &n.GoalID, &n.Read, &n.CreatedAt,
		); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkRead marks a single notification read. The user filter doubles as the
// ownership check: someone else's notification id is simply not found.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	var read bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT read FROM notifications WHERE id = $1 AND user_id = $2
	`, notificationID, userID).Scan(&read)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotificationNotFound
		}
		return err
	}

	if read {
		return nil
	}

	_, err = s.db.Pool.Exec(ctx, `
		UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2
	`, notificationID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `
		UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE
	`, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
