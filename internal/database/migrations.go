package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		auth_uid VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		timezone VARCHAR(100) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS tags (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(100) UNIQUE NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS goals (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		title VARCHAR(255) NOT NULL,
		description TEXT,
		timezone VARCHAR(100) NOT NULL,
		start_at TIMESTAMP WITH TIME ZONE NOT NULL,
		frequency VARCHAR(20) NOT NULL,
		is_public BOOLEAN NOT NULL DEFAULT TRUE,
		next_due_at TIMESTAMP WITH TIME ZONE NOT NULL,
		created_by UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS goal_squad (
		goal_id UUID NOT NULL REFERENCES goals(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		PRIMARY KEY (goal_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS goal_tags (
		goal_id UUID NOT NULL REFERENCES goals(id) ON DELETE CASCADE,
		tag_id UUID NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
		PRIMARY KEY (goal_id, tag_id)
	)`,

	// No UNIQUE(goal_id, invited_user_id): inviting the same user twice
	// creates a second pending invitation. Documented behavior.
	`CREATE TABLE IF NOT EXISTS invitations (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		goal_id UUID NOT NULL REFERENCES goals(id) ON DELETE CASCADE,
		invited_user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		inviter_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		notification_type VARCHAR(20) NOT NULL,
		sender_id UUID REFERENCES users(id) ON DELETE SET NULL,
		goal_id UUID REFERENCES goals(id) ON DELETE CASCADE,
		read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_goals_next_due_at ON goals(next_due_at)`,
	`CREATE INDEX IF NOT EXISTS idx_goals_is_public ON goals(is_public)`,
	`CREATE INDEX IF NOT EXISTS idx_goal_squad_user_id ON goal_squad(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_invitations_invited_user_id ON invitations(invited_user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_invitations_goal_id ON invitations(goal_id)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_dedup
		ON notifications(user_id, goal_id, notification_type, created_at)`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
