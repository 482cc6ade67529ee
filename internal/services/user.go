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
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

type UserService struct {
	db *database.DB
}

func NewUserService(db *database.DB) *UserService {
	return &UserService{db: db}
}

// Create provisions a user under an external auth uid. The uid is the stable
// identity key; provisioning the same uid twice is a conflict.
func (s *UserService) Create(ctx context.Context, authUID, name, email, timezone string) (*models.User, error) {
	var exists bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE auth_uid = $1)
	`, authUID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	var user models.User
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO users (auth_uid, name, email, timezone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, auth_uid, name, email, timezone, created_at, updated_at
	`, authUID, name, email, timezone).Scan(
		&user.ID, &user.AuthUID, &user.Name, &user.Email, &user.Timezone,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// GetByAuthUID resolves the external auth uid carried by a verified token to
// the provisioned user.
func (s *UserService) GetByAuthUID(ctx context.Context, authUID string) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, auth_uid, name, email, timezone, created_at, updated_at
		FROM users WHERE auth_uid = $1
	`, authUID).Scan(
		&user.ID, &user.AuthUID, &user.Name, &user.Email, &user.Timezone,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, auth_uid, name, email, timezone, created_at, updated_at
		FROM users WHERE id = $1
	`, id).Scan(
		&user.ID, &user.AuthUID, &user.Name, &user.Email, &user.Timezone,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Search finds users by name or email fragment, excluding the caller.
func (s *UserService) Search(ctx context.Context, query string, excludeUserID uuid.UUID, limit int) ([]models.User, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, auth_uid, name, email, timezone, created_at, updated_at
		FROM users
		WHERE (name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%')
		  AND id != $2
		ORDER BY name
		LIMIT $3
	`, query, excludeUserID, limit)
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
