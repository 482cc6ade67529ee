package handlers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shafina/squadgoals/internal/models"
	"github.com/shafina/squadgoals/internal/services"
	"github.com/stretchr/testify/require"
)

func generateTestToken(t *testing.T, jwtSvc *services.JWTService, authUID string) string {
	t.Helper()
	token, err := jwtSvc.GenerateToken(authUID, time.Hour)
	require.NoError(t, err)
	return token
}

func authedUser(authUID string) *models.User {
	return &models.User{
		ID:       uuid.New(),
		AuthUID:  authUID,
		Name:     "Test User",
		Email:    "test@example.com",
		Timezone: "UTC",
	}
}
