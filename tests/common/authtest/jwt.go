//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"fuel-quota-service/internal/domain/auth"
	"fuel-quota-service/internal/pkg/config"
	"fuel-quota-service/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

// GenerateToken mints a token the way the server does. stationID is nil for
// vehicle owners and admins, set for station operators.
func (h *JWTHelper) GenerateToken(t *testing.T, subjectID uuid.UUID, role auth.Role, stationID *uuid.UUID) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	service := jwt.NewService(h.cfg.Secret, duration)
	token, err := service.GenerateToken(subjectID, role, stationID)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, subjectID uuid.UUID, role auth.Role, stationID *uuid.UUID) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, 1*time.Millisecond)
	token, err := service.GenerateToken(subjectID, role, stationID)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
