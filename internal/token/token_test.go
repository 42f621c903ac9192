package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/timesheet-api/internal/models"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager("secret", time.Hour)

	signed, err := m.Generate(&models.User{ID: 7, Username: "alice", Role: models.RoleAdminDept})
	require.NoError(t, err)

	claims, err := m.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), claims.UserID)
	assert.Equal(t, models.RoleAdminDept, claims.Role)
	assert.Equal(t, "alice", claims.Subject)
	_, err = uuid.Parse(claims.ID)
	assert.NoError(t, err)
}

func TestManager_RejectsBadTokens(t *testing.T) {
	m := NewManager("secret", time.Hour)
	user := &models.User{ID: 7, Role: models.RoleUser}

	other, err := NewManager("other", time.Hour).Generate(user)
	require.NoError(t, err)
	expired, err := NewManager("secret", -time.Minute).Generate(user)
	require.NoError(t, err)
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 7}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"wrong secret": other,
		"expired":      expired,
		"alg none":     unsigned,
		"garbage":      "not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := m.Parse(tok)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
