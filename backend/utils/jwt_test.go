package utils

import (
	"testing"
	"time"

	"examportal/backend/config"
	"examportal/backend/models"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "testsecret", TokenTTL: 7 * 24 * time.Hour}
}

func TestGenerateAndParseJWTToken(t *testing.T) {
	cfg := testConfig()
	user := &models.User{Base: models.Base{ID: "user-1"}, Email: "s@example.com", Role: models.RoleStudent}

	token, err := GenerateJWTToken(user, cfg)
	require.NoError(t, err)

	claims, err := ParseJWTToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.ID)
	assert.Equal(t, "s@example.com", claims.Email)
	assert.Equal(t, models.RoleStudent, claims.Role)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParseJWTTokenRejects(t *testing.T) {
	cfg := testConfig()
	user := &models.User{Base: models.Base{ID: "user-1"}, Role: models.RoleAdmin}

	otherSecret := &config.Config{JWTSecret: "other", TokenTTL: time.Hour}
	forged, err := GenerateJWTToken(user, otherSecret)
	require.NoError(t, err)

	expired, err := GenerateJWTToken(user, &config.Config{JWTSecret: cfg.JWTSecret, TokenTTL: -time.Hour})
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{ID: "user-1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", forged},
		{"expired", expired},
		{"unsigned", none},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJWTToken(tt.token, cfg)
			assert.Error(t, err)
		})
	}
}
