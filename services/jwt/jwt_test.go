package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, "Admin", "s3cret", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateAndGetClaims(token, "s3cret")
	require.NoError(t, err)

	userID, level, err := Identity(claims)
	require.NoError(t, err)
	assert.EqualValues(t, 42, userID)
	assert.Equal(t, "Admin", level)
}

func TestRejectsWrongSecretAndExpired(t *testing.T) {
	token, err := GenerateToken(1, "User", "a", time.Hour)
	require.NoError(t, err)
	_, err = ValidateAndGetClaims(token, "b")
	assert.Error(t, err)

	expired, err := GenerateToken(1, "User", "a", -time.Minute)
	require.NoError(t, err)
	_, err = ValidateAndGetClaims(expired, "a")
	assert.Error(t, err)
}

func TestIdentityRequiresUserID(t *testing.T) {
	_, _, err := Identity(map[string]interface{}{"level_name": "User"})
	assert.Error(t, err)
}
