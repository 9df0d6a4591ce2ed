package utils_test

import (
	"testing"
	"time"

	"github.com/shelfpub/shelfpub_backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := utils.GenerateJWT("sess-1", "secret", time.Hour, "shelfpub-backend")
	require.NoError(t, err)

	claims, err := utils.ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.Subject)
	assert.Equal(t, "shelfpub-backend", claims.Issuer)
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := utils.GenerateJWT("sess-1", "secret", time.Hour, "shelfpub-backend")
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestParseJWTExpired(t *testing.T) {
	token, err := utils.GenerateJWT("sess-1", "secret", -time.Minute, "shelfpub-backend")
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(token, "secret")
	assert.Error(t, err)
}

func TestParseJWTGarbage(t *testing.T) {
	_, err := utils.ParseAndValidateJWT("not.a.token", "secret")
	assert.Error(t, err)
}
