package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/d2inventory/motioncore/internal/config"
)

func testAuthService(t *testing.T) *AuthService {
	t.Helper()
	hash, err := NewPasswordHasher().HashPassword("s3cret")
	require.NoError(t, err)

	t.Setenv("TEST_JWT_SECRET", "test-secret-key-for-unit-tests-only")
	cfg := config.AuthConfig{
		JWTSecretEnv:   "TEST_JWT_SECRET",
		AccessTokenTTL: time.Hour,
		Operators: []config.OperatorCred{
			{Username: "Alice", PasswordHash: hash, Role: "admin"},
			{Username: "bob", PasswordHash: hash, Role: "operator"},
		},
	}
	return NewAuthService(cfg, zap.NewNop())
}

func TestLoginUserIssuesValidToken(t *testing.T) {
	svc := testAuthService(t)

	token, err := svc.LoginUser("alice", "s3cret", "127.0.0.1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	perms, claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	assert.ElementsMatch(t, []Permission{PermOperator, PermTechnician, PermAdmin}, perms)
}

func TestLoginUserIsCaseInsensitiveOnUsername(t *testing.T) {
	svc := testAuthService(t)

	_, err := svc.LoginUser("ALICE", "s3cret", "127.0.0.1")
	assert.NoError(t, err)
}

func TestLoginUserRejectsBadCredentials(t *testing.T) {
	svc := testAuthService(t)

	_, err := svc.LoginUser("alice", "wrong", "127.0.0.1")
	assert.EqualError(t, err, "invalid credentials")

	_, err = svc.LoginUser("mallory", "s3cret", "127.0.0.1")
	assert.EqualError(t, err, "invalid credentials")
}

func TestRolePermissionMapping(t *testing.T) {
	svc := testAuthService(t)

	token, err := svc.LoginUser("bob", "s3cret", "127.0.0.1")
	require.NoError(t, err)

	perms, _, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, []Permission{PermOperator}, perms)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := testAuthService(t)

	_, _, err := svc.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	svc := testAuthService(t)

	other := NewJWTHandler("a-completely-different-secret", time.Hour)
	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte("alice"))
	token, err := other.GenerateAccessToken(id, "alice", "admin")
	require.NoError(t, err)

	_, _, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	ph := NewPasswordHasher()

	hash, err := ph.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")

	ok, err := ph.VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ph.VerifyPassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = ph.VerifyPassword("x", "malformed")
	assert.Error(t, err)
}
