package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestInitJWTSecret_RejectsEmpty(t *testing.T) {
	assert.Error(t, InitJWTSecret(""))
}

func TestGenerateAndVerifyJWT(t *testing.T) {
	require.NoError(t, InitJWTSecret("test-secret"))

	token, err := GenerateJWT(42, "jdoe", time.Hour)
	require.NoError(t, err)

	claims, err := VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "jdoe", claims.Username)
}

func TestVerifyJWT_Expired(t *testing.T) {
	require.NoError(t, InitJWTSecret("test-secret"))

	token, err := GenerateJWT(1, "jdoe", -time.Minute)
	require.NoError(t, err)

	_, err = VerifyJWT(token)
	assert.Error(t, err)
}

func TestVerifyJWT_WrongSecret(t *testing.T) {
	require.NoError(t, InitJWTSecret("first"))
	token, err := GenerateJWT(1, "jdoe", time.Hour)
	require.NoError(t, err)

	require.NoError(t, InitJWTSecret("second"))
	_, err = VerifyJWT(token)
	assert.Error(t, err)
}

func TestVerifyJWT_RejectsNoneAlgorithm(t *testing.T) {
	require.NoError(t, InitJWTSecret("test-secret"))

	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": 1})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = VerifyJWT(signed)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.NoError(t, CheckPassword(hash, "s3cret-pass"))
	assert.ErrorIs(t, CheckPassword(hash, "wrong"), ErrInvalidCredentials)
	assert.ErrorIs(t, CheckPassword("not-a-hash", "s3cret-pass"), ErrInvalidCredentials)
}

func TestCheckMissingUser(t *testing.T) {
	cost, err := bcrypt.Cost(missingUserHash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)

	assert.ErrorIs(t, CheckMissingUser("anything"), ErrInvalidCredentials)
	assert.ErrorIs(t, CheckMissingUser(""), ErrInvalidCredentials)
}
