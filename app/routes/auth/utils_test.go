package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("S3cret!pass")
	require.NoError(t, err)
	assert.NotEqual(t, "S3cret!pass", hash)

	assert.True(t, CheckPasswordHash("S3cret!pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
}

func TestJWTRoundTrip(t *testing.T) {
	dept := "dept-1"
	token, err := GenerateJWT(JWTClaims{
		UserID:       "user-1",
		Email:        "dean@svcet.edu",
		FirstName:    "Priya",
		LastName:     "Raman",
		Roles:        []string{"dean"},
		ClassIDs:     []string{"class-a", "class-b"},
		DepartmentID: dept,
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "dean@svcet.edu", claims.Email)
	assert.Equal(t, []string{"dean"}, claims.Roles)
	assert.Equal(t, []string{"class-a", "class-b"}, claims.ClassIDs)
	assert.Equal(t, dept, claims.DepartmentID)
	assert.Equal(t, "svcet-attendance-tracker", claims.Issuer)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	_, err := ValidateJWT("not.a.token")
	assert.Error(t, err)
}
