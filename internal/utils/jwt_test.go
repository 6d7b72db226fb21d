package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jobsoutcuba/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret        = "test-secret-key-for-jwt-testing"
	testWrongSecret   = "wrong-secret-key-for-jwt-testing"
	testTokenDuration = 1 * time.Hour
)

func testUsuario(rol models.Rol) *models.Usuario {
	return &models.Usuario{
		ID:       uuid.New(),
		Nombre:   "Prueba",
		Username: "prueba",
		Rol:      rol,
	}
}

func TestGenerateToken_Success(t *testing.T) {
	usuario := testUsuario(models.RolTrabajador)

	token, err := GenerateToken(usuario, testSecret, testTokenDuration)

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Contains(t, token, ".", "JWT token should contain dots")
}

func TestValidateToken_Roundtrip(t *testing.T) {
	roles := []models.Rol{models.RolTrabajador, models.RolAdmin}

	for _, rol := range roles {
		t.Run(string(rol), func(t *testing.T) {
			usuario := testUsuario(rol)
			token, err := GenerateToken(usuario, testSecret, testTokenDuration)
			require.NoError(t, err)

			claims, err := ValidateToken(token, testSecret)
			require.NoError(t, err)
			assert.Equal(t, usuario.ID, claims.UserID)
			assert.Equal(t, usuario.Username, claims.Username)
			assert.Equal(t, rol, claims.Rol)
			assert.Equal(t, "access", claims.Subject)
		})
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(testUsuario(models.RolTrabajador), testSecret, testTokenDuration)
	require.NoError(t, err)

	_, err = ValidateToken(token, testWrongSecret)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	token, err := GenerateToken(testUsuario(models.RolTrabajador), testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, testSecret)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("ni.siquiera.jwt", testSecret)
	assert.Error(t, err)
}

func TestRefreshToken_Roundtrip(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateRefreshToken(userID, testSecret, testTokenDuration)
	require.NoError(t, err)

	claims, err := ValidateRefreshToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "refresh", claims.Subject)
}

func TestTokenSubjectsAreNotInterchangeable(t *testing.T) {
	usuario := testUsuario(models.RolTrabajador)

	access, err := GenerateToken(usuario, testSecret, testTokenDuration)
	require.NoError(t, err)
	refresh, err := GenerateRefreshToken(usuario.ID, testSecret, testTokenDuration)
	require.NoError(t, err)

	_, err = ValidateRefreshToken(access, testSecret)
	assert.Error(t, err, "Access token must not pass refresh validation")
	_, err = ValidateToken(refresh, testSecret)
	assert.Error(t, err, "Refresh token must not pass access validation")
}
