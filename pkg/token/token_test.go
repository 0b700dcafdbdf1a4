package token_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/pkg/token"
)

const (
	testSecret  = "test-secret-key-for-unit-tests"
	testTokenID = "00000000-0000-0000-0000-0000000000aa"
	testUserID  = "00000000-0000-0000-0000-000000000001"
	testIssuer  = "almacen-api-test"
)

func TestToken_GenerateAndParse(t *testing.T) {
	tok, err := token.Generate(testSecret, testTokenID, testUserID, "manager", testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	tokenID, userID, role, err := token.Parse(testSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testTokenID, tokenID)
	assert.Equal(t, testUserID, userID)
	assert.Equal(t, "manager", role)
}

// Con expMinutes <= 0 el token no lleva claim de vencimiento y sigue siendo válido
// mucho después de su emisión: solo la revocación lo invalida.
func TestToken_SinVencimiento(t *testing.T) {
	tok, err := token.Generate(testSecret, testTokenID, testUserID, "admin", testIssuer, 0)
	require.NoError(t, err)

	_, _, role, err := token.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "admin", role)
}

func TestToken_Expirado_RetornaError(t *testing.T) {
	// Token firmado con el mismo secret pero vencido hace una hora.
	claims := token.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   testUserID,
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
		},
		TokenID: testTokenID,
		UserID:  testUserID,
		Role:    "admin",
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, _, _, err = token.Parse(testSecret, signed)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestToken_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := token.Generate(testSecret, testTokenID, testUserID, "admin", testIssuer, 60)
	require.NoError(t, err)

	_, _, _, err = token.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestToken_SecretVacio_RetornaError(t *testing.T) {
	_, err := token.Generate("", testTokenID, testUserID, "admin", testIssuer, 60)
	assert.Error(t, err)
}
