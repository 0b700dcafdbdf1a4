package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// TokenID identifica la fila en auth_tokens: si la fila no existe el token está revocado.
// Role viaja en el token para que RequireRole decida sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	TokenID string `json:"token_id"`
	UserID  string `json:"user_id"`
	Role    string `json:"role"` // "admin" | "manager" | "user"
}

// Generate genera un token firmado que incluye tokenID, userID y role.
// Con expMinutes <= 0 el token no lleva vencimiento: solo lo invalida la revocación.
func Generate(secret, tokenID, userID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("token: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuer,
			Subject:  userID,
			IssuedAt: jwt.NewNumericDate(now),
		},
		TokenID: tokenID,
		UserID:  userID,
		Role:    role,
	}
	if expMinutes > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute))
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Parse valida la firma del token y devuelve tokenID, userID y role.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (tokenID, userID, role string, err error) {
	if secret == "" {
		return "", "", "", fmt.Errorf("token: secret vacío")
	}
	t, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", "", err
	}
	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return "", "", "", fmt.Errorf("claims inválidos")
	}
	return claims.TokenID, claims.UserID, claims.Role, nil
}
