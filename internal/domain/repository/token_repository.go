package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// TokenRepository define el puerto de persistencia para los tokens de acceso.
type TokenRepository interface {
	Create(ctx context.Context, token *entity.AuthToken) error
	// Exists indica si el token sigue vigente (no revocado).
	Exists(ctx context.Context, id string) (bool, error)
	// DeleteByUser revoca todos los tokens del usuario (semántica de logout).
	DeleteByUser(ctx context.Context, userID string) error
}
