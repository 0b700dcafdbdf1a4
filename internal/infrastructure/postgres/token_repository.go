package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.TokenRepository = (*TokenRepo)(nil)

// TokenRepo implementación del puerto TokenRepository sobre PostgreSQL.
type TokenRepo struct {
	pool *pgxpool.Pool
}

// NewTokenRepository construye el adaptador de persistencia para tokens de acceso.
func NewTokenRepository(pool *pgxpool.Pool) *TokenRepo {
	return &TokenRepo{pool: pool}
}

// Create registra un token emitido en login.
func (r *TokenRepo) Create(ctx context.Context, token *entity.AuthToken) error {
	query := `INSERT INTO auth_tokens (id, user_id, issued_at) VALUES ($1, $2, $3)`
	_, err := r.pool.Exec(ctx, query, token.ID, token.UserID, token.IssuedAt)
	if err != nil {
		return fmt.Errorf("insert auth token: %w", err)
	}
	return nil
}

// Exists indica si el token sigue vigente (no revocado).
func (r *TokenRepo) Exists(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM auth_tokens WHERE id = $1)`, id).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check auth token: %w", err)
	}
	return ok, nil
}

// DeleteByUser revoca todos los tokens del usuario (semántica de logout).
func (r *TokenRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM auth_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("revoke auth tokens: %w", err)
	}
	return nil
}
