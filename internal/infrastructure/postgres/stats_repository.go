package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas agregadas sobre la tabla de usuarios.
type StatsRepo struct {
	pool *pgxpool.Pool
}

// NewStatsRepository construye el adaptador de estadísticas.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

// CountUsersByRole agrupa los usuarios por rol en una sola consulta.
func (r *StatsRepo) CountUsersByRole(ctx context.Context) (*repository.RoleCounts, error) {
	rows, err := r.pool.Query(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role`)
	if err != nil {
		return nil, fmt.Errorf("count users by role: %w", err)
	}
	defer rows.Close()

	var counts repository.RoleCounts
	for rows.Next() {
		var role string
		var n int
		if err := rows.Scan(&role, &n); err != nil {
			return nil, fmt.Errorf("scan role count: %w", err)
		}
		counts.Total += n
		switch role {
		case entity.RoleAdmin:
			counts.Admin = n
		case entity.RoleManager:
			counts.Manager = n
		case entity.RoleUser:
			counts.User = n
		}
	}
	return &counts, rows.Err()
}
