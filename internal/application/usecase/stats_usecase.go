package usecase

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// StatsUseCase agregados de usuarios por rol (solo admin en la capa HTTP).
type StatsUseCase struct {
	repo repository.StatsRepository
}

// NewStatsUseCase construye el caso de uso.
func NewStatsUseCase(repo repository.StatsRepository) *StatsUseCase {
	return &StatsUseCase{repo: repo}
}

// GetRoleStatistics conteos frescos en cada petición, sin caché.
func (uc *StatsUseCase) GetRoleStatistics(ctx context.Context) (*dto.StatisticsResponse, error) {
	counts, err := uc.repo.CountUsersByRole(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.StatisticsResponse{
		TotalUsers:   counts.Total,
		AdminCount:   counts.Admin,
		ManagerCount: counts.Manager,
		UserCount:    counts.User,
	}, nil
}
