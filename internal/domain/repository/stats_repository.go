package repository

import "context"

// RoleCounts es el agregado de usuarios por rol.
type RoleCounts struct {
	Total   int
	Admin   int
	Manager int
	User    int
}

// StatsRepository define el puerto de consultas agregadas sobre usuarios.
type StatsRepository interface {
	// CountUsersByRole se calcula fresco en cada petición, sin caché.
	CountUsersByRole(ctx context.Context) (*RoleCounts, error)
}
