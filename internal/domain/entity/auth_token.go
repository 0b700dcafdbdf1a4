package entity

import "time"

// AuthToken es el registro de un token de acceso emitido en login.
// El logout borra todas las filas del usuario; un token sin fila está revocado.
type AuthToken struct {
	ID       string
	UserID   string
	IssuedAt time.Time
}
