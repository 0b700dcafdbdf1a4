package dto

// ErrorResponse cuerpo de error HTTP genérico.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse cuerpo de respuesta con solo un mensaje (login, logout, dashboard).
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidationErrors acumula mensajes por campo, al estilo del validador del frontend:
// {"errors": {"email": ["email is required"]}}.
type ValidationErrors struct {
	Errors map[string][]string `json:"errors"`
}

// NewValidationErrors construye el acumulador vacío.
func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{Errors: map[string][]string{}}
}

// Add agrega un mensaje para un campo.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors[field] = append(v.Errors[field], message)
}

// HasErrors indica si hay al menos un mensaje acumulado.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}
