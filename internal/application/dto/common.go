package dto

// Límites por defecto de los listados "recientes" y de los rankings.
const (
	DefaultRecentLimit = 5
	DefaultTopLimit    = 5
)

// NormalizeLimit aplica el valor por defecto si limit no es positivo.
func NormalizeLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return limit
}

// ErrorResponse mensaje de error mostrado al operador.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
