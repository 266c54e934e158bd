package dto

// CreateAccountRequest entrada para crear una cuenta (texto tal como lo escribe el operador).
// La cuenta se crea siempre con rol customer.
type CreateAccountRequest struct {
	Name      string `json:"name"`
	Password  string `json:"password"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// UpdateUserRequest entrada para actualizar un usuario. Los campos vacíos no se modifican.
// Role solo lo puede cambiar un admin.
type UpdateUserRequest struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name,omitempty"`
	Password  string `json:"password,omitempty"`
	Latitude  string `json:"latitude,omitempty"`
	Longitude string `json:"longitude,omitempty"`
	Role      string `json:"role,omitempty"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Role      string  `json:"role"`
}
