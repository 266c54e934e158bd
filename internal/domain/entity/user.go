package entity

// User representa una identidad del sistema (cliente, gerente o administrador).
type User struct {
	ID           int64
	Name         string
	PasswordHash string // bcrypt hash, nunca plano después de persistir
	Latitude     float64
	Longitude    float64
	Role         Role
}

// Location devuelve la ubicación del usuario.
func (u *User) Location() Coordinate {
	return Coordinate{Latitude: u.Latitude, Longitude: u.Longitude}
}
