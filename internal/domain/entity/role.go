package entity

import (
	"fmt"
	"strings"
)

// Role rol de una identidad. Variante cerrada: Customer, Manager o Admin.
type Role int

// Roles válidos. El valor cero no es un rol válido.
const (
	RoleCustomer Role = iota + 1
	RoleManager
	RoleAdmin
)

// Roles lista todos los roles válidos en orden estable.
var Roles = []Role{RoleCustomer, RoleManager, RoleAdmin}

// String devuelve el nombre persistido del rol (columna users.type).
func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "customer"
	case RoleManager:
		return "manager"
	case RoleAdmin:
		return "admin"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Valid indica si r es uno de los roles conocidos.
func (r Role) Valid() bool {
	return r >= RoleCustomer && r <= RoleAdmin
}

// ParseRole convierte el texto persistido en un Role (sin distinguir mayúsculas ni espacios).
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "customer":
		return RoleCustomer, nil
	case "manager":
		return RoleManager, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return 0, fmt.Errorf("rol desconocido %q", s)
	}
}
