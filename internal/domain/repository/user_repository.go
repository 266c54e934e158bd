package repository

import (
	"context"

	"github.com/jhoicas/Tiendas-ops/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Las búsquedas devuelven (nil, nil) cuando no hay filas.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	// ListByName devuelve todas las cuentas con ese nombre (el nombre no es único).
	ListByName(ctx context.Context, name string) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// List devuelve todos los usuarios ordenados por ID ascendente.
	List(ctx context.Context) ([]*entity.User, error)
}
