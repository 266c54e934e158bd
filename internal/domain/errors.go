package domain

import (
	"errors"
	"fmt"
)

// Categorías de error. Cada error concreto envuelve una de ellas para que la capa
// de interfaz decida cómo reportarlo (errors.Is(err, domain.ErrValidation), etc.).
var (
	ErrValidation = errors.New("entrada inválida")
	ErrAuth       = errors.New("no autorizado")
	ErrNotFound   = errors.New("recurso no encontrado")
	ErrConflict   = errors.New("conflicto con el estado actual")
	ErrStorage    = errors.New("error de almacenamiento")
)

// Errores de dominio (sin dependencias externas).
var (
	ErrEmptyInput         = fmt.Errorf("%w: campo vacío", ErrValidation)
	ErrWeakPassword       = fmt.Errorf("%w: la contraseña debe tener entre 5 y 11 caracteres, una mayúscula, un número y un carácter especial", ErrValidation)
	ErrPasswordEqualsName = fmt.Errorf("%w: la contraseña no puede ser igual al nombre", ErrValidation)
	ErrOutOfRange         = fmt.Errorf("%w: valor fuera de rango (0, 100)", ErrValidation)
	ErrInvalidFormat      = fmt.Errorf("%w: formato inválido", ErrValidation)
	ErrNoChangeRequested  = fmt.Errorf("%w: no hay cambios que aplicar", ErrValidation)

	ErrInvalidCredentials = fmt.Errorf("%w: credenciales inválidas", ErrAuth)
	ErrDuplicateUser      = fmt.Errorf("%w: el usuario ya existe", ErrAuth)
	ErrUnauthorized       = fmt.Errorf("%w: operación no permitida para el rol", ErrAuth)
	ErrNotStoreOwner      = fmt.Errorf("%w: no es el gerente de esta tienda", ErrAuth)
	ErrNoManagedStores    = fmt.Errorf("%w: el gerente no administra ninguna tienda", ErrAuth)
	ErrSessionExpired     = fmt.Errorf("%w: sesión inválida o expirada", ErrAuth)

	ErrStoreNotFound   = fmt.Errorf("%w: la tienda no existe", ErrNotFound)
	ErrProductNotFound = fmt.Errorf("%w: producto no encontrado en la tienda", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("%w: usuario no encontrado", ErrNotFound)

	ErrInsufficientStock = fmt.Errorf("%w: stock insuficiente", ErrConflict)
	ErrManagerOwnsStores = fmt.Errorf("%w: el gerente aún administra tiendas", ErrConflict)
)

// StorageError envuelve un fallo del motor de persistencia con la operación que lo produjo.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrStorage) sin perder la causa original.
func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// NewStorageError construye un StorageError; devuelve nil si err es nil.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// Kind clasifica un error para reportarlo al operador.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindAuth
	KindNotFound
	KindConflict
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// KindOf devuelve la categoría de err (KindUnknown si no envuelve ninguna).
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrAuth):
		return KindAuth
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrStorage):
		return KindStorage
	default:
		return KindUnknown
	}
}
