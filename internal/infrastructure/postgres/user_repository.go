package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tiendas-ops/internal/domain/entity"
	"github.com/jhoicas/Tiendas-ops/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `user_id, name, password_hash, latitude, longitude, type`

// Create persiste un nuevo usuario y asigna su ID.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (name, password_hash, latitude, longitude, type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING user_id`
	err := r.q.QueryRow(ctx, query,
		user.Name, user.PasswordHash, user.Latitude, user.Longitude, user.Role.String(),
	).Scan(&user.ID)
	return storageErr("insert user", err)
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	u, err := scanUser(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, storageErr("get user", err)
	}
	return u, nil
}

// ListByName devuelve las cuentas con ese nombre exacto.
func (r *UserRepo) ListByName(ctx context.Context, name string) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE name = $1 ORDER BY user_id`
	return r.list(ctx, "list users by name", query, name)
}

// Update reemplaza nombre, hash, ubicación y rol del usuario.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET name = $1, password_hash = $2, latitude = $3, longitude = $4, type = $5
		WHERE user_id = $6`
	_, err := r.q.Exec(ctx, query,
		user.Name, user.PasswordHash, user.Latitude, user.Longitude, user.Role.String(), user.ID,
	)
	return storageErr("update user", err)
}

// List devuelve todos los usuarios por ID ascendente.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY user_id ASC`
	return r.list(ctx, "list users", query)
}

func (r *UserRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, storageErr(op, err)
		}
		list = append(list, u)
	}
	return list, storageErr(op, rows.Err())
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var role string
	if err := row.Scan(&u.ID, &u.Name, &u.PasswordHash, &u.Latitude, &u.Longitude, &role); err != nil {
		return nil, err
	}
	parsed, err := entity.ParseRole(role)
	if err != nil {
		return nil, err
	}
	u.Role = parsed
	return &u, nil
}
