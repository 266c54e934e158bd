package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Tiendas-ops/internal/domain"
)

func TestStorageErr_Traduccion(t *testing.T) {
	stock := &pgconn.PgError{Code: "23514", ConstraintName: "product_units_in_stock_check"}
	assert.ErrorIs(t, storageErr("add product units", fmt.Errorf("exec: %w", stock)), domain.ErrInsufficientStock)

	otherCheck := &pgconn.PgError{Code: "23514", ConstraintName: "users_latitude_check"}
	err := storageErr("insert user", otherCheck)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.NotErrorIs(t, err, domain.ErrInsufficientStock)

	unique := &pgconn.PgError{Code: "23505"}
	assert.ErrorIs(t, storageErr("insert", unique), domain.ErrConflict)

	textual := storageErr("insert user", errors.New("timeout tras 23505 ms"))
	assert.NotErrorIs(t, textual, domain.ErrConflict)
	assert.ErrorIs(t, textual, domain.ErrStorage)

	plain := storageErr("get store", errors.New("connection reset"))
	assert.Equal(t, domain.KindStorage, domain.KindOf(plain))
	var se *domain.StorageError
	assert.True(t, errors.As(plain, &se))
	assert.Equal(t, "get store", se.Op)

	assert.NoError(t, storageErr("noop", nil))
}

func TestMigrationFiles_Embebidas(t *testing.T) {
	script, err := migrationFiles.ReadFile("migrations/001_schema.sql")
	assert.NoError(t, err)
	assert.Contains(t, string(script), "CHECK (units_in_stock >= 0)")
}
