package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Tiendas-ops/internal/domain"
)

// Querier abstrae *pgxpool.Pool y pgx.Tx para que los repos funcionen dentro o fuera de una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	_ Querier = (*pgxpool.Pool)(nil)
	_ Querier = (pgx.Tx)(nil)
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasCode(err, "23505")
}

// isStockCheckViolation verifica si el error es la violación de CHECK (23514) sobre units_in_stock.
func isStockCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23514" && pgErr.ConstraintName == "product_units_in_stock_check"
	}
	return false
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

// storageErr traduce los errores del driver a errores de dominio.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if isStockCheckViolation(err) {
		return domain.ErrInsufficientStock
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s: registro duplicado", domain.ErrConflict, op)
	}
	return domain.NewStorageError(op, err)
}

// noRows indica ausencia de filas (los repos devuelven nil, nil en ese caso).
func noRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
