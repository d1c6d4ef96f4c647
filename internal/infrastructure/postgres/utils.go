package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// Querier lo cumplen *pgxpool.Pool y pgx.Tx; los repositorios funcionan con ambos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// storageErr traduce un error del driver a domain.ErrStorage sin exponer sus tipos.
func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStorage, op, err)
}

// table tabla y columna llave de cada tipo de entidad. Valores fijos, seguros para interpolar.
func table(kind entity.Kind) (name, key string, err error) {
	switch kind {
	case entity.KindProduct:
		return "products", "product_id", nil
	case entity.KindLocation:
		return "locations", "location_id", nil
	case entity.KindCustomer:
		return "customers", "customer_id", nil
	}
	return "", "", fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, kind)
}

// nullable convierte "" en NULL para las ubicaciones opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
