package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// isUniqueViolation detecta choques de llave primaria o índice único.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

// storageErr traduce un error del driver a domain.ErrStorage sin exponer sus tipos.
func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStorage, op, err)
}

// table tabla y columna llave de cada tipo de entidad.
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

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
