package postgres

import (
	"context"
	"fmt"
)

// schema tablas del ledger. Sin llaves foráneas: borrar un producto o ubicación referenciado
// deja los movimientos con el identificador colgando, y eso es válido.
const schema = `
CREATE TABLE IF NOT EXISTS products (
	product_id   VARCHAR(200) PRIMARY KEY,
	date_created TIMESTAMPTZ  NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS locations (
	location_id  VARCHAR(200) PRIMARY KEY,
	date_created TIMESTAMPTZ  NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS customers (
	customer_id  VARCHAR(200) PRIMARY KEY,
	date_created TIMESTAMPTZ  NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS product_movements (
	movement_id   BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	product_id    VARCHAR(200) NOT NULL,
	category      TEXT         NOT NULL DEFAULT '',
	from_location VARCHAR(200),
	to_location   VARCHAR(200),
	movement_time TIMESTAMPTZ  NOT NULL DEFAULT now()
);

-- seq desempata date_created con el orden de inserción.
ALTER TABLE products ADD COLUMN IF NOT EXISTS seq BIGSERIAL;
ALTER TABLE locations ADD COLUMN IF NOT EXISTS seq BIGSERIAL;
ALTER TABLE customers ADD COLUMN IF NOT EXISTS seq BIGSERIAL;

CREATE INDEX IF NOT EXISTS idx_product_movements_product ON product_movements (product_id, movement_id);
CREATE INDEX IF NOT EXISTS idx_product_movements_time ON product_movements (movement_time, movement_id);
`

// EnsureSchema crea las tablas si no existen. No es una herramienta de migraciones.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("aplicar esquema: %w", err)
	}
	return nil
}
