package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaDDL define el esquema completo. Las FKs de products son RESTRICT:
// una categoría o proveedor referenciado no se puede borrar.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY,
	name          TEXT NOT NULL,
	username      TEXT NOT NULL UNIQUE,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL CHECK (role IN ('admin', 'manager', 'user')),
	image         TEXT NOT NULL DEFAULT 'no_image.jpg',
	status        SMALLINT NOT NULL DEFAULT 1,
	last_login    TIMESTAMPTZ,
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS categories (
	id          UUID PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS suppliers (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL UNIQUE,
	contact    TEXT,
	address    TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
	id           UUID PRIMARY KEY,
	name         TEXT NOT NULL,
	quantity     INTEGER NOT NULL CHECK (quantity >= 0),
	buy_price    NUMERIC(14,2) NOT NULL CHECK (buy_price >= 0),
	sale_price   NUMERIC(14,2) NOT NULL CHECK (sale_price >= 0),
	categorie_id UUID NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
	supplier_id  UUID NOT NULL REFERENCES suppliers(id) ON DELETE RESTRICT,
	date         DATE NOT NULL,
	file_name    TEXT,
	created_at   TIMESTAMPTZ NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_products_categorie_id ON products (categorie_id);
CREATE INDEX IF NOT EXISTS idx_products_supplier_id ON products (supplier_id);

CREATE TABLE IF NOT EXISTS auth_tokens (
	id        UUID PRIMARY KEY,
	user_id   UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	issued_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_auth_tokens_user_id ON auth_tokens (user_id);
`

// ApplySchema crea las tablas si no existen. Idempotente.
func ApplySchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("aplicar esquema: %w", err)
	}
	return nil
}
