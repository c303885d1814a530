package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq" // PostgreSQL driver cho database/sql
)

// schema được apply theo thứ tự; mọi statement đều idempotent
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		email         VARCHAR(255) NOT NULL UNIQUE,
		first_name    VARCHAR(100) NOT NULL,
		last_name     VARCHAR(100) NOT NULL,
		phone_number  VARCHAR(30)  NOT NULL DEFAULT '',
		address       VARCHAR(255) NOT NULL DEFAULT '',
		password_hash TEXT         NOT NULL,
		is_admin      BOOLEAN      NOT NULL DEFAULT FALSE,
		created_at    TIMESTAMPTZ  NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS properties (
		id         BIGSERIAL PRIMARY KEY,
		owner_id   BIGINT        NOT NULL REFERENCES users (id),
		price      NUMERIC(14,2) NOT NULL CHECK (price >= 0),
		state      VARCHAR(100)  NOT NULL,
		city       VARCHAR(100)  NOT NULL,
		address    VARCHAR(255)  NOT NULL,
		type       VARCHAR(100)  NOT NULL,
		image_url  TEXT          NOT NULL,
		image_id   TEXT          NOT NULL DEFAULT '',
		status     VARCHAR(20)   NOT NULL DEFAULT 'available'
		           CHECK (status IN ('available', 'sold')),
		created_at TIMESTAMPTZ   NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ   NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_properties_type ON properties (type)`,
	`CREATE INDEX IF NOT EXISTS idx_properties_owner_id ON properties (owner_id)`,
}

// Migrate tạo các bảng cần thiết nếu chưa có.
// Chạy qua database/sql + lib/pq, tách biệt khỏi pgx pool của application.
func Migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping migration connection: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for i, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration step %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}

	log.Printf("[DATABASE] Schema up to date (%d statements)", len(schema))
	return nil
}
