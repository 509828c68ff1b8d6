// Package postgres implements the service store interfaces over a pgx
// connection pool.
package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema string

// Migrate applies the schema. Every statement is IF NOT EXISTS, so it is
// safe to run on every start.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
