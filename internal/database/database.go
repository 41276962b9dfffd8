// Package database wraps the Postgres pool and holds all recipe queries.
package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema string

// Querier is the subset of pgxpool.Pool the queries use.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Database struct {
	db Querier
}

func NewDatabase(pool *pgxpool.Pool) *Database {
	return &Database{db: pool}
}

// NewWithQuerier builds a Database over any Querier. Used in tests.
func NewWithQuerier(q Querier) *Database {
	return &Database{db: q}
}

// EnsureSchema applies the schema to the database if the recipes table
// is not detected.
func (d *Database) EnsureSchema(ctx context.Context) error {
	exists, err := d.checkRecipesTableExists(ctx)
	if err != nil {
		return fmt.Errorf("ensuring schema exists: %w", err)
	}

	if exists {
		return nil
	}

	if _, err := d.db.Exec(ctx, schema); err != nil {
		return &StoreError{Op: "apply schema", Err: err}
	}

	return nil
}

func (d *Database) checkRecipesTableExists(ctx context.Context) (bool, error) {
	const q = `SELECT EXISTS (
		SELECT FROM information_schema.tables
		WHERE table_schema = 'public' AND table_name = 'recipes'
	)`

	var exists bool
	if err := d.db.QueryRow(ctx, q).Scan(&exists); err != nil {
		return false, &StoreError{Op: "check schema", Err: err}
	}
	return exists, nil
}
