package store

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

//go:embed schema.sql
var schemaSQL string

//go:embed drop.sql
var dropSQL string

// Execer is the subset of pgx used for DDL. Satisfied by *pgxpool.Pool,
// *pgx.Conn and pgx.Tx.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// CreateSchema creates the star-schema tables if they do not exist.
func CreateSchema(ctx context.Context, db Execer) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// DropSchema removes the star-schema tables and all their rows.
func DropSchema(ctx context.Context, db Execer) error {
	if _, err := db.Exec(ctx, dropSQL); err != nil {
		return fmt.Errorf("drop schema: %w", err)
	}
	return nil
}

// ResetSchema drops and recreates the tables.
func ResetSchema(ctx context.Context, db Execer) error {
	if err := DropSchema(ctx, db); err != nil {
		return err
	}
	return CreateSchema(ctx, db)
}
