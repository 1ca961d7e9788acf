package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx. Repository functions accept
// it so services can compose several of them inside one transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx executes fn within a database transaction. It handles begin,
// rollback on error, and commit on success.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			log.Printf("failed to rollback transaction: %v", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// nullIntToPtr converts sql.NullInt64 to *int.
func nullIntToPtr(nv sql.NullInt64) *int {
	if nv.Valid {
		val := int(nv.Int64)
		return &val
	}
	return nil
}

// nullStringToPtr converts sql.NullString to *string.
func nullStringToPtr(ns sql.NullString) *string {
	if ns.Valid {
		return &ns.String
	}
	return nil
}

// nullStringToString converts sql.NullString to string, empty when NULL.
func nullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// nullTimeToTime converts sql.NullTime to time.Time, zero when NULL.
func nullTimeToTime(nt sql.NullTime) time.Time {
	if nt.Valid {
		return nt.Time
	}
	return time.Time{}
}

// ptrToNullInt converts *int to a driver-friendly value.
func ptrToNullInt(p *int) any {
	if p == nil {
		return nil
	}
	return int64(*p)
}

// ptrToNullString converts *string to a driver-friendly value.
func ptrToNullString(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
