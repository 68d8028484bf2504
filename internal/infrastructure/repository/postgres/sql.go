package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/lib/pq"

	"github.com/gislobo/matchvault/internal/resolve"
)

const uniqueViolationCode = "23505"

// Queryer is the subset of sqlx operations the repositories use. Both
// *sqlx.DB and *sqlx.Tx satisfy it, so the same repository code runs
// against the shared handle and inside a transaction.
type Queryer interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// mapWriteErr marks Postgres unique violations as resolve.ErrConflict so
// callers can recover by re-resolving instead of failing the run.
func mapWriteErr(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
		return crerr.Mark(err, resolve.ErrConflict)
	}
	return err
}

// canonicalName collapses whitespace on an already-lowercased name so
// projections line up with the candidate generator's output.
func canonicalName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
