package sqlxrepos

import (
	"context"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/trezcool/shule/core"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html
const uniqueViolation = "23505"

func getExec(repoExec core.DBExecutor, svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 {
		return svcExec[0]
	}
	return repoExec
}

// violatedConstraint returns the name of the unique constraint err violated, if any.
func violatedConstraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return pqErr.Constraint
	}
	return ""
}

// selectCtx runs query and scans all rows into dest, a pointer to a slice of
// db-tagged structs.
func selectCtx(ctx context.Context, exec core.DBExecutor, dest interface{}, query string, args ...interface{}) error {
	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	return sqlx.StructScan(rows, dest)
}

// existsCtx reports whether query (a SELECT EXISTS form) matched.
func existsCtx(ctx context.Context, exec core.DBExecutor, query string, args ...interface{}) (bool, error) {
	var exists bool
	err := exec.QueryRowContext(ctx, query, args...).Scan(&exists)
	return exists, err
}

// orderingClause renders an ORDER BY from the requested ordering, falling
// back to the given default.
func orderingClause(ordering []core.DBOrdering, dflt string) string {
	if len(ordering) == 0 {
		if dflt == "" {
			return ""
		}
		return " ORDER BY " + dflt
	}
	parts := make([]string, 0, len(ordering))
	for _, ord := range ordering {
		parts = append(parts, ord.String())
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

// rebind expands any `?`-style IN clauses fed slice args and converts the
// whole query to postgres placeholders. Queries in this package are written
// with `?` and rebound once, right before execution.
func rebind(query string, args []interface{}) (string, []interface{}, error) {
	q, expanded, err := sqlx.In(query, args...)
	if err != nil {
		return "", nil, err
	}
	return sqlx.Rebind(sqlx.DOLLAR, q), expanded, nil
}
