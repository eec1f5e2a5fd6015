package dbx

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// PgCode returns the SQLSTATE of a PostgreSQL error, or "".
func PgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsUniqueViolation reports a unique constraint failure (23505).
func IsUniqueViolation(err error) bool {
	return PgCode(err) == "23505"
}

// IsUnavailable reports whether err means the database could not be reached:
// dial and socket failures, dropped connections, deadlines and the
// connection-exception / shutdown SQLSTATE classes.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	code := PgCode(err)
	return strings.HasPrefix(code, "08") || code == "57P01" || code == "57P03"
}
