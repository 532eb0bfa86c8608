package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	stderrors "errors"
	"net"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/spot-discovery/internal/pkg/errors"
)

// SQLSTATE codes the repositories react to
const (
	sqlStateUniqueViolation = "23505"
	sqlStateQueryCanceled   = "57014"
	sqlStateClassConnection = "08"
)

const (
	// metersPerKm - для ST_DWithin по geography
	metersPerKm = 1000.0
	srid4326    = 4326
)

// boundedContext applies the per-call store timeout.
func boundedContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// mapError translates driver errors into tagged AppErrors. notFound is
// returned for sql.ErrNoRows.
func mapError(err error, notFound *errors.AppError) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.As(err); ok {
		return err
	}

	if stderrors.Is(err, sql.ErrNoRows) {
		if notFound != nil {
			return notFound
		}
		return errors.ErrNotFound
	}

	if isUnavailable(err) {
		return errors.ErrStoreUnavailable.Wrap(err)
	}

	if code := sqlState(err); code != "" {
		switch {
		case code == sqlStateUniqueViolation:
			return errors.ErrConflict.Wrap(err)
		case code == sqlStateQueryCanceled, strings.HasPrefix(code, sqlStateClassConnection):
			return errors.ErrStoreUnavailable.Wrap(err)
		}
	}

	return errors.ErrInternalServer.Wrap(err)
}

func isUnavailable(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) ||
		stderrors.Is(err, context.Canceled) ||
		stderrors.Is(err, sql.ErrConnDone) ||
		stderrors.Is(err, driver.ErrBadConn) {
		return true
	}
	if pgconn.Timeout(err) {
		return true
	}
	var connErr *pgconn.ConnectError
	if stderrors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	return stderrors.As(err, &netErr)
}

// sqlState extracts the SQLSTATE from either driver's error type.
func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return sqlState(err) == sqlStateUniqueViolation
}
