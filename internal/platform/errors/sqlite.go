package errors

// SQLite and connectivity helpers shared by the sql backends

import (
	"context"
	"database/sql"
	"database/sql/driver"
	stderrs "errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ExtractSQLiteError returns (*sqlite.Error, true) if the chain holds a modernc sqlite error
func ExtractSQLiteError(err error) (*sqlite.Error, bool) {
	var se *sqlite.Error
	if stderrs.As(err, &se) {
		return se, true
	}
	return nil, false
}

// primary strips the extended result code down to the primary one
func primary(code int) int { return code & 0xff }

// IsSQLiteUnique reports whether err is a sqlite unique or primary key violation
func IsSQLiteUnique(err error) bool {
	se, ok := ExtractSQLiteError(err)
	if !ok {
		return false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return false
}

// IsSQLiteBusy reports whether err is a sqlite busy or locked condition
func IsSQLiteBusy(err error) bool {
	se, ok := ExtractSQLiteError(err)
	if !ok {
		return false
	}
	switch primary(se.Code()) {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return true
	}
	return false
}

// IsSQLiteCantOpen reports whether sqlite failed to open its database file
func IsSQLiteCantOpen(err error) bool {
	se, ok := ExtractSQLiteError(err)
	return ok && primary(se.Code()) == sqlite3.SQLITE_CANTOPEN
}

// IsStorageUnreachable reports whether err means the backing store could not be reached at all
// as opposed to a store that answered with an error
func IsStorageUnreachable(err error) bool {
	if err == nil {
		return false
	}
	if stderrs.Is(err, context.Canceled) {
		return false
	}
	var ce *pgconn.ConnectError
	if stderrs.As(err, &ce) {
		return true
	}
	if IsConnectionUnavailable(err) || IsSQLiteCantOpen(err) {
		return true
	}
	if stderrs.Is(err, driver.ErrBadConn) || stderrs.Is(err, sql.ErrConnDone) || stderrs.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	if stderrs.As(err, &ne) {
		return true
	}
	s := strings.ToLower(Root(err).Error())
	return strings.Contains(s, "closed pool") || strings.Contains(s, "database is closed")
}

// FromStorage classifies a backend error for op
// unreachable or still busy stores become StorageUnavailable, postgres errors keep their mapped code, the rest are DB errors
func FromStorage(err error, op string) error {
	if err == nil {
		return nil
	}
	if IsStorageUnreachable(err) {
		return StorageUnavailable(err, op)
	}
	if _, ok := ExtractPgError(err); ok {
		return WithOp(FromPostgres(err, op+" failed"), op)
	}
	if IsSQLiteBusy(err) {
		return StorageUnavailable(err, op)
	}
	return WithOp(Wrap(err, ErrorCodeDB, op+" failed"), op)
}
