// Package repository implements SQL data access for the salon schema.  This
// file defines sentinel errors shared by the repositories.  Higher layers
// (the scheduling engine and the HTTP handlers) match on them with
// errors.Is to choose a response, so repositories must translate driver
// errors into these values instead of leaking *mysql.MySQLError upward.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrDuplicate is returned when an insert violates a unique key, e.g. a
// staff phone already in use, a taken admin username, or a concurrent
// booking losing the race on the scheduled-slot unique key.  Handlers
// translate it into HTTP 409.
var ErrDuplicate = errors.New("duplicate entry")

// ErrForeignKey is returned when an insert or update references a row that
// does not exist (unknown customer, staff or service id).
var ErrForeignKey = errors.New("referenced row does not exist")

// ErrInUse is returned when a delete is blocked because appointments still
// reference the row.  Handlers translate it into HTTP 409.
var ErrInUse = errors.New("row is still referenced")

// ErrNotFound is returned by update and delete operations that matched no
// rows.  Handlers translate it into HTTP 404.
var ErrNotFound = errors.New("not found")

// MySQL server error numbers for the conditions above.
const (
	mysqlErrDupEntry        = 1062
	mysqlErrRowIsReferenced = 1451
	mysqlErrNoReferencedRow = 1452
)

// translateMySQL maps driver errors onto the package sentinels, passing
// everything else through untouched.
func translateMySQL(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlErrDupEntry:
			return ErrDuplicate
		case mysqlErrRowIsReferenced:
			return ErrInUse
		case mysqlErrNoReferencedRow:
			return ErrForeignKey
		}
	}
	return err
}
