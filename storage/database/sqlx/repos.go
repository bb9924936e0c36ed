// Package sqlxrepos implements the data access repositories on PostgreSQL
// using hand-written SQL through sqlx.
package sqlxrepos

import (
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/starville/academy/core"
)

// ext resolves the executor for a call. Services may hand their own
// executor (eg. an open transaction) via the variadic exec argument;
// it must be sqlx-aware (*sqlx.Tx or *sqlx.DB).
func ext(db *sqlx.DB, svcExec []core.DBExecutor) sqlx.ExtContext {
	if len(svcExec) > 0 {
		if e, ok := svcExec[0].(sqlx.ExtContext); ok {
			return e
		}
	}
	return db
}

func orderBy(ordering []core.DBOrdering) string {
	if len(ordering) == 0 {
		return ""
	}
	orderList := make([]string, 0, len(ordering))
	for _, ord := range ordering {
		orderList = append(orderList, ord.String())
	}
	return " ORDER BY " + strings.Join(orderList, ", ")
}

// trapNoRowsErr maps psql "no rows" err to the domain's not-found error.
func trapNoRowsErr(err, notFound error, msg string) error {
	if err == sql.ErrNoRows {
		return notFound
	}
	return errors.Wrap(err, msg)
}

func rowsAffected(res sql.Result, msg string) (int, error) {
	cnt, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, msg)
	}
	return int(cnt), nil
}
