package database

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jmoiron/sqlx"
)

var dollarPlaceholder = regexp.MustCompile(`\$\d+`)

// ConvertPlaceholders converts SQL placeholders to the format required by the
// given driver. All queries in the codebase are written with ? placeholders;
// this is the only function that should rewrite them.
//
// IMPORTANT: Only ? placeholders are allowed. Using $N placeholders panics.
//   - PostgreSQL: ? -> $1, $2, ...
//   - MySQL, SQLite: ? passed through as-is
func ConvertPlaceholders(driver, query string) string {
	if dollarPlaceholder.MatchString(query) {
		panic(fmt.Sprintf("ConvertPlaceholders: $N placeholders are not allowed, use ?\nQuery: %s", query))
	}

	if driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	n := 1
	for _, c := range query {
		if c == '?' {
			fmt.Fprintf(&b, "$%d", n)
			n++
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

// InsertWithReturning executes an INSERT and returns the generated row id.
// PostgreSQL has no LastInsertId, so the query gains a RETURNING id clause
// there; MySQL and SQLite use the driver's LastInsertId.
func InsertWithReturning(ctx context.Context, db *sqlx.DB, query string, args ...interface{}) (int64, error) {
	if db.DriverName() == DriverPostgres {
		var id int64
		q := ConvertPlaceholders(DriverPostgres, query) + " RETURNING id"
		if err := db.QueryRowContext(ctx, q, args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}
