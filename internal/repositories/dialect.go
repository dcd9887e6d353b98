package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

// Dialect captures the few places where MySQL and PostgreSQL disagree.
// Queries are written with ? placeholders; SQLite shares the MySQL flavour.
type Dialect int

const (
	DialectMySQL Dialect = iota
	DialectPostgres
)

func DialectFor(driver string) Dialect {
	switch strings.ToLower(driver) {
	case "pgx", "postgres", "postgresql":
		return DialectPostgres
	}
	return DialectMySQL
}

// Rebind rewrites ? placeholders to $1..$n for PostgreSQL.
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// insertID runs an INSERT and returns the generated id column.
func (d Dialect) insertID(ctx context.Context, db execQuerier, query string, args ...interface{}) (int, error) {
	if d == DialectPostgres {
		var id int64
		if err := db.QueryRowContext(ctx, d.Rebind(query)+" RETURNING id", args...).Scan(&id); err != nil {
			return 0, err
		}
		return int(id), nil
	}
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (d Dialect) exec(ctx context.Context, db execQuerier, query string, args ...interface{}) (int64, error) {
	res, err := db.ExecContext(ctx, d.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// IsUniqueViolation reports duplicate key errors from any supported driver.
func IsUniqueViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsForeignKeyViolation reports a reference to a missing parent row.
func IsForeignKeyViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1452
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
