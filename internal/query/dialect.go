package query

import "fmt"

// Dialect supplies the bind placeholder syntax of a SQL flavor.
type Dialect interface {
	// Placeholder returns the placeholder for the 1-based argument index.
	Placeholder(index int) string
}

// PostgresDialect uses $1, $2, ...
type PostgresDialect struct{}

func (PostgresDialect) Placeholder(index int) string { return fmt.Sprintf("$%d", index) }

// MySQLDialect uses ? for every argument.
type MySQLDialect struct{}

func (MySQLDialect) Placeholder(int) string { return "?" }

var (
	Postgres Dialect = PostgresDialect{}
	MySQL    Dialect = MySQLDialect{}
)

// DialectFor maps a database/sql driver name to its dialect.
func DialectFor(driverName string) Dialect {
	switch driverName {
	case "mysql":
		return MySQL
	default: // pgx, postgres
		return Postgres
	}
}
