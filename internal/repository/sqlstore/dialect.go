package sqlstore

import (
	"strconv"
	"strings"

	"github.com/sakif/questions-db/internal/config"
)

// dialect holds the few things that differ between SQLite and PostgreSQL:
// the database/sql driver name, placeholder style and DDL.
type dialect struct {
	name     string // config driver name
	driver   string // database/sql driver name
	numbered bool   // $1, $2 placeholders instead of ?
	schema   []string
}

func dialectFor(driver string) dialect {
	if driver == config.DriverPostgres {
		return dialect{
			name:     config.DriverPostgres,
			driver:   "pgx",
			numbered: true,
			schema:   postgresSchema,
		}
	}
	return dialect{
		name:   config.DriverSQLite,
		driver: "sqlite",
		schema: sqliteSchema,
	}
}

// rebind rewrites ? placeholders as $n for dialects that need it. Queries in
// this package never contain a literal question mark, so a plain scan is
// enough.
func (d dialect) rebind(query string) string {
	if !d.numbered || !strings.Contains(query, "?") {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}
