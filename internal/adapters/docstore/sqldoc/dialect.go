package sqldoc

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect agrupa lo que cambia entre Postgres y SQLite.
// Las queries se escriben con "?" y se re-numeran para Postgres.
type Dialect struct {
	Name          string
	driver        string
	goose         string
	migrationsDir string

	selectData string // expresión de la columna data en SELECT
	insertData string // placeholder de data en INSERT/UPDATE
	lockRow    string // sufijo para SELECT dentro de una tx

	// args: field, value
	jsonEquals string
	// args: field, next, updatedAt, path, field, expected
	casUpdate string
}

var (
	Postgres = Dialect{
		Name:          "postgres",
		driver:        "pgx",
		goose:         "postgres",
		migrationsDir: "migrations/postgres",
		selectData:    "data::text",
		insertData:    "?::jsonb",
		lockRow:       " FOR UPDATE",
		jsonEquals:    "data->>?::text = ?",
		casUpdate: `
			UPDATE documents
			SET data = jsonb_set(data, ARRAY[?::text], to_jsonb(?::bigint), true),
				updated_at = ?
			WHERE path = ? AND COALESCE((data->>?::text)::bigint, 0) = ?`,
	}

	SQLite = Dialect{
		Name:          "sqlite",
		driver:        "sqlite",
		goose:         "sqlite3",
		migrationsDir: "migrations/sqlite",
		selectData:    "data",
		insertData:    "?",
		lockRow:       "",
		jsonEquals:    "json_extract(data, '$.' || ?) = ?",
		casUpdate: `
			UPDATE documents
			SET data = json_set(data, '$.' || ?, ?),
				updated_at = ?
			WHERE path = ? AND COALESCE(json_extract(data, '$.' || ?), 0) = ?`,
	}
)

func DialectByName(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("sqldoc: unknown dialect %q", name)
	}
}

func (d Dialect) rebind(q string) string {
	if d.Name != Postgres.Name {
		return q
	}
	var sb strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			sb.WriteString("$")
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
