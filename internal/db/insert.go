package db

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"
)

// InsertConfig describes a single-row, conflict-tolerant insert.
type InsertConfig struct {
	Table     string            // target table (e.g., "floors" or "public.floors")
	Columns   []string          // inserted columns, in argument order
	Exprs     map[string]string // optional placeholder wrappers, e.g. {"location": "ST_GeomFromEWKB(%s)"}
	Returning []string          // columns to return; empty = no RETURNING clause
}

// InsertIgnoreSQL builds INSERT ... VALUES ($1..$n) ON CONFLICT DO NOTHING.
// Rows whose natural key already exists are skipped rather than failing.
func InsertIgnoreSQL(cfg InsertConfig) (string, error) {
	if cfg.Table == "" {
		return "", eris.New("db: insert: no table specified")
	}
	if len(cfg.Columns) == 0 {
		return "", eris.New("db: insert: no columns specified")
	}

	placeholders := make([]string, len(cfg.Columns))
	for i, col := range cfg.Columns {
		ph := fmt.Sprintf("$%d", i+1)
		if wrap, ok := cfg.Exprs[col]; ok {
			ph = fmt.Sprintf(wrap, ph)
		}
		placeholders[i] = ph
	}

	sql := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT DO NOTHING",
		sanitizeTable(cfg.Table),
		quoteAndJoin(cfg.Columns),
		strings.Join(placeholders, ", "),
	)
	if len(cfg.Returning) > 0 {
		sql += " RETURNING " + quoteAndJoin(cfg.Returning)
	}
	return sql, nil
}

// MustInsertIgnoreSQL is InsertIgnoreSQL for static configs; it panics on error.
func MustInsertIgnoreSQL(cfg InsertConfig) string {
	sql, err := InsertIgnoreSQL(cfg)
	if err != nil {
		panic(err)
	}
	return sql
}

// sanitizeTable handles schema-qualified table names like "public.buildings".
func sanitizeTable(table string) string {
	parts := strings.SplitN(table, ".", 2)
	if len(parts) == 2 {
		return pgx.Identifier{parts[0], parts[1]}.Sanitize()
	}
	return pgx.Identifier{table}.Sanitize()
}

// quoteAndJoin quotes each column name and joins with commas.
func quoteAndJoin(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = pgx.Identifier{c}.Sanitize()
	}
	return strings.Join(quoted, ", ")
}
