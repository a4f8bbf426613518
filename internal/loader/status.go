package loader

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"github.com/scanpang/data-pipeline/internal/db"
)

// Counts reads the row count of every target table.
func Counts(ctx context.Context, pool db.Pool) (map[string]int64, error) {
	counts := make(map[string]int64, len(Tables))
	for _, t := range Tables {
		var n int64
		sql := "SELECT COUNT(*) FROM " + pgx.Identifier{t}.Sanitize()
		if err := pool.QueryRow(ctx, sql).Scan(&n); err != nil {
			return nil, eris.Wrapf(err, "loader: count %s", t)
		}
		counts[t] = n
	}
	return counts, nil
}
