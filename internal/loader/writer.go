// Package loader writes the reconciled building/tenant model to Postgres.
package loader

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/scanpang/data-pipeline/internal/db"
	"github.com/scanpang/data-pipeline/internal/geo"
	"github.com/scanpang/data-pipeline/internal/model"
)

// Table names.
const (
	TableBuildings     = "buildings"
	TableFloors        = "floors"
	TableFacilities    = "facilities"
	TableBuildingStats = "building_stats"
	TableLiveFeeds     = "live_feeds"
)

// Tables lists the target tables in write order.
var Tables = []string{TableBuildings, TableFloors, TableFacilities, TableBuildingStats, TableLiveFeeds}

var (
	insertBuildingSQL = db.MustInsertIgnoreSQL(db.InsertConfig{
		Table: TableBuildings,
		Columns: []string{
			"name", "address", "location", "total_floors", "basement_floors",
			"building_use", "completion_year",
		},
		Exprs:     map[string]string{"location": "ST_GeomFromEWKB(%s)"},
		Returning: []string{"id"},
	})
	selectBuildingIDSQL = `SELECT id FROM buildings WHERE name = $1 AND address = $2`

	insertFloorSQL = db.MustInsertIgnoreSQL(db.InsertConfig{
		Table: TableFloors,
		Columns: []string{
			"building_id", "floor_number", "floor_order",
			"tenant_name", "tenant_category", "tenant_icon", "is_vacant",
		},
	})
	insertFacilitySQL = db.MustInsertIgnoreSQL(db.InsertConfig{
		Table:   TableFacilities,
		Columns: []string{"building_id", "facility_type", "location_info", "is_available", "status_text"},
	})
	insertStatSQL = db.MustInsertIgnoreSQL(db.InsertConfig{
		Table:   TableBuildingStats,
		Columns: []string{"building_id", "stat_type", "stat_value", "stat_icon", "display_order"},
	})
	insertFeedSQL = db.MustInsertIgnoreSQL(db.InsertConfig{
		Table: TableLiveFeeds,
		Columns: []string{
			"building_id", "feed_type", "title", "description",
			"icon", "icon_color", "time_label", "is_active",
		},
	})
)

const savepoint = "row_insert"

// ConnectFunc opens the pool used for one load.
type ConnectFunc func(ctx context.Context) (db.Pool, error)

// TableResult counts the outcome of one table pass.
type TableResult struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"` // natural key already present
	Failed   int `json:"failed"`
}

// Result summarizes a load.
type Result struct {
	Tables map[string]TableResult `json:"tables"`
}

// Inserted returns the inserted row count for a table.
func (r *Result) Inserted(table string) int {
	return r.Tables[table].Inserted
}

// Writer persists buildings and tenants.
type Writer struct {
	connect ConnectFunc
}

// NewWriter creates a Writer that opens its pool through connect.
func NewWriter(connect ConnectFunc) *Writer {
	return &Writer{connect: connect}
}

// Load writes buildings, then per-tenant floors, facilities, stats and feeds.
// Each table pass commits on its own; a failing row is rolled back to its
// savepoint and the pass continues. Only a connection failure aborts the load.
func (w *Writer) Load(ctx context.Context, buildings []model.Building, tenants []model.Tenant) (*Result, error) {
	log := zap.L().With(zap.String("component", "loader"))

	pool, err := w.connect(ctx)
	if err != nil {
		log.Error("database connection failed", zap.Error(err))
		return nil, eris.Wrap(err, "loader: connect")
	}
	defer pool.Close()
	log.Info("database connected")

	res := &Result{Tables: make(map[string]TableResult, len(Tables))}

	ids, tr := w.loadBuildings(ctx, pool, buildings)
	res.Tables[TableBuildings] = tr

	res.Tables[TableFloors], _ = w.pass(ctx, pool, TableFloors, func(tx pgx.Tx, tr *TableResult) {
		for _, t := range tenants {
			if !t.Matched() {
				continue
			}
			id, ok := ids[t.BuildingID]
			if !ok {
				continue
			}
			insertRow(ctx, tx, tr, t.Title, insertFloorSQL,
				id, defaultFloorNumber, defaultFloorOrder, t.Title, t.Category, t.Icon, false)
		}
	})

	res.Tables[TableFacilities], _ = w.pass(ctx, pool, TableFacilities, func(tx pgx.Tx, tr *TableResult) {
		for _, b := range buildings {
			id, ok := ids[b.ID]
			if !ok {
				continue
			}
			for _, f := range defaultFacilities {
				insertRow(ctx, tx, tr, b.Name, insertFacilitySQL, id, f.Type, f.Location, true, f.Status)
			}
		}
	})

	res.Tables[TableBuildingStats], _ = w.pass(ctx, pool, TableBuildingStats, func(tx pgx.Tx, tr *TableResult) {
		for _, b := range buildings {
			id, ok := ids[b.ID]
			if !ok {
				continue
			}
			for _, s := range buildingStats(b) {
				insertRow(ctx, tx, tr, b.Name+"/"+s.Type, insertStatSQL, id, s.Type, s.Value, s.Icon, s.Order)
			}
		}
	})

	res.Tables[TableLiveFeeds], _ = w.pass(ctx, pool, TableLiveFeeds, func(tx pgx.Tx, tr *TableResult) {
		for _, b := range buildings {
			id, ok := ids[b.ID]
			if !ok {
				continue
			}
			for _, f := range feedTemplates {
				insertRow(ctx, tx, tr, b.Name, insertFeedSQL,
					id, f.Type, f.Title, f.Description, f.Icon, f.IconColor, f.TimeLabel, true)
			}
		}
	})

	for _, table := range Tables {
		tr := res.Tables[table]
		log.Info("table loaded",
			zap.String("table", table),
			zap.Int("inserted", tr.Inserted),
			zap.Int("skipped", tr.Skipped),
			zap.Int("failed", tr.Failed),
		)
	}
	return res, nil
}

// loadBuildings inserts buildings and returns the database ID for every
// building that was inserted or already present.
func (w *Writer) loadBuildings(ctx context.Context, pool db.Pool, buildings []model.Building) (map[model.BuildingID]int64, TableResult) {
	ids := make(map[model.BuildingID]int64, len(buildings))
	if len(buildings) == 0 {
		zap.L().Warn("loader: no buildings to load")
		return ids, TableResult{}
	}

	tr, err := w.pass(ctx, pool, TableBuildings, func(tx pgx.Tx, tr *TableResult) {
		for _, b := range buildings {
			id, inserted, err := insertBuilding(ctx, tx, b)
			if err != nil {
				tr.Failed++
				zap.L().Error("loader: building insert failed",
					zap.String("building", b.Name),
					zap.Error(err),
				)
				continue
			}
			if inserted {
				tr.Inserted++
			} else {
				tr.Skipped++
			}
			ids[b.ID] = id
		}
	})
	if err != nil {
		// Nothing was committed, so dependent tables have no rows to reference.
		return map[model.BuildingID]int64{}, tr
	}
	return ids, tr
}

func insertBuilding(ctx context.Context, tx pgx.Tx, b model.Building) (id int64, inserted bool, err error) {
	point, err := geo.PointEWKB(geo.OrDefault(b.Coords))
	if err != nil {
		return 0, false, err
	}

	var year *int
	if b.CompletionYear > 0 {
		y := b.CompletionYear
		year = &y
	}
	var use *string
	if b.Use != "" {
		u := b.Use
		use = &u
	}

	err = withSavepoint(ctx, tx, func() error {
		// total_floors holds above-ground floors; basements are a separate column.
		err := tx.QueryRow(ctx, insertBuildingSQL,
			b.Name, b.Address, point, b.GroundFloors, b.BasementFloors, use, year,
		).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			return tx.QueryRow(ctx, selectBuildingIDSQL, b.Name, b.Address).Scan(&id)
		}
		if err == nil {
			inserted = true
		}
		return err
	})
	if err != nil {
		return 0, false, eris.Wrapf(err, "loader: insert building %q", b.Name)
	}
	return id, inserted, nil
}

// pass runs fn inside one transaction for table and commits it. The error is
// non-nil only when the transaction could not be opened or committed.
func (w *Writer) pass(ctx context.Context, pool db.Pool, table string, fn func(pgx.Tx, *TableResult)) (TableResult, error) {
	var tr TableResult

	tx, err := pool.Begin(ctx)
	if err != nil {
		zap.L().Error("loader: begin transaction failed", zap.String("table", table), zap.Error(err))
		return tr, eris.Wrapf(err, "loader: begin %s", table)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	fn(tx, &tr)

	if err := tx.Commit(ctx); err != nil {
		zap.L().Error("loader: commit failed", zap.String("table", table), zap.Error(err))
		return TableResult{Failed: tr.Inserted + tr.Skipped + tr.Failed}, eris.Wrapf(err, "loader: commit %s", table)
	}
	return tr, nil
}

// insertRow executes one conflict-tolerant insert inside a savepoint.
func insertRow(ctx context.Context, tx pgx.Tx, tr *TableResult, label, sql string, args ...any) {
	var affected int64
	err := withSavepoint(ctx, tx, func() error {
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
		return nil
	})
	switch {
	case err != nil:
		tr.Failed++
		zap.L().Error("loader: insert failed", zap.String("row", label), zap.Error(err))
	case affected == 0:
		tr.Skipped++
	default:
		tr.Inserted++
	}
}

// withSavepoint runs fn so that its failure rolls back only fn's statements.
func withSavepoint(ctx context.Context, tx pgx.Tx, fn func() error) error {
	if _, err := tx.Exec(ctx, "SAVEPOINT "+savepoint); err != nil {
		return eris.Wrap(err, "loader: savepoint")
	}
	if err := fn(); err != nil {
		if _, rbErr := tx.Exec(ctx, "ROLLBACK TO SAVEPOINT "+savepoint); rbErr != nil {
			return eris.Wrap(rbErr, "loader: rollback to savepoint")
		}
		return err
	}
	if _, err := tx.Exec(ctx, "RELEASE SAVEPOINT "+savepoint); err != nil {
		return eris.Wrap(err, "loader: release savepoint")
	}
	return nil
}
