// Package persistence provides a SQLite ledger of chunk generation runs.
// It records what each run produced, not the generated world itself.
package persistence

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/hamlet/internal/chunk"
)

// DB wraps a SQLite connection for the run ledger.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		seed TEXT NOT NULL,
		preset TEXT NOT NULL,
		size REAL NOT NULL,
		regions INTEGER NOT NULL,
		regions_requested INTEGER NOT NULL,
		regions_rejected INTEGER NOT NULL,
		forests INTEGER NOT NULL,
		trees INTEGER NOT NULL,
		villages INTEGER NOT NULL,
		huts INTEGER NOT NULL,
		villagers INTEGER NOT NULL,
		unhoused INTEGER NOT NULL,
		elapsed_ms INTEGER NOT NULL,
		created_unix INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS village_reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id),
		name TEXT NOT NULL,
		center_x REAL NOT NULL,
		center_z REAL NOT NULL,
		radius REAL NOT NULL,
		head_count INTEGER NOT NULL,
		huts INTEGER NOT NULL,
		unhoused INTEGER NOT NULL,
		target_huts INTEGER NOT NULL,
		placed_huts INTEGER NOT NULL,
		attempts INTEGER NOT NULL,
		failed_attempts INTEGER NOT NULL,
		snapped INTEGER NOT NULL,
		snap_failures INTEGER NOT NULL,
		breaker_tripped INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS ledger_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_village_reports_run ON village_reports(run_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Run is one recorded generation run. Seeds are stored as text because
// SQLite integers are signed.
type Run struct {
	ID               int64   `db:"id"`
	Seed             string  `db:"seed"`
	Preset           string  `db:"preset"`
	Size             float64 `db:"size"`
	Regions          int     `db:"regions"`
	RegionsRequested int     `db:"regions_requested"`
	RegionsRejected  int     `db:"regions_rejected"`
	Forests          int     `db:"forests"`
	Trees            int     `db:"trees"`
	Villages         int     `db:"villages"`
	Huts             int     `db:"huts"`
	Villagers        int     `db:"villagers"`
	Unhoused         int     `db:"unhoused"`
	ElapsedMS        int64   `db:"elapsed_ms"`
	CreatedUnix      int64   `db:"created_unix"`
}

// CreatedAt returns when the run was recorded.
func (r Run) CreatedAt() time.Time {
	return time.Unix(r.CreatedUnix, 0)
}

// VillageRow is one village of a recorded run.
type VillageRow struct {
	ID             int64   `db:"id"`
	RunID          int64   `db:"run_id"`
	Name           string  `db:"name"`
	CenterX        float64 `db:"center_x"`
	CenterZ        float64 `db:"center_z"`
	Radius         float64 `db:"radius"`
	HeadCount      int     `db:"head_count"`
	Huts           int     `db:"huts"`
	Unhoused       int     `db:"unhoused"`
	TargetHuts     int     `db:"target_huts"`
	PlacedHuts     int     `db:"placed_huts"`
	Attempts       int     `db:"attempts"`
	FailedAttempts int     `db:"failed_attempts"`
	Snapped        int     `db:"snapped"`
	SnapFailures   int     `db:"snap_failures"`
	BreakerTripped bool    `db:"breaker_tripped"`
}

// SaveRun records a chunk report and its villages in one transaction and
// returns the new run ID.
func (db *DB) SaveRun(preset string, rep chunk.Report) (int64, error) {
	tx, err := db.conn.Beginx()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO runs
		(seed, preset, size, regions, regions_requested, regions_rejected, forests, trees,
		 villages, huts, villagers, unhoused, elapsed_ms, created_unix)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		fmt.Sprintf("%d", rep.Seed), preset, rep.Size,
		rep.Regions, rep.RegionsRequested, rep.RegionsRejected, rep.Forests, rep.Trees,
		rep.Villages, rep.Huts, rep.Villagers, rep.Unhoused,
		rep.Elapsed.Milliseconds(), time.Now().Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}

	stmt, err := tx.Preparex(`INSERT INTO village_reports
		(run_id, name, center_x, center_z, radius, head_count, huts, unhoused,
		 target_huts, placed_huts, attempts, failed_attempts, snapped, snap_failures, breaker_tripped)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, v := range rep.VillageReports {
		tripped := 0
		if v.Stats.BreakerTripped {
			tripped = 1
		}
		_, err := stmt.Exec(
			runID, v.Name, v.Center.X, v.Center.Z, v.Radius,
			v.HeadCount, v.Huts, v.Unhoused,
			v.Stats.TargetHuts, v.Stats.PlacedHuts, v.Stats.Attempts, v.Stats.FailedAttempts,
			v.Stats.Snapped, v.Stats.SnapFailures, tripped,
		)
		if err != nil {
			return 0, fmt.Errorf("insert village %s: %w", v.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	slog.Info("run recorded", "run", runID, "seed", rep.Seed, "preset", preset, "villages", len(rep.VillageReports))
	return runID, nil
}

// RecentRuns returns the most recent runs, newest first.
func (db *DB) RecentRuns(limit int) ([]Run, error) {
	var runs []Run
	err := db.conn.Select(&runs, "SELECT * FROM runs ORDER BY id DESC LIMIT ?", limit)
	return runs, err
}

// VillageReports returns the villages recorded for a run, in generation
// order.
func (db *DB) VillageReports(runID int64) ([]VillageRow, error) {
	var rows []VillageRow
	err := db.conn.Select(&rows, "SELECT * FROM village_reports WHERE run_id = ? ORDER BY id", runID)
	return rows, err
}

// SaveMeta stores a key-value pair in ledger metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO ledger_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM ledger_meta WHERE key = ?", key)
	return value, err
}
