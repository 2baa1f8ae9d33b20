package database

import (
	"database/sql"
	"fmt"
)

// Migration represents one schema migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations are applied in version order and tracked in the migrations
// table, so an upgraded binary can extend an existing database.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_flights",
		SQL: `
			CREATE TABLE IF NOT EXISTS flights (
				activity_id          INTEGER PRIMARY KEY,
				pilot                TEXT NOT NULL,
				activity_type        TEXT NOT NULL,
				site                 TEXT NOT NULL,
				equipment            TEXT NOT NULL,
				instrument           TEXT NOT NULL,
				activity_site        TEXT NOT NULL,
				archive_url          TEXT NOT NULL,
				native               INTEGER NOT NULL,
				date                 TEXT NOT NULL,
				activity_date        TEXT NOT NULL,
				time_of_day          TEXT NOT NULL,
				nominal_flight_secs  INTEGER NOT NULL,
				duration_secs        INTEGER NOT NULL,
				duration_minutes     REAL NOT NULL,
				distance             INTEGER NOT NULL,
				activity_distance    INTEGER NOT NULL,
				cumulative_distance  INTEGER NOT NULL,
				max_speed            INTEGER NOT NULL,
				mean_speed           REAL NOT NULL,
				ceiling              INTEGER NOT NULL,
				altitude_gain        INTEGER NOT NULL,
				vario_max            REAL NOT NULL,
				g_max                REAL NOT NULL,
				longitude            REAL,
				latitude             REAL,
				class                TEXT NOT NULL,
				year                 INTEGER NOT NULL,
				month                INTEGER NOT NULL,
				weekday              TEXT NOT NULL,
				season               TEXT NOT NULL,
				mean_longitude       REAL,
				mean_latitude        REAL,
				built_at             TEXT NOT NULL
			)
		`,
	},
	{
		Version: 2,
		Name:    "flights_filter_indexes",
		SQL: `
			CREATE INDEX IF NOT EXISTS idx_flights_pilot ON flights(pilot);
			CREATE INDEX IF NOT EXISTS idx_flights_year ON flights(year);
			CREATE INDEX IF NOT EXISTS idx_flights_site ON flights(site);
			CREATE INDEX IF NOT EXISTS idx_flights_equipment ON flights(equipment);
			CREATE INDEX IF NOT EXISTS idx_flights_class ON flights(class)
		`,
	},
}

// Migrate applies pending migrations
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if err := applyMigration(db, m); err != nil {
			return err
		}
	}

	return nil
}

func appliedMigrations(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func applyMigration(db *sql.DB, m Migration) error {
	return Transaction(db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(m.SQL); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
		if _, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
		return nil
	})
}
