package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/amoreau/flightlog-backend-go/internal/database"
	"github.com/amoreau/flightlog-backend-go/internal/models"
)

// Date and timestamp encodings in the flights table
const (
	dateFormat    = "2006-01-02"
	builtAtFormat = time.RFC3339
)

// flightColumns is the canonical column order shared by inserts and selects
const flightColumns = `activity_id, pilot, activity_type, site, equipment, instrument,
	activity_site, archive_url, native, date, activity_date, time_of_day,
	nominal_flight_secs, duration_secs, duration_minutes,
	distance, activity_distance, cumulative_distance, max_speed, mean_speed,
	ceiling, altitude_gain, vario_max, g_max, longitude, latitude,
	class, year, month, weekday, season, mean_longitude, mean_latitude, built_at`

// FlightRepository persists the cleaned flight snapshot
type FlightRepository struct {
	db *sql.DB
}

// NewFlightRepository creates a new flight repository
func NewFlightRepository(db *sql.DB) *FlightRepository {
	return &FlightRepository{db: db}
}

// ReplaceAll swaps the snapshot wholesale inside one transaction: either the
// new dataset is fully published or the previous one stays untouched.
func (r *FlightRepository) ReplaceAll(rows []models.FlightRow) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM flights"); err != nil {
			return fmt.Errorf("failed to clear flights: %w", err)
		}

		placeholders := strings.TrimSuffix(strings.Repeat("?, ", 34), ", ")
		stmt, err := tx.Prepare("INSERT INTO flights (" + flightColumns + ") VALUES (" + placeholders + ")")
		if err != nil {
			return fmt.Errorf("failed to prepare flight insert: %w", err)
		}
		defer stmt.Close()

		for _, row := range rows {
			if _, err := stmt.Exec(
				row.ActivityID, row.Pilot, row.ActivityType, row.Site, row.Equipment, row.Instrument,
				row.ActivitySite, row.ArchiveURL, row.Native,
				row.Date.Format(dateFormat), row.ActivityDate.Format(dateFormat), row.TimeOfDay,
				int64(row.NominalFlightTime.Seconds()), int64(row.Duration.Seconds()), row.DurationMinutes,
				row.Distance, row.ActivityDistance, row.CumulativeDistance, row.MaxSpeed, row.MeanSpeed,
				row.Ceiling, row.AltitudeGain, row.VarioMax, row.GMax, row.Longitude, row.Latitude,
				row.Class, row.Year, row.Month, row.Weekday, row.Season,
				row.MeanLongitude, row.MeanLatitude, row.BuiltAt.Format(builtAtFormat),
			); err != nil {
				return fmt.Errorf("failed to insert flight %d: %w", row.ActivityID, err)
			}
		}

		return nil
	})
}

// GetFlights retrieves the rows matching the dashboard filter. Empty filter
// slices select everything.
func (r *FlightRepository) GetFlights(filter models.FlightFilter) ([]models.FlightRow, error) {
	query := "SELECT " + flightColumns + " FROM flights"

	var conditions []string
	var args []interface{}

	if len(filter.Pilots) > 0 {
		conditions = append(conditions, "pilot IN ("+inPlaceholders(len(filter.Pilots))+")")
		for _, p := range filter.Pilots {
			args = append(args, p)
		}
	}
	if filter.Class != "" && filter.Class != "all" {
		conditions = append(conditions, "class = ?")
		args = append(args, filter.Class)
	}
	if len(filter.Years) > 0 {
		conditions = append(conditions, "year IN ("+inPlaceholders(len(filter.Years))+")")
		for _, y := range filter.Years {
			args = append(args, y)
		}
	}
	if len(filter.Equipment) > 0 {
		conditions = append(conditions, "equipment IN ("+inPlaceholders(len(filter.Equipment))+")")
		for _, e := range filter.Equipment {
			args = append(args, e)
		}
	}
	if len(filter.Sites) > 0 {
		conditions = append(conditions, "site IN ("+inPlaceholders(len(filter.Sites))+")")
		for _, s := range filter.Sites {
			args = append(args, s)
		}
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date DESC, activity_id DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query flights: %w", err)
	}
	defer rows.Close()

	var flights []models.FlightRow
	for rows.Next() {
		flight, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, flight)
	}

	return flights, rows.Err()
}

// Options lists the distinct dropdown values plus the snapshot build
// timestamp. Years come back newest-first, the rest alphabetical.
func (r *FlightRepository) Options() (models.FilterOptions, error) {
	var opts models.FilterOptions

	var err error
	if opts.Pilots, err = r.distinctStrings("SELECT DISTINCT pilot FROM flights ORDER BY pilot"); err != nil {
		return opts, err
	}
	if opts.Equipment, err = r.distinctStrings("SELECT DISTINCT equipment FROM flights ORDER BY equipment"); err != nil {
		return opts, err
	}
	if opts.Sites, err = r.distinctStrings("SELECT DISTINCT site FROM flights ORDER BY site"); err != nil {
		return opts, err
	}

	rows, err := r.db.Query("SELECT DISTINCT year FROM flights ORDER BY year DESC")
	if err != nil {
		return opts, fmt.Errorf("failed to query years: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var year int
		if err := rows.Scan(&year); err != nil {
			return opts, fmt.Errorf("failed to scan year: %w", err)
		}
		opts.Years = append(opts.Years, year)
	}
	if err := rows.Err(); err != nil {
		return opts, err
	}

	var builtAt sql.NullString
	if err := r.db.QueryRow("SELECT MAX(built_at) FROM flights").Scan(&builtAt); err != nil {
		return opts, fmt.Errorf("failed to query build timestamp: %w", err)
	}
	if builtAt.Valid {
		opts.BuiltAt = builtAt.String
	}

	return opts, nil
}

func (r *FlightRepository) distinctStrings(query string) ([]string, error) {
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct values: %w", err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan distinct value: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func scanFlight(rows *sql.Rows) (models.FlightRow, error) {
	var f models.FlightRow
	var date, activityDate, builtAt string
	var nominalSecs, durationSecs int64

	err := rows.Scan(
		&f.ActivityID, &f.Pilot, &f.ActivityType, &f.Site, &f.Equipment, &f.Instrument,
		&f.ActivitySite, &f.ArchiveURL, &f.Native, &date, &activityDate, &f.TimeOfDay,
		&nominalSecs, &durationSecs, &f.DurationMinutes,
		&f.Distance, &f.ActivityDistance, &f.CumulativeDistance, &f.MaxSpeed, &f.MeanSpeed,
		&f.Ceiling, &f.AltitudeGain, &f.VarioMax, &f.GMax, &f.Longitude, &f.Latitude,
		&f.Class, &f.Year, &f.Month, &f.Weekday, &f.Season,
		&f.MeanLongitude, &f.MeanLatitude, &builtAt,
	)
	if err != nil {
		return f, fmt.Errorf("failed to scan flight: %w", err)
	}

	if f.Date, err = time.Parse(dateFormat, date); err != nil {
		return f, fmt.Errorf("corrupt date for flight %d: %w", f.ActivityID, err)
	}
	if f.ActivityDate, err = time.Parse(dateFormat, activityDate); err != nil {
		return f, fmt.Errorf("corrupt activity date for flight %d: %w", f.ActivityID, err)
	}
	if f.BuiltAt, err = time.Parse(builtAtFormat, builtAt); err != nil {
		return f, fmt.Errorf("corrupt build timestamp for flight %d: %w", f.ActivityID, err)
	}
	f.NominalFlightTime = time.Duration(nominalSecs) * time.Second
	f.Duration = time.Duration(durationSecs) * time.Second

	return f, nil
}

func inPlaceholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
