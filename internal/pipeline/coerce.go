package pipeline

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/amoreau/flightlog-backend-go/internal/models"
)

// Raw value formats used by the tracking site
const (
	dateLayout = "02/01/2006" // dd/mm/yyyy
	timeLayout = "15h04"      // e.g. 14h35
)

// Missing-value substitutions applied before coercion, so that every coercion
// call sees a non-null input. The categorical sentinel is the literal "None"
// string the scraper itself writes on a failed extraction heuristic.
const (
	sentinelCategorical = "None"
	sentinelNumeric     = "0"
	sentinelDate        = "01/01/2000"
	sentinelTime        = "00:00:00"
)

// Coerce converts a batch of raw records into typed rows, preserving order
// and batch size. A field that cannot be coerced after sentinel substitution
// aborts the whole batch with a DataFormatError; no row is partially coerced.
func Coerce(records []models.RawFlightRecord) ([]models.FlightRow, error) {
	rows := make([]models.FlightRow, 0, len(records))
	for i, rec := range records {
		row, err := coerceRecord(rec, i)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func coerceRecord(rec models.RawFlightRecord, idx int) (models.FlightRow, error) {
	var row models.FlightRow
	var err error

	row.Pilot = textField(rec, models.KeyPilot)
	row.ActivityType = textField(rec, models.KeyActivityType)
	row.Site = textField(rec, models.KeySite)
	row.Equipment = textField(rec, models.KeyEquipment)
	row.Instrument = textField(rec, models.KeyInstrument)
	row.ActivitySite = textField(rec, models.KeyActivitySite)
	row.ArchiveURL = textField(rec, models.KeyArchiveURL)
	row.Native = boolField(rec, models.KeyNative)

	// The activity id has no substitution default: a record that cannot name
	// its activity is a format error, not a fillable gap.
	if row.ActivityID, err = idField(rec, models.KeyActivityID, idx); err != nil {
		return row, err
	}

	if row.Distance, err = intField(rec, models.KeyDistance, idx); err != nil {
		return row, err
	}
	if row.ActivityDistance, err = intField(rec, models.KeyActivityDistance, idx); err != nil {
		return row, err
	}
	if row.CumulativeDistance, err = intField(rec, models.KeyCumulativeDistance, idx); err != nil {
		return row, err
	}
	if row.MaxSpeed, err = intField(rec, models.KeyMaxSpeed, idx); err != nil {
		return row, err
	}
	if row.Ceiling, err = intField(rec, models.KeyCeiling, idx); err != nil {
		return row, err
	}
	if row.AltitudeGain, err = intField(rec, models.KeyAltitudeGain, idx); err != nil {
		return row, err
	}

	if row.MeanSpeed, err = floatField(rec, models.KeyMeanSpeed, idx); err != nil {
		return row, err
	}
	if row.VarioMax, err = floatField(rec, models.KeyVarioMax, idx); err != nil {
		return row, err
	}
	if row.GMax, err = floatField(rec, models.KeyGMax, idx); err != nil {
		return row, err
	}

	if row.Date, err = dateField(rec, models.KeyDate, idx); err != nil {
		return row, err
	}
	if row.ActivityDate, err = dateField(rec, models.KeyActivityDate, idx); err != nil {
		return row, err
	}

	// Timing metadata is non-critical: an unparseable time-of-day becomes
	// empty instead of failing the batch.
	row.TimeOfDay = timeField(rec, models.KeyTimeOfDay)

	if row.NominalFlightTime, err = durationField(rec, models.KeyNominalFlightTime, idx); err != nil {
		return row, err
	}
	if row.Duration, err = durationField(rec, models.KeyDuration, idx); err != nil {
		return row, err
	}
	row.DurationMinutes = row.Duration.Seconds() / 60

	return row, nil
}

// rawValue returns the record's value for key as a string, or ok=false when
// the key is absent, nil, empty or the "None" sentinel.
func rawValue(rec models.RawFlightRecord, key string) (string, bool) {
	v, exists := rec[key]
	if !exists || v == nil {
		return "", false
	}
	switch val := v.(type) {
	case string:
		if val == "" || val == sentinelCategorical {
			return "", false
		}
		return val, true
	case bool:
		return strconv.FormatBool(val), true
	case float64:
		// JSON numbers decode as float64
		return strconv.FormatFloat(val, 'f', -1, 64), true
	default:
		return fmt.Sprint(val), true
	}
}

func textField(rec models.RawFlightRecord, key string) string {
	v, ok := rawValue(rec, key)
	if !ok {
		return sentinelCategorical
	}
	return v
}

func boolField(rec models.RawFlightRecord, key string) bool {
	v, exists := rec[key]
	if !exists {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func idField(rec models.RawFlightRecord, key string, idx int) (int, error) {
	v, ok := rawValue(rec, key)
	if !ok {
		return 0, &DataFormatError{Field: key, Row: idx, Value: sentinelCategorical,
			Err: fmt.Errorf("activity id is required")}
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, &DataFormatError{Field: key, Row: idx, Value: v, Err: err}
	}
	return n, nil
}

func intField(rec models.RawFlightRecord, key string, idx int) (int, error) {
	v, ok := rawValue(rec, key)
	if !ok {
		v = sentinelNumeric
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, &DataFormatError{Field: key, Row: idx, Value: v, Err: err}
	}
	return n, nil
}

func floatField(rec models.RawFlightRecord, key string, idx int) (float64, error) {
	v, ok := rawValue(rec, key)
	if !ok {
		v = sentinelNumeric
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, &DataFormatError{Field: key, Row: idx, Value: v, Err: err}
	}
	return f, nil
}

func dateField(rec models.RawFlightRecord, key string, idx int) (time.Time, error) {
	v, ok := rawValue(rec, key)
	if !ok {
		v = sentinelDate
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, &DataFormatError{Field: key, Row: idx, Value: v, Err: err}
	}
	return t, nil
}

func timeField(rec models.RawFlightRecord, key string) string {
	v, ok := rawValue(rec, key)
	if !ok {
		v = sentinelTime
	}
	t, err := time.Parse(timeLayout, strings.TrimSpace(v))
	if err != nil {
		return ""
	}
	return t.Format("15:04")
}

// durationField parses the site's H:MM:SS flight times. A bare integer is
// taken as seconds, which covers the "0" missing-value substitution.
func durationField(rec models.RawFlightRecord, key string, idx int) (time.Duration, error) {
	v, ok := rawValue(rec, key)
	if !ok {
		v = sentinelNumeric
	}
	d, err := parseClockDuration(strings.TrimSpace(v))
	if err != nil {
		return 0, &DataFormatError{Field: key, Row: idx, Value: v, Err: err}
	}
	return d, nil
}

func parseClockDuration(s string) (time.Duration, error) {
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second, nil
	}

	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("expected H:MM:SS, got %q", s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hours in %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minutes in %q: %w", s, err)
	}
	sec, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, fmt.Errorf("invalid seconds in %q: %w", s, err)
	}
	if m < 0 || m > 59 || sec < 0 || sec > 59 || h < 0 {
		return 0, fmt.Errorf("out-of-range component in %q", s)
	}

	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second, nil
}
