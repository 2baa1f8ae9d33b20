package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amoreau/flightlog-backend-go/internal/models"
)

func fullRecord() models.RawFlightRecord {
	return models.RawFlightRecord{
		models.KeyPilot:              "alice",
		models.KeyActivityID:         "123456",
		models.KeyActivityType:       "Parapente",
		models.KeySite:               "Idikel",
		models.KeyDate:               "15/07/2023",
		models.KeyTimeOfDay:          "14h35",
		models.KeyNominalFlightTime:  "1:05:30",
		models.KeyEquipment:          "savage",
		models.KeyDistance:           "12",
		models.KeyInstrument:         "SYS'Nav",
		models.KeyNative:             true,
		models.KeyActivityDate:       "15/07/2023",
		models.KeyActivitySite:       "Idikel",
		models.KeyActivityDistance:   "12",
		models.KeyCumulativeDistance: "34",
		models.KeyMaxSpeed:           "52",
		models.KeyMeanSpeed:          "31.5",
		models.KeyCeiling:            "1850",
		models.KeyAltitudeGain:       "600",
		models.KeyDuration:           "1:05:30",
		models.KeyVarioMax:           "4.2",
		models.KeyGMax:               "2.1",
		models.KeyArchiveURL:         "https://example.com/123456.zip",
	}
}

func TestCoerceFullRecord(t *testing.T) {
	rows, err := Coerce([]models.RawFlightRecord{fullRecord()})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "alice", row.Pilot)
	assert.Equal(t, 123456, row.ActivityID)
	assert.Equal(t, time.Date(2023, 7, 15, 0, 0, 0, 0, time.UTC), row.Date)
	assert.Equal(t, "14:35", row.TimeOfDay)
	assert.Equal(t, time.Hour+5*time.Minute+30*time.Second, row.Duration)
	assert.InDelta(t, 65.5, row.DurationMinutes, 1e-9)
	assert.Equal(t, 1850, row.Ceiling)
	assert.Equal(t, 31.5, row.MeanSpeed)
	assert.True(t, row.Native)
}

func TestCoerceMissingValueSubstitution(t *testing.T) {
	rec := models.RawFlightRecord{
		models.KeyActivityID: "99",
		models.KeySite:       "None",
	}

	rows, err := Coerce([]models.RawFlightRecord{rec})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "None", row.Pilot, "missing categorical becomes the None sentinel")
	assert.Equal(t, "None", row.Site, "explicit None stays None")
	assert.Equal(t, 0, row.Ceiling, "missing numeric becomes zero")
	assert.Equal(t, 0.0, row.MeanSpeed)
	assert.Equal(t, time.Duration(0), row.Duration)
	assert.Equal(t, 0.0, row.DurationMinutes)
	assert.Equal(t, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), row.Date,
		"missing date becomes the epoch placeholder")
	assert.False(t, row.Native)
}

func TestCoerceInvalidDateFailsBatch(t *testing.T) {
	good := fullRecord()
	bad := fullRecord()
	bad[models.KeyActivityID] = "77"
	bad[models.KeyDate] = "29/02/2021" // not a leap year

	rows, err := Coerce([]models.RawFlightRecord{good, bad})
	assert.Nil(t, rows, "a single bad field aborts the whole batch")
	require.Error(t, err)

	var dfe *DataFormatError
	require.True(t, errors.As(err, &dfe))
	assert.Equal(t, models.KeyDate, dfe.Field)
	assert.Equal(t, 1, dfe.Row)
	assert.Equal(t, "29/02/2021", dfe.Value)
}

func TestCoerceMissingActivityIDIsFatal(t *testing.T) {
	rec := fullRecord()
	delete(rec, models.KeyActivityID)

	_, err := Coerce([]models.RawFlightRecord{rec})
	require.Error(t, err)

	var dfe *DataFormatError
	require.True(t, errors.As(err, &dfe))
	assert.Equal(t, models.KeyActivityID, dfe.Field)
}

func TestCoerceUnparseableTimeOfDayIsNotFatal(t *testing.T) {
	rec := fullRecord()
	rec[models.KeyTimeOfDay] = "garbage"

	rows, err := Coerce([]models.RawFlightRecord{rec})
	require.NoError(t, err)
	assert.Equal(t, "", rows[0].TimeOfDay)

	delete(rec, models.KeyTimeOfDay)
	rows, err = Coerce([]models.RawFlightRecord{rec})
	require.NoError(t, err)
	assert.Equal(t, "", rows[0].TimeOfDay, "missing time of day stays empty")
}

func TestCoerceNumericJSONValues(t *testing.T) {
	rec := fullRecord()
	// JSON decoding yields float64 for numbers
	rec[models.KeyActivityID] = float64(4242)
	rec[models.KeyCeiling] = float64(900)

	rows, err := Coerce([]models.RawFlightRecord{rec})
	require.NoError(t, err)
	assert.Equal(t, 4242, rows[0].ActivityID)
	assert.Equal(t, 900, rows[0].Ceiling)
}

func TestParseClockDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"0", 0, false},
		{"90", 90 * time.Second, false},
		{"0:00:00", 0, false},
		{"1:02:03", time.Hour + 2*time.Minute + 3*time.Second, false},
		{"12:59:59", 12*time.Hour + 59*time.Minute + 59*time.Second, false},
		{"1:60:00", 0, true},
		{"1:00:60", 0, true},
		{"1:02", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		got, err := parseClockDuration(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
