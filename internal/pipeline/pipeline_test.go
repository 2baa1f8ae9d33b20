package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amoreau/flightlog-backend-go/internal/models"
	"github.com/amoreau/flightlog-backend-go/pkg/logger"
)

func testPipeline(t *testing.T) *Pipeline {
	t.Helper()
	return New(DefaultRules(), logger.Nop())
}

func flight(id int, mutate func(*models.FlightRow)) models.FlightRow {
	row := models.FlightRow{
		Pilot:           "alice",
		ActivityID:      id,
		ActivityType:    "Parapente",
		Site:            "Idikel",
		Equipment:       "savage",
		Date:            time.Date(2023, 7, 15, 0, 0, 0, 0, time.UTC),
		Ceiling:         1500,
		Duration:        time.Hour,
		DurationMinutes: 60,
		Native:          true,
	}
	if mutate != nil {
		mutate(&row)
	}
	return row
}

func TestDropLowCeiling(t *testing.T) {
	rows := []models.FlightRow{
		flight(1, func(r *models.FlightRow) { r.Ceiling = 40 }),
		flight(2, func(r *models.FlightRow) { r.Ceiling = 50 }),
		flight(3, func(r *models.FlightRow) { r.Ceiling = 51 }),
		flight(4, nil),
	}

	kept, err := dropLowCeiling(rows)
	require.NoError(t, err)
	require.Len(t, kept, 2)
	assert.Equal(t, 3, kept[0].ActivityID, "the threshold itself is dropped")
	assert.Equal(t, 4, kept[1].ActivityID)
}

func TestDropTwoSeat(t *testing.T) {
	p := testPipeline(t)
	rows := []models.FlightRow{
		flight(1, func(r *models.FlightRow) { r.Equipment = "biplace" }),
		flight(2, func(r *models.FlightRow) { r.Equipment = "Biplace" }),
		flight(3, nil),
	}

	kept, err := p.dropTwoSeat(rows)
	require.NoError(t, err)
	require.Len(t, kept, 2)
	assert.Equal(t, 2, kept[0].ActivityID, "the match is exact, not case-folded")
	assert.Equal(t, 3, kept[1].ActivityID)
}

func TestDropZeroNative(t *testing.T) {
	rows := []models.FlightRow{
		flight(1, func(r *models.FlightRow) { r.DurationMinutes = 0 }),
		flight(2, func(r *models.FlightRow) { r.DurationMinutes = 0; r.Native = false }),
		flight(3, nil),
	}

	kept, err := dropZeroNative(rows)
	require.NoError(t, err)
	require.Len(t, kept, 2)
	assert.Equal(t, 2, kept[0].ActivityID, "manually logged zero-duration rows survive")
	assert.Equal(t, 3, kept[1].ActivityID)
}

func TestCanonicalizeIsIdempotent(t *testing.T) {
	p := testPipeline(t)
	rows := []models.FlightRow{
		flight(1, func(r *models.FlightRow) { r.Equipment = "Piper"; r.Site = "Idikl" }),
		flight(2, func(r *models.FlightRow) { r.Equipment = "PIPER" }),
		flight(3, func(r *models.FlightRow) { r.Site = "idikl" }),
		flight(4, func(r *models.FlightRow) { r.Equipment = "unknown wing" }),
	}

	once, err := p.canonicalize(rows)
	require.NoError(t, err)
	assert.Equal(t, "PIPER", once[0].Equipment)
	assert.Equal(t, "Idikel", once[0].Site)
	assert.Equal(t, "PIPER", once[1].Equipment)
	assert.Equal(t, "idikl", once[2].Site, "site lookup is case-preserving")
	assert.Equal(t, "unknown wing", once[3].Equipment, "unmapped labels pass through")

	twice, err := p.canonicalize(once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestClassify(t *testing.T) {
	p := testPipeline(t)
	rows := []models.FlightRow{
		flight(1, nil),
		flight(2, func(r *models.FlightRow) { r.ActivityType = "Vol moteur" }),
		flight(3, func(r *models.FlightRow) { r.Equipment = "PIPER" }),
		flight(4, func(r *models.FlightRow) { r.ActivityType = "Vol moteur"; r.Equipment = "Savage" }),
	}

	out, err := p.classify(rows)
	require.NoError(t, err)
	assert.Equal(t, models.ClassUnmotorized, out[0].Class)
	assert.Equal(t, models.ClassMotorized, out[1].Class, "powered activity type sets the default")
	assert.Equal(t, models.ClassMotorized, out[2].Class, "motorized equipment matches any case")
	assert.Equal(t, models.ClassUnmotorized, out[3].Class, "the unmotorized equipment list wins last")
}

func TestCalendarAndSeason(t *testing.T) {
	rows := []models.FlightRow{
		flight(1, func(r *models.FlightRow) { r.Date = time.Date(2023, 1, 9, 0, 0, 0, 0, time.UTC) }),
		flight(2, func(r *models.FlightRow) { r.Date = time.Date(2023, 4, 16, 0, 0, 0, 0, time.UTC) }),
		flight(3, func(r *models.FlightRow) { r.Date = time.Date(2023, 7, 15, 0, 0, 0, 0, time.UTC) }),
		flight(4, func(r *models.FlightRow) { r.Date = time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC) }),
	}

	out, err := calendar(rows)
	require.NoError(t, err)
	out, err = season(out)
	require.NoError(t, err)

	assert.Equal(t, 2023, out[0].Year)
	assert.Equal(t, 1, out[0].Month)
	assert.Equal(t, "Monday", out[0].Weekday)
	assert.Equal(t, models.SeasonWinter, out[0].Season)

	assert.Equal(t, "Sunday", out[1].Weekday)
	assert.Equal(t, models.SeasonSpring, out[1].Season)
	assert.Equal(t, models.SeasonSummer, out[2].Season)
	assert.Equal(t, models.SeasonWinter, out[3].Season, "December belongs to winter")
}

func TestSiteMeans(t *testing.T) {
	coord := func(lon, lat float64) func(*models.FlightRow) {
		return func(r *models.FlightRow) {
			r.Longitude = &lon
			r.Latitude = &lat
		}
	}
	rows := []models.FlightRow{
		flight(1, coord(2.0, 44.0)),
		flight(2, coord(4.0, 46.0)),
		flight(3, nil), // same site, no trace
		flight(4, func(r *models.FlightRow) { r.Site = "Nowhere" }),
	}

	out, err := siteMeans(rows)
	require.NoError(t, err)

	for _, row := range out[:3] {
		require.NotNil(t, row.MeanLongitude)
		require.NotNil(t, row.MeanLatitude)
		assert.InDelta(t, 3.0, *row.MeanLongitude, 1e-9)
		assert.InDelta(t, 45.0, *row.MeanLatitude, 1e-9)
	}
	assert.Nil(t, out[3].MeanLongitude, "a site with no traces keeps null means")
	assert.Nil(t, out[3].MeanLatitude)
}

func TestBuildPilotEndToEnd(t *testing.T) {
	p := testPipeline(t)

	records := []models.RawFlightRecord{
		fullRecord(),
	}
	low := fullRecord()
	low[models.KeyActivityID] = "200"
	low[models.KeyCeiling] = "40"
	records = append(records, low)

	normalized := fullRecord()
	normalized[models.KeyActivityID] = "300"
	normalized[models.KeySite] = "Idikl"
	normalized[models.KeyEquipment] = "Piper"
	records = append(records, normalized)

	coords := map[int]models.FirstCoordinate{
		123456: {ActivityID: 123456, Longitude: 2.5, Latitude: 44.5},
	}

	rows, err := p.BuildPilot("alice", records, coords)
	require.NoError(t, err)
	require.Len(t, rows, 2, "the low-ceiling row is gone")

	first := rows[0]
	require.NotNil(t, first.Longitude)
	assert.Equal(t, 2.5, *first.Longitude)
	assert.Equal(t, models.SeasonSummer, first.Season)
	assert.Equal(t, "Saturday", first.Weekday)

	second := rows[1]
	assert.Nil(t, second.Longitude, "activities without a trace keep null coordinates")
	assert.Equal(t, "Idikel", second.Site)
	assert.Equal(t, "PIPER", second.Equipment)
	assert.Equal(t, models.ClassMotorized, second.Class)

	builtAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	final, err := p.Finalize(rows, builtAt)
	require.NoError(t, err)
	for _, row := range final {
		assert.Equal(t, builtAt, row.BuiltAt, "the build timestamp is uniform")
	}
	require.NotNil(t, final[0].MeanLongitude)
	assert.Equal(t, 2.5, *final[0].MeanLongitude)
}
