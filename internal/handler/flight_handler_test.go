package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amoreau/flightlog-backend-go/internal/config"
	"github.com/amoreau/flightlog-backend-go/internal/database"
	"github.com/amoreau/flightlog-backend-go/internal/models"
	"github.com/amoreau/flightlog-backend-go/internal/repository"
	"github.com/amoreau/flightlog-backend-go/internal/service"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(filepath.Join(t.TempDir(), "flights.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	repo := repository.NewFlightRepository(db)
	locale := config.LocaleConfig{Weekdays: map[string]string{"Saturday": "samedi"}}
	svc := service.NewFlightService(repo, locale, config.HomeConfig{})

	seed := func(id int, pilot string, year int) models.FlightRow {
		return models.FlightRow{
			ActivityID: id, Pilot: pilot, ActivityType: "Parapente",
			Site: "Idikel", Equipment: "savage",
			Date:         time.Date(year, 7, 15, 0, 0, 0, 0, time.UTC),
			ActivityDate: time.Date(year, 7, 15, 0, 0, 0, 0, time.UTC),
			Duration:     time.Hour, DurationMinutes: 60, Ceiling: 1000,
			Class: models.ClassUnmotorized, Year: year, Month: 7,
			Weekday: "Saturday", Season: models.SeasonSummer,
			BuiltAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		}
	}
	require.NoError(t, repo.ReplaceAll([]models.FlightRow{
		seed(1, "alice", 2023),
		seed(2, "bob", 2022),
	}))

	h := NewFlightHandler(svc)
	r := gin.New()
	r.GET("/api/v1/flights", h.GetFlights)
	r.GET("/api/v1/flights/options", h.GetOptions)
	r.GET("/api/v1/flights/summary", h.GetSummary)
	r.GET("/api/v1/flights/aggregates/:dimension", h.GetAggregate)
	return r
}

func get(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)

	var body struct {
		Code    int             `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	data := map[string]json.RawMessage{}
	if len(body.Data) > 0 && body.Data[0] == '{' {
		require.NoError(t, json.Unmarshal(body.Data, &data))
	}
	return w, data
}

func TestGetFlightsFiltered(t *testing.T) {
	r := testRouter(t)

	w, data := get(t, r, "/api/v1/flights?pilot=alice&year=2023")
	require.Equal(t, http.StatusOK, w.Code)

	var count int
	require.NoError(t, json.Unmarshal(data["count"], &count))
	assert.Equal(t, 1, count)

	var flights []models.FlightRow
	require.NoError(t, json.Unmarshal(data["flights"], &flights))
	require.Len(t, flights, 1)
	assert.Equal(t, "alice", flights[0].Pilot)
}

func TestGetFlightsUnfiltered(t *testing.T) {
	r := testRouter(t)

	w, data := get(t, r, "/api/v1/flights")
	require.Equal(t, http.StatusOK, w.Code)

	var count int
	require.NoError(t, json.Unmarshal(data["count"], &count))
	assert.Equal(t, 2, count, "no parameters selects everything")
}

func TestGetOptions(t *testing.T) {
	r := testRouter(t)

	w, _ := get(t, r, "/api/v1/flights/options")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data models.FilterOptions `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"alice", "bob"}, body.Data.Pilots)
	assert.Equal(t, []int{2023, 2022}, body.Data.Years)
	assert.NotEmpty(t, body.Data.BuiltAt)
}

func TestGetAggregateWithLabels(t *testing.T) {
	r := testRouter(t)

	w, data := get(t, r, "/api/v1/flights/aggregates/weekday")
	require.Equal(t, http.StatusOK, w.Code)

	var rows []models.AggregateRow
	require.NoError(t, json.Unmarshal(data["rows"], &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Saturday", rows[0].Value)
	assert.Equal(t, "samedi", rows[0].Label)
	assert.Equal(t, 2, rows[0].FlightCount)
}

func TestGetAggregateUnknownDimension(t *testing.T) {
	r := testRouter(t)

	w, _ := get(t, r, "/api/v1/flights/aggregates/altitude")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSummary(t *testing.T) {
	r := testRouter(t)

	w, _ := get(t, r, "/api/v1/flights/summary")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data models.FlightSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Data.FlightCount)
	assert.Equal(t, 2, body.Data.TotalHours)
}
