package models

// Grouping dimensions accepted by the aggregation stage
const (
	DimPilot     = "pilot"
	DimYear      = "year"
	DimMonth     = "month"
	DimWeekday   = "weekday"
	DimSeason    = "season"
	DimSite      = "site"
	DimEquipment = "equipment"
)

// Dimensions lists the supported grouping dimensions
var Dimensions = []string{
	DimPilot, DimYear, DimMonth, DimWeekday, DimSeason, DimSite, DimEquipment,
}

// AggregateRow is one row of an aggregated view: one distinct value of the
// grouping dimension with count and mean/max statistics over the grouped
// flights. Views are recomputed from the filtered row set on every request
// and never persisted.
type AggregateRow struct {
	Value string `json:"value"`           // canonical dimension value
	Label string `json:"label,omitempty"` // display label after locale translation

	FlightCount    int `json:"flight_count"`
	PilotCount     int `json:"pilot_count"`
	SiteCount      int `json:"site_count"`
	EquipmentCount int `json:"equipment_count"`

	MeanMeanSpeed          float64 `json:"mean_mean_speed"`
	MaxMeanSpeed           float64 `json:"max_mean_speed"`
	MeanMaxSpeed           float64 `json:"mean_max_speed"`
	MaxMaxSpeed            float64 `json:"max_max_speed"`
	MeanCumulativeDistance float64 `json:"mean_cumulative_distance"`
	MaxCumulativeDistance  float64 `json:"max_cumulative_distance"`
	MeanCeiling            float64 `json:"mean_ceiling"`
	MaxCeiling             float64 `json:"max_ceiling"`
	MeanAltitudeGain       float64 `json:"mean_altitude_gain"`
	MaxAltitudeGain        float64 `json:"max_altitude_gain"`
	MeanVarioMax           float64 `json:"mean_vario_max"`
	MaxVarioMax            float64 `json:"max_vario_max"`
	MeanGMax               float64 `json:"mean_g_max"`
	MaxGMax                float64 `json:"max_g_max"`
	MeanDurationMinutes    float64 `json:"mean_duration_minutes"`
	MaxDurationMinutes     float64 `json:"max_duration_minutes"`

	// Sum of duration_minutes over the group, in hours
	CumulativeFlightHours float64 `json:"cumulative_flight_hours"`
}

// FlightSummary carries the dashboard's headline figures for a filtered row
// set. Means and maxes of the measurements ignore non-positive values, since
// zero is the missing-value sentinel for measurements.
type FlightSummary struct {
	FlightCount  int `json:"flight_count"`
	PilotCount   int `json:"pilot_count"`
	SiteCount    int `json:"site_count"`
	TotalHours   int `json:"total_hours"`
	TotalMinutes int `json:"total_minutes"` // remainder after full hours

	MeanMeanSpeed          float64 `json:"mean_mean_speed"`
	MaxMeanSpeed           float64 `json:"max_mean_speed"`
	MeanMaxSpeed           float64 `json:"mean_max_speed"`
	MaxMaxSpeed            float64 `json:"max_max_speed"`
	MeanDurationMinutes    float64 `json:"mean_duration_minutes"`
	MaxDurationMinutes     float64 `json:"max_duration_minutes"`
	MeanCumulativeDistance float64 `json:"mean_cumulative_distance"`
	MaxCumulativeDistance  float64 `json:"max_cumulative_distance"`
	MeanCeiling            float64 `json:"mean_ceiling"`
	MaxCeiling             float64 `json:"max_ceiling"`
	MeanVarioMax           float64 `json:"mean_vario_max"`
	MaxVarioMax            float64 `json:"max_vario_max"`
	MeanGMax               float64 `json:"mean_g_max"`
	MaxGMax                float64 `json:"max_g_max"`
}

// FilterOptions lists the distinct values available for the dashboard
// dropdowns, plus the snapshot build timestamp.
type FilterOptions struct {
	Pilots    []string `json:"pilots"`
	Years     []int    `json:"years"` // newest first
	Equipment []string `json:"equipment"`
	Sites     []string `json:"sites"`
	BuiltAt   string   `json:"built_at,omitempty"`
}
