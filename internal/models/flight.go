package models

import "time"

// Raw record field keys as written by the scraper into each activity's JSON
// file. The keys follow the tracking site's own vocabulary.
const (
	KeyPilot              = "pilote"
	KeyActivityID         = "num_activite"
	KeyActivityType       = "types"
	KeySite               = "site"
	KeyDate               = "date"
	KeyTimeOfDay          = "heure"
	KeyNominalFlightTime  = "flight_time"
	KeyEquipment          = "voile"
	KeyDistance           = "distance"
	KeyInstrument         = "instrument"
	KeyNative             = "is_syride"
	KeyActivityDate       = "date_activite"
	KeyActivitySite       = "site_activite"
	KeyActivityDistance   = "distance_activite"
	KeyCumulativeDistance = "distance_cumulee"
	KeyMaxSpeed           = "vitesse_max"
	KeyMeanSpeed          = "vitesse_moyenne"
	KeyCeiling            = "plafond"
	KeyAltitudeGain       = "gain"
	KeyDuration           = "duree_vol"
	KeyVarioMax           = "vario_max"
	KeyGMax               = "g_max"
	KeyArchiveURL         = "adresse_zip"
)

// RawFlightRecord is the loosely typed field map the scraper produces for one
// activity. Values are strings or nil; the scraper substitutes the "None"
// sentinel when one of its extraction heuristics fails, so every field is
// either absent, nil, a sentinel or a parseable string. The native-tracking
// flag is the only boolean.
type RawFlightRecord map[string]interface{}

// FirstCoordinate is the first point of an activity's GPS trace, keyed by
// activity id. Activities whose trace has no geometry carry (0, 0); activities
// without any trace file have no entry at all.
type FirstCoordinate struct {
	ActivityID int     `json:"activity_id"`
	Longitude  float64 `json:"longitude"`
	Latitude   float64 `json:"latitude"`
}

// Activity classifications
const (
	ClassMotorized   = "motorized"
	ClassUnmotorized = "unmotorized"
)

// Season buckets
const (
	SeasonWinter = "winter"
	SeasonSpring = "spring"
	SeasonSummer = "summer"
	SeasonAutumn = "autumn"
)

// FlightRow is one fully typed flight activity. The coercion stage produces it
// from a RawFlightRecord; the cleaning, canonicalization and derived-field
// stages rewrite categorical labels and fill the derived fields. After a
// rebuild every numeric, date and duration field is non-null; only the
// coordinates and time-of-day may be empty.
type FlightRow struct {
	Pilot        string `json:"pilot" db:"pilot"`
	ActivityID   int    `json:"activity_id" db:"activity_id"`
	ActivityType string `json:"activity_type" db:"activity_type"`
	Site         string `json:"site" db:"site"`
	Equipment    string `json:"equipment" db:"equipment"`
	Instrument   string `json:"instrument" db:"instrument"`
	ActivitySite string `json:"activity_site" db:"activity_site"`
	ArchiveURL   string `json:"archive_url" db:"archive_url"`
	Native       bool   `json:"native" db:"native"`

	Date         time.Time `json:"date" db:"date"`
	ActivityDate time.Time `json:"activity_date" db:"activity_date"`
	// TimeOfDay is "HH:MM", or empty when the raw value was unparseable
	TimeOfDay string `json:"time_of_day" db:"time_of_day"`

	NominalFlightTime time.Duration `json:"nominal_flight_time" db:"nominal_flight_time"`
	Duration          time.Duration `json:"duration" db:"duration"`
	DurationMinutes   float64       `json:"duration_minutes" db:"duration_minutes"`

	Distance           int     `json:"distance" db:"distance"`
	ActivityDistance   int     `json:"activity_distance" db:"activity_distance"`
	CumulativeDistance int     `json:"cumulative_distance" db:"cumulative_distance"`
	MaxSpeed           int     `json:"max_speed" db:"max_speed"`
	MeanSpeed          float64 `json:"mean_speed" db:"mean_speed"`
	Ceiling            int     `json:"ceiling" db:"ceiling"`
	AltitudeGain       int     `json:"altitude_gain" db:"altitude_gain"`
	VarioMax           float64 `json:"vario_max" db:"vario_max"`
	GMax               float64 `json:"g_max" db:"g_max"`

	// First trace coordinate, null when the activity has no trace
	Longitude *float64 `json:"longitude,omitempty" db:"longitude"`
	Latitude  *float64 `json:"latitude,omitempty" db:"latitude"`

	// Derived fields
	Class   string `json:"class" db:"class"`     // motorized / unmotorized
	Year    int    `json:"year" db:"year"`
	Month   int    `json:"month" db:"month"`     // 1-12
	Weekday string `json:"weekday" db:"weekday"` // Monday...Sunday
	Season  string `json:"season" db:"season"`

	// Mean coordinate over all rows sharing this row's site
	MeanLongitude *float64 `json:"mean_longitude,omitempty" db:"mean_longitude"`
	MeanLatitude  *float64 `json:"mean_latitude,omitempty" db:"mean_latitude"`

	// Dataset build timestamp, identical across one snapshot
	BuiltAt time.Time `json:"built_at" db:"built_at"`
}

// SiteView is one launch site with its aggregated map data
type SiteView struct {
	Site        string   `json:"site"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	FlightCount int      `json:"flight_count"`
	PilotCount  int      `json:"pilot_count"`
	Pilots      []string `json:"pilots"`
	// Great-circle distance from the configured home point, null when the
	// site has no coordinates
	DistanceFromHomeKm *float64 `json:"distance_from_home_km,omitempty"`
}
