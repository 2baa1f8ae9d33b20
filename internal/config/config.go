package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/amoreau/flightlog-backend-go/internal/pipeline"
)

// Config is the application configuration, loaded from an optional TOML file
// with environment overrides for the deployment-sensitive values.
type Config struct {
	Port    string `toml:"port"`
	DBPath  string `toml:"db_path"`
	DataDir string `toml:"data_dir"`

	Log  LogConfig  `toml:"log"`
	Auth AuthConfig `toml:"auth"`
	Home HomeConfig `toml:"home"`

	// Pilot display name -> scraper folder name
	Pilots map[string]string `toml:"pilots"`

	Rules pipeline.Rules `toml:"rules"`

	Locale LocaleConfig `toml:"locale"`
}

// LogConfig configures the logger
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// AuthConfig configures the admin token check
type AuthConfig struct {
	Secret string `toml:"secret"`
}

// HomeConfig is the reference point the site map centers on
type HomeConfig struct {
	Latitude  float64 `toml:"latitude"`
	Longitude float64 `toml:"longitude"`
}

// LocaleConfig maps the canonical English calendar and season values to the
// display labels the dashboard shows. Purely a translation table; sorting
// and grouping always use the canonical values.
type LocaleConfig struct {
	Weekdays map[string]string `toml:"weekdays"`
	Months   map[string]string `toml:"months"`
	Seasons  map[string]string `toml:"seasons"`
}

// Label translates a canonical value, passing unmapped values through
func label(table map[string]string, value string) string {
	if translated, ok := table[value]; ok {
		return translated
	}
	return value
}

// WeekdayLabel translates a weekday name
func (l LocaleConfig) WeekdayLabel(v string) string { return label(l.Weekdays, v) }

// MonthLabel translates a month name
func (l LocaleConfig) MonthLabel(v string) string { return label(l.Months, v) }

// SeasonLabel translates a season bucket
func (l LocaleConfig) SeasonLabel(v string) string { return label(l.Seasons, v) }

// Load reads the configuration. A missing file is not an error; defaults and
// environment variables apply either way.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load config %s: %w", path, err)
			}
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		cfg.DBPath = dbPath
	}
	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		cfg.DataDir = dataDir
	}
	if secret := os.Getenv("AUTH_SECRET"); secret != "" {
		cfg.Auth.Secret = secret
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Port:    ":8080",
		DBPath:  "./data/flights.db",
		DataDir: "./data/pilots",
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Auth: AuthConfig{
			Secret: "change-me-in-production",
		},
		Home: HomeConfig{
			Latitude:  45.48,
			Longitude: 0.25,
		},
		Pilots: map[string]string{},
		Rules:  pipeline.DefaultRules(),
		Locale: LocaleConfig{
			Weekdays: map[string]string{
				"Monday":    "lundi",
				"Tuesday":   "mardi",
				"Wednesday": "mercredi",
				"Thursday":  "jeudi",
				"Friday":    "vendredi",
				"Saturday":  "samedi",
				"Sunday":    "dimanche",
			},
			Months: map[string]string{
				"January":   "janvier",
				"February":  "fevrier",
				"March":     "mars",
				"April":     "avril",
				"May":       "mai",
				"June":      "juin",
				"July":      "juillet",
				"August":    "aout",
				"September": "septembre",
				"October":   "octobre",
				"November":  "novembre",
				"December":  "decembre",
			},
			Seasons: map[string]string{
				"winter": "hiver",
				"spring": "printemps",
				"summer": "été",
				"autumn": "automne",
			},
		},
	}
}
