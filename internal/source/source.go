// Package source reads the scraper's on-disk output: one directory per
// activity under <data_dir>/<pilot_folder>/traces/, holding the activity's
// JSON field map and, for native-tracked flights, the GPS trace files
// extracted from the downloaded archive. The scraping itself (browser
// automation against the tracking site) happens upstream; this package is
// the boundary where its loosely typed records enter the pipeline.
package source

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/amoreau/flightlog-backend-go/internal/models"
	"github.com/amoreau/flightlog-backend-go/pkg/logger"
)

// Source loads raw flight records and first trace coordinates per pilot
type Source struct {
	dataDir string
	log     *logger.Logger
}

// New creates a source rooted at the scraper's data directory
func New(dataDir string, log *logger.Logger) *Source {
	return &Source{
		dataDir: dataDir,
		log:     log.Named("source"),
	}
}

// LoadPilot reads every activity of one pilot folder. A pilot that has never
// been scraped yields an empty batch. Activities without a trace file get no
// coordinate entry, which the pipeline's left join resolves to null
// coordinates.
func (s *Source) LoadPilot(folder string) ([]models.RawFlightRecord, map[int]models.FirstCoordinate, error) {
	tracesDir := filepath.Join(s.dataDir, folder, "traces")

	entries, err := os.ReadDir(tracesDir)
	if os.IsNotExist(err) {
		s.log.Warn("no traces directory", logger.String("folder", folder))
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read traces directory %s: %w", tracesDir, err)
	}

	var records []models.RawFlightRecord
	coords := make(map[int]models.FirstCoordinate)

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		activityID, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue // not an activity directory
		}
		activityDir := filepath.Join(tracesDir, entry.Name())

		record, err := s.readRecord(activityDir, entry.Name())
		if err != nil {
			return nil, nil, err
		}
		if record == nil {
			continue
		}
		records = append(records, record)

		if coord, ok, err := s.readFirstCoordinate(activityDir, activityID); err != nil {
			return nil, nil, err
		} else if ok {
			coords[activityID] = coord
		}
	}

	s.log.Info("pilot loaded",
		logger.String("folder", folder),
		logger.Int("activities", len(records)),
		logger.Int("traces", len(coords)))

	return records, coords, nil
}

// readRecord loads the activity's JSON field map, or nil when the scraper
// never saved one for this directory.
func (s *Source) readRecord(activityDir, activityName string) (models.RawFlightRecord, error) {
	path := filepath.Join(activityDir, activityName+".json")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s.log.Warn("activity without record file", logger.String("dir", activityDir))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read record %s: %w", path, err)
	}

	var record models.RawFlightRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to decode record %s: %w", path, err)
	}
	return record, nil
}

// readFirstCoordinate extracts the first point of the activity's KML trace.
// ok is false when the activity has no trace file at all.
func (s *Source) readFirstCoordinate(activityDir string, activityID int) (models.FirstCoordinate, bool, error) {
	entries, err := os.ReadDir(activityDir)
	if err != nil {
		return models.FirstCoordinate{}, false, fmt.Errorf("failed to read activity directory %s: %w", activityDir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".kml") {
			continue
		}
		path := filepath.Join(activityDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return models.FirstCoordinate{}, false, fmt.Errorf("failed to read trace %s: %w", path, err)
		}
		lon, lat := FirstKMLCoordinate(data)
		return models.FirstCoordinate{ActivityID: activityID, Longitude: lon, Latitude: lat}, true, nil
	}

	return models.FirstCoordinate{}, false, nil
}
