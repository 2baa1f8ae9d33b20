package service

import (
	"fmt"
	"sort"

	"github.com/amoreau/flightlog-backend-go/internal/config"
	"github.com/amoreau/flightlog-backend-go/internal/models"
	"github.com/amoreau/flightlog-backend-go/internal/repository"
	"github.com/amoreau/flightlog-backend-go/internal/spatial"
	"github.com/amoreau/flightlog-backend-go/internal/stats"
)

// FlightService serves the cleaned dataset and its derived views to the
// dashboard. It only ever reads the snapshot; rebuilding is RebuildService's
// job.
type FlightService struct {
	flightRepo *repository.FlightRepository
	locale     config.LocaleConfig
	home       config.HomeConfig
}

// NewFlightService creates a new flight service
func NewFlightService(flightRepo *repository.FlightRepository, locale config.LocaleConfig, home config.HomeConfig) *FlightService {
	return &FlightService{
		flightRepo: flightRepo,
		locale:     locale,
		home:       home,
	}
}

// GetFlights returns the rows matching the dashboard filter
func (s *FlightService) GetFlights(filter models.FlightFilter) ([]models.FlightRow, error) {
	return s.flightRepo.GetFlights(filter)
}

// GetOptions returns the dropdown values and the snapshot build timestamp
func (s *FlightService) GetOptions() (models.FilterOptions, error) {
	return s.flightRepo.Options()
}

// GetSummary computes the headline figures over the filtered subset
func (s *FlightService) GetSummary(filter models.FlightFilter) (models.FlightSummary, error) {
	rows, err := s.flightRepo.GetFlights(filter)
	if err != nil {
		return models.FlightSummary{}, fmt.Errorf("failed to load flights for summary: %w", err)
	}
	return stats.Summarize(rows), nil
}

// GetAggregate builds the aggregated view for one grouping dimension over
// the filtered subset, with display labels from the locale table.
func (s *FlightService) GetAggregate(filter models.FlightFilter, dimension string) ([]models.AggregateRow, error) {
	rows, err := s.flightRepo.GetFlights(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load flights for aggregation: %w", err)
	}

	view, err := stats.GroupFlights(rows, dimension)
	if err != nil {
		return nil, err
	}

	for i := range view {
		view[i].Label = s.displayLabel(dimension, view[i].Value)
	}
	return view, nil
}

// GetSites returns the per-site map view: mean coordinates, flight and pilot
// counts, and the distance from the configured home point.
func (s *FlightService) GetSites(filter models.FlightFilter) ([]models.SiteView, error) {
	rows, err := s.flightRepo.GetFlights(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load flights for site view: %w", err)
	}

	type acc struct {
		view   models.SiteView
		pilots map[string]bool
	}
	bySite := make(map[string]*acc)
	for _, row := range rows {
		a, ok := bySite[row.Site]
		if !ok {
			a = &acc{view: models.SiteView{Site: row.Site}, pilots: make(map[string]bool)}
			bySite[row.Site] = a
		}
		a.view.FlightCount++
		a.pilots[row.Pilot] = true
		if a.view.Longitude == nil && row.MeanLongitude != nil && row.MeanLatitude != nil {
			a.view.Longitude = row.MeanLongitude
			a.view.Latitude = row.MeanLatitude
		}
	}

	sites := make([]models.SiteView, 0, len(bySite))
	for _, a := range bySite {
		a.view.PilotCount = len(a.pilots)
		a.view.Pilots = sortedKeys(a.pilots)
		if a.view.Longitude != nil && a.view.Latitude != nil {
			km := spatial.HaversineDistanceKm(s.home.Latitude, s.home.Longitude, *a.view.Latitude, *a.view.Longitude)
			a.view.DistanceFromHomeKm = &km
		}
		sites = append(sites, a.view)
	}

	sort.Slice(sites, func(i, j int) bool { return sites[i].Site < sites[j].Site })
	return sites, nil
}

func (s *FlightService) displayLabel(dimension, value string) string {
	switch dimension {
	case models.DimWeekday:
		return s.locale.WeekdayLabel(value)
	case models.DimMonth:
		return s.locale.MonthLabel(value)
	case models.DimSeason:
		return s.locale.SeasonLabel(value)
	default:
		return value
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
