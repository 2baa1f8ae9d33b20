// Package stats builds the aggregated views the dashboard charts from.
// Views are pure functions of the filtered row set and a grouping dimension;
// nothing is cached, every call recomputes from fresh input.
package stats

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/amoreau/flightlog-backend-go/internal/models"
)

// Fixed display orders for the calendar-like dimensions. Sorting these
// alphabetically would interleave the week and the year.
var (
	weekdayOrder = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	seasonOrder  = []string{models.SeasonWinter, models.SeasonSpring, models.SeasonSummer, models.SeasonAutumn}
)

// dimensionValue extracts a row's canonical value for a grouping dimension
func dimensionValue(row models.FlightRow, dimension string) (string, error) {
	switch dimension {
	case models.DimPilot:
		return row.Pilot, nil
	case models.DimYear:
		return strconv.Itoa(row.Year), nil
	case models.DimMonth:
		return time.Month(row.Month).String(), nil
	case models.DimWeekday:
		return row.Weekday, nil
	case models.DimSeason:
		return row.Season, nil
	case models.DimSite:
		return row.Site, nil
	case models.DimEquipment:
		return row.Equipment, nil
	default:
		return "", fmt.Errorf("unknown grouping dimension %q", dimension)
	}
}

// GroupFlights aggregates the row set by one dimension: one output row per
// distinct value, carrying counts, distinct-entity counts and mean/max of
// every numeric measurement, plus cumulative flight hours.
func GroupFlights(rows []models.FlightRow, dimension string) ([]models.AggregateRow, error) {
	groups := make(map[string][]models.FlightRow)
	for _, row := range rows {
		value, err := dimensionValue(row, dimension)
		if err != nil {
			return nil, err
		}
		groups[value] = append(groups[value], row)
	}

	out := make([]models.AggregateRow, 0, len(groups))
	for value, group := range groups {
		out = append(out, aggregateGroup(value, group))
	}

	sortAggregates(out, dimension)
	return out, nil
}

func aggregateGroup(value string, group []models.FlightRow) models.AggregateRow {
	pilots := make(map[string]bool)
	sites := make(map[string]bool)
	equipment := make(map[string]bool)

	n := len(group)
	meanSpeeds := make([]float64, n)
	maxSpeeds := make([]float64, n)
	distances := make([]float64, n)
	ceilings := make([]float64, n)
	gains := make([]float64, n)
	varios := make([]float64, n)
	gs := make([]float64, n)
	durations := make([]float64, n)

	for i, row := range group {
		pilots[row.Pilot] = true
		sites[row.Site] = true
		equipment[row.Equipment] = true

		meanSpeeds[i] = row.MeanSpeed
		maxSpeeds[i] = float64(row.MaxSpeed)
		distances[i] = float64(row.CumulativeDistance)
		ceilings[i] = float64(row.Ceiling)
		gains[i] = float64(row.AltitudeGain)
		varios[i] = row.VarioMax
		gs[i] = row.GMax
		durations[i] = row.DurationMinutes
	}

	return models.AggregateRow{
		Value:          value,
		FlightCount:    n,
		PilotCount:     len(pilots),
		SiteCount:      len(sites),
		EquipmentCount: len(equipment),

		MeanMeanSpeed:          Mean(meanSpeeds),
		MaxMeanSpeed:           Max(meanSpeeds),
		MeanMaxSpeed:           Mean(maxSpeeds),
		MaxMaxSpeed:            Max(maxSpeeds),
		MeanCumulativeDistance: Mean(distances),
		MaxCumulativeDistance:  Max(distances),
		MeanCeiling:            Mean(ceilings),
		MaxCeiling:             Max(ceilings),
		MeanAltitudeGain:       Mean(gains),
		MaxAltitudeGain:        Max(gains),
		MeanVarioMax:           Mean(varios),
		MaxVarioMax:            Max(varios),
		MeanGMax:               Mean(gs),
		MaxGMax:                Max(gs),
		MeanDurationMinutes:    Mean(durations),
		MaxDurationMinutes:     Max(durations),

		CumulativeFlightHours: Sum(durations) / 60,
	}
}

// sortAggregates orders the view: enumerated order for weekday, month and
// season; alphabetical for the entity dimensions; descending value otherwise
// (years newest-first).
func sortAggregates(out []models.AggregateRow, dimension string) {
	switch dimension {
	case models.DimWeekday:
		sortByEnumeration(out, weekdayOrder)
	case models.DimMonth:
		sortByEnumeration(out, monthOrder())
	case models.DimSeason:
		sortByEnumeration(out, seasonOrder)
	case models.DimPilot, models.DimSite, models.DimEquipment:
		sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	default:
		sort.Slice(out, func(i, j int) bool {
			a, errA := strconv.Atoi(out[i].Value)
			b, errB := strconv.Atoi(out[j].Value)
			if errA == nil && errB == nil {
				return a > b
			}
			return out[i].Value > out[j].Value
		})
	}
}

func monthOrder() []string {
	order := make([]string, 12)
	for m := time.January; m <= time.December; m++ {
		order[m-1] = m.String()
	}
	return order
}

func sortByEnumeration(out []models.AggregateRow, order []string) {
	rank := make(map[string]int, len(order))
	for i, v := range order {
		rank[v] = i
	}
	sort.Slice(out, func(i, j int) bool {
		return rank[out[i].Value] < rank[out[j].Value]
	})
}
