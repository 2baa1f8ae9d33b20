package stats

import "github.com/amoreau/flightlog-backend-go/internal/models"

// Summarize computes the dashboard's headline figures over a filtered row
// set. Speed, distance, ceiling, vario and g statistics ignore non-positive
// values because zero is the sentinel for a missing measurement; the duration
// figures use every row.
func Summarize(rows []models.FlightRow) models.FlightSummary {
	pilots := make(map[string]bool)
	sites := make(map[string]bool)

	n := len(rows)
	meanSpeeds := make([]float64, n)
	maxSpeeds := make([]float64, n)
	distances := make([]float64, n)
	ceilings := make([]float64, n)
	varios := make([]float64, n)
	gs := make([]float64, n)
	durations := make([]float64, n)

	for i, row := range rows {
		pilots[row.Pilot] = true
		sites[row.Site] = true

		meanSpeeds[i] = row.MeanSpeed
		maxSpeeds[i] = float64(row.MaxSpeed)
		distances[i] = float64(row.CumulativeDistance)
		ceilings[i] = float64(row.Ceiling)
		varios[i] = row.VarioMax
		gs[i] = row.GMax
		durations[i] = row.DurationMinutes
	}

	totalMinutes := int(Sum(durations) + 0.5)

	return models.FlightSummary{
		FlightCount:  n,
		PilotCount:   len(pilots),
		SiteCount:    len(sites),
		TotalHours:   totalMinutes / 60,
		TotalMinutes: totalMinutes % 60,

		MeanMeanSpeed:          MeanPositive(meanSpeeds),
		MaxMeanSpeed:           MaxPositive(meanSpeeds),
		MeanMaxSpeed:           MeanPositive(maxSpeeds),
		MaxMaxSpeed:            MaxPositive(maxSpeeds),
		MeanDurationMinutes:    Mean(durations),
		MaxDurationMinutes:     Max(durations),
		MeanCumulativeDistance: MeanPositive(distances),
		MaxCumulativeDistance:  MaxPositive(distances),
		MeanCeiling:            MeanPositive(ceilings),
		MaxCeiling:             MaxPositive(ceilings),
		MeanVarioMax:           MeanPositive(varios),
		MaxVarioMax:            MaxPositive(varios),
		MeanGMax:               MeanPositive(gs),
		MaxGMax:                MaxPositive(gs),
	}
}
