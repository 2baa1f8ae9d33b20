package pipeline

import (
	"strings"

	"github.com/amoreau/flightlog-backend-go/internal/models"
)

// classify assigns the motorized/unmotorized activity class. The default
// comes from the activity-type label; equipment overrides follow in a fixed
// order, motorized set first, so an equipment label listed in both sets ends
// up unmotorized.
func (p *Pipeline) classify(rows []models.FlightRow) ([]models.FlightRow, error) {
	out := make([]models.FlightRow, len(rows))
	for i, row := range rows {
		row.Class = models.ClassUnmotorized
		if p.poweredTypes[row.ActivityType] {
			row.Class = models.ClassMotorized
		}

		equipment := strings.ToLower(row.Equipment)
		if p.motorizedEquipment[equipment] {
			row.Class = models.ClassMotorized
		}
		if p.unmotorizedEquipment[equipment] {
			row.Class = models.ClassUnmotorized
		}
		out[i] = row
	}
	return out, nil
}

// calendar decomposes the flight date into year, month and weekday name
func calendar(rows []models.FlightRow) ([]models.FlightRow, error) {
	out := make([]models.FlightRow, len(rows))
	for i, row := range rows {
		row.Year = row.Date.Year()
		row.Month = int(row.Date.Month())
		row.Weekday = row.Date.Weekday().String()
		out[i] = row
	}
	return out, nil
}

// season assigns the meteorological season bucket from the month
func season(rows []models.FlightRow) ([]models.FlightRow, error) {
	out := make([]models.FlightRow, len(rows))
	for i, row := range rows {
		switch row.Month {
		case 12, 1, 2:
			row.Season = models.SeasonWinter
		case 3, 4, 5:
			row.Season = models.SeasonSpring
		case 6, 7, 8:
			row.Season = models.SeasonSummer
		case 9, 10, 11:
			row.Season = models.SeasonAutumn
		}
		out[i] = row
	}
	return out, nil
}

// siteMeans computes the mean trace coordinate per site over rows that have
// one, and broadcasts it to every row of the site. Sites whose rows all lack
// coordinates keep null means. It must run after canonicalization and after
// all pilots' rows have been merged, so that spelling variants and other
// pilots' flights contribute to the same site.
func siteMeans(rows []models.FlightRow) ([]models.FlightRow, error) {
	type acc struct {
		sumLon, sumLat float64
		n              int
	}
	bySite := make(map[string]*acc)
	for _, row := range rows {
		if row.Longitude == nil || row.Latitude == nil {
			continue
		}
		a, ok := bySite[row.Site]
		if !ok {
			a = &acc{}
			bySite[row.Site] = a
		}
		a.sumLon += *row.Longitude
		a.sumLat += *row.Latitude
		a.n++
	}

	means := make(map[string][2]float64, len(bySite))
	for site, a := range bySite {
		means[site] = [2]float64{a.sumLon / float64(a.n), a.sumLat / float64(a.n)}
	}

	out := make([]models.FlightRow, len(rows))
	for i, row := range rows {
		if m, ok := means[row.Site]; ok {
			lon, lat := m[0], m[1]
			row.MeanLongitude = &lon
			row.MeanLatitude = &lat
		}
		out[i] = row
	}
	return out, nil
}
