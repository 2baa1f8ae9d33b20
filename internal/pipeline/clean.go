package pipeline

import "github.com/amoreau/flightlog-backend-go/internal/models"

// Ground-level GPS noise and aborted launches record ceilings at or below
// this altitude; such rows are invalid flights.
const minCeiling = 50

// dropLowCeiling keeps rows with a ceiling strictly above the validity
// threshold. It must run before any filter that assumes the ceiling is a
// meaningful positive value.
func dropLowCeiling(rows []models.FlightRow) ([]models.FlightRow, error) {
	kept := make([]models.FlightRow, 0, len(rows))
	for _, row := range rows {
		if row.Ceiling > minCeiling {
			kept = append(kept, row)
		}
	}
	return kept, nil
}

// dropTwoSeat removes flights on the two-seat / instructional configuration
func (p *Pipeline) dropTwoSeat(rows []models.FlightRow) ([]models.FlightRow, error) {
	kept := make([]models.FlightRow, 0, len(rows))
	for _, row := range rows {
		if row.Equipment == p.rules.TwoSeatEquipment {
			continue
		}
		kept = append(kept, row)
	}
	return kept, nil
}

// dropZeroNative removes zero-duration rows whose telemetry came from the
// vendor's own sensor; a native tracker reporting no airtime is a sensor
// glitch. Manually logged zero-duration rows are kept as-is.
func dropZeroNative(rows []models.FlightRow) ([]models.FlightRow, error) {
	kept := make([]models.FlightRow, 0, len(rows))
	for _, row := range rows {
		if row.Native && row.DurationMinutes == 0 {
			continue
		}
		kept = append(kept, row)
	}
	return kept, nil
}
