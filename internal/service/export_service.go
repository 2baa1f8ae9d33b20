package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/amoreau/flightlog-backend-go/internal/models"
	"github.com/amoreau/flightlog-backend-go/internal/stats"
)

// ExportService produces an XLSX workbook of the filtered dataset: one sheet
// of flight rows plus one aggregated sheet per grouping dimension.
type ExportService struct {
	flights *FlightService
}

// NewExportService creates a new export service
func NewExportService(flights *FlightService) *ExportService {
	return &ExportService{flights: flights}
}

// ExportWorkbook builds the workbook for the filtered subset
func (s *ExportService) ExportWorkbook(filter models.FlightFilter) (*bytes.Buffer, error) {
	rows, err := s.flights.GetFlights(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load flights for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeFlightsSheet(f, rows); err != nil {
		return nil, err
	}

	for _, dimension := range models.Dimensions {
		view, err := stats.GroupFlights(rows, dimension)
		if err != nil {
			return nil, err
		}
		if err := writeAggregateSheet(f, dimension, view); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf, nil
}

// ExportFilename names the download with the export timestamp
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("flights_%s.xlsx", now.Format("20060102_150405"))
}

func writeFlightsSheet(f *excelize.File, rows []models.FlightRow) error {
	const sheet = "flights"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to rename flights sheet: %w", err)
	}

	header := []interface{}{
		"pilot", "activity_id", "date", "time_of_day", "site", "equipment", "class",
		"duration_minutes", "cumulative_distance", "max_speed", "mean_speed",
		"ceiling", "altitude_gain", "vario_max", "g_max", "season", "weekday",
	}
	if err := writeRow(f, sheet, 1, header); err != nil {
		return err
	}

	for i, row := range rows {
		values := []interface{}{
			row.Pilot, row.ActivityID, row.Date.Format("2006-01-02"), row.TimeOfDay,
			row.Site, row.Equipment, row.Class,
			row.DurationMinutes, row.CumulativeDistance, row.MaxSpeed, row.MeanSpeed,
			row.Ceiling, row.AltitudeGain, row.VarioMax, row.GMax, row.Season, row.Weekday,
		}
		if err := writeRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func writeAggregateSheet(f *excelize.File, dimension string, view []models.AggregateRow) error {
	sheet := "by_" + dimension
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	header := []interface{}{
		dimension, "flight_count", "pilot_count", "site_count", "equipment_count",
		"cumulative_flight_hours", "mean_duration_minutes", "max_duration_minutes",
		"mean_cumulative_distance", "max_cumulative_distance",
		"mean_max_speed", "max_max_speed", "mean_mean_speed", "max_mean_speed",
		"mean_ceiling", "max_ceiling", "mean_altitude_gain", "max_altitude_gain",
		"mean_vario_max", "max_vario_max", "mean_g_max", "max_g_max",
	}
	if err := writeRow(f, sheet, 1, header); err != nil {
		return err
	}

	for i, row := range view {
		values := []interface{}{
			row.Value, row.FlightCount, row.PilotCount, row.SiteCount, row.EquipmentCount,
			row.CumulativeFlightHours, row.MeanDurationMinutes, row.MaxDurationMinutes,
			row.MeanCumulativeDistance, row.MaxCumulativeDistance,
			row.MeanMaxSpeed, row.MaxMaxSpeed, row.MeanMeanSpeed, row.MaxMeanSpeed,
			row.MeanCeiling, row.MaxCeiling, row.MeanAltitudeGain, row.MaxAltitudeGain,
			row.MeanVarioMax, row.MaxVarioMax, row.MeanGMax, row.MaxGMax,
		}
		if err := writeRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", row, sheet, err)
	}
	return nil
}
