// Package pipeline implements the batch normalization of raw scraped flight
// records into the typed, cleaned, canonicalized and enriched dataset the
// dashboard consumes. The stages run as an explicit ordered list of named
// transforms folded over the full table; each transform takes and returns a
// table and never mutates its input in place.
package pipeline

import (
	"strings"
	"time"

	"github.com/amoreau/flightlog-backend-go/internal/models"
	"github.com/amoreau/flightlog-backend-go/pkg/logger"
)

// Transform is one named step over the full table
type Transform struct {
	Name string
	Fn   func([]models.FlightRow) ([]models.FlightRow, error)
}

// Pipeline applies the normalization stages with a fixed rule set
type Pipeline struct {
	rules Rules
	log   *logger.Logger

	// lookup tables precomputed from the rules
	equipmentAliases     map[string]string
	poweredTypes         map[string]bool
	motorizedEquipment   map[string]bool
	unmotorizedEquipment map[string]bool
}

// New creates a pipeline from the given rule tables
func New(rules Rules, log *logger.Logger) *Pipeline {
	p := &Pipeline{
		rules:                rules,
		log:                  log.Named("pipeline"),
		equipmentAliases:     make(map[string]string, len(rules.EquipmentAliases)),
		poweredTypes:         make(map[string]bool, len(rules.PoweredTypes)),
		motorizedEquipment:   make(map[string]bool, len(rules.MotorizedEquipment)),
		unmotorizedEquipment: make(map[string]bool, len(rules.UnmotorizedEquipment)),
	}
	for variant, canonical := range rules.EquipmentAliases {
		p.equipmentAliases[strings.ToLower(variant)] = canonical
	}
	for _, label := range rules.PoweredTypes {
		p.poweredTypes[label] = true
	}
	for _, label := range rules.MotorizedEquipment {
		p.motorizedEquipment[strings.ToLower(label)] = true
	}
	for _, label := range rules.UnmotorizedEquipment {
		p.unmotorizedEquipment[strings.ToLower(label)] = true
	}
	return p
}

// perPilotTransforms is the ordered per-pilot stage list. The low-ceiling
// filter runs first so later stages see valid positive ceilings; the
// zero-duration filter relies on duration_minutes existing, which coercion
// guarantees.
func (p *Pipeline) perPilotTransforms() []Transform {
	return []Transform{
		{Name: "drop_low_ceiling", Fn: dropLowCeiling},
		{Name: "drop_two_seat", Fn: p.dropTwoSeat},
		{Name: "drop_zero_native", Fn: dropZeroNative},
		{Name: "canonicalize", Fn: p.canonicalize},
		{Name: "classify", Fn: p.classify},
		{Name: "calendar", Fn: calendar},
		{Name: "season", Fn: season},
	}
}

// BuildPilot runs one pilot's raw batch through coercion, the trace
// coordinate join and the per-pilot transforms. Each pilot's batch is
// independent; cross-pilot state is only read in Finalize.
func (p *Pipeline) BuildPilot(pilot string, records []models.RawFlightRecord, coords map[int]models.FirstCoordinate) ([]models.FlightRow, error) {
	log := p.log.With(logger.String("pilot", pilot))

	start := time.Now()
	rows, err := Coerce(records)
	if err != nil {
		return nil, err
	}
	log.Info("coerce",
		logger.Duration("took", time.Since(start)),
		logger.Int("rows_in", len(records)),
		logger.Int("rows_out", len(rows)))

	rows = joinCoordinates(rows, coords)

	return p.run(log, rows, p.perPilotTransforms())
}

// Finalize runs the stages that need the merged, all-pilot table: the
// per-site mean coordinates and the uniform build timestamp.
func (p *Pipeline) Finalize(rows []models.FlightRow, builtAt time.Time) ([]models.FlightRow, error) {
	rows, err := p.run(p.log, rows, []Transform{{Name: "site_means", Fn: siteMeans}})
	if err != nil {
		return nil, err
	}
	out := make([]models.FlightRow, len(rows))
	for i, row := range rows {
		row.BuiltAt = builtAt
		out[i] = row
	}
	return out, nil
}

// run folds the transforms over the table, logging what ran, in what order,
// and how the row count moved.
func (p *Pipeline) run(log *logger.Logger, rows []models.FlightRow, transforms []Transform) ([]models.FlightRow, error) {
	for _, t := range transforms {
		start := time.Now()
		in := len(rows)
		out, err := t.Fn(rows)
		if err != nil {
			return nil, err
		}
		log.Info(t.Name,
			logger.Duration("took", time.Since(start)),
			logger.Int("rows_in", in),
			logger.Int("rows_out", len(out)))
		rows = out
	}
	return rows, nil
}

// joinCoordinates left-joins the first trace coordinate by activity id.
// Activities without a trace keep null coordinates; that is not an error.
func joinCoordinates(rows []models.FlightRow, coords map[int]models.FirstCoordinate) []models.FlightRow {
	out := make([]models.FlightRow, len(rows))
	for i, row := range rows {
		if c, ok := coords[row.ActivityID]; ok {
			lon, lat := c.Longitude, c.Latitude
			row.Longitude = &lon
			row.Latitude = &lat
		}
		out[i] = row
	}
	return out
}
