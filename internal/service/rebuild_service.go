package service

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/amoreau/flightlog-backend-go/internal/models"
	"github.com/amoreau/flightlog-backend-go/internal/pipeline"
	"github.com/amoreau/flightlog-backend-go/internal/repository"
	"github.com/amoreau/flightlog-backend-go/internal/source"
	"github.com/amoreau/flightlog-backend-go/pkg/logger"
)

// RebuildResult summarizes one completed dataset rebuild
type RebuildResult struct {
	Pilots  int       `json:"pilots"`
	Flights int       `json:"flights"`
	BuiltAt time.Time `json:"built_at"`
}

// RebuildService runs a full dataset rebuild: every pilot's raw batch through
// the pipeline, merged, finalized and published into the snapshot in one
// transaction. A coercion failure anywhere discards the whole rebuild; the
// previous snapshot stays in place.
type RebuildService struct {
	src        *source.Source
	pipe       *pipeline.Pipeline
	flightRepo *repository.FlightRepository
	pilots     map[string]string // display name -> scraper folder
	log        *logger.Logger

	mu sync.Mutex // one rebuild at a time
}

// NewRebuildService creates a new rebuild service
func NewRebuildService(src *source.Source, pipe *pipeline.Pipeline, flightRepo *repository.FlightRepository, pilots map[string]string, log *logger.Logger) *RebuildService {
	return &RebuildService{
		src:        src,
		pipe:       pipe,
		flightRepo: flightRepo,
		pilots:     pilots,
		log:        log.Named("rebuild"),
	}
}

// Rebuild processes all configured pilots and swaps the snapshot
func (s *RebuildService) Rebuild() (*RebuildResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()

	// Deterministic pilot order keeps rebuild logs comparable across runs
	names := make([]string, 0, len(s.pilots))
	for name := range s.pilots {
		names = append(names, name)
	}
	sort.Strings(names)

	var merged []models.FlightRow
	for _, name := range names {
		folder := s.pilots[name]

		records, coords, err := s.src.LoadPilot(folder)
		if err != nil {
			return nil, fmt.Errorf("failed to load pilot %s: %w", name, err)
		}

		rows, err := s.pipe.BuildPilot(name, records, coords)
		if err != nil {
			return nil, fmt.Errorf("pilot %s: %w", name, err)
		}
		merged = append(merged, rows...)
	}

	builtAt := time.Now().UTC()
	merged, err := s.pipe.Finalize(merged, builtAt)
	if err != nil {
		return nil, err
	}

	if err := s.flightRepo.ReplaceAll(merged); err != nil {
		return nil, fmt.Errorf("failed to publish snapshot: %w", err)
	}

	s.log.Info("rebuild complete",
		logger.Int("pilots", len(names)),
		logger.Int("flights", len(merged)),
		logger.Duration("took", time.Since(start)))

	return &RebuildResult{
		Pilots:  len(names),
		Flights: len(merged),
		BuiltAt: builtAt,
	}, nil
}
