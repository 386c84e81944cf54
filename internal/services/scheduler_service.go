package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"squadron-ops/airboss/internal/common"
	"squadron-ops/airboss/internal/constants"
	"squadron-ops/airboss/internal/logging"
	"squadron-ops/airboss/internal/models/dtos"
	gormModels "squadron-ops/airboss/internal/models/gorm"
)

// SchedulerService owns pilot availability checks, currency lookups and the
// greedy assignment engine.
type SchedulerService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSchedulerService(db *gorm.DB) *SchedulerService {
	return &SchedulerService{db: db, now: time.Now}
}

// IsPilotAvailable reports whether the pilot is free during [startTime, endTime).
//
// Declared time-off conflicts use inclusive comparisons at the off-interval
// edges: a window is clear only if it ends before the time-off starts or
// starts after it ends. Persisted assignments conflict under the half-open
// rule (existing.start < end && existing.end > start).
//
// A time-off entry that fails to parse makes the pilot unavailable and the
// error is returned for the caller to log or surface.
func (s *SchedulerService) IsPilotAvailable(ctx context.Context, pilot *gormModels.Pilot, startTime, endTime time.Time) (bool, error) {
	for _, period := range pilot.TimeOff {
		offStart, err := common.ParseFlexibleTime(period.Start)
		if err != nil {
			return false, &OpsError{
				Code:    constants.ErrCodeMalformedTimeOff,
				Message: constants.GetErrorMessage(constants.ErrCodeMalformedTimeOff),
				Err:     fmt.Errorf("pilot %d: %w", pilot.ID, err),
			}
		}
		offEnd, err := common.ParseFlexibleTime(period.End)
		if err != nil {
			return false, &OpsError{
				Code:    constants.ErrCodeMalformedTimeOff,
				Message: constants.GetErrorMessage(constants.ErrCodeMalformedTimeOff),
				Err:     fmt.Errorf("pilot %d: %w", pilot.ID, err),
			}
		}

		if !(endTime.Before(offStart) || startTime.After(offEnd)) {
			return false, nil
		}
	}

	var conflicts int64
	err := s.db.WithContext(ctx).
		Model(&gormModels.Event{}).
		Joins("JOIN event_assignments ON event_assignments.event_id = events.id").
		Where("event_assignments.pilot_id = ? AND events.start_time < ? AND events.end_time > ?",
			pilot.ID, endTime, startTime).
		Count(&conflicts).Error
	if err != nil {
		return false, &OpsError{
			Code:    constants.ErrCodeStorageFailure,
			Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure),
			Err:     err,
		}
	}

	return conflicts == 0, nil
}

// PilotsNeedingCurrency returns the active pilots whose currency of the given
// type expires within daysUntilExpiration days. Already-expired records
// qualify too, since their expiration date precedes any future cutoff.
func (s *SchedulerService) PilotsNeedingCurrency(ctx context.Context, currencyType string, daysUntilExpiration int) ([]gormModels.Pilot, error) {
	cutoff := s.now().UTC().AddDate(0, 0, daysUntilExpiration)

	var pilotIDs []int64
	err := s.db.WithContext(ctx).
		Model(&gormModels.CurrencyRecord{}).
		Where("currency_type = ? AND expiration_date IS NOT NULL AND expiration_date <= ?", currencyType, cutoff).
		Distinct().
		Pluck("pilot_id", &pilotIDs).Error
	if err != nil {
		return nil, &OpsError{
			Code:    constants.ErrCodeStorageFailure,
			Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure),
			Err:     err,
		}
	}

	if len(pilotIDs) == 0 {
		return []gormModels.Pilot{}, nil
	}

	var pilots []gormModels.Pilot
	err = s.db.WithContext(ctx).
		Where("id IN ? AND is_active = ?", pilotIDs, true).
		Find(&pilots).Error
	if err != nil {
		return nil, &OpsError{
			Code:    constants.ErrCodeStorageFailure,
			Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure),
			Err:     err,
		}
	}

	return pilots, nil
}

// OptimizeSchedule assigns pilots to a batch of events with a single greedy
// pass and returns event id → ordered pilot ids.
//
// Availability is always evaluated against persisted assignments, never
// against assignments made earlier in the same run. Two overlapping events in
// one batch can therefore receive the same pilot. Known heuristic limitation,
// kept deliberately.
//
// Running out of candidates is not an error; short positions stay unfilled
// and the partial result is returned.
func (s *SchedulerService) OptimizeSchedule(ctx context.Context, events []gormModels.Event, constraints dtos.ScheduleConstraints) (map[int64][]int64, error) {
	assignments := make(map[int64][]int64, len(events))

	var pilots []gormModels.Pilot
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Order("id").Find(&pilots).Error; err != nil {
		return nil, &OpsError{
			Code:    constants.ErrCodeStorageFailure,
			Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure),
			Err:     err,
		}
	}

	workload := make(map[int64]int, len(pilots))
	for _, p := range pilots {
		workload[p.ID] = 0
	}

	sorted := make([]gormModels.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})

	currencyDays := constraints.CurrencyDays
	if currencyDays <= 0 {
		currencyDays = constants.DefaultCurrencyDays
	}

	for _, event := range sorted {
		pool := make([]gormModels.Pilot, 0, len(pilots))
		for i := range pilots {
			ok, err := s.IsPilotAvailable(ctx, &pilots[i], event.StartTime, event.EndTime)
			if err != nil {
				// Defensive: an unparseable time-off entry removes the pilot
				// from this event's pool instead of failing the batch.
				logging.Warn("Skipping pilot with unreadable availability",
					"pilot_id", pilots[i].ID,
					"event_id", event.ID,
					"error", err.Error(),
				)
				continue
			}
			if ok {
				pool = append(pool, pilots[i])
			}
		}

		if constraints.PrioritizeCurrency {
			needing, err := s.PilotsNeedingCurrency(ctx, constraints.CurrencyType, currencyDays)
			if err != nil {
				return nil, err
			}
			needingIDs := make(map[int64]struct{}, len(needing))
			for _, p := range needing {
				needingIDs[p.ID] = struct{}{}
			}

			sort.SliceStable(pool, func(i, j int) bool {
				_, iNeeds := needingIDs[pool[i].ID]
				_, jNeeds := needingIDs[pool[j].ID]
				if iNeeds != jNeeds {
					return iNeeds
				}
				return workload[pool[i].ID] < workload[pool[j].ID]
			})
		} else {
			sort.SliceStable(pool, func(i, j int) bool {
				return workload[pool[i].ID] < workload[pool[j].ID]
			})
		}

		assigned := []int64{}
		for _, position := range positionNames(event.CrewComposition) {
			count := positionCount(event.CrewComposition, position)
			for n := 0; n < count; n++ {
				if len(pool) == 0 {
					break
				}
				pilot := pool[0]
				pool = pool[1:]
				assigned = append(assigned, pilot.ID)
				workload[pilot.ID]++
			}
		}

		assignments[event.ID] = assigned
	}

	return assignments, nil
}

// positionNames extracts the position keys of a crew composition in sorted
// order. The source of truth is a schema-flexible JSON map; sorting gives the
// deterministic iteration order a Go map lacks.
func positionNames(comp gormModels.JSONMap) []string {
	positions, ok := comp["positions"].(map[string]interface{})
	if !ok {
		return nil
	}
	names := make([]string, 0, len(positions))
	for name := range positions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// positionCount reads the required headcount for one position. JSON numbers
// decode as float64; ints show up from hand-built fixtures.
func positionCount(comp gormModels.JSONMap, position string) int {
	positions, ok := comp["positions"].(map[string]interface{})
	if !ok {
		return 0
	}
	switch v := positions[position].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
