package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"squadron-ops/airboss/internal/common"
	"squadron-ops/airboss/internal/constants"
	"squadron-ops/airboss/internal/logging"
	gormModels "squadron-ops/airboss/internal/models/gorm"
)

const requirementsCacheKey = string(constants.CachePrefixRequirements) + "ACTIVE"

// ReadinessService evaluates monthly CMR/BMC status from effective event
// participation against the active training requirements.
type ReadinessService struct {
	db    *gorm.DB
	cache common.CacheInterface
	now   func() time.Time
}

func NewReadinessService(db *gorm.DB, cache common.CacheInterface) *ReadinessService {
	return &ReadinessService{db: db, cache: cache, now: time.Now}
}

// EvaluatePilotStatus computes and persists the pilot's qualification status
// for the given month. The month is normalized to its first calendar day
// before any query or storage, and re-evaluation overwrites the existing row
// for that (pilot, month) pair.
func (s *ReadinessService) EvaluatePilotStatus(ctx context.Context, pilotID int64, evaluationMonth time.Time) (*gormModels.PilotStatus, error) {
	var pilot gormModels.Pilot
	if err := s.db.WithContext(ctx).First(&pilot, pilotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &OpsError{
				Code:    constants.ErrCodePilotNotFound,
				Message: constants.GetErrorMessage(constants.ErrCodePilotNotFound),
				Err:     err,
			}
		}
		return nil, &OpsError{
			Code:    constants.ErrCodeStorageFailure,
			Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure),
			Err:     err,
		}
	}

	requirements, err := s.activeRequirements(ctx)
	if err != nil {
		return nil, err
	}

	year, month, _ := evaluationMonth.UTC().Date()
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	var monthEnd time.Time
	if month == time.December {
		monthEnd = time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	} else {
		monthEnd = time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	}

	flightCount, simCount, err := s.countEffectiveEvents(ctx, pilotID, monthStart, common.EndOfDay(monthEnd))
	if err != nil {
		return nil, err
	}

	requirementsMet := gormModels.BoolMap{}
	deficiencies := gormModels.StringList{}

	for _, requirement := range requirements {
		met := false

		switch constants.RequirementPeriod(requirement.RequirementType) {
		case constants.PeriodMonthly:
			met = categoryMet(requirement, flightCount, simCount)
		case constants.PeriodQuarterly:
			// Fixed 90-day lookback from month start, not calendar-quarter
			// aligned.
			quarterStart := monthStart.AddDate(0, 0, -constants.QuarterLookbackDays)
			qFlights, qSims, qErr := s.countEffectiveEvents(ctx, pilotID, quarterStart, common.EndOfDay(monthEnd))
			if qErr != nil {
				return nil, qErr
			}
			met = categoryMet(requirement, qFlights, qSims)
		default:
			// Unknown period: never met, no error.
		}

		requirementsMet[requirement.RequirementName] = met
		if !met {
			deficiencies = append(deficiencies, requirement.RequirementName)
		}
	}

	qualificationStatus := constants.StatusNotQualified
	if allMet(requirementsMet) {
		qualificationStatus = constants.StatusCMR
	} else if len(deficiencies) <= 1 {
		// One deficiency still rates basic mission capable.
		qualificationStatus = constants.StatusBMC
	}

	status, err := s.upsertStatus(ctx, pilotID, monthStart, qualificationStatus, requirementsMet, deficiencies)
	if err != nil {
		return nil, err
	}
	return status, nil
}

// EvaluateAllPilots evaluates every active pilot for the month. A failure for
// one pilot is logged and skipped; the batch never aborts.
func (s *ReadinessService) EvaluateAllPilots(ctx context.Context, evaluationMonth time.Time) ([]gormModels.PilotStatus, int, error) {
	var pilots []gormModels.Pilot
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Order("id").Find(&pilots).Error; err != nil {
		return nil, 0, &OpsError{
			Code:    constants.ErrCodeStorageFailure,
			Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure),
			Err:     err,
		}
	}

	statuses := make([]gormModels.PilotStatus, 0, len(pilots))
	skipped := 0

	for _, pilot := range pilots {
		status, err := s.EvaluatePilotStatus(ctx, pilot.ID, evaluationMonth)
		if err != nil {
			logging.Error("Pilot evaluation failed, skipping",
				"pilot_id", pilot.ID,
				"month", evaluationMonth.Format("2006-01"),
				"error", err.Error(),
			)
			skipped++
			continue
		}
		statuses = append(statuses, *status)
	}

	return statuses, skipped, nil
}

// ListRequirements returns the active training requirements.
func (s *ReadinessService) ListRequirements(ctx context.Context) ([]gormModels.TrainingRequirement, error) {
	return s.activeRequirements(ctx)
}

// CreateRequirement inserts a training requirement with a unique name and
// drops the cached active set.
func (s *ReadinessService) CreateRequirement(ctx context.Context, requirement *gormModels.TrainingRequirement) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&gormModels.TrainingRequirement{}).
		Where("requirement_name = ?", requirement.RequirementName).Count(&count).Error; err != nil {
		return &OpsError{
			Code:    constants.ErrCodeStorageFailure,
			Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure),
			Err:     err,
		}
	}
	if count > 0 {
		return &OpsError{
			Code:    constants.ErrCodeDuplicateRequirement,
			Message: constants.GetErrorMessage(constants.ErrCodeDuplicateRequirement),
		}
	}

	if err := s.db.WithContext(ctx).Create(requirement).Error; err != nil {
		return &OpsError{
			Code:    constants.ErrCodeStorageFailure,
			Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure),
			Err:     err,
		}
	}

	s.InvalidateRequirementsCache()
	return nil
}

// GetStoredStatus returns the persisted status row for the pilot and month,
// or gorm.ErrRecordNotFound wrapped when none exists yet.
func (s *ReadinessService) GetStoredStatus(ctx context.Context, pilotID int64, evaluationMonth time.Time) (*gormModels.PilotStatus, bool, error) {
	year, month, _ := evaluationMonth.UTC().Date()
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	var status gormModels.PilotStatus
	err := s.db.WithContext(ctx).
		Where("pilot_id = ? AND evaluation_month = ?", pilotID, monthStart).
		First(&status).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &OpsError{
			Code:    constants.ErrCodeStorageFailure,
			Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure),
			Err:     err,
		}
	}
	return &status, true, nil
}

// InvalidateRequirementsCache drops the cached active-requirement set. Called
// after requirement writes.
func (s *ReadinessService) InvalidateRequirementsCache() {
	if s.cache != nil {
		s.cache.Delete(requirementsCacheKey)
	}
}

func (s *ReadinessService) activeRequirements(ctx context.Context) ([]gormModels.TrainingRequirement, error) {
	if s.cache != nil {
		if val, found := s.cache.Get(requirementsCacheKey); found {
			if requirements, ok := val.([]gormModels.TrainingRequirement); ok {
				return requirements, nil
			}
		}
	}

	var requirements []gormModels.TrainingRequirement
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id").
		Find(&requirements).Error
	if err != nil {
		return nil, &OpsError{
			Code:    constants.ErrCodeStorageFailure,
			Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure),
			Err:     err,
		}
	}

	if s.cache != nil {
		s.cache.Set(requirementsCacheKey, requirements, 5*time.Minute)
	}
	return requirements, nil
}

// countEffectiveEvents counts the pilot's effective events with a start time
// inside [windowStart, windowEnd], split by category.
func (s *ReadinessService) countEffectiveEvents(ctx context.Context, pilotID int64, windowStart, windowEnd time.Time) (flights int, simulators int, err error) {
	var events []gormModels.Event
	queryErr := s.db.WithContext(ctx).
		Joins("JOIN event_assignments ON event_assignments.event_id = events.id").
		Where("event_assignments.pilot_id = ? AND events.start_time >= ? AND events.start_time <= ? AND events.status = ?",
			pilotID, windowStart, windowEnd, constants.EventStatusEffective).
		Find(&events).Error
	if queryErr != nil {
		return 0, 0, &OpsError{
			Code:    constants.ErrCodeStorageFailure,
			Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure),
			Err:     queryErr,
		}
	}

	// The join yields one row per assignment, so a pilot holding two
	// positions on one event shows up twice. Count each event once.
	seen := make(map[int64]struct{}, len(events))
	for _, event := range events {
		if _, dup := seen[event.ID]; dup {
			continue
		}
		seen[event.ID] = struct{}{}

		if constants.CategoryOf(event.EventType) == constants.CategorySimulator {
			simulators++
		} else {
			flights++
		}
	}
	return flights, simulators, nil
}

func (s *ReadinessService) upsertStatus(
	ctx context.Context,
	pilotID int64,
	monthStart time.Time,
	qualificationStatus constants.QualificationStatus,
	requirementsMet gormModels.BoolMap,
	deficiencies gormModels.StringList,
) (*gormModels.PilotStatus, error) {
	var status gormModels.PilotStatus
	err := s.db.WithContext(ctx).
		Where("pilot_id = ? AND evaluation_month = ?", pilotID, monthStart).
		First(&status).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		status = gormModels.PilotStatus{
			PilotID:             pilotID,
			QualificationStatus: qualificationStatus,
			EvaluationMonth:     monthStart,
			RequirementsMet:     requirementsMet,
			Deficiencies:        deficiencies,
			LastUpdated:         s.now().UTC(),
		}
		if createErr := s.db.WithContext(ctx).Create(&status).Error; createErr != nil {
			return nil, &OpsError{
				Code:    constants.ErrCodeStorageFailure,
				Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure),
				Err:     createErr,
			}
		}
	case err != nil:
		return nil, &OpsError{
			Code:    constants.ErrCodeStorageFailure,
			Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure),
			Err:     err,
		}
	default:
		status.QualificationStatus = qualificationStatus
		status.RequirementsMet = requirementsMet
		status.Deficiencies = deficiencies
		status.LastUpdated = s.now().UTC()
		if saveErr := s.db.WithContext(ctx).Save(&status).Error; saveErr != nil {
			return nil, &OpsError{
				Code:    constants.ErrCodeStorageFailure,
				Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure),
				Err:     saveErr,
			}
		}
	}

	return &status, nil
}

func categoryMet(requirement gormModels.TrainingRequirement, flights, simulators int) bool {
	switch requirement.EventType {
	case constants.CategoryFlight:
		return flights >= requirement.RequiredCount
	case constants.CategorySimulator:
		return simulators >= requirement.RequiredCount
	case constants.CategoryBoth:
		return flights+simulators >= requirement.RequiredCount
	}
	return false
}

func allMet(met gormModels.BoolMap) bool {
	for _, ok := range met {
		if !ok {
			return false
		}
	}
	return true
}
