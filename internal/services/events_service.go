package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"squadron-ops/airboss/internal/constants"
	gormModels "squadron-ops/airboss/internal/models/gorm"
)

// EventFilters narrows event listings. Zero values mean no filter.
type EventFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
	EventType constants.EventType
	Offset    int
	Limit     int
}

// EventsService owns event lifecycle and crew assignment rows.
type EventsService struct {
	db *gorm.DB
}

func NewEventsService(db *gorm.DB) *EventsService {
	return &EventsService{db: db}
}

func (s *EventsService) ListEvents(ctx context.Context, filters EventFilters) ([]gormModels.Event, error) {
	query := s.db.WithContext(ctx).Model(&gormModels.Event{}).Preload("Assignments")

	if filters.StartDate != nil {
		query = query.Where("start_time >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("start_time <= ?", *filters.EndDate)
	}
	if filters.EventType != "" {
		query = query.Where("event_type = ?", filters.EventType)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 100
	}

	var events []gormModels.Event
	if err := query.Order("start_time").Offset(filters.Offset).Limit(limit).Find(&events).Error; err != nil {
		return nil, storageError(err)
	}
	return events, nil
}

func (s *EventsService) GetEvent(ctx context.Context, id int64) (*gormModels.Event, error) {
	var event gormModels.Event
	err := s.db.WithContext(ctx).Preload("Assignments").First(&event, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &OpsError{
				Code:    constants.ErrCodeEventNotFound,
				Message: constants.GetErrorMessage(constants.ErrCodeEventNotFound),
				Err:     err,
			}
		}
		return nil, storageError(err)
	}
	return &event, nil
}

// GetEvents loads the given ids and fails if any is missing.
func (s *EventsService) GetEvents(ctx context.Context, ids []int64) ([]gormModels.Event, error) {
	var events []gormModels.Event
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&events).Error; err != nil {
		return nil, storageError(err)
	}
	if len(events) != len(ids) {
		return nil, &OpsError{
			Code:    constants.ErrCodeEventNotFound,
			Message: "Some events not found",
		}
	}
	return events, nil
}

// CreateEvent inserts the event and any inline assignments in one
// transaction.
func (s *EventsService) CreateEvent(ctx context.Context, event *gormModels.Event, assignments []gormModels.EventAssignment) error {
	if err := validateEvent(event); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return storageError(err)
		}
		for i := range assignments {
			assignments[i].EventID = event.ID
			if err := tx.Create(&assignments[i]).Error; err != nil {
				return storageError(err)
			}
		}
		return nil
	})
}

func (s *EventsService) UpdateEvent(ctx context.Context, id int64, apply func(*gormModels.Event)) (*gormModels.Event, error) {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	apply(event)
	if err := validateEvent(event); err != nil {
		return nil, err
	}

	event.UpdatedAt = time.Now().UTC()
	if err := s.db.WithContext(ctx).Save(event).Error; err != nil {
		return nil, storageError(err)
	}
	return event, nil
}

// DeleteEvent removes the event and its assignments.
func (s *EventsService) DeleteEvent(ctx context.Context, id int64) error {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", event.ID).Delete(&gormModels.EventAssignment{}).Error; err != nil {
			return storageError(err)
		}
		if err := tx.Delete(&gormModels.Event{}, event.ID).Error; err != nil {
			return storageError(err)
		}
		return nil
	})
}

func (s *EventsService) AddAssignment(ctx context.Context, eventID, pilotID int64, position string) (*gormModels.EventAssignment, error) {
	if _, err := s.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}

	var pilotCount int64
	if err := s.db.WithContext(ctx).Model(&gormModels.Pilot{}).Where("id = ?", pilotID).Count(&pilotCount).Error; err != nil {
		return nil, storageError(err)
	}
	if pilotCount == 0 {
		return nil, &OpsError{
			Code:    constants.ErrCodePilotNotFound,
			Message: constants.GetErrorMessage(constants.ErrCodePilotNotFound),
		}
	}

	assignment := gormModels.EventAssignment{
		EventID:  eventID,
		PilotID:  pilotID,
		Position: position,
	}
	if err := s.db.WithContext(ctx).Create(&assignment).Error; err != nil {
		return nil, storageError(err)
	}
	return &assignment, nil
}

func (s *EventsService) UpdateStatus(ctx context.Context, id int64, status constants.EventStatus) (*gormModels.Event, error) {
	if !constants.ValidEventStatus(status) {
		return nil, &OpsError{
			Code:    constants.ErrCodeInvalidEventStatus,
			Message: constants.GetErrorMessage(constants.ErrCodeInvalidEventStatus),
		}
	}

	return s.UpdateEvent(ctx, id, func(event *gormModels.Event) {
		event.Status = status
	})
}

func validateEvent(event *gormModels.Event) error {
	if !constants.ValidEventType(event.EventType) {
		return &OpsError{
			Code:    constants.ErrCodeInvalidEventType,
			Message: constants.GetErrorMessage(constants.ErrCodeInvalidEventType),
		}
	}
	if event.Status != "" && !constants.ValidEventStatus(event.Status) {
		return &OpsError{
			Code:    constants.ErrCodeInvalidEventStatus,
			Message: constants.GetErrorMessage(constants.ErrCodeInvalidEventStatus),
		}
	}
	if !event.StartTime.Before(event.EndTime) {
		return &OpsError{
			Code:    constants.ErrCodeInvalidEventWindow,
			Message: constants.GetErrorMessage(constants.ErrCodeInvalidEventWindow),
		}
	}
	return nil
}
