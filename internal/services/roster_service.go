package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"squadron-ops/airboss/internal/common"
	"squadron-ops/airboss/internal/constants"
	gormModels "squadron-ops/airboss/internal/models/gorm"
)

const pilotCacheTTL = 5 * time.Minute

// RosterService owns pilot roster mutations. Pilots are soft-deleted only;
// a deactivated pilot keeps its assignment and currency history. Single-pilot
// reads go through the cache, writes drop the cached row.
type RosterService struct {
	db    *gorm.DB
	cache common.CacheInterface
}

func NewRosterService(db *gorm.DB, cache common.CacheInterface) *RosterService {
	return &RosterService{db: db, cache: cache}
}

func pilotCacheKey(id int64) string {
	return fmt.Sprintf("%s%d", constants.CachePrefixRoster, id)
}

func (s *RosterService) GetPilot(ctx context.Context, id int64) (*gormModels.Pilot, error) {
	if s.cache != nil {
		if val, found := s.cache.Get(pilotCacheKey(id)); found {
			if pilot, ok := val.(gormModels.Pilot); ok {
				return &pilot, nil
			}
		}
	}

	var pilot gormModels.Pilot
	if err := s.db.WithContext(ctx).First(&pilot, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &OpsError{
				Code:    constants.ErrCodePilotNotFound,
				Message: constants.GetErrorMessage(constants.ErrCodePilotNotFound),
				Err:     err,
			}
		}
		return nil, storageError(err)
	}

	if s.cache != nil {
		s.cache.Set(pilotCacheKey(id), pilot, pilotCacheTTL)
	}
	return &pilot, nil
}

func (s *RosterService) CreatePilot(ctx context.Context, pilot *gormModels.Pilot) error {
	if pilot.CallSign != nil && *pilot.CallSign != "" {
		var count int64
		if err := s.db.WithContext(ctx).Model(&gormModels.Pilot{}).
			Where("call_sign = ?", *pilot.CallSign).Count(&count).Error; err != nil {
			return storageError(err)
		}
		if count > 0 {
			return &OpsError{
				Code:    constants.ErrCodeDuplicateCallSign,
				Message: constants.GetErrorMessage(constants.ErrCodeDuplicateCallSign),
			}
		}
	}

	if err := s.db.WithContext(ctx).Create(pilot).Error; err != nil {
		return storageError(err)
	}
	return nil
}

func (s *RosterService) UpdatePilot(ctx context.Context, id int64, apply func(*gormModels.Pilot)) (*gormModels.Pilot, error) {
	pilot, err := s.GetPilot(ctx, id)
	if err != nil {
		return nil, err
	}

	apply(pilot)
	pilot.UpdatedAt = time.Now().UTC()

	if err := s.db.WithContext(ctx).Save(pilot).Error; err != nil {
		return nil, storageError(err)
	}

	s.invalidatePilot(id)
	return pilot, nil
}

// DeactivatePilot soft-deletes a pilot. Rows are never purged.
func (s *RosterService) DeactivatePilot(ctx context.Context, id int64) error {
	pilot, err := s.GetPilot(ctx, id)
	if err != nil {
		return err
	}

	pilot.IsActive = false
	if err := s.db.WithContext(ctx).Save(pilot).Error; err != nil {
		return storageError(err)
	}

	s.invalidatePilot(id)
	return nil
}

func (s *RosterService) invalidatePilot(id int64) {
	if s.cache != nil {
		s.cache.Delete(pilotCacheKey(id))
	}
}

func storageError(err error) *OpsError {
	return &OpsError{
		Code:    constants.ErrCodeStorageFailure,
		Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure),
		Err:     err,
	}
}
