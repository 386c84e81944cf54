package services

import (
	"context"

	"gorm.io/gorm"

	gormModels "squadron-ops/airboss/internal/models/gorm"
)

// ResourcesService lists the aircraft and simulator inventory events link to.
type ResourcesService struct {
	db *gorm.DB
}

func NewResourcesService(db *gorm.DB) *ResourcesService {
	return &ResourcesService{db: db}
}

func (s *ResourcesService) ListAircraft(ctx context.Context) ([]gormModels.Aircraft, error) {
	var aircraft []gormModels.Aircraft
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Order("tail_number").Find(&aircraft).Error; err != nil {
		return nil, storageError(err)
	}
	return aircraft, nil
}

func (s *ResourcesService) ListSimulators(ctx context.Context) ([]gormModels.Simulator, error) {
	var simulators []gormModels.Simulator
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Order("device_id").Find(&simulators).Error; err != nil {
		return nil, storageError(err)
	}
	return simulators, nil
}
