package repositories

import (
	"context"
	"time"

	"squadron-ops/airboss/internal/constants"
	"squadron-ops/airboss/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type CurrencyRepository struct {
	db *sqlx.DB
}

func NewCurrencyRepository(db *sqlx.DB) *CurrencyRepository {
	return &CurrencyRepository{db}
}

// RecordsForPilot returns every import row for a pilot, newest import first.
func (r *CurrencyRepository) RecordsForPilot(ctx context.Context, pilotID int64) ([]entities.CurrencyRecord, error) {
	records := []entities.CurrencyRecord{}
	if err := r.db.SelectContext(ctx, &records, constants.GetCurrencyRecordsByPilot, pilotID); err != nil {
		return nil, err
	}
	return records, nil
}

// ExpiringRecords returns records of the given type expiring on or before the
// cutoff, expired ones included.
func (r *CurrencyRepository) ExpiringRecords(ctx context.Context, currencyType string, cutoff time.Time) ([]entities.CurrencyRecord, error) {
	records := []entities.CurrencyRecord{}
	if err := r.db.SelectContext(ctx, &records, constants.GetExpiringCurrencyRecords, currencyType, cutoff); err != nil {
		return nil, err
	}
	return records, nil
}
