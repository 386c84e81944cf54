package gorm

import (
	"time"

	"squadron-ops/airboss/internal/constants"
)

type CurrencyRecord struct {
	ID                int64                    `gorm:"column:id;primaryKey;autoIncrement"`
	PilotID           int64                    `gorm:"column:pilot_id;not null;index"`
	CurrencyType      string                   `gorm:"column:currency_type;not null;index"`
	LastCompletedDate *time.Time               `gorm:"column:last_completed_date"`
	ExpirationDate    *time.Time               `gorm:"column:expiration_date;index"`
	Status            constants.CurrencyStatus `gorm:"column:status"`

	// Original spreadsheet row, kept for audit. Imports always insert new
	// rows; history is never overwritten.
	RawData JSONMap `gorm:"column:raw_data;type:jsonb"`

	ImportedAt time.Time `gorm:"column:imported_at;autoCreateTime"`

	// Relationships
	Pilot Pilot `gorm:"foreignKey:PilotID"`
}

// TableName specifies the table name for GORM
func (CurrencyRecord) TableName() string {
	return "currency_records"
}
