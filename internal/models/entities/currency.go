package entities

import (
	"encoding/json"
	"time"
)

type CurrencyRecord struct {
	ID                int64           `db:"id"`
	PilotID           int64           `db:"pilot_id"`
	CurrencyType      string          `db:"currency_type"`
	LastCompletedDate *time.Time      `db:"last_completed_date"`
	ExpirationDate    *time.Time      `db:"expiration_date"`
	Status            *string         `db:"status"`
	RawData           json.RawMessage `db:"raw_data"`
	ImportedAt        time.Time       `db:"imported_at"`
}
