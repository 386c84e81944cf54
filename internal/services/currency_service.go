package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"gorm.io/gorm"

	"squadron-ops/airboss/internal/common"
	"squadron-ops/airboss/internal/constants"
	"squadron-ops/airboss/internal/logging"
	gormModels "squadron-ops/airboss/internal/models/gorm"
)

// CurrencyService imports currency records from roster spreadsheets exported
// as CSV and derives their status. Every import inserts new rows; earlier
// records are kept as history.
type CurrencyService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewCurrencyService(db *gorm.DB) *CurrencyService {
	return &CurrencyService{db: db, now: time.Now}
}

// ImportCSV reads a header-mapped CSV (call_sign, currency_type,
// last_completed_date, expiration_date) and inserts a currency record per
// parseable row. Bad rows are logged and skipped, never abort the import.
func (s *CurrencyService) ImportCSV(ctx context.Context, reader io.Reader) ([]gormModels.CurrencyRecord, int, error) {
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, 0, &OpsError{
			Code:    constants.ErrCodeImportRowInvalid,
			Message: "CSV header could not be read",
			Err:     err,
		}
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["call_sign"]; !ok {
		return nil, 0, &OpsError{
			Code:    constants.ErrCodeImportRowInvalid,
			Message: "CSV is missing the call_sign column",
		}
	}

	callSigns, err := s.callSignIndex(ctx)
	if err != nil {
		return nil, 0, err
	}

	records := []gormModels.CurrencyRecord{}
	skipped := 0
	line := 1

	for {
		row, readErr := r.Read()
		if readErr == io.EOF {
			break
		}
		line++
		if readErr != nil {
			logging.Warn("Skipping unreadable CSV row", "line", line, "error", readErr.Error())
			skipped++
			continue
		}

		record, rowErr := s.buildRecord(row, columns, callSigns)
		if rowErr != nil {
			logging.Warn("Skipping CSV row", "line", line, "error", rowErr.Error())
			skipped++
			continue
		}

		if insertErr := s.db.WithContext(ctx).Create(record).Error; insertErr != nil {
			logging.Warn("Skipping CSV row, insert failed", "line", line, "error", insertErr.Error())
			skipped++
			continue
		}
		records = append(records, *record)
	}

	return records, skipped, nil
}

// DeriveStatus applies the fixed 30-day threshold to an expiration date.
// A missing expiration date reads as current.
func (s *CurrencyService) DeriveStatus(expirationDate *time.Time) constants.CurrencyStatus {
	if expirationDate == nil {
		return constants.CurrencyCurrent
	}
	today := s.now().UTC().Truncate(24 * time.Hour)
	switch {
	case expirationDate.Before(today):
		return constants.CurrencyExpired
	case !expirationDate.After(today.AddDate(0, 0, constants.CurrencyExpiringWindowDays)):
		return constants.CurrencyExpiring
	default:
		return constants.CurrencyCurrent
	}
}

func (s *CurrencyService) callSignIndex(ctx context.Context) (map[string]int64, error) {
	var pilots []gormModels.Pilot
	if err := s.db.WithContext(ctx).Find(&pilots).Error; err != nil {
		return nil, &OpsError{
			Code:    constants.ErrCodeStorageFailure,
			Message: constants.GetErrorMessage(constants.ErrCodeStorageFailure),
			Err:     err,
		}
	}

	index := make(map[string]int64, len(pilots))
	for _, pilot := range pilots {
		if pilot.CallSign != nil && *pilot.CallSign != "" {
			index[*pilot.CallSign] = pilot.ID
		}
	}
	return index, nil
}

func (s *CurrencyService) buildRecord(row []string, columns map[string]int, callSigns map[string]int64) (*gormModels.CurrencyRecord, error) {
	cell := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	callSign := cell("call_sign")
	pilotID, ok := callSigns[callSign]
	if !ok {
		return nil, fmt.Errorf("no pilot with call sign %q", callSign)
	}

	currencyType := cell("currency_type")
	if currencyType == "" {
		currencyType = "unknown"
	}

	var lastCompleted *time.Time
	if v := cell("last_completed_date"); v != "" {
		if t, err := common.ParseFlexibleTime(v); err == nil {
			lastCompleted = &t
		}
	}

	var expiration *time.Time
	if v := cell("expiration_date"); v != "" {
		if t, err := common.ParseFlexibleTime(v); err == nil {
			expiration = &t
		}
	}

	raw := gormModels.JSONMap{}
	for name, i := range columns {
		if i < len(row) {
			raw[name] = row[i]
		}
	}

	return &gormModels.CurrencyRecord{
		PilotID:           pilotID,
		CurrencyType:      currencyType,
		LastCompletedDate: lastCompleted,
		ExpirationDate:    expiration,
		Status:            s.DeriveStatus(expiration),
		RawData:           raw,
	}, nil
}
