package api

import (
	"io"
	"net/http"
	"time"

	"squadron-ops/airboss/internal/common"
	"squadron-ops/airboss/internal/constants"
	"squadron-ops/airboss/internal/models/dtos"
)

// ImportCurrencyHandler handles POST /api/v1/currency/import
//
// Accepts a multipart upload under "file" or a raw CSV body.
func ImportCurrencyHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var reader io.Reader = r.Body
		if file, _, err := r.FormFile("file"); err == nil {
			defer file.Close()
			reader = file
		}

		records, skipped, err := deps.Services.Currency.ImportCSV(r.Context(), reader)
		if err != nil {
			handleOpsError(w, initTime, err)
			return
		}

		deps.Metrics.CurrencyRowsImported.Add(float64(len(records)))

		common.RespondSuccess(w, initTime, "Currency records imported", dtos.CurrencyImportResp{
			Imported: len(records),
			Skipped:  skipped,
			Records:  records,
		})
	}
}

// PilotCurrencyHandler handles GET /api/v1/currency/pilot/{id}
func PilotCurrencyHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid pilot id", http.StatusBadRequest)
			return
		}

		if _, err := deps.Services.Roster.GetPilot(r.Context(), id); err != nil {
			handleOpsError(w, initTime, err)
			return
		}

		records, err := deps.Repo.Currency.RecordsForPilot(r.Context(), id)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to fetch currency records", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Currency records fetched successfully", records)
	}
}

// ExpiringCurrencyHandler handles GET /api/v1/currency/expiring
func ExpiringCurrencyHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		currencyType := r.URL.Query().Get("currency_type")
		if currencyType == "" {
			common.RespondError(w, initTime, nil, "currency_type is required", http.StatusBadRequest)
			return
		}
		days := queryInt(r, "days", constants.DefaultCurrencyDays)
		cutoff := time.Now().UTC().AddDate(0, 0, days)

		records, err := deps.Repo.Currency.ExpiringRecords(r.Context(), currencyType, cutoff)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to fetch expiring records", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Expiring currency records fetched successfully", records)
	}
}
