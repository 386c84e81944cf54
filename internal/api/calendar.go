package api

import (
	"net/http"
	"time"

	"squadron-ops/airboss/internal/common"
)

// PilotCalendarHandler handles GET /api/v1/calendar/pilot/{id}/ics
func PilotCalendarHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid pilot id", http.StatusBadRequest)
			return
		}

		startDate, err := queryTime(r, "start_date")
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid start_date", http.StatusBadRequest)
			return
		}
		endDate, err := queryTime(r, "end_date")
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid end_date", http.StatusBadRequest)
			return
		}

		feed, err := deps.Services.Calendar.ICSForPilot(r.Context(), id, startDate, endDate)
		if err != nil {
			handleOpsError(w, initTime, err)
			return
		}

		deps.Metrics.CalendarExportsTotal.Inc()

		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename=schedule.ics")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(feed))
	}
}

// AllCalendarsHandler handles GET /api/v1/calendar/ics
//
// Returns one feed per active pilot, keyed by pilot id.
func AllCalendarsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		startDate, err := queryTime(r, "start_date")
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid start_date", http.StatusBadRequest)
			return
		}
		endDate, err := queryTime(r, "end_date")
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid end_date", http.StatusBadRequest)
			return
		}

		feeds, err := deps.Services.Calendar.ICSForAllPilots(r.Context(), startDate, endDate)
		if err != nil {
			handleOpsError(w, initTime, err)
			return
		}

		deps.Metrics.CalendarExportsTotal.Add(float64(len(feeds)))
		common.RespondSuccess(w, initTime, "Calendar feeds generated successfully", feeds)
	}
}
