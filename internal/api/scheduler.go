package api

import (
	"encoding/json"
	"net/http"
	"time"

	"squadron-ops/airboss/internal/common"
	"squadron-ops/airboss/internal/models/dtos"
)

// OptimizeScheduleHandler handles POST /api/v1/scheduler/optimize
//
// Runs the greedy assignment pass over the requested events and returns the
// proposed pilot ids per event. Nothing is persisted; callers confirm
// assignments through the events endpoints.
func OptimizeScheduleHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.OptimizeScheduleReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}
		if len(req.EventIDs) == 0 {
			common.RespondError(w, initTime, nil, "event_ids must not be empty", http.StatusBadRequest)
			return
		}

		events, err := deps.Services.Events.GetEvents(r.Context(), req.EventIDs)
		if err != nil {
			handleOpsError(w, initTime, err)
			return
		}

		assignments, err := deps.Services.Scheduler.OptimizeSchedule(r.Context(), events, req.Constraints)
		if err != nil {
			handleOpsError(w, initTime, err)
			return
		}

		for _, pilotIDs := range assignments {
			deps.Metrics.AssignmentsTotal.Add(float64(len(pilotIDs)))
		}

		common.RespondSuccess(w, initTime, "Schedule optimized successfully",
			dtos.OptimizeScheduleResp{Assignments: assignments})
	}
}
