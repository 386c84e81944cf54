package api

import (
	"net/http"
	"time"

	"squadron-ops/airboss/internal/common"
)

// ListAircraftHandler handles GET /api/v1/resources/aircraft
func ListAircraftHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		aircraft, err := deps.Services.Resources.ListAircraft(r.Context())
		if err != nil {
			handleOpsError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Aircraft fetched successfully", aircraft)
	}
}

// ListSimulatorsHandler handles GET /api/v1/resources/simulators
func ListSimulatorsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		simulators, err := deps.Services.Resources.ListSimulators(r.Context())
		if err != nil {
			handleOpsError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Simulators fetched successfully", simulators)
	}
}
