package api

import (
	"encoding/json"
	"net/http"
	"time"

	"squadron-ops/airboss/internal/common"
	"squadron-ops/airboss/internal/constants"
	"squadron-ops/airboss/internal/models/dtos"
	gormModels "squadron-ops/airboss/internal/models/gorm"
)

// ListRequirementsHandler handles GET /api/v1/training/requirements
func ListRequirementsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		requirements, err := deps.Services.Readiness.ListRequirements(r.Context())
		if err != nil {
			handleOpsError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Training requirements fetched successfully", requirements)
	}
}

// CreateRequirementHandler handles POST /api/v1/training/requirements
func CreateRequirementHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.TrainingRequirementCreateReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.RequirementName == "" {
			common.RespondError(w, initTime, nil, "requirement_name is required", http.StatusBadRequest)
			return
		}

		requiredCount := req.RequiredCount
		if requiredCount <= 0 {
			requiredCount = 1
		}

		requirement := gormModels.TrainingRequirement{
			RequirementName: req.RequirementName,
			RequirementType: req.RequirementType,
			EventType:       req.EventType,
			RequiredCount:   requiredCount,
			Rules:           gormModels.JSONMap(req.Rules),
			IsActive:        true,
		}

		if err := deps.Services.Readiness.CreateRequirement(r.Context(), &requirement); err != nil {
			handleOpsError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Training requirement created successfully", requirement, http.StatusCreated)
	}
}

// PilotStatusHandler handles GET /api/v1/training/status/pilot/{id}
//
// Returns the stored status for the month, evaluating on the fly when no row
// exists yet.
func PilotStatusHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid pilot id", http.StatusBadRequest)
			return
		}
		month, err := queryMonth(r, "month")
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid month", http.StatusBadRequest)
			return
		}

		status, found, err := deps.Services.Readiness.GetStoredStatus(r.Context(), id, month)
		if err != nil {
			handleOpsError(w, initTime, err)
			return
		}
		if !found {
			status, err = deps.Services.Readiness.EvaluatePilotStatus(r.Context(), id, month)
			if err != nil {
				handleOpsError(w, initTime, err)
				return
			}
			deps.Metrics.EvaluationsTotal.WithLabelValues(string(status.QualificationStatus)).Inc()
		}

		common.RespondSuccess(w, initTime, "Pilot status fetched successfully", toStatusResp(status))
	}
}

// EvaluatePilotHandler handles POST /api/v1/training/status/evaluate/{id}
func EvaluatePilotHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid pilot id", http.StatusBadRequest)
			return
		}
		month, err := queryMonth(r, "month")
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid month", http.StatusBadRequest)
			return
		}

		status, err := deps.Services.Readiness.EvaluatePilotStatus(r.Context(), id, month)
		if err != nil {
			handleOpsError(w, initTime, err)
			return
		}

		deps.Metrics.EvaluationsTotal.WithLabelValues(string(status.QualificationStatus)).Inc()
		common.RespondSuccess(w, initTime, "Pilot evaluated successfully", toStatusResp(status))
	}
}

// EvaluateAllHandler handles POST /api/v1/training/status/evaluate-all
func EvaluateAllHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		month, err := queryMonth(r, "month")
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid month", http.StatusBadRequest)
			return
		}

		statuses, skipped, err := deps.Services.Readiness.EvaluateAllPilots(r.Context(), month)
		if err != nil {
			handleOpsError(w, initTime, err)
			return
		}

		resp := dtos.EvaluateAllResp{
			Evaluated: len(statuses),
			Skipped:   skipped,
			Statuses:  make([]dtos.PilotStatusResp, 0, len(statuses)),
		}
		for i := range statuses {
			deps.Metrics.EvaluationsTotal.WithLabelValues(string(statuses[i].QualificationStatus)).Inc()
			resp.Statuses = append(resp.Statuses, toStatusResp(&statuses[i]))
		}

		common.RespondSuccess(w, initTime, "All pilots evaluated", resp)
	}
}

func toStatusResp(status *gormModels.PilotStatus) dtos.PilotStatusResp {
	met := map[string]bool(status.RequirementsMet)
	if met == nil {
		met = map[string]bool{}
	}
	deficiencies := []string(status.Deficiencies)
	if deficiencies == nil {
		deficiencies = []string{}
	}

	return dtos.PilotStatusResp{
		PilotID:             status.PilotID,
		QualificationStatus: constants.QualificationStatus(status.QualificationStatus),
		EvaluationMonth:     status.EvaluationMonth,
		RequirementsMet:     met,
		Deficiencies:        deficiencies,
		LastUpdated:         status.LastUpdated,
	}
}
