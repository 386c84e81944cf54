package api

import (
	"encoding/json"
	"net/http"
	"time"

	"squadron-ops/airboss/internal/common"
	"squadron-ops/airboss/internal/models/dtos"
	gormModels "squadron-ops/airboss/internal/models/gorm"
)

// ListPilotsHandler handles GET /api/v1/pilots
func ListPilotsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		offset := queryInt(r, "offset", 0)
		limit := queryInt(r, "limit", 50)

		pilots, err := deps.Repo.Pilots.ListActive(r.Context(), offset, limit)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to list pilots", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Pilots fetched successfully", pilots)
	}
}

// GetPilotHandler handles GET /api/v1/pilots/{id}
func GetPilotHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid pilot id", http.StatusBadRequest)
			return
		}

		pilot, err := deps.Services.Roster.GetPilot(r.Context(), id)
		if err != nil {
			handleOpsError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Pilot fetched successfully", pilot)
	}
}

// CreatePilotHandler handles POST /api/v1/pilots
func CreatePilotHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.PilotCreateReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		pilot := gormModels.Pilot{
			CallSign:       req.CallSign,
			Rank:           req.Rank,
			Qualifications: gormModels.StringList(req.Qualifications),
			Availability:   gormModels.JSONMap(req.Availability),
			TimeOff:        gormModels.TimeOffList(req.TimeOff),
			Notes:          req.Notes,
			IsActive:       true,
			B2Requirement:  req.B2Requirement,
			T38Requirement: req.T38Requirement,
			WSTRequirement: req.WSTRequirement,
		}

		if err := deps.Services.Roster.CreatePilot(r.Context(), &pilot); err != nil {
			handleOpsError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Pilot created successfully", pilot, http.StatusCreated)
	}
}

// UpdatePilotHandler handles PUT /api/v1/pilots/{id}
func UpdatePilotHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid pilot id", http.StatusBadRequest)
			return
		}

		var req dtos.PilotUpdateReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		pilot, err := deps.Services.Roster.UpdatePilot(r.Context(), id, func(p *gormModels.Pilot) {
			if req.CallSign != nil {
				p.CallSign = req.CallSign
			}
			if req.Rank != nil {
				p.Rank = req.Rank
			}
			if req.Qualifications != nil {
				p.Qualifications = gormModels.StringList(req.Qualifications)
			}
			if req.Availability != nil {
				p.Availability = gormModels.JSONMap(req.Availability)
			}
			if req.TimeOff != nil {
				p.TimeOff = gormModels.TimeOffList(req.TimeOff)
			}
			if req.Notes != nil {
				p.Notes = req.Notes
			}
			if req.IsActive != nil {
				p.IsActive = *req.IsActive
			}
			if req.B2Requirement != nil {
				p.B2Requirement = *req.B2Requirement
			}
			if req.T38Requirement != nil {
				p.T38Requirement = *req.T38Requirement
			}
			if req.WSTRequirement != nil {
				p.WSTRequirement = *req.WSTRequirement
			}
		})
		if err != nil {
			handleOpsError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Pilot updated successfully", pilot)
	}
}

// DeletePilotHandler handles DELETE /api/v1/pilots/{id}. Pilots are
// deactivated, never removed.
func DeletePilotHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid pilot id", http.StatusBadRequest)
			return
		}

		if err := deps.Services.Roster.DeactivatePilot(r.Context(), id); err != nil {
			handleOpsError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Pilot deactivated successfully", nil)
	}
}
