package api

import (
	"encoding/json"
	"net/http"
	"time"

	"squadron-ops/airboss/internal/common"
	"squadron-ops/airboss/internal/constants"
	"squadron-ops/airboss/internal/models/dtos"
	gormModels "squadron-ops/airboss/internal/models/gorm"
	"squadron-ops/airboss/internal/services"
)

// ListEventsHandler handles GET /api/v1/events
func ListEventsHandler(deps *Dependencies) http.HandlerFunc {
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

		filters := services.EventFilters{
			StartDate: startDate,
			EndDate:   endDate,
			EventType: constants.EventType(r.URL.Query().Get("event_type")),
			Offset:    queryInt(r, "offset", 0),
			Limit:     queryInt(r, "limit", 100),
		}

		events, err := deps.Services.Events.ListEvents(r.Context(), filters)
		if err != nil {
			handleOpsError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Events fetched successfully", events)
	}
}

// GetEventHandler handles GET /api/v1/events/{id}
func GetEventHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid event id", http.StatusBadRequest)
			return
		}

		event, err := deps.Services.Events.GetEvent(r.Context(), id)
		if err != nil {
			handleOpsError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Event fetched successfully", event)
	}
}

// CreateEventHandler handles POST /api/v1/events
func CreateEventHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.EventCreateReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		event := gormModels.Event{
			EventType:       req.EventType,
			Title:           req.Title,
			StartTime:       req.StartTime,
			EndTime:         req.EndTime,
			Status:          req.Status,
			AircraftID:      req.AircraftID,
			SimulatorID:     req.SimulatorID,
			CrewComposition: gormModels.JSONMap(req.CrewComposition),
			Notes:           req.Notes,
		}

		assignments := make([]gormModels.EventAssignment, 0, len(req.Assignments))
		for _, a := range req.Assignments {
			assignments = append(assignments, gormModels.EventAssignment{
				PilotID:  a.PilotID,
				Position: a.Position,
			})
		}

		if err := deps.Services.Events.CreateEvent(r.Context(), &event, assignments); err != nil {
			handleOpsError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Event created successfully", event, http.StatusCreated)
	}
}

// UpdateEventHandler handles PUT /api/v1/events/{id}
func UpdateEventHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid event id", http.StatusBadRequest)
			return
		}

		var req dtos.EventUpdateReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		event, err := deps.Services.Events.UpdateEvent(r.Context(), id, func(e *gormModels.Event) {
			if req.EventType != nil {
				e.EventType = *req.EventType
			}
			if req.Title != nil {
				e.Title = *req.Title
			}
			if req.StartTime != nil {
				e.StartTime = *req.StartTime
			}
			if req.EndTime != nil {
				e.EndTime = *req.EndTime
			}
			if req.Status != nil {
				e.Status = *req.Status
			}
			if req.AircraftID != nil {
				e.AircraftID = req.AircraftID
			}
			if req.SimulatorID != nil {
				e.SimulatorID = req.SimulatorID
			}
			if req.CrewComposition != nil {
				e.CrewComposition = gormModels.JSONMap(req.CrewComposition)
			}
			if req.Notes != nil {
				e.Notes = req.Notes
			}
		})
		if err != nil {
			handleOpsError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Event updated successfully", event)
	}
}

// DeleteEventHandler handles DELETE /api/v1/events/{id}
func DeleteEventHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid event id", http.StatusBadRequest)
			return
		}

		if err := deps.Services.Events.DeleteEvent(r.Context(), id); err != nil {
			handleOpsError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Event deleted successfully", nil)
	}
}

// AddAssignmentHandler handles POST /api/v1/events/{id}/assignments
func AddAssignmentHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid event id", http.StatusBadRequest)
			return
		}

		var req dtos.EventAssignmentReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		assignment, err := deps.Services.Events.AddAssignment(r.Context(), id, req.PilotID, req.Position)
		if err != nil {
			handleOpsError(w, initTime, err)
			return
		}

		deps.Metrics.AssignmentsTotal.Inc()
		common.RespondSuccess(w, initTime, "Assignment created successfully", assignment, http.StatusCreated)
	}
}

// PatchEventStatusHandler handles PATCH /api/v1/events/{id}/status
func PatchEventStatusHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid event id", http.StatusBadRequest)
			return
		}

		var req dtos.EventStatusPatchReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		event, err := deps.Services.Events.UpdateStatus(r.Context(), id, req.Status)
		if err != nil {
			handleOpsError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Event status updated successfully", event)
	}
}
