package dtos

import (
	"time"

	"squadron-ops/airboss/internal/constants"
	gormModels "squadron-ops/airboss/internal/models/gorm"
)

// ScheduleConstraints carries the recognized optimizer options. Unknown keys
// in the request body are ignored; check_qualifications is accepted but
// currently a no-op.
type ScheduleConstraints struct {
	CheckQualifications bool   `json:"check_qualifications"`
	PrioritizeCurrency  bool   `json:"prioritize_currency"`
	CurrencyType        string `json:"currency_type"`
	CurrencyDays        int    `json:"currency_days"`
}

type OptimizeScheduleReq struct {
	EventIDs    []int64             `json:"event_ids"`
	Constraints ScheduleConstraints `json:"constraints"`
}

type PilotCreateReq struct {
	CallSign       *string                 `json:"call_sign"`
	Rank           *string                 `json:"rank"`
	Qualifications []string                `json:"qualifications"`
	Availability   map[string]interface{}  `json:"availability"`
	TimeOff        []gormModels.TimeOffPeriod `json:"time_off"`
	Notes          *string                 `json:"notes"`
	B2Requirement  int                     `json:"b2_requirement"`
	T38Requirement int                     `json:"t38_requirement"`
	WSTRequirement int                     `json:"wst_requirement"`
}

type PilotUpdateReq struct {
	CallSign       *string                    `json:"call_sign"`
	Rank           *string                    `json:"rank"`
	Qualifications []string                   `json:"qualifications"`
	Availability   map[string]interface{}     `json:"availability"`
	TimeOff        []gormModels.TimeOffPeriod `json:"time_off"`
	Notes          *string                    `json:"notes"`
	IsActive       *bool                      `json:"is_active"`
	B2Requirement  *int                       `json:"b2_requirement"`
	T38Requirement *int                       `json:"t38_requirement"`
	WSTRequirement *int                       `json:"wst_requirement"`
}

type EventAssignmentReq struct {
	PilotID  int64  `json:"pilot_id"`
	Position string `json:"position"`
}

type EventCreateReq struct {
	EventType       constants.EventType    `json:"event_type"`
	Title           string                 `json:"title"`
	StartTime       time.Time              `json:"start_time"`
	EndTime         time.Time              `json:"end_time"`
	Status          constants.EventStatus  `json:"status"`
	AircraftID      *int64                 `json:"aircraft_id"`
	SimulatorID     *int64                 `json:"simulator_id"`
	CrewComposition map[string]interface{} `json:"crew_composition"`
	Notes           *string                `json:"notes"`
	Assignments     []EventAssignmentReq   `json:"assignments"`
}

type EventUpdateReq struct {
	EventType       *constants.EventType   `json:"event_type"`
	Title           *string                `json:"title"`
	StartTime       *time.Time             `json:"start_time"`
	EndTime         *time.Time             `json:"end_time"`
	Status          *constants.EventStatus `json:"status"`
	AircraftID      *int64                 `json:"aircraft_id"`
	SimulatorID     *int64                 `json:"simulator_id"`
	CrewComposition map[string]interface{} `json:"crew_composition"`
	Notes           *string                `json:"notes"`
}

type EventStatusPatchReq struct {
	Status constants.EventStatus `json:"status"`
}

type TrainingRequirementCreateReq struct {
	RequirementName string                  `json:"requirement_name"`
	RequirementType string                  `json:"requirement_type"`
	EventType       constants.EventCategory `json:"event_type"`
	RequiredCount   int                     `json:"required_count"`
	Rules           map[string]interface{}  `json:"rules"`
}
