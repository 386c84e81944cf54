package dtos

import (
	"time"

	"squadron-ops/airboss/internal/constants"
)

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message,omitempty"`
	ResponseTime string `json:"response_time,omitempty"`
	Data         any    `json:"data,omitempty"`
}

// OptimizeScheduleResp maps event id to the ordered pilot ids the engine
// picked for it. Position labels live on the per-event detail entries.
type OptimizeScheduleResp struct {
	Assignments map[int64][]int64 `json:"assignments"`
}

type PilotStatusResp struct {
	PilotID             int64                         `json:"pilot_id"`
	QualificationStatus constants.QualificationStatus `json:"qualification_status"`
	EvaluationMonth     time.Time                     `json:"evaluation_month"`
	RequirementsMet     map[string]bool               `json:"requirements_met"`
	Deficiencies        []string                      `json:"deficiencies"`
	LastUpdated         time.Time                     `json:"last_updated"`
}

type EvaluateAllResp struct {
	Evaluated int               `json:"evaluated"`
	Skipped   int               `json:"skipped"`
	Statuses  []PilotStatusResp `json:"statuses"`
}

type CurrencyImportResp struct {
	Imported int   `json:"imported"`
	Skipped  int   `json:"skipped"`
	Records  any   `json:"records"`
}
