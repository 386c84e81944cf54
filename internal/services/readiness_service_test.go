package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"squadron-ops/airboss/internal/constants"
	gormModels "squadron-ops/airboss/internal/models/gorm"
)

func createRequirement(t *testing.T, db *gorm.DB, name, period string, category constants.EventCategory, count int) gormModels.TrainingRequirement {
	requirement := gormModels.TrainingRequirement{
		RequirementName: name,
		RequirementType: period,
		EventType:       category,
		RequiredCount:   count,
		IsActive:        true,
	}
	if err := db.Create(&requirement).Error; err != nil {
		t.Fatalf("Failed to create requirement %s: %v", name, err)
	}
	return requirement
}

func effectiveEvent(t *testing.T, db *gorm.DB, pilotID int64, eventType constants.EventType, start time.Time) {
	event := createEvent(t, db, eventType, constants.EventStatusEffective, start, start.Add(2*time.Hour), nil)
	assign(t, db, event.ID, pilotID, "pilot")
}

func TestReadinessService_EvaluatePilotStatus_CMR(t *testing.T) {
	db := setupTestDB(t)
	service := NewReadinessService(db, nil)
	ctx := context.Background()

	pilot := createPilot(t, db, "REAPER-1", true)
	createRequirement(t, db, "monthly_flights", "monthly", constants.CategoryFlight, 2)
	createRequirement(t, db, "monthly_sims", "monthly", constants.CategorySimulator, 1)

	month := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	effectiveEvent(t, db, pilot.ID, constants.EventTypeB2, month.AddDate(0, 0, 4))
	effectiveEvent(t, db, pilot.ID, constants.EventTypeLocal, month.AddDate(0, 0, 10))
	effectiveEvent(t, db, pilot.ID, constants.EventTypeWST, month.AddDate(0, 0, 15))

	status, err := service.EvaluatePilotStatus(ctx, pilot.ID, month)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if status.QualificationStatus != constants.StatusCMR {
		t.Errorf("expected CMR, got %s", status.QualificationStatus)
	}
	if len(status.Deficiencies) != 0 {
		t.Errorf("expected no deficiencies, got %v", status.Deficiencies)
	}
	if !status.RequirementsMet["monthly_flights"] || !status.RequirementsMet["monthly_sims"] {
		t.Errorf("expected both requirements met, got %v", status.RequirementsMet)
	}
}

func TestReadinessService_EvaluatePilotStatus_BMCWithOneDeficiency(t *testing.T) {
	db := setupTestDB(t)
	service := NewReadinessService(db, nil)
	ctx := context.Background()

	pilot := createPilot(t, db, "REAPER-2", true)
	createRequirement(t, db, "monthly_flights", "monthly", constants.CategoryFlight, 1)
	createRequirement(t, db, "monthly_sims", "monthly", constants.CategorySimulator, 1)

	month := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	effectiveEvent(t, db, pilot.ID, constants.EventTypeB2, month.AddDate(0, 0, 4))

	status, err := service.EvaluatePilotStatus(ctx, pilot.ID, month)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if status.QualificationStatus != constants.StatusBMC {
		t.Errorf("expected BMC with one deficiency, got %s", status.QualificationStatus)
	}
	if len(status.Deficiencies) != 1 || status.Deficiencies[0] != "monthly_sims" {
		t.Errorf("expected deficiency [monthly_sims], got %v", status.Deficiencies)
	}
}

func TestReadinessService_EvaluatePilotStatus_NotQualified(t *testing.T) {
	db := setupTestDB(t)
	service := NewReadinessService(db, nil)
	ctx := context.Background()

	pilot := createPilot(t, db, "REAPER-3", true)
	createRequirement(t, db, "monthly_flights", "monthly", constants.CategoryFlight, 1)
	createRequirement(t, db, "monthly_sims", "monthly", constants.CategorySimulator, 1)

	month := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	status, err := service.EvaluatePilotStatus(ctx, pilot.ID, month)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if status.QualificationStatus != constants.StatusNotQualified {
		t.Errorf("expected not_qualified with two deficiencies, got %s", status.QualificationStatus)
	}
	if len(status.Deficiencies) != 2 {
		t.Errorf("expected 2 deficiencies, got %v", status.Deficiencies)
	}
}

func TestReadinessService_EvaluatePilotStatus_MultiPositionEventCountsOnce(t *testing.T) {
	db := setupTestDB(t)
	service := NewReadinessService(db, nil)
	ctx := context.Background()

	pilot := createPilot(t, db, "REAPER-9", true)
	createRequirement(t, db, "monthly_flights", "monthly", constants.CategoryFlight, 2)

	// Pilot holds two positions on a single effective sortie. That is one
	// event, not two, toward the requirement.
	month := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	start := month.AddDate(0, 0, 4)
	event := createEvent(t, db, constants.EventTypeB2, constants.EventStatusEffective,
		start, start.Add(2*time.Hour), nil)
	assign(t, db, event.ID, pilot.ID, "pilot")
	assign(t, db, event.ID, pilot.ID, "instructor")

	status, err := service.EvaluatePilotStatus(ctx, pilot.ID, month)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if status.RequirementsMet["monthly_flights"] {
		t.Error("one event with two positions must not satisfy a 2-flight requirement")
	}
	if len(status.Deficiencies) != 1 || status.Deficiencies[0] != "monthly_flights" {
		t.Errorf("expected deficiency [monthly_flights], got %v", status.Deficiencies)
	}
}

func TestReadinessService_EvaluatePilotStatus_IgnoresNonEffectiveEvents(t *testing.T) {
	db := setupTestDB(t)
	service := NewReadinessService(db, nil)
	ctx := context.Background()

	pilot := createPilot(t, db, "REAPER-4", true)
	createRequirement(t, db, "monthly_flights", "monthly", constants.CategoryFlight, 1)

	month := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	scheduled := createEvent(t, db, constants.EventTypeB2, constants.EventStatusScheduled,
		month.AddDate(0, 0, 4), month.AddDate(0, 0, 4).Add(2*time.Hour), nil)
	assign(t, db, scheduled.ID, pilot.ID, "pilot")
	cancelled := createEvent(t, db, constants.EventTypeB2, constants.EventStatusCancelled,
		month.AddDate(0, 0, 6), month.AddDate(0, 0, 6).Add(2*time.Hour), nil)
	assign(t, db, cancelled.ID, pilot.ID, "pilot")

	status, err := service.EvaluatePilotStatus(ctx, pilot.ID, month)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if status.RequirementsMet["monthly_flights"] {
		t.Error("scheduled and cancelled events must not count toward requirements")
	}
}

func TestReadinessService_EvaluatePilotStatus_QuarterlyLookback(t *testing.T) {
	db := setupTestDB(t)
	service := NewReadinessService(db, nil)
	ctx := context.Background()

	pilot := createPilot(t, db, "REAPER-5", true)
	createRequirement(t, db, "quarterly_any", "quarterly", constants.CategoryBoth, 1)

	// Event 60 days before the evaluation month still falls inside the fixed
	// 90-day lookback.
	month := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	effectiveEvent(t, db, pilot.ID, constants.EventTypeOB3, month.AddDate(0, 0, -60))

	status, err := service.EvaluatePilotStatus(ctx, pilot.ID, month)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !status.RequirementsMet["quarterly_any"] {
		t.Error("expected quarterly requirement met by event inside the 90-day window")
	}
	if status.QualificationStatus != constants.StatusCMR {
		t.Errorf("expected CMR, got %s", status.QualificationStatus)
	}
}

func TestReadinessService_EvaluatePilotStatus_DecemberRollover(t *testing.T) {
	db := setupTestDB(t)
	service := NewReadinessService(db, nil)
	ctx := context.Background()

	pilot := createPilot(t, db, "REAPER-6", true)
	createRequirement(t, db, "monthly_flights", "monthly", constants.CategoryFlight, 1)

	effectiveEvent(t, db, pilot.ID, constants.EventTypeMaddog,
		time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC))

	status, err := service.EvaluatePilotStatus(ctx, pilot.ID,
		time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !status.RequirementsMet["monthly_flights"] {
		t.Error("expected a December 31 event to count for the December evaluation")
	}
}

func TestReadinessService_EvaluatePilotStatus_UnknownPeriodNeverMet(t *testing.T) {
	db := setupTestDB(t)
	service := NewReadinessService(db, nil)
	ctx := context.Background()

	pilot := createPilot(t, db, "REAPER-7", true)
	createRequirement(t, db, "annual_checkride", "annual", constants.CategoryFlight, 1)

	month := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	effectiveEvent(t, db, pilot.ID, constants.EventTypeB2, month.AddDate(0, 0, 4))

	status, err := service.EvaluatePilotStatus(ctx, pilot.ID, month)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if status.RequirementsMet["annual_checkride"] {
		t.Error("unrecognized requirement periods must evaluate as not met")
	}
}

func TestReadinessService_EvaluatePilotStatus_Reevaluation(t *testing.T) {
	db := setupTestDB(t)
	service := NewReadinessService(db, nil)
	ctx := context.Background()

	pilot := createPilot(t, db, "REAPER-8", true)
	createRequirement(t, db, "monthly_flights", "monthly", constants.CategoryFlight, 1)

	// Evaluated mid-month and again after the pilot flew: one row, updated in
	// place.
	month := time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)
	first, err := service.EvaluatePilotStatus(ctx, pilot.ID, month)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.QualificationStatus == constants.StatusCMR {
		t.Fatal("expected initial evaluation without events to miss the requirement")
	}

	effectiveEvent(t, db, pilot.ID, constants.EventTypeB2,
		time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC))

	second, err := service.EvaluatePilotStatus(ctx, pilot.ID, month)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.QualificationStatus != constants.StatusCMR {
		t.Errorf("expected CMR after re-evaluation, got %s", second.QualificationStatus)
	}

	var count int64
	if err := db.Model(&gormModels.PilotStatus{}).Where("pilot_id = ?", pilot.ID).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected a single status row per pilot and month, got %d", count)
	}
	if !second.EvaluationMonth.Equal(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected evaluation month normalized to month start, got %v", second.EvaluationMonth)
	}
}

func TestReadinessService_EvaluatePilotStatus_PilotNotFound(t *testing.T) {
	db := setupTestDB(t)
	service := NewReadinessService(db, nil)

	_, err := service.EvaluatePilotStatus(context.Background(), 9999,
		time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))
	if err == nil {
		t.Fatal("expected error for unknown pilot")
	}

	opsErr, ok := err.(*OpsError)
	if !ok {
		t.Fatalf("expected *OpsError, got %T", err)
	}
	if opsErr.Code != constants.ErrCodePilotNotFound {
		t.Errorf("expected code %s, got %s", constants.ErrCodePilotNotFound, opsErr.Code)
	}
}

func TestReadinessService_EvaluateAllPilots(t *testing.T) {
	db := setupTestDB(t)
	service := NewReadinessService(db, nil)
	ctx := context.Background()

	createPilot(t, db, "FLEET-1", true)
	createPilot(t, db, "FLEET-2", true)
	createPilot(t, db, "FLEET-3", false)
	createRequirement(t, db, "monthly_flights", "monthly", constants.CategoryFlight, 1)

	statuses, skipped, err := service.EvaluateAllPilots(ctx,
		time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skipped != 0 {
		t.Errorf("expected no skips, got %d", skipped)
	}
	if len(statuses) != 2 {
		t.Errorf("expected 2 evaluations for the 2 active pilots, got %d", len(statuses))
	}
}

func TestReadinessService_CreateRequirement_DuplicateName(t *testing.T) {
	db := setupTestDB(t)
	service := NewReadinessService(db, nil)
	ctx := context.Background()

	first := gormModels.TrainingRequirement{
		RequirementName: "monthly_flights",
		RequirementType: "monthly",
		EventType:       constants.CategoryFlight,
		RequiredCount:   2,
		IsActive:        true,
	}
	if err := service.CreateRequirement(ctx, &first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dup := gormModels.TrainingRequirement{
		RequirementName: "monthly_flights",
		RequirementType: "monthly",
		EventType:       constants.CategoryFlight,
		RequiredCount:   1,
		IsActive:        true,
	}
	err := service.CreateRequirement(ctx, &dup)
	if err == nil {
		t.Fatal("expected duplicate name to be rejected")
	}
	opsErr, ok := err.(*OpsError)
	if !ok || opsErr.Code != constants.ErrCodeDuplicateRequirement {
		t.Errorf("expected duplicate requirement code, got %v", err)
	}
}

func TestReadinessService_GetStoredStatus(t *testing.T) {
	db := setupTestDB(t)
	service := NewReadinessService(db, nil)
	ctx := context.Background()

	pilot := createPilot(t, db, "STORE-1", true)
	month := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	_, found, err := service.GetStoredStatus(ctx, pilot.ID, month)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected no stored status before evaluation")
	}

	if _, err := service.EvaluatePilotStatus(ctx, pilot.ID, month); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	status, found, err := service.GetStoredStatus(ctx, pilot.ID, month.AddDate(0, 0, 20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected stored status after evaluation, same month normalizes to one key")
	}
	if status.PilotID != pilot.ID {
		t.Errorf("expected pilot %d, got %d", pilot.ID, status.PilotID)
	}
}
