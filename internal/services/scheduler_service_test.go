package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"squadron-ops/airboss/internal/constants"
	"squadron-ops/airboss/internal/models/dtos"
	gormModels "squadron-ops/airboss/internal/models/gorm"
)

// Setup test database
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Auto migrate
	if err := db.AutoMigrate(
		&gormModels.Pilot{},
		&gormModels.Aircraft{},
		&gormModels.Simulator{},
		&gormModels.Event{},
		&gormModels.EventAssignment{},
		&gormModels.CurrencyRecord{},
		&gormModels.TrainingRequirement{},
		&gormModels.PilotStatus{},
	); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func createPilot(t *testing.T, db *gorm.DB, callSign string, active bool) gormModels.Pilot {
	pilot := gormModels.Pilot{
		CallSign: &callSign,
		IsActive: active,
	}
	if err := db.Create(&pilot).Error; err != nil {
		t.Fatalf("Failed to create pilot %s: %v", callSign, err)
	}
	return pilot
}

func createEvent(t *testing.T, db *gorm.DB, eventType constants.EventType, status constants.EventStatus, start, end time.Time, positions map[string]interface{}) gormModels.Event {
	comp := gormModels.JSONMap{}
	if positions != nil {
		comp["positions"] = positions
	}
	event := gormModels.Event{
		EventType:       eventType,
		Title:           string(eventType) + " sortie",
		StartTime:       start,
		EndTime:         end,
		Status:          status,
		CrewComposition: comp,
	}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("Failed to create event: %v", err)
	}
	return event
}

func assign(t *testing.T, db *gorm.DB, eventID, pilotID int64, position string) {
	a := gormModels.EventAssignment{EventID: eventID, PilotID: pilotID, Position: position}
	if err := db.Create(&a).Error; err != nil {
		t.Fatalf("Failed to create assignment: %v", err)
	}
}

func TestSchedulerService_IsPilotAvailable_TimeOff(t *testing.T) {
	db := setupTestDB(t)
	service := NewSchedulerService(db)
	ctx := context.Background()

	callSign := "VIPER-1"
	pilot := gormModels.Pilot{
		CallSign: &callSign,
		IsActive: true,
		TimeOff: gormModels.TimeOffList{
			{Start: "2025-03-10T00:00:00Z", End: "2025-03-12T00:00:00Z"},
		},
	}
	if err := db.Create(&pilot).Error; err != nil {
		t.Fatalf("Failed to create pilot: %v", err)
	}

	cases := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{"window before time off", "2025-03-08T09:00:00Z", "2025-03-09T11:00:00Z", true},
		{"window inside time off", "2025-03-10T09:00:00Z", "2025-03-10T11:00:00Z", false},
		{"window straddles time off end", "2025-03-11T22:00:00Z", "2025-03-12T02:00:00Z", false},
		// Off-interval edges compare inclusively: a window starting exactly
		// at the time-off end still conflicts.
		{"window starts at time off end", "2025-03-12T00:00:00Z", "2025-03-12T04:00:00Z", false},
		{"window after time off", "2025-03-12T00:00:01Z", "2025-03-12T04:00:00Z", true},
	}

	for _, tc := range cases {
		start, _ := time.Parse(time.RFC3339, tc.start)
		end, _ := time.Parse(time.RFC3339, tc.end)

		got, err := service.IsPilotAvailable(ctx, &pilot, start, end)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if got != tc.want {
			t.Errorf("%s: expected available=%v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestSchedulerService_IsPilotAvailable_AssignmentConflict(t *testing.T) {
	db := setupTestDB(t)
	service := NewSchedulerService(db)
	ctx := context.Background()

	pilot := createPilot(t, db, "VIPER-2", true)

	start, _ := time.Parse(time.RFC3339, "2025-03-15T10:00:00Z")
	end, _ := time.Parse(time.RFC3339, "2025-03-15T12:00:00Z")
	event := createEvent(t, db, constants.EventTypeLocal, constants.EventStatusScheduled, start, end, nil)
	assign(t, db, event.ID, pilot.ID, "pilot")

	overlapStart, _ := time.Parse(time.RFC3339, "2025-03-15T11:00:00Z")
	overlapEnd, _ := time.Parse(time.RFC3339, "2025-03-15T13:00:00Z")
	available, err := service.IsPilotAvailable(ctx, &pilot, overlapStart, overlapEnd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if available {
		t.Error("expected overlap with persisted assignment to make pilot unavailable")
	}

	// Touching boundary is non-overlapping under the half-open rule.
	touchStart, _ := time.Parse(time.RFC3339, "2025-03-15T12:00:00Z")
	touchEnd, _ := time.Parse(time.RFC3339, "2025-03-15T13:00:00Z")
	available, err = service.IsPilotAvailable(ctx, &pilot, touchStart, touchEnd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !available {
		t.Error("expected window starting at assignment end to be available")
	}
}

func TestSchedulerService_IsPilotAvailable_MalformedTimeOff(t *testing.T) {
	db := setupTestDB(t)
	service := NewSchedulerService(db)
	ctx := context.Background()

	callSign := "VIPER-3"
	pilot := gormModels.Pilot{
		CallSign: &callSign,
		IsActive: true,
		TimeOff: gormModels.TimeOffList{
			{Start: "not-a-date", End: "2025-03-12T00:00:00Z"},
		},
	}
	if err := db.Create(&pilot).Error; err != nil {
		t.Fatalf("Failed to create pilot: %v", err)
	}

	start, _ := time.Parse(time.RFC3339, "2025-06-01T10:00:00Z")
	end, _ := time.Parse(time.RFC3339, "2025-06-01T12:00:00Z")

	available, err := service.IsPilotAvailable(ctx, &pilot, start, end)
	if err == nil {
		t.Fatal("expected error for malformed time-off entry")
	}
	if available {
		t.Error("malformed time-off must fail the check defensively")
	}

	opsErr, ok := err.(*OpsError)
	if !ok {
		t.Fatalf("expected *OpsError, got %T", err)
	}
	if opsErr.Code != constants.ErrCodeMalformedTimeOff {
		t.Errorf("expected code %s, got %s", constants.ErrCodeMalformedTimeOff, opsErr.Code)
	}
}

func TestSchedulerService_PilotsNeedingCurrency(t *testing.T) {
	db := setupTestDB(t)
	service := NewSchedulerService(db)
	now, _ := time.Parse(time.RFC3339, "2025-03-01T00:00:00Z")
	service.now = func() time.Time { return now }
	ctx := context.Background()

	expiringSoon := createPilot(t, db, "EAGLE-1", true)
	expired := createPilot(t, db, "EAGLE-2", true)
	farOut := createPilot(t, db, "EAGLE-3", true)
	inactive := createPilot(t, db, "EAGLE-4", false)

	addRecord := func(pilotID int64, daysFromNow int) {
		exp := now.AddDate(0, 0, daysFromNow)
		record := gormModels.CurrencyRecord{
			PilotID:        pilotID,
			CurrencyType:   "instrument",
			ExpirationDate: &exp,
			Status:         constants.CurrencyCurrent,
		}
		if err := db.Create(&record).Error; err != nil {
			t.Fatalf("Failed to create currency record: %v", err)
		}
	}

	addRecord(expiringSoon.ID, 10)
	addRecord(expired.ID, -5)
	addRecord(farOut.ID, 120)
	addRecord(inactive.ID, 10)

	pilots, err := service.PilotsNeedingCurrency(ctx, "instrument", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := map[int64]bool{}
	for _, p := range pilots {
		got[p.ID] = true
	}

	if len(pilots) != 2 {
		t.Fatalf("expected 2 pilots needing currency, got %d", len(pilots))
	}
	if !got[expiringSoon.ID] {
		t.Error("expected pilot with currency expiring inside the horizon")
	}
	if !got[expired.ID] {
		t.Error("expected pilot with already-expired currency")
	}
	if got[farOut.ID] {
		t.Error("pilot with distant expiration should not need currency")
	}
	if got[inactive.ID] {
		t.Error("inactive pilots must be filtered out")
	}
}

func TestSchedulerService_OptimizeSchedule_WorkloadFairness(t *testing.T) {
	db := setupTestDB(t)
	service := NewSchedulerService(db)
	ctx := context.Background()

	first := createPilot(t, db, "HAWK-1", true)
	second := createPilot(t, db, "HAWK-2", true)

	day := func(d, h int) time.Time {
		return time.Date(2025, 4, d, h, 0, 0, 0, time.UTC)
	}

	eventOne := createEvent(t, db, constants.EventTypeB2, constants.EventStatusScheduled,
		day(1, 9), day(1, 11), map[string]interface{}{"pilot": 1})
	eventTwo := createEvent(t, db, constants.EventTypeB2, constants.EventStatusScheduled,
		day(2, 9), day(2, 11), map[string]interface{}{"pilot": 1})

	assignments, err := service.OptimizeSchedule(ctx,
		[]gormModels.Event{eventTwo, eventOne}, dtos.ScheduleConstraints{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Earlier event first, lowest workload first, so each pilot gets one.
	if len(assignments[eventOne.ID]) != 1 || assignments[eventOne.ID][0] != first.ID {
		t.Errorf("expected event one assigned to pilot %d, got %v", first.ID, assignments[eventOne.ID])
	}
	if len(assignments[eventTwo.ID]) != 1 || assignments[eventTwo.ID][0] != second.ID {
		t.Errorf("expected event two assigned to pilot %d, got %v", second.ID, assignments[eventTwo.ID])
	}
}

func TestSchedulerService_OptimizeSchedule_MultiPositionEvent(t *testing.T) {
	db := setupTestDB(t)
	service := NewSchedulerService(db)
	ctx := context.Background()

	first := createPilot(t, db, "NOMAD-1", true)
	second := createPilot(t, db, "NOMAD-2", true)

	event := createEvent(t, db, constants.EventTypeLocal, constants.EventStatusScheduled,
		time.Date(2025, 4, 3, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 3, 11, 0, 0, 0, time.UTC),
		map[string]interface{}{"copilot": 1, "pilot": 1})

	assignments, err := service.OptimizeSchedule(ctx, []gormModels.Event{event}, dtos.ScheduleConstraints{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assigned := assignments[event.ID]
	if len(assigned) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(assigned))
	}
	if assigned[0] == assigned[1] {
		t.Error("the same pilot must never fill two positions on one event")
	}
	seen := map[int64]bool{assigned[0]: true, assigned[1]: true}
	if !seen[first.ID] || !seen[second.ID] {
		t.Errorf("expected pilots %d and %d, got %v", first.ID, second.ID, assigned)
	}
}

func TestSchedulerService_OptimizeSchedule_PartialFill(t *testing.T) {
	db := setupTestDB(t)
	service := NewSchedulerService(db)
	ctx := context.Background()

	only := createPilot(t, db, "SOLO-1", true)
	createPilot(t, db, "SOLO-2", false) // inactive, never considered

	event := createEvent(t, db, constants.EventTypeMaddog, constants.EventStatusScheduled,
		time.Date(2025, 4, 4, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 4, 11, 0, 0, 0, time.UTC),
		map[string]interface{}{"pilot": 3})

	assignments, err := service.OptimizeSchedule(ctx, []gormModels.Event{event}, dtos.ScheduleConstraints{})
	if err != nil {
		t.Fatalf("capacity shortfall must not be an error, got: %v", err)
	}

	assigned := assignments[event.ID]
	if len(assigned) != 1 {
		t.Fatalf("expected partial fill with 1 pilot, got %d", len(assigned))
	}
	if assigned[0] != only.ID {
		t.Errorf("expected pilot %d, got %d", only.ID, assigned[0])
	}
}

func TestSchedulerService_OptimizeSchedule_PrioritizeCurrency(t *testing.T) {
	db := setupTestDB(t)
	service := NewSchedulerService(db)
	now, _ := time.Parse(time.RFC3339, "2025-04-01T00:00:00Z")
	service.now = func() time.Time { return now }
	ctx := context.Background()

	createPilot(t, db, "RIVET-1", true)
	needy := createPilot(t, db, "RIVET-2", true)

	exp := now.AddDate(0, 0, 7)
	record := gormModels.CurrencyRecord{
		PilotID:        needy.ID,
		CurrencyType:   "night",
		ExpirationDate: &exp,
		Status:         constants.CurrencyExpiring,
	}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("Failed to create currency record: %v", err)
	}

	event := createEvent(t, db, constants.EventTypeOB2, constants.EventStatusScheduled,
		time.Date(2025, 4, 5, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 5, 11, 0, 0, 0, time.UTC),
		map[string]interface{}{"pilot": 1})

	assignments, err := service.OptimizeSchedule(ctx, []gormModels.Event{event}, dtos.ScheduleConstraints{
		PrioritizeCurrency: true,
		CurrencyType:       "night",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assigned := assignments[event.ID]
	if len(assigned) != 1 || assigned[0] != needy.ID {
		t.Errorf("expected currency-needing pilot %d to sort first, got %v", needy.ID, assigned)
	}
}

func TestSchedulerService_OptimizeSchedule_BatchIgnoresOwnAssignments(t *testing.T) {
	db := setupTestDB(t)
	service := NewSchedulerService(db)
	ctx := context.Background()

	pilot := createPilot(t, db, "GHOST-1", true)

	overlapA := createEvent(t, db, constants.EventTypeLocal, constants.EventStatusScheduled,
		time.Date(2025, 4, 6, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 6, 11, 0, 0, 0, time.UTC),
		map[string]interface{}{"pilot": 1})
	overlapB := createEvent(t, db, constants.EventTypeLocal, constants.EventStatusScheduled,
		time.Date(2025, 4, 6, 10, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 6, 12, 0, 0, 0, time.UTC),
		map[string]interface{}{"pilot": 1})

	assignments, err := service.OptimizeSchedule(ctx,
		[]gormModels.Event{overlapA, overlapB}, dtos.ScheduleConstraints{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Availability is checked against persisted assignments only, so the one
	// pilot lands on both overlapping events within a single batch.
	if len(assignments[overlapA.ID]) != 1 || len(assignments[overlapB.ID]) != 1 {
		t.Fatalf("expected both events assigned, got %v", assignments)
	}
	if assignments[overlapA.ID][0] != pilot.ID || assignments[overlapB.ID][0] != pilot.ID {
		t.Errorf("expected pilot %d on both events, got %v", pilot.ID, assignments)
	}
}

func TestSchedulerService_OptimizeSchedule_AcceptsReservedConstraint(t *testing.T) {
	db := setupTestDB(t)
	service := NewSchedulerService(db)
	ctx := context.Background()

	createPilot(t, db, "SPARE-1", true)
	event := createEvent(t, db, constants.EventTypeWST, constants.EventStatusScheduled,
		time.Date(2025, 4, 7, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 7, 11, 0, 0, 0, time.UTC),
		map[string]interface{}{"pilot": 1})

	// check_qualifications is reserved and must be accepted without error.
	_, err := service.OptimizeSchedule(ctx, []gormModels.Event{event}, dtos.ScheduleConstraints{
		CheckQualifications: true,
	})
	if err != nil {
		t.Fatalf("reserved constraint must be a no-op, got error: %v", err)
	}
}
