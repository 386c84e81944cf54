package gorm

import (
	"time"

	"squadron-ops/airboss/internal/constants"
)

type Event struct {
	ID          int64                 `gorm:"column:id;primaryKey;autoIncrement"`
	EventType   constants.EventType   `gorm:"column:event_type;not null;index"`
	Title       string                `gorm:"column:title;not null"`
	StartTime   time.Time             `gorm:"column:start_time;not null;index"`
	EndTime     time.Time             `gorm:"column:end_time;not null"`
	Status      constants.EventStatus `gorm:"column:status;default:scheduled"`
	AircraftID  *int64                `gorm:"column:aircraft_id"`
	SimulatorID *int64                `gorm:"column:simulator_id"`

	// Required crew positions, e.g. {"positions": {"pilot": 1, "copilot": 1}}.
	// Kept schema-flexible so new position names need no migration.
	CrewComposition JSONMap `gorm:"column:crew_composition;type:jsonb"`

	Notes     *string   `gorm:"column:notes;type:text"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Aircraft    *Aircraft         `gorm:"foreignKey:AircraftID"`
	Simulator   *Simulator        `gorm:"foreignKey:SimulatorID"`
	Assignments []EventAssignment `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (Event) TableName() string {
	return "events"
}

type EventAssignment struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement"`
	EventID  int64  `gorm:"column:event_id;not null;index"`
	PilotID  int64  `gorm:"column:pilot_id;not null;index"`
	Position string `gorm:"column:position;not null"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`

	// Relationships
	Event Event `gorm:"foreignKey:EventID"`
	Pilot Pilot `gorm:"foreignKey:PilotID"`
}

// TableName specifies the table name for GORM
func (EventAssignment) TableName() string {
	return "event_assignments"
}
