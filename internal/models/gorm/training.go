package gorm

import (
	"time"

	"squadron-ops/airboss/internal/constants"
)

type TrainingRequirement struct {
	ID              int64  `gorm:"column:id;primaryKey;autoIncrement"`
	RequirementName string `gorm:"column:requirement_name;uniqueIndex;not null"`

	// "monthly" or "quarterly". Anything else is treated as never met.
	RequirementType string `gorm:"column:requirement_type;not null"`

	// "flight", "simulator" or "both".
	EventType constants.EventCategory `gorm:"column:event_type;not null"`

	RequiredCount int       `gorm:"column:required_count;default:1"`
	Rules         JSONMap   `gorm:"column:rules;type:jsonb"`
	IsActive      bool      `gorm:"column:is_active;default:true"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (TrainingRequirement) TableName() string {
	return "training_requirements"
}

type PilotStatus struct {
	ID                  int64                         `gorm:"column:id;primaryKey;autoIncrement"`
	PilotID             int64                         `gorm:"column:pilot_id;not null;uniqueIndex:uq_pilot_evaluation_month"`
	QualificationStatus constants.QualificationStatus `gorm:"column:qualification_status;default:not_qualified"`
	EvaluationMonth     time.Time                     `gorm:"column:evaluation_month;not null;uniqueIndex:uq_pilot_evaluation_month"`
	RequirementsMet     BoolMap                       `gorm:"column:requirements_met;type:jsonb"`
	Deficiencies        StringList                    `gorm:"column:deficiencies;type:jsonb"`
	LastUpdated         time.Time                     `gorm:"column:last_updated"`

	// Relationships
	Pilot Pilot `gorm:"foreignKey:PilotID"`
}

// TableName specifies the table name for GORM
func (PilotStatus) TableName() string {
	return "pilot_status"
}
