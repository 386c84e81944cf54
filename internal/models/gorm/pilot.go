package gorm

import (
	"time"
)

type Pilot struct {
	ID             int64       `gorm:"column:id;primaryKey;autoIncrement"`
	CallSign       *string     `gorm:"column:call_sign;uniqueIndex"`
	Rank           *string     `gorm:"column:rank"`
	Qualifications StringList  `gorm:"column:qualifications;type:jsonb"`
	Availability   JSONMap     `gorm:"column:availability;type:jsonb"`
	TimeOff        TimeOffList `gorm:"column:time_off;type:jsonb"`
	Notes          *string     `gorm:"column:notes;type:text"`
	IsActive       bool        `gorm:"column:is_active;default:true"`

	// Monthly sortie targets per airframe, imported with the roster.
	B2Requirement  int `gorm:"column:b2_requirement;default:0"`
	T38Requirement int `gorm:"column:t38_requirement;default:0"`
	WSTRequirement int `gorm:"column:wst_requirement;default:0"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Assignments     []EventAssignment `gorm:"foreignKey:PilotID"`
	CurrencyRecords []CurrencyRecord  `gorm:"foreignKey:PilotID"`
	Statuses        []PilotStatus     `gorm:"foreignKey:PilotID"`
}

// TableName specifies the table name for GORM
func (Pilot) TableName() string {
	return "pilots"
}
