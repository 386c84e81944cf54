package gorm

type Aircraft struct {
	ID                  int64      `gorm:"column:id;primaryKey;autoIncrement"`
	TailNumber          string     `gorm:"column:tail_number;uniqueIndex;not null"`
	AircraftType        string     `gorm:"column:aircraft_type;not null"`
	Availability        JSONMap    `gorm:"column:availability;type:jsonb"`
	MaintenanceSchedule TimeOffList `gorm:"column:maintenance_schedule;type:jsonb"`
	IsActive            bool       `gorm:"column:is_active;default:true"`
}

// TableName specifies the table name for GORM
func (Aircraft) TableName() string {
	return "aircraft"
}

type Simulator struct {
	ID                  int64      `gorm:"column:id;primaryKey;autoIncrement"`
	DeviceID            string     `gorm:"column:device_id;uniqueIndex;not null"`
	SimulatorType       string     `gorm:"column:simulator_type;not null"`
	Availability        JSONMap    `gorm:"column:availability;type:jsonb"`
	MaintenanceSchedule TimeOffList `gorm:"column:maintenance_schedule;type:jsonb"`
	IsActive            bool       `gorm:"column:is_active;default:true"`
}

// TableName specifies the table name for GORM
func (Simulator) TableName() string {
	return "simulators"
}
