package entities

import (
	"encoding/json"
	"time"
)

type Pilot struct {
	ID             int64           `db:"id"`
	CallSign       *string         `db:"call_sign"`
	Rank           *string         `db:"rank"`
	Qualifications json.RawMessage `db:"qualifications"`
	Availability   json.RawMessage `db:"availability"`
	TimeOff        json.RawMessage `db:"time_off"`
	Notes          *string         `db:"notes"`
	IsActive       bool            `db:"is_active"`
	B2Requirement  int             `db:"b2_requirement"`
	T38Requirement int             `db:"t38_requirement"`
	WSTRequirement int             `db:"wst_requirement"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}
