package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap is a schema-flexible JSON object column. Crew compositions,
// requirement rules and availability schedules are stored as open-ended
// keyed maps rather than fixed structs.
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *JSONMap) Scan(src interface{}) error {
	if src == nil {
		*m = JSONMap{}
		return nil
	}
	b, err := jsonBytes(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, m)
}

// StringList is a JSON array of strings column (qualifications, deficiencies).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = StringList{}
		return nil
	}
	b, err := jsonBytes(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, l)
}

// TimeOffPeriod is one declared time-off interval. Start and End stay textual
// in storage; the scheduler parses them and fails the availability check if
// they are malformed.
type TimeOffPeriod struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// TimeOffList is a JSON array of time-off periods column.
type TimeOffList []TimeOffPeriod

func (l TimeOffList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *TimeOffList) Scan(src interface{}) error {
	if src == nil {
		*l = TimeOffList{}
		return nil
	}
	b, err := jsonBytes(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, l)
}

// BoolMap is a JSON object of booleans column (requirements_met).
type BoolMap map[string]bool

func (m BoolMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *BoolMap) Scan(src interface{}) error {
	if src == nil {
		*m = BoolMap{}
		return nil
	}
	b, err := jsonBytes(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, m)
}

func jsonBytes(src interface{}) ([]byte, error) {
	switch v := src.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported json column source type %T", src)
	}
}
