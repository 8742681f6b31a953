package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// AddonSelection is one add-on choice on an order line. Order matters:
// free-unit eligibility is consumed in selection order.
type AddonSelection struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// AddonSelections is the ordered add-on multiset, marshaled as JSONB.
type AddonSelections []AddonSelection

// Value serializes the selections to JSON.
func (a AddonSelections) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}

// Scan decodes JSONB into the selection slice.
func (a *AddonSelections) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded AddonSelections
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*a = decoded
	return nil
}

// FreeAddons records which add-on units were priced at zero on a line,
// persisted for auditability.
type FreeAddons []string

// Value serializes the free-addon audit list to JSON.
func (f FreeAddons) Value() (driver.Value, error) {
	if f == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(f)
}

// Scan decodes JSONB into the free-addon list.
func (f *FreeAddons) Scan(value interface{}) error {
	if value == nil {
		*f = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded FreeAddons
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*f = decoded
	return nil
}

// DaySchedule holds one weekday's opening window.
type DaySchedule struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}

// OpeningTimes maps lowercase weekday names to schedules, stored as JSONB.
type OpeningTimes map[string]DaySchedule

// Value serializes the weekly schedule to JSON.
func (o OpeningTimes) Value() (driver.Value, error) {
	if o == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(o)
}

// Scan decodes JSONB into the weekly schedule.
func (o *OpeningTimes) Scan(value interface{}) error {
	if value == nil {
		*o = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded OpeningTimes
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*o = decoded
	return nil
}

func asJSON(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported scan type %T", value)
	}
}
