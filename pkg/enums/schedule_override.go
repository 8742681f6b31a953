package enums

import "fmt"

// ScheduleOverride lets staff force the store open or closed regardless
// of the weekly opening times.
type ScheduleOverride string

const (
	ScheduleOverrideNone        ScheduleOverride = "none"
	ScheduleOverrideForceOpen   ScheduleOverride = "force_open"
	ScheduleOverrideForceClosed ScheduleOverride = "force_closed"
)

var validScheduleOverrides = []ScheduleOverride{
	ScheduleOverrideNone,
	ScheduleOverrideForceOpen,
	ScheduleOverrideForceClosed,
}

// IsValid reports whether the override is recognized.
func (o ScheduleOverride) IsValid() bool {
	for _, candidate := range validScheduleOverrides {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseScheduleOverride converts raw input into a ScheduleOverride.
func ParseScheduleOverride(value string) (ScheduleOverride, error) {
	for _, candidate := range validScheduleOverrides {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid schedule override %q", value)
}
