package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time expressed as minutes since midnight.
// Session start and end times are stored and compared in this form so
// that scheduling logic never has to re-parse free-form strings.  The
// zero value means midnight; a negative value is never valid.
type TimeOfDay int

// ParseTimeOfDay accepts either a 24-hour "15:04" string or a 12-hour
// "3:04 PM" string and returns the corresponding TimeOfDay.  Both
// layouts appear in imported program data, so both are supported.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty time of day")
	}
	for _, layout := range []string{"15:04", "3:04 PM", "3:04PM"} {
		if t, err := time.Parse(layout, strings.ToUpper(s)); err == nil {
			return TimeOfDay(t.Hour()*60 + t.Minute()), nil
		}
	}
	return 0, fmt.Errorf("invalid time of day: %q", s)
}

// Minutes returns the value as whole minutes since midnight.
func (t TimeOfDay) Minutes() int { return int(t) }

// String renders the time in 24-hour "15:04" form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// MarshalJSON encodes the time as its "15:04" string form.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts the same layouts as ParseTimeOfDay.
func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
