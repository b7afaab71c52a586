package taskwarrior

import (
	"fmt"
	"strings"
	"time"
)

const (
	PENDING   = "pending"
	COMPLETED = "completed"
	WAITING   = "waiting"
	DELETED   = "deleted"
	RECURRING = "recurring"
)

type CustomTime struct {
	time.Time
}

const taskwarriorTimeLayout = "20060102T150405Z" // YYYYMMDDTHHMMSSZ, always UTC

// UnmarshalJSON implements the json.Unmarshaler interface for CustomTime.
func (ct *CustomTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "0" {
		ct.Time = time.Time{}
		return nil
	}

	t, err := time.Parse(taskwarriorTimeLayout, s)
	if err != nil {
		return fmt.Errorf("failed to parse Taskwarrior time string '%s': %w", s, err)
	}
	ct.Time = t
	return nil
}

// MarshalJSON implements the json.Marshaler interface for CustomTime.
func (ct CustomTime) MarshalJSON() ([]byte, error) {
	if ct.Time.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + ct.Time.Format(taskwarriorTimeLayout) + `"`), nil
}

// Set reports whether the time is present and non-zero.
func (ct *CustomTime) Set() bool {
	return ct != nil && !ct.Time.IsZero()
}

// Task is one record of `task export`. UDAs appear as top-level fields when
// configured:
//
//	uda.est.type=duration
//	uda.domain.type=string
//	uda.domain.values=work,life_admin,general_life
//	uda.urgency_override.type=numeric
type Task struct {
	UUID        string      `json:"uuid"`
	Description string      `json:"description"`
	Due         *CustomTime `json:"due,omitempty"`
	Scheduled   *CustomTime `json:"scheduled,omitempty"`
	Status      string      `json:"status"`
	Project     string      `json:"project,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
	Start       *CustomTime `json:"start,omitempty"`
	End         *CustomTime `json:"end,omitempty"`

	Est             string  `json:"est,omitempty"` // ISO 8601 duration like "PT1H30M"
	Domain          string  `json:"domain,omitempty"`
	UrgencyOverride float64 `json:"urgency_override,omitempty"`
}
