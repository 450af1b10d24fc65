package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status is the completion state of a task.
type Status int

const (
	StatusIncomplete Status = iota
	StatusComplete
)

var statusNames = map[Status]string{
	StatusIncomplete: "Incomplete",
	StatusComplete:   "Complete",
}

// ErrUnknownStatus is returned when a string does not name a Status.
var ErrUnknownStatus = errors.New("unknown task status")

// ParseStatus maps a case-sensitive wire/store value to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// String returns the wire value of the status.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Valid reports whether s is one of the defined statuses.
func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	name, ok := statusNames[s]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStatus, int(s))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	status, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// Task is a unit of work owned by exactly one story.
type Task struct {
	ID        string    `json:"id"`
	StoryID   string    `json:"story_id"`
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks that the task has valid field values.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.StoryID) == "" {
		return errors.New("story_id is required")
	}

	if err := ValidateName(t.Name); err != nil {
		return err
	}

	if !t.Status.Valid() {
		return errors.New("status must be 'Incomplete' or 'Complete'")
	}

	return nil
}
