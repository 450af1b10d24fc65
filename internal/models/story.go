package models

import (
	"errors"
	"strings"
	"time"
)

// MaxNameLength bounds story and task names.
const MaxNameLength = 256

// Story is a container of tasks.
type Story struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Seqno orders stories for pagination and is never exposed to clients.
	Seqno     int64     `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks that the story has valid field values.
func (s *Story) Validate() error {
	return ValidateName(s.Name)
}

// ValidateName checks a story or task display name.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("name is required")
	}

	if len(name) > MaxNameLength {
		return errors.New("name must be 256 characters or fewer")
	}

	return nil
}
