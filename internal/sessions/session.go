package sessions

import (
	"errors"
	"time"

	"github.com/2beens/coachdesk/pkg/editor"
)

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionCodeTaken   = errors.New("session code already in use")
	ErrMicroCycleNotFound = errors.New("micro cycle not found")
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// ValidationError carries the structured editor errors of a rejected draft.
type ValidationError struct {
	Errors editor.Errors
	Reason string
	// Err is the storage error behind the rejection, if any
	Err error
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return "invalid session: " + e.Reason
	}
	return "invalid session"
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

type ListParams struct {
	AthleteID string
	// Start and End bound the session date, both inclusive
	Start *time.Time
	End   *time.Time
	Limit int
}
