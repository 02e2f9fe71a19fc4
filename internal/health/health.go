package health

import "time"

type Status string

const (
	StatusPass     Status = "pass"
	StatusFail     Status = "fail"
	StatusDegraded Status = "degraded"
)

// State is the result of a health or readiness check.
type State struct {
	Status        Status     `json:"status"`
	LatencyMs     *int64     `json:"latencyMs,omitempty"`
	LastFailureAt *time.Time `json:"lastFailureAt"`
}

// Event is one recorded database health probe.
type Event struct {
	ID            int64      `json:"id"`
	Environment   string     `json:"environment"`
	Status        Status     `json:"status"`
	LatencyMs     int64      `json:"latencyMs"`
	ErrorCode     *string    `json:"errorCode"`
	LastFailureAt *time.Time `json:"lastFailureAt"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// Profile describes the database connection of one environment.
type Profile struct {
	Environment           string    `json:"environment"`
	Host                  string    `json:"host"`
	Port                  int       `json:"port"`
	Schema                string    `json:"schema"`
	CredentialRef         string    `json:"credentialRef"`
	RotationIntervalHours int       `json:"rotationIntervalHours"`
	UpdatedAt             time.Time `json:"updatedAt"`
}
