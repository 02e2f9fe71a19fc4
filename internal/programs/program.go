package programs

import (
	"errors"
	"time"
)

var ErrProgramNotFound = errors.New("active program not found")

// MaxProgramSessions caps the sessions listed with a program.
const MaxProgramSessions = 50

type Program struct {
	ID             string           `json:"id"`
	AthleteID      string           `json:"athleteId"`
	Title          string           `json:"title"`
	Status         string           `json:"status"`
	Description    *string          `json:"description"`
	StartDate      string           `json:"startDate"`
	EndDate        *string          `json:"endDate"`
	ValidationFlag bool             `json:"validationFlag"`
	UpdatedAt      time.Time        `json:"updatedAt"`
	Phases         []Phase          `json:"phases"`
	Sessions       []SessionSummary `json:"sessions"`
}

type Phase struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Order       int          `json:"order"`
	Focus       *string      `json:"focus"`
	StartDate   *string      `json:"startDate"`
	EndDate     *string      `json:"endDate"`
	MicroCycles []MicroCycle `json:"microCycles"`
}

type MicroCycle struct {
	ID        string    `json:"id"`
	Week      int       `json:"week"`
	Theme     *string   `json:"theme"`
	Load      *string   `json:"load"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type SessionSummary struct {
	ID          string  `json:"id"`
	ScheduledAt *string `json:"scheduledAt"`
	Status      string  `json:"status"`
	DurationMin *int    `json:"durationMin"`
}
