package editor

import (
	"slices"
	"time"
)

type Intensity string

const (
	IntensityEasy     Intensity = "easy"
	IntensityModerate Intensity = "moderate"
	IntensityHard     Intensity = "hard"
)

func (i Intensity) IsValid() bool {
	switch i {
	case IntensityEasy, IntensityModerate, IntensityHard:
		return true
	default:
		return false
	}
}

// SectionCategory can be one of:
//   - warmup
//   - cardio
//   - weights
//   - cooldown
//   - other
type SectionCategory string

const (
	CategoryWarmup   SectionCategory = "warmup"
	CategoryCardio   SectionCategory = "cardio"
	CategoryWeights  SectionCategory = "weights"
	CategoryCooldown SectionCategory = "cooldown"
	CategoryOther    SectionCategory = "other"
)

func (c SectionCategory) IsValid() bool {
	switch c {
	case CategoryWarmup, CategoryCardio, CategoryWeights, CategoryCooldown, CategoryOther:
		return true
	default:
		return false
	}
}

// Status is managed by the server, the editor only carries it around.
type Status string

const (
	StatusPlanned   Status = "planned"
	StatusCompleted Status = "completed"
	StatusMissed    Status = "missed"
	StatusChanged   Status = "changed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPlanned, StatusCompleted, StatusMissed, StatusChanged:
		return true
	default:
		return false
	}
}

type Section struct {
	ID       ID              `json:"id" yaml:"id"`
	Category SectionCategory `json:"name" yaml:"name"`
	Order    int             `json:"order" yaml:"order"`
}

type Exercise struct {
	ID              ID         `json:"id" yaml:"id"`
	SectionID       ID         `json:"sectionId,omitzero" yaml:"sectionId,omitempty"`
	Name            string     `json:"name" yaml:"name"`
	Pace            *string    `json:"pace" yaml:"pace,omitempty"`
	Sets            *int       `json:"sets" yaml:"sets,omitempty"`
	RepsPerSet      []*int     `json:"repsPerSet" yaml:"repsPerSet,omitempty"`
	LoadPerSet      []*float64 `json:"loadPerSet" yaml:"loadPerSet,omitempty"`
	DurationSeconds *int       `json:"durationSeconds" yaml:"durationSeconds,omitempty"`
	RestSeconds     *int       `json:"restSeconds" yaml:"restSeconds,omitempty"`
	Order           int        `json:"order" yaml:"order"`
	Notes           *string    `json:"notes" yaml:"notes,omitempty"`
}

// Draft is the in-memory representation of a training session being edited.
type Draft struct {
	ID              ID         `json:"id,omitzero" yaml:"id,omitempty"`
	Name            string     `json:"name" yaml:"name"`
	SessionCode     *string    `json:"sessionCode" yaml:"sessionCode,omitempty"`
	Date            string     `json:"date" yaml:"date"`
	StartTime       *string    `json:"startTime" yaml:"startTime,omitempty"`
	EndTime         *string    `json:"endTime" yaml:"endTime,omitempty"`
	DurationMinutes *int       `json:"durationMinutes" yaml:"durationMinutes,omitempty"`
	Location        *string    `json:"location" yaml:"location,omitempty"`
	Intensity       *Intensity `json:"intensity" yaml:"intensity,omitempty"`
	Trainer         *string    `json:"trainer" yaml:"trainer,omitempty"`
	Athlete         *string    `json:"athlete" yaml:"athlete,omitempty"`
	Participants    []string   `json:"participants" yaml:"participants,omitempty"`
	MicroCycleID    *string    `json:"microCycleId" yaml:"microCycleId,omitempty"`
	Notes           string     `json:"notes" yaml:"notes"`
	Status          Status     `json:"status,omitempty" yaml:"status,omitempty"`
	Sections        []Section  `json:"sections" yaml:"sections"`
	Exercises       []Exercise `json:"exercises" yaml:"exercises"`
	CreatedAt       *time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// Clone returns a deep copy, nothing is shared with the receiver.
func (d Draft) Clone() Draft {
	c := d
	c.SessionCode = clonePtr(d.SessionCode)
	c.StartTime = clonePtr(d.StartTime)
	c.EndTime = clonePtr(d.EndTime)
	c.DurationMinutes = clonePtr(d.DurationMinutes)
	c.Location = clonePtr(d.Location)
	c.Intensity = clonePtr(d.Intensity)
	c.Trainer = clonePtr(d.Trainer)
	c.Athlete = clonePtr(d.Athlete)
	c.MicroCycleID = clonePtr(d.MicroCycleID)
	c.CreatedAt = clonePtr(d.CreatedAt)
	c.UpdatedAt = clonePtr(d.UpdatedAt)
	c.Participants = slices.Clone(d.Participants)
	c.Sections = slices.Clone(d.Sections)
	if d.Exercises != nil {
		c.Exercises = make([]Exercise, len(d.Exercises))
		for i := range d.Exercises {
			c.Exercises[i] = d.Exercises[i].Clone()
		}
	}
	return c
}

func (e Exercise) Clone() Exercise {
	c := e
	c.Pace = clonePtr(e.Pace)
	c.Sets = clonePtr(e.Sets)
	c.DurationSeconds = clonePtr(e.DurationSeconds)
	c.RestSeconds = clonePtr(e.RestSeconds)
	c.Notes = clonePtr(e.Notes)
	c.RepsPerSet = clonePtrSlice(e.RepsPerSet)
	c.LoadPerSet = clonePtrSlice(e.LoadPerSet)
	return c
}

// SectionByID returns the index of the section, or -1.
func (d *Draft) SectionByID(id ID) int {
	return slices.IndexFunc(d.Sections, func(s Section) bool { return s.ID == id })
}

// ExerciseByID returns the index of the exercise, or -1.
func (d *Draft) ExerciseByID(id ID) int {
	return slices.IndexFunc(d.Exercises, func(e Exercise) bool { return e.ID == id })
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func clonePtrSlice[T any](s []*T) []*T {
	if s == nil {
		return nil
	}
	out := make([]*T, len(s))
	for i, p := range s {
		out[i] = clonePtr(p)
	}
	return out
}

// Ptr is a small helper for building drafts and patches.
func Ptr[T any](v T) *T {
	return &v
}
