package editor

import (
	"strings"
	"time"
)

const (
	MsgNameRequired       = "Exercise name is required"
	MsgMetricsRequired    = "Add per-set reps/load or duration to save this exercise"
	MsgSetsPositive       = "Sets must be greater than 0"
	MsgRepsPositive       = "Reps must be greater than 0"
	MsgLoadNegative       = "Load cannot be negative"
	MsgDurationPositive   = "Duration must be greater than 0 seconds"
	MsgNoExercises        = "Add at least one exercise"
	MsgNoCompleteExercise = "Add sets/reps or duration to at least one exercise"
	MsgInvalidDate        = "Date must be formatted as YYYY-MM-DD"
	MsgTimeRange          = "Start time must be before end time"
)

type ExerciseErrors struct {
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Metrics string `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

func (e ExerciseErrors) Empty() bool {
	return e.Name == "" && e.Metrics == ""
}

// Errors is the structured validation result of a draft.
// Exercises without errors have no entry in ExerciseErrors.
type Errors struct {
	Date           string                `json:"date,omitempty" yaml:"date,omitempty"`
	Time           string                `json:"time,omitempty" yaml:"time,omitempty"`
	Exercises      string                `json:"exercises,omitempty" yaml:"exercises,omitempty"`
	ExerciseErrors map[ID]ExerciseErrors `json:"exerciseErrors,omitempty" yaml:"exerciseErrors,omitempty"`
}

// Valid reports whether nothing blocks saving. Date and time messages are advisory.
func (e Errors) Valid() bool {
	return e.Exercises == "" && len(e.ExerciseErrors) == 0
}

// hasLoadMetrics: sets > 0, a reps value for every set and,
// if loads are given at all, one load per set.
func hasLoadMetrics(e Exercise) bool {
	if e.Sets == nil || *e.Sets == 0 {
		return false
	}
	sets := *e.Sets
	if len(e.RepsPerSet) != sets {
		return false
	}
	for _, r := range e.RepsPerSet {
		if r == nil {
			return false
		}
	}
	return len(e.LoadPerSet) == 0 || len(e.LoadPerSet) == sets
}

func hasDurationMetric(e Exercise) bool {
	return e.DurationSeconds != nil
}

// IsExerciseComplete reports whether the exercise is savable on its own:
// a name plus either complete per-set reps or a positive duration.
func IsExerciseComplete(e Exercise) bool {
	if strings.TrimSpace(e.Name) == "" {
		return false
	}
	if hasLoadMetrics(e) {
		return true
	}
	return hasDurationMetric(e) && *e.DurationSeconds > 0
}

func ValidateExercise(e Exercise) ExerciseErrors {
	var errs ExerciseErrors
	if strings.TrimSpace(e.Name) == "" {
		errs.Name = MsgNameRequired
	}

	loadBased := hasLoadMetrics(e)
	switch {
	case !loadBased && !hasDurationMetric(e):
		errs.Metrics = MsgMetricsRequired
	default:
		if loadBased {
			if *e.Sets <= 0 {
				errs.Metrics = MsgSetsPositive
			}
			for _, r := range e.RepsPerSet {
				if *r <= 0 {
					errs.Metrics = MsgRepsPositive
				}
			}
			for _, l := range e.LoadPerSet {
				if l != nil && *l < 0 {
					errs.Metrics = MsgLoadNegative
				}
			}
		}
		if hasDurationMetric(e) && *e.DurationSeconds <= 0 {
			errs.Metrics = MsgDurationPositive
		}
	}

	return errs
}

func Validate(d Draft) Errors {
	var errs Errors

	for _, e := range d.Exercises {
		exErrs := ValidateExercise(e)
		if exErrs.Empty() {
			continue
		}
		if errs.ExerciseErrors == nil {
			errs.ExerciseErrors = make(map[ID]ExerciseErrors)
		}
		errs.ExerciseErrors[e.ID] = exErrs
	}

	if len(d.Exercises) == 0 {
		errs.Exercises = MsgNoExercises
	} else {
		anyComplete := false
		for _, e := range d.Exercises {
			if IsExerciseComplete(e) {
				anyComplete = true
				break
			}
		}
		if !anyComplete {
			errs.Exercises = MsgNoCompleteExercise
		}
	}

	if d.Date != "" {
		if _, err := time.Parse(time.DateOnly, d.Date); err != nil {
			errs.Date = MsgInvalidDate
		}
	}
	if d.StartTime != nil && d.EndTime != nil {
		start, startErr := time.Parse("15:04", *d.StartTime)
		end, endErr := time.Parse("15:04", *d.EndTime)
		if startErr == nil && endErr == nil && start.After(end) {
			errs.Time = MsgTimeRange
		}
	}

	return errs
}
