package main

import (
	"fmt"
	"os"

	"github.com/2beens/coachdesk/pkg/editor"

	"gopkg.in/yaml.v3"
)

// Plan is a list of editor operations read from YAML. Exercises and
// sections are addressed by their 1-based position, since temporary ids are
// only known once the editor issued them.
type Plan struct {
	Fields PlanFields `yaml:"fields"`
	Ops    []PlanOp   `yaml:"ops"`
}

type PlanFields struct {
	Name            *string  `yaml:"name"`
	SessionCode     *string  `yaml:"sessionCode"`
	Date            *string  `yaml:"date"`
	StartTime       *string  `yaml:"startTime"`
	EndTime         *string  `yaml:"endTime"`
	DurationMinutes *int     `yaml:"durationMinutes"`
	Location        *string  `yaml:"location"`
	Intensity       *string  `yaml:"intensity"`
	Trainer         *string  `yaml:"trainer"`
	Athlete         *string  `yaml:"athlete"`
	Participants    []string `yaml:"participants"`
	MicroCycleID    *string  `yaml:"microCycleId"`
	Notes           *string  `yaml:"notes"`
}

type PlanOp struct {
	Op        string `yaml:"op"`
	Section   int    `yaml:"section"`
	Exercise  int    `yaml:"exercise"`
	Category  string `yaml:"category"`
	Direction string `yaml:"direction"`
	To        int    `yaml:"to"`

	// set values
	Set  int      `yaml:"set"`
	Reps *int     `yaml:"reps"`
	Load *float64 `yaml:"load"`

	// exercise values
	Name            *string `yaml:"name"`
	Pace            *string `yaml:"pace"`
	Sets            *int    `yaml:"sets"`
	DurationSeconds *int    `yaml:"durationSeconds"`
	RestSeconds     *int    `yaml:"restSeconds"`
	Notes           *string `yaml:"notes"`
	Order           *int    `yaml:"order"`
}

func loadPlan(path string) (Plan, error) {
	var plan Plan
	raw, err := os.ReadFile(path)
	if err != nil {
		return plan, fmt.Errorf("read plan: %w", err)
	}
	if err := yaml.Unmarshal(raw, &plan); err != nil {
		return plan, fmt.Errorf("parse plan %s: %w", path, err)
	}
	return plan, nil
}

// applyPlan runs the plan against the editor and returns a note for every
// operation the editor ignored.
func applyPlan(ed *editor.Editor, plan Plan) []string {
	var ignored []string

	if patch, ok := plan.Fields.patch(); ok && !ed.UpdateField(patch) {
		ignored = append(ignored, "fields: rejected")
	}

	for i, op := range plan.Ops {
		if err := applyOp(ed, op); err != nil {
			ignored = append(ignored, fmt.Sprintf("op %d (%s): %s", i+1, op.Op, err))
		}
	}
	return ignored
}

func applyOp(ed *editor.Editor, op PlanOp) error {
	d := ed.Draft()

	var applied bool
	switch op.Op {
	case "addSection":
		applied = ed.AddSection()
	case "updateSection":
		id, err := sectionAt(d, op.Section)
		if err != nil {
			return err
		}
		applied = ed.UpdateSection(id, editor.SectionCategory(op.Category))
	case "removeSection":
		id, err := sectionAt(d, op.Section)
		if err != nil {
			return err
		}
		applied = ed.RemoveSection(id)
	case "addExercise":
		var sectionID editor.ID
		if op.Section > 0 {
			id, err := sectionAt(d, op.Section)
			if err != nil {
				return err
			}
			sectionID = id
		}
		applied = ed.AddExercise(sectionID)
	case "updateExercise":
		id, err := exerciseAt(d, op.Exercise)
		if err != nil {
			return err
		}
		patch := op.exercisePatch()
		if op.Section > 0 {
			sectionID, err := sectionAt(d, op.Section)
			if err != nil {
				return err
			}
			patch.SectionID = editor.Set(sectionID)
		}
		applied = ed.UpdateExercise(id, patch)
	case "removeExercise":
		id, err := exerciseAt(d, op.Exercise)
		if err != nil {
			return err
		}
		applied = ed.RemoveExercise(id)
	case "moveExercise":
		id, err := exerciseAt(d, op.Exercise)
		if err != nil {
			return err
		}
		switch op.Direction {
		case "up":
			applied = ed.MoveExercise(id, editor.Up)
		case "down":
			applied = ed.MoveExercise(id, editor.Down)
		default:
			return fmt.Errorf("unknown direction %q", op.Direction)
		}
	case "reorderExercise":
		id, err := exerciseAt(d, op.Exercise)
		if err != nil {
			return err
		}
		applied = ed.ReorderExercise(id, op.To-1)
	case "duplicateExercise":
		id, err := exerciseAt(d, op.Exercise)
		if err != nil {
			return err
		}
		applied = ed.DuplicateExercise(id)
	case "addSet":
		id, err := exerciseAt(d, op.Exercise)
		if err != nil {
			return err
		}
		applied = ed.AddSet(id)
	case "updateSet":
		id, err := exerciseAt(d, op.Exercise)
		if err != nil {
			return err
		}
		applied = ed.UpdateSet(id, op.Set-1, op.Reps, op.Load)
	default:
		return fmt.Errorf("unknown operation")
	}

	if !applied {
		return fmt.Errorf("ignored by the editor")
	}
	return nil
}

func (f PlanFields) patch() (editor.DraftPatch, bool) {
	var p editor.DraftPatch
	set := false
	if f.Name != nil {
		p.Name, set = editor.Set(*f.Name), true
	}
	if f.SessionCode != nil {
		p.SessionCode, set = editor.Set(f.SessionCode), true
	}
	if f.Date != nil {
		p.Date, set = editor.Set(*f.Date), true
	}
	if f.StartTime != nil {
		p.StartTime, set = editor.Set(f.StartTime), true
	}
	if f.EndTime != nil {
		p.EndTime, set = editor.Set(f.EndTime), true
	}
	if f.DurationMinutes != nil {
		p.DurationMinutes, set = editor.Set(f.DurationMinutes), true
	}
	if f.Location != nil {
		p.Location, set = editor.Set(f.Location), true
	}
	if f.Intensity != nil {
		p.Intensity, set = editor.Set(editor.Ptr(editor.Intensity(*f.Intensity))), true
	}
	if f.Trainer != nil {
		p.Trainer, set = editor.Set(f.Trainer), true
	}
	if f.Athlete != nil {
		p.Athlete, set = editor.Set(f.Athlete), true
	}
	if f.Participants != nil {
		p.Participants, set = editor.Set(f.Participants), true
	}
	if f.MicroCycleID != nil {
		p.MicroCycleID, set = editor.Set(f.MicroCycleID), true
	}
	if f.Notes != nil {
		p.Notes, set = editor.Set(*f.Notes), true
	}
	return p, set
}

func (op PlanOp) exercisePatch() editor.ExercisePatch {
	var p editor.ExercisePatch
	if op.Name != nil {
		p.Name = editor.Set(*op.Name)
	}
	if op.Pace != nil {
		p.Pace = editor.Set(op.Pace)
	}
	if op.Sets != nil {
		p.Sets = editor.Set(op.Sets)
	}
	if op.DurationSeconds != nil {
		p.DurationSeconds = editor.Set(op.DurationSeconds)
	}
	if op.RestSeconds != nil {
		p.RestSeconds = editor.Set(op.RestSeconds)
	}
	if op.Notes != nil {
		p.Notes = editor.Set(op.Notes)
	}
	if op.Order != nil {
		p.Order = editor.Set(*op.Order)
	}
	return p
}

func exerciseAt(d editor.Draft, position int) (editor.ID, error) {
	if position < 1 || position > len(d.Exercises) {
		return editor.ID{}, fmt.Errorf("no exercise at position %d", position)
	}
	return d.Exercises[position-1].ID, nil
}

func sectionAt(d editor.Draft, order int) (editor.ID, error) {
	for _, s := range d.Sections {
		if s.Order == order {
			return s.ID, nil
		}
	}
	return editor.ID{}, fmt.Errorf("no section with order %d", order)
}
