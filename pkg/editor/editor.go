package editor

import (
	"encoding/json"
	"slices"
)

type Direction int

const (
	Up Direction = iota
	Down
)

// Editor holds the live draft of one training session together with the
// baseline it was loaded from.
//
// Every operation is a synchronous state transition that reports whether the
// draft changed. Invalid requests (unknown ids, removing the last section,
// moving past a boundary, ...) are ignored and leave the draft untouched.
// The exercise slice is kept sorted, so an exercise's position is Order-1.
//
// An Editor is not safe for concurrent use.
type Editor struct {
	ids      *IDIssuer
	baseline Draft
	live     Draft
}

type Option func(*Editor)

// WithIDIssuer makes the editor issue temporary ids from the given issuer.
func WithIDIssuer(ids *IDIssuer) Option {
	return func(e *Editor) {
		if ids != nil {
			e.ids = ids
		}
	}
}

// New creates an editor over a normalized copy of initial, or over an empty
// draft when initial is nil.
func New(initial *Draft, opts ...Option) *Editor {
	e := &Editor{}
	for _, opt := range opts {
		opt(e)
	}
	if e.ids == nil {
		e.ids = NewIDIssuer()
	}
	e.Reset(initial)
	return e
}

func (e *Editor) Draft() Draft {
	return e.live.Clone()
}

func (e *Editor) Errors() Errors {
	return Validate(e.live)
}

func (e *Editor) IsValid() bool {
	return e.Errors().Valid()
}

// IsDirty compares the canonical serialization of the live draft with the baseline.
func (e *Editor) IsDirty() bool {
	live, liveErr := json.Marshal(canonical(e.live))
	base, baseErr := json.Marshal(canonical(e.baseline))
	if liveErr != nil || baseErr != nil {
		return true
	}
	return string(live) != string(base)
}

// Reset replaces both the live draft and the baseline.
func (e *Editor) Reset(d *Draft) {
	var next Draft
	if d != nil {
		next = *d
	}
	e.live = Normalize(next, e.ids)
	e.baseline = e.live.Clone()
}

// MarkSaved adopts the server response of a successful save as the new
// baseline. Server ids replace the temporary ones.
func (e *Editor) MarkSaved(saved Draft) {
	e.Reset(&saved)
}

// AddExercise appends a blank exercise to the given section, or to the first
// section when sectionID is zero.
func (e *Editor) AddExercise(sectionID ID) bool {
	if sectionID.IsZero() {
		sectionID = e.live.Sections[0].ID
	} else if e.live.SectionByID(sectionID) < 0 {
		return false
	}

	ex := newBlankExercise(e.ids, nextExerciseOrder(e.live.Exercises), sectionID)
	e.live.Exercises = append(e.live.Exercises, ex)
	return true
}

// AddSection appends a section of category other with one blank exercise in it.
func (e *Editor) AddSection() bool {
	s := newSection(e.ids, nextSectionOrder(e.live.Sections), CategoryOther)
	e.live.Sections = append(e.live.Sections, s)
	e.live.Exercises = append(e.live.Exercises, newBlankExercise(e.ids, nextExerciseOrder(e.live.Exercises), s.ID))
	return true
}

func (e *Editor) UpdateSection(id ID, category SectionCategory) bool {
	if !category.IsValid() {
		return false
	}
	idx := e.live.SectionByID(id)
	if idx < 0 || e.live.Sections[idx].Category == category {
		return false
	}
	e.live.Sections[idx].Category = category
	return true
}

// RemoveSection drops a section together with its exercises. Exercises left
// without a resolvable section move to the first remaining one.
// The last section cannot be removed.
func (e *Editor) RemoveSection(id ID) bool {
	idx := e.live.SectionByID(id)
	if idx < 0 || len(e.live.Sections) <= 1 {
		return false
	}

	e.live.Sections = slices.Delete(e.live.Sections, idx, idx+1)
	renumberSections(e.live.Sections)
	fallback := e.live.Sections[0].ID

	e.live.Exercises = slices.DeleteFunc(e.live.Exercises, func(ex Exercise) bool {
		return ex.SectionID == id
	})
	for i := range e.live.Exercises {
		if e.live.SectionByID(e.live.Exercises[i].SectionID) < 0 {
			e.live.Exercises[i].SectionID = fallback
		}
	}
	renumber(e.live.Exercises)
	if len(e.live.Exercises) == 0 {
		e.live.Exercises = []Exercise{newBlankExercise(e.ids, 1, fallback)}
	}
	return true
}

// UpdateExercise merges the patch into the exercise. A patch that does not
// validate is rejected as a whole.
func (e *Editor) UpdateExercise(id ID, patch ExercisePatch) bool {
	idx := e.live.ExerciseByID(id)
	if idx < 0 || !patch.validate(&e.live) {
		return false
	}

	updated := e.live.Exercises[idx].Clone()
	patch.applyTo(&updated)
	if _, ok := patch.Sets.Get(); ok {
		reconcileSets(&updated)
	}
	e.live.Exercises[idx] = updated

	if order, ok := patch.Order.Get(); ok {
		target := min(order, len(e.live.Exercises)) - 1
		e.live.Exercises = moveTo(e.live.Exercises, idx, target)
	}
	return true
}

func (e *Editor) RemoveExercise(id ID) bool {
	idx := e.live.ExerciseByID(id)
	if idx < 0 {
		return false
	}
	e.live.Exercises = slices.Delete(e.live.Exercises, idx, idx+1)
	renumber(e.live.Exercises)
	return true
}

// MoveExercise swaps the exercise with its neighbour in the given direction.
func (e *Editor) MoveExercise(id ID, dir Direction) bool {
	idx := e.live.ExerciseByID(id)
	if idx < 0 {
		return false
	}

	var target int
	switch dir {
	case Up:
		target = idx - 1
	case Down:
		target = idx + 1
	default:
		return false
	}
	if target < 0 || target >= len(e.live.Exercises) {
		return false
	}

	e.live.Exercises = moveTo(e.live.Exercises, idx, target)
	return true
}

// ReorderExercise moves the exercise to the 0-based target position.
func (e *Editor) ReorderExercise(id ID, targetIndex int) bool {
	idx := e.live.ExerciseByID(id)
	if idx < 0 || targetIndex < 0 || targetIndex >= len(e.live.Exercises) || targetIndex == idx {
		return false
	}
	e.live.Exercises = moveTo(e.live.Exercises, idx, targetIndex)
	return true
}

// DuplicateExercise appends a deep copy of the exercise at the end of the list.
func (e *Editor) DuplicateExercise(id ID) bool {
	idx := e.live.ExerciseByID(id)
	if idx < 0 {
		return false
	}
	c := duplicate(e.live.Exercises[idx], e.ids.Next(PrefixDuplicate), nextExerciseOrder(e.live.Exercises))
	e.live.Exercises = append(e.live.Exercises, c)
	return true
}

// AddSet appends one empty set slot to the exercise.
func (e *Editor) AddSet(id ID) bool {
	idx := e.live.ExerciseByID(id)
	if idx < 0 {
		return false
	}

	ex := &e.live.Exercises[idx]
	sets := max(len(ex.RepsPerSet), len(ex.LoadPerSet))
	if ex.Sets != nil {
		sets = max(sets, *ex.Sets)
	}
	ex.Sets = Ptr(sets + 1)
	reconcileSets(ex)
	return true
}

// UpdateSet writes reps and load of the set at index, growing the set count
// when index is past the end.
func (e *Editor) UpdateSet(id ID, index int, reps *int, load *float64) bool {
	idx := e.live.ExerciseByID(id)
	if idx < 0 || index < 0 {
		return false
	}

	ex := &e.live.Exercises[idx]
	if ex.Sets == nil || *ex.Sets <= index {
		ex.Sets = Ptr(index + 1)
	}
	reconcileSets(ex)
	ex.RepsPerSet[index] = clonePtr(reps)
	ex.LoadPerSet[index] = clonePtr(load)
	return true
}

// UpdateField replaces top level draft fields.
func (e *Editor) UpdateField(patch DraftPatch) bool {
	if patch.isEmpty() || !patch.validate() {
		return false
	}
	patch.applyTo(&e.live)
	e.live.Participants = slices.Clone(e.live.Participants)
	if e.live.Participants == nil {
		e.live.Participants = []string{}
	}
	return true
}

// canonical returns the form used for dirty comparison: sections and
// exercises sorted by order.
func canonical(d Draft) Draft {
	c := d.Clone()
	slices.SortStableFunc(c.Sections, func(a, b Section) int {
		return a.Order - b.Order
	})
	c.Exercises = sortAndRenumber(c.Exercises)
	return c
}
