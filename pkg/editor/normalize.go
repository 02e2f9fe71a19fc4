package editor

import (
	"slices"
)

// Normalize prepares a draft coming from outside the editor (initial load,
// reset, server response):
//   - at least one section exists, sections without order get their position
//   - nil collections become empty ones
//   - session code falls back to the session id, athlete to the first participant
//   - the exercise list is never empty, orders are contiguous 1..N
//   - every exercise points to an existing section (the first one by default)
//   - per-set reps/load slices match the sets count
//
// The input is not modified.
func Normalize(d Draft, ids *IDIssuer) Draft {
	n := d.Clone()

	if len(n.Sections) == 0 {
		n.Sections = []Section{newSection(ids, 1, CategoryWeights)}
	}
	for i := range n.Sections {
		if n.Sections[i].Order < 1 {
			n.Sections[i].Order = i + 1
		}
		if n.Sections[i].ID.IsZero() {
			n.Sections[i].ID = ids.Next(PrefixSection)
		}
	}
	slices.SortStableFunc(n.Sections, func(a, b Section) int {
		return a.Order - b.Order
	})
	renumberSections(n.Sections)
	primarySection := n.Sections[0].ID

	if n.Participants == nil {
		n.Participants = []string{}
	}
	if n.SessionCode == nil && !n.ID.IsZero() {
		n.SessionCode = Ptr(n.ID.String())
	}
	if n.Athlete == nil && len(n.Participants) > 0 {
		n.Athlete = Ptr(n.Participants[0])
	}
	if n.Status == "" {
		n.Status = StatusPlanned
	}

	if len(n.Exercises) == 0 {
		n.Exercises = []Exercise{newBlankExercise(ids, 1, primarySection)}
	}
	for i := range n.Exercises {
		e := &n.Exercises[i]
		if e.ID.IsZero() {
			e.ID = ids.Next(PrefixExercise)
		}
		if e.SectionID.IsZero() || n.SectionByID(e.SectionID) < 0 {
			e.SectionID = primarySection
		}
		reconcileSets(e)
	}
	n.Exercises = sortAndRenumber(n.Exercises)

	return n
}

// reconcileSets resizes the per-set slices to the sets count, keeping
// existing values by index and filling new slots with nil.
// Derived data: call it after every mutation touching Sets.
func reconcileSets(e *Exercise) {
	if e.Sets == nil {
		if e.RepsPerSet == nil {
			e.RepsPerSet = []*int{}
		}
		if e.LoadPerSet == nil {
			e.LoadPerSet = []*float64{}
		}
		return
	}
	n := max(*e.Sets, 0)
	e.RepsPerSet = resize(e.RepsPerSet, n)
	e.LoadPerSet = resize(e.LoadPerSet, n)
}

func resize[T any](s []*T, n int) []*T {
	out := make([]*T, n)
	copy(out, s)
	return out
}

func newSection(ids *IDIssuer, order int, category SectionCategory) Section {
	return Section{
		ID:       ids.Next(PrefixSection),
		Category: category,
		Order:    order,
	}
}

func newBlankExercise(ids *IDIssuer, order int, sectionID ID) Exercise {
	return Exercise{
		ID:         ids.Next(PrefixExercise),
		SectionID:  sectionID,
		RepsPerSet: []*int{},
		LoadPerSet: []*float64{},
		Order:      order,
	}
}
