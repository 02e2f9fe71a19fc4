package editor

import (
	"slices"
)

// nextExerciseOrder returns max(order)+1, or 1 for an empty list.
func nextExerciseOrder(exercises []Exercise) int {
	maxOrder := 0
	for _, e := range exercises {
		maxOrder = max(maxOrder, e.Order)
	}
	return maxOrder + 1
}

func nextSectionOrder(sections []Section) int {
	maxOrder := 0
	for _, s := range sections {
		maxOrder = max(maxOrder, s.Order)
	}
	return maxOrder + 1
}

// sortAndRenumber orders exercises by their current order (ties keep their
// relative position) and rewrites the orders to 1..N.
func sortAndRenumber(exercises []Exercise) []Exercise {
	out := slices.Clone(exercises)
	slices.SortStableFunc(out, func(a, b Exercise) int {
		return a.Order - b.Order
	})
	renumber(out)
	return out
}

// renumber rewrites orders to 1..N following the slice position.
func renumber(exercises []Exercise) {
	for i := range exercises {
		exercises[i].Order = i + 1
	}
}

func renumberSections(sections []Section) {
	for i := range sections {
		sections[i].Order = i + 1
	}
}

// moveTo moves the element at from to position to and renumbers the list.
func moveTo(exercises []Exercise, from, to int) []Exercise {
	out := slices.Clone(exercises)
	moved := out[from]
	out = slices.Delete(out, from, from+1)
	out = slices.Insert(out, to, moved)
	renumber(out)
	return out
}

// duplicate copies the exercise with a fresh id; per-set slices are deep copied.
func duplicate(e Exercise, id ID, order int) Exercise {
	c := e.Clone()
	c.ID = id
	c.Order = order
	return c
}
