package editor

// Field is one optional value of a patch. The zero Field is absent and leaves
// the target untouched; Set(v) makes it present, including "set to nil".
type Field[T any] struct {
	value   T
	present bool
}

func Set[T any](v T) Field[T] {
	return Field[T]{value: v, present: true}
}

func (f Field[T]) Get() (T, bool) {
	return f.value, f.present
}

func (f Field[T]) IsSet() bool {
	return f.present
}

func (f Field[T]) apply(target *T) {
	if f.present {
		*target = f.value
	}
}

// ExercisePatch lists the mutable fields of an exercise.
type ExercisePatch struct {
	SectionID       Field[ID]
	Name            Field[string]
	Pace            Field[*string]
	Sets            Field[*int]
	RepsPerSet      Field[[]*int]
	LoadPerSet      Field[[]*float64]
	DurationSeconds Field[*int]
	RestSeconds     Field[*int]
	Order           Field[int]
	Notes           Field[*string]
}

// validate rejects patches that would break draft invariants.
func (p ExercisePatch) validate(d *Draft) bool {
	if sectionID, ok := p.SectionID.Get(); ok && d.SectionByID(sectionID) < 0 {
		return false
	}
	if sets, ok := p.Sets.Get(); ok && sets != nil && *sets < 0 {
		return false
	}
	if order, ok := p.Order.Get(); ok && order < 1 {
		return false
	}
	return true
}

func (p ExercisePatch) applyTo(e *Exercise) {
	p.SectionID.apply(&e.SectionID)
	p.Name.apply(&e.Name)
	p.Pace.apply(&e.Pace)
	p.Sets.apply(&e.Sets)
	p.RepsPerSet.apply(&e.RepsPerSet)
	p.LoadPerSet.apply(&e.LoadPerSet)
	p.DurationSeconds.apply(&e.DurationSeconds)
	p.RestSeconds.apply(&e.RestSeconds)
	p.Order.apply(&e.Order)
	p.Notes.apply(&e.Notes)

	// slices handed in by the caller must not alias the draft
	e.RepsPerSet = clonePtrSlice(e.RepsPerSet)
	e.LoadPerSet = clonePtrSlice(e.LoadPerSet)
	e.Pace = clonePtr(e.Pace)
	e.Sets = clonePtr(e.Sets)
	e.DurationSeconds = clonePtr(e.DurationSeconds)
	e.RestSeconds = clonePtr(e.RestSeconds)
	e.Notes = clonePtr(e.Notes)
}

// DraftPatch lists the top level fields of a draft that can be replaced
// through the editor. Sections and exercises have their own operations.
type DraftPatch struct {
	Name            Field[string]
	SessionCode     Field[*string]
	Date            Field[string]
	StartTime       Field[*string]
	EndTime         Field[*string]
	DurationMinutes Field[*int]
	Location        Field[*string]
	Intensity       Field[*Intensity]
	Trainer         Field[*string]
	Athlete         Field[*string]
	Participants    Field[[]string]
	MicroCycleID    Field[*string]
	Notes           Field[string]
}

func (p DraftPatch) validate() bool {
	if intensity, ok := p.Intensity.Get(); ok && intensity != nil && !intensity.IsValid() {
		return false
	}
	if minutes, ok := p.DurationMinutes.Get(); ok && minutes != nil && *minutes < 0 {
		return false
	}
	return true
}

func (p DraftPatch) isEmpty() bool {
	return !p.Name.IsSet() && !p.SessionCode.IsSet() && !p.Date.IsSet() &&
		!p.StartTime.IsSet() && !p.EndTime.IsSet() && !p.DurationMinutes.IsSet() &&
		!p.Location.IsSet() && !p.Intensity.IsSet() && !p.Trainer.IsSet() &&
		!p.Athlete.IsSet() && !p.Participants.IsSet() && !p.MicroCycleID.IsSet() &&
		!p.Notes.IsSet()
}

func (p DraftPatch) applyTo(d *Draft) {
	p.Name.apply(&d.Name)
	p.SessionCode.apply(&d.SessionCode)
	p.Date.apply(&d.Date)
	p.StartTime.apply(&d.StartTime)
	p.EndTime.apply(&d.EndTime)
	p.DurationMinutes.apply(&d.DurationMinutes)
	p.Location.apply(&d.Location)
	p.Intensity.apply(&d.Intensity)
	p.Trainer.apply(&d.Trainer)
	p.Athlete.apply(&d.Athlete)
	p.Participants.apply(&d.Participants)
	p.MicroCycleID.apply(&d.MicroCycleID)
	p.Notes.apply(&d.Notes)
}
