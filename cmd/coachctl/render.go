package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/2beens/coachdesk/pkg/editor"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Padding(0, 1)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
}

func renderSession(w io.Writer, d editor.Draft) {
	title := d.Name
	if strings.TrimSpace(title) == "" {
		title = "(unnamed session)"
	}
	fmt.Fprintln(w, headerStyle.Render(title))

	meta := []string{"date " + valueOr(d.Date, "-")}
	if d.StartTime != nil || d.EndTime != nil {
		meta = append(meta, fmt.Sprintf("time %s-%s", deref(d.StartTime, "?"), deref(d.EndTime, "?")))
	}
	if d.Status != "" {
		meta = append(meta, "status "+string(d.Status))
	}
	if d.Intensity != nil {
		meta = append(meta, "intensity "+string(*d.Intensity))
	}
	if d.Location != nil {
		meta = append(meta, "at "+*d.Location)
	}
	if !d.ID.IsZero() {
		meta = append(meta, "id "+d.ID.String())
	}
	fmt.Fprintln(w, metaStyle.Render(strings.Join(meta, " · ")))

	sections := append([]editor.Section(nil), d.Sections...)
	sort.SliceStable(sections, func(i, j int) bool { return sections[i].Order < sections[j].Order })

	for _, s := range sections {
		fmt.Fprintln(w)
		fmt.Fprintln(w, sectionStyle.Render(fmt.Sprintf("%d. %s", s.Order, s.Category)))

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, e := range d.Exercises {
			if e.SectionID != s.ID {
				continue
			}
			fmt.Fprintf(tw, "  #%d\t%s\t%s\t%s\n", e.Order, valueOr(e.Name, "(unnamed)"), exerciseMetrics(e), deref(e.Notes, ""))
		}
		_ = tw.Flush()
	}

	if d.Notes != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, metaStyle.Render(d.Notes))
	}
}

func exerciseMetrics(e editor.Exercise) string {
	var parts []string
	if e.Sets != nil && *e.Sets > 0 {
		sets := make([]string, 0, *e.Sets)
		for i := 0; i < *e.Sets; i++ {
			set := "?"
			if i < len(e.RepsPerSet) && e.RepsPerSet[i] != nil {
				set = fmt.Sprintf("%d", *e.RepsPerSet[i])
			}
			if i < len(e.LoadPerSet) && e.LoadPerSet[i] != nil {
				set += fmt.Sprintf("@%g", *e.LoadPerSet[i])
			}
			sets = append(sets, set)
		}
		parts = append(parts, strings.Join(sets, " "))
	}
	if e.DurationSeconds != nil {
		parts = append(parts, fmt.Sprintf("%ds", *e.DurationSeconds))
	}
	if e.RestSeconds != nil {
		parts = append(parts, fmt.Sprintf("rest %ds", *e.RestSeconds))
	}
	if e.Pace != nil {
		parts = append(parts, "pace "+*e.Pace)
	}
	return strings.Join(parts, ", ")
}

// renderErrors prints validation messages, blocking ones first.
func renderErrors(w io.Writer, d editor.Draft, errs editor.Errors) {
	if errs.Exercises != "" {
		fmt.Fprintln(w, errorStyle.Render("✗ "+errs.Exercises))
	}
	for _, e := range d.Exercises {
		exErrs, ok := errs.ExerciseErrors[e.ID]
		if !ok {
			continue
		}
		for _, msg := range []string{exErrs.Name, exErrs.Metrics} {
			if msg != "" {
				fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("✗ exercise #%d: %s", e.Order, msg)))
			}
		}
	}
	if errs.Date != "" {
		fmt.Fprintln(w, warningStyle.Render("! "+errs.Date))
	}
	if errs.Time != "" {
		fmt.Fprintln(w, warningStyle.Render("! "+errs.Time))
	}
	if errs.Valid() && errs.Date == "" && errs.Time == "" {
		fmt.Fprintln(w, successStyle.Render("✓ draft is valid"))
	}
}

func valueOr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func deref(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
