package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/coachdesk/internal/telemetry/tracing"
	"github.com/2beens/coachdesk/pkg/editor"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=analyzer_mocks_test.go -package=sessions_test

const (
	DefaultCompletionWeeks = 4
	MaxCompletionWeeks     = 26
	VolumeUnit             = "kg"
)

type sessionLister interface {
	List(ctx context.Context, params ListParams) ([]editor.Draft, error)
}

// MetricSample covers one week starting on Monday.
type MetricSample struct {
	WeekStart         string  `json:"weekStart"`
	SessionsScheduled int     `json:"sessionsScheduled"`
	SessionsCompleted int     `json:"sessionsCompleted"`
	Volume            float64 `json:"volume"`
	Unit              string  `json:"unit"`
}

type MetricSnapshot struct {
	RangeLabel string `json:"rangeLabel"`
	// CompletionRate is completed/scheduled in [0, 1], absent when nothing was scheduled
	CompletionRate *float64       `json:"completionRate,omitempty"`
	Volume         float64        `json:"volume"`
	Unit           string         `json:"unit"`
	Samples        []MetricSample `json:"samples"`
	HasData        bool           `json:"hasData"`
}

type Analyzer struct {
	sessions sessionLister
}

func NewAnalyzer(sessions sessionLister) *Analyzer {
	return &Analyzer{
		sessions: sessions,
	}
}

// Completion summarizes the last weeks (the current one included) of an
// athlete: sessions scheduled and completed per week, and the volume lifted
// in completed sessions.
func (a *Analyzer) Completion(
	ctx context.Context,
	athleteID string,
	weeks int,
	now time.Time,
) (_ *MetricSnapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.sessions.completion")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if weeks <= 0 {
		weeks = DefaultCompletionWeeks
	}
	weeks = min(weeks, MaxCompletionWeeks)
	span.SetAttributes(attribute.Int("weeks", weeks))

	currentWeek := weekStart(now)
	start := currentWeek.AddDate(0, 0, -7*(weeks-1))
	end := currentWeek.AddDate(0, 0, 6)

	list, err := a.sessions.List(ctx, ListParams{
		AthleteID: athleteID,
		Start:     &start,
		End:       &end,
		Limit:     MaxListLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	samples := make([]MetricSample, weeks)
	for i := range samples {
		samples[i] = MetricSample{
			WeekStart: start.AddDate(0, 0, 7*i).Format(time.DateOnly),
			Unit:      VolumeUnit,
		}
	}

	snapshot := &MetricSnapshot{
		RangeLabel: fmt.Sprintf("Last %d weeks", weeks),
		Unit:       VolumeUnit,
		Samples:    samples,
	}
	if weeks == 1 {
		snapshot.RangeLabel = "This week"
	}

	scheduled, completed := 0, 0
	for _, s := range list {
		date, err := time.Parse(time.DateOnly, s.Date)
		if err != nil {
			continue
		}
		days := daysBetween(start, date)
		if days < 0 || days/7 >= weeks {
			continue
		}
		idx := days / 7

		samples[idx].SessionsScheduled++
		scheduled++
		if s.Status == editor.StatusCompleted {
			v := SessionVolume(s)
			samples[idx].SessionsCompleted++
			samples[idx].Volume += v
			snapshot.Volume += v
			completed++
		}
	}

	if scheduled > 0 {
		rate := float64(completed) / float64(scheduled)
		snapshot.CompletionRate = &rate
		snapshot.HasData = true
	}

	return snapshot, nil
}

// SessionVolume sums reps x load over every set of every exercise. Missing
// values count as zero.
func SessionVolume(s editor.Draft) float64 {
	var volume float64
	for _, e := range s.Exercises {
		for i, reps := range e.RepsPerSet {
			if reps == nil || i >= len(e.LoadPerSet) || e.LoadPerSet[i] == nil {
				continue
			}
			volume += float64(*reps) * *e.LoadPerSet[i]
		}
	}
	return volume
}

// weekStart returns midnight of the Monday of t's week, in t's location.
func weekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// daysBetween counts calendar days, ignoring DST shifts of either location.
func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
