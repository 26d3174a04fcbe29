package pipeline

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Outcome is the typed enumeration of final build result states.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeWarning  Outcome = "warning"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// StageCount aggregates outcome counts for a stage.
type StageCount struct {
	Success  int `json:"success"`
	Warning  int `json:"warning"`
	Fatal    int `json:"fatal"`
	Canceled int `json:"canceled"`
}

// Report captures high-level metrics about a documentation build run.
type Report struct {
	SchemaVersion   int
	RunID           string
	Start           time.Time
	End             time.Time
	SourceFiles     int
	Modules         int
	Documents       int
	ExamplesChecked int
	Errors          []error
	Warnings        []error
	StageDurations  map[StageName]time.Duration
	StageErrorKinds map[StageName]StageErrorKind
	StageCounts     map[StageName]StageCount
	Outcome         Outcome
}

func newReport() *Report {
	return &Report{
		SchemaVersion:   1,
		RunID:           uuid.NewString(),
		Start:           time.Now(),
		StageDurations:  make(map[StageName]time.Duration),
		StageErrorKinds: make(map[StageName]StageErrorKind),
		StageCounts:     make(map[StageName]StageCount),
	}
}

func (r *Report) recordError(stage StageName, se *StageError) {
	r.Errors = append(r.Errors, se)
	r.StageErrorKinds[stage] = se.Kind
	sc := r.StageCounts[stage]
	if se.Kind == StageErrorCanceled {
		sc.Canceled++
	} else {
		sc.Fatal++
	}
	r.StageCounts[stage] = sc
}

func (r *Report) recordWarning(stage StageName, se *StageError) {
	r.Warnings = append(r.Warnings, se)
	r.StageErrorKinds[stage] = se.Kind
	sc := r.StageCounts[stage]
	sc.Warning++
	r.StageCounts[stage] = sc
}

func (r *Report) finish() { r.End = time.Now() }

// deriveOutcome sets the Outcome field based on recorded errors and warnings.
func (r *Report) deriveOutcome() {
	if len(r.Errors) > 0 {
		for _, e := range r.Errors {
			if se, ok := e.(*StageError); ok && se.Kind == StageErrorCanceled {
				r.Outcome = OutcomeCanceled
				return
			}
		}
		r.Outcome = OutcomeFailed
		return
	}
	if len(r.Warnings) > 0 {
		r.Outcome = OutcomeWarning
		return
	}
	r.Outcome = OutcomeSuccess
}

// Duration returns the wall-clock span of the run.
func (r *Report) Duration() time.Duration { return r.End.Sub(r.Start) }

// Summary returns a human-readable single-line summary.
func (r *Report) Summary() string {
	return fmt.Sprintf("run=%s sources=%d modules=%d documents=%d examples=%d duration=%s errors=%d warnings=%d outcome=%s",
		r.RunID, r.SourceFiles, r.Modules, r.Documents, r.ExamplesChecked,
		r.Duration().Truncate(time.Millisecond), len(r.Errors), len(r.Warnings), r.Outcome)
}

// ReportRecord mirrors Report with string errors, the form stored in the
// run history database.
type ReportRecord struct {
	SchemaVersion   int                      `json:"schema_version"`
	RunID           string                   `json:"run_id"`
	Start           time.Time                `json:"start"`
	End             time.Time                `json:"end"`
	SourceFiles     int                      `json:"source_files"`
	Modules         int                      `json:"modules"`
	Documents       int                      `json:"documents"`
	ExamplesChecked int                      `json:"examples_checked"`
	Errors          []string                 `json:"errors"`
	Warnings        []string                 `json:"warnings"`
	StageDurations  map[string]time.Duration `json:"stage_durations"`
	StageErrorKinds map[string]string        `json:"stage_error_kinds"`
	StageCounts     map[string]StageCount    `json:"stage_counts"`
	Outcome         string                   `json:"outcome"`
}

// Record converts the report into its storable form.
func (r *Report) Record() *ReportRecord {
	durations := make(map[string]time.Duration, len(r.StageDurations))
	for k, v := range r.StageDurations {
		durations[string(k)] = v
	}
	kinds := make(map[string]string, len(r.StageErrorKinds))
	for k, v := range r.StageErrorKinds {
		kinds[string(k)] = string(v)
	}
	counts := make(map[string]StageCount, len(r.StageCounts))
	for k, v := range r.StageCounts {
		counts[string(k)] = v
	}
	rec := &ReportRecord{
		SchemaVersion:   r.SchemaVersion,
		RunID:           r.RunID,
		Start:           r.Start,
		End:             r.End,
		SourceFiles:     r.SourceFiles,
		Modules:         r.Modules,
		Documents:       r.Documents,
		ExamplesChecked: r.ExamplesChecked,
		Errors:          make([]string, len(r.Errors)),
		Warnings:        make([]string, len(r.Warnings)),
		StageDurations:  durations,
		StageErrorKinds: kinds,
		StageCounts:     counts,
		Outcome:         string(r.Outcome),
	}
	for i, e := range r.Errors {
		rec.Errors[i] = e.Error()
	}
	for i, w := range r.Warnings {
		rec.Warnings[i] = w.Error()
	}
	return rec
}

// MarshalJSON serializes the report in its record form so error values
// survive the round trip as strings.
func (r *Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Record())
}
