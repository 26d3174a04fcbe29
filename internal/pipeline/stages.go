package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"git.home.luguber.info/inful/apiref/internal/config"
	"git.home.luguber.info/inful/apiref/internal/fsio"
	"git.home.luguber.info/inful/apiref/internal/metrics"
	"git.home.luguber.info/inful/apiref/internal/model"
)

// StageName is a strongly-typed identifier for a build stage. All canonical
// stages are declared as constants here for compile-time safety.
type StageName string

// Canonical stage names.
const (
	StageReadSources    StageName = "read_sources"
	StageParse          StageName = "parse"
	StageVerifyExamples StageName = "verify_examples"
	StageRender         StageName = "render"
	StagePersist        StageName = "persist"
)

// Stage is a discrete unit of work in the documentation build.
type Stage func(ctx context.Context, bs *BuildState) error

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorWarning  StageErrorKind = "warning"  // Non-fatal; record and continue.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying category and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}
func newWarnStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}
func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}

// Plan accumulates stage definitions in execution order.
type Plan struct {
	Defs []StageDef
}

// NewPlan constructs an empty Plan.
func NewPlan() *Plan { return &Plan{Defs: make([]StageDef, 0, 8)} }

// Add appends a stage unconditionally.
func (p *Plan) Add(name StageName, fn Stage) *Plan {
	p.Defs = append(p.Defs, StageDef{Name: name, Fn: fn})
	return p
}

// AddIf appends a stage only if cond is true.
func (p *Plan) AddIf(cond bool, name StageName, fn Stage) *Plan {
	if cond {
		p.Add(name, fn)
	}
	return p
}

// Build returns a defensive copy of the stage definitions slice.
func (p *Plan) Build() []StageDef {
	out := make([]StageDef, len(p.Defs))
	copy(out, p.Defs)
	return out
}

// BuildState carries mutable state across stages.
type BuildState struct {
	Config    *config.Config
	FS        fsio.FileSystem
	Sources   []fsio.File
	Modules   []model.Module
	Documents []fsio.File
	Report    *Report
}

// runStages executes stages in order, recording timing and stopping on the
// first fatal or cancellation error. Warnings are recorded and execution
// continues.
func runStages(ctx context.Context, bs *BuildState, stages []StageDef, rec metrics.Recorder) error {
	for _, st := range stages {
		select {
		case <-ctx.Done():
			se := newCanceledStageError(st.Name, ctx.Err())
			bs.Report.recordError(st.Name, se)
			rec.IncStageResult(string(st.Name), metrics.ResultCanceled)
			return se
		default:
		}
		t0 := time.Now()
		err := st.Fn(ctx, bs)
		dur := time.Since(t0)
		bs.Report.StageDurations[st.Name] = dur
		rec.ObserveStageDuration(string(st.Name), dur)
		if err == nil {
			sc := bs.Report.StageCounts[st.Name]
			sc.Success++
			bs.Report.StageCounts[st.Name] = sc
			rec.IncStageResult(string(st.Name), metrics.ResultSuccess)
			continue
		}
		var se *StageError
		if !errors.As(err, &se) {
			// Unknown errors are fatal by default.
			se = newFatalStageError(st.Name, err)
		}
		switch se.Kind {
		case StageErrorWarning:
			bs.Report.recordWarning(st.Name, se)
			rec.IncStageResult(string(st.Name), metrics.ResultSuccess)
		case StageErrorCanceled:
			bs.Report.recordError(st.Name, se)
			rec.IncStageResult(string(st.Name), metrics.ResultCanceled)
			return se
		default:
			bs.Report.recordError(st.Name, se)
			rec.IncStageResult(string(st.Name), metrics.ResultFatal)
			return se
		}
	}
	return nil
}
