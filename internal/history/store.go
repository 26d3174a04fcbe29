// Package history persists run reports so past builds can be inspected
// from the command line. The store is optional; builds run fine without it.
package history

import (
	"context"
	"errors"

	"git.home.luguber.info/inful/apiref/internal/pipeline"
)

// ErrRunNotFound is returned when a run id has no stored report.
var ErrRunNotFound = errors.New("run not found")

// Store records run reports and serves them back in reverse chronological
// order.
type Store interface {
	Record(ctx context.Context, rec *pipeline.ReportRecord) error
	Recent(ctx context.Context, limit int) ([]pipeline.ReportRecord, error)
	Get(ctx context.Context, runID string) (*pipeline.ReportRecord, error)
	Close() error
}
