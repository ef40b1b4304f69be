// Package journal keeps a record of every step an apply run executed, so a
// partially applied schema can be inspected after the fact.
package journal

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/mozaik-cms/mozaik/internal/apply"
)

// ErrRunNotFound is returned when a run has no entries
var ErrRunNotFound = errors.New("run not found")

// Entry is one recorded step outcome
type Entry struct {
	RunID    string           `json:"runId"`
	Seq      int              `json:"seq"`
	Step     string           `json:"step"`
	Kind     apply.StepKind   `json:"kind"`
	RemoteID string           `json:"remoteId,omitempty"`
	Status   apply.StepStatus `json:"status"`
	Error    string           `json:"error,omitempty"`
	Time     time.Time        `json:"time"`
}

// Run summarizes a recorded run
type Run struct {
	ID      string
	Started time.Time
}

// Store persists journal entries
type Store interface {
	// Append adds an entry to the end of its run
	Append(ctx context.Context, entry Entry) error
	// Entries returns the entries of a run in the order they were appended
	Entries(ctx context.Context, runID string) ([]Entry, error)
	// Runs returns up to limit runs, most recent first
	Runs(ctx context.Context, limit int) ([]Run, error)
	Close() error
}

// Recorder writes apply step results to a store
type Recorder struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewRecorder creates a recorder backed by store
func NewRecorder(store Store, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{store: store, logger: logger, now: time.Now}
}

// Record implements apply.Recorder
func (r *Recorder) Record(ctx context.Context, result apply.StepResult) error {
	entry := Entry{
		RunID:    result.RunID,
		Seq:      result.Index,
		Step:     result.Step.String(),
		Kind:     result.Step.Kind,
		RemoteID: result.RemoteID,
		Status:   result.Status,
		Time:     r.now().UTC(),
	}
	if result.Err != nil {
		entry.Error = result.Err.Error()
	}

	if err := r.store.Append(ctx, entry); err != nil {
		return err
	}
	r.logger.Debug("journal entry recorded",
		zap.String("run_id", entry.RunID),
		zap.Int("seq", entry.Seq),
		zap.String("status", string(entry.Status)),
	)
	return nil
}
