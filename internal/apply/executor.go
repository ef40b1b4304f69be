package apply

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mozaik-cms/mozaik/internal/compiler/ir"
)

// Backend creates schema objects and returns the ids it assigned
type Backend interface {
	CreateContentType(ctx context.Context, input ir.ContentTypeInput) (string, error)
	CreateField(ctx context.Context, contentTypeID string, field ir.FieldInput) (string, error)
	CreateFieldValidation(ctx context.Context, fieldID string, validation ir.FieldValidationInput) (string, error)
}

// StepStatus is the outcome of a step
type StepStatus string

const (
	StatusApplied StepStatus = "applied"
	StatusFailed  StepStatus = "failed"
)

// StepResult describes the outcome of one executed step
type StepResult struct {
	RunID    string
	Index    int
	Step     Step
	RemoteID string
	Status   StepStatus
	Err      error
	Duration time.Duration
}

// Recorder receives every step outcome
type Recorder interface {
	Record(ctx context.Context, result StepResult) error
}

// StepError is returned when a step fails. Steps before Index were applied
// and are left in place.
type StepError struct {
	Step  Step
	Index int
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s) failed: %v", e.Index+1, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// ErrMissingParent is returned when a step references a content type or
// field no earlier step created
var ErrMissingParent = errors.New("parent was not created by an earlier step")

// Report summarizes an execution
type Report struct {
	RunID   string
	Applied int
	Total   int
	// ContentTypes maps content type apiIds to their backend ids
	ContentTypes map[string]string
	Duration     time.Duration
}

// Executor runs plans
type Executor struct {
	backend  Backend
	recorder Recorder
	logger   *zap.Logger
}

// Option configures an Executor
type Option func(*Executor)

// WithRecorder sends every step outcome to r
func WithRecorder(r Recorder) Option {
	return func(e *Executor) {
		e.recorder = r
	}
}

// WithLogger sets the executor's logger
func WithLogger(logger *zap.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// NewExecutor creates an executor that applies steps through backend
func NewExecutor(backend Backend, opts ...Option) *Executor {
	e := &Executor{backend: backend, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs the steps of plan in order and stops at the first failure.
// The report is returned in both cases.
func (e *Executor) Execute(ctx context.Context, plan *Plan) (*Report, error) {
	start := time.Now()
	report := &Report{
		RunID:        uuid.NewString(),
		Total:        len(plan.Steps),
		ContentTypes: make(map[string]string),
	}
	fields := make(map[string]string)
	logger := e.logger.With(zap.String("run_id", report.RunID))

	logger.Info("applying plan", zap.Int("steps", report.Total), zap.Int("cycles", len(plan.Cycles)))

	for i, step := range plan.Steps {
		if err := ctx.Err(); err != nil {
			report.Duration = time.Since(start)
			return report, &StepError{Step: step, Index: i, Err: err}
		}

		stepStart := time.Now()
		id, err := e.run(ctx, step, report.ContentTypes, fields)

		result := StepResult{
			RunID:    report.RunID,
			Index:    i,
			Step:     step,
			RemoteID: id,
			Status:   StatusApplied,
			Err:      err,
			Duration: time.Since(stepStart),
		}
		if err != nil {
			result.Status = StatusFailed
		}
		if recErr := e.record(ctx, result); recErr != nil {
			logger.Warn("recording step failed", zap.Int("step", i), zap.Error(recErr))
		}

		if err != nil {
			logger.Error("step failed", zap.Int("step", i), zap.Stringer("operation", step), zap.Error(err))
			report.Duration = time.Since(start)
			return report, &StepError{Step: step, Index: i, Err: err}
		}

		logger.Debug("step applied", zap.Int("step", i), zap.Stringer("operation", step), zap.String("id", id))
		report.Applied++
	}

	report.Duration = time.Since(start)
	logger.Info("plan applied", zap.Int("steps", report.Applied), zap.Duration("duration", report.Duration))
	return report, nil
}

// run executes one step and stores the id it produced
func (e *Executor) run(ctx context.Context, step Step, contentTypes, fields map[string]string) (string, error) {
	switch step.Kind {
	case StepCreateContentType:
		id, err := e.backend.CreateContentType(ctx, *step.ContentTypeInput)
		if err != nil {
			return "", err
		}
		contentTypes[step.ContentType] = id
		return id, nil

	case StepCreateField:
		parent, ok := contentTypes[step.ContentType]
		if !ok {
			return "", fmt.Errorf("content type %s: %w", step.ContentType, ErrMissingParent)
		}
		id, err := e.backend.CreateField(ctx, parent, *step.FieldInput)
		if err != nil {
			return "", err
		}
		fields[fieldKey(step.ContentType, step.Field)] = id
		return id, nil

	case StepCreateFieldValidation:
		parent, ok := fields[fieldKey(step.ContentType, step.Field)]
		if !ok {
			return "", fmt.Errorf("field %s.%s: %w", step.ContentType, step.Field, ErrMissingParent)
		}
		return e.backend.CreateFieldValidation(ctx, parent, *step.ValidationInput)

	default:
		return "", fmt.Errorf("unknown step kind %q", step.Kind)
	}
}

func (e *Executor) record(ctx context.Context, result StepResult) error {
	if e.recorder == nil {
		return nil
	}
	return e.recorder.Record(ctx, result)
}

func fieldKey(contentType, field string) string {
	return contentType + "." + field
}
