package apply

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mozaik-cms/mozaik/internal/compiler/ir"
)

// fakeBackend mints sequential ids and fails the call numbered failAt
type fakeBackend struct {
	calls  []string
	failAt int
	cancel context.CancelFunc
}

func (b *fakeBackend) next(call string) (string, error) {
	b.calls = append(b.calls, call)
	n := len(b.calls)
	if b.cancel != nil && n == 1 {
		b.cancel()
	}
	if n == b.failAt {
		return "", errors.New("backend refused")
	}
	return fmt.Sprintf("id-%d", n), nil
}

func (b *fakeBackend) CreateContentType(_ context.Context, input ir.ContentTypeInput) (string, error) {
	return b.next("contentType " + input.APIID)
}

func (b *fakeBackend) CreateField(_ context.Context, contentTypeID string, field ir.FieldInput) (string, error) {
	return b.next("field " + contentTypeID + " " + field.APIID)
}

func (b *fakeBackend) CreateFieldValidation(_ context.Context, fieldID string, validation ir.FieldValidationInput) (string, error) {
	return b.next("validation " + fieldID + " " + string(validation.Type))
}

type memoryRecorder struct {
	results []StepResult
}

func (r *memoryRecorder) Record(_ context.Context, result StepResult) error {
	r.results = append(r.results, result)
	return nil
}

func TestExecute_PassesIDsToLaterSteps(t *testing.T) {
	backend := &fakeBackend{}
	executor := NewExecutor(backend, WithLogger(zaptest.NewLogger(t)))

	report, err := executor.Execute(context.Background(), NewPlan(sampleInputs()))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"contentType Author",
		"contentType Post",
		"field id-1 posts",
		"field id-2 title",
		"validation id-4 REQUIRED",
		"validation id-4 MIN_LENGTH",
		"field id-2 author",
	}, backend.calls)
	assert.Equal(t, 7, report.Applied)
	assert.Equal(t, 7, report.Total)
	assert.Equal(t, map[string]string{"Author": "id-1", "Post": "id-2"}, report.ContentTypes)
	assert.NotEmpty(t, report.RunID)
}

func TestExecute_StopsAtFirstFailure(t *testing.T) {
	backend := &fakeBackend{failAt: 3}
	recorder := &memoryRecorder{}
	executor := NewExecutor(backend, WithRecorder(recorder))

	report, err := executor.Execute(context.Background(), NewPlan(sampleInputs()))

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, 2, stepErr.Index)
	assert.Equal(t, StepCreateField, stepErr.Step.Kind)
	assert.Equal(t, "step 3 (create field Author.posts) failed: backend refused", err.Error())

	assert.Len(t, backend.calls, 3)
	assert.Equal(t, 2, report.Applied)

	require.Len(t, recorder.results, 3)
	assert.Equal(t, StatusApplied, recorder.results[0].Status)
	assert.Equal(t, "id-1", recorder.results[0].RemoteID)
	assert.Equal(t, StatusFailed, recorder.results[2].Status)
	assert.EqualError(t, recorder.results[2].Err, "backend refused")
	assert.Equal(t, report.RunID, recorder.results[2].RunID)
}

func TestExecute_HonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	backend := &fakeBackend{cancel: cancel}

	report, err := NewExecutor(backend).Execute(ctx, NewPlan(sampleInputs()))

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Len(t, backend.calls, 1)
	assert.Equal(t, 1, report.Applied)
}

func TestExecute_MissingParent(t *testing.T) {
	plan := &Plan{Steps: []Step{{
		Kind:        StepCreateField,
		ContentType: "Post",
		Field:       "title",
		FieldInput:  &ir.FieldInput{APIID: "title"},
	}}}

	_, err := NewExecutor(&fakeBackend{}).Execute(context.Background(), plan)
	assert.True(t, errors.Is(err, ErrMissingParent))
}

func TestExecute_EmptyPlan(t *testing.T) {
	report, err := NewExecutor(&fakeBackend{}).Execute(context.Background(), &Plan{})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Total)
}
