package apply

import (
	"context"
	"errors"

	"github.com/mozaik-cms/mozaik/internal/schemadiff"
)

var (
	// ErrBreakingChange is returned when a change set contains a breaking
	// change. It is never overridden by force.
	ErrBreakingChange = errors.New("the schema contains breaking changes, which can only be applied from the web interface")
	// ErrNotConfirmed is returned when the user declines to apply changes
	ErrNotConfirmed = errors.New("schema update was not confirmed")
)

// Confirmer asks the user whether changes should be applied
type Confirmer interface {
	Confirm(ctx context.Context, diff *schemadiff.Result) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface
type ConfirmFunc func(ctx context.Context, diff *schemadiff.Result) (bool, error)

// Confirm calls f
func (f ConfirmFunc) Confirm(ctx context.Context, diff *schemadiff.Result) (bool, error) {
	return f(ctx, diff)
}

// Decision is the outcome of Gate
type Decision int

const (
	// NothingToDo means the diff is empty
	NothingToDo Decision = iota
	// Proceed means the changes may be applied
	Proceed
)

// Gate decides whether diff may be applied. Breaking changes are always
// refused. Other changes need confirmation unless force is set.
func Gate(ctx context.Context, diff *schemadiff.Result, force bool, confirmer Confirmer) (Decision, error) {
	if diff == nil || diff.IsEmpty() {
		return NothingToDo, nil
	}
	if diff.HasBreaking() {
		return NothingToDo, ErrBreakingChange
	}
	if force {
		return Proceed, nil
	}
	if confirmer == nil {
		return NothingToDo, ErrNotConfirmed
	}

	ok, err := confirmer.Confirm(ctx, diff)
	if err != nil {
		return NothingToDo, err
	}
	if !ok {
		return NothingToDo, ErrNotConfirmed
	}
	return Proceed, nil
}
