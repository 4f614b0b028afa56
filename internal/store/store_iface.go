package store

import (
	"context"
	"errors"

	"github.com/rogersnm/focus/internal/model"
)

var (
	// ErrUnavailable wraps failures to read the task snapshot.
	ErrUnavailable = errors.New("task store unavailable")
	// ErrMutationFailed wraps field writes the store rejected or did not confirm.
	ErrMutationFailed = errors.New("task store mutation failed")
)

// Gateway is the narrow view of a task store the ordering code needs: a full
// snapshot of active tasks and single-field writes keyed by uuid.
// TaskwarriorStore, LocalStore and CloudStore implement it.
type Gateway interface {
	Export(ctx context.Context) ([]model.Item, error)
	SetField(ctx context.Context, uuid, field string, value float64) error
	ClearField(ctx context.Context, uuid, field string) error
}
