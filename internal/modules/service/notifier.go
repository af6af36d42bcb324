package service

import (
	"context"

	"github.com/timeasy-io/timeasy/internal/modules/model"
)

// ChangeNotifier receives one event per committed mutation. Delivery failures
// are logged and never undo the mutation.
type ChangeNotifier interface {
	Notify(ctx context.Context, ev model.ChangeEvent) error
}

type NoopNotifier struct{}

func (NoopNotifier) Notify(context.Context, model.ChangeEvent) error { return nil }
