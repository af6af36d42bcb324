package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/timeasy-io/timeasy/internal/modules/guard"
	"github.com/timeasy-io/timeasy/internal/modules/model"
	"github.com/timeasy-io/timeasy/internal/modules/repo"
	"github.com/timeasy-io/timeasy/internal/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("github.com/timeasy-io/timeasy/internal/modules/service")

// Clock returns the current instant. Stored timestamps have microsecond precision.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

type Option func(*options)

type options struct {
	clock    Clock
	notifier ChangeNotifier
	log      *zap.Logger
}

// WithClock replaces the wall clock used to stamp createdAt and updatedAt.
func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithNotifier publishes a ChangeEvent after every successful mutation.
func WithNotifier(n ChangeNotifier) Option {
	return func(o *options) { o.notifier = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

func buildOptions(opts []Option) options {
	o := options{clock: systemClock, notifier: NoopNotifier{}, log: zap.NewNop()}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// lifecycle is the kind-independent core behind ProjectService and TimeEntryService.
// It keeps no mutable state of its own; serialisation of writers on one id is
// the store's row lock.
type lifecycle[T any, P model.Record[T]] struct {
	store repo.Store[T, P]
	kind  string
	options
}

func newLifecycle[T any, P model.Record[T]](store repo.Store[T, P], opts []Option) *lifecycle[T, P] {
	var zero T
	return &lifecycle[T, P]{store: store, kind: P(&zero).Kind(), options: buildOptions(opts)}
}

func clone[T any, P model.Record[T]](r P) P {
	return P(r.Clone())
}

// Add stores r as a new resource. A nil id is replaced by a random one and
// unset timestamps are stamped with the current time.
func (l *lifecycle[T, P]) Add(ctx context.Context, r P) (id uuid.UUID, err error) {
	ctx, done := l.begin(ctx, model.OpAdd)
	defer func() { done(err) }()

	if r.Key() == uuid.Nil {
		r.SetKey(uuid.New())
	}
	id = r.Key()

	exists, err := l.store.ExistsByID(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}
	if exists {
		return uuid.Nil, &model.AlreadyExistsError{Kind: l.kind, ID: id}
	}

	st := r.State()
	if st.CreatedAt.IsZero() {
		st.CreatedAt = l.clock()
	}
	if st.UpdatedAt.IsZero() {
		st.UpdatedAt = st.CreatedAt
	}
	if err = l.store.Insert(ctx, r); err != nil {
		if errors.Is(err, repo.ErrDuplicateKey) {
			return uuid.Nil, &model.AlreadyExistsError{Kind: l.kind, ID: id}
		}
		return uuid.Nil, err
	}
	l.notify(ctx, model.OpAdd, r)
	return id, nil
}

// Update replaces the stored resource with r. createdAt is kept from the
// stored row and updatedAt moves strictly forward.
func (l *lifecycle[T, P]) Update(ctx context.Context, r P) (saved P, err error) {
	ctx, done := l.begin(ctx, model.OpUpdate)
	defer func() { done(err) }()

	return l.replace(ctx, r.Key(), model.OpUpdate, func(P) (P, error) {
		return clone[T](r), nil
	})
}

// Delete is Update with deleted forced to true. Rows are never removed.
func (l *lifecycle[T, P]) Delete(ctx context.Context, r P) (saved P, err error) {
	ctx, done := l.begin(ctx, model.OpDelete)
	defer func() { done(err) }()

	return l.replace(ctx, r.Key(), model.OpDelete, func(P) (P, error) {
		next := clone[T](r)
		next.State().Deleted = true
		return next, nil
	})
}

// FindByID returns the stored resource, deleted or not.
func (l *lifecycle[T, P]) FindByID(ctx context.Context, id uuid.UUID) (P, error) {
	r, ok, err := l.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &model.NotFoundError{Kind: l.kind, ID: id}
	}
	return r, nil
}

// FindVisible is FindByID as seen by who: deleted rows and rows the guard
// denies are reported as not found.
func (l *lifecycle[T, P]) FindVisible(ctx context.Context, id uuid.UUID, who model.Identity) (P, error) {
	r, err := l.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.State().Deleted || guard.Authorize(r, who) == guard.Denied {
		return nil, &model.NotFoundError{Kind: l.kind, ID: id}
	}
	return r, nil
}

// UpdateAs is Update on behalf of who. The owner and the deleted flag of the
// stored row win over whatever r carries.
func (l *lifecycle[T, P]) UpdateAs(ctx context.Context, r P, who model.Identity) (saved P, err error) {
	ctx, done := l.begin(ctx, model.OpUpdate)
	defer func() { done(err) }()

	return l.replace(ctx, r.Key(), model.OpUpdate, func(existing P) (P, error) {
		if err := l.visible(existing, who); err != nil {
			return nil, err
		}
		next := clone[T](r)
		next.State().OwnerUserID = existing.State().OwnerUserID
		next.State().Deleted = false
		return next, nil
	})
}

// DeleteAs soft deletes id on behalf of who.
func (l *lifecycle[T, P]) DeleteAs(ctx context.Context, id uuid.UUID, who model.Identity) (saved P, err error) {
	ctx, done := l.begin(ctx, model.OpDelete)
	defer func() { done(err) }()

	return l.replace(ctx, id, model.OpDelete, func(existing P) (P, error) {
		if err := l.visible(existing, who); err != nil {
			return nil, err
		}
		next := clone[T](existing)
		next.State().Deleted = true
		return next, nil
	})
}

func (l *lifecycle[T, P]) visible(r P, who model.Identity) error {
	if r.State().Deleted || guard.Authorize(r, who) == guard.Denied {
		return &model.NotFoundError{Kind: l.kind, ID: r.Key()}
	}
	return nil
}

func (l *lifecycle[T, P]) ListAll(ctx context.Context) ([]P, error) {
	return l.store.List(ctx, repo.Filter{}.NotDeleted())
}

func (l *lifecycle[T, P]) ListAllOfUser(ctx context.Context, userID string) ([]P, error) {
	return l.store.List(ctx, repo.Filter{}.Owner(userID).NotDeleted())
}

// ListVisible lists everything for admins and the caller's own resources otherwise.
func (l *lifecycle[T, P]) ListVisible(ctx context.Context, who model.Identity) ([]P, error) {
	if who.IsAdmin {
		return l.ListAll(ctx)
	}
	return l.ListAllOfUser(ctx, who.UserID)
}

// ListChangedSince returns every resource of userID touched after since,
// deleted ones included, so a client can mirror removals.
func (l *lifecycle[T, P]) ListChangedSince(ctx context.Context, userID string, since time.Time) ([]P, error) {
	return l.store.List(ctx, repo.Filter{}.Owner(userID).Since(since))
}

// replace locks id for the rest of the transaction, asks build for the new
// row and writes it with the stored createdAt and a fresh updatedAt.
func (l *lifecycle[T, P]) replace(ctx context.Context, id uuid.UUID, op string, build func(existing P) (P, error)) (P, error) {
	var saved P
	err := l.store.Transaction(ctx, func(tx repo.Tx[T, P]) error {
		existing, ok, err := tx.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return &model.NotFoundError{Kind: l.kind, ID: id}
		}
		next, err := build(existing)
		if err != nil {
			return err
		}
		next.SetKey(id)
		st := next.State()
		st.CreatedAt = existing.State().CreatedAt
		st.UpdatedAt = l.after(existing.State().UpdatedAt)
		if err := tx.Save(ctx, next); err != nil {
			return err
		}
		saved = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.notify(ctx, op, saved)
	return saved, nil
}

// after returns the current time, or prev plus one microsecond when the clock
// has not moved past prev.
func (l *lifecycle[T, P]) after(prev time.Time) time.Time {
	now := l.clock()
	if !now.After(prev) {
		now = prev.Add(time.Microsecond)
	}
	return now
}

func (l *lifecycle[T, P]) notify(ctx context.Context, op string, r P) {
	st := r.State()
	ev := model.ChangeEvent{
		Kind:        l.kind,
		Op:          op,
		ID:          r.Key(),
		OwnerUserID: st.OwnerUserID,
		Deleted:     st.Deleted,
		UpdatedAt:   st.UpdatedAt,
	}
	if err := l.notifier.Notify(ctx, ev); err != nil {
		l.log.Sugar().Warnw("publish change event failed", "kind", l.kind, "op", op, "id", r.Key(), "err", err)
	}
}

func (l *lifecycle[T, P]) begin(ctx context.Context, op string) (context.Context, func(error)) {
	ctx, span := tracer.Start(ctx, l.kind+"."+op)
	return ctx, func(err error) {
		l.observe(op, err)
		if err != nil {
			span.SetAttributes(attribute.String("error.kind", model.ErrorKind(err)))
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}

func (l *lifecycle[T, P]) observe(op string, err error) {
	telemetry.ObserveLifecycle(l.kind, op, err)
}
