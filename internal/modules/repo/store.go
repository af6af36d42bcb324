package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/timeasy-io/timeasy/internal/modules/model"
)

var (
	// ErrDuplicateKey is wrapped by the StoreError returned when an insert hits the primary key constraint.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrLockTimeout is wrapped by the StoreError returned when a row lock could not be acquired in time.
	ErrLockTimeout = errors.New("lock wait timeout")
)

// Store persists one resource kind.
type Store[T any, P model.Record[T]] interface {
	Insert(ctx context.Context, r P) error
	FindByID(ctx context.Context, id uuid.UUID) (P, bool, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, f Filter) ([]P, error)
	// Transaction runs fn in a scope. Row locks taken through the Tx are released
	// when fn returns or panics. Rows saved through the Tx are committed only if fn returns nil.
	Transaction(ctx context.Context, fn func(tx Tx[T, P]) error) error
}

// Tx is the write side of a Store, only usable inside Transaction.
type Tx[T any, P model.Record[T]] interface {
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (P, bool, error)
	Save(ctx context.Context, r P) error
}

// Filter is a conjunction of optional predicates. The zero value matches every row.
type Filter struct {
	OwnerUserID  *string
	ProjectID    *uuid.UUID
	Deleted      *bool
	UpdatedSince *time.Time
}

func (f Filter) Owner(userID string) Filter {
	f.OwnerUserID = &userID
	return f
}

func (f Filter) Project(projectID uuid.UUID) Filter {
	f.ProjectID = &projectID
	return f
}

func (f Filter) NotDeleted() Filter {
	deleted := false
	f.Deleted = &deleted
	return f
}

func (f Filter) Since(t time.Time) Filter {
	f.UpdatedSince = &t
	return f
}

type projectReferrer interface {
	ProjectRef() *uuid.UUID
}

// Match reports whether r satisfies every predicate of f.
func (f Filter) Match(r interface{ State() *model.Lifecycle }) bool {
	st := r.State()
	if f.OwnerUserID != nil && st.OwnerUserID != *f.OwnerUserID {
		return false
	}
	if f.Deleted != nil && st.Deleted != *f.Deleted {
		return false
	}
	if f.UpdatedSince != nil && st.UpdatedAt.Before(*f.UpdatedSince) {
		return false
	}
	if f.ProjectID != nil {
		ref, ok := r.(projectReferrer)
		if !ok || ref.ProjectRef() == nil || *ref.ProjectRef() != *f.ProjectID {
			return false
		}
	}
	return true
}

func storeErr(op string, err error) error {
	return &model.StoreError{Op: op, Err: err}
}
