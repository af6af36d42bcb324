package repo

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/timeasy-io/timeasy/internal/modules/model"
	"golang.org/x/sync/semaphore"
)

type memoryStore[T any, P model.Record[T]] struct {
	mu          sync.RWMutex
	rows        map[uuid.UUID]T
	locks       map[uuid.UUID]*rowLock
	lockTimeout time.Duration
}

// rowLock is dropped from the locks map once no transaction holds or waits for it.
type rowLock struct {
	sem  *semaphore.Weighted
	refs int
}

// NewMemoryStore returns a process local Store. Rows are deep copied on the
// way in and out. Row locks are one weighted semaphore per id, so writers of
// different ids never block each other.
func NewMemoryStore[T any, P model.Record[T]](lockTimeout time.Duration) Store[T, P] {
	return &memoryStore[T, P]{
		rows:        make(map[uuid.UUID]T),
		locks:       make(map[uuid.UUID]*rowLock),
		lockTimeout: lockTimeout,
	}
}

func (s *memoryStore[T, P]) Insert(ctx context.Context, r P) error {
	if err := ctx.Err(); err != nil {
		return storeErr("insert", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id := r.Key()
	if _, ok := s.rows[id]; ok {
		return storeErr("insert", fmt.Errorf("%w: id %v", ErrDuplicateKey, id))
	}
	s.rows[id] = *r.Clone()
	return nil
}

func (s *memoryStore[T, P]) FindByID(ctx context.Context, id uuid.UUID) (P, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, storeErr("find", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[id]
	if !ok {
		return nil, false, nil
	}
	return detach[T, P](row), true, nil
}

func detach[T any, P model.Record[T]](row T) P {
	return P(P(&row).Clone())
}

func (s *memoryStore[T, P]) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok, err := s.FindByID(ctx, id)
	return ok, err
}

func (s *memoryStore[T, P]) List(ctx context.Context, f Filter) ([]P, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeErr("list", err)
	}
	s.mu.RLock()
	out := make([]P, 0, len(s.rows))
	for _, row := range s.rows {
		if f.Match(P(&row)) {
			out = append(out, detach[T, P](row))
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		ci, cj := out[i].State().CreatedAt, out[j].State().CreatedAt
		if !ci.Equal(cj) {
			return ci.Before(cj)
		}
		ki, kj := out[i].Key(), out[j].Key()
		return ki.String() < kj.String()
	})
	return out, nil
}

func (s *memoryStore[T, P]) Transaction(ctx context.Context, fn func(tx Tx[T, P]) error) error {
	tx := &memoryTx[T, P]{
		store:   s,
		held:    make(map[uuid.UUID]struct{}),
		pending: make(map[uuid.UUID]T),
	}
	defer tx.release()

	if err := fn(tx); err != nil {
		return err
	}

	s.mu.Lock()
	for id, row := range tx.pending {
		s.rows[id] = row
	}
	s.mu.Unlock()
	return nil
}

func (s *memoryStore[T, P]) lockFor(id uuid.UUID) *semaphore.Weighted {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[id]
	if !ok {
		l = &rowLock{sem: semaphore.NewWeighted(1)}
		s.locks[id] = l
	}
	l.refs++
	return l.sem
}

// unlock releases the semaphore when held and drops the caller's reference.
func (s *memoryStore[T, P]) unlock(id uuid.UUID, held bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.locks[id]
	if held {
		l.sem.Release(1)
	}
	if l.refs--; l.refs == 0 {
		delete(s.locks, id)
	}
}

type memoryTx[T any, P model.Record[T]] struct {
	store   *memoryStore[T, P]
	held    map[uuid.UUID]struct{}
	pending map[uuid.UUID]T
}

func (t *memoryTx[T, P]) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (P, bool, error) {
	if _, ok := t.held[id]; !ok {
		sem := t.store.lockFor(id)
		lctx := ctx
		if t.store.lockTimeout > 0 {
			var cancel context.CancelFunc
			lctx, cancel = context.WithTimeout(ctx, t.store.lockTimeout)
			defer cancel()
		}
		if err := sem.Acquire(lctx, 1); err != nil {
			t.store.unlock(id, false)
			return nil, false, storeErr("lock", fmt.Errorf("%w: id %v: %v", ErrLockTimeout, id, err))
		}
		t.held[id] = struct{}{}
	}

	if row, ok := t.pending[id]; ok {
		return detach[T, P](row), true, nil
	}
	return t.store.FindByID(ctx, id)
}

func (t *memoryTx[T, P]) Save(ctx context.Context, r P) error {
	if err := ctx.Err(); err != nil {
		return storeErr("save", err)
	}
	id := r.Key()
	if _, ok := t.held[id]; !ok {
		return storeErr("save", fmt.Errorf("row %v is not locked by this transaction", id))
	}
	t.pending[id] = *r.Clone()
	return nil
}

func (t *memoryTx[T, P]) release() {
	for id := range t.held {
		t.store.unlock(id, true)
		delete(t.held, id)
	}
}
