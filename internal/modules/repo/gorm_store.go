package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/timeasy-io/timeasy/internal/modules/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	pgUniqueViolation  = "23505"
	pgLockNotAvailable = "55P03"
)

type gormStore[T any, P model.Record[T]] struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

// NewGormStore returns a Store backed by a relational table. Row locks are taken
// with SELECT ... FOR UPDATE and bounded by lockTimeout.
func NewGormStore[T any, P model.Record[T]](db *gorm.DB, lockTimeout time.Duration) Store[T, P] {
	return &gormStore[T, P]{db: db, lockTimeout: lockTimeout}
}

func (s *gormStore[T, P]) Insert(ctx context.Context, r P) error {
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return translate("insert", err)
	}
	return nil
}

func (s *gormStore[T, P]) FindByID(ctx context.Context, id uuid.UUID) (P, bool, error) {
	return take[T, P](s.db.WithContext(ctx), id)
}

func (s *gormStore[T, P]) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Limit(1).Count(&n).Error; err != nil {
		return false, translate("exists", err)
	}
	return n > 0, nil
}

func (s *gormStore[T, P]) List(ctx context.Context, f Filter) ([]P, error) {
	var rows []T
	if err := listQuery[T](s.db.WithContext(ctx), f).Find(&rows).Error; err != nil {
		return nil, translate("list", err)
	}
	out := make([]P, len(rows))
	for i := range rows {
		out[i] = P(&rows[i])
	}
	return out, nil
}

func listQuery[T any](db *gorm.DB, f Filter) *gorm.DB {
	q := db.Model(new(T))
	if f.OwnerUserID != nil {
		q = q.Where("owner_user_id = ?", *f.OwnerUserID)
	}
	if f.ProjectID != nil {
		q = q.Where("project_id = ?", *f.ProjectID)
	}
	if f.Deleted != nil {
		q = q.Where("deleted = ?", *f.Deleted)
	}
	if f.UpdatedSince != nil {
		q = q.Where("updated_at >= ?", *f.UpdatedSince)
	}
	return q.Order("created_at ASC, id ASC")
}

func (s *gormStore[T, P]) Transaction(ctx context.Context, fn func(tx Tx[T, P]) error) error {
	var fnErr error
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if s.lockTimeout > 0 {
			stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", s.lockTimeout.Milliseconds())
			if err := tx.Exec(stmt).Error; err != nil {
				return translate("set lock timeout", err)
			}
		}
		fnErr = fn(&gormTx[T, P]{tx: tx})
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		var se *model.StoreError
		if errors.As(err, &se) {
			return err
		}
		return translate("commit", err)
	}
	return nil
}

type gormTx[T any, P model.Record[T]] struct {
	tx *gorm.DB
}

func (t *gormTx[T, P]) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (P, bool, error) {
	return take[T, P](forUpdate(t.tx.WithContext(ctx)), id)
}

func (t *gormTx[T, P]) Save(ctx context.Context, r P) error {
	if err := t.tx.WithContext(ctx).Save(r).Error; err != nil {
		return translate("save", err)
	}
	return nil
}

func forUpdate(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

func take[T any, P model.Record[T]](db *gorm.DB, id uuid.UUID) (P, bool, error) {
	var row T
	err := db.Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, translate("find", err)
	}
	return P(&row), true, nil
}

// translate wraps err into a StoreError, tagging constraint and lock failures.
func translate(op string, err error) error {
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return storeErr(op, fmt.Errorf("%w: %v", ErrDuplicateKey, err))
	case errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation:
		return storeErr(op, fmt.Errorf("%w: %v", ErrDuplicateKey, err))
	case errors.As(err, &pgErr) && pgErr.Code == pgLockNotAvailable:
		return storeErr(op, fmt.Errorf("%w: %v", ErrLockTimeout, err))
	case errors.Is(err, context.DeadlineExceeded):
		return storeErr(op, fmt.Errorf("%w: %v", ErrLockTimeout, err))
	}
	return storeErr(op, err)
}
