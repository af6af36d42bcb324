package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/timeasy-io/timeasy/internal/modules/model"
	"go.uber.org/zap"
)

type cachedStore[T any, P model.Record[T]] struct {
	inner  Store[T, P]
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
	log    *zap.Logger
}

// NewCachedStore puts a redis read-through cache in front of FindByID.
// Keys of written rows are dropped after Insert and after a committed Transaction.
// Every drop also bumps a per id generation counter; a reader fills the cache
// only if the counter is unchanged since before its inner read, so a read that
// raced with a write never caches the older row.
// Redis failures never fail a call, the inner store answers instead.
func NewCachedStore[T any, P model.Record[T]](inner Store[T, P], rdb *redis.Client, ttl time.Duration, prefix string, log *zap.Logger) Store[T, P] {
	return &cachedStore[T, P]{inner: inner, rdb: rdb, ttl: ttl, prefix: prefix, log: log}
}

var errStaleFill = errors.New("row changed during cache fill")

func (s *cachedStore[T, P]) key(id uuid.UUID) string {
	var zero T
	return fmt.Sprintf("%s:%s:%s", s.prefix, P(&zero).Kind(), id)
}

func (s *cachedStore[T, P]) genKey(id uuid.UUID) string {
	return s.key(id) + ":gen"
}

// genTTL outlives any cache entry and any single inner read.
func (s *cachedStore[T, P]) genTTL() time.Duration {
	return max(2*s.ttl, time.Hour)
}

// generation returns the write counter of id, 0 when it was never written.
func generation(ctx context.Context, c interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}, key string) (int64, error) {
	gen, err := c.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (s *cachedStore[T, P]) Insert(ctx context.Context, r P) error {
	if err := s.inner.Insert(ctx, r); err != nil {
		return err
	}
	s.evict(ctx, r.Key())
	return nil
}

func (s *cachedStore[T, P]) FindByID(ctx context.Context, id uuid.UUID) (P, bool, error) {
	raw, err := s.rdb.Get(ctx, s.key(id)).Result()
	switch {
	case err == nil:
		var row T
		uerr := sonic.UnmarshalString(raw, &row)
		if uerr == nil {
			return P(&row), true, nil
		}
		s.log.Sugar().Warnw("drop undecodable cache entry", "key", s.key(id), "err", uerr)
	case !errors.Is(err, redis.Nil):
		s.log.Sugar().Warnw("cache get failed", "key", s.key(id), "err", err)
	}

	gen, genErr := generation(ctx, s.rdb, s.genKey(id))
	if genErr != nil {
		s.log.Sugar().Warnw("cache generation read failed", "key", s.genKey(id), "err", genErr)
	}

	row, ok, err := s.inner.FindByID(ctx, id)
	if err != nil || !ok {
		return row, ok, err
	}
	if genErr == nil {
		s.fill(ctx, id, gen, row)
	}
	return row, true, nil
}

// fill caches row unless id was written after generation gen was read.
func (s *cachedStore[T, P]) fill(ctx context.Context, id uuid.UUID, gen int64, row P) {
	data, err := sonic.MarshalString(row)
	if err != nil {
		return
	}
	gk := s.genKey(id)
	err = s.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := generation(ctx, tx, gk)
		if err != nil {
			return err
		}
		if cur != gen {
			return errStaleFill
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.key(id), data, s.ttl)
			return nil
		})
		return err
	}, gk)
	switch {
	case err == nil, errors.Is(err, errStaleFill), errors.Is(err, redis.TxFailedErr):
	default:
		s.log.Sugar().Warnw("cache set failed", "key", s.key(id), "err", err)
	}
}

func (s *cachedStore[T, P]) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.inner.ExistsByID(ctx, id)
}

func (s *cachedStore[T, P]) List(ctx context.Context, f Filter) ([]P, error) {
	return s.inner.List(ctx, f)
}

func (s *cachedStore[T, P]) Transaction(ctx context.Context, fn func(tx Tx[T, P]) error) error {
	var saved []uuid.UUID
	err := s.inner.Transaction(ctx, func(tx Tx[T, P]) error {
		return fn(&cachedTx[T, P]{Tx: tx, saved: &saved})
	})
	if err != nil {
		return err
	}
	for _, id := range saved {
		s.evict(ctx, id)
	}
	return nil
}

func (s *cachedStore[T, P]) evict(ctx context.Context, id uuid.UUID) {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, s.genKey(id))
		pipe.Expire(ctx, s.genKey(id), s.genTTL())
		pipe.Del(ctx, s.key(id))
		return nil
	})
	if err != nil {
		s.log.Sugar().Warnw("cache evict failed", "key", s.key(id), "err", err)
	}
}

type cachedTx[T any, P model.Record[T]] struct {
	Tx[T, P]
	saved *[]uuid.UUID
}

func (t *cachedTx[T, P]) Save(ctx context.Context, r P) error {
	if err := t.Tx.Save(ctx, r); err != nil {
		return err
	}
	*t.saved = append(*t.saved, r.Key())
	return nil
}
