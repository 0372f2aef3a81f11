package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/BruksfildServices01/scheduling-api/internal/audit"
	"github.com/BruksfildServices01/scheduling-api/internal/cache"
	domain "github.com/BruksfildServices01/scheduling-api/internal/domain/catalog"
	"github.com/BruksfildServices01/scheduling-api/internal/monitoring"
)

type Dispatcher interface {
	Dispatch(ev audit.Event)
}

type Options struct {
	Audit    Dispatcher
	Cache    cache.Cache
	CacheTTL time.Duration
}

// Service runs the catalog operations of one entity. Successful writes are
// audited and drop the cached lists of the entity and of its dependents.
type Service[T any] struct {
	repo   domain.Repository[T]
	entity string
	keyOf  func(*T) uint

	audit Dispatcher
	cache cache.Cache
	ttl   time.Duration
}

func NewService[T any](
	repo domain.Repository[T],
	entity string,
	keyOf func(*T) uint,
	opts Options,
) *Service[T] {
	s := &Service[T]{
		repo:   repo,
		entity: entity,
		keyOf:  keyOf,
		audit:  opts.Audit,
		cache:  opts.Cache,
		ttl:    opts.CacheTTL,
	}
	if s.cache == nil {
		s.cache = cache.Noop{}
	}
	return s
}

func (s *Service[T]) Entity() string {
	return s.entity
}

// ======================================================
// WRITES
// ======================================================

func (s *Service[T]) Create(ctx context.Context, rec *T) error {
	err := s.repo.Create(ctx, rec)
	monitoring.ObserveOperation(s.entity, "create", err)
	if err != nil {
		return err
	}

	s.written(ctx, "created", s.keyOf(rec), rec)
	return nil
}

func (s *Service[T]) Update(ctx context.Context, key uint, rec *T) error {
	err := s.repo.Update(ctx, key, rec)
	monitoring.ObserveOperation(s.entity, "update", err)
	if err != nil {
		return err
	}

	s.written(ctx, "updated", key, rec)
	return nil
}

func (s *Service[T]) Delete(ctx context.Context, key uint) error {
	err := s.repo.Delete(ctx, key)
	monitoring.ObserveOperation(s.entity, "delete", err)
	if err != nil {
		return err
	}

	s.written(ctx, "deleted", key, nil)
	return nil
}

func (s *Service[T]) written(ctx context.Context, verb string, key uint, meta any) {
	s.invalidate(ctx)

	if s.audit == nil {
		return
	}
	s.audit.Dispatch(audit.Event{
		OperatorID: audit.OperatorFrom(ctx),
		Action:     s.entity + "_" + verb,
		Entity:     s.entity,
		EntityKey:  &key,
		Metadata:   meta,
	})
}

func (s *Service[T]) invalidate(ctx context.Context) {
	entities := append([]string{s.entity}, domain.Dependents[s.entity]...)

	for _, e := range entities {
		if _, err := s.cache.Incr(ctx, cache.GenKey(e)); err != nil {
			log.Printf("cache bump %s: %v", e, err)
		}
	}
}

// ======================================================
// READS
// ======================================================

func (s *Service[T]) Get(ctx context.Context, key uint) (*T, error) {
	return s.repo.FindByKey(ctx, key)
}

func (s *Service[T]) Find(ctx context.Context, f domain.Filter) ([]T, error) {
	return s.repo.FindByFilter(ctx, f)
}

// List returns every row, read through the list cache. The generation is
// read before the store so a write committed meanwhile retires the entry
// this call fills.
func (s *Service[T]) List(ctx context.Context) ([]T, error) {
	gen, err := cache.Generation(ctx, s.cache, s.entity)
	if err != nil {
		log.Printf("cache generation %s: %v", s.entity, err)
		return s.repo.ListAll(ctx)
	}
	key := cache.ListKey(s.entity, gen)

	raw, err := s.cache.Get(ctx, key)
	if err == nil {
		var rows []T
		if err := json.Unmarshal(raw, &rows); err == nil {
			return rows, nil
		}
		log.Printf("cache %s: discarding unreadable entry", key)
	} else if !errors.Is(err, cache.ErrMiss) {
		log.Printf("cache get %s: %v", key, err)
	}

	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(rows); err == nil {
		if err := s.cache.Set(ctx, key, b, s.ttl); err != nil {
			log.Printf("cache set %s: %v", key, err)
		}
	}
	return rows, nil
}
