package repository

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/scheduling-api/internal/domain/catalog"
	"github.com/BruksfildServices01/scheduling-api/internal/httperr"
)

// Meta describes how one entity is stored. A single GormRepository
// implementation serves every entity through it.
type Meta[T any] struct {
	Entity    string
	KeyColumn string

	// Columns written by Update. The key is never among them.
	Columns []string

	// Relations loaded on every read.
	Preloads []string

	// Columns accepted by FindByFilter.
	Filterable []string

	// Conflicts narrows q to rows, other than key, that would collide with
	// rec once it is stored under key.
	Conflicts func(q *gorm.DB, key uint, rec *T) *gorm.DB

	// BeforeDelete runs in the delete transaction before the row goes away.
	BeforeDelete func(tx *gorm.DB, key uint) error
}

type GormRepository[T any] struct {
	db   *gorm.DB
	meta Meta[T]

	// Columns plus updated_at
	writeCols []string
}

func NewGormRepository[T any](db *gorm.DB, meta Meta[T]) *GormRepository[T] {
	cols := make([]string, 0, len(meta.Columns)+1)
	cols = append(cols, meta.Columns...)
	cols = append(cols, "updated_at")
	return &GormRepository[T]{db: db, meta: meta, writeCols: cols}
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

func (r *GormRepository[T]) Create(ctx context.Context, rec *T) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(rec).Error; err != nil {
			return err
		}
		if len(r.meta.Preloads) == 0 {
			return nil
		}
		// rec carries its new key, so First reloads exactly that row.
		return r.preload(tx).First(rec).Error
	})
	return classify(err, opCreate)
}

func (r *GormRepository[T]) Update(ctx context.Context, key uint, rec *T) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if r.meta.Conflicts != nil {
			var clash []T
			q := tx.Model(new(T)).Clauses(clause.Locking{Strength: "UPDATE"})
			if err := r.meta.Conflicts(q, key, rec).
				Limit(1).
				Find(&clash).Error; err != nil {
				return err
			}
			if len(clash) > 0 {
				return httperr.ErrBusiness(httperr.CodeConflict)
			}
		}

		res := tx.Model(new(T)).
			Where(r.meta.KeyColumn+" = ?", key).
			Select(r.writeCols).
			Updates(rec)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness(httperr.CodeNotFound)
		}
		return nil
	})
	return classify(err, opUpdate)
}

func (r *GormRepository[T]) Delete(ctx context.Context, key uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if r.meta.BeforeDelete != nil {
			if err := r.meta.BeforeDelete(tx, key); err != nil {
				return err
			}
		}

		res := tx.Where(r.meta.KeyColumn+" = ?", key).Delete(new(T))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness(httperr.CodeNotFound)
		}
		return nil
	})
	return classify(err, opDelete)
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *GormRepository[T]) FindByKey(ctx context.Context, key uint) (*T, error) {
	var rec T
	if err := r.preload(r.db.WithContext(ctx)).
		Where(r.meta.KeyColumn+" = ?", key).
		First(&rec).Error; err != nil {
		return nil, classify(err, opRead)
	}
	return &rec, nil
}

func (r *GormRepository[T]) FindByFilter(ctx context.Context, f catalog.Filter) ([]T, error) {
	cols := make([]string, 0, len(f))
	for col := range f {
		if !r.filterable(col) {
			return nil, fmt.Errorf("%s: filter on %q not allowed", r.meta.Entity, col)
		}
		cols = append(cols, col)
	}
	sort.Strings(cols)

	q := r.preload(r.db.WithContext(ctx))
	for _, col := range cols {
		q = q.Where(col+" = ?", f[col])
	}

	var out []T
	if err := q.Order(r.meta.KeyColumn + " ASC").Find(&out).Error; err != nil {
		return nil, classify(err, opRead)
	}
	return out, nil
}

func (r *GormRepository[T]) ListAll(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.preload(r.db.WithContext(ctx)).
		Order(r.meta.KeyColumn + " ASC").
		Find(&out).Error; err != nil {
		return nil, classify(err, opRead)
	}
	return out, nil
}

func (r *GormRepository[T]) preload(q *gorm.DB) *gorm.DB {
	for _, rel := range r.meta.Preloads {
		q = q.Preload(rel)
	}
	return q
}

func (r *GormRepository[T]) filterable(col string) bool {
	for _, c := range r.meta.Filterable {
		if c == col {
			return true
		}
	}
	return false
}

// Compile-time check
var _ catalog.Repository[struct{}] = (*GormRepository[struct{}])(nil)
