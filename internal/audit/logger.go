package audit

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/scheduling-api/internal/models"
)

// Logger persists events in audit_logs.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Record(ev Event) error {

	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	log := models.AuditLog{
		OperatorID: ev.OperatorID,
		Action:     ev.Action,
		Entity:     ev.Entity,
		EntityKey:  ev.EntityKey,
		Metadata:   metaJSON,
		CreatedAt:  ev.At,
	}

	return l.db.Create(&log).Error
}

// Prune deletes entries older than before and reports how many went away.
func (l *Logger) Prune(ctx context.Context, before time.Time) (int64, error) {
	res := l.db.WithContext(ctx).
		Where("created_at < ?", before).
		Delete(&models.AuditLog{})
	return res.RowsAffected, res.Error
}

type Query struct {
	Action    string
	Entity    string
	EntityKey *uint
	From      *time.Time
	To        *time.Time

	Page  int
	Limit int
}

// Normalize clamps paging to page >= 1 and 1 <= limit <= 200 (default 50).
func (q *Query) Normalize() {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 200 {
		q.Limit = 50
	}
}

func (l *Logger) Query(ctx context.Context, q Query) ([]models.AuditLog, int64, error) {
	q.Normalize()

	db := l.db.WithContext(ctx).Model(&models.AuditLog{})

	if q.Action != "" {
		db = db.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		db = db.Where("entity = ?", q.Entity)
	}
	if q.EntityKey != nil {
		db = db.Where("entity_key = ?", *q.EntityKey)
	}
	if q.From != nil {
		db = db.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		db = db.Where("created_at < ?", *q.To)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := db.
		Order("created_at DESC").
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
