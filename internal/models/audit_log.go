package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OperatorID *uint  `json:"operator_id"`
	Action     string `gorm:"size:50;not null;index" json:"action"`

	Entity    string `gorm:"size:50;index" json:"entity"`
	EntityKey *uint  `json:"entity_key"`
	Metadata  string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
