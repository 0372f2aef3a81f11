package models

import "time"

// Brand tem o código atribuído externamente (tabela FIPE, montadora etc.).
type Brand struct {
	Code uint   `gorm:"primaryKey;autoIncrement:false" json:"code"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
