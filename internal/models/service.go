package models

import "time"

type Service struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Description string  `gorm:"size:150;uniqueIndex;not null" json:"description"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
