package models

import "time"

// VehicleModel é o "modelo" de uma marca. O nome é único dentro da marca.
type VehicleModel struct {
	Code uint   `gorm:"primaryKey;autoIncrement:false" json:"code"`
	Name string `gorm:"size:100;not null;uniqueIndex:idx_model_name_brand,priority:1" json:"name"`

	BrandCode uint  `gorm:"not null;index;uniqueIndex:idx_model_name_brand,priority:2" json:"brand_code"`
	Brand     Brand `gorm:"foreignKey:BrandCode;references:Code;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"brand"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (VehicleModel) TableName() string {
	return "vehicle_models"
}
