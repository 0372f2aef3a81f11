package models

import "time"

type Vehicle struct {
	Code  uint   `gorm:"primaryKey" json:"code"`
	Plate string `gorm:"size:10;not null;uniqueIndex:idx_vehicle_plate_model,priority:1" json:"plate"`

	ModelCode uint         `gorm:"not null;index;uniqueIndex:idx_vehicle_plate_model,priority:2" json:"model_code"`
	Model     VehicleModel `gorm:"foreignKey:ModelCode;references:Code;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"model"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
