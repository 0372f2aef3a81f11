package models

import "time"

// Appointment liga cliente, profissional e serviço em um horário.
// A quádrupla (horário, cliente, profissional, serviço) é única.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ScheduledAt time.Time `gorm:"not null;uniqueIndex:idx_appointment_slot,priority:1" json:"scheduled_at"`
	Note        string    `gorm:"size:300" json:"note"`

	ClientID uint   `gorm:"not null;index;uniqueIndex:idx_appointment_slot,priority:2" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"client"`

	ProfessionalID uint         `gorm:"not null;index;uniqueIndex:idx_appointment_slot,priority:3" json:"professional_id"`
	Professional   Professional `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"professional"`

	ServiceID uint    `gorm:"not null;index;uniqueIndex:idx_appointment_slot,priority:4" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
