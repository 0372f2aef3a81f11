package dto

import (
	"errors"
	"fmt"
	"time"

	"github.com/BruksfildServices01/scheduling-api/internal/models"
)

// ErrDanglingReference means a row points at a parent that was not loaded,
// which only happens when the data is corrupt.
var ErrDanglingReference = errors.New("dangling reference")

type AppointmentDTO struct {
	ID          uint      `json:"id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Note        string    `json:"note,omitempty"`

	ClientID       uint    `json:"client_id"`
	Client         string  `json:"client"`
	ProfessionalID uint    `json:"professional_id"`
	Professional   string  `json:"professional"`
	ServiceID      uint    `json:"service_id"`
	Service        string  `json:"service"`
	Price          float64 `json:"price"`
}

type ModelDTO struct {
	Code      uint   `json:"code"`
	Name      string `json:"name"`
	BrandCode uint   `json:"brand_code"`
	Brand     string `json:"brand"`
}

type VehicleDTO struct {
	Code      uint   `json:"code"`
	Plate     string `json:"plate"`
	ModelCode uint   `json:"model_code"`
	Model     string `json:"model"`
}

func dangling(entity string, key uint, field string) error {
	return fmt.Errorf("%w: %s %d has no %s", ErrDanglingReference, entity, key, field)
}

func AppointmentFrom(a *models.Appointment) (AppointmentDTO, error) {
	switch {
	case a.Client.ID != a.ClientID:
		return AppointmentDTO{}, dangling("appointment", a.ID, "client")
	case a.Professional.ID != a.ProfessionalID:
		return AppointmentDTO{}, dangling("appointment", a.ID, "professional")
	case a.Service.ID != a.ServiceID:
		return AppointmentDTO{}, dangling("appointment", a.ID, "service")
	}

	return AppointmentDTO{
		ID:             a.ID,
		ScheduledAt:    a.ScheduledAt,
		Note:           a.Note,
		ClientID:       a.ClientID,
		Client:         a.Client.Name,
		ProfessionalID: a.ProfessionalID,
		Professional:   a.Professional.Name,
		ServiceID:      a.ServiceID,
		Service:        a.Service.Description,
		Price:          a.Service.Price,
	}, nil
}

func AppointmentsFrom(rows []models.Appointment) ([]AppointmentDTO, error) {
	out := make([]AppointmentDTO, 0, len(rows))
	for i := range rows {
		d, err := AppointmentFrom(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func ModelFrom(m *models.VehicleModel) (ModelDTO, error) {
	if m.Brand.Code != m.BrandCode {
		return ModelDTO{}, dangling("model", m.Code, "brand")
	}
	return ModelDTO{
		Code:      m.Code,
		Name:      m.Name,
		BrandCode: m.BrandCode,
		Brand:     m.Brand.Name,
	}, nil
}

func ModelsFrom(rows []models.VehicleModel) ([]ModelDTO, error) {
	out := make([]ModelDTO, 0, len(rows))
	for i := range rows {
		d, err := ModelFrom(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func VehicleFrom(v *models.Vehicle) (VehicleDTO, error) {
	if v.Model.Code != v.ModelCode {
		return VehicleDTO{}, dangling("vehicle", v.Code, "model")
	}
	return VehicleDTO{
		Code:      v.Code,
		Plate:     v.Plate,
		ModelCode: v.ModelCode,
		Model:     v.Model.Name,
	}, nil
}

func VehiclesFrom(rows []models.Vehicle) ([]VehicleDTO, error) {
	out := make([]VehicleDTO, 0, len(rows))
	for i := range rows {
		d, err := VehicleFrom(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
