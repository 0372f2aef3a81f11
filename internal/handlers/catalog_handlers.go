package handlers

import (
	"github.com/jinzhu/copier"

	"github.com/BruksfildServices01/scheduling-api/internal/dto"
	"github.com/BruksfildServices01/scheduling-api/internal/models"
	"github.com/BruksfildServices01/scheduling-api/internal/timezone"
)

// --------- Requests ---------

type ClientRequest struct {
	Name string `json:"name" binding:"required,notblank,max=150"`
}

type ClientUpdateRequest struct {
	ID   uint   `json:"id" binding:"required,gte=1"`
	Name string `json:"name" binding:"required,notblank,max=150"`
}

type ProfessionalRequest = ClientRequest

type ProfessionalUpdateRequest = ClientUpdateRequest

type ServiceRequest struct {
	Description string   `json:"description" binding:"required,notblank,max=150"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
}

type ServiceUpdateRequest struct {
	ID          uint     `json:"id" binding:"required,gte=1"`
	Description string   `json:"description" binding:"required,notblank,max=150"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
}

// AppointmentRequest accepts the time as scheduled_at or time.
type AppointmentRequest struct {
	ScheduledAt    string `json:"scheduled_at"`
	Time           string `json:"time"`
	Note           string `json:"note" binding:"max=300"`
	ClientID       uint   `json:"client_id" binding:"required,gte=1"`
	ProfessionalID uint   `json:"professional_id" binding:"required,gte=1"`
	ServiceID      uint   `json:"service_id" binding:"required,gte=1"`
}

type AppointmentUpdateRequest struct {
	ID uint `json:"id" binding:"required,gte=1"`
	AppointmentRequest
}

type BrandRequest struct {
	Code uint   `json:"code" binding:"required,gte=1"`
	Name string `json:"name" binding:"required,notblank,max=100"`
}

type ModelRequest struct {
	Code      uint   `json:"code" binding:"required,gte=1"`
	Name      string `json:"name" binding:"required,notblank,max=100"`
	BrandCode uint   `json:"brand_code" binding:"required,gte=1"`
}

type VehicleRequest struct {
	Plate     string `json:"plate" binding:"required,notblank,max=10"`
	ModelCode uint   `json:"model_code" binding:"required,gte=1"`
}

type VehicleUpdateRequest struct {
	Code      uint   `json:"code" binding:"required,gte=1"`
	Plate     string `json:"plate" binding:"required,notblank,max=10"`
	ModelCode uint   `json:"model_code" binding:"required,gte=1"`
}

// --------- Builders ---------

// copyInto fills a new record from a request whose field names line up
// with the model.
func copyInto[T any](req any) (*T, error) {
	rec := new(T)
	if err := copier.Copy(rec, req); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *AppointmentRequest) record(tz string) (*models.Appointment, error) {
	raw := r.ScheduledAt
	if raw == "" {
		raw = r.Time
	}
	at, err := timezone.ParseScheduled(raw, tz)
	if err != nil {
		return nil, invalidRequest("invalid_scheduled_at",
			"scheduled_at deve estar no formato 2006-01-02T15:04:05 ou 02/01/2006 15:04:05.")
	}

	return &models.Appointment{
		ScheduledAt:    at,
		Note:           r.Note,
		ClientID:       r.ClientID,
		ProfessionalID: r.ProfessionalID,
		ServiceID:      r.ServiceID,
	}, nil
}

// --------- Presenters ---------

func pure[T, P any](f func(*T) P) func(*T) (P, error) {
	return func(rec *T) (P, error) {
		return f(rec), nil
	}
}

func pureList[T, P any](f func([]T) []P) func([]T) ([]P, error) {
	return func(rows []T) ([]P, error) {
		return f(rows), nil
	}
}

// --------- Resources ---------

func ClientResource() Resource[models.Client, ClientRequest, ClientUpdateRequest, dto.ClientDTO] {
	return Resource[models.Client, ClientRequest, ClientUpdateRequest, dto.ClientDTO]{
		KeyParam: "id",
		Params:   []Param{StringParam("name", true)},
		FromCreate: func(req *ClientRequest) (*models.Client, error) {
			return copyInto[models.Client](req)
		},
		FromUpdate: func(req *ClientUpdateRequest) (uint, *models.Client, error) {
			return req.ID, &models.Client{Name: req.Name}, nil
		},
		Present:     pure(dto.ClientFrom),
		PresentList: pureList(dto.ClientsFrom),
	}
}

func ProfessionalResource() Resource[models.Professional, ProfessionalRequest, ProfessionalUpdateRequest, dto.ProfessionalDTO] {
	return Resource[models.Professional, ProfessionalRequest, ProfessionalUpdateRequest, dto.ProfessionalDTO]{
		KeyParam: "id",
		Params:   []Param{StringParam("name", true)},
		FromCreate: func(req *ProfessionalRequest) (*models.Professional, error) {
			return copyInto[models.Professional](req)
		},
		FromUpdate: func(req *ProfessionalUpdateRequest) (uint, *models.Professional, error) {
			return req.ID, &models.Professional{Name: req.Name}, nil
		},
		Present:     pure(dto.ProfessionalFrom),
		PresentList: pureList(dto.ProfessionalsFrom),
	}
}

func ServiceResource() Resource[models.Service, ServiceRequest, ServiceUpdateRequest, dto.ServiceDTO] {
	return Resource[models.Service, ServiceRequest, ServiceUpdateRequest, dto.ServiceDTO]{
		KeyParam: "id",
		Params:   []Param{StringParam("description", true)},
		FromCreate: func(req *ServiceRequest) (*models.Service, error) {
			return &models.Service{Description: req.Description, Price: *req.Price}, nil
		},
		FromUpdate: func(req *ServiceUpdateRequest) (uint, *models.Service, error) {
			return req.ID, &models.Service{Description: req.Description, Price: *req.Price}, nil
		},
		Present:     pure(dto.ServiceFrom),
		PresentList: pureList(dto.ServicesFrom),
	}
}

func AppointmentResource(tz string) Resource[models.Appointment, AppointmentRequest, AppointmentUpdateRequest, dto.AppointmentDTO] {
	scheduled := Param{Name: "scheduled_at", Parse: func(v string) (any, error) {
		return timezone.ParseScheduled(v, tz)
	}}

	return Resource[models.Appointment, AppointmentRequest, AppointmentUpdateRequest, dto.AppointmentDTO]{
		KeyParam: "id",
		Params: []Param{
			UintParam("client_id"),
			UintParam("professional_id"),
			UintParam("service_id"),
			scheduled,
		},
		FromCreate: func(req *AppointmentRequest) (*models.Appointment, error) {
			return req.record(tz)
		},
		FromUpdate: func(req *AppointmentUpdateRequest) (uint, *models.Appointment, error) {
			rec, err := req.record(tz)
			return req.ID, rec, err
		},
		Present:     dto.AppointmentFrom,
		PresentList: dto.AppointmentsFrom,
	}
}

func BrandResource() Resource[models.Brand, BrandRequest, BrandRequest, dto.BrandDTO] {
	return Resource[models.Brand, BrandRequest, BrandRequest, dto.BrandDTO]{
		KeyParam: "code",
		Params:   []Param{StringParam("name", true)},
		FromCreate: func(req *BrandRequest) (*models.Brand, error) {
			return copyInto[models.Brand](req)
		},
		FromUpdate: func(req *BrandRequest) (uint, *models.Brand, error) {
			return req.Code, &models.Brand{Name: req.Name}, nil
		},
		Present:     pure(dto.BrandFrom),
		PresentList: pureList(dto.BrandsFrom),
	}
}

func ModelResource() Resource[models.VehicleModel, ModelRequest, ModelRequest, dto.ModelDTO] {
	return Resource[models.VehicleModel, ModelRequest, ModelRequest, dto.ModelDTO]{
		KeyParam: "code",
		Params:   []Param{UintParam("brand_code"), StringParam("name", false)},
		FromCreate: func(req *ModelRequest) (*models.VehicleModel, error) {
			return copyInto[models.VehicleModel](req)
		},
		FromUpdate: func(req *ModelRequest) (uint, *models.VehicleModel, error) {
			return req.Code, &models.VehicleModel{Name: req.Name, BrandCode: req.BrandCode}, nil
		},
		Present:     dto.ModelFrom,
		PresentList: dto.ModelsFrom,
	}
}

func VehicleResource() Resource[models.Vehicle, VehicleRequest, VehicleUpdateRequest, dto.VehicleDTO] {
	return Resource[models.Vehicle, VehicleRequest, VehicleUpdateRequest, dto.VehicleDTO]{
		KeyParam: "code",
		Params:   []Param{UintParam("model_code"), StringParam("plate", false)},
		FromCreate: func(req *VehicleRequest) (*models.Vehicle, error) {
			return copyInto[models.Vehicle](req)
		},
		FromUpdate: func(req *VehicleUpdateRequest) (uint, *models.Vehicle, error) {
			return req.Code, &models.Vehicle{Plate: req.Plate, ModelCode: req.ModelCode}, nil
		},
		Present:     dto.VehicleFrom,
		PresentList: dto.VehiclesFrom,
	}
}
