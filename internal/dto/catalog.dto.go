package dto

import "github.com/BruksfildServices01/scheduling-api/internal/models"

type ClientDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ProfessionalDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ServiceDTO struct {
	ID          uint    `json:"id"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type BrandDTO struct {
	Code uint   `json:"code"`
	Name string `json:"name"`
}

func ClientFrom(c *models.Client) ClientDTO {
	return ClientDTO{ID: c.ID, Name: c.Name}
}

func ClientsFrom(rows []models.Client) []ClientDTO {
	out := make([]ClientDTO, 0, len(rows))
	for i := range rows {
		out = append(out, ClientFrom(&rows[i]))
	}
	return out
}

func ProfessionalFrom(p *models.Professional) ProfessionalDTO {
	return ProfessionalDTO{ID: p.ID, Name: p.Name}
}

func ProfessionalsFrom(rows []models.Professional) []ProfessionalDTO {
	out := make([]ProfessionalDTO, 0, len(rows))
	for i := range rows {
		out = append(out, ProfessionalFrom(&rows[i]))
	}
	return out
}

func ServiceFrom(s *models.Service) ServiceDTO {
	return ServiceDTO{ID: s.ID, Description: s.Description, Price: s.Price}
}

func ServicesFrom(rows []models.Service) []ServiceDTO {
	out := make([]ServiceDTO, 0, len(rows))
	for i := range rows {
		out = append(out, ServiceFrom(&rows[i]))
	}
	return out
}

func BrandFrom(b *models.Brand) BrandDTO {
	return BrandDTO{Code: b.Code, Name: b.Name}
}

func BrandsFrom(rows []models.Brand) []BrandDTO {
	out := make([]BrandDTO, 0, len(rows))
	for i := range rows {
		out = append(out, BrandFrom(&rows[i]))
	}
	return out
}
