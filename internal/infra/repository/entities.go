package repository

import (
	"gorm.io/gorm"

	"github.com/BruksfildServices01/scheduling-api/internal/domain/catalog"
	"github.com/BruksfildServices01/scheduling-api/internal/models"
)

// ======================================================
// AGENDA
// ======================================================

func NewClientRepository(db *gorm.DB) *GormRepository[models.Client] {
	return NewGormRepository(db, Meta[models.Client]{
		Entity:     catalog.EntityClient,
		KeyColumn:  "id",
		Columns:    []string{"name"},
		Filterable: []string{"name"},
		Conflicts: func(q *gorm.DB, key uint, rec *models.Client) *gorm.DB {
			return q.Where("name = ? AND id <> ?", rec.Name, key)
		},
		// Cliente excluído leva junto os agendamentos.
		BeforeDelete: func(tx *gorm.DB, key uint) error {
			return tx.Where("client_id = ?", key).Delete(&models.Appointment{}).Error
		},
	})
}

func NewProfessionalRepository(db *gorm.DB) *GormRepository[models.Professional] {
	return NewGormRepository(db, Meta[models.Professional]{
		Entity:     catalog.EntityProfessional,
		KeyColumn:  "id",
		Columns:    []string{"name"},
		Filterable: []string{"name"},
		Conflicts: func(q *gorm.DB, key uint, rec *models.Professional) *gorm.DB {
			return q.Where("name = ? AND id <> ?", rec.Name, key)
		},
	})
}

func NewServiceRepository(db *gorm.DB) *GormRepository[models.Service] {
	return NewGormRepository(db, Meta[models.Service]{
		Entity:     catalog.EntityService,
		KeyColumn:  "id",
		Columns:    []string{"description", "price"},
		Filterable: []string{"description"},
		Conflicts: func(q *gorm.DB, key uint, rec *models.Service) *gorm.DB {
			return q.Where("description = ? AND id <> ?", rec.Description, key)
		},
	})
}

func NewAppointmentRepository(db *gorm.DB) *GormRepository[models.Appointment] {
	return NewGormRepository(db, Meta[models.Appointment]{
		Entity:    catalog.EntityAppointment,
		KeyColumn: "id",
		Columns: []string{
			"scheduled_at", "note", "client_id", "professional_id", "service_id",
		},
		Preloads: []string{"Client", "Professional", "Service"},
		Filterable: []string{
			"client_id", "professional_id", "service_id", "scheduled_at",
		},
		// Same slot twice, or the professional booked for another client
		// at the same time.
		Conflicts: func(q *gorm.DB, key uint, rec *models.Appointment) *gorm.DB {
			return q.Where(
				"id <> ? AND ("+
					"(scheduled_at = ? AND client_id = ? AND professional_id = ? AND service_id = ?)"+
					" OR (scheduled_at = ? AND professional_id = ? AND client_id <> ?))",
				key,
				rec.ScheduledAt, rec.ClientID, rec.ProfessionalID, rec.ServiceID,
				rec.ScheduledAt, rec.ProfessionalID, rec.ClientID,
			)
		},
	})
}

// ======================================================
// VEÍCULOS
// ======================================================

func NewBrandRepository(db *gorm.DB) *GormRepository[models.Brand] {
	return NewGormRepository(db, Meta[models.Brand]{
		Entity:     catalog.EntityBrand,
		KeyColumn:  "code",
		Columns:    []string{"name"},
		Filterable: []string{"name"},
		Conflicts: func(q *gorm.DB, key uint, rec *models.Brand) *gorm.DB {
			return q.Where("name = ? AND code <> ?", rec.Name, key)
		},
	})
}

func NewModelRepository(db *gorm.DB) *GormRepository[models.VehicleModel] {
	return NewGormRepository(db, Meta[models.VehicleModel]{
		Entity:     catalog.EntityModel,
		KeyColumn:  "code",
		Columns:    []string{"name", "brand_code"},
		Preloads:   []string{"Brand"},
		Filterable: []string{"brand_code", "name"},
		Conflicts: func(q *gorm.DB, key uint, rec *models.VehicleModel) *gorm.DB {
			return q.Where("name = ? AND brand_code = ? AND code <> ?", rec.Name, rec.BrandCode, key)
		},
	})
}

func NewVehicleRepository(db *gorm.DB) *GormRepository[models.Vehicle] {
	return NewGormRepository(db, Meta[models.Vehicle]{
		Entity:     catalog.EntityVehicle,
		KeyColumn:  "code",
		Columns:    []string{"plate", "model_code"},
		Preloads:   []string{"Model"},
		Filterable: []string{"model_code", "plate"},
		Conflicts: func(q *gorm.DB, key uint, rec *models.Vehicle) *gorm.DB {
			return q.Where("plate = ? AND model_code = ? AND code <> ?", rec.Plate, rec.ModelCode, key)
		},
	})
}
