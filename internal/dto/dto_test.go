package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/scheduling-api/internal/models"
)

func loadedAppointment() models.Appointment {
	return models.Appointment{
		ID:             1,
		ScheduledAt:    time.Date(2023, 1, 1, 8, 0, 0, 0, time.UTC),
		ClientID:       1,
		Client:         models.Client{ID: 1, Name: "Ana"},
		ProfessionalID: 1,
		Professional:   models.Professional{ID: 1, Name: "Carla"},
		ServiceID:      1,
		Service:        models.Service{ID: 1, Description: "Haircut", Price: 10},
	}
}

func TestAppointmentFromEmbedsNames(t *testing.T) {
	a := loadedAppointment()

	got, err := AppointmentFrom(&a)
	require.NoError(t, err)

	assert.Equal(t, "Ana", got.Client)
	assert.Equal(t, "Carla", got.Professional)
	assert.Equal(t, "Haircut", got.Service)
	assert.Equal(t, 10.0, got.Price)
}

func TestAppointmentFromDangling(t *testing.T) {
	a := loadedAppointment()
	a.Professional = models.Professional{}

	_, err := AppointmentFrom(&a)
	assert.ErrorIs(t, err, ErrDanglingReference)

	_, err = AppointmentsFrom([]models.Appointment{loadedAppointment(), a})
	assert.ErrorIs(t, err, ErrDanglingReference)
}

func TestEmptyListsAreNotNil(t *testing.T) {
	assert.NotNil(t, ClientsFrom(nil))

	apps, err := AppointmentsFrom(nil)
	require.NoError(t, err)
	assert.NotNil(t, apps)
}

func TestModelAndVehicleEmbedParents(t *testing.T) {
	m := models.VehicleModel{Code: 10, Name: "Uno", BrandCode: 1, Brand: models.Brand{Code: 1, Name: "Fiat"}}
	md, err := ModelFrom(&m)
	require.NoError(t, err)
	assert.Equal(t, "Fiat", md.Brand)

	v := models.Vehicle{Code: 5, Plate: "ABC1D23", ModelCode: 10, Model: m}
	vd, err := VehicleFrom(&v)
	require.NoError(t, err)
	assert.Equal(t, "Uno", vd.Model)

	v.Model = models.VehicleModel{}
	_, err = VehicleFrom(&v)
	assert.ErrorIs(t, err, ErrDanglingReference)
}

func TestSimpleMappers(t *testing.T) {
	assert.Equal(t, ClientDTO{ID: 1, Name: "Ana"}, ClientFrom(&models.Client{ID: 1, Name: "Ana"}))
	assert.Equal(t, BrandDTO{Code: 7, Name: "VW"}, BrandFrom(&models.Brand{Code: 7, Name: "VW"}))
	assert.Len(t, ServicesFrom([]models.Service{{ID: 1}, {ID: 2}}), 2)
	assert.Len(t, ProfessionalsFrom([]models.Professional{{ID: 1}}), 1)
	assert.Len(t, BrandsFrom(nil), 0)
}
