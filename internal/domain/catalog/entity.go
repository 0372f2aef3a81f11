package catalog

// Entity names used in audit events, cache keys, metrics and error messages.
const (
	EntityClient       = "client"
	EntityProfessional = "professional"
	EntityService      = "service"
	EntityAppointment  = "appointment"
	EntityBrand        = "brand"
	EntityModel        = "model"
	EntityVehicle      = "vehicle"
)

// Dependents lists, for each entity, the entities whose responses embed its
// display fields and must be refreshed when it changes.
var Dependents = map[string][]string{
	EntityClient:       {EntityAppointment},
	EntityProfessional: {EntityAppointment},
	EntityService:      {EntityAppointment},
	EntityBrand:        {EntityModel},
	EntityModel:        {EntityVehicle},
}
