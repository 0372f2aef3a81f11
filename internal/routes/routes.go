package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/scheduling-api/internal/audit"
	"github.com/BruksfildServices01/scheduling-api/internal/cache"
	"github.com/BruksfildServices01/scheduling-api/internal/config"
	domain "github.com/BruksfildServices01/scheduling-api/internal/domain/catalog"
	"github.com/BruksfildServices01/scheduling-api/internal/handlers"
	infraRepo "github.com/BruksfildServices01/scheduling-api/internal/infra/repository"
	"github.com/BruksfildServices01/scheduling-api/internal/middleware"
	"github.com/BruksfildServices01/scheduling-api/internal/models"
	"github.com/BruksfildServices01/scheduling-api/internal/monitoring"
	ucCatalog "github.com/BruksfildServices01/scheduling-api/internal/usecase/catalog"
)

type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Cache  cache.Cache

	AuditLogger     *audit.Logger
	AuditDispatcher *audit.Dispatcher

	// opcional; default is the gorm store on DB
	Operators handlers.OperatorStore
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	cfg := deps.Config

	// ======================================================
	// USE CASES
	// ======================================================
	opts := ucCatalog.Options{
		Cache:    deps.Cache,
		CacheTTL: cfg.CacheTTL,
	}
	if deps.AuditDispatcher != nil {
		opts.Audit = deps.AuditDispatcher
	}

	clients := ucCatalog.NewService(infraRepo.NewClientRepository(deps.DB), domain.EntityClient,
		func(c *models.Client) uint { return c.ID }, opts)
	professionals := ucCatalog.NewService(infraRepo.NewProfessionalRepository(deps.DB), domain.EntityProfessional,
		func(p *models.Professional) uint { return p.ID }, opts)
	services := ucCatalog.NewService(infraRepo.NewServiceRepository(deps.DB), domain.EntityService,
		func(s *models.Service) uint { return s.ID }, opts)
	appointments := ucCatalog.NewService(infraRepo.NewAppointmentRepository(deps.DB), domain.EntityAppointment,
		func(a *models.Appointment) uint { return a.ID }, opts)
	brands := ucCatalog.NewService(infraRepo.NewBrandRepository(deps.DB), domain.EntityBrand,
		func(b *models.Brand) uint { return b.Code }, opts)
	vehicleModels := ucCatalog.NewService(infraRepo.NewModelRepository(deps.DB), domain.EntityModel,
		func(m *models.VehicleModel) uint { return m.Code }, opts)
	vehicles := ucCatalog.NewService(infraRepo.NewVehicleRepository(deps.DB), domain.EntityVehicle,
		func(v *models.Vehicle) uint { return v.Code }, opts)

	// ======================================================
	// HANDLERS
	// ======================================================
	operators := deps.Operators
	if operators == nil {
		operators = infraRepo.NewOperatorRepository(deps.DB)
	}
	authHandler := handlers.NewAuthHandler(operators, cfg)
	auditLogsHandler := handlers.NewAuditLogsHandler(deps.AuditLogger)

	checks := map[string]handlers.Pinger{
		"database": handlers.PingFunc(func(ctx context.Context) error {
			sqlDB, err := deps.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
	}
	if _, noop := deps.Cache.(cache.Noop); deps.Cache != nil && !noop {
		checks["cache"] = deps.Cache
	}
	healthHandler := handlers.NewHealthHandler(checks)

	// ======================================================
	// ROUTES — INFRA
	// ======================================================
	r.GET("/health", healthHandler.Check)
	r.GET("/metrics", gin.WrapH(monitoring.Handler()))

	guard := middleware.WriteGuard(cfg)

	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.RegistrationGate(guard), authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// ======================================================
	// ROUTES — CATALOG
	// ======================================================

	handlers.NewResourceHandler(clients, handlers.ClientResource()).
		Register(r, "/client", "/clients", guard)
	handlers.NewResourceHandler(professionals, handlers.ProfessionalResource()).
		Register(r, "/professional", "/professionals", guard)
	handlers.NewResourceHandler(services, handlers.ServiceResource()).
		Register(r, "/service", "/services", guard)
	handlers.NewResourceHandler(appointments, handlers.AppointmentResource(cfg.Timezone)).
		Register(r, "/appointment", "/appointments", guard)
	handlers.NewResourceHandler(brands, handlers.BrandResource()).
		Register(r, "/brand", "/brands", guard)
	handlers.NewResourceHandler(vehicleModels, handlers.ModelResource()).
		Register(r, "/model", "/models", guard)
	handlers.NewResourceHandler(vehicles, handlers.VehicleResource()).
		Register(r, "/vehicle", "/vehicles", guard)

	// ======================================================
	// ROUTES — AUDIT
	// ======================================================
	if guard != nil {
		r.GET("/audit-logs", guard, auditLogsHandler.List)
	} else {
		r.GET("/audit-logs", auditLogsHandler.List)
	}
}
