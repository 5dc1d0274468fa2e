package admindashboardservice

import (
	"log/slog"

	httpadapter "showcase/contexts/internal-ops/admin-dashboard-service/adapters/http"
	"showcase/contexts/internal-ops/admin-dashboard-service/adapters/memory"
	"showcase/contexts/internal-ops/admin-dashboard-service/application"
	"showcase/contexts/internal-ops/admin-dashboard-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Audits ports.AuditRepository
	Stats  ports.StatsSource
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Audits: deps.Audits,
		Stats:  deps.Stats,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Audits: store,
		Stats:  store,
		Clock:  store,
		IDGen:  store,
		Logger: logger,
	})
	module.Store = store
	return module
}
