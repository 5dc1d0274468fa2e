package competitionservice

import (
	"log/slog"

	httpadapter "showcase/contexts/showcase/competition-service/adapters/http"
	"showcase/contexts/showcase/competition-service/adapters/memory"
	"showcase/contexts/showcase/competition-service/application"
	"showcase/contexts/showcase/competition-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Actors     ports.ActorDirectory
	Outbox     ports.OutboxWriter
	Audit      ports.AuditSink
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Service: application.Service{
				Repo:   deps.Repository,
				Actors: deps.Actors,
				Outbox: deps.Outbox,
				Audit:  deps.Audit,
				Clock:  deps.Clock,
				IDGen:  deps.IDGen,
				Logger: deps.Logger,
			},
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Actors:     store,
		Outbox:     store,
		Audit:      store,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
