package projectservice

import (
	"log/slog"

	httpadapter "showcase/contexts/showcase/project-service/adapters/http"
	"showcase/contexts/showcase/project-service/adapters/memory"
	"showcase/contexts/showcase/project-service/application/commands"
	"showcase/contexts/showcase/project-service/application/queries"
	"showcase/contexts/showcase/project-service/ports"
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
	Votes      httpadapter.VoteCounter
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Intake: commands.IntakeUseCase{
				Repository: deps.Repository,
				Clock:      deps.Clock,
				IDGen:      deps.IDGen,
				Logger:     deps.Logger,
			},
			Moderation: commands.ModerationUseCase{
				Repository: deps.Repository,
				Actors:     deps.Actors,
				Outbox:     deps.Outbox,
				Audit:      deps.Audit,
				Clock:      deps.Clock,
				IDGen:      deps.IDGen,
				Logger:     deps.Logger,
			},
			Queries: queries.QueryUseCase{
				Repository: deps.Repository,
				Logger:     deps.Logger,
			},
			Votes:  deps.Votes,
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
