package votingservice

import (
	"log/slog"

	httpadapter "showcase/contexts/showcase/voting-service/adapters/http"
	"showcase/contexts/showcase/voting-service/adapters/memory"
	"showcase/contexts/showcase/voting-service/application"
	"showcase/contexts/showcase/voting-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Projects   ports.VotableDirectory
	Clock      ports.Clock
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Service: application.Service{
				Repo:     deps.Repository,
				Projects: deps.Projects,
				Clock:    deps.Clock,
				Logger:   deps.Logger,
			},
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Projects:   store,
		Clock:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
