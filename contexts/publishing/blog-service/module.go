package blogservice

import (
	"log/slog"

	httpadapter "showcase/contexts/publishing/blog-service/adapters/http"
	"showcase/contexts/publishing/blog-service/adapters/memory"
	"showcase/contexts/publishing/blog-service/application"
	"showcase/contexts/publishing/blog-service/ports"
	"showcase/internal/platform/objectstore"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Covers     ports.CoverStore
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Service: application.Service{
				Repo:   deps.Repository,
				Covers: deps.Covers,
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
		Covers:     objectstore.NewMemoryStore("http://localhost/media"),
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
