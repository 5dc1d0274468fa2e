package httpserver

import (
	"io"
	"log/slog"

	userservice "showcase/contexts/identity/user-service"
	admindashboardservice "showcase/contexts/internal-ops/admin-dashboard-service"
	blogservice "showcase/contexts/publishing/blog-service"
	awardservice "showcase/contexts/showcase/award-service"
	competitionservice "showcase/contexts/showcase/competition-service"
	projectservice "showcase/contexts/showcase/project-service"
	votingservice "showcase/contexts/showcase/voting-service"
	"showcase/internal/platform/objectstore"
)

func newTestServer() *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	media := objectstore.NewMemoryStore("http://localhost:8080")
	modules := Modules{
		Projects:     projectservice.NewInMemoryModule(logger),
		Competitions: competitionservice.NewInMemoryModule(logger),
		Awards:       awardservice.NewInMemoryModule(logger),
		Votes:        votingservice.NewInMemoryModule(logger),
		Posts:        blogservice.NewInMemoryModule(logger),
		Users:        userservice.NewInMemoryModule(logger),
		Dashboard:    admindashboardservice.NewInMemoryModule(logger),
		Uploads:      media,
		Media:        media,
	}
	return New(modules, logger, "")
}
